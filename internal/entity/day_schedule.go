package entity

import (
	"timetable/internal/core"
	"timetable/internal/slot"
)

// SubjectPrefix names the grid columns of a day schedule: first_subject_id ... seventh_subject_id.
const SubjectPrefix = "subject"

// DaySchedule is the lesson plan of one day: seven period slots, each holding
// an optional Subject.
//
// It gets its persistence identity from the embedded Identity while its slot
// behavior comes from the embedded grid; the two are composed, not inherited.
type DaySchedule struct {
	Identity
	slot.Grid[*Subject]
}

// NewDaySchedule places each lesson at its own position; unspecified periods
// stay empty. An occupied period must hold a subject.
func NewDaySchedule(id int64, lessons ...slot.Entry[*Subject]) (*DaySchedule, error) {
	if err := checkSlots(TableDaySchedule, SubjectPrefix, lessons); err != nil {
		return nil, err
	}
	grid, err := slot.NewGrid(lessons...)
	if err != nil {
		return nil, err
	}
	return &DaySchedule{Identity: newIdentity(TableDaySchedule, id), Grid: grid}, nil
}

// Lesson returns the subject taught in the given period.
func (d *DaySchedule) Lesson(p slot.Position) (*Subject, bool) {
	return d.Get(p).Value()
}

func DayScheduleBlueprint() *core.Schema {
	subject := SubjectBlueprint()
	return core.MustSchema(core.NewSchema(TableDaySchedule.String(),
		append([]*core.Column{core.NewSerialColumn("id")}, slot.Columns(SubjectPrefix)...),
		slot.Links(SubjectPrefix, subject)...,
	))
}

// ToData writes the id of every scheduled subject into its period column;
// free periods stay NULL.
func (d *DaySchedule) ToData() (*core.Schema, error) {
	s, err := d.newData()
	if err != nil {
		return nil, err
	}
	if err := d.WriteIDs(s, SubjectPrefix, refID[Subject, *Subject]); err != nil {
		return nil, err
	}
	return s, nil
}

// DayScheduleFromData builds a DaySchedule whose subjects are resolved through
// subjects. A referenced id missing from the index is a dependency mismatch.
func DayScheduleFromData(s *core.Schema, subjects Index[*Subject]) (*DaySchedule, error) {
	id, err := readIdentity(s, TableDaySchedule)
	if err != nil {
		return nil, err
	}
	ids, err := slot.ReadIDs(s, SubjectPrefix)
	if err != nil {
		return nil, err
	}
	lessons := make([]slot.Entry[*Subject], 0, len(ids))
	for _, e := range ids {
		sid, _ := e.Value()
		subject, err := resolve(s, e.Position().Column(SubjectPrefix), sid, subjects)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, slot.NewEntry(e.Position(), subject))
	}
	return NewDaySchedule(id, lessons...)
}

func resolve[T Identified](s *core.Schema, column string, id int64, idx Index[T]) (T, error) {
	v, ok := idx.Lookup(id)
	if !ok {
		var zero T
		return zero, core.DependencyMismatch(s.Name(), column, "references id %d which is not among the supplied dependencies", id)
	}
	if v.ID() != id {
		var zero T
		return zero, core.DependencyMismatch(s.Name(), column, "references id %d, dependency has id %d", id, v.ID())
	}
	return v, nil
}
