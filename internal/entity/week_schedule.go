package entity

import (
	"timetable/internal/core"
	"timetable/internal/slot"
)

// DayPrefix names the grid columns of a week schedule: first_day_id ... seventh_day_id.
const DayPrefix = "day"

// GroupWeekSchedule is the week plan of a group for one week type: seven
// weekday slots, each holding an optional DaySchedule.
type GroupWeekSchedule struct {
	Identity
	slot.Grid[*DaySchedule]
	group    *Group
	weekType *WeekType
}

// NewGroupWeekSchedule places each day at its own weekday. An occupied day
// must hold a schedule.
func NewGroupWeekSchedule(id int64, group *Group, weekType *WeekType, days ...slot.Entry[*DaySchedule]) (*GroupWeekSchedule, error) {
	if err := checkSlots(TableGroupWeekSchedule, DayPrefix, days); err != nil {
		return nil, err
	}
	grid, err := slot.NewGrid(days...)
	if err != nil {
		return nil, err
	}
	return &GroupWeekSchedule{
		Identity: newIdentity(TableGroupWeekSchedule, id),
		Grid:     grid,
		group:    group,
		weekType: weekType,
	}, nil
}

func (w *GroupWeekSchedule) Group() *Group       { return w.group }
func (w *GroupWeekSchedule) WeekType() *WeekType { return w.weekType }

// Day returns the schedule of the weekday at p.
func (w *GroupWeekSchedule) Day(p slot.Position) (*DaySchedule, bool) {
	return w.Get(p).Value()
}

func GroupWeekScheduleBlueprint() *core.Schema {
	cols := []*core.Column{
		core.NewSerialColumn("id"),
		core.NewIntColumn("group_id", core.NotNull),
		core.NewIntColumn("week_type_id", core.NotNull),
	}
	links := []core.ReferenceLink{
		core.MustLinkTo("group_id", GroupBlueprint(), "id"),
		core.MustLinkTo("week_type_id", WeekTypeBlueprint(), "id"),
	}
	return core.MustSchema(core.NewSchema(TableGroupWeekSchedule.String(),
		append(cols, slot.Columns(DayPrefix)...),
		append(links, slot.Links(DayPrefix, DayScheduleBlueprint())...)...,
	))
}

func (w *GroupWeekSchedule) ToData() (*core.Schema, error) {
	s, err := w.newData()
	if err != nil {
		return nil, err
	}
	groupID, err := requiredRefID(TableGroupWeekSchedule, "group_id", w.group)
	if err != nil {
		return nil, err
	}
	if err := s.SetInt("group_id", groupID); err != nil {
		return nil, err
	}
	weekTypeID, err := requiredRefID(TableGroupWeekSchedule, "week_type_id", w.weekType)
	if err != nil {
		return nil, err
	}
	if err := s.SetInt("week_type_id", weekTypeID); err != nil {
		return nil, err
	}
	if err := w.WriteIDs(s, DayPrefix, refID[DaySchedule, *DaySchedule]); err != nil {
		return nil, err
	}
	return s, nil
}

// GroupWeekScheduleFromData builds a GroupWeekSchedule. group and weekType must
// be the entities referenced by the row; days resolves the weekday slots.
func GroupWeekScheduleFromData(s *core.Schema, group *Group, weekType *WeekType, days Index[*DaySchedule]) (*GroupWeekSchedule, error) {
	id, err := readIdentity(s, TableGroupWeekSchedule)
	if err != nil {
		return nil, err
	}
	groupID, ok := refID(group)
	if err := checkRef(s, "group_id", groupID, ok); err != nil {
		return nil, err
	}
	weekTypeID, ok := refID(weekType)
	if err := checkRef(s, "week_type_id", weekTypeID, ok); err != nil {
		return nil, err
	}
	ids, err := slot.ReadIDs(s, DayPrefix)
	if err != nil {
		return nil, err
	}
	entries := make([]slot.Entry[*DaySchedule], 0, len(ids))
	for _, e := range ids {
		did, _ := e.Value()
		day, err := resolve(s, e.Position().Column(DayPrefix), did, days)
		if err != nil {
			return nil, err
		}
		entries = append(entries, slot.NewEntry(e.Position(), day))
	}
	return NewGroupWeekSchedule(id, group, weekType, entries...)
}
