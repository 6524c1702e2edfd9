// Package entity holds the persisted domain objects of the timetable and their
// mapping to core.Schema. Every persisted type has a blueprint function, a
// ToData method producing a filled schema and a <Type>FromData function that
// validates a filled schema against the blueprint and the already-resolved
// dependencies before calling the regular constructor.
package entity

import (
	"strings"

	"timetable/internal/core"
	"timetable/internal/slot"
)

// Table names of every persisted entity type.
type Table string

const (
	TableFaculty           Table = "faculty"
	TableCourse            Table = "course"
	TableGroup             Table = "student_group"
	TableTeacher           Table = "teacher"
	TableSubject           Table = "subject"
	TableWeekType          Table = "week_type"
	TableDaySchedule       Table = "day_schedule"
	TableGroupWeekSchedule Table = "group_week_schedule"
)

// Tables returns every table in foreign-key dependency order: each table only
// references tables listed before it.
func Tables() []Table {
	return []Table{
		TableFaculty,
		TableCourse,
		TableGroup,
		TableTeacher,
		TableSubject,
		TableWeekType,
		TableDaySchedule,
		TableGroupWeekSchedule,
	}
}

// Blueprints returns a fresh blueprint of every table in dependency order.
func Blueprints() []*core.Schema {
	tables := Tables()
	out := make([]*core.Schema, len(tables))
	for i, t := range tables {
		out[i] = t.Blueprint()
	}
	return out
}

// Blueprint builds the empty schema of the table. Each call returns a new
// object graph.
func (t Table) Blueprint() *core.Schema {
	switch t {
	case TableFaculty:
		return FacultyBlueprint()
	case TableCourse:
		return CourseBlueprint()
	case TableGroup:
		return GroupBlueprint()
	case TableTeacher:
		return TeacherBlueprint()
	case TableSubject:
		return SubjectBlueprint()
	case TableWeekType:
		return WeekTypeBlueprint()
	case TableDaySchedule:
		return DayScheduleBlueprint()
	case TableGroupWeekSchedule:
		return GroupWeekScheduleBlueprint()
	default:
		return nil
	}
}

func (t Table) String() string { return string(t) }

// Identified is anything with a persistent numeric id.
type Identified interface {
	ID() int64
}

// Schemable is implemented by every persisted entity.
type Schemable interface {
	Identified
	Table() Table
	ToData() (*core.Schema, error)
}

// UpsertQuery renders the upsert of e. An unsaved entity leaves its id to the
// server; a stored one must produce a complete row.
func UpsertQuery(e Schemable) (string, error) {
	data, err := e.ToData()
	if err != nil {
		return "", err
	}
	if e.ID() > 0 {
		return data.InsertQuery()
	}
	return data.InsertNewQuery()
}

// Identity is the minimal persistence identity embedded in every entity: the
// numeric id and the table whose blueprint describes the row. Id 0 means the
// row has not been stored yet; its id is assigned by AUTO_INCREMENT.
type Identity struct {
	id    int64
	table Table
}

func newIdentity(table Table, id int64) Identity {
	return Identity{id: id, table: table}
}

func (i Identity) ID() int64    { return i.id }
func (i Identity) Table() Table { return i.table }
func (i Identity) Stored() bool { return i.id > 0 }

// Blueprint returns a fresh empty schema of the identity's table.
func (i Identity) Blueprint() *core.Schema { return i.table.Blueprint() }

// newData returns a blueprint with the id column filled when the entity is stored.
func (i Identity) newData() (*core.Schema, error) {
	s := i.Blueprint()
	if i.Stored() {
		if err := s.SetInt("id", i.id); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// readIdentity checks that s has the shape of table's blueprint and returns the
// stored id, 0 when the id column is empty.
func readIdentity(s *core.Schema, table Table) (int64, error) {
	if s == nil {
		return 0, core.SchemaMismatch(table.String(), "schema is nil")
	}
	bp := table.Blueprint()
	if !s.SameShapeAs(bp) {
		return 0, core.SchemaMismatch(table.String(), "%s", strings.Join(s.Mismatches(bp), "; "))
	}
	id, _, err := s.OptionalInt("id")
	return id, err
}

// refID returns the id of a possibly nil entity pointer.
func refID[E any, P interface {
	*E
	Identified
}](p P) (int64, bool) {
	if p == nil {
		return 0, false
	}
	return p.ID(), true
}

// requiredRefID returns the id of a NOT NULL reference written by ToData.
func requiredRefID[E any, P interface {
	*E
	Identified
}](table Table, column string, p P) (int64, error) {
	id, ok := refID(p)
	if !ok {
		return 0, core.DependencyMismatch(table.String(), column, "required reference is nil")
	}
	return id, nil
}

// checkSlots rejects occupied slots holding a nil entity.
func checkSlots[E any](table Table, prefix string, entries []slot.Entry[*E]) error {
	for _, e := range entries {
		if v, ok := e.Value(); ok && v == nil {
			return core.DependencyMismatch(table.String(), e.Position().Column(prefix), "occupied slot holds no value")
		}
	}
	return nil
}

// checkRef verifies that a NOT NULL foreign key equals the id of the supplied dependency.
func checkRef(s *core.Schema, column string, depID int64, present bool) error {
	id, err := s.Int(column)
	if err != nil {
		return err
	}
	if !present {
		return core.DependencyMismatch(s.Name(), column, "references id %d but no dependency was supplied", id)
	}
	if id != depID {
		return core.DependencyMismatch(s.Name(), column, "references id %d, dependency has id %d", id, depID)
	}
	return nil
}

// checkOptionalRef verifies a nullable foreign key: an empty column requires
// an absent dependency and a filled one requires a dependency with equal id.
func checkOptionalRef(s *core.Schema, column string, depID int64, present bool) error {
	id, ok, err := s.OptionalInt(column)
	if err != nil {
		return err
	}
	switch {
	case !ok && present:
		return core.DependencyMismatch(s.Name(), column, "is NULL but dependency with id %d was supplied", depID)
	case ok && !present:
		return core.DependencyMismatch(s.Name(), column, "references id %d but no dependency was supplied", id)
	case ok && id != depID:
		return core.DependencyMismatch(s.Name(), column, "references id %d, dependency has id %d", id, depID)
	}
	return nil
}

// Index resolves already-loaded entities by id.
type Index[T Identified] map[int64]T

// NewIndex indexes items by their ids.
func NewIndex[T Identified](items ...T) Index[T] {
	idx := make(Index[T], len(items))
	for _, it := range items {
		idx[it.ID()] = it
	}
	return idx
}

// Lookup returns the entity with the given id.
func (idx Index[T]) Lookup(id int64) (T, bool) {
	v, ok := idx[id]
	return v, ok
}
