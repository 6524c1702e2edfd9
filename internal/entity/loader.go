package entity

import (
	"timetable/internal/core"
)

// Loader rebuilds a Catalog from filled schemas. Rows must arrive in the order
// of Tables() so that every reference resolves against entities loaded before.
type Loader struct {
	catalog      Catalog
	faculties    Index[*Faculty]
	courses      Index[*Course]
	groups       Index[*Group]
	teachers     Index[*Teacher]
	subjects     Index[*Subject]
	weekTypes    Index[*WeekType]
	daySchedules Index[*DaySchedule]
}

func NewLoader() *Loader {
	return &Loader{
		faculties:    Index[*Faculty]{},
		courses:      Index[*Course]{},
		groups:       Index[*Group]{},
		teachers:     Index[*Teacher]{},
		subjects:     Index[*Subject]{},
		weekTypes:    Index[*WeekType]{},
		daySchedules: Index[*DaySchedule]{},
	}
}

// Add converts one row of any table and records the entity. A reference to an
// id that was not loaded yet fails with ErrDependencyMismatch.
func (l *Loader) Add(s *core.Schema) error {
	if s == nil {
		return core.SchemaMismatch("", "schema is nil")
	}
	switch Table(s.Name()) {
	case TableFaculty:
		f, err := FacultyFromData(s)
		if err != nil {
			return err
		}
		l.faculties[f.ID()] = f
		l.catalog.Faculties = append(l.catalog.Faculties, f)
	case TableCourse:
		faculty, err := required(s, "faculty_id", l.faculties)
		if err != nil {
			return err
		}
		c, err := CourseFromData(s, faculty)
		if err != nil {
			return err
		}
		l.courses[c.ID()] = c
		l.catalog.Courses = append(l.catalog.Courses, c)
	case TableGroup:
		course, err := required(s, "course_id", l.courses)
		if err != nil {
			return err
		}
		g, err := GroupFromData(s, course)
		if err != nil {
			return err
		}
		l.groups[g.ID()] = g
		l.catalog.Groups = append(l.catalog.Groups, g)
	case TableTeacher:
		t, err := TeacherFromData(s)
		if err != nil {
			return err
		}
		l.teachers[t.ID()] = t
		l.catalog.Teachers = append(l.catalog.Teachers, t)
	case TableSubject:
		teacher, err := optional(s, "teacher_id", l.teachers)
		if err != nil {
			return err
		}
		sub, err := SubjectFromData(s, teacher)
		if err != nil {
			return err
		}
		l.subjects[sub.ID()] = sub
		l.catalog.Subjects = append(l.catalog.Subjects, sub)
	case TableWeekType:
		w, err := WeekTypeFromData(s)
		if err != nil {
			return err
		}
		l.weekTypes[w.ID()] = w
		l.catalog.WeekTypes = append(l.catalog.WeekTypes, w)
	case TableDaySchedule:
		d, err := DayScheduleFromData(s, l.subjects)
		if err != nil {
			return err
		}
		l.daySchedules[d.ID()] = d
		l.catalog.DaySchedules = append(l.catalog.DaySchedules, d)
	case TableGroupWeekSchedule:
		group, err := required(s, "group_id", l.groups)
		if err != nil {
			return err
		}
		weekType, err := required(s, "week_type_id", l.weekTypes)
		if err != nil {
			return err
		}
		w, err := GroupWeekScheduleFromData(s, group, weekType, l.daySchedules)
		if err != nil {
			return err
		}
		l.catalog.GroupWeekSchedules = append(l.catalog.GroupWeekSchedules, w)
	default:
		return core.SchemaMismatch(s.Name(), "not a timetable table")
	}
	return nil
}

// Catalog returns everything added so far.
func (l *Loader) Catalog() *Catalog {
	c := l.catalog
	return &c
}

// required looks up the entity referenced by a NOT NULL column. An unknown id
// yields the zero T, which the FromData function reports as a mismatch.
func required[T Identified](s *core.Schema, column string, idx Index[T]) (T, error) {
	id, err := s.Int(column)
	if err != nil {
		var zero T
		return zero, err
	}
	v, _ := idx.Lookup(id)
	return v, nil
}

func optional[T Identified](s *core.Schema, column string, idx Index[T]) (T, error) {
	var zero T
	id, ok, err := s.OptionalInt(column)
	if err != nil || !ok {
		return zero, err
	}
	v, _ := idx.Lookup(id)
	return v, nil
}
