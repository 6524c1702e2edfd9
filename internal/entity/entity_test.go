package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetable/internal/core"
	"timetable/internal/slot"
)

type fixture struct {
	faculty  *Faculty
	course   *Course
	group    *Group
	teacher  *Teacher
	algebra  *Subject
	history  *Subject
	odd      *WeekType
	monday   *DaySchedule
	tuesday  *DaySchedule
	schedule *GroupWeekSchedule
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{}
	f.faculty = NewFaculty(1, "science")
	f.course = NewCourse(2, 1, f.faculty)
	f.group = NewGroup(3, "SC-101", f.course)
	f.teacher = NewTeacher(4, "Ada Lovelace")
	f.algebra = NewSubject(5, "Algebra", f.teacher, "B-12")
	f.history = NewSubject(6, "History", nil, "")
	f.odd = NewWeekType(7, "odd")

	var err error
	f.monday, err = NewDaySchedule(8,
		slot.NewEntry(slot.First, f.algebra),
		slot.NewEntry(slot.Third, f.history),
	)
	require.NoError(t, err)
	f.tuesday, err = NewDaySchedule(9, slot.NewEntry(slot.Second, f.algebra))
	require.NoError(t, err)
	f.schedule, err = NewGroupWeekSchedule(10, f.group, f.odd,
		slot.NewEntry(slot.Second, f.tuesday),
		slot.NewEntry(slot.First, f.monday),
	)
	require.NoError(t, err)
	return f
}

func TestRoundTrip(t *testing.T) {
	f := newFixture(t)

	t.Run("faculty", func(t *testing.T) {
		s, err := f.faculty.ToData()
		require.NoError(t, err)
		got, err := FacultyFromData(s)
		require.NoError(t, err)
		assert.Equal(t, f.faculty, got)
	})

	t.Run("course", func(t *testing.T) {
		s, err := f.course.ToData()
		require.NoError(t, err)
		got, err := CourseFromData(s, f.faculty)
		require.NoError(t, err)
		assert.Equal(t, f.course, got)
	})

	t.Run("group", func(t *testing.T) {
		s, err := f.group.ToData()
		require.NoError(t, err)
		got, err := GroupFromData(s, f.course)
		require.NoError(t, err)
		assert.Equal(t, f.group, got)
	})

	t.Run("teacher", func(t *testing.T) {
		s, err := f.teacher.ToData()
		require.NoError(t, err)
		got, err := TeacherFromData(s)
		require.NoError(t, err)
		assert.Equal(t, f.teacher, got)
	})

	t.Run("subject with teacher and classroom", func(t *testing.T) {
		s, err := f.algebra.ToData()
		require.NoError(t, err)
		got, err := SubjectFromData(s, f.teacher)
		require.NoError(t, err)
		assert.Equal(t, f.algebra, got)
		assert.True(t, got.HasTeacher())
		assert.True(t, got.HasClassroom())
	})

	t.Run("subject without optional fields", func(t *testing.T) {
		s, err := f.history.ToData()
		require.NoError(t, err)
		assert.False(t, s.HasData("teacher_id"))
		assert.False(t, s.HasData("classroom"))

		got, err := SubjectFromData(s, nil)
		require.NoError(t, err)
		assert.Equal(t, f.history, got)
		assert.False(t, got.HasTeacher())
		assert.Equal(t, "", got.Classroom())
	})

	t.Run("week type", func(t *testing.T) {
		s, err := f.odd.ToData()
		require.NoError(t, err)
		got, err := WeekTypeFromData(s)
		require.NoError(t, err)
		assert.Equal(t, f.odd, got)
	})

	t.Run("day schedule", func(t *testing.T) {
		s, err := f.monday.ToData()
		require.NoError(t, err)
		got, err := DayScheduleFromData(s, NewIndex(f.algebra, f.history))
		require.NoError(t, err)
		assert.Equal(t, f.monday, got)
	})

	t.Run("group week schedule", func(t *testing.T) {
		s, err := f.schedule.ToData()
		require.NoError(t, err)
		got, err := GroupWeekScheduleFromData(s, f.group, f.odd, NewIndex(f.monday, f.tuesday))
		require.NoError(t, err)
		assert.Equal(t, f.schedule, got)
	})

	t.Run("unsaved entity keeps id unset", func(t *testing.T) {
		fresh := NewFaculty(0, "arts")
		s, err := fresh.ToData()
		require.NoError(t, err)
		assert.False(t, s.HasData("id"))

		_, err = s.InsertQuery()
		assert.ErrorIs(t, err, core.ErrConstraintViolation)

		q, err := UpsertQuery(fresh)
		require.NoError(t, err)
		assert.Equal(t, `INSERT INTO "faculty" ("name") VALUES ('arts') ON DUPLICATE KEY UPDATE "name" = VALUES("name");`, q)

		got, err := FacultyFromData(s)
		require.NoError(t, err)
		assert.Equal(t, fresh, got)
		assert.False(t, got.Stored())
	})
}

func TestDayScheduleToDataWritesOccupiedSlotsOnly(t *testing.T) {
	f := newFixture(t)

	s, err := f.monday.ToData()
	require.NoError(t, err)

	first, err := s.Int("first_subject_id")
	require.NoError(t, err)
	assert.Equal(t, f.algebra.ID(), first)
	third, err := s.Int("third_subject_id")
	require.NoError(t, err)
	assert.Equal(t, f.history.ID(), third)

	for _, p := range []slot.Position{slot.Second, slot.Fourth, slot.Fifth, slot.Sixth, slot.Seventh} {
		assert.False(t, s.HasData(p.Column(SubjectPrefix)), p.String())
	}

	q, err := s.InsertQuery()
	require.NoError(t, err)
	assert.Equal(t,
		`INSERT INTO "day_schedule" ("id", "first_subject_id", "third_subject_id") VALUES ('8', '5', '6') `+
			`ON DUPLICATE KEY UPDATE "id" = VALUES("id"), "first_subject_id" = VALUES("first_subject_id"), "third_subject_id" = VALUES("third_subject_id");`,
		q)
}

func TestDaySchedule(t *testing.T) {
	f := newFixture(t)

	assert.True(t, f.monday.HasAny())
	has, err := f.monday.HasAt(2)
	require.NoError(t, err)
	assert.True(t, has)
	has, err = f.monday.HasAt(1)
	require.NoError(t, err)
	assert.False(t, has)
	_, err = f.monday.HasAt(7)
	assert.ErrorIs(t, err, core.ErrOutOfRange)

	lesson, ok := f.monday.Lesson(slot.Third)
	require.True(t, ok)
	assert.Equal(t, "History", lesson.Name())

	empty, err := NewDaySchedule(0)
	require.NoError(t, err)
	assert.False(t, empty.HasAny())

	var s Schemable = f.monday
	assert.Equal(t, TableDaySchedule, s.Table())
	assert.Equal(t, int64(8), s.ID())
}

func TestFromDataSchemaMismatch(t *testing.T) {
	f := newFixture(t)

	t.Run("different table", func(t *testing.T) {
		s, err := f.teacher.ToData()
		require.NoError(t, err)
		_, err = FacultyFromData(s)
		assert.ErrorIs(t, err, core.ErrSchemaMismatch)
	})

	t.Run("missing column", func(t *testing.T) {
		s := core.MustSchema(core.NewSchema("faculty", []*core.Column{core.NewSerialColumn("id")}))
		_, err := FacultyFromData(s)
		assert.ErrorIs(t, err, core.ErrSchemaMismatch)
	})

	t.Run("extra column", func(t *testing.T) {
		s := core.MustSchema(core.NewSchema("teacher", []*core.Column{
			core.NewSerialColumn("id"),
			core.NewTextColumn("name", 255, core.NotNull),
			core.NewTextColumn("email", 255, core.Nullable),
		}))
		_, err := TeacherFromData(s)
		assert.ErrorIs(t, err, core.ErrSchemaMismatch)
	})

	t.Run("missing reference", func(t *testing.T) {
		s := core.MustSchema(core.NewSchema("course", []*core.Column{
			core.NewSerialColumn("id"),
			core.NewIntColumn("number", core.NotNull),
			core.NewIntColumn("faculty_id", core.NotNull),
		}))
		_, err := CourseFromData(s, f.faculty)
		assert.ErrorIs(t, err, core.ErrSchemaMismatch)
	})

	t.Run("nil schema", func(t *testing.T) {
		_, err := WeekTypeFromData(nil)
		assert.ErrorIs(t, err, core.ErrSchemaMismatch)
	})
}

func TestFromDataDependencyMismatch(t *testing.T) {
	f := newFixture(t)

	t.Run("group week schedule with foreign group", func(t *testing.T) {
		s, err := f.schedule.ToData()
		require.NoError(t, err)
		other := NewGroup(99, "SC-102", f.course)

		_, err = GroupWeekScheduleFromData(s, other, f.odd, NewIndex(f.monday, f.tuesday))
		assert.ErrorIs(t, err, core.ErrDependencyMismatch)
	})

	t.Run("group week schedule with foreign week type", func(t *testing.T) {
		s, err := f.schedule.ToData()
		require.NoError(t, err)
		_, err = GroupWeekScheduleFromData(s, f.group, NewWeekType(70, "even"), NewIndex(f.monday, f.tuesday))
		assert.ErrorIs(t, err, core.ErrDependencyMismatch)
	})

	t.Run("group week schedule with unknown day", func(t *testing.T) {
		s, err := f.schedule.ToData()
		require.NoError(t, err)
		_, err = GroupWeekScheduleFromData(s, f.group, f.odd, NewIndex(f.monday))
		assert.ErrorIs(t, err, core.ErrDependencyMismatch)
	})

	t.Run("nil required dependency", func(t *testing.T) {
		s, err := f.course.ToData()
		require.NoError(t, err)
		_, err = CourseFromData(s, nil)
		assert.ErrorIs(t, err, core.ErrDependencyMismatch)
	})

	t.Run("course with foreign faculty", func(t *testing.T) {
		s, err := f.course.ToData()
		require.NoError(t, err)
		_, err = CourseFromData(s, NewFaculty(42, "arts"))
		assert.ErrorIs(t, err, core.ErrDependencyMismatch)
	})

	t.Run("group with foreign course", func(t *testing.T) {
		s, err := f.group.ToData()
		require.NoError(t, err)
		_, err = GroupFromData(s, NewCourse(42, 2, f.faculty))
		assert.ErrorIs(t, err, core.ErrDependencyMismatch)
	})

	t.Run("subject teacher supplied for empty column", func(t *testing.T) {
		s, err := f.history.ToData()
		require.NoError(t, err)
		_, err = SubjectFromData(s, f.teacher)
		assert.ErrorIs(t, err, core.ErrDependencyMismatch)
	})

	t.Run("subject teacher missing", func(t *testing.T) {
		s, err := f.algebra.ToData()
		require.NoError(t, err)
		_, err = SubjectFromData(s, nil)
		assert.ErrorIs(t, err, core.ErrDependencyMismatch)
	})

	t.Run("subject with foreign teacher", func(t *testing.T) {
		s, err := f.algebra.ToData()
		require.NoError(t, err)
		_, err = SubjectFromData(s, NewTeacher(40, "Grace Hopper"))
		assert.ErrorIs(t, err, core.ErrDependencyMismatch)
	})

	t.Run("day schedule with unknown subject", func(t *testing.T) {
		s, err := f.monday.ToData()
		require.NoError(t, err)
		_, err = DayScheduleFromData(s, NewIndex(f.algebra))
		assert.ErrorIs(t, err, core.ErrDependencyMismatch)
	})

	t.Run("index keyed by a different id", func(t *testing.T) {
		s, err := f.tuesday.ToData()
		require.NoError(t, err)
		_, err = DayScheduleFromData(s, Index[*Subject]{f.algebra.ID(): f.history})
		assert.ErrorIs(t, err, core.ErrDependencyMismatch)
	})
}

func TestToDataRejectsOversizedText(t *testing.T) {
	w := NewWeekType(1, "a week type name that is far too long for its column")
	_, err := w.ToData()
	assert.ErrorIs(t, err, core.ErrConstraintViolation)
}

func TestBlueprints(t *testing.T) {
	bps := Blueprints()
	require.Len(t, bps, len(Tables()))

	seen := map[string]*core.Schema{}
	for _, bp := range bps {
		for _, l := range bp.Links() {
			target, ok := seen[l.TargetTable()]
			require.True(t, ok, "%s references %s before it is declared", bp.Name(), l.TargetTable())
			assert.True(t, target.HasColumn(l.TargetColumn()))
		}
		seen[bp.Name()] = bp
	}

	t.Run("fresh object graph per call", func(t *testing.T) {
		a := FacultyBlueprint()
		require.NoError(t, a.SetText("name", "x"))
		assert.False(t, FacultyBlueprint().HasData("name"))
	})

	t.Run("unknown table", func(t *testing.T) {
		assert.Nil(t, Table("nope").Blueprint())
	})

	t.Run("week schedule layout", func(t *testing.T) {
		bp := GroupWeekScheduleBlueprint()
		assert.Equal(t, []string{
			"id", "group_id", "week_type_id",
			"first_day_id", "second_day_id", "third_day_id", "fourth_day_id",
			"fifth_day_id", "sixth_day_id", "seventh_day_id",
		}, bp.ColumnNames())
		assert.Len(t, bp.Links(), 2+slot.Count)
	})
}

func TestNilReferences(t *testing.T) {
	f := newFixture(t)

	t.Run("to data rejects missing required references", func(t *testing.T) {
		noTypeWeek, err := NewGroupWeekSchedule(13, f.group, nil)
		require.NoError(t, err)
		noGroupWeek, err := NewGroupWeekSchedule(14, nil, f.odd)
		require.NoError(t, err)

		tests := []struct {
			name   string
			entity Schemable
			table  Table
			column string
		}{
			{"course without faculty", NewCourse(1, 1, nil), TableCourse, "faculty_id"},
			{"group without course", NewGroup(1, "A", nil), TableGroup, "course_id"},
			{"week without group", noGroupWeek, TableGroupWeekSchedule, "group_id"},
			{"week without week type", noTypeWeek, TableGroupWeekSchedule, "week_type_id"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				s, err := tt.entity.ToData()
				require.ErrorIs(t, err, core.ErrDependencyMismatch)
				assert.Nil(t, s)

				var e *core.Error
				require.ErrorAs(t, err, &e)
				assert.Equal(t, tt.table.String(), e.Table)
				assert.Equal(t, tt.column, e.Column)

				_, err = UpsertQuery(tt.entity)
				assert.ErrorIs(t, err, core.ErrDependencyMismatch)
			})
		}
	})

	t.Run("day schedule rejects a nil subject", func(t *testing.T) {
		d, err := NewDaySchedule(1, slot.NewEntry[*Subject](slot.First, nil))
		require.ErrorIs(t, err, core.ErrDependencyMismatch)
		assert.Nil(t, d)

		var e *core.Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, "first_subject_id", e.Column)
	})

	t.Run("week schedule rejects a nil day", func(t *testing.T) {
		w, err := NewGroupWeekSchedule(1, f.group, f.odd, slot.NewEntry[*DaySchedule](slot.Fourth, nil))
		require.ErrorIs(t, err, core.ErrDependencyMismatch)
		assert.Nil(t, w)

		var e *core.Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, "fourth_day_id", e.Column)
	})

	t.Run("explicit empty slot is not a nil value", func(t *testing.T) {
		d, err := NewDaySchedule(1, slot.EmptyEntry[*Subject](slot.First))
		require.NoError(t, err)
		assert.False(t, d.HasAny())
	})
}
