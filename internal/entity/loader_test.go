package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetable/internal/core"
)

func fixtureCatalog(f *fixture) *Catalog {
	return &Catalog{
		Faculties:          []*Faculty{f.faculty},
		Courses:            []*Course{f.course},
		Groups:             []*Group{f.group},
		Teachers:           []*Teacher{f.teacher},
		Subjects:           []*Subject{f.algebra, f.history},
		WeekTypes:          []*WeekType{f.odd},
		DaySchedules:       []*DaySchedule{f.monday, f.tuesday},
		GroupWeekSchedules: []*GroupWeekSchedule{f.schedule},
	}
}

func TestLoader(t *testing.T) {
	f := newFixture(t)
	want := fixtureCatalog(f)

	t.Run("rebuilds catalog in dependency order", func(t *testing.T) {
		l := NewLoader()
		for _, e := range want.Schemables() {
			s, err := e.ToData()
			require.NoError(t, err)
			require.NoError(t, l.Add(s), e.Table().String())
		}
		got := l.Catalog()
		assert.Equal(t, want, got)

		week, err := got.TeacherWeek(got.Teachers[0], got.WeekTypes[0])
		require.NoError(t, err)
		assert.True(t, week.HasAny())
	})

	t.Run("reference before its target", func(t *testing.T) {
		l := NewLoader()
		s, err := f.course.ToData()
		require.NoError(t, err)
		assert.ErrorIs(t, l.Add(s), core.ErrDependencyMismatch)
	})

	t.Run("subject without teacher needs no teacher rows", func(t *testing.T) {
		l := NewLoader()
		s, err := f.history.ToData()
		require.NoError(t, err)
		require.NoError(t, l.Add(s))
		assert.Len(t, l.Catalog().Subjects, 1)
	})

	t.Run("unknown table", func(t *testing.T) {
		l := NewLoader()
		s := core.MustSchema(core.NewSchema("room", []*core.Column{core.NewSerialColumn("id")}))
		assert.ErrorIs(t, l.Add(s), core.ErrSchemaMismatch)
	})

	t.Run("missing required reference value", func(t *testing.T) {
		l := NewLoader()
		s := CourseBlueprint()
		require.NoError(t, s.SetInt("id", 1))
		require.NoError(t, s.SetInt("number", 1))
		assert.ErrorIs(t, l.Add(s), core.ErrNoData)
	})
}
