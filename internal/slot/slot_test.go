package slot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetable/internal/core"
)

func TestPositions(t *testing.T) {
	ps := Positions()
	require.Len(t, ps, Count)
	for i, p := range ps {
		assert.Equal(t, i, p.Index())
		got, err := PositionAt(i)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	for _, bad := range []int{-1, 7, 100} {
		_, err := PositionAt(bad)
		assert.ErrorIs(t, err, core.ErrOutOfRange, "index %d", bad)
	}
}

func TestPositionLabels(t *testing.T) {
	assert.Equal(t, "first_subject_id", First.Column("subject"))
	assert.Equal(t, "seventh_day_id", Seventh.Column("day"))
	assert.Equal(t, "third", Third.String())
	assert.Equal(t, "Position(9)", Position(9).String())

	assert.Equal(t, time.Monday, First.Weekday())
	assert.Equal(t, time.Saturday, Sixth.Weekday())
	assert.Equal(t, time.Sunday, Seventh.Weekday())
	assert.Equal(t, "Wednesday", WeekdayLabel(Third))

	assert.Equal(t, Period{}, Position(7).Period())
	assert.Equal(t, Period{}, Position(-1).Period())
	assert.Equal(t, "00:00-00:00", PeriodLabel(Position(12)))

	assert.Equal(t, "08:30-10:00", PeriodLabel(First))
	assert.Equal(t, "18:45-20:15", Seventh.Period().String())
	for _, p := range Positions()[1:] {
		prev := Position(p.Index() - 1).Period()
		assert.Less(t, prev.End, p.Period().Start, "periods must not overlap")
	}
}

func TestNewGrid(t *testing.T) {
	t.Run("empty grid", func(t *testing.T) {
		g, err := NewGrid[string]()
		require.NoError(t, err)
		assert.False(t, g.HasAny())
		assert.Len(t, g.Entries(), Count)
		assert.Empty(t, g.Occupied())
		for i, e := range g.Entries() {
			assert.Equal(t, i, e.Index())
			assert.False(t, e.Has())
		}
	})

	t.Run("entries placed by their own position", func(t *testing.T) {
		g, err := NewGrid(NewEntry(Fifth, "e"), NewEntry(Second, "b"))
		require.NoError(t, err)
		assert.True(t, g.HasAny())

		has, err := g.HasAt(1)
		require.NoError(t, err)
		assert.True(t, has)
		has, err = g.HasAt(0)
		require.NoError(t, err)
		assert.False(t, has)

		occ := g.Occupied()
		require.Len(t, occ, 2)
		assert.Equal(t, Second, occ[0].Position())
		assert.Equal(t, Fifth, occ[1].Position())

		v, ok := g.Get(Fifth).Value()
		assert.True(t, ok)
		assert.Equal(t, "e", v)
	})

	t.Run("later entry wins", func(t *testing.T) {
		g, err := NewGrid(NewEntry(First, "a"), NewEntry(First, "z"))
		require.NoError(t, err)
		e, err := g.At(0)
		require.NoError(t, err)
		v, _ := e.Value()
		assert.Equal(t, "z", v)
	})

	t.Run("explicit empty entry clears", func(t *testing.T) {
		g, err := NewGrid(NewEntry(First, "a"), EmptyEntry[string](First))
		require.NoError(t, err)
		assert.False(t, g.HasAny())
	})

	t.Run("invalid position", func(t *testing.T) {
		_, err := NewGrid(NewEntry(Position(8), "x"))
		assert.ErrorIs(t, err, core.ErrOutOfRange)
	})

	t.Run("get at invalid position is empty", func(t *testing.T) {
		g, err := NewGrid(NewEntry(First, "a"))
		require.NoError(t, err)
		for _, p := range []Position{-1, 7, 100} {
			e := g.Get(p)
			assert.False(t, e.Has(), p.String())
			assert.Equal(t, p, e.Position())
		}
	})

	t.Run("index out of range", func(t *testing.T) {
		g, err := NewGrid[int]()
		require.NoError(t, err)
		_, err = g.HasAt(7)
		assert.ErrorIs(t, err, core.ErrOutOfRange)
		_, err = g.HasAt(-1)
		assert.ErrorIs(t, err, core.ErrOutOfRange)
		_, err = g.At(7)
		assert.ErrorIs(t, err, core.ErrOutOfRange)
	})
}

func TestGridColumns(t *testing.T) {
	target := core.MustSchema(core.NewSchema("subject", []*core.Column{core.NewSerialColumn("id")}))
	parent := core.MustSchema(core.NewSchema("day_schedule",
		append([]*core.Column{core.NewSerialColumn("id")}, Columns("subject")...),
		Links("subject", target)...,
	))
	assert.Equal(t, []string{
		"id",
		"first_subject_id", "second_subject_id", "third_subject_id", "fourth_subject_id",
		"fifth_subject_id", "sixth_subject_id", "seventh_subject_id",
	}, parent.ColumnNames())
	assert.Len(t, parent.Links(), Count)

	g, err := NewGrid(NewEntry(First, int64(10)), NewEntry(Third, int64(30)))
	require.NoError(t, err)
	require.NoError(t, g.WriteIDs(parent, "subject", func(v int64) (int64, bool) { return v, true }))

	assert.True(t, parent.HasData("first_subject_id"))
	assert.True(t, parent.HasData("third_subject_id"))
	for _, p := range []Position{Second, Fourth, Fifth, Sixth, Seventh} {
		assert.False(t, parent.HasData(p.Column("subject")), p.String())
	}

	ids, err := ReadIDs(parent, "subject")
	require.NoError(t, err)
	assert.Equal(t, []Entry[int64]{NewEntry(First, int64(10)), NewEntry(Third, int64(30))}, ids)
}

func TestWriteIDsRejectsValueWithoutID(t *testing.T) {
	parent := core.MustSchema(core.NewSchema("day_schedule",
		append([]*core.Column{core.NewSerialColumn("id")}, Columns("subject")...),
	))
	g, err := NewGrid(NewEntry(First, int64(10)), NewEntry(Second, int64(0)))
	require.NoError(t, err)

	err = g.WriteIDs(parent, "subject", func(v int64) (int64, bool) { return v, v != 0 })
	require.ErrorIs(t, err, core.ErrDependencyMismatch)

	var e *core.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "second_subject_id", e.Column)
}
