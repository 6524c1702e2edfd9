// Package slot models fixed-position grids of exactly seven slots: the days of
// a week and the lesson periods of a day. Each position is bound to an array
// index, to a foreign-key column name and to a human label.
package slot

import (
	"fmt"
	"time"

	"timetable/internal/core"
)

// Count is the number of positions in every grid.
const Count = 7

// Position is one of First..Seventh.
type Position int

const (
	First Position = iota
	Second
	Third
	Fourth
	Fifth
	Sixth
	Seventh
)

var ordinals = [Count]string{"first", "second", "third", "fourth", "fifth", "sixth", "seventh"}

// Positions returns all positions in order.
func Positions() []Position {
	return []Position{First, Second, Third, Fourth, Fifth, Sixth, Seventh}
}

// PositionAt maps an index in [0, 6] to its position.
func PositionAt(index int) (Position, error) {
	if index < 0 || index >= Count {
		return 0, &core.Error{Kind: core.ErrOutOfRange, Message: fmt.Sprintf("slot index %d outside [0,%d]", index, Count-1)}
	}
	return Position(index), nil
}

func (p Position) Index() int { return int(p) }

// Valid reports whether p is one of the seven positions.
func (p Position) Valid() bool { return p >= First && p <= Seventh }

func (p Position) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Position(%d)", int(p))
	}
	return ordinals[p]
}

// Column returns the foreign-key column bound to p, e.g. "third_subject_id".
func (p Position) Column(prefix string) string {
	return p.String() + "_" + prefix + "_id"
}

// Weekday returns the day of week a position stands for in a week grid.
// First is Monday.
func (p Position) Weekday() time.Weekday {
	return time.Weekday((int(p) + 1) % 7)
}

// Period is the clock time span of a lesson period, as offsets from midnight.
type Period struct {
	Start time.Duration
	End   time.Duration
}

func (p Period) String() string {
	return clock(p.Start) + "-" + clock(p.End)
}

func clock(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}

func hm(h, m int) time.Duration {
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute
}

var periods = [Count]Period{
	{hm(8, 30), hm(10, 0)},
	{hm(10, 10), hm(11, 40)},
	{hm(11, 50), hm(13, 20)},
	{hm(13, 50), hm(15, 20)},
	{hm(15, 30), hm(17, 0)},
	{hm(17, 10), hm(18, 40)},
	{hm(18, 45), hm(20, 15)},
}

// Period returns the lesson period a position stands for in a day grid. An
// invalid position has the zero Period.
func (p Position) Period() Period {
	if !p.Valid() {
		return Period{}
	}
	return periods[p]
}

// Labeler turns a position into the label shown to people.
type Labeler func(Position) string

// WeekdayLabel labels week-grid positions with weekday names.
func WeekdayLabel(p Position) string { return p.Weekday().String() }

// PeriodLabel labels day-grid positions with their start and end times.
func PeriodLabel(p Position) string { return p.Period().String() }
