package slot

import (
	"fmt"

	"timetable/internal/core"
)

// Entry is a slot at a fixed position that may hold a value.
type Entry[T any] struct {
	position Position
	value    T
	ok       bool
}

// NewEntry returns an occupied entry.
func NewEntry[T any](p Position, v T) Entry[T] {
	return Entry[T]{position: p, value: v, ok: true}
}

// EmptyEntry returns an unoccupied entry.
func EmptyEntry[T any](p Position) Entry[T] {
	return Entry[T]{position: p}
}

func (e Entry[T]) Position() Position { return e.position }
func (e Entry[T]) Index() int         { return e.position.Index() }
func (e Entry[T]) Has() bool          { return e.ok }

// Value returns the held value and whether the slot is occupied.
func (e Entry[T]) Value() (T, bool) { return e.value, e.ok }

// Grid is an ordered array of exactly seven entries.
type Grid[T any] struct {
	entries [Count]Entry[T]
}

// NewGrid fills all seven positions with empty entries and then places each
// given entry at its own position. Entries may come in any subset and order;
// a later entry for the same position replaces an earlier one.
func NewGrid[T any](entries ...Entry[T]) (Grid[T], error) {
	var g Grid[T]
	for _, p := range Positions() {
		g.entries[p] = EmptyEntry[T](p)
	}
	for _, e := range entries {
		if !e.position.Valid() {
			return Grid[T]{}, &core.Error{Kind: core.ErrOutOfRange, Message: fmt.Sprintf("entry at invalid %s", e.position)}
		}
		g.entries[e.position] = e
	}
	return g, nil
}

// HasAny reports whether any slot is occupied.
func (g Grid[T]) HasAny() bool {
	for _, e := range g.entries {
		if e.ok {
			return true
		}
	}
	return false
}

// HasAt reports whether the slot at index is occupied.
func (g Grid[T]) HasAt(index int) (bool, error) {
	p, err := PositionAt(index)
	if err != nil {
		return false, err
	}
	return g.entries[p].ok, nil
}

// At returns the entry at index.
func (g Grid[T]) At(index int) (Entry[T], error) {
	p, err := PositionAt(index)
	if err != nil {
		return Entry[T]{}, err
	}
	return g.entries[p], nil
}

// Get returns the entry at p. An invalid position yields an empty entry.
func (g Grid[T]) Get(p Position) Entry[T] {
	if !p.Valid() {
		return EmptyEntry[T](p)
	}
	return g.entries[p]
}

// Entries returns all seven entries in position order.
func (g Grid[T]) Entries() []Entry[T] {
	out := make([]Entry[T], Count)
	copy(out, g.entries[:])
	return out
}

// Occupied returns the occupied entries in position order.
func (g Grid[T]) Occupied() []Entry[T] {
	var out []Entry[T]
	for _, e := range g.entries {
		if e.ok {
			out = append(out, e)
		}
	}
	return out
}

// WriteIDs stores id(value) into the column bound to each occupied slot and
// leaves the columns of empty slots untouched. An occupied slot whose value
// has no id fails with ErrDependencyMismatch.
func (g Grid[T]) WriteIDs(s *core.Schema, prefix string, id func(T) (int64, bool)) error {
	for _, e := range g.Occupied() {
		column := e.position.Column(prefix)
		v, ok := id(e.value)
		if !ok {
			return core.DependencyMismatch(s.Name(), column, "occupied slot holds no value")
		}
		if err := s.SetInt(column, v); err != nil {
			return err
		}
	}
	return nil
}

// Columns returns the seven foreign-key columns of a grid, nullable INT, in
// position order.
func Columns(prefix string) []*core.Column {
	cols := make([]*core.Column, 0, Count)
	for _, p := range Positions() {
		cols = append(cols, core.NewIntColumn(p.Column(prefix), core.Nullable))
	}
	return cols
}

// Links returns the seven foreign keys of a grid pointing at target.id.
func Links(prefix string, target *core.Schema) []core.ReferenceLink {
	links := make([]core.ReferenceLink, 0, Count)
	for _, p := range Positions() {
		links = append(links, core.MustLinkTo(p.Column(prefix), target, "id"))
	}
	return links
}

// ReadIDs returns an occupied entry for every grid column of s that holds an id.
func ReadIDs(s *core.Schema, prefix string) ([]Entry[int64], error) {
	var out []Entry[int64]
	for _, p := range Positions() {
		id, ok, err := s.OptionalInt(p.Column(prefix))
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, NewEntry(p, id))
		}
	}
	return out, nil
}
