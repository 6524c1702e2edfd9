package entity

import "timetable/internal/core"

// Faculty is a top-level academic unit.
type Faculty struct {
	Identity
	name string
}

func NewFaculty(id int64, name string) *Faculty {
	return &Faculty{Identity: newIdentity(TableFaculty, id), name: name}
}

func (f *Faculty) Name() string { return f.name }

// FacultyBlueprint describes the faculty table.
func FacultyBlueprint() *core.Schema {
	return core.MustSchema(core.NewSchema(TableFaculty.String(), []*core.Column{
		core.NewSerialColumn("id"),
		core.NewTextColumn("name", 255, core.NotNull),
	}))
}

func (f *Faculty) ToData() (*core.Schema, error) {
	s, err := f.newData()
	if err != nil {
		return nil, err
	}
	if err := s.SetText("name", f.name); err != nil {
		return nil, err
	}
	return s, nil
}

// FacultyFromData builds a Faculty from a filled faculty schema.
func FacultyFromData(s *core.Schema) (*Faculty, error) {
	id, err := readIdentity(s, TableFaculty)
	if err != nil {
		return nil, err
	}
	name, err := s.Text("name")
	if err != nil {
		return nil, err
	}
	return NewFaculty(id, name), nil
}
