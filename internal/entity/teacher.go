package entity

import "timetable/internal/core"

type Teacher struct {
	Identity
	name string
}

func NewTeacher(id int64, name string) *Teacher {
	return &Teacher{Identity: newIdentity(TableTeacher, id), name: name}
}

func (t *Teacher) Name() string { return t.name }

func TeacherBlueprint() *core.Schema {
	return core.MustSchema(core.NewSchema(TableTeacher.String(), []*core.Column{
		core.NewSerialColumn("id"),
		core.NewTextColumn("name", 255, core.NotNull),
	}))
}

func (t *Teacher) ToData() (*core.Schema, error) {
	s, err := t.newData()
	if err != nil {
		return nil, err
	}
	if err := s.SetText("name", t.name); err != nil {
		return nil, err
	}
	return s, nil
}

func TeacherFromData(s *core.Schema) (*Teacher, error) {
	id, err := readIdentity(s, TableTeacher)
	if err != nil {
		return nil, err
	}
	name, err := s.Text("name")
	if err != nil {
		return nil, err
	}
	return NewTeacher(id, name), nil
}
