package entity

import "timetable/internal/core"

// WeekType distinguishes alternating week layouts, e.g. odd and even weeks.
type WeekType struct {
	Identity
	name string
}

func NewWeekType(id int64, name string) *WeekType {
	return &WeekType{Identity: newIdentity(TableWeekType, id), name: name}
}

func (w *WeekType) Name() string { return w.name }

func WeekTypeBlueprint() *core.Schema {
	return core.MustSchema(core.NewSchema(TableWeekType.String(), []*core.Column{
		core.NewSerialColumn("id"),
		core.NewTextColumn("name", 32, core.NotNull),
	}))
}

func (w *WeekType) ToData() (*core.Schema, error) {
	s, err := w.newData()
	if err != nil {
		return nil, err
	}
	if err := s.SetText("name", w.name); err != nil {
		return nil, err
	}
	return s, nil
}

func WeekTypeFromData(s *core.Schema) (*WeekType, error) {
	id, err := readIdentity(s, TableWeekType)
	if err != nil {
		return nil, err
	}
	name, err := s.Text("name")
	if err != nil {
		return nil, err
	}
	return NewWeekType(id, name), nil
}
