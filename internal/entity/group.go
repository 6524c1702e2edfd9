package entity

import "timetable/internal/core"

// Group is a student group attending one course.
type Group struct {
	Identity
	name   string
	course *Course
}

func NewGroup(id int64, name string, course *Course) *Group {
	return &Group{Identity: newIdentity(TableGroup, id), name: name, course: course}
}

func (g *Group) Name() string    { return g.name }
func (g *Group) Course() *Course { return g.course }

func GroupBlueprint() *core.Schema {
	return core.MustSchema(core.NewSchema(TableGroup.String(),
		[]*core.Column{
			core.NewSerialColumn("id"),
			core.NewTextColumn("name", 64, core.NotNull),
			core.NewIntColumn("course_id", core.NotNull),
		},
		core.MustLinkTo("course_id", CourseBlueprint(), "id"),
	))
}

func (g *Group) ToData() (*core.Schema, error) {
	s, err := g.newData()
	if err != nil {
		return nil, err
	}
	if err := s.SetText("name", g.name); err != nil {
		return nil, err
	}
	courseID, err := requiredRefID(TableGroup, "course_id", g.course)
	if err != nil {
		return nil, err
	}
	if err := s.SetInt("course_id", courseID); err != nil {
		return nil, err
	}
	return s, nil
}

func GroupFromData(s *core.Schema, course *Course) (*Group, error) {
	id, err := readIdentity(s, TableGroup)
	if err != nil {
		return nil, err
	}
	courseID, ok := refID(course)
	if err := checkRef(s, "course_id", courseID, ok); err != nil {
		return nil, err
	}
	name, err := s.Text("name")
	if err != nil {
		return nil, err
	}
	return NewGroup(id, name, course), nil
}
