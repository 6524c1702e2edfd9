package entity

import "timetable/internal/core"

// Subject is a lesson taught in one slot of a day schedule. The teacher and the
// classroom are optional; when absent they read as nil and "".
type Subject struct {
	Identity
	name      string
	teacher   *Teacher
	classroom string
}

func NewSubject(id int64, name string, teacher *Teacher, classroom string) *Subject {
	return &Subject{
		Identity:  newIdentity(TableSubject, id),
		name:      name,
		teacher:   teacher,
		classroom: classroom,
	}
}

func (s *Subject) Name() string       { return s.name }
func (s *Subject) Teacher() *Teacher  { return s.teacher }
func (s *Subject) HasTeacher() bool   { return s.teacher != nil }
func (s *Subject) Classroom() string  { return s.classroom }
func (s *Subject) HasClassroom() bool { return s.classroom != "" }

func SubjectBlueprint() *core.Schema {
	return core.MustSchema(core.NewSchema(TableSubject.String(),
		[]*core.Column{
			core.NewSerialColumn("id"),
			core.NewTextColumn("name", 255, core.NotNull),
			core.NewIntColumn("teacher_id", core.Nullable),
			core.NewTextColumn("classroom", 32, core.Nullable),
		},
		core.MustLinkTo("teacher_id", TeacherBlueprint(), "id"),
	))
}

func (s *Subject) ToData() (*core.Schema, error) {
	data, err := s.newData()
	if err != nil {
		return nil, err
	}
	if err := data.SetText("name", s.name); err != nil {
		return nil, err
	}
	if s.HasTeacher() {
		if err := data.SetInt("teacher_id", s.teacher.ID()); err != nil {
			return nil, err
		}
	}
	if s.HasClassroom() {
		if err := data.SetText("classroom", s.classroom); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// SubjectFromData builds a Subject. teacher must be nil exactly when the row
// has no teacher_id.
func SubjectFromData(s *core.Schema, teacher *Teacher) (*Subject, error) {
	id, err := readIdentity(s, TableSubject)
	if err != nil {
		return nil, err
	}
	teacherID, ok := refID(teacher)
	if err := checkOptionalRef(s, "teacher_id", teacherID, ok); err != nil {
		return nil, err
	}
	name, err := s.Text("name")
	if err != nil {
		return nil, err
	}
	classroom, _, err := s.OptionalText("classroom")
	if err != nil {
		return nil, err
	}
	return NewSubject(id, name, teacher, classroom), nil
}
