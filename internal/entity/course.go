package entity

import "timetable/internal/core"

// Course is a year of study within a faculty.
type Course struct {
	Identity
	number  int
	faculty *Faculty
}

func NewCourse(id int64, number int, faculty *Faculty) *Course {
	return &Course{Identity: newIdentity(TableCourse, id), number: number, faculty: faculty}
}

func (c *Course) Number() int       { return c.number }
func (c *Course) Faculty() *Faculty { return c.faculty }

func CourseBlueprint() *core.Schema {
	return core.MustSchema(core.NewSchema(TableCourse.String(),
		[]*core.Column{
			core.NewSerialColumn("id"),
			core.NewIntColumn("number", core.NotNull),
			core.NewIntColumn("faculty_id", core.NotNull),
		},
		core.MustLinkTo("faculty_id", FacultyBlueprint(), "id"),
	))
}

func (c *Course) ToData() (*core.Schema, error) {
	s, err := c.newData()
	if err != nil {
		return nil, err
	}
	if err := s.SetInt("number", int64(c.number)); err != nil {
		return nil, err
	}
	facultyID, err := requiredRefID(TableCourse, "faculty_id", c.faculty)
	if err != nil {
		return nil, err
	}
	if err := s.SetInt("faculty_id", facultyID); err != nil {
		return nil, err
	}
	return s, nil
}

// CourseFromData builds a Course; faculty must be the faculty the row references.
func CourseFromData(s *core.Schema, faculty *Faculty) (*Course, error) {
	id, err := readIdentity(s, TableCourse)
	if err != nil {
		return nil, err
	}
	facultyID, ok := refID(faculty)
	if err := checkRef(s, "faculty_id", facultyID, ok); err != nil {
		return nil, err
	}
	number, err := s.Int("number")
	if err != nil {
		return nil, err
	}
	return NewCourse(id, int(number), faculty), nil
}
