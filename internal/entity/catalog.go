package entity

// Catalog is a fully loaded timetable with every entity resolved.
type Catalog struct {
	Faculties          []*Faculty
	Courses            []*Course
	Groups             []*Group
	Teachers           []*Teacher
	Subjects           []*Subject
	WeekTypes          []*WeekType
	DaySchedules       []*DaySchedule
	GroupWeekSchedules []*GroupWeekSchedule
}

// Counts returns the number of loaded rows per table.
func (c *Catalog) Counts() map[Table]int {
	return map[Table]int{
		TableFaculty:           len(c.Faculties),
		TableCourse:            len(c.Courses),
		TableGroup:             len(c.Groups),
		TableTeacher:           len(c.Teachers),
		TableSubject:           len(c.Subjects),
		TableWeekType:          len(c.WeekTypes),
		TableDaySchedule:       len(c.DaySchedules),
		TableGroupWeekSchedule: len(c.GroupWeekSchedules),
	}
}

// TeacherWeek builds the week of a teacher from the loaded group schedules.
func (c *Catalog) TeacherWeek(teacher *Teacher, weekType *WeekType) (*TeacherWeekSchedule, error) {
	return BuildTeacherWeekSchedule(teacher, weekType, c.GroupWeekSchedules...)
}

// Schemables returns every entity in dependency order, ready to be saved.
func (c *Catalog) Schemables() []Schemable {
	var out []Schemable
	for _, v := range c.Faculties {
		out = append(out, v)
	}
	for _, v := range c.Courses {
		out = append(out, v)
	}
	for _, v := range c.Groups {
		out = append(out, v)
	}
	for _, v := range c.Teachers {
		out = append(out, v)
	}
	for _, v := range c.Subjects {
		out = append(out, v)
	}
	for _, v := range c.WeekTypes {
		out = append(out, v)
	}
	for _, v := range c.DaySchedules {
		out = append(out, v)
	}
	for _, v := range c.GroupWeekSchedules {
		out = append(out, v)
	}
	return out
}
