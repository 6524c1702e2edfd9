package entity

import (
	"timetable/internal/core"
	"timetable/internal/slot"
)

// Lesson is one period a teacher spends with a group.
type Lesson struct {
	Group   *Group
	Subject *Subject
}

// TeacherDay holds the lessons of one weekday by period. More than one lesson
// in a period means the group schedules overlap for this teacher.
type TeacherDay struct {
	slot.Grid[[]Lesson]
}

// TeacherWeekSchedule is the week of one teacher for one week type, assembled
// in memory from group week schedules. It has no table of its own.
type TeacherWeekSchedule struct {
	slot.Grid[*TeacherDay]
	teacher  *Teacher
	weekType *WeekType
}

// BuildTeacherWeekSchedule collects every lesson taught by teacher in the given
// group schedules of weekType. Schedules of other week types are skipped, as
// are nil schedules and empty slots.
func BuildTeacherWeekSchedule(teacher *Teacher, weekType *WeekType, schedules ...*GroupWeekSchedule) (*TeacherWeekSchedule, error) {
	if teacher == nil {
		return nil, core.DependencyMismatch(TableTeacher.String(), "", "teacher is nil")
	}
	if weekType == nil {
		return nil, core.DependencyMismatch(TableWeekType.String(), "", "week type is nil")
	}

	var lessons [slot.Count][slot.Count][]Lesson
	for _, ws := range schedules {
		if ws == nil || ws.WeekType() == nil || ws.WeekType().ID() != weekType.ID() {
			continue
		}
		for _, day := range ws.Occupied() {
			ds, _ := day.Value()
			if ds == nil {
				continue
			}
			for _, period := range ds.Occupied() {
				subject, _ := period.Value()
				if subject == nil || !subject.HasTeacher() || subject.Teacher().ID() != teacher.ID() {
					continue
				}
				d, p := day.Index(), period.Index()
				lessons[d][p] = append(lessons[d][p], Lesson{Group: ws.Group(), Subject: subject})
			}
		}
	}

	var days []slot.Entry[*TeacherDay]
	for _, d := range slot.Positions() {
		var periods []slot.Entry[[]Lesson]
		for _, p := range slot.Positions() {
			if ls := lessons[d][p]; len(ls) > 0 {
				periods = append(periods, slot.NewEntry(p, ls))
			}
		}
		if len(periods) == 0 {
			continue
		}
		grid, err := slot.NewGrid(periods...)
		if err != nil {
			return nil, err
		}
		days = append(days, slot.NewEntry(d, &TeacherDay{Grid: grid}))
	}

	grid, err := slot.NewGrid(days...)
	if err != nil {
		return nil, err
	}
	return &TeacherWeekSchedule{Grid: grid, teacher: teacher, weekType: weekType}, nil
}

func (t *TeacherWeekSchedule) Teacher() *Teacher   { return t.teacher }
func (t *TeacherWeekSchedule) WeekType() *WeekType { return t.weekType }

// Lessons returns the lessons at the given weekday and period.
func (t *TeacherWeekSchedule) Lessons(day, period slot.Position) []Lesson {
	d, ok := t.Get(day).Value()
	if !ok {
		return nil
	}
	ls, _ := d.Get(period).Value()
	return ls
}

// Conflicts reports whether any period holds more than one lesson.
func (t *TeacherWeekSchedule) Conflicts() bool {
	for _, day := range t.Occupied() {
		d, _ := day.Value()
		for _, p := range d.Occupied() {
			if ls, _ := p.Value(); len(ls) > 1 {
				return true
			}
		}
	}
	return false
}
