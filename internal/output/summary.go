package output

import (
	"fmt"
	"strings"

	"timetable/internal/core"
	"timetable/internal/entity"
	"timetable/internal/slot"
	"timetable/internal/store"
)

type summaryFormatter struct{}

// FormatSchema lists every table with its column definitions and references.
//
//	course
//	  "id" INT NOT NULL PRIMARY KEY AUTO_INCREMENT
//	  "number" INT NOT NULL
//	  "faculty_id" INT NOT NULL
//	  faculty_id -> faculty.id
func (summaryFormatter) FormatSchema(blueprints []*core.Schema, drop bool) (string, error) {
	var sb strings.Builder
	verb := "create"
	if drop {
		verb = "drop"
	}
	fmt.Fprintf(&sb, "Schema (%s, %d tables)\n", verb, len(blueprints))
	sb.WriteString("======\n")

	for _, bp := range blueprints {
		sb.WriteString("\n" + bp.Name() + "\n")
		for _, c := range bp.Columns() {
			sb.WriteString("  " + c.Definition() + "\n")
		}
		for _, l := range bp.Links() {
			sb.WriteString("  " + l.String() + "\n")
		}
	}
	return sb.String(), nil
}

func (summaryFormatter) FormatReport(r *store.Report) (string, error) {
	if r == nil {
		return "Nothing verified.\n", nil
	}
	var sb strings.Builder
	for _, t := range r.Tables {
		switch {
		case t.Missing:
			fmt.Fprintf(&sb, "%-20s MISSING\n", t.Table)
		case len(t.Mismatches) > 0:
			fmt.Fprintf(&sb, "%-20s DIFFERS\n", t.Table)
			for _, m := range t.Mismatches {
				sb.WriteString("    - " + m + "\n")
			}
		default:
			fmt.Fprintf(&sb, "%-20s ok\n", t.Table)
		}
	}
	fmt.Fprintf(&sb, "\n%d of %d tables match.\n", len(r.Tables)-len(r.Failed()), len(r.Tables))
	return sb.String(), nil
}

// FormatCatalog prints the row count of every table followed by the week of
// each group, one line per scheduled lesson.
func (summaryFormatter) FormatCatalog(c *entity.Catalog) (string, error) {
	if c == nil {
		return "Nothing loaded.\n", nil
	}
	var sb strings.Builder
	counts := c.Counts()
	for _, t := range entity.Tables() {
		fmt.Fprintf(&sb, "%-20s %d\n", t, counts[t])
	}

	for _, ws := range c.GroupWeekSchedules {
		fmt.Fprintf(&sb, "\nGroup %s, %s week\n", ws.Group().Name(), ws.WeekType().Name())
		for _, day := range ws.Occupied() {
			ds, _ := day.Value()
			sb.WriteString("  " + slot.WeekdayLabel(day.Position()) + "\n")
			for _, period := range ds.Occupied() {
				subject, _ := period.Value()
				fmt.Fprintf(&sb, "    %s  %s\n", slot.PeriodLabel(period.Position()), describeSubject(subject))
			}
		}
	}
	return sb.String(), nil
}

func describeSubject(s *entity.Subject) string {
	var extra []string
	if s.HasTeacher() {
		extra = append(extra, s.Teacher().Name())
	}
	if s.HasClassroom() {
		extra = append(extra, s.Classroom())
	}
	if len(extra) == 0 {
		return s.Name()
	}
	return s.Name() + " (" + strings.Join(extra, ", ") + ")"
}
