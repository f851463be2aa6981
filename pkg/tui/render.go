package tui

import (
	"fmt"
	"strconv"
	"strings"

	"rasporedctl/pkg/output"
	"rasporedctl/pkg/timetable"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Padding(1, 0)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	doubleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// RenderClass draws one class's week as a period-by-day table.
func RenderClass(class *timetable.ClassSchedule, meta output.Metadata) string {
	var b strings.Builder

	title := fmt.Sprintf("Razred %s", class.Name)
	b.WriteString(titleStyle.Foreground(accentStyle.GetForeground()).Render(title))
	b.WriteString("\n")

	shift := cases.Title(language.Croatian).String(string(meta.Shift))
	info := []string{meta.Date, shift + " smjena"}
	if meta.ClassTeacher != "" {
		info = append(info, "razrednik: "+meta.ClassTeacher)
	}
	b.WriteString(mutedStyle.Render(strings.Join(info, " · ")))
	b.WriteString("\n")

	headers := append([]string{"Sat"}, timetable.Days[:]...)

	rows := make([][]string, timetable.PeriodsPerDay)
	for p := 1; p <= timetable.PeriodsPerDay; p++ {
		row := []string{strconv.Itoa(p)}
		for d := range class.Days {
			row = append(row, lessonCell(class.Days[d].Period(p)))
		}
		rows[p-1] = row
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("238"))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return cellStyle.Foreground(accentStyle.GetForeground()).Bold(true)
			}
			if col == 0 {
				return cellStyle.Foreground(lipgloss.Color("241"))
			}
			return cellStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	return b.String()
}

func lessonCell(l *timetable.Lesson) string {
	if l == nil {
		return ""
	}
	line := fmt.Sprintf("%s (%s)", l.Initials(), l.RoomLabel())
	if l.Double {
		line += doubleStyle.Render(" ×2")
	}
	return l.Subject() + "\n" + mutedStyle.Render(line)
}
