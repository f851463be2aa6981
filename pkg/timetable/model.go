// Package timetable rebuilds a weekly class timetable from the raw cell grid of
// a published schedule. The table extractor returns one free-text cell per grid
// column and has no notion of merged cells, so double periods arrive split across
// two columns and are re-joined here using the code registry as evidence.
package timetable

import (
	"strings"

	"rasporedctl/pkg/registry"

	"golang.org/x/text/unicode/norm"
)

// PeriodsPerDay is the number of lesson slots in every school day.
const PeriodsPerDay = 7

// UnknownRoom is written in place of a room missing from a cell.
const UnknownRoom = "Unknown room"

// Days are the school days in timetable order.
var Days = [...]string{"Ponedjeljak", "Utorak", "Srijeda", "Četvrtak", "Petak"}

// RawCell is one extracted grid cell. A cell that the extractor left empty has
// Present set to false.
type RawCell struct {
	Text    string
	Present bool
}

// Cell returns a present cell holding text.
func Cell(text string) RawCell {
	return RawCell{Text: text, Present: true}
}

// NoCell is an absent cell.
var NoCell = RawCell{}

// normalized returns the trimmed, NFC-normalised text, or "" for absent cells.
func (c RawCell) normalized() string {
	if !c.Present {
		return ""
	}
	return strings.TrimSpace(norm.NFC.String(c.Text))
}

// Blank reports whether the cell holds no lesson text.
func (c RawCell) Blank() bool {
	return c.normalized() == ""
}

// RawRow is one grid row; column 0 holds the class name.
type RawRow []RawCell

// RawGrid is the extractor output. Row 0 holds the headers.
type RawGrid []RawRow

// Lesson is one filled period slot. It holds no pointers, so assigning a
// Lesson copies it completely.
type Lesson struct {
	Code   string
	Lookup registry.Lookup
	Room   string
	Double bool
}

// Initials returns the code as printed in the cell, resolved or not.
func (l Lesson) Initials() string { return l.Code }

// Teacher returns the resolved teacher name or its placeholder.
func (l Lesson) Teacher() string { return l.Lookup.TeacherName() }

// Subject returns the resolved subject name or its placeholder.
func (l Lesson) Subject() string { return l.Lookup.SubjectName() }

// RoomLabel returns the room, or UnknownRoom when the cell had none.
func (l Lesson) RoomLabel() string {
	if l.Room == "" {
		return UnknownRoom
	}
	return l.Room
}

// DaySchedule holds the seven periods of one day. Index 0 is period 1; a nil
// entry means no lesson.
type DaySchedule [PeriodsPerDay]*Lesson

// Period returns the lesson in period p (1-based), or nil.
func (d *DaySchedule) Period(p int) *Lesson {
	if p < 1 || p > PeriodsPerDay {
		return nil
	}
	return d[p-1]
}

func (d *DaySchedule) set(p int, l *Lesson) {
	if p < 1 || p > PeriodsPerDay {
		return
	}
	d[p-1] = l
}

// setDouble stores independent copies of l at periods p and p+1. Only p is
// filled when p is the last period.
func (d *DaySchedule) setDouble(p int, l Lesson) {
	first, second := l, l
	d.set(p, &first)
	d.set(p+1, &second)
}

// ClassSchedule is the week of one class.
type ClassSchedule struct {
	Name string
	Days [len(Days)]DaySchedule
}

func (c ClassSchedule) clone() ClassSchedule {
	for d := range c.Days {
		for i, l := range c.Days[d] {
			if l != nil {
				cp := *l
				c.Days[d][i] = &cp
			}
		}
	}
	return c
}

// Day returns the schedule for the named day.
func (c *ClassSchedule) Day(name string) (*DaySchedule, bool) {
	for i, d := range Days {
		if d == name {
			return &c.Days[i], true
		}
	}
	return nil, false
}

// Timetable holds every class of the document in grid order.
type Timetable struct {
	Classes []ClassSchedule
}

// Class returns the class with exactly the given name.
func (t *Timetable) Class(name string) (*ClassSchedule, bool) {
	for i := range t.Classes {
		if t.Classes[i].Name == name {
			return &t.Classes[i], true
		}
	}
	return nil, false
}

// Filter keeps the classes whose name contains substr. The result owns copies
// of the lessons. It returns nil when nothing matches.
func (t *Timetable) Filter(substr string) *Timetable {
	var out Timetable
	for _, c := range t.Classes {
		if strings.Contains(c.Name, substr) {
			out.Classes = append(out.Classes, c.clone())
		}
	}
	if len(out.Classes) == 0 {
		return nil
	}
	return &out
}

// Names lists the class names in grid order.
func (t *Timetable) Names() []string {
	names := make([]string, 0, len(t.Classes))
	for _, c := range t.Classes {
		names = append(names, c.Name)
	}
	return names
}
