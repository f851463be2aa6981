package timetable

import (
	"testing"

	"rasporedctl/pkg/registry"

	"github.com/google/go-cmp/cmp"
)

func TestParseCell(t *testing.T) {
	reg := registry.Default()

	got := ParseCell(reg, Cell("DL\n5"))
	want := &Lesson{
		Code:   "DL",
		Lookup: registry.Lookup{Status: registry.Resolved, Teacher: "Darija Lozić", Subject: "Matematika"},
		Room:   "5",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseCell mismatch (-want +got):\n%s", diff)
	}
	if got.Teacher() != "Darija Lozić" || got.Subject() != "Matematika" || got.RoomLabel() != "5" {
		t.Errorf("unexpected display fields: %s / %s / %s", got.Teacher(), got.Subject(), got.RoomLabel())
	}
}

func TestParseCellNoLesson(t *testing.T) {
	reg := registry.Default()
	cells := map[string]RawCell{
		"absent":     NoCell,
		"empty":      Cell(""),
		"whitespace": Cell("  \n\t "),
		"one line":   Cell("DL"),
	}
	for name, c := range cells {
		if l := ParseCell(reg, c); l != nil {
			t.Errorf("%s: expected no lesson, got %+v", name, l)
		}
	}
}

func TestParseCellAlternateTeachers(t *testing.T) {
	l := ParseCell(registry.Default(), Cell("MR / ZE\n3"))
	if l == nil {
		t.Fatalf("expected a lesson, got nil")
	}
	if l.Code != "MR / ZE" {
		t.Errorf("expected code to be kept verbatim, got %q", l.Code)
	}
	if l.Teacher() != "Multiple" || l.Subject() != "Multiple" {
		t.Errorf("expected Multiple markers, got %q / %q", l.Teacher(), l.Subject())
	}
	if l.Double {
		t.Errorf("single cell must not be a double period")
	}
}

func TestParseCellUnknownCode(t *testing.T) {
	l := ParseCell(registry.Default(), Cell("XY\n7"))
	if l == nil {
		t.Fatalf("expected a lesson, got nil")
	}
	if l.Code != "XY" || l.Lookup.Status != registry.Unresolved {
		t.Errorf("expected unresolved XY, got %+v", l)
	}
	if l.Teacher() != registry.UnknownTeacher || l.Subject() != registry.UnknownSubject {
		t.Errorf("expected unknown markers, got %q / %q", l.Teacher(), l.Subject())
	}
}

func TestParseCellMissingRoom(t *testing.T) {
	l := ParseCell(registry.Default(), Cell("DL\n \nnapomena"))
	if l == nil {
		t.Fatalf("expected a lesson, got nil")
	}
	if l.Room != "" || l.RoomLabel() != UnknownRoom {
		t.Errorf("expected unknown room, got %q / %q", l.Room, l.RoomLabel())
	}
}

func TestParseCellTrimsLines(t *testing.T) {
	l := ParseCell(registry.Default(), Cell("  KN \r\n 12 \n"))
	if l == nil || l.Code != "KN" || l.Room != "12" {
		t.Fatalf("expected KN in room 12, got %+v", l)
	}
	if l.Subject() != "Informatika" {
		t.Errorf("expected Informatika, got %s", l.Subject())
	}
}
