package timetable

import (
	"strings"

	"rasporedctl/pkg/registry"
)

// ParseCell decodes a single grid cell. Line 1 holds the initials and line 2 the
// room. Blank cells and cells with fewer than two lines carry no lesson.
func ParseCell(reg *registry.Registry, c RawCell) *Lesson {
	text := c.normalized()
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return nil
	}

	l := &Lesson{
		Code: strings.TrimSpace(lines[0]),
		Room: strings.TrimSpace(lines[1]),
	}

	// "MR / ZE" names alternate teachers
	if strings.Contains(l.Code, "/") {
		l.Lookup = registry.Lookup{Status: registry.Multiple}
	} else {
		l.Lookup = reg.Resolve(l.Code)
	}

	return l
}

// halves returns the first line and, if present, the second line of a cell.
func halves(text string) (code, room string) {
	lines := strings.Split(text, "\n")
	code = strings.TrimSpace(lines[0])
	if len(lines) > 1 {
		room = strings.TrimSpace(lines[1])
	}
	return code, room
}
