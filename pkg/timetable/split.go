package timetable

import (
	"strconv"
	"unicode/utf8"

	"rasporedctl/pkg/registry"
)

// IsSplit reports whether a and b are the left and right halves of one double
// period that the extractor rendered as two cells. The extractor gives no span
// information, so the only evidence is that the joined first lines form a known
// code and the joined second lines form a valid room number.
//
// Room halves are joined as text: "1" and "4" make room 14.
func IsSplit(reg *registry.Registry, a, b RawCell) bool {
	ta, tb := a.normalized(), b.normalized()
	if ta == "" || tb == "" {
		return false
	}

	codeA, roomA := halves(ta)
	codeB, roomB := halves(tb)

	// Covers single letters ("H" + "G") as well as halves that are already two-letter fragments.
	if utf8.RuneCountInString(codeA) > 2 || utf8.RuneCountInString(codeB) > 2 {
		return false
	}

	if !reg.Contains(codeA + codeB) {
		return false
	}

	room, err := strconv.Atoi(roomA + roomB)
	if err != nil {
		return false
	}
	return reg.IsValidRoom(room)
}

// MergeCells joins two halves accepted by IsSplit into one double-period lesson.
func MergeCells(reg *registry.Registry, a, b RawCell) Lesson {
	codeA, roomA := halves(a.normalized())
	codeB, roomB := halves(b.normalized())

	code := codeA + codeB
	return Lesson{
		Code:   code,
		Lookup: reg.Resolve(code),
		Room:   roomA + roomB,
		Double: true,
	}
}
