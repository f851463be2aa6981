package timetable

import (
	"unicode/utf8"

	"rasporedctl/pkg/registry"
)

// Reconcile joins neighbouring single-letter codes that split detection missed,
// for example when the joined room halves are not a valid room. Both periods are
// replaced by copies of one double-period lesson that keeps the first half's
// room. It returns the number of joins made; a second run makes none.
func Reconcile(reg *registry.Registry, cs *ClassSchedule) int {
	merges := 0

	for d := range cs.Days {
		day := &cs.Days[d]
		for p := 1; p < PeriodsPerDay; p++ {
			cur := day.Period(p)
			if cur == nil || utf8.RuneCountInString(cur.Code) != 1 || reg.Contains(cur.Code) {
				continue
			}

			next := day.Period(p + 1)
			if next == nil || utf8.RuneCountInString(next.Code) != 1 {
				continue
			}

			code := cur.Code + next.Code
			if !reg.Contains(code) {
				continue
			}

			day.setDouble(p, Lesson{
				Code:   code,
				Lookup: reg.Resolve(code),
				Room:   cur.Room,
				Double: true,
			})
			merges++
			p++ // the next period was consumed
		}
	}

	return merges
}
