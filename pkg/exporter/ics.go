package exporter

import (
	"fmt"
	"io"
	"time"

	"rasporedctl/pkg/output"
	"rasporedctl/pkg/timetable"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
)

// Bell is the start and end of one period, as "15:04".
type Bell struct {
	Start string
	End   string
}

var morningBells = [timetable.PeriodsPerDay]Bell{
	{"08:00", "08:45"},
	{"08:50", "09:35"},
	{"09:40", "10:25"},
	{"10:40", "11:25"},
	{"11:30", "12:15"},
	{"12:20", "13:05"},
	{"13:10", "13:55"},
}

var afternoonBells = [timetable.PeriodsPerDay]Bell{
	{"14:00", "14:45"},
	{"14:50", "15:35"},
	{"15:40", "16:25"},
	{"16:40", "17:25"},
	{"17:30", "18:15"},
	{"18:20", "19:05"},
	{"19:10", "19:55"},
}

// Bells returns the bell schedule of a shift.
func Bells(shift output.Shift) [timetable.PeriodsPerDay]Bell {
	if shift == output.Morning {
		return morningBells
	}
	return afternoonBells
}

// uidSpace namespaces event UIDs. The same lesson always gets the same UID.
var uidSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("rasporedctl"))

// GenerateICS writes the week of class described by meta as an ICS calendar.
// A double period becomes a single event spanning both periods.
func GenerateICS(class *timetable.ClassSchedule, meta output.Metadata, w io.Writer) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	// Timezone location for Croatia
	loc, err := time.LoadLocation("Europe/Zagreb")
	if err != nil {
		return fmt.Errorf("could not load timezone: %w", err)
	}

	monday, err := meta.Week(loc)
	if err != nil {
		return err
	}
	bells := Bells(meta.Shift)
	now := time.Now()

	for d := range class.Days {
		day := &class.Days[d]
		date := monday.AddDate(0, 0, d).Format("02.01.2006")

		for p := 1; p <= timetable.PeriodsPerDay; p++ {
			l := day.Period(p)
			if l == nil {
				continue
			}

			last := p
			if next := day.Period(p + 1); l.Double && next != nil && next.Double && next.Code == l.Code {
				last = p + 1
			}

			layout := "02.01.2006 15:04"
			startTime, err := time.ParseInLocation(layout, date+" "+bells[p-1].Start, loc)
			if err != nil {
				return fmt.Errorf("invalid bell time: %w", err)
			}
			endTime, err := time.ParseInLocation(layout, date+" "+bells[last-1].End, loc)
			if err != nil {
				return fmt.Errorf("invalid bell time: %w", err)
			}

			key := fmt.Sprintf("%s|%s|%s|%d", meta.URL, class.Name, timetable.Days[d], p)
			event := cal.AddEvent(uuid.NewSHA1(uidSpace, []byte(key)).String())
			event.SetCreatedTime(now)
			event.SetDtStampTime(now)
			event.SetModifiedAt(now)
			event.SetStartAt(startTime)
			event.SetEndAt(endTime)
			event.SetSummary(l.Subject())
			event.SetLocation("Učionica " + l.RoomLabel())

			description := fmt.Sprintf("Nastavnik: %s\nŠifra: %s\nRazred: %s", l.Teacher(), l.Initials(), class.Name)
			event.SetDescription(description)

			p = last
		}
	}

	return cal.SerializeTo(w)
}
