// Package output derives the document metadata and writes the extracted timetable as JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"rasporedctl/pkg/timetable"

	"golang.org/x/text/cases"
)

// DateLayout is the format of Metadata.Date.
const DateLayout = "02.01.2006."

// DefaultShiftMarker marks morning timetables in the document URL.
const DefaultShiftMarker = "JUTRO"

// Shift is the morning or afternoon cohort a timetable belongs to.
type Shift string

const (
	Morning   Shift = "jutarnja"
	Afternoon Shift = "popodnevna"
)

// e.g. "13.10.2025", "6.1.-2025"
var datePattern = regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.-?(\d{4})`)

// Metadata describes where a timetable came from.
type Metadata struct {
	URL          string `json:"url"`
	Date         string `json:"date"`
	Shift        Shift  `json:"shift"`
	ClassTeacher string `json:"class_teacher"`
}

// Document is the full JSON output.
type Document struct {
	Metadata  Metadata             `json:"metadata"`
	Timetable *timetable.Timetable `json:"timetable"`
}

// DateFromURL returns the publication date found in the URL, or now when the
// URL carries none, formatted as DateLayout.
func DateFromURL(docURL string, now time.Time) string {
	m := datePattern.FindStringSubmatch(docURL)
	if m == nil {
		return now.Format(DateLayout)
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	return fmt.Sprintf("%02d.%02d.%s.", day, month, m[3])
}

// ShiftFromURL reports Morning when the URL contains marker, compared
// case-insensitively. An empty marker uses DefaultShiftMarker.
func ShiftFromURL(docURL, marker string) Shift {
	if marker == "" {
		marker = DefaultShiftMarker
	}
	fold := cases.Fold()
	if strings.Contains(fold.String(docURL), fold.String(marker)) {
		return Morning
	}
	return Afternoon
}

// NewMetadata derives the metadata for the document at docURL.
func NewMetadata(docURL, shiftMarker, classTeacher string, now time.Time) Metadata {
	return Metadata{
		URL:          docURL,
		Date:         DateFromURL(docURL, now),
		Shift:        ShiftFromURL(docURL, shiftMarker),
		ClassTeacher: classTeacher,
	}
}

// Week returns the Monday of the week containing the metadata date.
func (m Metadata) Week(loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, m.Date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid metadata date %q: %w", m.Date, err)
	}
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
	return d.AddDate(0, 0, -offset), nil
}

// Write encodes doc as indented UTF-8 JSON. Non-ASCII text is written as is.
func Write(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode timetable: %w", err)
	}
	return nil
}

// WriteFile writes doc to path.
func WriteFile(path string, doc Document) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := Write(file, doc); err != nil {
		return err
	}
	return file.Close()
}
