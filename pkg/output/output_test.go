package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"rasporedctl/pkg/registry"
	"rasporedctl/pkg/timetable"

	"github.com/google/go-cmp/cmp"
)

func TestDateFromURL(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com/RASPORED-GIM-EK-13.10.2025.pdf", "13.10.2025."},
		{"https://example.com/raspored_6.1.2025.pdf", "06.01.2025."},
		{"https://example.com/raspored-1.9.-2025.pdf", "01.09.2025."},
		{"https://example.com/raspored.pdf", "18.10.2026."},
	}
	for _, tt := range tests {
		if got := DateFromURL(tt.url, now); got != tt.want {
			t.Errorf("DateFromURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestShiftFromURL(t *testing.T) {
	if s := ShiftFromURL("https://example.com/GIM-EK-jutro-13.10.2025.pdf", ""); s != Morning {
		t.Errorf("expected morning shift, got %s", s)
	}
	if s := ShiftFromURL("https://example.com/GIM-EK-13.10.2025.pdf", ""); s != Afternoon {
		t.Errorf("expected afternoon shift by default, got %s", s)
	}
	if s := ShiftFromURL("https://example.com/A-smjena.pdf", "a-SMJENA"); s != Morning {
		t.Errorf("expected custom marker to match, got %s", s)
	}
}

func TestMetadataWeek(t *testing.T) {
	m := Metadata{Date: "16.10.2025."} // Thursday
	monday, err := m.Week(time.UTC)
	if err != nil {
		t.Fatalf("Week failed: %v", err)
	}
	if got := monday.Format(DateLayout); got != "13.10.2025." {
		t.Errorf("expected Monday 13.10.2025., got %s", got)
	}

	if _, err := (Metadata{Date: "sutra"}).Week(time.UTC); err == nil {
		t.Errorf("expected an error for an invalid date")
	}
}

func sampleDocument() Document {
	grid := timetable.RawGrid{
		{timetable.Cell("Razred")},
		{timetable.Cell("1.PMG"), timetable.Cell("ŠT\n21"), timetable.Cell("DL\n5")},
	}
	tt := timetable.NewBuilder(registry.Default(), nil).Build(grid)
	return Document{
		Metadata:  NewMetadata("https://example.com/GIM-EK-13.10.2025.pdf?a=1&b=2", "", "Darija Lozić", time.Now()),
		Timetable: tt,
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleDocument()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{`"Četvrtak"`, `"Kemija"`, `"Darija Lozić"`, `?a=1&b=2`, "\n  \"metadata\": {"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, `\u`) {
		t.Errorf("expected no escaped characters, got:\n%s", out)
	}

	var decoded struct {
		Metadata  Metadata                  `json:"metadata"`
		Timetable map[string]map[string]any `json:"timetable"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	want := Metadata{
		URL:          "https://example.com/GIM-EK-13.10.2025.pdf?a=1&b=2",
		Date:         "13.10.2025.",
		Shift:        Afternoon,
		ClassTeacher: "Darija Lozić",
	}
	if diff := cmp.Diff(want, decoded.Metadata); diff != "" {
		t.Errorf("metadata mismatch (-want +got):\n%s", diff)
	}
	if len(decoded.Timetable["1.PMG"]) != len(timetable.Days) {
		t.Errorf("expected %d days for 1.PMG, got %d", len(timetable.Days), len(decoded.Timetable["1.PMG"]))
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raspored.json")
	if err := WriteFile(path, sampleDocument()); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if !json.Valid(data) {
		t.Errorf("written file is not valid JSON")
	}
}
