package exporter

import (
	"bytes"
	"strings"
	"testing"

	"rasporedctl/pkg/output"
	"rasporedctl/pkg/registry"
	"rasporedctl/pkg/timetable"
)

func sampleClass(t *testing.T) *timetable.ClassSchedule {
	t.Helper()
	grid := timetable.RawGrid{
		{timetable.Cell("Razred")},
		{timetable.Cell("1.PMG"), timetable.Cell("DL\n5"), timetable.Cell("H\n1"), timetable.Cell("G\n4")},
	}
	tt := timetable.NewBuilder(registry.Default(), nil).Build(grid)
	if tt == nil || len(tt.Classes) != 1 {
		t.Fatalf("failed to build sample timetable")
	}
	return &tt.Classes[0]
}

func TestGenerateICS(t *testing.T) {
	meta := output.Metadata{
		URL:   "https://example.com/GIM-EK-jutro-16.10.2025.pdf",
		Date:  "16.10.2025.",
		Shift: output.Morning,
	}

	var buf bytes.Buffer
	if err := GenerateICS(sampleClass(t), meta, &buf); err != nil {
		t.Fatalf("GenerateICS failed: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "SUMMARY:Matematika") {
		t.Errorf("Expected ICS to contain lesson summary, got: \n%s", out)
	}
	if !strings.Contains(out, "LOCATION:Učionica 5") {
		t.Errorf("Expected ICS to contain room location, got: \n%s", out)
	}

	// Monday 13-Oct-2025 08:00 Zagreb time is 06:00 UTC.
	if !strings.Contains(out, "DTSTART:20251013T060000Z") {
		t.Errorf("Expected start time string in ICS (should be UTC), got: \n%s", out)
	}

	// The HG double period is one event from 08:50 to 10:25.
	if got := strings.Count(out, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("Expected 2 events, got %d", got)
	}
	if !strings.Contains(out, "DTSTART:20251013T065000Z") || !strings.Contains(out, "DTEND:20251013T082500Z") {
		t.Errorf("Expected double period to span two bells, got: \n%s", out)
	}
}

func TestGenerateICSStableUIDs(t *testing.T) {
	meta := output.Metadata{URL: "https://example.com/a.pdf", Date: "13.10.2025.", Shift: output.Afternoon}
	class := sampleClass(t)

	uids := func() []string {
		var buf bytes.Buffer
		if err := GenerateICS(class, meta, &buf); err != nil {
			t.Fatalf("GenerateICS failed: %v", err)
		}
		var found []string
		for _, line := range strings.Split(buf.String(), "\n") {
			if strings.HasPrefix(line, "UID:") {
				found = append(found, strings.TrimSpace(line))
			}
		}
		return found
	}

	first, second := uids(), uids()
	if len(first) != 2 || strings.Join(first, ",") != strings.Join(second, ",") {
		t.Errorf("expected the same two UIDs on every export, got %v and %v", first, second)
	}
}

func TestGenerateICSInvalidDate(t *testing.T) {
	var buf bytes.Buffer
	if err := GenerateICS(sampleClass(t), output.Metadata{Date: "?"}, &buf); err == nil {
		t.Errorf("expected an error for an invalid metadata date")
	}
}

func TestBells(t *testing.T) {
	if Bells(output.Morning)[0].Start != "08:00" {
		t.Errorf("unexpected morning start")
	}
	if Bells(output.Afternoon)[0].Start != "14:00" {
		t.Errorf("unexpected afternoon start")
	}
}
