package pdfgrid

import (
	"context"
	"errors"
	"testing"

	"rasporedctl/pkg/registry"
	"rasporedctl/pkg/timetable"

	"github.com/google/go-cmp/cmp"
	"github.com/tsawler/tabula/model"
)

func table(rows ...[]string) *model.Table {
	t := &model.Table{}
	for _, r := range rows {
		var cells []model.Cell
		for _, s := range r {
			cells = append(cells, model.Cell{Text: s, RowSpan: 1, ColSpan: 1})
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

func TestFoldRows(t *testing.T) {
	// one detected row per baseline, with empty gap rows and an empty gap column
	detected := table(
		[]string{"Razred", "", "1", "2", "3"},
		[]string{"", "", "", "", ""},
		[]string{"1.PMG", "", "DL", "H", "G"},
		[]string{"", "", "5", "1", "4"},
		[]string{"2.PMG", "", "KN", "", "MR / ZE"},
		[]string{"", "", "12", "", "3"},
	)

	got := FoldRows(detected)
	want := timetable.RawGrid{
		{timetable.Cell("Razred"), timetable.Cell("1"), timetable.Cell("2"), timetable.Cell("3")},
		{timetable.Cell("1.PMG\n"), timetable.Cell("DL\n5"), timetable.Cell("H\n1"), timetable.Cell("G\n4")},
		{timetable.Cell("2.PMG\n"), timetable.Cell("KN\n12"), timetable.NoCell, timetable.Cell("MR / ZE\n3")},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FoldRows mismatch (-want +got):\n%s", diff)
	}
}

func TestFoldRowsFeedsBuilder(t *testing.T) {
	detected := table(
		[]string{"Razred", "1", "2", "3"},
		[]string{"1.PMG", "DL", "H", "G"},
		[]string{"", "5", "1", "4"},
	)

	grid := FoldRows(detected)
	if len(grid) != 2 {
		t.Fatalf("expected header and one class row, got %d rows", len(grid))
	}

	class := timetable.NewBuilder(registry.Default(), nil).Build(grid).Classes[0]
	if class.Name != "1.PMG" {
		t.Errorf("expected class 1.PMG, got %q", class.Name)
	}
	monday := class.Days[0]
	if l := monday.Period(1); l == nil || l.Code != "DL" {
		t.Errorf("expected DL in period 1, got %+v", l)
	}
	for p := 2; p <= 3; p++ {
		if l := monday.Period(p); l == nil || l.Code != "HG" || !l.Double {
			t.Errorf("expected HG double in period %d, got %+v", p, l)
		}
	}
}

func TestFoldRowsEmpty(t *testing.T) {
	if grid := FoldRows(table([]string{"", ""}, []string{" ", ""})); grid != nil {
		t.Errorf("expected nil grid for a table without text, got %+v", grid)
	}
}

func TestFromFragmentsNoTable(t *testing.T) {
	_, err := New(nil).FromFragments(nil)
	if !errors.Is(err, ErrNoTable) {
		t.Fatalf("expected ErrNoTable, got %v", err)
	}
}

func TestExtractRejectsNonPDF(t *testing.T) {
	if _, err := New(nil).Extract(context.Background(), []byte("not a pdf")); err == nil {
		t.Fatalf("expected an error for invalid PDF bytes")
	}
}

func TestExtractHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(nil).Extract(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
