// Package pdfgrid extracts the raw cell grid from the first page of a timetable PDF.
package pdfgrid

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"rasporedctl/pkg/timetable"

	"github.com/tsawler/tabula"
	"github.com/tsawler/tabula/model"
	"github.com/tsawler/tabula/tables"
	"github.com/tsawler/tabula/text"
	"go.uber.org/zap"
)

// ErrNoTable is returned when the first page holds no detectable table.
var ErrNoTable = errors.New("no table found")

// Extractor finds the timetable table on page 1 of a PDF.
type Extractor struct {
	detector tables.Detector
	logger   *zap.Logger
}

// New returns an extractor using tabula's geometric table detector.
func New(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		detector: tables.NewGeometricDetector(),
		logger:   logger,
	}
}

// Extract reads the PDF in doc and returns the grid of its largest table on page 1.
func (e *Extractor) Extract(ctx context.Context, doc []byte) (timetable.RawGrid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// tabula opens documents by path
	f, err := os.CreateTemp("", "raspored-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("could not create temporary file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(doc); err != nil {
		f.Close()
		return nil, fmt.Errorf("could not write temporary file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("could not write temporary file: %w", err)
	}

	fragments, warnings, err := tabula.Open(f.Name()).Pages(1).Fragments()
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF: %w", err)
	}
	if len(warnings) > 0 {
		e.logger.Debug("PDF extraction warnings", zap.Int("count", len(warnings)))
	}

	return e.FromFragments(fragments)
}

// FromFragments detects the table among positioned text fragments.
func (e *Extractor) FromFragments(fragments []text.TextFragment) (timetable.RawGrid, error) {
	page := model.NewPage(0, 0)
	page.Number = 1
	for _, f := range fragments {
		page.RawText = append(page.RawText, model.TextFragment{
			Text:     f.Text,
			BBox:     model.NewBBox(f.X, f.Y, f.Width, f.Height),
			FontSize: f.FontSize,
			FontName: f.FontName,
		})
	}

	found, err := e.detector.Detect(page)
	if err != nil {
		return nil, fmt.Errorf("table detection failed: %w", err)
	}

	best := largest(found)
	if best == nil {
		return nil, ErrNoTable
	}

	e.logger.Debug("Detected table",
		zap.Int("tables", len(found)),
		zap.Int("rows", best.RowCount()),
		zap.Int("cols", best.ColCount()),
		zap.Float64("confidence", best.Confidence))

	grid := FoldRows(best)
	if len(grid) == 0 {
		return nil, ErrNoTable
	}
	return grid, nil
}

func largest(found []*model.Table) *model.Table {
	var best *model.Table
	for _, t := range found {
		if t == nil {
			continue
		}
		if best == nil || t.RowCount()*t.ColCount() > best.RowCount()*best.ColCount() {
			best = t
		}
	}
	return best
}

// FoldRows turns a detected table into a timetable grid. The detector yields
// one row per text baseline, so a timetable row spans several detected rows:
// a row with a non-empty first column starts a new grid row and the rows below
// it add lines to its cells. Columns and rows with no text are dropped.
func FoldRows(t *model.Table) timetable.RawGrid {
	keep := usedColumns(t)
	if len(keep) == 0 {
		return nil
	}

	var lines [][][]string // grid row -> column -> lines

	for _, r := range t.Rows {
		cells := make([]string, len(keep))
		blank := true
		for i, col := range keep {
			if col < len(r) {
				cells[i] = strings.TrimSpace(r[col].Text)
			}
			if cells[i] != "" {
				blank = false
			}
		}
		if blank {
			continue
		}

		if len(lines) == 0 || cells[0] != "" {
			lines = append(lines, make([][]string, len(keep)))
		}
		cur := lines[len(lines)-1]
		for i, s := range cells {
			cur[i] = append(cur[i], s)
		}
	}

	grid := make(timetable.RawGrid, 0, len(lines))
	for _, r := range lines {
		row := make(timetable.RawRow, len(r))
		for i, cellLines := range r {
			content := strings.TrimSpace(strings.Join(cellLines, "\n"))
			if content == "" {
				row[i] = timetable.NoCell
				continue
			}
			row[i] = timetable.Cell(strings.Join(cellLines, "\n"))
		}
		grid = append(grid, row)
	}
	return grid
}

func usedColumns(t *model.Table) []int {
	var keep []int
	for col := 0; col < t.ColCount(); col++ {
		for _, r := range t.Rows {
			if col < len(r) && strings.TrimSpace(r[col].Text) != "" {
				keep = append(keep, col)
				break
			}
		}
	}
	return keep
}
