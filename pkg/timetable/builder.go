package timetable

import (
	"fmt"
	"strings"

	"rasporedctl/pkg/registry"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Builder turns a raw grid into a Timetable.
type Builder struct {
	Registry *registry.Registry

	// Reconcile runs the second pass that joins single-letter codes missed by split detection.
	Reconcile bool

	// Workers is the number of rows built concurrently. Values below 2 build sequentially.
	Workers int

	Logger *zap.Logger
}

// NewBuilder returns a sequential builder with reconciliation enabled.
func NewBuilder(reg *registry.Registry, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		Registry:  reg,
		Reconcile: true,
		Workers:   1,
		Logger:    logger,
	}
}

// Build assembles the timetable of every class row in grid. An empty grid means
// the extractor found no table: Build logs it and returns nil.
func (b *Builder) Build(grid RawGrid) *Timetable {
	if len(grid) == 0 {
		b.logger().Warn("No table found")
		return nil
	}

	rows := grid[1:]
	if len(rows) == 0 {
		b.logger().Warn("Table has a header row but no class rows")
	}

	classes := make([]ClassSchedule, len(rows))
	if b.Workers > 1 {
		var g errgroup.Group
		g.SetLimit(b.Workers)
		for i, row := range rows {
			g.Go(func() error {
				classes[i] = b.BuildRow(i+1, row)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, row := range rows {
			classes[i] = b.BuildRow(i+1, row)
		}
	}

	uniqueNames(classes)
	return &Timetable{Classes: classes}
}

// BuildRow assembles one class. index is the row's position in the grid and is
// used to name classes whose name cell is blank.
func (b *Builder) BuildRow(index int, row RawRow) ClassSchedule {
	cs := ClassSchedule{Name: className(index, row)}

	// one cursor walks the row across all five days
	cursor := 1
	for d := range cs.Days {
		cs.Days[d], cursor = b.buildDay(row, cursor)
	}

	if b.Reconcile {
		if n := Reconcile(b.Registry, &cs); n > 0 {
			b.logger().Debug("Reconciled split codes",
				zap.String("class", cs.Name),
				zap.Int("merges", n))
		}
	}

	if cursor < len(row) {
		b.logger().Debug("Row has unused cells",
			zap.String("class", cs.Name),
			zap.Int("unused", len(row)-cursor),
			zap.String("cells", rowLabel(row[cursor:])))
	}

	return cs
}

// buildDay fills the seven periods of one day starting at cursor and returns the
// cursor position after the last consumed cell.
func (b *Builder) buildDay(row RawRow, cursor int) (DaySchedule, int) {
	var day DaySchedule

	for p := 1; p <= PeriodsPerDay; {
		if cursor >= len(row) {
			p++
			continue
		}

		cur := row[cursor]
		// a split found in the last period consumes both cells but fills only period 7
		if cursor+1 < len(row) && IsSplit(b.Registry, cur, row[cursor+1]) {
			day.setDouble(p, MergeCells(b.Registry, cur, row[cursor+1]))
			p += 2
			cursor += 2
			continue
		}

		day.set(p, ParseCell(b.Registry, cur))
		p++
		cursor++
	}

	return day, cursor
}

func (b *Builder) logger() *zap.Logger {
	if b.Logger == nil {
		return zap.NewNop()
	}
	return b.Logger
}

func className(index int, row RawRow) string {
	if len(row) > 0 {
		if name := row[0].normalized(); name != "" {
			return name
		}
	}
	return fmt.Sprintf("Class_%d", index)
}

// uniqueNames suffixes repeated class names with _2, _3, ...
func uniqueNames(classes []ClassSchedule) {
	taken := make(map[string]bool, len(classes))
	for _, c := range classes {
		taken[c.Name] = true
	}

	count := make(map[string]int, len(classes))
	for i := range classes {
		name := classes[i].Name
		count[name]++
		if count[name] == 1 {
			continue
		}

		n := count[name]
		candidate := fmt.Sprintf("%s_%d", name, n)
		for taken[candidate] {
			n++
			candidate = fmt.Sprintf("%s_%d", name, n)
		}
		count[name] = n
		taken[candidate] = true
		classes[i].Name = candidate
	}
}

// rowLabel renders cells on one line for diagnostics.
func rowLabel(row RawRow) string {
	var parts []string
	for _, c := range row {
		parts = append(parts, strings.ReplaceAll(c.normalized(), "\n", "/"))
	}
	return strings.Join(parts, " | ")
}
