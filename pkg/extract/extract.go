// Package extract runs the whole extraction: find the timetable document, pull
// its table grid, rebuild the timetable and attach the document metadata.
package extract

import (
	"context"
	"errors"
	"time"

	"rasporedctl/pkg/output"
	"rasporedctl/pkg/pdfgrid"
	"rasporedctl/pkg/scraper"
	"rasporedctl/pkg/timetable"

	"go.uber.org/zap"
)

// Options selects the document and shapes the result.
type Options struct {
	SiteURL       string
	TimetableName string
	Preference    scraper.Preference

	// DocumentURL skips link discovery when set.
	DocumentURL string

	// Class keeps only classes whose name contains it.
	Class string

	ShiftMarker  string
	ClassTeacher string
}

// Pipeline wires the collaborators around the timetable builder.
type Pipeline struct {
	Client  *scraper.Client
	Grids   scraper.GridExtractor
	Builder *timetable.Builder
	Logger  *zap.Logger

	Now func() time.Time
}

// New returns a pipeline that extracts grids from PDFs with pdfgrid.
func New(client *scraper.Client, builder *timetable.Builder, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		Client:  client,
		Grids:   pdfgrid.New(logger).Extract,
		Builder: builder,
		Logger:  logger,
		Now:     time.Now,
	}
}

// Run performs one extraction. A document without a table, or a class filter
// that matches nothing, yields a nil document and a logged diagnostic rather
// than an error. Network and document failures are returned.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*output.Document, error) {
	docURL := opts.DocumentURL
	if docURL == "" {
		var err error
		docURL, err = p.Client.FindTimetableLink(ctx, opts.SiteURL, opts.TimetableName, opts.Preference)
		if err != nil {
			return nil, err
		}
	}
	p.Logger.Info("Using timetable document", zap.String("url", docURL))

	grid, err := p.Client.FetchGrid(ctx, docURL, p.Grids)
	if errors.Is(err, pdfgrid.ErrNoTable) {
		p.Logger.Warn("No table found", zap.String("url", docURL))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	tt := p.Builder.Build(grid)
	if tt == nil {
		return nil, nil
	}

	if opts.Class != "" {
		filtered := tt.Filter(opts.Class)
		if filtered == nil {
			p.Logger.Warn("Class not found",
				zap.String("class", opts.Class),
				zap.Strings("available", tt.Names()))
			return nil, nil
		}
		tt = filtered
	}

	p.Logger.Info("Extracted timetable", zap.Int("classes", len(tt.Classes)))

	return &output.Document{
		Metadata:  output.NewMetadata(docURL, opts.ShiftMarker, opts.ClassTeacher, p.now()),
		Timetable: tt,
	}, nil
}

func (p *Pipeline) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}
