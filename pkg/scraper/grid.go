package scraper

import (
	"context"

	"rasporedctl/pkg/timetable"

	"go.uber.org/zap"
)

// GridExtractor turns a downloaded document into its raw table grid.
type GridExtractor func(ctx context.Context, doc []byte) (timetable.RawGrid, error)

// FetchGrid downloads the document at docURL and extracts its grid, reusing a
// cached grid when one is fresh enough.
func (c *Client) FetchGrid(ctx context.Context, docURL string, extract GridExtractor) (timetable.RawGrid, error) {
	if !c.NoCache {
		if grid, ok := readCache(docURL); ok {
			c.logger.Debug("Using cached grid", zap.String("url", docURL))
			return grid, nil
		}
	}

	data, err := c.Download(ctx, docURL)
	if err != nil {
		return nil, err
	}

	grid, err := extract(ctx, data)
	if err != nil {
		return nil, err
	}

	if !c.NoCache {
		writeCache(docURL, grid)
	}
	return grid, nil
}
