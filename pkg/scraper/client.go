package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// DefaultSiteURL is the school page that lists the published timetables.
const DefaultSiteURL = "https://ss-ikrsnjavoga-nasice.skole.hr/raspored-sati/"

// maxDocumentSize caps a downloaded timetable document.
const maxDocumentSize = 32 << 20

// Client handles HTTP requests to the school website
type Client struct {
	httpClient *http.Client
	logger     *zap.Logger

	// NoCache disables the extracted grid cache.
	NoCache bool
}

// NewClient creates a new scraper client
func NewClient(logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Get fetches the given URL and returns the HTTP response
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	// Add expected headers
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code %d when fetching %s", resp.StatusCode, url)
	}

	return resp, nil
}

// Download returns the body of the document at url.
func (c *Client) Download(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}
	if len(data) > maxDocumentSize {
		return nil, fmt.Errorf("document %s is larger than %d bytes", url, maxDocumentSize)
	}

	c.logger.Debug("Downloaded document", zap.String("url", url), zap.Int("bytes", len(data)))
	return data, nil
}
