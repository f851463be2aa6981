package scraper

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"time"

	"rasporedctl/pkg/timetable"
)

// cacheDuration determines how long an extracted grid is kept before refreshing
const cacheDuration = 12 * time.Hour

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// CacheEntry represents the disk data format
type CacheEntry struct {
	Timestamp time.Time         `json:"timestamp"`
	URL       string            `json:"url"`
	Grid      timetable.RawGrid `json:"grid"`
}

func getCachePath(docURL string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}

	cacheDir := filepath.Join(homeDir, ".rasporedctl_cache")
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", fmt.Errorf("could not create cache directory: %w", err)
	}

	// e.g. ".../GIM-EK 13.1.2025.pdf" -> "GIM-EK_13.1.2025.pdf.json"
	base := docURL
	if u, err := url.Parse(docURL); err == nil && u.Path != "" {
		base = path.Base(u.Path)
	}
	return filepath.Join(cacheDir, unsafeNameChars.ReplaceAllString(base, "_")+".json"), nil
}

// readCache checks if a valid, unexpired cache exists for this document
func readCache(docURL string) (timetable.RawGrid, bool) {
	path, err := getCachePath(docURL)
	if err != nil {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false // File doesn't exist or can't be read
	}

	var entry CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	// two documents can share a base name
	if entry.URL != docURL {
		return nil, false
	}

	// Check expiration
	if time.Since(entry.Timestamp) > cacheDuration {
		return nil, false // Expired
	}

	return entry.Grid, true
}

// writeCache saves the grid to disk
func writeCache(docURL string, grid timetable.RawGrid) {
	path, err := getCachePath(docURL)
	if err != nil {
		return
	}

	entry := CacheEntry{
		Timestamp: time.Now(),
		URL:       docURL,
		Grid:      grid,
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return
	}

	_ = os.WriteFile(path, data, 0644)
}
