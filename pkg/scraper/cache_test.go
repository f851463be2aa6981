package scraper

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"rasporedctl/pkg/timetable"
)

func TestCacheReadWrite(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "rasporedctl-cache-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	docURL := "https://example.com/files/GIM-EK%2013.1.2025.pdf"

	// 1. Read non-existent cache
	grid, ok := readCache(docURL)
	if ok || grid != nil {
		t.Errorf("expected readCache to fail for non-existent cache, but got success")
	}

	// 2. Write cache
	testGrid := timetable.RawGrid{
		{timetable.Cell("Razred"), timetable.Cell("1")},
		{timetable.Cell("1.PMG"), timetable.Cell("DL\n5"), timetable.NoCell},
	}
	writeCache(docURL, testGrid)

	// Verify file was created
	expectedPath := filepath.Join(tempDir, ".rasporedctl_cache", "GIM-EK_13.1.2025.pdf.json")
	if _, err := os.Stat(expectedPath); os.IsNotExist(err) {
		t.Errorf("expected cache file to be created at %s", expectedPath)
	}

	// 3. Read existing valid cache
	loadedGrid, ok := readCache(docURL)
	if !ok {
		t.Fatalf("expected readCache to succeed for existing cache, but failed")
	}
	if !reflect.DeepEqual(testGrid, loadedGrid) {
		t.Errorf("loaded grid does not match written grid.\nGot: %+v\nExpected: %+v", loadedGrid, testGrid)
	}

	// 4. Another document with the same base name must not hit
	if _, ok := readCache("https://example.org/other/GIM-EK%2013.1.2025.pdf"); ok {
		t.Errorf("expected cache miss for a different URL with the same file name")
	}
}

func TestCacheExpiration(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "rasporedctl-cache-exp-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	docURL := "https://example.com/expired.pdf"

	// Write cache normally first (so we guarantee directory structure)
	writeCache(docURL, timetable.RawGrid{})

	// Now manually modify the timestamp in the file to simulate expiration
	cachePath, _ := getCachePath(docURL)

	entry := CacheEntry{
		Timestamp: time.Now().Add(-24 * time.Hour), // Expired (older than 12h)
		URL:       docURL,
		Grid:      timetable.RawGrid{{timetable.Cell("Old")}},
	}

	importJSON, _ := json.Marshal(entry)
	if err := os.WriteFile(cachePath, importJSON, 0644); err != nil {
		t.Fatalf("failed to overwrite cache file: %v", err)
	}

	// Try reading
	_, ok := readCache(docURL)
	if ok {
		t.Errorf("expected readCache to reject expired cache (24h old, limit is 12h), but it incorrectly succeeded")
	}
}
