package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// ErrNoTimetable is returned when the site lists no document matching the timetable name.
var ErrNoTimetable = errors.New("no timetable found for the specified class")

// Preference picks between the two most recent timetables when the site lists both.
type Preference string

const (
	PreferNew Preference = "new"
	PreferOld Preference = "old"
)

// ParseTimetableLinks returns the href of every link whose markup contains name,
// in page order.
func ParseTimetableLinks(r io.Reader, name string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var links []string

	doc.Find("a").Each(func(i int, sel *goquery.Selection) {
		markup, err := goquery.OuterHtml(sel)
		if err != nil || !strings.Contains(markup, name) {
			return
		}
		if href, exists := sel.Attr("href"); exists && strings.TrimSpace(href) != "" {
			links = append(links, strings.TrimSpace(href))
		}
	})

	return links, nil
}

// pickLink applies the preference: the site lists the older timetable first.
func pickLink(links []string, pref Preference) (string, error) {
	switch {
	case len(links) > 1:
		if pref == PreferNew {
			return links[1], nil
		}
		return links[0], nil
	case len(links) == 1:
		return links[0], nil
	default:
		return "", ErrNoTimetable
	}
}

// FindTimetableLink scrapes siteURL for the timetable document called name and
// returns its absolute URL.
func (c *Client) FindTimetableLink(ctx context.Context, siteURL, name string, pref Preference) (string, error) {
	resp, err := c.Get(ctx, siteURL)
	if err != nil {
		return "", fmt.Errorf("error fetching timetable: %w", err)
	}
	defer resp.Body.Close()

	links, err := ParseTimetableLinks(resp.Body, name)
	if err != nil {
		return "", fmt.Errorf("error fetching timetable: %w", err)
	}
	c.logger.Debug("Matched timetable links", zap.String("name", name), zap.Strings("links", links))

	href, err := pickLink(links, pref)
	if err != nil {
		return "", err
	}

	return resolveLink(siteURL, href)
}

// resolveLink makes relative hrefs absolute against the page they came from.
func resolveLink(base, href string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid site URL %q: %w", base, err)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("invalid timetable link %q: %w", href, err)
	}
	return b.ResolveReference(ref).String(), nil
}
