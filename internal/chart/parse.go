package chart

import (
	"errors"
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"

	"chartmeta/internal/textutil"
)

// ErrMalformedEntry is returned when a chart element lacks one of the fields
// every entry is expected to carry.
var ErrMalformedEntry = errors.New("malformed chart entry")

// ErrNoEntries is returned when the page contains no chart elements at all,
// which usually means the markup changed or the week does not exist.
var ErrNoEntries = errors.New("no chart entries found")

// Markup selectors for the Billboard 200 chart list.
const (
	entrySelector  = "li.chart-list__element"
	titleSelector  = "span.chart-element__information__song"
	artistSelector = "span.chart-element__information__artist"
	rankSelector   = "span.chart-element__rank__number"
	weeksSelector  = "span.chart-element__meta.text--week"
)

// Parse reads chart markup from r and returns at most count rows in page
// order. A count of zero or less yields no rows.
func Parse(r io.Reader, count int) ([]Row, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse chart html: %w", err)
	}

	entries := doc.Find(entrySelector)
	if entries.Length() == 0 {
		return nil, ErrNoEntries
	}
	if count <= 0 {
		return []Row{}, nil
	}

	limit := min(count, entries.Length())
	rows := make([]Row, 0, limit)
	var parseErr error
	entries.EachWithBreak(func(idx int, entry *goquery.Selection) bool {
		if len(rows) == limit {
			return false
		}
		row, err := parseEntry(entry)
		if err != nil {
			parseErr = fmt.Errorf("entry %d: %w", idx+1, err)
			return false
		}
		rows = append(rows, row)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return rows, nil
}

func parseEntry(entry *goquery.Selection) (Row, error) {
	var row Row
	fields := []struct {
		name     string
		selector string
		dst      *string
	}{
		{"title", titleSelector, &row.Title},
		{"artist", artistSelector, &row.Artist},
		{"rank", rankSelector, &row.Rank},
		{"weeks", weeksSelector, &row.WeeksOnChart},
	}

	for _, field := range fields {
		node := entry.Find(field.selector).First()
		if node.Length() == 0 {
			return Row{}, fmt.Errorf("%w: missing %s", ErrMalformedEntry, field.name)
		}
		*field.dst = textutil.CleanText(node.Text())
	}
	return row, nil
}
