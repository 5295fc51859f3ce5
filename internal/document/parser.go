// Package document extracts structured metadata from a document page.
//
// The source site renders document metadata as free text, so extraction is
// positional: the page body is flattened into lowercased text lines and
// fields are located relative to fixed marker lines. The brittleness lives
// entirely in this package; fetching and storage never see it.
package document

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/jonesrussell/lingcrawl/internal/domain"
)

// Marker lines used to locate field values.
const (
	MarkerVenue     = "published in:"
	MarkerKeywords  = "keywords:"
	MarkerDownloads = "downloaded:"
	MarkerFormat    = "format:"
	// MarkerHeader names the centered title/authors/date block in errors.
	MarkerHeader = "header"
)

// commaLine is a filler line the site emits between author names.
const commaLine = ","

// MarkerError reports an expected marker missing from a document page.
type MarkerError struct {
	Ref    string
	Marker string
}

func (e *MarkerError) Error() string {
	return fmt.Sprintf("document %s: marker %q not found", e.Ref, e.Marker)
}

// Parse extracts a record from a document page. It returns (nil, nil) when
// the page carries no text at all, and a MarkerError when a required marker
// line is absent. The venue falls back to the N/A sentinel instead.
func Parse(raw []byte, ref string) (*domain.Record, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse document html: %w", err)
	}

	lines := textLines(doc.Find("body"))
	if len(lines) == 0 {
		return nil, nil
	}

	title, date, authors, err := parseHeader(doc, ref)
	if err != nil {
		return nil, err
	}

	venue, ok := lineAfter(lines, MarkerVenue)
	if !ok {
		venue = domain.VenueUnknown
	}

	rawKeywords, ok := lineAfter(lines, MarkerKeywords)
	if !ok {
		return nil, &MarkerError{Ref: ref, Marker: MarkerKeywords}
	}

	rawDownloads, ok := lineAfter(lines, MarkerDownloads)
	if !ok {
		return nil, &MarkerError{Ref: ref, Marker: MarkerDownloads}
	}

	downloads, ok := domain.ParseDownloads(rawDownloads)
	if !ok {
		return nil, fmt.Errorf("document %s: no digits in download count %q", ref, rawDownloads)
	}

	excerpt, err := extractExcerpt(lines, title, date, ref)
	if err != nil {
		return nil, err
	}

	rec := &domain.Record{
		Ref:       ref,
		Title:     title,
		Date:      date,
		Authors:   authors,
		Venue:     venue,
		Keywords:  domain.SplitKeywords(rawKeywords),
		Downloads: downloads,
		Excerpt:   excerpt,
	}
	domain.NormalizeRecord(rec)

	return rec, nil
}

// parseHeader splits the centered header block: first line is the title, last
// line is the date, the lines between are authors. Comma filler lines are
// dropped, and author names are reduced to their ASCII-representable runes.
func parseHeader(doc *goquery.Document, ref string) (title, date string, authors []string, err error) {
	center := doc.Find("center").First()
	if center.Length() == 0 {
		return "", "", nil, &MarkerError{Ref: ref, Marker: MarkerHeader}
	}

	lines := textLines(center)
	if len(lines) < 2 {
		return "", "", nil, &MarkerError{Ref: ref, Marker: MarkerHeader}
	}

	title = lines[0]
	date = lines[len(lines)-1]

	for _, line := range lines[1 : len(lines)-1] {
		if line == commaLine {
			continue
		}
		if name := strings.TrimSpace(domain.ToASCII(line)); name != "" {
			authors = append(authors, name)
		}
	}

	return title, date, authors, nil
}

// extractExcerpt returns the lines strictly between the excerpt anchor and
// the "format:" marker, joined with single spaces.
//
// The anchor is the nearest line preceding the marker that equals the title
// or the date. Anchoring on the first occurrence of the date from the top
// misreads pages that repeat the title or date between the header and the
// abstract, so the scan runs backwards from the marker instead.
func extractExcerpt(lines []string, title, date string, ref string) (string, error) {
	formatIdx := -1
	for i, line := range lines {
		if line == MarkerFormat {
			formatIdx = i
			break
		}
	}
	if formatIdx < 0 {
		return "", &MarkerError{Ref: ref, Marker: MarkerFormat}
	}

	for i := formatIdx - 1; i >= 0; i-- {
		if lines[i] == title || lines[i] == date {
			return strings.Join(lines[i+1:formatIdx], " "), nil
		}
	}

	return "", nil
}

// lineAfter returns the line following the first occurrence of marker.
func lineAfter(lines []string, marker string) (string, bool) {
	for i, line := range lines {
		if line == marker && i+1 < len(lines) {
			return lines[i+1], true
		}
	}
	return "", false
}

// textLines flattens a selection into trimmed, lowercased, non-empty text
// lines in document order. Script and style contents are skipped.
func textLines(sel *goquery.Selection) []string {
	var lines []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			for _, part := range strings.Split(n.Data, "\n") {
				if s := strings.TrimSpace(part); s != "" {
					lines = append(lines, strings.ToLower(s))
				}
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range sel.Nodes {
		walk(n)
	}

	return lines
}
