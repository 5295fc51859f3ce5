// Package listing extracts document refs and the pagination link from a
// listing page.
package listing

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/lingcrawl/internal/domain"
)

// nextLinkPattern matches the visible text of the pagination anchor.
// The match is case-sensitive; the site renders it exactly this way.
var nextLinkPattern = regexp.MustCompile(`^Next \d+ articles$`)

// Page is the parsed form of one listing page.
type Page struct {
	// Refs are the six-digit document refs in document order. Duplicate
	// anchors are preserved; the crawl driver de-duplicates against the
	// store.
	Refs []string
	// NextPath is the path of the next listing page, empty on the last page.
	NextPath string
}

// Parse scans every anchor of a listing page. An anchor whose href's trailing
// path segment is exactly six digits contributes a ref; the anchor reading
// "Next N articles" carries the next-page path. The underlying parser is
// error-correcting, so the site's irregular markup still yields a usable
// document.
func Parse(raw []byte) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse listing html: %w", err)
	}

	page := &Page{}

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || href == "" {
			return
		}

		if ref := trailingRef(href); ref != "" {
			page.Refs = append(page.Refs, ref)
		}

		if page.NextPath == "" && nextLinkPattern.MatchString(strings.TrimSpace(a.Text())) {
			page.NextPath = href
		}
	})

	return page, nil
}

// trailingRef returns the trailing path segment of href when it is a valid
// ref, otherwise the empty string. Query and fragment parts are not part of
// the segment.
func trailingRef(href string) string {
	trimmed := href
	for _, sep := range []string{"?", "#"} {
		if i := strings.Index(trimmed, sep); i >= 0 {
			trimmed = trimmed[:i]
		}
	}
	trimmed = strings.TrimSuffix(trimmed, "/")

	segment := trimmed
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		segment = trimmed[i+1:]
	}

	if domain.RefPattern.MatchString(segment) {
		return segment
	}
	return ""
}
