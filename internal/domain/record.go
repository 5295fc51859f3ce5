// Package domain defines the corpus record model shared by the parser,
// the store and the crawl driver.
package domain

import "regexp"

// RefPattern matches a valid document reference: exactly six digits.
var RefPattern = regexp.MustCompile(`^\d{6}$`)

// Record is one crawled document's metadata, keyed by its six-digit ref.
// The json tags define the persisted snapshot shape.
type Record struct {
	Ref       string   `json:"ref"`
	Downloads int      `json:"cnt"`
	Keywords  []string `json:"kwd"`
	Title     string   `json:"tit"`
	Venue     string   `json:"pub"`
	Date      string   `json:"dat"`
	Authors   []string `json:"aut"`
	Excerpt   string   `json:"exc"`
}

// VenueUnknown is the sentinel venue for documents without a
// "published in:" line.
const VenueUnknown = "N/A"
