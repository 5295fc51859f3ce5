package domain

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var digitRun = regexp.MustCompile(`\d+`)

// excerptPunctuation is stripped from excerpt text during normalization.
const excerptPunctuation = ";:.,()"

// NormalizeRecord brings a record into canonical form: lowercased title and
// excerpt, punctuation-stripped excerpt, trimmed lowercase keyword tokens.
// Applying it twice yields the same record as applying it once, so the
// store-wide pass can safely re-run over previously normalized snapshots.
func NormalizeRecord(r *Record) {
	r.Title = strings.ToLower(r.Title)
	r.Excerpt = StripPunctuation(strings.ToLower(r.Excerpt))
	r.Keywords = NormalizeKeywords(r.Keywords)
}

// NormalizeKeywords trims and lowercases each token.
func NormalizeKeywords(kwd []string) []string {
	out := make([]string, 0, len(kwd))
	for _, k := range kwd {
		out = append(out, strings.ToLower(strings.TrimSpace(k)))
	}
	return out
}

// SplitKeywords splits a raw comma-joined keyword line into normalized tokens.
func SplitKeywords(raw string) []string {
	parts := strings.Split(raw, ",")
	return NormalizeKeywords(parts)
}

// ParseDownloads extracts the first run of digits from a raw download-count
// line ("42 times" -> 42). Returns false when the line holds no digits.
func ParseDownloads(raw string) (int, bool) {
	m := digitRun.FindString(raw)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// StripPunctuation removes the fixed excerpt punctuation set.
func StripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(excerptPunctuation, r) {
			return -1
		}
		return r
	}, s)
}

// ToASCII drops runes outside the 7-bit range. Author names on the source
// site occasionally carry characters the downstream tooling cannot encode;
// the name is kept with those runes removed, not discarded.
func ToASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)
}
