package domain_test

import (
	"testing"

	"github.com/jonesrussell/lingcrawl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRecord(t *testing.T) {
	t.Parallel()

	t.Run("CanonicalForm", func(t *testing.T) {
		t.Parallel()
		r := &domain.Record{
			Ref:      "004512",
			Title:    "Doc Title",
			Excerpt:  "Some (Excerpt) Text, here.",
			Keywords: []string{" Syntax ", "SEMANTICS"},
		}
		domain.NormalizeRecord(r)

		assert.Equal(t, "doc title", r.Title)
		assert.Equal(t, "some excerpt text here", r.Excerpt)
		assert.Equal(t, []string{"syntax", "semantics"}, r.Keywords)
	})

	t.Run("Idempotent", func(t *testing.T) {
		t.Parallel()
		r := &domain.Record{
			Ref:      "004512",
			Title:    "Doc Title",
			Excerpt:  "Some (Excerpt) Text; again: yes.",
			Keywords: []string{"Syntax", " semantics"},
			Venue:    "Journal of Syntax",
			Date:     "2020-01-01",
			Authors:  []string{"jane doe"},
		}
		domain.NormalizeRecord(r)
		once := *r
		onceKwd := append([]string(nil), r.Keywords...)

		domain.NormalizeRecord(r)
		assert.Equal(t, once.Title, r.Title)
		assert.Equal(t, once.Excerpt, r.Excerpt)
		assert.Equal(t, onceKwd, r.Keywords)
	})
}

func TestSplitKeywords(t *testing.T) {
	t.Parallel()
	assert.Equal(t,
		[]string{"syntax", "semantics"},
		domain.SplitKeywords("Syntax,  Semantics"),
	)
	assert.Equal(t, []string{"morphology"}, domain.SplitKeywords("morphology"))
}

func TestParseDownloads(t *testing.T) {
	t.Parallel()

	n, ok := domain.ParseDownloads("42 times")
	require.True(t, ok)
	assert.Equal(t, 42, n)

	n, ok = domain.ParseDownloads("downloaded 1703 times total")
	require.True(t, ok)
	assert.Equal(t, 1703, n)

	_, ok = domain.ParseDownloads("never")
	assert.False(t, ok)
}

func TestToASCII(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "jos luis balczar", domain.ToASCII("josé luis balcázar"))
	assert.Equal(t, "jane doe", domain.ToASCII("jane doe"))
}

func TestRefPattern(t *testing.T) {
	t.Parallel()
	assert.True(t, domain.RefPattern.MatchString("004512"))
	assert.False(t, domain.RefPattern.MatchString("4512"))
	assert.False(t, domain.RefPattern.MatchString("0045123"))
	assert.False(t, domain.RefPattern.MatchString("00451a"))
}
