package document_test

import (
	"testing"

	"github.com/jonesrussell/lingcrawl/internal/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("MarkersBeforeExcerpt", func(t *testing.T) {
		t.Parallel()
		// The title repeats between the metadata block and the abstract;
		// the excerpt anchors on the repeat, not the header date.
		html := `<html><body>
			<center>Doc Title<br>Jane Doe<br>2020-01-01</center>
			<p>published in:<br>Journal of Syntax</p>
			<p>keywords:<br>Syntax, Semantics</p>
			<p>downloaded:<br>42 times</p>
			<p>Doc Title</p>
			<p>Some excerpt text.</p>
			<p>format:<br>pdf</p>
		</body></html>`

		rec, err := document.Parse([]byte(html), "004512")
		require.NoError(t, err)
		require.NotNil(t, rec)

		assert.Equal(t, "004512", rec.Ref)
		assert.Equal(t, "doc title", rec.Title)
		assert.Equal(t, "2020-01-01", rec.Date)
		assert.Equal(t, []string{"jane doe"}, rec.Authors)
		assert.Equal(t, "journal of syntax", rec.Venue)
		assert.Equal(t, []string{"syntax", "semantics"}, rec.Keywords)
		assert.Equal(t, 42, rec.Downloads)
		assert.Equal(t, "some excerpt text", rec.Excerpt)
	})

	t.Run("AbstractBetweenDateAndFormat", func(t *testing.T) {
		t.Parallel()
		html := `<html><body>
			<center>On Phases<br>Anna Öhman<br>,<br>John Smith<br>march 2020</center>
			<p>Abstract line one
			abstract line two</p>
			<p>format:</p><p>[ pdf ]</p>
			<p>published in:</p><p>Glossa</p>
			<p>keywords:</p><p>Phases, Syntax</p>
			<p>downloaded:</p><p>1703 times</p>
		</body></html>`

		rec, err := document.Parse([]byte(html), "004999")
		require.NoError(t, err)
		require.NotNil(t, rec)

		assert.Equal(t, "on phases", rec.Title)
		assert.Equal(t, "march 2020", rec.Date)
		assert.Equal(t, []string{"anna hman", "john smith"}, rec.Authors)
		assert.Equal(t, "glossa", rec.Venue)
		assert.Equal(t, []string{"phases", "syntax"}, rec.Keywords)
		assert.Equal(t, 1703, rec.Downloads)
		assert.Equal(t, "abstract line one abstract line two", rec.Excerpt)
	})

	t.Run("MissingVenueFallsBack", func(t *testing.T) {
		t.Parallel()
		html := `<body>
			<center>A Paper<br>Jane Doe<br>2021-06-01</center>
			<p>The abstract.</p>
			<p>format:</p><p>pdf</p>
			<p>keywords:</p><p>syntax</p>
			<p>downloaded:</p><p>7 times</p>
		</body>`

		rec, err := document.Parse([]byte(html), "005000")
		require.NoError(t, err)
		assert.Equal(t, "N/A", rec.Venue)
	})

	t.Run("MissingKeywordsMarker", func(t *testing.T) {
		t.Parallel()
		html := `<body>
			<center>A Paper<br>Jane Doe<br>2021-06-01</center>
			<p>format:</p><p>pdf</p>
			<p>downloaded:</p><p>7 times</p>
		</body>`

		_, err := document.Parse([]byte(html), "005001")
		var markerErr *document.MarkerError
		require.ErrorAs(t, err, &markerErr)
		assert.Equal(t, "005001", markerErr.Ref)
		assert.Equal(t, document.MarkerKeywords, markerErr.Marker)
	})

	t.Run("MissingDownloadsMarker", func(t *testing.T) {
		t.Parallel()
		html := `<body>
			<center>A Paper<br>Jane Doe<br>2021-06-01</center>
			<p>format:</p><p>pdf</p>
			<p>keywords:</p><p>syntax</p>
		</body>`

		_, err := document.Parse([]byte(html), "005002")
		var markerErr *document.MarkerError
		require.ErrorAs(t, err, &markerErr)
		assert.Equal(t, document.MarkerDownloads, markerErr.Marker)
	})

	t.Run("MissingHeader", func(t *testing.T) {
		t.Parallel()
		html := `<body><p>keywords:</p><p>syntax</p></body>`

		_, err := document.Parse([]byte(html), "005003")
		var markerErr *document.MarkerError
		require.ErrorAs(t, err, &markerErr)
		assert.Equal(t, document.MarkerHeader, markerErr.Marker)
	})

	t.Run("MissingFormatMarker", func(t *testing.T) {
		t.Parallel()
		html := `<body>
			<center>A Paper<br>Jane Doe<br>2021-06-01</center>
			<p>keywords:</p><p>syntax</p>
			<p>downloaded:</p><p>7 times</p>
		</body>`

		_, err := document.Parse([]byte(html), "005004")
		var markerErr *document.MarkerError
		require.ErrorAs(t, err, &markerErr)
		assert.Equal(t, document.MarkerFormat, markerErr.Marker)
	})

	t.Run("DownloadCountWithoutDigits", func(t *testing.T) {
		t.Parallel()
		html := `<body>
			<center>A Paper<br>Jane Doe<br>2021-06-01</center>
			<p>format:</p><p>pdf</p>
			<p>keywords:</p><p>syntax</p>
			<p>downloaded:</p><p>never</p>
		</body>`

		_, err := document.Parse([]byte(html), "005005")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "005005")
	})

	t.Run("EmptyPage", func(t *testing.T) {
		t.Parallel()
		rec, err := document.Parse([]byte("<html><body></body></html>"), "005006")
		require.NoError(t, err)
		assert.Nil(t, rec)
	})
}
