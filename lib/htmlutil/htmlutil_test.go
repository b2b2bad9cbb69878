package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const tablesDoc = `
<html><body>
<table id="first"><thead><tr><th>Giornata</th></tr></thead></table>
<table id="second"><thead><tr><th>Pos</th><th>Squadra</th><th>Pt</th></tr></thead></table>
</body></html>`

func TestTableWithHeader(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(tablesDoc))
	require.NoError(t, err)

	table := TableWithHeader(doc, func(header string) bool {
		return strings.Contains(header, "Pt")
	})
	require.NotNil(t, table)
	require.Equal(t, "second", table.AttrOr("id", ""))

	missing := TableWithHeader(doc, func(header string) bool {
		return strings.Contains(header, "Gol")
	})
	require.Nil(t, missing)
}

func TestLastWithTextPicksInnermost(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<div class="wrap"><h5 id="inner">Marcatori</h5></div>`,
	))
	require.NoError(t, err)

	// the wrapping div renders the same text as the heading inside it
	match := LastWithText(doc, "div, h5", func(text string) bool {
		return strings.TrimSpace(text) == "Marcatori"
	})
	require.NotNil(t, match)
	require.Equal(t, "inner", match.AttrOr("id", ""))

	missing := LastWithText(doc, "div, h5", func(text string) bool {
		return strings.TrimSpace(text) == "Arbitri"
	})
	require.Nil(t, missing)
}

func TestOwnText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<div class="event">  Rossi M. <span class="badge">GOL</span><h6>2 - 1</h6></div>`,
	))
	require.NoError(t, err)

	own := strings.TrimSpace(OwnText(doc.Find("div.event")))
	require.Equal(t, "Rossi M.", own)
}
