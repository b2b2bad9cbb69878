package htmlutil

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// TableWithHeader returns the first table in the document whose header
// row text satisfies the predicate. The upstream markup carries no
// stable ids or classes, so tables are located by what their header
// says, not by position.
func TableWithHeader(doc *goquery.Document, pred func(header string) bool) *goquery.Selection {
	table := doc.Find("table").FilterFunction(func(_ int, t *goquery.Selection) bool {
		return pred(t.Find("th").Text())
	}).First()
	if table.Length() == 0 {
		return nil
	}
	return table
}

// LastWithText returns the last selection matching the selector whose
// rendered text satisfies the predicate. Last because wrappers render
// the same text as the element nested inside them, and the innermost
// one is wanted.
func LastWithText(doc *goquery.Document, selector string, pred func(text string) bool) *goquery.Selection {
	match := doc.Find(selector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return pred(s.Text())
	}).Last()
	if match.Length() == 0 {
		return nil
	}
	return match
}

// OwnText returns the text of a selection with the text of its child
// elements removed, which is how player labels are untangled from the
// badges and score tags nested next to them.
func OwnText(sel *goquery.Selection) string {
	var buffer bytes.Buffer
	for _, node := range sel.Nodes {
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == html.TextNode {
				buffer.WriteString(child.Data)
			}
		}
	}
	return buffer.String()
}
