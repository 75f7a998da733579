package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/scanhub"
)

// NewDocument parses html. A parse failure is an EPARSE error.
func NewDocument(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, scanhub.WrapError(scanhub.EPARSE, err, "parse html")
	}
	return doc, nil
}

// UnwrapPre returns the text of the first <pre> element of body, which is
// how browsers and challenge solvers present a JSON document. Bodies
// without a <pre> are returned trimmed.
func UnwrapPre(body string) string {
	if !strings.Contains(strings.ToLower(body), "<pre") {
		return strings.TrimSpace(body)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return strings.TrimSpace(body)
	}
	pre := doc.Find("pre").First()
	if pre.Length() == 0 {
		return strings.TrimSpace(body)
	}
	return strings.TrimSpace(pre.Text())
}

// AbsURL resolves href against base. Unparseable input returns href
// unchanged.
func AbsURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(ref).String()
}

// FirstText returns the trimmed text of the first selector, searched
// within s, that yields non-empty text.
func FirstText(s *goquery.Selection, selectors ...string) string {
	for _, sel := range selectors {
		if text := strings.TrimSpace(s.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// FirstAttr returns the first non-empty attribute among names on s.
func FirstAttr(s *goquery.Selection, names ...string) string {
	for _, name := range names {
		if v, ok := s.Attr(name); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// PageTitle returns a title heading, falling back to the <title> element
// stripped of its " - Site" or "| Site" suffix.
func PageTitle(doc *goquery.Document) string {
	if title := FirstText(doc.Selection, "h1", "h2", ".title"); title != "" {
		return title
	}
	title := doc.Find("title").First().Text()
	title, _, _ = strings.Cut(title, " - ")
	title, _, _ = strings.Cut(title, "|")
	return strings.TrimSpace(title)
}

// SrcsetFirst returns the first URL of an img srcset attribute.
func SrcsetFirst(srcset string) string {
	first, _, _ := strings.Cut(srcset, ",")
	fields := strings.Fields(first)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
