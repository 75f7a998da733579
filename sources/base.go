// Package sources implements one scanhub.Source per upstream site and the
// registry that holds them.
package sources

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/scanhub"
	scangoquery "github.com/fwojciec/scanhub/goquery"
)

// Option configures a source adapter.
type Option func(*Base)

// WithBaseURL points the adapter at another root URL, for fixtures and
// mirrors. CanHandle keeps matching the upstream's own hosts.
func WithBaseURL(u string) Option {
	return func(b *Base) {
		b.baseURL = strings.TrimRight(u, "/")
	}
}

// Base carries the identity and shared helpers of an adapter. Adapters
// embed it and implement ExtractMangaInfo, ChapterList and Search.
type Base struct {
	name       string
	baseURL    string
	typ        scanhub.SourceType
	clientOnly bool
	hosts      []string
	pages      scanhub.Fetcher
}

func newBase(name, baseURL string, typ scanhub.SourceType, pages scanhub.Fetcher, hosts []string, opts []Option) Base {
	b := Base{
		name:    name,
		baseURL: baseURL,
		typ:     typ,
		hosts:   hosts,
		pages:   pages,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b *Base) Name() string {
	return b.name
}

func (b *Base) BaseURL() string {
	return b.baseURL
}

func (b *Base) Type() scanhub.SourceType {
	return b.typ
}

func (b *Base) Description() string {
	return b.name + " - " + b.baseURL
}

func (b *Base) ClientOnly() bool {
	return b.clientOnly
}

// CanHandle reports whether rawURL is on one of the source's hosts or
// their subdomains.
func (b *Base) CanHandle(rawURL string) bool {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, h := range b.hosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

// document fetches rawURL and parses it as HTML.
func (b *Base) document(ctx context.Context, rawURL string) (*goquery.Document, error) {
	html, err := b.pages.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return scangoquery.NewDocument(html)
}

// absURL resolves href against the source's root URL.
func (b *Base) absURL(href string) string {
	return scangoquery.AbsURL(b.baseURL+"/", href)
}

// pageInfo resolves the title of a page and pairs it with id. A page
// without any title is ENOTFOUND.
func (b *Base) pageInfo(ctx context.Context, rawURL, id string) (*scanhub.MangaInfo, error) {
	if id == "" {
		return nil, scanhub.Errorf(scanhub.ENOTFOUND, "%s: no title id in %s", b.name, rawURL)
	}
	doc, err := b.document(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	title := scangoquery.PageTitle(doc)
	if title == "" {
		return nil, scanhub.Errorf(scanhub.ENOTFOUND, "%s: no title at %s", b.name, rawURL)
	}
	return &scanhub.MangaInfo{Title: title, ID: id}, nil
}

// results caps a search result list and never returns nil.
func results(rs []scanhub.SearchResult) []scanhub.SearchResult {
	if rs == nil {
		return []scanhub.SearchResult{}
	}
	return scanhub.CapResults(rs)
}

// chapterID returns a stable id for a chapter the upstream does not number.
func chapterID(chapterURL string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(chapterURL))
}

// formatNumber renders a chapter number without a trailing fraction.
func formatNumber(n float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.4f", n), "0"), ".")
}

// submatch returns the first capture group of re in s, or "".
func submatch(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// unixDate formats an epoch in seconds as a UTC date.
func unixDate(secs int64) string {
	return time.Unix(secs, 0).UTC().Format(scanhub.UpdatedDateLayout)
}
