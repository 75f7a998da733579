// Package frontpage implements the curated listing sections of upstream
// sites.
package frontpage

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/fwojciec/scanhub"
)

// Genres hidden from every Comix listing.
var comixExcludedGenres = []string{"87264", "87266", "87268", "87265"}

var comixTimeFilters = []int{1, 7, 30, 90, 180, 365}

var comixSections = []scanhub.SectionConfig{
	{ID: "trending", Title: "Most Recent Popular", Type: scanhub.SectionTrending, SupportsTimeFilter: true, AvailableTimeFilters: comixTimeFilters},
	{ID: "most_followed", Title: "Most Followed New Comics", Type: scanhub.SectionMostFollowed, SupportsTimeFilter: true, AvailableTimeFilters: comixTimeFilters},
	{ID: "latest_hot", Title: "Latest Updates (Hot)", Type: scanhub.SectionLatestHot, SupportsPagination: true},
	{ID: "latest_new", Title: "Latest Updates (New)", Type: scanhub.SectionLatestNew, SupportsPagination: true},
	{ID: "recently_added", Title: "Recently Added", Type: scanhub.SectionRecentlyAdded, SupportsPagination: true},
	{ID: "completed", Title: "Complete Series", Type: scanhub.SectionCompleted, SupportsPagination: true},
}

// Ensure Comix implements scanhub.Frontpage.
var _ scanhub.Frontpage = (*Comix)(nil)

// Comix serves the comix.to listing sections from its JSON API.
type Comix struct {
	api       scanhub.JSONFetcher
	converter scanhub.Converter
	baseURL   string
}

// Option configures a Comix frontpage.
type Option func(*Comix)

// WithBaseURL points the frontpage at another root URL.
func WithBaseURL(u string) Option {
	return func(c *Comix) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithConverter converts HTML synopses to Markdown.
func WithConverter(conv scanhub.Converter) Option {
	return func(c *Comix) {
		c.converter = conv
	}
}

// NewComix creates the Comix frontpage reading through api.
func NewComix(api scanhub.JSONFetcher, opts ...Option) *Comix {
	c := &Comix{api: api, baseURL: "https://comix.to"}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Comix) SourceID() string {
	return "comix"
}

func (c *Comix) SourceName() string {
	return "Comix"
}

// Sections returns a copy of the section configs.
func (c *Comix) Sections() []scanhub.SectionConfig {
	out := slices.Clone(comixSections)
	for i := range out {
		out[i].AvailableTimeFilters = slices.Clone(out[i].AvailableTimeFilters)
	}
	return out
}

// FetchSection fetches one section. Omitted options take the defaults of
// scanhub.FetchOptions; days only applies to time-filtered sections.
func (c *Comix) FetchSection(ctx context.Context, id string, opts scanhub.FetchOptions) (*scanhub.FrontpageSection, error) {
	cfg, ok := scanhub.FindSection(comixSections, id)
	if !ok {
		return nil, scanhub.Errorf(scanhub.EUNKNOWNSECTION, "Unknown section: %s", id)
	}
	u := c.sectionURL(cfg.Type, opts.WithDefaults())

	var resp struct {
		Result struct {
			Items []scanhub.Fields `json:"items"`
		} `json:"result"`
	}
	if err := c.api.FetchJSON(ctx, u, &resp); err != nil {
		return nil, err
	}

	items := make([]scanhub.FrontpageManga, 0, len(resp.Result.Items))
	for _, f := range resp.Result.Items {
		items = append(items, c.mapItem(f))
	}
	return scanhub.NewFrontpageSection(cfg, items), nil
}

func (c *Comix) sectionURL(typ scanhub.SectionType, opts scanhub.FetchOptions) string {
	var b strings.Builder
	b.WriteString(c.baseURL + "/api/v2/")
	switch typ {
	case scanhub.SectionTrending, scanhub.SectionMostFollowed:
		b.WriteString("top?")
	default:
		b.WriteString("manga?")
	}
	for i, g := range comixExcludedGenres {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString("exclude_genres[]=" + g)
	}

	limit, page := strconv.Itoa(opts.Limit), strconv.Itoa(opts.Page)
	switch typ {
	case scanhub.SectionTrending:
		fmt.Fprintf(&b, "&type=trending&days=%d&limit=%s", opts.Days, limit)
	case scanhub.SectionMostFollowed:
		fmt.Fprintf(&b, "&type=follows&days=%d&limit=%s", opts.Days, limit)
	case scanhub.SectionLatestHot:
		b.WriteString("&scope=hot&limit=" + limit + "&order[chapter_updated_at]=desc&page=" + page)
	case scanhub.SectionLatestNew:
		b.WriteString("&scope=new&limit=" + limit + "&order[chapter_updated_at]=desc&page=" + page)
	case scanhub.SectionRecentlyAdded:
		b.WriteString("&order[created_at]=desc&limit=" + limit + "&page=" + page)
	case scanhub.SectionCompleted:
		b.WriteString("&statuses[]=finished&order[chapter_updated_at]=desc&limit=" + limit + "&page=" + page)
	}
	return b.String()
}

func (c *Comix) mapItem(f scanhub.Fields) scanhub.FrontpageManga {
	m := scanhub.MapFrontpageManga(f, c.baseURL)
	if hash := f.String("hash_id"); hash != "" {
		m.ID = hash
		m.URL = c.baseURL + "/title/" + hash + "-" + url.PathEscape(f.String("slug"))
	}
	if c.converter != nil && m.Synopsis != "" {
		if md, err := c.converter.Convert(m.Synopsis); err == nil {
			m.Synopsis = md
		}
	}
	return m
}
