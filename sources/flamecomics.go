package sources

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/scanhub"
)

const flameCDNURL = "https://cdn.flamecomics.xyz"

var flameSeriesRe = regexp.MustCompile(`/series/(\d+)`)

// Ensure FlameComics implements scanhub.Source.
var _ scanhub.Source = (*FlameComics)(nil)

// FlameComics searches flamecomics.xyz through its series API and scrapes
// chapter lists from series pages.
type FlameComics struct {
	Base
	api scanhub.JSONFetcher
	now func() time.Time
}

// NewFlameComics creates the FlameComics adapter. api fetches the series
// index.
func NewFlameComics(pages scanhub.Fetcher, api scanhub.JSONFetcher, opts ...Option) *FlameComics {
	return &FlameComics{
		Base: newBase("FlameComics", "https://flamecomics.xyz", scanhub.SourceTypeScanlator, pages,
			[]string{"flamecomics.xyz"}, opts),
		api: api,
		now: time.Now,
	}
}

func (s *FlameComics) ExtractMangaInfo(ctx context.Context, rawURL string) (*scanhub.MangaInfo, error) {
	return s.pageInfo(ctx, rawURL, submatch(flameSeriesRe, rawURL))
}

func (s *FlameComics) ChapterList(ctx context.Context, rawURL string) ([]scanhub.ScrapedChapter, error) {
	doc, err := s.document(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	var chapters []scanhub.ScrapedChapter
	doc.Find(`a[href*="/series/"]`).Each(func(_ int, a *goquery.Selection) {
		href := a.AttrOr("href", "")
		if len(strings.Split(href, "/")) < 4 {
			return
		}
		var n float64
		if ep, err := strconv.ParseFloat(a.AttrOr("data-mal-sync-episode", ""), 64); err == nil {
			n = ep
		} else {
			n = scanhub.ChapterNumberFromText(a.Text())
		}
		if n < 0 {
			return
		}
		title := strings.TrimSpace(a.Find(`p[data-size="md"]`).First().Text())
		if title == "" {
			title = "Chapter " + formatNumber(n)
		}
		chapters = append(chapters, scanhub.ScrapedChapter{
			ID:     formatNumber(n),
			Number: n,
			Title:  title,
			URL:    s.absURL(href),
		})
	})
	return scanhub.NormalizeChapters(chapters), nil
}

func (s *FlameComics) Search(ctx context.Context, query string) ([]scanhub.SearchResult, error) {
	var series []scanhub.Fields
	if err := s.api.FetchJSON(ctx, s.baseURL+"/api/series", &series); err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	var rs []scanhub.SearchResult
	for _, sr := range series {
		id, label := sr.String("id", "series_id"), sr.String("label", "title")
		if id == "" || !strings.Contains(strings.ToLower(label), q) {
			continue
		}
		r := scanhub.SearchResult{
			ID:    id,
			Title: label,
			URL:   s.baseURL + "/series/" + id,
		}
		if image := sr.String("image"); image != "" {
			r.CoverImage = flameCDNURL + "/uploads/images/series/" + id + "/" + image
		}
		if n, ok := sr.Float("chapter_count"); ok {
			r.LatestChapter = n
		}
		rs = append(rs, r)
	}
	slices.SortStableFunc(rs, func(a, b scanhub.SearchResult) int {
		switch {
		case a.LatestChapter > b.LatestChapter:
			return -1
		case a.LatestChapter < b.LatestChapter:
			return 1
		}
		return 0
	})

	return Enrich(ctx, results(rs), s.lastUpdated), nil
}

// lastUpdated sets the age of the newest chapter shown on the series page.
func (s *FlameComics) lastUpdated(ctx context.Context, r *scanhub.SearchResult) error {
	doc, err := s.document(ctx, r.URL)
	if err != nil {
		return err
	}
	title := doc.Find(".ChapterCard_chapterWrapper__YjOzx").First().
		Find(`p[data-size="xs"][title]`).First().AttrOr("title", "")
	t, ok := parseFlameTime(title)
	if !ok {
		r.LastUpdated = "Unknown"
		return nil
	}
	ms := t.UnixMilli()
	r.LastUpdatedTimestamp = &ms
	r.LastUpdated = relativeTime(t, s.now())
	return nil
}

func parseFlameTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "January 2, 2006 3:04 PM", "January 2, 2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// relativeTime renders the age of t as "5d ago", "3h ago" or "just now".
func relativeTime(t, now time.Time) string {
	d := now.Sub(t)
	days := int(d.Hours() / 24)
	switch {
	case days >= 365:
		return fmt.Sprintf("%dy ago", days/365)
	case days >= 30:
		return fmt.Sprintf("%dmo ago", days/30)
	case days >= 7:
		return fmt.Sprintf("%dw ago", days/7)
	case days > 0:
		return fmt.Sprintf("%dd ago", days)
	case d >= time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d >= time.Minute:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	}
	return "just now"
}
