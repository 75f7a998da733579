package sources

import (
	"context"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/scanhub"
	scangoquery "github.com/fwojciec/scanhub/goquery"
)

var (
	mangaParkChapterRe = regexp.MustCompile(`(?i)/title/\d+[^/]*/\d+-[a-z]+-\d+`)
	mangaParkIDRe      = regexp.MustCompile(`/title/(\d+)`)
)

// Ensure MangaPark implements scanhub.Source.
var _ scanhub.Source = (*MangaPark)(nil)

// MangaPark scrapes mangapark.io. Chapter numbers come from chapter URLs
// such as /title/1-en-x/9212466-ch-200.
type MangaPark struct {
	Base
}

// NewMangaPark creates the MangaPark adapter.
func NewMangaPark(pages scanhub.Fetcher, opts ...Option) *MangaPark {
	return &MangaPark{
		Base: newBase("MangaPark", "https://mangapark.io", scanhub.SourceTypeAggregator, pages,
			[]string{"mangapark.io", "mangapark.net"}, opts),
	}
}

func (s *MangaPark) ExtractMangaInfo(ctx context.Context, rawURL string) (*scanhub.MangaInfo, error) {
	return s.pageInfo(ctx, rawURL, submatch(mangaParkIDRe, rawURL))
}

func (s *MangaPark) ChapterList(ctx context.Context, rawURL string) ([]scanhub.ScrapedChapter, error) {
	doc, err := s.document(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	var chapters []scanhub.ScrapedChapter
	doc.Find(`a[href*="/title/"]`).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !mangaParkChapterRe.MatchString(href) {
			return
		}
		chapterURL := s.absURL(href)
		n := scanhub.ChapterNumberFromURL(chapterURL)
		chapters = append(chapters, scanhub.ScrapedChapter{
			ID:     formatNumber(n),
			Number: n,
			Title:  strings.TrimSpace(a.Text()),
			URL:    chapterURL,
		})
	})
	return scanhub.NormalizeChapters(chapters), nil
}

func (s *MangaPark) Search(ctx context.Context, query string) ([]scanhub.SearchResult, error) {
	doc, err := s.document(ctx, s.baseURL+"/search?word="+url.QueryEscape(query))
	if err != nil {
		return nil, err
	}

	var rs []scanhub.SearchResult
	doc.Find("div.flex.border-b.border-b-base-200.pb-5").Each(func(_ int, item *goquery.Selection) {
		link := item.Find("h3 a.link-hover.link-pri").First()
		href, ok := link.Attr("href")
		if !ok || href == "" {
			return
		}
		r := scanhub.SearchResult{
			ID:         submatch(mangaParkIDRe, href),
			Title:      strings.TrimSpace(link.Text()),
			URL:        s.absURL(href),
			CoverImage: s.absURL(scangoquery.FirstAttr(item.Find("img").First(), "src")),
			Followers:  strings.TrimSpace(item.Find(`[id^="comic-follow-swap"] span.ml-1`).First().Text()),
		}

		latest := item.Find(`a[href*="/title/"]`).FilterFunction(func(_ int, a *goquery.Selection) bool {
			return mangaParkChapterRe.MatchString(a.AttrOr("href", ""))
		}).Last()
		if n := scanhub.ChapterNumberFromText(strings.TrimSpace(latest.Text())); n >= 0 {
			r.LatestChapter = n
		} else if n := scanhub.ChapterNumberFromURL(latest.AttrOr("href", "")); n >= 0 {
			r.LatestChapter = n
		}

		tm := item.Find("time[data-time]").First()
		r.LastUpdated = strings.TrimSpace(tm.Find("span").Text())
		if ts, err := strconv.ParseInt(tm.AttrOr("data-time", ""), 10, 64); err == nil {
			r.LastUpdatedTimestamp = &ts
		}
		if rating, err := strconv.ParseFloat(strings.TrimSpace(item.Find(".text-yellow-500 span.font-bold").First().Text()), 64); err == nil {
			r.Rating = &rating
		}
		rs = append(rs, r)
	})
	return results(rs), nil
}
