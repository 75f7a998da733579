package sources

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/scanhub"
	scangoquery "github.com/fwojciec/scanhub/goquery"
)

var asuraSeriesRe = regexp.MustCompile(`series/([^/?]+)`)

// Ensure AsuraScan implements scanhub.Source.
var _ scanhub.Source = (*AsuraScan)(nil)

// AsuraScan scrapes asuracomic.net. The site rejects server traffic, so it
// is client-only; premium chapters are skipped.
type AsuraScan struct {
	Base
}

// NewAsuraScan creates the AsuraScan adapter.
func NewAsuraScan(pages scanhub.Fetcher, opts ...Option) *AsuraScan {
	s := &AsuraScan{
		Base: newBase("AsuraScan", "https://asuracomic.net", scanhub.SourceTypeScanlator, pages,
			[]string{"asuracomic.net"}, opts),
	}
	s.clientOnly = true
	return s
}

func (s *AsuraScan) ExtractMangaInfo(ctx context.Context, rawURL string) (*scanhub.MangaInfo, error) {
	return s.pageInfo(ctx, rawURL, submatch(asuraSeriesRe, rawURL))
}

func (s *AsuraScan) ChapterList(ctx context.Context, rawURL string) ([]scanhub.ScrapedChapter, error) {
	doc, err := s.document(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	var chapters []scanhub.ScrapedChapter
	doc.Find(`a[href*="/chapter/"]`).Each(func(_ int, a *goquery.Selection) {
		if isAsuraPremium(a) {
			return
		}
		href := strings.TrimSpace(a.AttrOr("href", ""))
		var chapterURL string
		switch {
		case strings.HasPrefix(href, "http"), strings.HasPrefix(href, "/"):
			chapterURL = s.absURL(href)
		default:
			chapterURL = s.baseURL + "/series/" + href
		}
		text := strings.TrimSpace(a.Find("h3").First().Text())
		n := scanhub.ParseChapterNumber(text, chapterURL)
		chapters = append(chapters, scanhub.ScrapedChapter{
			ID:     formatNumber(n),
			Number: n,
			Title:  text,
			URL:    chapterURL,
		})
	})
	return scanhub.NormalizeChapters(chapters), nil
}

// isAsuraPremium reports whether a chapter link carries the lock icon of
// early-access chapters.
func isAsuraPremium(a *goquery.Selection) bool {
	return a.Find("clipPath#clip0_568_418").Length() > 0 ||
		a.Find(`circle[fill="#913FE2"]`).Length() > 0
}

func (s *AsuraScan) Search(ctx context.Context, query string) ([]scanhub.SearchResult, error) {
	doc, err := s.document(ctx, s.baseURL+"/series?page=1&name="+url.QueryEscape(query))
	if err != nil {
		return nil, err
	}

	var rs []scanhub.SearchResult
	doc.Find(`a[href^="series/"]`).Each(func(_ int, a *goquery.Selection) {
		href := a.AttrOr("href", "")
		title := strings.TrimSpace(a.Find(`span.block.font-bold`).First().Text())
		if title == "" {
			return
		}
		r := scanhub.SearchResult{
			ID:         submatch(asuraSeriesRe, href),
			Title:      title,
			URL:        s.absURL(href),
			CoverImage: s.absURL(scangoquery.FirstAttr(a.Find("img").First(), "src", "data-src")),
		}
		latest := scanhub.ChapterNumberFromText(a.Find(`span[class*="text-[13px]"]`).First().Text())
		if latest >= 0 {
			r.LatestChapter = latest
		}
		rs = append(rs, r)
	})
	return results(rs), nil
}
