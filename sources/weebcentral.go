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
	weebSeriesRe = regexp.MustCompile(`/series/([^/]+)(?:/([^/?#]+))?`)
	weebNumberRe = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
)

// Ensure WeebCentral implements scanhub.Source.
var _ scanhub.Source = (*WeebCentral)(nil)

// WeebCentral scrapes weebcentral.com. Search results carry no chapter
// count, so each one is enriched from the title's full chapter list.
type WeebCentral struct {
	Base
}

// NewWeebCentral creates the WeebCentral adapter.
func NewWeebCentral(pages scanhub.Fetcher, opts ...Option) *WeebCentral {
	s := &WeebCentral{
		Base: newBase("WeebCentral", "https://weebcentral.com", scanhub.SourceTypeAggregator, pages,
			[]string{"weebcentral.com"}, opts),
	}
	s.clientOnly = true
	return s
}

func (s *WeebCentral) ExtractMangaInfo(ctx context.Context, rawURL string) (*scanhub.MangaInfo, error) {
	return s.pageInfo(ctx, rawURL, submatch(weebSeriesRe, rawURL))
}

func (s *WeebCentral) ChapterList(ctx context.Context, rawURL string) ([]scanhub.ScrapedChapter, error) {
	id := submatch(weebSeriesRe, rawURL)
	if id == "" {
		return nil, scanhub.Errorf(scanhub.EINVALID, "WeebCentral: invalid series URL %s", rawURL)
	}
	doc, err := s.document(ctx, s.baseURL+"/series/"+id+"/full-chapter-list")
	if err != nil {
		return nil, err
	}

	var chapters []scanhub.ScrapedChapter
	doc.Find(`a[href*="/chapters/"]`).Each(func(_ int, a *goquery.Selection) {
		text := strings.TrimSpace(a.Find("span").First().Text())
		if text == "" {
			text = strings.TrimSpace(a.Text())
		}
		text, _, _ = strings.Cut(text, "\n")
		text = strings.TrimSpace(text)

		n := scanhub.ChapterNumberFromText(text)
		if n < 0 && !scanhub.IsConcatenatedChapter(text) {
			if m := submatch(weebNumberRe, text); m != "" {
				n, _ = strconv.ParseFloat(m, 64)
			}
		}
		chapterURL := s.absURL(a.AttrOr("href", ""))
		chapters = append(chapters, scanhub.ScrapedChapter{
			ID:     formatNumber(n),
			Number: n,
			Title:  text,
			URL:    chapterURL,
		})
	})
	return scanhub.NormalizeChapters(chapters), nil
}

func (s *WeebCentral) Search(ctx context.Context, query string) ([]scanhub.SearchResult, error) {
	q := url.Values{}
	q.Set("author", "")
	q.Set("text", query)
	q.Set("sort", "Best Match")
	q.Set("order", "Descending")
	q.Set("official", "Any")
	q.Set("anime", "Any")
	q.Set("adult", "Any")
	q.Set("display_mode", "Full Display")

	doc, err := s.document(ctx, s.baseURL+"/search/data?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var rs []scanhub.SearchResult
	doc.Find("article.bg-base-300").Each(func(_ int, article *goquery.Selection) {
		link := article.Find(`a[href*="/series/"]`).First()
		href := link.AttrOr("href", "")
		m := weebSeriesRe.FindStringSubmatch(href)
		if m == nil || m[2] == "" {
			return
		}
		title := scangoquery.FirstText(link, ".line-clamp-1")
		if title == "" {
			title = scangoquery.FirstText(article, ".text-ellipsis.truncate")
		}
		if title == "" {
			title = strings.ReplaceAll(m[2], "-", " ")
		}
		img := article.Find(`img[alt*="cover"]`).First()
		cover := scangoquery.FirstAttr(img, "src")
		if cover == "" {
			cover = scangoquery.SrcsetFirst(img.AttrOr("srcset", ""))
		}
		rs = append(rs, scanhub.SearchResult{
			ID:         m[1],
			Title:      title,
			URL:        s.absURL(href),
			CoverImage: s.absURL(cover),
		})
	})

	return Enrich(ctx, results(rs), func(ctx context.Context, r *scanhub.SearchResult) error {
		chapters, err := s.ChapterList(ctx, r.URL)
		if err != nil {
			return err
		}
		if len(chapters) > 0 {
			r.LatestChapter = chapters[len(chapters)-1].Number
		}
		return nil
	}), nil
}
