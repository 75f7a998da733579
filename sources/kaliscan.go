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
	kaliMangaRe   = regexp.MustCompile(`/manga/(\d+)-([^/?#]+)`)
	kaliChapterRe = regexp.MustCompile(`(?i)(?:chapter|ch)[/-](\d+(?:\.\d+)?)`)
	kaliItemIDRe  = regexp.MustCompile(`c-(.+)`)
	kaliNumberRe  = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
)

// Ensure KaliScan implements scanhub.Source.
var _ scanhub.Source = (*KaliScan)(nil)

// KaliScan scrapes kaliscan.com. Chapters come from a backend fragment
// endpoint rather than the title page.
type KaliScan struct {
	Base
}

// NewKaliScan creates the KaliScan adapter.
func NewKaliScan(pages scanhub.Fetcher, opts ...Option) *KaliScan {
	return &KaliScan{
		Base: newBase("KaliScan", "https://kaliscan.com", scanhub.SourceTypeAggregator, pages,
			[]string{"kaliscan.com"}, opts),
	}
}

func (s *KaliScan) ExtractMangaInfo(ctx context.Context, rawURL string) (*scanhub.MangaInfo, error) {
	return s.pageInfo(ctx, rawURL, submatch(kaliMangaRe, rawURL))
}

// chapterItems fetches the chapter list fragment of the title at rawURL.
func (s *KaliScan) chapterItems(ctx context.Context, rawURL string) (*goquery.Selection, error) {
	m := kaliMangaRe.FindStringSubmatch(rawURL)
	if m == nil {
		return nil, scanhub.Errorf(scanhub.EINVALID, "KaliScan: invalid manga URL %s", rawURL)
	}
	q := url.Values{}
	q.Set("manga_id", m[1])
	q.Set("manga_name", m[2])
	doc, err := s.document(ctx, s.baseURL+"/service/backend/chaplist/?"+q.Encode())
	if err != nil {
		return nil, err
	}
	return doc.Find(".chapter-list li"), nil
}

func (s *KaliScan) ChapterList(ctx context.Context, rawURL string) ([]scanhub.ScrapedChapter, error) {
	items, err := s.chapterItems(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	var chapters []scanhub.ScrapedChapter
	items.Each(func(_ int, li *goquery.Selection) {
		href, ok := li.Find("a").First().Attr("href")
		if !ok || href == "" {
			return
		}
		n := scanhub.UnknownChapter
		if m := submatch(kaliChapterRe, href); m != "" {
			n, _ = strconv.ParseFloat(m, 64)
		}
		id := strings.TrimSpace(submatch(kaliItemIDRe, li.AttrOr("id", "")))
		if id == "" {
			id = chapterID(href)
		}
		title := strings.TrimSpace(li.Find(".chapter-title").Text())
		if title == "" {
			title = "Chapter " + formatNumber(n)
		}
		chapters = append(chapters, scanhub.ScrapedChapter{
			ID:          id,
			Number:      n,
			Title:       title,
			URL:         s.absURL(href),
			LastUpdated: strings.TrimSpace(li.Find(".chapter-update").First().Text()),
		})
	})
	return scanhub.NormalizeChapters(chapters), nil
}

func (s *KaliScan) Search(ctx context.Context, query string) ([]scanhub.SearchResult, error) {
	doc, err := s.document(ctx, s.baseURL+"/search?q="+url.QueryEscape(query))
	if err != nil {
		return nil, err
	}

	var rs []scanhub.SearchResult
	doc.Find(".book-item").Each(func(_ int, item *goquery.Selection) {
		link := item.Find(`a[href*="/manga/"]`).First()
		href := link.AttrOr("href", "")
		title := scangoquery.FirstText(item, ".title h3", "h3")
		if title == "" {
			title = strings.TrimSpace(link.AttrOr("title", ""))
		}
		if href == "" || title == "" {
			return
		}
		r := scanhub.SearchResult{
			ID:         submatch(kaliMangaRe, href),
			Title:      title,
			URL:        s.absURL(href),
			CoverImage: s.absURL(scangoquery.FirstAttr(item.Find(".thumb img").First(), "data-src", "src")),
		}
		if n, err := strconv.ParseFloat(submatch(kaliNumberRe, item.Find(".latest-chapter").Text()), 64); err == nil {
			r.LatestChapter = n
		}
		if rating, err := strconv.ParseFloat(submatch(kaliNumberRe, item.Find(".rating .score").Text()), 64); err == nil {
			r.Rating = &rating
		}
		rs = append(rs, r)
	})

	return Enrich(ctx, results(rs), func(ctx context.Context, r *scanhub.SearchResult) error {
		items, err := s.chapterItems(ctx, r.URL)
		if err != nil {
			return err
		}
		if updated := strings.TrimSpace(items.First().Find(".chapter-update").Text()); updated != "" {
			r.LastUpdated = updated
		}
		return nil
	}), nil
}
