package sources

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/fwojciec/scanhub"
)

// comixMaxPages bounds chapter pagination against a misreported last page.
const comixMaxPages = 100

var comixTitleRe = regexp.MustCompile(`/(?:comic|title)/([^/?#]+)`)

// Ensure Comix implements scanhub.Source.
var _ scanhub.Source = (*Comix)(nil)

// Comix reads the comix.to JSON API. The API sits behind a bot challenge,
// so every request goes through the bypass fetcher; chapter pages are
// paced per host.
type Comix struct {
	Base
	api     scanhub.JSONFetcher
	limiter scanhub.DomainLimiter
}

// NewComix creates the Comix adapter. api is the challenge-bypassing JSON
// fetcher and limiter paces paginated chapter requests.
func NewComix(api scanhub.JSONFetcher, limiter scanhub.DomainLimiter, opts ...Option) *Comix {
	return &Comix{
		Base: newBase("Comix", "https://comix.to", scanhub.SourceTypeAggregator, nil,
			[]string{"comix.to"}, opts),
		api:     api,
		limiter: limiter,
	}
}

func (s *Comix) apiURL(path string) string {
	return s.baseURL + "/api/v2" + path
}

// hashID extracts the title hash from /title/{hash}-{slug} or /comic/{hash}.
func (s *Comix) hashID(rawURL string) (string, error) {
	seg := submatch(comixTitleRe, rawURL)
	hash, _, _ := strings.Cut(seg, "-")
	if hash == "" {
		return "", scanhub.Errorf(scanhub.EINVALID, "Comix: invalid title URL %s", rawURL)
	}
	return hash, nil
}

type comixManga struct {
	Result struct {
		Title string `json:"title"`
		Slug  string `json:"slug"`
	} `json:"result"`
}

func (s *Comix) manga(ctx context.Context, hash string) (*comixManga, error) {
	var m comixManga
	if err := s.api.FetchJSON(ctx, s.apiURL("/manga/"+hash), &m); err != nil {
		if scanhub.StatusCode(err) == 404 {
			return nil, scanhub.Errorf(scanhub.ENOTFOUND, "Comix: title %s not found", hash)
		}
		return nil, err
	}
	return &m, nil
}

func (s *Comix) ExtractMangaInfo(ctx context.Context, rawURL string) (*scanhub.MangaInfo, error) {
	hash, err := s.hashID(rawURL)
	if err != nil {
		return nil, scanhub.Errorf(scanhub.ENOTFOUND, "%s", scanhub.ErrorMessage(err))
	}
	m, err := s.manga(ctx, hash)
	if err != nil {
		return nil, err
	}
	title := m.Result.Title
	if title == "" {
		title = hash
	}
	return &scanhub.MangaInfo{Title: title, ID: hash}, nil
}

type comixChapterPage struct {
	Result struct {
		Items []struct {
			ChapterID int64           `json:"chapter_id"`
			Number    float64         `json:"number"`
			Name      string          `json:"name"`
			UpdatedAt int64           `json:"updated_at"`
			Group     *comixGroupJSON `json:"scanlation_group"`
		} `json:"items"`
		Pagination struct {
			LastPage int `json:"last_page"`
		} `json:"pagination"`
	} `json:"result"`
}

func (s *Comix) ChapterList(ctx context.Context, rawURL string) ([]scanhub.ScrapedChapter, error) {
	hash, err := s.hashID(rawURL)
	if err != nil {
		return nil, err
	}
	m, err := s.manga(ctx, hash)
	if err != nil {
		return nil, err
	}
	titleURL := fmt.Sprintf("%s/title/%s-%s", s.baseURL, hash, m.Result.Slug)

	var chapters []scanhub.ScrapedChapter
	for page := 1; page <= comixMaxPages; page++ {
		if page > 1 && s.limiter != nil {
			if err := s.limiter.Wait(ctx, "comix.to"); err != nil {
				return nil, err
			}
		}
		var p comixChapterPage
		u := s.apiURL(fmt.Sprintf("/manga/%s/chapters?order[number]=desc&limit=100&page=%d", hash, page))
		if err := s.api.FetchJSON(ctx, u, &p); err != nil {
			return nil, err
		}
		for _, ch := range p.Result.Items {
			id := strconv.FormatInt(ch.ChapterID, 10)
			c := scanhub.ScrapedChapter{
				ID:     id,
				Number: ch.Number,
				Title:  ch.Name,
				URL:    fmt.Sprintf("%s/%s-chapter-%s", titleURL, id, formatNumber(ch.Number)),
			}
			if c.Title == "" {
				c.Title = "Chapter " + formatNumber(ch.Number)
			}
			if ch.UpdatedAt > 0 {
				c.LastUpdated = unixDate(ch.UpdatedAt)
			}
			c.Group = comixGroup(s.baseURL, ch.Group)
			chapters = append(chapters, c)
		}
		if len(p.Result.Items) == 0 || page >= p.Result.Pagination.LastPage {
			break
		}
	}
	return scanhub.NormalizeChapters(chapters), nil
}

type comixGroupJSON struct {
	ID   int64  `json:"scanlation_group_id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// comixGroup maps a chapter's scanlation group. Chapters without one are
// attributed to an "Unknown" group.
func comixGroup(baseURL string, g *comixGroupJSON) *scanhub.ScanlationGroup {
	group := &scanhub.ScanlationGroup{ID: "unknown", Name: "Unknown"}
	if g == nil {
		return group
	}
	if g.Name != "" {
		group.Name = g.Name
	}
	switch {
	case g.ID != 0:
		group.ID = strconv.FormatInt(g.ID, 10)
	case g.Slug != "":
		group.ID = g.Slug
	}
	if g.Slug != "" {
		group.URL = baseURL + "/groups/" + g.Slug
	}
	return group
}

func (s *Comix) Search(ctx context.Context, query string) ([]scanhub.SearchResult, error) {
	var resp struct {
		Result struct {
			Items []scanhub.Fields `json:"items"`
		} `json:"result"`
	}
	u := s.apiURL(fmt.Sprintf("/manga?order[relevance]=desc&keyword=%s&limit=%d", url.QueryEscape(query), scanhub.MaxSearchResults))
	if err := s.api.FetchJSON(ctx, u, &resp); err != nil {
		return nil, err
	}

	rs := make([]scanhub.SearchResult, 0, len(resp.Result.Items))
	for _, item := range resp.Result.Items {
		hash := item.String("hash_id")
		if hash == "" {
			continue
		}
		r := scanhub.MapFrontpageManga(item, s.baseURL).SearchResult
		r.ID = hash
		r.URL = fmt.Sprintf("%s/title/%s-%s", s.baseURL, hash, item.String("slug"))
		rs = append(rs, r)
	}
	return results(rs), nil
}
