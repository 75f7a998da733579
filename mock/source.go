package mock

import (
	"context"

	"github.com/fwojciec/scanhub"
)

var _ scanhub.Source = (*Source)(nil)

// Source is a mock implementation of scanhub.Source.
type Source struct {
	NameFn             func() string
	BaseURLFn          func() string
	TypeFn             func() scanhub.SourceType
	DescriptionFn      func() string
	ClientOnlyFn       func() bool
	CanHandleFn        func(url string) bool
	ExtractMangaInfoFn func(ctx context.Context, url string) (*scanhub.MangaInfo, error)
	ChapterListFn      func(ctx context.Context, url string) ([]scanhub.ScrapedChapter, error)
	SearchFn           func(ctx context.Context, query string) ([]scanhub.SearchResult, error)
}

func (s *Source) Name() string {
	return s.NameFn()
}

func (s *Source) BaseURL() string {
	return s.BaseURLFn()
}

func (s *Source) Type() scanhub.SourceType {
	return s.TypeFn()
}

func (s *Source) Description() string {
	return s.DescriptionFn()
}

func (s *Source) ClientOnly() bool {
	return s.ClientOnlyFn()
}

func (s *Source) CanHandle(url string) bool {
	return s.CanHandleFn(url)
}

func (s *Source) ExtractMangaInfo(ctx context.Context, url string) (*scanhub.MangaInfo, error) {
	return s.ExtractMangaInfoFn(ctx, url)
}

func (s *Source) ChapterList(ctx context.Context, url string) ([]scanhub.ScrapedChapter, error) {
	return s.ChapterListFn(ctx, url)
}

func (s *Source) Search(ctx context.Context, query string) ([]scanhub.SearchResult, error) {
	return s.SearchFn(ctx, query)
}

var _ scanhub.SourceRegistry = (*SourceRegistry)(nil)

// SourceRegistry is a mock implementation of scanhub.SourceRegistry.
type SourceRegistry struct {
	SourceFn            func(url string) scanhub.Source
	SourceByNameFn      func(name string) scanhub.Source
	SourcesFn           func() []scanhub.Source
	ClientOnlySourcesFn func() []scanhub.Source
	SourceInfosFn       func() []scanhub.SourceInfo
	NamesFn             func() []string
}

func (r *SourceRegistry) Source(url string) scanhub.Source {
	return r.SourceFn(url)
}

func (r *SourceRegistry) SourceByName(name string) scanhub.Source {
	return r.SourceByNameFn(name)
}

func (r *SourceRegistry) Sources() []scanhub.Source {
	return r.SourcesFn()
}

func (r *SourceRegistry) ClientOnlySources() []scanhub.Source {
	return r.ClientOnlySourcesFn()
}

func (r *SourceRegistry) SourceInfos() []scanhub.SourceInfo {
	return r.SourceInfosFn()
}

func (r *SourceRegistry) Names() []string {
	return r.NamesFn()
}
