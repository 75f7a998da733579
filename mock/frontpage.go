package mock

import (
	"context"

	"github.com/fwojciec/scanhub"
)

var _ scanhub.Frontpage = (*Frontpage)(nil)

// Frontpage is a mock implementation of scanhub.Frontpage.
type Frontpage struct {
	SourceIDFn     func() string
	SourceNameFn   func() string
	SectionsFn     func() []scanhub.SectionConfig
	FetchSectionFn func(ctx context.Context, id string, opts scanhub.FetchOptions) (*scanhub.FrontpageSection, error)
}

func (f *Frontpage) SourceID() string {
	return f.SourceIDFn()
}

func (f *Frontpage) SourceName() string {
	return f.SourceNameFn()
}

func (f *Frontpage) Sections() []scanhub.SectionConfig {
	return f.SectionsFn()
}

func (f *Frontpage) FetchSection(ctx context.Context, id string, opts scanhub.FetchOptions) (*scanhub.FrontpageSection, error) {
	return f.FetchSectionFn(ctx, id, opts)
}
