package frontpage

import (
	"strings"

	"github.com/fwojciec/scanhub"
)

// Ensure Registry implements scanhub.FrontpageRegistry.
var _ scanhub.FrontpageRegistry = (*Registry)(nil)

// Registry is an immutable collection of frontpages keyed by source id.
type Registry struct {
	frontpages []scanhub.Frontpage
}

// NewRegistry creates a Registry of fps in the given order.
func NewRegistry(fps ...scanhub.Frontpage) *Registry {
	return &Registry{frontpages: append([]scanhub.Frontpage(nil), fps...)}
}

func (r *Registry) Frontpage(id string) scanhub.Frontpage {
	id = strings.TrimSpace(id)
	for _, fp := range r.frontpages {
		if strings.EqualFold(fp.SourceID(), id) {
			return fp
		}
	}
	return nil
}

func (r *Registry) Frontpages() []scanhub.Frontpage {
	return append([]scanhub.Frontpage(nil), r.frontpages...)
}

func (r *Registry) Infos() []scanhub.FrontpageInfo {
	infos := make([]scanhub.FrontpageInfo, 0, len(r.frontpages))
	for _, fp := range r.frontpages {
		infos = append(infos, scanhub.NewFrontpageInfo(fp))
	}
	return infos
}

func (r *Registry) SourceIDs() []string {
	ids := make([]string, 0, len(r.frontpages))
	for _, fp := range r.frontpages {
		ids = append(ids, fp.SourceID())
	}
	return ids
}
