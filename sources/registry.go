package sources

import (
	"strings"

	"github.com/fwojciec/scanhub"
)

// Ensure Registry implements scanhub.SourceRegistry.
var _ scanhub.SourceRegistry = (*Registry)(nil)

// Registry is an immutable, ordered collection of sources. Lookup by URL
// returns the first source in registration order that accepts it.
type Registry struct {
	sources []scanhub.Source
}

// NewRegistry creates a Registry of srcs in the given order.
func NewRegistry(srcs ...scanhub.Source) *Registry {
	return &Registry{sources: append([]scanhub.Source(nil), srcs...)}
}

func (r *Registry) Source(url string) scanhub.Source {
	for _, src := range r.sources {
		if src.CanHandle(url) {
			return src
		}
	}
	return nil
}

func (r *Registry) SourceByName(name string) scanhub.Source {
	name = strings.TrimSpace(name)
	for _, src := range r.sources {
		if strings.EqualFold(src.Name(), name) || scanhub.SourceID(src.Name()) == strings.ToLower(name) {
			return src
		}
	}
	return nil
}

func (r *Registry) Sources() []scanhub.Source {
	return append([]scanhub.Source(nil), r.sources...)
}

func (r *Registry) ClientOnlySources() []scanhub.Source {
	var out []scanhub.Source
	for _, src := range r.sources {
		if src.ClientOnly() {
			out = append(out, src)
		}
	}
	return out
}

func (r *Registry) SourceInfos() []scanhub.SourceInfo {
	infos := make([]scanhub.SourceInfo, 0, len(r.sources))
	for _, src := range r.sources {
		infos = append(infos, scanhub.NewSourceInfo(src))
	}
	return infos
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.sources))
	for _, src := range r.sources {
		names = append(names, strings.ToLower(src.Name()))
	}
	return names
}
