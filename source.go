package scanhub

import (
	"context"
	"strings"
)

// SourceType classifies who publishes a source's content.
type SourceType string

// Source types.
const (
	SourceTypeScanlator  SourceType = "scanlator"
	SourceTypeAggregator SourceType = "aggregator"
)

// Source is a site-specific adapter that knows how to search one upstream,
// list a title's chapters and resolve a title URL.
//
// Implementations hold configuration fixed at construction and no request
// data, so a single instance is safe for concurrent use.
type Source interface {
	// Name returns the globally unique, human-readable source name.
	Name() string

	// BaseURL returns the upstream's root URL.
	BaseURL() string

	Type() SourceType

	// Description defaults to "{name} - {baseURL}".
	Description() string

	// ClientOnly reports whether the upstream blocks the server request
	// path and must be reached directly by the client or through the
	// allow-listed HTML proxy.
	ClientOnly() bool

	// CanHandle reports whether url belongs to this source's host.
	CanHandle(url string) bool

	// ExtractMangaInfo resolves a title URL to its title and id.
	// Returns ENOTFOUND when the page or slug cannot be resolved.
	ExtractMangaInfo(ctx context.Context, url string) (*MangaInfo, error)

	// ChapterList returns the chapters of the title at url sorted
	// ascending by number, unique by number, without locked chapters.
	ChapterList(ctx context.Context, url string) ([]ScrapedChapter, error)

	// Search returns at most MaxSearchResults matches for query.
	// A successful search with no matches returns an empty, non-nil slice.
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

// SourceInfo is the static, request-independent metadata of a source.
type SourceInfo struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	BaseURL     string     `json:"baseUrl"`
	Description string     `json:"description,omitempty"`
	ClientOnly  bool       `json:"clientOnly,omitempty"`
	Type        SourceType `json:"type"`
}

// SourceID derives the stable identifier of a source from its name:
// lower-cased, with whitespace runs replaced by a hyphen.
func SourceID(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// NewSourceInfo projects a source onto its static metadata.
func NewSourceInfo(src Source) SourceInfo {
	return SourceInfo{
		ID:          SourceID(src.Name()),
		Name:        src.Name(),
		BaseURL:     src.BaseURL(),
		Description: src.Description(),
		ClientOnly:  src.ClientOnly(),
		Type:        src.Type(),
	}
}

// SourceRegistry holds the fixed, ordered collection of sources.
type SourceRegistry interface {
	// Source returns the first source whose CanHandle accepts url, or nil.
	Source(url string) Source

	// SourceByName returns the source whose name equals name ignoring
	// case, or nil.
	SourceByName(name string) Source

	// Sources returns every source in registration order.
	Sources() []Source

	// ClientOnlySources returns the sources that report ClientOnly.
	ClientOnlySources() []Source

	// SourceInfos returns the metadata of every source in registration order.
	SourceInfos() []SourceInfo

	// Names returns the lower-cased names of every source.
	Names() []string
}
