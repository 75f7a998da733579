package scanhub

import (
	"context"
	"slices"
)

// Frontpage fetch defaults applied to omitted options.
const (
	DefaultFrontpagePage  = 1
	DefaultFrontpageLimit = 30
	DefaultFrontpageDays  = 7
)

// SectionType identifies the kind of curated listing a section holds.
type SectionType string

// Section types.
const (
	SectionTrending      SectionType = "trending"
	SectionMostFollowed  SectionType = "most_followed"
	SectionLatestHot     SectionType = "latest_hot"
	SectionLatestNew     SectionType = "latest_new"
	SectionRecentlyAdded SectionType = "recently_added"
	SectionCompleted     SectionType = "completed"
)

// FrontpageManga is one entry of a curated listing.
type FrontpageManga struct {
	SearchResult
	Type     string `json:"type,omitempty"`
	Status   string `json:"status,omitempty"`
	Synopsis string `json:"synopsis,omitempty"`
}

// SectionConfig declares a section a frontpage offers.
type SectionConfig struct {
	ID                   string      `json:"id"`
	Title                string      `json:"title"`
	Type                 SectionType `json:"type"`
	SupportsPagination   bool        `json:"supportsPagination"`
	SupportsTimeFilter   bool        `json:"supportsTimeFilter"`
	AvailableTimeFilters []int       `json:"availableTimeFilters,omitempty"`
}

// FrontpageSection is a fetched section with its items.
type FrontpageSection struct {
	ID                   string           `json:"id"`
	Title                string           `json:"title"`
	Type                 SectionType      `json:"type"`
	Items                []FrontpageManga `json:"items"`
	SupportsPagination   bool             `json:"supportsPagination"`
	SupportsTimeFilter   bool             `json:"supportsTimeFilter"`
	AvailableTimeFilters []int            `json:"availableTimeFilters,omitempty"`
}

// NewFrontpageSection builds a section from its config and items.
func NewFrontpageSection(cfg SectionConfig, items []FrontpageManga) *FrontpageSection {
	if items == nil {
		items = []FrontpageManga{}
	}
	return &FrontpageSection{
		ID:                   cfg.ID,
		Title:                cfg.Title,
		Type:                 cfg.Type,
		Items:                items,
		SupportsPagination:   cfg.SupportsPagination,
		SupportsTimeFilter:   cfg.SupportsTimeFilter,
		AvailableTimeFilters: slices.Clone(cfg.AvailableTimeFilters),
	}
}

// FetchOptions controls which slice of a section is fetched.
// Zero values mean "use the default".
type FetchOptions struct {
	Page  int `json:"page,omitempty"`
	Limit int `json:"limit,omitempty"`
	Days  int `json:"days,omitempty"`
}

// WithDefaults returns a copy of o with omitted fields set to their defaults.
func (o FetchOptions) WithDefaults() FetchOptions {
	if o.Page <= 0 {
		o.Page = DefaultFrontpagePage
	}
	if o.Limit <= 0 {
		o.Limit = DefaultFrontpageLimit
	}
	if o.Days <= 0 {
		o.Days = DefaultFrontpageDays
	}
	return o
}

// Frontpage is a source exposing curated listing sections.
type Frontpage interface {
	SourceID() string
	SourceName() string

	// Sections returns the sections this frontpage offers.
	Sections() []SectionConfig

	// FetchSection fetches one section. Returns EUNKNOWNSECTION when id is
	// not one of Sections.
	FetchSection(ctx context.Context, id string, opts FetchOptions) (*FrontpageSection, error)
}

// SectionInfo is the listing metadata of one section.
type SectionInfo struct {
	ID                   string      `json:"id"`
	Title                string      `json:"title"`
	Type                 SectionType `json:"type"`
	SupportsTimeFilter   bool        `json:"supportsTimeFilter"`
	AvailableTimeFilters []int       `json:"availableTimeFilters,omitempty"`
}

// FrontpageInfo is the listing metadata of one frontpage.
type FrontpageInfo struct {
	SourceID          string        `json:"sourceId"`
	SourceName        string        `json:"sourceName"`
	AvailableSections []SectionInfo `json:"availableSections"`
}

// NewFrontpageInfo projects a frontpage onto its listing metadata.
func NewFrontpageInfo(fp Frontpage) FrontpageInfo {
	sections := fp.Sections()
	infos := make([]SectionInfo, 0, len(sections))
	for _, s := range sections {
		infos = append(infos, SectionInfo{
			ID:                   s.ID,
			Title:                s.Title,
			Type:                 s.Type,
			SupportsTimeFilter:   s.SupportsTimeFilter,
			AvailableTimeFilters: s.AvailableTimeFilters,
		})
	}
	return FrontpageInfo{
		SourceID:          fp.SourceID(),
		SourceName:        fp.SourceName(),
		AvailableSections: infos,
	}
}

// FindSection returns the config with the given id from sections.
func FindSection(sections []SectionConfig, id string) (SectionConfig, bool) {
	for _, s := range sections {
		if s.ID == id {
			return s, true
		}
	}
	return SectionConfig{}, false
}

// FrontpageRegistry holds the fixed collection of frontpages.
type FrontpageRegistry interface {
	// Frontpage returns the frontpage whose source id equals id ignoring
	// case, or nil.
	Frontpage(id string) Frontpage

	Frontpages() []Frontpage
	Infos() []FrontpageInfo
	SourceIDs() []string
}
