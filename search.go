package scanhub

// MaxSearchResults caps the number of results a single source returns for
// one query.
const MaxSearchResults = 5

// SearchResult is one matched title from one source.
type SearchResult struct {
	ID                   string   `json:"id"`
	Title                string   `json:"title"`
	URL                  string   `json:"url"`
	CoverImage           string   `json:"coverImage,omitempty"`
	LatestChapter        float64  `json:"latestChapter"`
	LastUpdated          string   `json:"lastUpdated"`
	LastUpdatedTimestamp *int64   `json:"lastUpdatedTimestamp,omitempty"`
	Rating               *float64 `json:"rating,omitempty"`
	Followers            string   `json:"followers,omitempty"`
}

// MangaInfo is the basic identity of a title resolved from its URL.
type MangaInfo struct {
	Title string `json:"title"`
	ID    string `json:"id"`
}

// CapResults truncates results to MaxSearchResults.
func CapResults(results []SearchResult) []SearchResult {
	if len(results) > MaxSearchResults {
		return results[:MaxSearchResults]
	}
	return results
}
