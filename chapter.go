package scanhub

import (
	"math"
	"regexp"
	"slices"
	"strconv"
)

// UnknownChapter marks a chapter number that could not be parsed.
// Chapters carrying it are discarded. Zero is a valid chapter number.
const UnknownChapter = -1.0

// ScanlationGroup identifies the group that released a chapter.
type ScanlationGroup struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// ScrapedChapter is one chapter of a title as listed by a source.
// Number is the sort key and supports decimal sub-chapters; ID is local to
// the source that produced it.
type ScrapedChapter struct {
	ID          string           `json:"id"`
	Number      float64          `json:"number"`
	Title       string           `json:"title,omitempty"`
	URL         string           `json:"url"`
	LastUpdated string           `json:"lastUpdated,omitempty"`
	Group       *ScanlationGroup `json:"group,omitempty"`
}

// NormalizeChapters drops chapters with an unknown number, keeps the first
// chapter seen for each number and sorts the rest ascending by number.
func NormalizeChapters(chapters []ScrapedChapter) []ScrapedChapter {
	seen := make(map[float64]bool, len(chapters))
	out := make([]ScrapedChapter, 0, len(chapters))
	for _, ch := range chapters {
		if ch.Number < 0 || math.IsNaN(ch.Number) || seen[ch.Number] {
			continue
		}
		seen[ch.Number] = true
		out = append(out, ch)
	}
	slices.SortStableFunc(out, func(a, b ScrapedChapter) int {
		switch {
		case a.Number < b.Number:
			return -1
		case a.Number > b.Number:
			return 1
		}
		return 0
	})
	return out
}

var (
	// "Chapter 12+13", "Ch. 4 - 5": merged releases are rejected, not guessed.
	concatenatedChapterRe = regexp.MustCompile(`(?i)\b(?:chapter|ch\.?|episode)\s*\d+(?:\.\d+)?\s*[+\-]\s*\d+`)
	textChapterRe         = regexp.MustCompile(`(?i)\b(?:chapter|ch\.?|episode|ep\.?)\s*(\d+(?:\.\d+)?)`)
	urlChapterRe          = regexp.MustCompile(`(?i)(?:^|[^a-z])(?:chapter|episode|ch|ep)[/_\-]?(\d+)(?:[.\-](\d+))?(?:$|[^\d])`)
)

// ChapterNumberFromText extracts a chapter number from link or heading text
// such as "Chapter 12.5". Concatenated ranges return UnknownChapter.
func ChapterNumberFromText(text string) float64 {
	if IsConcatenatedChapter(text) {
		return UnknownChapter
	}
	m := textChapterRe.FindStringSubmatch(text)
	if m == nil {
		return UnknownChapter
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return UnknownChapter
	}
	return n
}

// IsConcatenatedChapter reports whether text names a merged release such as
// "Chapter 12+13". Such text never yields a chapter number.
func IsConcatenatedChapter(text string) bool {
	return concatenatedChapterRe.MatchString(text)
}

// ChapterNumberFromURL extracts a chapter number from a chapter URL.
// A dash-separated fraction is decimal-encoded: "chapter-12-5" is 12.5.
func ChapterNumberFromURL(rawURL string) float64 {
	m := urlChapterRe.FindStringSubmatch(rawURL)
	if m == nil {
		return UnknownChapter
	}
	return joinDecimal(m[1], m[2])
}

// ParseChapterNumber applies the chapter number precedence: an explicit text
// match wins over the URL pattern. A rejected concatenated range in the text
// is final and does not fall through to the URL.
func ParseChapterNumber(text, rawURL string) float64 {
	if text != "" {
		if IsConcatenatedChapter(text) {
			return UnknownChapter
		}
		if n := ChapterNumberFromText(text); n >= 0 {
			return n
		}
	}
	if rawURL == "" {
		return UnknownChapter
	}
	return ChapterNumberFromURL(rawURL)
}

// joinDecimal combines an integer part and an optional fraction digit string.
func joinDecimal(whole, frac string) float64 {
	n, err := strconv.Atoi(whole)
	if err != nil {
		return UnknownChapter
	}
	if frac == "" {
		return float64(n)
	}
	f, err := strconv.Atoi(frac)
	if err != nil {
		return float64(n)
	}
	return float64(n) + float64(f)/math.Pow10(len(frac))
}
