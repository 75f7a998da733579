package scanhub

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Fields is a loosely-typed JSON object as returned by undocumented
// upstream APIs. Accessors take several candidate keys and return the first
// one present; a key may be a dotted path into nested objects
// ("poster.large"). Null, empty strings, false and zero count as absent so
// the next candidate is tried.
type Fields map[string]any

// Raw returns the first present value among keys.
func (f Fields) Raw(keys ...string) (any, bool) {
	for _, key := range keys {
		v, ok := f.lookup(key)
		if ok && !isBlank(v) {
			return v, true
		}
	}
	return nil, false
}

// String returns the first present value among keys as a string.
// Numbers are formatted without a trailing fraction.
func (f Fields) String(keys ...string) string {
	v, ok := f.Raw(keys...)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

// Float returns the first present value among keys as a number.
// Numeric strings are parsed.
func (f Fields) Float(keys ...string) (float64, bool) {
	for _, key := range keys {
		v, ok := f.lookup(key)
		if !ok || isBlank(v) {
			continue
		}
		switch t := v.(type) {
		case float64:
			return t, true
		case json.Number:
			if n, err := t.Float64(); err == nil {
				return n, true
			}
		case string:
			if n, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

// Int64 is Float truncated to an integer.
func (f Fields) Int64(keys ...string) (int64, bool) {
	n, ok := f.Float(keys...)
	return int64(n), ok
}

// Object returns the nested object at key.
func (f Fields) Object(key string) Fields {
	v, ok := f.lookup(key)
	if !ok {
		return nil
	}
	m, _ := v.(map[string]any)
	return m
}

// Items returns the objects of the array at key, skipping non-objects.
func (f Fields) Items(key string) []Fields {
	v, ok := f.lookup(key)
	if !ok {
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]Fields, 0, len(arr))
	for _, item := range arr {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func (f Fields) lookup(path string) (any, bool) {
	var cur any = map[string]any(f)
	for _, part := range strings.Split(path, ".") {
		var m map[string]any
		switch t := cur.(type) {
		case map[string]any:
			m = t
		case Fields:
			m = t
		default:
			return nil, false
		}
		var ok bool
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, cur != nil
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case float64:
		return t == 0
	case bool:
		return !t
	}
	return false
}

// UpdatedDateLayout formats LastUpdated when only an epoch is known.
const UpdatedDateLayout = "2006-01-02"

// MapFrontpageManga normalizes a loosely-typed upstream item into a
// FrontpageManga using the shared fallback chains. Relative URLs are built
// from baseURL and the item's slug or id.
func MapFrontpageManga(f Fields, baseURL string) FrontpageManga {
	m := FrontpageManga{
		SearchResult: SearchResult{
			ID:          f.String("id", "hash_id"),
			Title:       f.String("title", "name"),
			CoverImage:  f.String("coverImage", "poster.large", "poster.medium", "poster.small"),
			LastUpdated: f.String("lastUpdated"),
			Followers:   f.String("followers", "follows_total"),
		},
		Type:     f.String("type"),
		Status:   f.String("status"),
		Synopsis: f.String("synopsis"),
	}
	if n, ok := f.Float("latestChapter", "latest_chapter"); ok {
		m.LatestChapter = n
	}
	if r, ok := f.Float("rating", "rated_avg"); ok {
		m.Rating = &r
	}
	if ts, ok := f.Int64("lastUpdatedTimestamp"); ok {
		m.LastUpdatedTimestamp = &ts
	}
	if secs, ok := f.Int64("chapter_updated_at"); ok {
		ms := secs * 1000
		m.LastUpdatedTimestamp = &ms
		m.LastUpdated = time.UnixMilli(ms).UTC().Format(UpdatedDateLayout)
	}
	if slug := f.String("slug", "id", "hash_id"); slug != "" {
		m.URL = strings.TrimRight(baseURL, "/") + "/" + slug
	}
	return m
}
