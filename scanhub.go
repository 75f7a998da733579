// Package scanhub aggregates manga metadata (search results, chapter lists,
// frontpage listings) from many third-party sites behind one uniform API.
// Each site is reached through a Source adapter; adapters share a fetch
// pipeline that retries, detects bot challenges and escalates to a
// challenge solver or a headless browser when an upstream blocks direct
// requests.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, rod/, goquery/, gin/).
package scanhub
