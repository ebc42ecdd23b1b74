package model

import (
	"strings"

	"github.com/google/uuid"
)

// DiscoveredItem is one candidate article surfaced by a discovery provider.
// TaggedStates records which state queries produced it; the same URL found
// under several state queries is unioned into a single item.
type DiscoveredItem struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	URL          string   `json:"url"`
	PublishedAt  *string  `json:"published_at"`
	Source       string   `json:"source"`
	TaggedStates []string `json:"tagged_states"`
	Text         string   `json:"text,omitempty"`
}

// NewDiscoveredItem creates an item tagged with the state whose query found it.
func NewDiscoveredItem(title, url, source, state string) DiscoveredItem {
	item := DiscoveredItem{
		ID:     uuid.NewString(),
		Title:  strings.TrimSpace(title),
		URL:    strings.TrimSpace(url),
		Source: strings.TrimSpace(source),
	}
	if state != "" {
		item.TaggedStates = []string{state}
	}
	return item
}

// NewRecordForItem creates the record slot for an item: stable ID, the item's
// URL as immutable source URL, and the publisher name when known. All
// extracted fields start nil.
func NewRecordForItem(item DiscoveredItem) InvestmentRecord {
	rec := NewRecord(item.URL)
	if item.Source != "" {
		rec.SourceName = String(item.Source)
	}
	return rec
}

// AddTaggedState unions a state into the item's tagged set.
func (d *DiscoveredItem) AddTaggedState(state string) {
	if state == "" {
		return
	}
	for _, s := range d.TaggedStates {
		if s == state {
			return
		}
	}
	d.TaggedStates = append(d.TaggedStates, state)
}

// FullText returns title and body joined for attestation and keyword scans.
func (d DiscoveredItem) FullText() string {
	if d.Text == "" {
		return d.Title
	}
	return d.Title + "\n" + d.Text
}

// NormalizeURL reduces a URL to its identity form: scheme, leading "www.",
// query string, fragment, and trailing slash are stripped and the host is
// lowercased. Two raw URLs with the same normalized form are the same item.
func NormalizeURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = s[:i]
	}
	if i := strings.IndexByte(s, '?'); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "www.")
	s = strings.TrimSuffix(s, "/")
	if i := strings.IndexByte(s, '/'); i >= 0 {
		return strings.ToLower(s[:i]) + s[i:]
	}
	return strings.ToLower(s)
}
