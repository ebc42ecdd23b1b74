// Package geo detects which Indian states and union territories a piece of
// text concerns, using alias tables of name variants and major cities. Tables
// are immutable once built and injected into consumers, so matching logic can
// be tested without process-wide state.
package geo

import (
	"regexp"
	"strings"
)

// Table is a compiled state alias table.
type Table struct {
	entries  []StateEntry
	patterns []*regexp.Regexp
	lookup   map[string]string
}

// DefaultTable builds a table from the built-in state data.
func DefaultTable() *Table {
	return newTable(defaultStates)
}

func newTable(entries []StateEntry) *Table {
	t := &Table{
		entries:  entries,
		patterns: make([]*regexp.Regexp, len(entries)),
		lookup:   make(map[string]string),
	}
	for i, e := range entries {
		variants := make([]string, 0, 1+len(e.Aliases)+len(e.Cities))
		variants = append(variants, e.Name)
		variants = append(variants, e.Aliases...)
		variants = append(variants, e.Cities...)

		quoted := make([]string, 0, len(variants))
		for _, v := range variants {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			quoted = append(quoted, regexp.QuoteMeta(v))
			t.lookup[fold(v)] = e.Name
		}
		t.patterns[i] = regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
	}
	return t
}

// States returns canonical state names in table order.
func (t *Table) States() []string {
	names := make([]string, len(t.entries))
	for i, e := range t.entries {
		names[i] = e.Name
	}
	return names
}

// Entries returns the underlying table data.
func (t *Table) Entries() []StateEntry {
	return t.entries
}

// Canonical resolves a state name, alias, or city to its canonical state
// name. The second return is false when the input is not recognized.
func (t *Table) Canonical(name string) (string, bool) {
	c, ok := t.lookup[fold(name)]
	return c, ok
}

// IsState reports whether name resolves to a known state.
func (t *Table) IsState(name string) bool {
	_, ok := t.Canonical(name)
	return ok
}

// DetectStates returns every state whose name, alias, or city appears as a
// whole word in text, in table order. Order is deterministic so downstream
// fan-out output is stable.
func (t *Table) DetectStates(text string) []string {
	if text == "" {
		return nil
	}
	var found []string
	for i, e := range t.entries {
		if t.patterns[i].MatchString(text) {
			found = append(found, e.Name)
		}
	}
	return found
}

func fold(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
