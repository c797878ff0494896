package strategy

import (
	"github.com/fkuefler/blackjack-lab/src/logging"
	"github.com/fkuefler/blackjack-lab/src/types"
)

// MappingEntry binds an action present in the data to its grid value and styling.
type MappingEntry struct {
	Action       types.Action
	Index        int
	Abbreviation string
	// Color is an RRGGBB hex string.
	Color string
}

// Mapping assigns consecutive indices to the actions present in a table, in
// canonical priority order. Absent actions take no index and no color.
type Mapping struct {
	entries []MappingEntry
	byName  map[types.Action]int
}

// BuildMapping walks types.CanonicalActions once and keeps those present in records.
// Labels outside the canonical set are logged once each and left unmapped.
func BuildMapping(records []types.Record) Mapping {
	present := make(map[types.Action]bool)
	for _, r := range records {
		present[r.Action] = true
	}
	m := Mapping{byName: make(map[types.Action]int)}
	for _, a := range types.CanonicalActions {
		if !present[a] {
			continue
		}
		abbr, _ := types.Abbreviation(a)
		hex, _ := types.ColorHex(a)
		idx := len(m.entries)
		m.entries = append(m.entries, MappingEntry{Action: a, Index: idx, Abbreviation: abbr, Color: hex})
		m.byName[a] = idx
	}

	warned := make(map[types.Action]bool)
	for _, r := range records {
		if r.Action == "" || types.IsCanonical(r.Action) || warned[r.Action] {
			continue
		}
		warned[r.Action] = true
		logging.Warnf("unrecognized action %q (first on line %d) will render as a blank cell", r.Action, r.Line)
	}
	return m
}

// Len is the number of mapped actions.
func (m Mapping) Len() int { return len(m.entries) }

// Entries returns the mapping in index order.
func (m Mapping) Entries() []MappingEntry {
	out := make([]MappingEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Index returns the grid value for a.
func (m Mapping) Index(a types.Action) (int, bool) {
	i, ok := m.byName[a]
	return i, ok
}

// Abbreviation returns the cell label for a, or "" when a is not mapped.
func (m Mapping) Abbreviation(a types.Action) string {
	if i, ok := m.byName[a]; ok {
		return m.entries[i].Abbreviation
	}
	return ""
}

// Color returns the fill color of a as hex without "#", or "" when a is not mapped.
func (m Mapping) Color(a types.Action) string {
	if i, ok := m.byName[a]; ok {
		return m.entries[i].Color
	}
	return ""
}

// Actions lists the mapped actions in index order; this is also the legend order.
func (m Mapping) Actions() []types.Action {
	out := make([]types.Action, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Action
	}
	return out
}

// Colors lists the colors in index order, so Colors()[v] is the fill of grid value v.
func (m Mapping) Colors() []string {
	out := make([]string, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Color
	}
	return out
}
