// Package strategy turns a strategy CSV written by the generator into the data the
// chart is drawn from: the rules text of its comment header, the table records,
// the action mapping and the dense player-hand × dealer-upcard grid.
package strategy

import (
	"time"

	"github.com/fkuefler/blackjack-lab/src/errors"
	"github.com/fkuefler/blackjack-lab/src/logging"
	"github.com/fkuefler/blackjack-lab/src/types"
)

// Document is everything loaded from one strategy file.
type Document struct {
	Path    string
	Rules   string
	Records []types.Record
	Mapping Mapping
	Grid    *Grid
}

// Load runs header extraction, table load, mapping and pivot for path.
func Load(path string, skipRows int) (*Document, error) {
	defer logging.TimeTrack(time.Now(), "load "+path)

	rules, err := ReadRules(path)
	if err != nil {
		return nil, err
	}
	records, err := LoadTable(path, skipRows)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	m := BuildMapping(records)
	g := Pivot(records, m)
	logging.Debugf("%s: %d records, %d actions, %d/%d cells filled", path, len(records), m.Len(), g.Filled(), len(g.Rows)*len(g.Cols))
	return &Document{Path: path, Rules: rules, Records: records, Mapping: m, Grid: g}, nil
}

// ActionStats summarises the records of one action.
type ActionStats struct {
	Action types.Action
	Count  int
	// MeanEV is the mean expected value over records that carry one.
	MeanEV float64
	WithEV int
}

// Stats returns per-action counts: canonical actions present first, in canonical
// order, then unrecognized labels in order of first appearance.
func (d *Document) Stats() []ActionStats {
	byAction := make(map[types.Action]*ActionStats)
	var extra []types.Action
	for _, r := range d.Records {
		s, ok := byAction[r.Action]
		if !ok {
			s = &ActionStats{Action: r.Action}
			byAction[r.Action] = s
			if !types.IsCanonical(r.Action) {
				extra = append(extra, r.Action)
			}
		}
		s.Count++
		if r.HasExpectedValue {
			s.MeanEV += r.ExpectedValue
			s.WithEV++
		}
	}
	var out []ActionStats
	order := append(append([]types.Action(nil), types.CanonicalActions...), extra...)
	for _, a := range order {
		s, ok := byAction[a]
		if !ok {
			continue
		}
		if s.WithEV > 0 {
			s.MeanEV /= float64(s.WithEV)
		}
		out = append(out, *s)
	}
	return out
}
