package strategy

import (
	"github.com/fkuefler/blackjack-lab/src/logging"
	"github.com/fkuefler/blackjack-lab/src/types"
)

// Empty is the numeric value of a cell with no mapped action.
const Empty = -1

// Grid is the dense player-hand × dealer-upcard pivot of a strategy table.
// Numeric and Text share dimensions: len(Rows) × len(Cols).
type Grid struct {
	Rows    []string
	Cols    []string
	Numeric [][]int
	Text    [][]types.Action
}

// NewGrid allocates an empty grid over the given canonical orders.
func NewGrid(rows, cols []string) *Grid {
	g := &Grid{
		Rows:    append([]string(nil), rows...),
		Cols:    append([]string(nil), cols...),
		Numeric: make([][]int, len(rows)),
		Text:    make([][]types.Action, len(rows)),
	}
	for i := range rows {
		g.Numeric[i] = make([]int, len(cols))
		for j := range g.Numeric[i] {
			g.Numeric[i][j] = Empty
		}
		g.Text[i] = make([]types.Action, len(cols))
	}
	return g
}

func indexOf(list []string) map[string]int {
	m := make(map[string]int, len(list))
	for i, v := range list {
		m[v] = i
	}
	return m
}

// Pivot cross-tabulates records onto the canonical chart orders.
// Records outside the orders are dropped; for duplicate cells the last record wins.
func Pivot(records []types.Record, m Mapping) *Grid {
	return PivotOnto(records, m, types.PlayerHands, types.DealerUpcards)
}

// PivotOnto is Pivot with explicit row and column orders.
func PivotOnto(records []types.Record, m Mapping, rows, cols []string) *Grid {
	g := NewGrid(rows, cols)
	rowIdx, colIdx := indexOf(rows), indexOf(cols)
	seen := make(map[[2]int]int) // cell -> source line of the record that set it
	for _, r := range records {
		i, okRow := rowIdx[r.PlayerHand]
		j, okCol := colIdx[r.DealerUpcard]
		if !okRow || !okCol {
			logging.Debugf("line %d: cell (%q, %q) is outside the chart, skipped", r.Line, r.PlayerHand, r.DealerUpcard)
			continue
		}
		if prev, dup := seen[[2]int{i, j}]; dup {
			logging.Debugf("line %d: cell (%q, %q) overrides line %d", r.Line, r.PlayerHand, r.DealerUpcard, prev)
		}
		seen[[2]int{i, j}] = r.Line
		g.Text[i][j] = r.Action
		if v, ok := m.Index(r.Action); ok {
			g.Numeric[i][j] = v
		} else {
			g.Numeric[i][j] = Empty
		}
	}
	return g
}

// At returns the numeric value and action label of the cell for (hand, upcard).
func (g *Grid) At(hand, upcard string) (int, types.Action, bool) {
	for i, r := range g.Rows {
		if r != hand {
			continue
		}
		for j, c := range g.Cols {
			if c == upcard {
				return g.Numeric[i][j], g.Text[i][j], true
			}
		}
	}
	return Empty, "", false
}

// Filled counts cells holding a mapped action.
func (g *Grid) Filled() int {
	n := 0
	for _, row := range g.Numeric {
		for _, v := range row {
			if v != Empty {
				n++
			}
		}
	}
	return n
}
