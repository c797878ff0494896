// Package types holds the fixed blackjack strategy vocabulary shared by the loader,
// the renderers and the CLIs: the five player actions with their abbreviations and
// colors, and the canonical player-hand and dealer-upcard orders of the chart.
package types

// Action is an optimal-action label as written by the strategy generator.
type Action string

const (
	Hit       Action = "Hit"
	Stand     Action = "Stand"
	Double    Action = "Double"
	Split     Action = "Split"
	Surrender Action = "Surrender"
)

// CanonicalActions is the priority order used to assign indices and colors.
// It is walked in order; never derive the order from a map.
var CanonicalActions = []Action{Hit, Stand, Double, Split, Surrender}

var abbreviations = map[Action]string{
	Hit:       "H",
	Stand:     "S",
	Double:    "D",
	Split:     "Sp",
	Surrender: "R",
}

// Hex colors without the leading '#'.
var colors = map[Action]string{
	Hit:       "4CAF50",
	Stand:     "F44336",
	Double:    "FFEB3B",
	Split:     "2196F3",
	Surrender: "607D8B",
}

// Abbreviation returns the cell label for a; ok is false for unknown actions.
func Abbreviation(a Action) (string, bool) {
	s, ok := abbreviations[a]
	return s, ok
}

// ColorHex returns the RRGGBB color for a; ok is false for unknown actions.
func ColorHex(a Action) (string, bool) {
	s, ok := colors[a]
	return s, ok
}

// IsCanonical reports whether a is one of the five known actions.
func IsCanonical(a Action) bool {
	_, ok := abbreviations[a]
	return ok
}

// PlayerHands is the row order of the chart: hard totals, soft totals, pairs.
var PlayerHands = []string{
	"5", "6", "7", "8", "9", "10", "11", "12", "13", "14", "15", "16", "17", "18", "19",
	"A,2", "A,3", "A,4", "A,5", "A,6", "A,7", "A,8", "A,9",
	"2,2", "3,3", "4,4", "5,5", "6,6", "7,7", "8,8", "9,9", "10,10", "A,A",
}

// DealerUpcards is the column order of the chart.
var DealerUpcards = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "A"}

// Column names of the generator's CSV output.
const (
	ColumnPlayerHand    = "Player Hand"
	ColumnDealerUpcard  = "Dealer Upcard"
	ColumnOptimalAction = "Optimal Action"
	ColumnExpectedValue = "Expected Value"
)

// Record is one data row of a strategy file.
type Record struct {
	PlayerHand       string
	DealerUpcard     string
	Action           Action
	ExpectedValue    float64
	HasExpectedValue bool
	// Line is the 1-based line number in the source file.
	Line int
}
