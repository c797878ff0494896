package strategy

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// generatorHeader mirrors the seven comment lines the strategy generator writes.
const generatorHeader = `#Rules Used for Generation:
#Number of Decks: 6
#Dealer Hits Soft 17: Yes
#Can Double After Split: Yes
#Surrender Type: Late
#Can Split Aces: Yes
#Max Splits: 3
`

type row struct{ hand, upcard, action string }

// writeStrategyFile writes a generator-shaped CSV with the given data rows.
func writeStrategyFile(t *testing.T, rows ...row) string {
	t.Helper()
	var b strings.Builder
	b.WriteString(generatorHeader)
	b.WriteString("Player Hand,Dealer Upcard,Optimal Action,Expected Value\n")
	for i, r := range rows {
		fmt.Fprintf(&b, "\"%s\",%s,%s,%.4f\n", r.hand, r.upcard, r.action, -0.1*float64(i))
	}
	return writeRaw(t, b.String())
}

func writeRaw(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "strategy.csv")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write strategy file: %v", err)
	}
	return path
}
