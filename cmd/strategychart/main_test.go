package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkuefler/blackjack-lab/src/types"
)

const rulesHeader = `#Rules Used for Generation:
#Number of Decks: 6
#Dealer Hits Soft 17: Yes
#Can Double After Split: Yes
#Surrender Type: Late
#Can Split Aces: Yes
#Max Splits: 3
`

// writeFullTable writes a complete 33x10 table into dir and returns its name.
func writeFullTable(t *testing.T, dir string) string {
	t.Helper()
	actions := []string{"Hit", "Stand", "Double", "Split", "Surrender"}
	var b strings.Builder
	b.WriteString(rulesHeader)
	b.WriteString("Player Hand,Dealer Upcard,Optimal Action,Expected Value\n")
	for i, hand := range types.PlayerHands {
		for j, up := range types.DealerUpcards {
			fmt.Fprintf(&b, "\"%s\",%s,%s,%.4f\n", hand, up, actions[(i+j)%len(actions)], -0.05)
		}
	}
	name := "strategy.csv"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(b.String()), 0o644))
	return name
}

type displayCall struct {
	title string
	img   image.Image
}

// setup isolates a test in a temp dir with a fake display.
func setup(t *testing.T, graphical bool) (string, *[]displayCall) {
	t.Helper()
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	dir := t.TempDir()
	chdirForTest(t, dir)

	var calls []displayCall
	origDisplay, origGraphical := display, graphicalSession
	display = func(title string, img image.Image) { calls = append(calls, displayCall{title, img}) }
	graphicalSession = func() bool { return graphical }
	t.Cleanup(func() { display, graphicalSession = origDisplay, origGraphical })
	return dir, &calls
}

func runCLI(args ...string) string {
	var out bytes.Buffer
	execute(args, &out)
	return out.String()
}

func TestExecute_NoArgsPrintsUsage(t *testing.T) {
	_, calls := setup(t, true)
	out := runCLI()
	assert.Equal(t, usageLine+"\n", out)
	assert.Empty(t, *calls)
}

func TestExecute_MissingFile(t *testing.T) {
	dir, calls := setup(t, true)
	out := runCLI("nope.csv", "--save")
	assert.Equal(t, "Error: The file 'nope.csv' was not found.\n", out)
	assert.Empty(t, *calls)
	assert.NoFileExists(t, filepath.Join(dir, "blackjack_strategy_chart.png"))
}

func TestExecute_SaveWithName(t *testing.T) {
	dir, calls := setup(t, false)
	in := writeFullTable(t, dir)

	out := runCLI(in, "--save", "out.png", "--dpi", "50")
	assert.Contains(t, out, "Chart saved to out.png")
	assert.FileExists(t, filepath.Join(dir, "out.png"))
	assert.Empty(t, *calls, "no window without a graphical session")
}

func TestExecute_BareSaveUsesDefaultName(t *testing.T) {
	for _, args := range [][]string{
		{"--save", "--dpi", "50"},
		{"--save", "--preview", "--dpi", "50"},
	} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			dir, _ := setup(t, false)
			in := writeFullTable(t, dir)
			out := runCLI(append([]string{in}, args...)...)
			assert.Contains(t, out, "Chart saved to blackjack_strategy_chart.png")
			assert.FileExists(t, filepath.Join(dir, "blackjack_strategy_chart.png"))
		})
	}
}

func TestExecute_PreviewPrintsGrid(t *testing.T) {
	dir, _ := setup(t, false)
	in := writeFullTable(t, dir)
	out := runCLI(in, "--preview")
	assert.Contains(t, out, "A,A")
	assert.Contains(t, out, "Number of Decks: 6")
}

func TestExecute_SaveSVG(t *testing.T) {
	dir, _ := setup(t, false)
	in := writeFullTable(t, dir)
	out := runCLI(in, "--save=chart.svg")
	assert.Contains(t, out, "Chart saved to chart.svg")
	data, err := os.ReadFile(filepath.Join(dir, "chart.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestExecute_DisplayWithoutSave(t *testing.T) {
	dir, calls := setup(t, true)
	in := writeFullTable(t, dir)

	out := runCLI(in)
	assert.NotContains(t, out, "Chart saved")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "only the input file exists")

	require.Len(t, *calls, 1)
	c := (*calls)[0]
	assert.Equal(t, "Strategy Chart - strategy.csv", c.title)
	b := c.img.Bounds()
	assert.LessOrEqual(t, b.Dx(), 1400)
	assert.LessOrEqual(t, b.Dy(), 1000)
}

func TestExecute_NoShowSkipsWindow(t *testing.T) {
	dir, calls := setup(t, true)
	in := writeFullTable(t, dir)
	runCLI(in, "--no-show")
	assert.Empty(t, *calls)
}

func TestExecute_MalformedInput(t *testing.T) {
	dir, calls := setup(t, true)
	body := rulesHeader + "Hand,Upcard\n\"16\",10\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.csv"), []byte(body), 0o644))

	out := runCLI("bad.csv", "--save", "bad.png")
	assert.Contains(t, out, "An error occurred:")
	assert.NoFileExists(t, filepath.Join(dir, "bad.png"))
	assert.Empty(t, *calls)
}

func TestExecute_UnknownFlagsAreSkipped(t *testing.T) {
	setup(t, false)
	out := runCLI("x.csv", "--bogus")
	assert.Equal(t, "Error: The file 'x.csv' was not found.\n", out)
}

func TestExecute_SaveBeforeShortFlagUsesDefaultName(t *testing.T) {
	dir, _ := setup(t, false)
	in := writeFullTable(t, dir)
	out := runCLI(in, "--dpi", "50", "--save", "-x")
	assert.Contains(t, out, "Chart saved to blackjack_strategy_chart.png")
	assert.FileExists(t, filepath.Join(dir, "blackjack_strategy_chart.png"))
	assert.NoFileExists(t, filepath.Join(dir, "-x"))
}

func TestExecute_OnlyUnknownActionsFailsWithoutAnyOutput(t *testing.T) {
	for _, graphical := range []bool{false, true} {
		t.Run(fmt.Sprintf("graphical=%v", graphical), func(t *testing.T) {
			dir, calls := setup(t, graphical)
			body := rulesHeader + "Player Hand,Dealer Upcard,Optimal Action\n\"16\",10,Insurance\n"
			require.NoError(t, os.WriteFile(filepath.Join(dir, "odd.csv"), []byte(body), 0o644))

			out := runCLI("odd.csv")
			assert.Contains(t, out, "An error occurred: no recognized actions to color")
			assert.Empty(t, *calls)
		})
	}
}

func TestRun_WatchReturnsOnCancel(t *testing.T) {
	dir, calls := setup(t, true)
	in := writeFullTable(t, dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	err := run(ctx, in, rootFlags{watch: true, save: "watched.png", dpi: 50}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Chart saved to watched.png")
	assert.Contains(t, out.String(), "Watching strategy.csv")
	assert.Empty(t, *calls, "watch mode never opens a window")
}
