// strategychart renders a blackjack strategy chart from a CSV written by the strategy
// generator: a color-coded grid of optimal actions per player hand and dealer upcard,
// with legend, the rules the strategy was generated for and an attribution line.
//
// Usage:
//
//	strategychart <path_to_csv_file> [--save [filename]]
//
// Without --save the chart is only displayed. With --save and no file name the
// configured default (blackjack_strategy_chart.png) is used. All failures are
// reported as messages; the process always exits normally.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/fkuefler/blackjack-lab/src/logging"
)

const usageLine = "Usage: strategychart <path_to_csv_file> [--save [filename.png]]"

type rootFlags struct {
	save       string
	configPath string
	logLevel   string
	dpi        float64
	noShow     bool
	preview    bool
	watch      bool
}

func newRootCmd(out io.Writer) *cobra.Command {
	var flags rootFlags
	cmd := &cobra.Command{
		Use:   "strategychart <path_to_csv_file> [--save [filename]]",
		Short: "Render a blackjack strategy chart from a strategy CSV",
		Long: `Render a blackjack strategy chart from a CSV produced by the strategy generator.

The leading comment block of the file becomes the rules text of the chart.
The chart is saved when --save is given (PNG, or SVG for .svg names) and is
displayed in a window when a graphical session is available.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(out, usageLine)
				return nil
			}
			if len(args) > 1 {
				logging.Debugf("ignoring extra arguments %v", args[1:])
			}
			return run(cmd.Context(), args[0], flags, out)
		},
	}
	cmd.SetOut(out)
	// Unknown flags are skipped, so "--save -x" still saves under the default name.
	cmd.FParseErrWhitelist.UnknownFlags = true

	f := cmd.Flags()
	f.StringVar(&flags.save, "save", "", "save the chart to `filename` (default name when no value is given)")
	f.Lookup("save").NoOptDefVal = defaultSaveMarker
	f.StringVar(&flags.configPath, "config", "", "path to a TOML config file (default ./strategychart.toml if present)")
	f.StringVar(&flags.logLevel, "log-level", "", "log level (debug|info|warn|error)")
	f.Float64Var(&flags.dpi, "dpi", 0, "resolution of the saved image (default chart.save_dpi)")
	f.BoolVar(&flags.noShow, "no-show", false, "do not open a window")
	f.BoolVar(&flags.preview, "preview", false, "also print the chart to the terminal")
	f.BoolVar(&flags.watch, "watch", false, "re-render whenever the input file changes (no window)")
	return cmd
}

func execute(args []string, out io.Writer) {
	cmd := newRootCmd(out)
	cmd.SetArgs(normalizeSaveArgs(args))
	if err := cmd.Execute(); err != nil {
		fmt.Fprint(out, pterm.Error.Sprintfln("%v", err))
		fmt.Fprintln(out, usageLine)
	}
}

func main() {
	execute(os.Args[1:], os.Stdout)
	logging.Sync()
}
