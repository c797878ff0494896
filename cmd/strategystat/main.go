// strategystat prints a summary of a strategy CSV: the rules it was generated for,
// the number of records and per-action counts with mean expected value.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/fkuefler/blackjack-lab/src/config"
	"github.com/fkuefler/blackjack-lab/src/errors"
	"github.com/fkuefler/blackjack-lab/src/logging"
	"github.com/fkuefler/blackjack-lab/src/strategy"
)

func newRootCmd(out io.Writer) *cobra.Command {
	var configPath string
	var skipRows int
	cmd := &cobra.Command{
		Use:           "strategystat <path_to_csv_file>",
		Short:         "Summarise a blackjack strategy CSV",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logging.SetLogLevel(cfg.Log.Level)
			if cmd.Flags().Changed("skip-rows") {
				cfg.Table.SkipRows = skipRows
			}
			doc, err := strategy.Load(args[0], cfg.Table.SkipRows)
			if err != nil {
				return err
			}
			return summarize(out, doc)
		},
	}
	cmd.SetOut(out)
	cmd.Flags().StringVar(&configPath, "config", "", "path to a TOML config file")
	cmd.Flags().IntVar(&skipRows, "skip-rows", 0, "physical lines before the header (default table.skip_rows)")
	return cmd
}

func summarize(out io.Writer, doc *strategy.Document) error {
	fmt.Fprintln(out, doc.Rules)
	fmt.Fprintf(out, "Records: %d  Cells filled: %d/%d\n", len(doc.Records), doc.Grid.Filled(), len(doc.Grid.Rows)*len(doc.Grid.Cols))

	data := pterm.TableData{{"Action", "Abbrev", "Count", "Mean EV"}}
	for _, s := range doc.Stats() {
		abbrev := doc.Mapping.Abbreviation(s.Action)
		if abbrev == "" {
			abbrev = "-"
		}
		ev := "n/a"
		if s.WithEV > 0 {
			ev = fmt.Sprintf("%+.4f", s.MeanEV)
		}
		data = append(data, []string{string(s.Action), abbrev, fmt.Sprint(s.Count), ev})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Wrap(err, "render table")
	}
	fmt.Fprintln(out, table)
	return nil
}

func main() {
	cmd := newRootCmd(os.Stdout)
	if err := cmd.Execute(); err != nil {
		pterm.Error.Printfln("%v", err)
		if hints := errors.FlattenHints(err); hints != "" {
			pterm.Info.Printfln("%s", hints)
		}
		logging.Sync()
		os.Exit(1)
	}
	logging.Sync()
}
