package main

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"

	"github.com/fkuefler/blackjack-lab/src/chart"
	"github.com/fkuefler/blackjack-lab/src/config"
	"github.com/fkuefler/blackjack-lab/src/errors"
	"github.com/fkuefler/blackjack-lab/src/logging"
	"github.com/fkuefler/blackjack-lab/src/preview"
	"github.com/fkuefler/blackjack-lab/src/strategy"
	"github.com/fkuefler/blackjack-lab/src/watch"
)

// renderOptions is the resolved configuration of one invocation.
type renderOptions struct {
	input    string
	savePath string
	skipRows int
	save     chart.Options
	display  chart.Options
	show     bool
	maxW     int
	maxH     int
	preview  bool
	watch    bool
	debounce time.Duration
	out      io.Writer
}

// RenderResult is what one pass over the input produced.
type RenderResult struct {
	Document *strategy.Document
	// Saved is nil when no save was requested.
	Saved *chart.Result
	// Image is the chart prepared for the window, nil when display is off.
	Image image.Image
}

func resolveOptions(input string, flags rootFlags, cfg *config.Config, out io.Writer) renderOptions {
	save := chart.DefaultOptions()
	save.DPI = cfg.Chart.SaveDPI
	if flags.dpi > 0 {
		save.DPI = flags.dpi
	}
	save.Attribution = cfg.Chart.Attribution
	save.LegendTitle = cfg.Chart.LegendTitle

	display := save
	display.DPI = cfg.Chart.DisplayDPI
	display.Format = chart.PNG

	return renderOptions{
		input:    input,
		savePath: resolveSavePath(flags.save, cfg.Output.DefaultName),
		skipRows: cfg.Table.SkipRows,
		save:     save,
		display:  display,
		show:     cfg.Display.Enabled && !flags.noShow && !flags.watch && graphicalSession(),
		maxW:     cfg.Display.MaxWidth,
		maxH:     cfg.Display.MaxHeight,
		preview:  flags.preview,
		watch:    flags.watch,
		debounce: cfg.Watch.Debounce,
		out:      out,
	}
}

func run(ctx context.Context, input string, flags rootFlags, out io.Writer) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		report(out, input, err)
		return nil
	}
	if err := logging.Initialize(cfg.Log.JSON); err != nil {
		report(out, input, err)
		return nil
	}
	logging.SetLogLevel(cfg.Log.Level)
	if flags.logLevel != "" {
		logging.SetLogLevel(flags.logLevel)
	}

	o := resolveOptions(input, flags, cfg, out)
	if !o.show && !flags.noShow && !flags.watch && cfg.Display.Enabled {
		logging.Debugf("no graphical session, not opening a window")
	}
	res, err := renderOnce(o)
	if err != nil {
		report(out, input, err)
	}
	if o.watch {
		return watchInput(ctx, o)
	}
	if err == nil && o.show && res.Image != nil {
		display(windowTitle(input), res.Image)
	}
	return nil
}

// renderOnce loads the input and produces every requested output.
func renderOnce(o renderOptions) (*RenderResult, error) {
	doc, err := strategy.Load(o.input, o.skipRows)
	if err != nil {
		return nil, err
	}
	if doc.Mapping.Len() == 0 {
		return nil, errors.Parsef("no recognized actions to color")
	}
	res := &RenderResult{Document: doc}

	if o.savePath != "" {
		saved, err := chart.Save(o.savePath, doc, o.save)
		if err != nil {
			return nil, errors.Wrapf(err, "save %s", o.savePath)
		}
		res.Saved = saved
		fmt.Fprint(o.out, pterm.Success.Sprintfln("Chart saved to %s", saved.Path))
	}

	if o.preview {
		fmt.Fprint(o.out, preview.Render(doc))
	}

	if o.show {
		rendered, err := chart.Render(doc, o.display)
		if err != nil {
			return nil, err
		}
		img, err := rendered.Image()
		if err != nil {
			return nil, err
		}
		res.Image = chart.Fit(img, o.maxW, o.maxH)
	}
	return res, nil
}

func watchInput(ctx context.Context, o renderOptions) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprint(o.out, pterm.Info.Sprintfln("Watching %s for changes (Ctrl+C to stop)", o.input))
	err := watch.File(ctx, o.input, o.debounce, func() {
		if _, err := renderOnce(o); err != nil {
			report(o.out, o.input, err)
		}
	})
	if err != nil {
		report(o.out, o.input, err)
	}
	return nil
}

// report is the single place where failures become user-facing messages.
func report(out io.Writer, input string, err error) {
	if errors.Is(err, errors.ErrInputNotFound) {
		fmt.Fprintln(out, pterm.FgRed.Sprintf("Error: The file '%s' was not found.", input))
		logging.Debugf("%+v", err)
		return
	}
	fmt.Fprint(out, pterm.Error.Sprintfln("An error occurred: %v", err))
	if hints := errors.FlattenHints(err); hints != "" {
		fmt.Fprint(out, pterm.Info.Sprintfln("%s", hints))
	}
	logging.Debugf("%+v", err)
}
