package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/snaptile/internal/scenario"
	"github.com/1broseidon/snaptile/internal/tiling"
)

func printReplayUsage() {
	fmt.Fprintln(stderr, "Usage: snaptile replay [--path PATH] [--format text|yaml] [--threshold PX] <scenario.yaml>")
	fmt.Fprintln(stderr, "")
	fmt.Fprintln(stderr, "Replay a scenario against a fresh layout and print every step, the final")
	fmt.Fprintln(stderr, "bounds and the tree. Exits 1 when an expect step fails.")
}

func runReplay(args []string) int {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = printReplayUsage
	path := fs.String("path", "", "Config file path (default: ~/.config/snaptile/config.yaml)")
	format := fs.String("format", "text", "Report format: text or yaml")
	threshold := fs.Int("threshold", 0, "Override the snap threshold in pixels")

	if isHelpArg(args) {
		printReplayUsage()
		return 0
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	// Allow flags after the scenario file as well.
	var file string
	if rest := fs.Args(); len(rest) > 0 {
		file = rest[0]
		if err := fs.Parse(rest[1:]); err != nil {
			return 2
		}
		if fs.NArg() > 0 {
			fmt.Fprintf(stderr, "replay takes one scenario file, got extra %q\n", fs.Arg(0))
			return 2
		}
	}
	if file == "" {
		fmt.Fprintln(stderr, "replay requires <scenario.yaml>")
		printReplayUsage()
		return 2
	}
	if *format != "text" && *format != "yaml" {
		fmt.Fprintf(stderr, "unknown format %q (want text or yaml)\n", *format)
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	cfg := res.Config

	doc, err := scenario.Load(file)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	snap := cfg.SnapThreshold
	eng := doc.NewEngine(tiling.Rect{Width: cfg.Viewport.Width, Height: cfg.Viewport.Height}, snap)
	if *threshold > 0 {
		eng.SetSnapThreshold(*threshold)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := scenario.Run(ctx, doc, eng)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	if *format == "yaml" {
		err = scenario.WriteYAML(stdout, report)
	} else {
		err = scenario.WriteText(stdout, report)
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if !report.Passed() {
		return 1
	}
	return 0
}
