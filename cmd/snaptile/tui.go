package main

import (
	"flag"
	"fmt"

	"github.com/1broseidon/snaptile/internal/tui"
)

func printTUIUsage() {
	fmt.Fprintln(stderr, "Usage: snaptile tui [--path PATH] [--seed SCENARIO]")
	fmt.Fprintln(stderr, "")
	fmt.Fprintln(stderr, "A desktop in the terminal: drag windows with the mouse and drop them")
	fmt.Fprintln(stderr, "near an edge to snap them into the layout.")
	fmt.Fprintln(stderr, "")
	fmt.Fprintln(stderr, "Keybindings:")
	fmt.Fprintln(stderr, "  n         New floating window")
	fmt.Fprintln(stderr, "  x         Close the focused window")
	fmt.Fprintln(stderr, "  tab       Focus and raise the next window")
	fmt.Fprintln(stderr, "  arrows    Focus the nearest window in that direction")
	fmt.Fprintln(stderr, "  shift+arrows  Snap the focused window to that side of the viewport")
	fmt.Fprintln(stderr, "  esc       Cancel the current drag")
	fmt.Fprintln(stderr, "  e         Edit snap threshold and cell size")
	fmt.Fprintln(stderr, "  ctrl+s    Save config")
	fmt.Fprintln(stderr, "  r         Reload config (also automatic on change)")
	fmt.Fprintln(stderr, "  ?         Toggle full help")
	fmt.Fprintln(stderr, "  q, ctrl+c Quit")
}

func runTUI(args []string) int {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = printTUIUsage
	path := fs.String("path", "", "Config file path (default: ~/.config/snaptile/config.yaml)")
	seed := fs.String("seed", "", "Scenario file replayed into the layout at start")

	if isHelpArg(args) {
		printTUIUsage()
		return 0
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	configPath, err := resolveConfigPath(*path)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	res, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	actions, err := newActionLogger(res.Config)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer actions.Close()

	ctrl, err := newController(res.Config, *seed, actions)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	if err := tui.Run(tui.Options{
		ConfigPath: configPath,
		Config:     res.Config,
		Controller: ctrl,
	}); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}
