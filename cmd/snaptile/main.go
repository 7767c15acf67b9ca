package main

import (
	"fmt"
	"io"
	"os"
)

// Overridden in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "replay":
		os.Exit(runReplay(os.Args[2:]))
	case "watch":
		os.Exit(runWatch(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "cancel":
		os.Exit(runCancel(os.Args[2:]))
	case "reload":
		os.Exit(runReload(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: snaptile <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui                 Open the drag-and-snap desktop in this terminal")
	fmt.Fprintln(w, "  replay <file>       Replay a scenario file and report the layout")
	fmt.Fprintln(w, "  watch               Follow the X11 pointer and snap drags (foreground)")
	fmt.Fprintln(w, "  status              Show a running watcher's state")
	fmt.Fprintln(w, "  cancel              Abandon a running watcher's drag")
	fmt.Fprintln(w, "  reload              Make a running watcher re-read its config")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "  config init         Write a starter config interactively")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'snaptile <command> --help' for command-specific options.")
}

func isHelpArg(args []string) bool {
	return len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help")
}
