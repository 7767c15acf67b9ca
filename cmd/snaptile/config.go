package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/snaptile/internal/config"
)

func printConfigUsage() {
	fmt.Fprintln(stderr, "Usage:")
	fmt.Fprintln(stderr, "  snaptile config validate [--path PATH]")
	fmt.Fprintln(stderr, "  snaptile config print [--path PATH] [--effective|--defaults]")
	fmt.Fprintln(stderr, "  snaptile config explain [--path PATH] <yaml.path>")
	fmt.Fprintln(stderr, "  snaptile config explain --list")
	fmt.Fprintln(stderr, "  snaptile config init [--path PATH] [--force] [--defaults]")
}

func runConfig(args []string) int {
	if len(args) == 0 || isHelpArg(args) {
		printConfigUsage()
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/snaptile/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		res, err := loadConfig(*path)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		if len(res.Files) == 0 {
			fmt.Fprintln(stdout, "config: ok (defaults, no file found)")
			return 0
		}
		fmt.Fprintf(stdout, "config: ok (%d file(s))\n", len(res.Files))
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/snaptile/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		printEffective := fs.Bool("effective", false, "Print effective config (default)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		cfg := config.DefaultConfig()
		_ = printEffective // default
		if !*printDefaults {
			res, err := loadConfig(*path)
			if err != nil {
				fmt.Fprintln(stderr, err)
				return 1
			}
			for _, f := range res.Files {
				fmt.Fprintf(stdout, "# loaded: %s\n", f)
			}
			cfg = res.Config
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		fmt.Fprint(stdout, string(data))
		return 0

	case "explain":
		fs := flag.NewFlagSet("explain", flag.ContinueOnError)
		fs.SetOutput(stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/snaptile/config.yaml)")
		list := fs.Bool("list", false, "List every explainable path")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if *list {
			for _, p := range config.Paths() {
				fmt.Fprintln(stdout, p)
			}
			return 0
		}
		if fs.NArg() < 1 {
			fmt.Fprintln(stderr, "explain requires <yaml.path>")
			return 2
		}
		queryPath := fs.Arg(0)

		res, err := loadConfig(*path)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}

		value, src, err := config.Explain(res, queryPath)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}

		out, err := yaml.Marshal(value)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}

		fmt.Fprintf(stdout, "path: %s\n", queryPath)
		fmt.Fprintf(stdout, "source: %s\n", formatSource(src))
		fmt.Fprintf(stdout, "value:\n%s", string(out))
		return 0

	case "init":
		return runConfigInit(args[1:])

	default:
		fmt.Fprintf(stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}

func runConfigInit(args []string) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/snaptile/config.yaml)")
	force := fs.Bool("force", false, "Overwrite an existing file")
	defaults := fs.Bool("defaults", false, "Write the defaults without asking")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	target, err := resolveConfigPath(*path)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if _, err := os.Stat(target); err == nil && !*force {
		fmt.Fprintf(stderr, "%s already exists (use --force to overwrite)\n", target)
		return 1
	}

	cfg := config.DefaultConfig()
	if !*defaults {
		if err := askInitialConfig(cfg); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}
	if err := cfg.SaveTo(target); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintf(stdout, "wrote %s\n", target)
	return 0
}

// askInitialConfig prompts for the handful of settings most people change.
func askInitialConfig(cfg *config.Config) error {
	threshold := strconv.Itoa(cfg.SnapThreshold)
	width := strconv.Itoa(cfg.Viewport.Width)
	height := strconv.Itoa(cfg.Viewport.Height)
	logging := cfg.Logging.Enabled

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Snap threshold").
				Description("Pixels from an edge at which a drop snaps").
				Validate(validPositive).
				Value(&threshold),
			huh.NewInput().
				Title("Viewport width").
				Description("Used by replay when a scenario does not set one").
				Validate(validPositive).
				Value(&width),
			huh.NewInput().
				Title("Viewport height").
				Validate(validPositive).
				Value(&height),
			huh.NewConfirm().
				Title("Record an action log?").
				Value(&logging),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	cfg.SnapThreshold, _ = strconv.Atoi(threshold)
	cfg.Viewport.Width, _ = strconv.Atoi(width)
	cfg.Viewport.Height, _ = strconv.Atoi(height)
	cfg.Logging.Enabled = logging
	return nil
}

func validPositive(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return fmt.Errorf("enter a whole number of at least 1")
	}
	return nil
}

func formatSource(src config.Source) string {
	switch src.Kind {
	case config.SourceFile:
		if src.File == "" {
			return "file"
		}
		if src.Line > 0 {
			return fmt.Sprintf("file:%s:%d:%d", src.File, src.Line, src.Column)
		}
		return "file:" + src.File
	default:
		return string(src.Kind)
	}
}
