package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/1broseidon/snaptile/internal/hotkeys"
	"github.com/1broseidon/snaptile/internal/ipc"
	"github.com/1broseidon/snaptile/internal/platform"
	"github.com/1broseidon/snaptile/internal/runtimepath"
	"github.com/1broseidon/snaptile/internal/watch"
)

func printWatchUsage() {
	fmt.Fprintln(stderr, "Usage: snaptile watch [--path PATH] [--seed SCENARIO] [--display NAME] [--control [--socket PATH]]")
	fmt.Fprintln(stderr, "")
	fmt.Fprintln(stderr, "Poll the X11 pointer and treat left-button drags as window drags.")
	fmt.Fprintln(stderr, "Snaps are logged; the layout follows the active monitor's work area.")
	fmt.Fprintln(stderr, "Set watch.cancel_hotkey (e.g. Mod4-Escape) to abandon a drag from the keyboard.")
	fmt.Fprintln(stderr, "With --control, a local socket serves 'snaptile status', 'cancel' and 'reload'.")
	fmt.Fprintln(stderr, "Stops on SIGINT/SIGTERM.")
}

func runWatch(args []string) int {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = printWatchUsage
	path := fs.String("path", "", "Config file path (default: ~/.config/snaptile/config.yaml)")
	seed := fs.String("seed", "", "Scenario file replayed into the layout before watching")
	display := fs.String("display", "", "X display (default: watch.display or $DISPLAY)")
	socket := fs.String("socket", "", "Control socket path (default: in $XDG_RUNTIME_DIR)")
	control := fs.Bool("control", false, "Open the local control socket")

	if isHelpArg(args) {
		printWatchUsage()
		return 0
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintln(stderr, "watch takes no arguments")
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	cfg := res.Config
	logger := newSlogger(stderr, cfg.LogLevel)

	actions, err := newActionLogger(cfg)
	if err != nil {
		logger.Error("failed to open action log", "err", err)
		return 1
	}
	defer actions.Close()

	ctrl, err := newController(cfg, *seed, actions)
	if err != nil {
		logger.Error("failed to build layout", "err", err)
		return 1
	}

	name := cfg.Watch.Display
	if *display != "" {
		name = *display
	}
	backend, err := platform.Open(name)
	if err != nil {
		logger.Error("failed to connect to display", "err", err)
		return 1
	}
	defer backend.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := watch.New(backend, ctrl, watch.Options{
		Interval: time.Duration(cfg.Watch.PollIntervalMS) * time.Millisecond,
		Padding:  cfg.ScreenPadding,
		Logger:   logger,
	})
	if *control {
		sockPath, err := controlSocket(*socket, name)
		if err != nil {
			logger.Error("failed to resolve control socket", "err", err)
			return 1
		}
		srv := ipc.NewServer(sockPath, watchTarget{Watcher: w, configPath: *path}, backend, logger)
		if err := srv.Start(); err != nil {
			logger.Error("failed to start control socket", "err", err)
			return 1
		}
		defer srv.Stop()
	}
	if seq := cfg.Watch.CancelHotkey; seq != "" {
		if err := grabCancel(ctx, backend, seq, w.Cancel); err != nil {
			logger.Warn("cancel hotkey disabled", "key", seq, "err", err)
		} else {
			logger.Info("cancel hotkey registered", "key", seq)
		}
	}
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("watch stopped", "err", err)
		return 1
	}
	logger.Info("watch stopped")
	return 0
}

// grabCancel binds seq to cancel and dispatches key events until ctx ends.
func grabCancel(ctx context.Context, backend platform.Backend, seq string, cancel func()) error {
	h, err := hotkeys.NewHandler(backend)
	if err != nil {
		return err
	}
	if err := h.RegisterFunc(seq, cancel); err != nil {
		return err
	}
	go h.Run(ctx)
	return nil
}

// controlSocket returns explicit, or the per-display default socket path.
func controlSocket(explicit, display string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	return runtimepath.SocketPath(display)
}

// watchTarget exposes a running watcher to the control socket.
type watchTarget struct {
	*watch.Watcher
	configPath string
}

// Reload re-reads the config and applies its snap threshold.
func (t watchTarget) Reload() (int, error) {
	res, err := loadConfig(t.configPath)
	if err != nil {
		return 0, err
	}
	t.SetThreshold(res.Config.SnapThreshold)
	return res.Config.SnapThreshold, nil
}
