package main

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/snaptile/internal/config"
	"github.com/1broseidon/snaptile/internal/ipc"
	"github.com/1broseidon/snaptile/internal/watch"
)

// startControlSocket serves a seeded, idle watcher and returns its socket.
func startControlSocket(t *testing.T, configPath string) string {
	t.Helper()
	dir := t.TempDir()
	seed := filepath.Join(dir, "seed.yaml")
	writeFile(t, seed, passingScenario)

	ctrl, err := newController(config.DefaultConfig(), seed, nil)
	if err != nil {
		t.Fatalf("newController: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	w := watch.New(headlessBackend{}, ctrl, watch.Options{Logger: logger})

	socket := filepath.Join(dir, "ctl.sock")
	srv := ipc.NewServer(socket, watchTarget{Watcher: w, configPath: configPath}, headlessBackend{}, logger)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(srv.Stop)
	return socket
}

func TestStatus_PrintsLayout(t *testing.T) {
	socket := startControlSocket(t, "")
	out, _ := captureOutput(t)

	if rc := runStatus([]string{"--socket", socket, "--layout"}); rc != 0 {
		t.Fatalf("rc=%d", rc)
	}
	got := out.String()
	for _, want := range []string{
		"phase:     inactive",
		"windows:   2 (2 snapped)",
		"threshold: 50px",
		"viewport 1000x600+0+0",
		"a            250x600+0+0",
		"b            250x600+250+0",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in:\n%s", want, got)
		}
	}
}

func TestStatus_JSON(t *testing.T) {
	socket := startControlSocket(t, "")
	out, _ := captureOutput(t)

	if rc := runStatus([]string{"--socket", socket, "--json"}); rc != 0 {
		t.Fatalf("rc=%d", rc)
	}
	if !strings.Contains(out.String(), `"snapped": 2`) || strings.Contains(out.String(), `"layout"`) {
		t.Fatalf("unexpected JSON:\n%s", out.String())
	}
}

func TestReload_AppliesThreshold(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, cfgPath, "snap_threshold: 33\n")
	socket := startControlSocket(t, cfgPath)
	out, _ := captureOutput(t)

	if rc := runReload([]string{"--socket", socket}); rc != 0 {
		t.Fatalf("rc=%d", rc)
	}
	if !strings.Contains(out.String(), "threshold 33px") {
		t.Fatalf("out = %q", out.String())
	}

	out.Reset()
	if rc := runStatus([]string{"--socket", socket}); rc != 0 {
		t.Fatalf("rc=%d", rc)
	}
	if !strings.Contains(out.String(), "threshold: 33px") {
		t.Fatalf("threshold not applied:\n%s", out.String())
	}
}

func TestCancel_NoWatcher(t *testing.T) {
	_, errOut := captureOutput(t)

	socket := filepath.Join(t.TempDir(), "none.sock")
	if rc := runCancel([]string{"--socket", socket}); rc != 1 {
		t.Fatalf("rc=%d, want 1", rc)
	}
	if !strings.Contains(errOut.String(), "snaptile watch") {
		t.Fatalf("stderr = %q", errOut.String())
	}
}

func TestCancel_Idle(t *testing.T) {
	socket := startControlSocket(t, "")
	out, _ := captureOutput(t)

	if rc := runCancel([]string{"--socket", socket}); rc != 0 {
		t.Fatalf("rc=%d", rc)
	}
	if !strings.Contains(out.String(), "cancel requested") {
		t.Fatalf("out = %q", out.String())
	}
}

func TestControlCommands_Usage(t *testing.T) {
	captureOutput(t)

	tests := []struct {
		name string
		run  func([]string) int
		args []string
		want int
	}{
		{"status help", runStatus, []string{"--help"}, 0},
		{"status extra arg", runStatus, []string{"x"}, 2},
		{"cancel bad flag", runCancel, []string{"--nope"}, 2},
		{"reload help", runReload, []string{"help"}, 0},
		{"reload extra arg", runReload, []string{"x"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rc := tt.run(tt.args); rc != tt.want {
				t.Fatalf("rc=%d, want %d", rc, tt.want)
			}
		})
	}
}
