package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/1broseidon/snaptile/internal/ipc"
)

func printStatusUsage() {
	fmt.Fprintln(stderr, "Usage: snaptile status [--layout] [--monitors] [--json] [--display NAME] [--socket PATH]")
	fmt.Fprintln(stderr, "")
	fmt.Fprintln(stderr, "Query a running 'snaptile watch' over its control socket.")
}

func printControlUsage(name, what string) {
	fmt.Fprintf(stderr, "Usage: snaptile %s [--display NAME] [--socket PATH]\n", name)
	fmt.Fprintln(stderr, "")
	fmt.Fprintln(stderr, what)
}

// ctlFlags registers the flags shared by every control-socket command.
func ctlFlags(fs *flag.FlagSet) (display, socket *string) {
	display = fs.String("display", "", "X display the watcher was started on")
	socket = fs.String("socket", "", "Control socket path (default: in $XDG_RUNTIME_DIR)")
	return display, socket
}

func dialWatcher(display, socket string) (*ipc.Client, error) {
	path, err := controlSocket(socket, display)
	if err != nil {
		return nil, err
	}
	return ipc.NewClient(path), nil
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = printStatusUsage
	showLayout := fs.Bool("layout", false, "Also print the layout tree and snapped rectangles")
	showMonitors := fs.Bool("monitors", false, "Also print monitors")
	asJSON := fs.Bool("json", false, "Print raw JSON")
	display, socket := ctlFlags(fs)

	if isHelpArg(args) {
		printStatusUsage()
		return 0
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintln(stderr, "status takes no arguments")
		return 2
	}

	client, err := dialWatcher(*display, *socket)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	out := struct {
		Status   *ipc.StatusData   `json:"status"`
		Layout   *ipc.LayoutData   `json:"layout,omitempty"`
		Monitors *ipc.MonitorsData `json:"monitors,omitempty"`
	}{}
	if out.Status, err = client.GetStatus(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if *showLayout {
		if out.Layout, err = client.GetLayout(); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}
	if *showMonitors {
		if out.Monitors, err = client.GetMonitors(); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0
	}

	printStatus(stdout, out.Status)
	if out.Layout != nil {
		printLayout(stdout, out.Layout)
	}
	if out.Monitors != nil {
		printMonitors(stdout, out.Monitors)
	}
	return 0
}

func printStatus(w io.Writer, st *ipc.StatusData) {
	fmt.Fprintf(w, "phase:     %s", st.Phase)
	if st.Grabbed != "" {
		fmt.Fprintf(w, " (%s)", st.Grabbed)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "windows:   %d (%d snapped)\n", st.Windows, st.Snapped)
	fmt.Fprintf(w, "threshold: %dpx\n", st.Threshold)
	fmt.Fprintf(w, "uptime:    %ds\n", st.UptimeSeconds)
}

func printLayout(w io.Writer, l *ipc.LayoutData) {
	fmt.Fprintf(w, "\nviewport %s\n", formatRectInfo(l.Viewport))
	for _, line := range strings.Split(strings.TrimRight(l.Tree, "\n"), "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}
	for _, o := range l.Occupants {
		fmt.Fprintf(w, "  %-12s %s\n", o.ID, formatRectInfo(o.Rect))
	}
}

func printMonitors(w io.Writer, m *ipc.MonitorsData) {
	fmt.Fprintln(w)
	for _, mon := range m.Monitors {
		marker := " "
		if mon.Active {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %d %-10s %s usable %s\n", marker, mon.ID, mon.Name,
			formatRectInfo(mon.Bounds), formatRectInfo(mon.Usable))
	}
}

func formatRectInfo(r ipc.RectInfo) string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

func runCancel(args []string) int {
	const what = "Abandon the drag a running watcher is tracking."
	client, code := parseControl("cancel", what, args)
	if client == nil {
		return code
	}
	if err := client.Cancel(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintln(stdout, "cancel requested")
	return 0
}

func runReload(args []string) int {
	const what = "Make a running watcher re-read its config file."
	client, code := parseControl("reload", what, args)
	if client == nil {
		return code
	}
	data, err := client.Reload()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintf(stdout, "reloaded (threshold %dpx)\n", data.Threshold)
	return 0
}

// parseControl parses the shared flags. A nil client means return code.
func parseControl(name, what string, args []string) (*ipc.Client, int) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printControlUsage(name, what) }
	display, socket := ctlFlags(fs)

	if isHelpArg(args) {
		printControlUsage(name, what)
		return nil, 0
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, 0
		}
		return nil, 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "%s takes no arguments\n", name)
		return nil, 2
	}
	client, err := dialWatcher(*display, *socket)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return nil, 1
	}
	return client, 0
}
