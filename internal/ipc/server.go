package ipc

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sort"
	"sync"

	"github.com/1broseidon/snaptile/internal/platform"
	"github.com/1broseidon/snaptile/internal/tiling"
	"github.com/1broseidon/snaptile/internal/watch"
)

// Target is what the server inspects and controls, normally a running
// watch.Watcher plus a config reloader.
type Target interface {
	Snapshot() watch.Snapshot
	Cancel()
	// Reload re-reads configuration and returns the threshold now in effect.
	Reload() (int, error)
}

// Server handles IPC requests from clients
type Server struct {
	socketPath string
	listener   net.Listener
	target     Target
	backend    platform.Backend
	log        *slog.Logger

	shuttingDown bool
	shutdownMu   sync.Mutex
	wg           sync.WaitGroup
}

// NewServer creates a server for socketPath. backend may be nil, in which
// case GET_MONITORS reports an error.
func NewServer(socketPath string, target Target, backend platform.Backend, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		socketPath: socketPath,
		target:     target,
		backend:    backend,
		log:        logger.With("component", "ipc"),
	}
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	// Remove a stale socket left by a crashed watcher.
	os.Remove(s.socketPath)

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.log.Info("IPC server listening", "socket", s.socketPath)

	s.wg.Add(1)
	go s.acceptLoop()
	return nil
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string {
	return s.socketPath
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			stopping := s.shuttingDown
			s.shutdownMu.Unlock()
			if stopping {
				return
			}
			s.log.Warn("IPC accept error", "err", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection serves one newline-terminated JSON request.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	data, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.log.Warn("IPC read error", "err", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.write(conn, NewErrorResponse(fmt.Sprintf("Invalid request: %v", err)))
		return
	}
	s.write(conn, s.handleCommand(req))
}

func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandGetLayout:
		return s.handleGetLayout()
	case CommandGetMonitors:
		return s.handleGetMonitors()
	case CommandCancel:
		s.log.Info("IPC: cancel requested")
		s.target.Cancel()
		resp, _ := NewOKResponse(nil)
		return resp
	case CommandReload:
		return s.handleReload()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handleGetStatus() *Response {
	snap := s.target.Snapshot()
	resp, _ := NewOKResponse(StatusData{
		Phase:         snap.Phase.String(),
		Grabbed:       string(snap.Grabbed),
		Windows:       snap.Windows,
		Snapped:       snap.Snapped,
		Threshold:     snap.Threshold,
		UptimeSeconds: int64(snap.Uptime.Seconds()),
	})
	return resp
}

func (s *Server) handleGetLayout() *Response {
	snap := s.target.Snapshot()
	data := LayoutData{
		Viewport:  rectInfo(snap.Viewport),
		Tree:      snap.Tree,
		Occupants: make([]OccupantInfo, 0, len(snap.Occupants)),
	}
	for id, r := range snap.Occupants {
		data.Occupants = append(data.Occupants, OccupantInfo{ID: string(id), Rect: rectInfo(r)})
	}
	sort.Slice(data.Occupants, func(i, j int) bool {
		return data.Occupants[i].ID < data.Occupants[j].ID
	})
	resp, _ := NewOKResponse(data)
	return resp
}

func (s *Server) handleGetMonitors() *Response {
	if s.backend == nil {
		return NewErrorResponse("no display backend")
	}
	displays, err := s.backend.Displays()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to get monitors: %v", err))
	}
	active, activeErr := s.backend.ActiveDisplay()

	infos := make([]MonitorInfo, len(displays))
	for i, d := range displays {
		infos[i] = MonitorInfo{
			ID:     d.ID,
			Name:   d.Name,
			Bounds: RectInfo{X: d.Bounds.X, Y: d.Bounds.Y, Width: d.Bounds.Width, Height: d.Bounds.Height},
			Usable: RectInfo{X: d.Usable.X, Y: d.Usable.Y, Width: d.Usable.Width, Height: d.Usable.Height},
			Active: activeErr == nil && d.ID == active.ID,
		}
	}
	resp, _ := NewOKResponse(MonitorsData{Monitors: infos})
	return resp
}

func (s *Server) handleReload() *Response {
	threshold, err := s.target.Reload()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
	}
	s.log.Info("IPC: config reloaded", "threshold", threshold)
	resp, _ := NewOKResponse(ReloadData{Threshold: threshold})
	return resp
}

func (s *Server) write(conn net.Conn, resp *Response) {
	data, err := resp.Marshal()
	if err != nil {
		s.log.Warn("failed to marshal response", "err", err)
		return
	}
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		s.log.Warn("failed to send response", "err", err)
	}
}

// Stop closes the listener, waits for the accept loop and removes the socket.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
		s.wg.Wait()
	}
	os.Remove(s.socketPath)
}

func rectInfo(r tiling.Rect) RectInfo {
	return RectInfo{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}
