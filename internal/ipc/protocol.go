package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandGetStatus   CommandType = "GET_STATUS"
	CommandGetLayout   CommandType = "GET_LAYOUT"
	CommandGetMonitors CommandType = "GET_MONITORS"
	CommandCancel      CommandType = "CANCEL"
	CommandReload      CommandType = "RELOAD"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	Phase         string `json:"phase"`
	Grabbed       string `json:"grabbed,omitempty"`
	Windows       int    `json:"windows"`
	Snapped       int    `json:"snapped"`
	Threshold     int    `json:"threshold"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// RectInfo is a rectangle in screen pixels.
type RectInfo struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// OccupantInfo is one snapped window and its resolved rectangle.
type OccupantInfo struct {
	ID   string   `json:"id"`
	Rect RectInfo `json:"rect"`
}

// LayoutData represents the data returned by GET_LAYOUT
type LayoutData struct {
	Viewport  RectInfo       `json:"viewport"`
	Tree      string         `json:"tree"`
	Occupants []OccupantInfo `json:"occupants"`
}

// MonitorInfo represents information about a single monitor
type MonitorInfo struct {
	ID     int      `json:"id"`
	Name   string   `json:"name"`
	Bounds RectInfo `json:"bounds"`
	Usable RectInfo `json:"usable"`
	Active bool     `json:"active,omitempty"`
}

// MonitorsData represents the data returned by GET_MONITORS
type MonitorsData struct {
	Monitors []MonitorInfo `json:"monitors"`
}

// ReloadData reports the threshold in effect after RELOAD.
type ReloadData struct {
	Threshold int `json:"threshold"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data any) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
