// Package scenario replays scripted layout sessions against a tiling engine.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/snaptile/internal/tiling"
)

// Document is a replay file.
type Document struct {
	Viewport      *Size  `yaml:"viewport,omitempty"`
	SnapThreshold *int   `yaml:"snap_threshold,omitempty"`
	Steps         []Step `yaml:"steps"`
}

type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Step holds exactly one action.
type Step struct {
	Name    string      `yaml:"name,omitempty"`
	Insert  *InsertStep `yaml:"insert,omitempty"`
	Drop    *DropStep   `yaml:"drop,omitempty"`
	Remove  *RemoveStep `yaml:"remove,omitempty"`
	Resize  *Size       `yaml:"resize,omitempty"`
	Preview *PointStep  `yaml:"preview,omitempty"`
	Expect  *ExpectStep `yaml:"expect,omitempty"`
}

type InsertStep struct {
	Occupant string `yaml:"occupant"`
	Side     string `yaml:"side"`
	// TargetOccupant names the snapped occupant whose leaf is split.
	// Empty means the viewport edge.
	TargetOccupant string `yaml:"target_occupant,omitempty"`
}

type DropStep struct {
	Occupant string `yaml:"occupant"`
	X        int    `yaml:"x"`
	Y        int    `yaml:"y"`
}

type RemoveStep struct {
	Occupant string `yaml:"occupant"`
}

type PointStep struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// ExpectStep asserts on the current layout. Bounds values are [x, y, width, height].
type ExpectStep struct {
	Bounds    map[string][]int `yaml:"bounds,omitempty"`
	Empty     *bool            `yaml:"empty,omitempty"`
	Occupants []string         `yaml:"occupants,omitempty"`
}

// Kind names the action a step carries.
type Kind string

const (
	KindInsert  Kind = "insert"
	KindDrop    Kind = "drop"
	KindRemove  Kind = "remove"
	KindResize  Kind = "resize"
	KindPreview Kind = "preview"
	KindExpect  Kind = "expect"
)

// Kind returns the step's action, or "" if it has none or several.
func (s Step) Kind() Kind {
	var kinds []Kind
	if s.Insert != nil {
		kinds = append(kinds, KindInsert)
	}
	if s.Drop != nil {
		kinds = append(kinds, KindDrop)
	}
	if s.Remove != nil {
		kinds = append(kinds, KindRemove)
	}
	if s.Resize != nil {
		kinds = append(kinds, KindResize)
	}
	if s.Preview != nil {
		kinds = append(kinds, KindPreview)
	}
	if s.Expect != nil {
		kinds = append(kinds, KindExpect)
	}
	if len(kinds) != 1 {
		return ""
	}
	return kinds[0]
}

// StepError reports an invalid step by index.
type StepError struct {
	Index int
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("steps[%d]: %v", e.Index, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Load reads and validates a replay file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a replay document with unknown keys rejected.
func Parse(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks structure only; whether an occupant exists is decided at replay time.
func (d *Document) Validate() error {
	if d.Viewport != nil && (d.Viewport.Width < 1 || d.Viewport.Height < 1) {
		return fmt.Errorf("viewport must be at least 1x1, got %dx%d", d.Viewport.Width, d.Viewport.Height)
	}
	if d.SnapThreshold != nil && *d.SnapThreshold < 1 {
		return fmt.Errorf("snap_threshold must be >= 1")
	}
	for i, step := range d.Steps {
		if err := validateStep(step); err != nil {
			return &StepError{Index: i, Err: err}
		}
	}
	return nil
}

func validateStep(step Step) error {
	switch step.Kind() {
	case KindInsert:
		if step.Insert.Occupant == "" {
			return fmt.Errorf("insert: occupant is required")
		}
		if _, err := tiling.ParseSide(step.Insert.Side); err != nil {
			return fmt.Errorf("insert: %w", err)
		}
	case KindDrop:
		if step.Drop.Occupant == "" {
			return fmt.Errorf("drop: occupant is required")
		}
	case KindRemove:
		if step.Remove.Occupant == "" {
			return fmt.Errorf("remove: occupant is required")
		}
	case KindResize:
		if step.Resize.Width < 0 || step.Resize.Height < 0 {
			return fmt.Errorf("resize: size must not be negative")
		}
	case KindPreview:
	case KindExpect:
		for occ, b := range step.Expect.Bounds {
			if len(b) != 4 {
				return fmt.Errorf("expect: bounds for %q must be [x, y, width, height]", occ)
			}
		}
	default:
		return fmt.Errorf("step must contain exactly one of insert, drop, remove, resize, preview, expect")
	}
	return nil
}

// NewEngine builds an engine for d, falling back to the given viewport and threshold.
func (d *Document) NewEngine(viewport tiling.Rect, threshold int) *tiling.Engine {
	if d.Viewport != nil {
		viewport = tiling.Rect{Width: d.Viewport.Width, Height: d.Viewport.Height}
	}
	if d.SnapThreshold != nil {
		threshold = *d.SnapThreshold
	}
	return tiling.NewEngine(tiling.WithViewport(viewport), tiling.WithSnapThreshold(threshold))
}
