package scenario

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/snaptile/internal/tiling"
)

// WriteText renders r as a step log followed by final bounds and the tree.
func WriteText(w io.Writer, r *Report) error {
	var sb strings.Builder
	for _, step := range r.Steps {
		mark := "ok"
		if !step.Applied {
			mark = "--"
			if step.Kind == KindExpect {
				mark = "FAIL"
			}
		}
		label := string(step.Kind)
		if step.Name != "" {
			label += " " + step.Name
		}
		fmt.Fprintf(&sb, "%3d  %-4s  %-20s %s\n", step.Index, mark, label, step.Detail)
	}

	sb.WriteString("\nfinal:\n")
	if len(r.Final) == 0 {
		sb.WriteString("  (empty)\n")
	}
	for _, occ := range sortedOccupants(r.Final) {
		fmt.Fprintf(&sb, "  %-12s %s\n", occ, formatRect(r.Final[occ]))
	}

	sb.WriteString("\ntree:\n")
	for _, line := range strings.Split(strings.TrimRight(r.Tree, "\n"), "\n") {
		sb.WriteString("  " + line + "\n")
	}

	if len(r.Failures) > 0 {
		fmt.Fprintf(&sb, "\n%d expectation(s) failed:\n", len(r.Failures))
		for _, f := range r.Failures {
			sb.WriteString("  " + f + "\n")
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteYAML renders r as a YAML document.
func WriteYAML(w io.Writer, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}

func sortedOccupants(m map[tiling.OccupantID]tiling.Rect) []tiling.OccupantID {
	out := make([]tiling.OccupantID, 0, len(m))
	for occ := range m {
		out = append(out, occ)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
