package scenario

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/1broseidon/snaptile/internal/tiling"
)

// StepResult records what one step did.
type StepResult struct {
	Index   int    `yaml:"index"`
	Name    string `yaml:"name,omitempty"`
	Kind    Kind   `yaml:"kind"`
	Applied bool   `yaml:"applied"`
	Detail  string `yaml:"detail"`
}

// Report is the outcome of a replay.
type Report struct {
	Steps    []StepResult                      `yaml:"steps"`
	Final    map[tiling.OccupantID]tiling.Rect `yaml:"final"`
	Tree     string                            `yaml:"tree"`
	Failures []string                          `yaml:"failures,omitempty"`
}

// Passed reports whether every expect step held.
func (r *Report) Passed() bool {
	return len(r.Failures) == 0
}

// Run applies doc's steps to eng in order. Rejected mutations are recorded,
// not fatal; failed expectations land in Report.Failures. The context is
// checked between steps.
func Run(ctx context.Context, doc *Document, eng *tiling.Engine) (*Report, error) {
	report := &Report{}
	for i, step := range doc.Steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		res := StepResult{Index: i, Name: step.Name, Kind: step.Kind()}
		switch res.Kind {
		case KindInsert:
			res.Applied, res.Detail = runInsert(eng, step.Insert)
		case KindDrop:
			res.Applied, res.Detail = runDrop(eng, step.Drop)
		case KindRemove:
			res.Applied = eng.Remove(tiling.OccupantID(step.Remove.Occupant))
			res.Detail = step.Remove.Occupant
			if !res.Applied {
				res.Detail += " is not snapped"
			}
		case KindResize:
			vp := eng.Viewport()
			vp.Width, vp.Height = step.Resize.Width, step.Resize.Height
			eng.SetViewport(vp)
			res.Applied = true
			res.Detail = fmt.Sprintf("%dx%d", vp.Width, vp.Height)
		case KindPreview:
			pt := tiling.Point{X: step.Preview.X, Y: step.Preview.Y}
			preview, ok := eng.Preview(pt)
			res.Applied = true
			res.Detail = fmt.Sprintf("(%d,%d) -> %s", pt.X, pt.Y, describePreview(preview, ok))
		case KindExpect:
			failures := checkExpect(eng, step.Expect)
			res.Applied = len(failures) == 0
			res.Detail = "ok"
			if len(failures) > 0 {
				res.Detail = strings.Join(failures, "; ")
				for _, f := range failures {
					report.Failures = append(report.Failures, fmt.Sprintf("steps[%d]: %s", i, f))
				}
			}
		default:
			return report, &StepError{Index: i, Err: fmt.Errorf("step has no single action")}
		}
		report.Steps = append(report.Steps, res)
	}

	report.Final = eng.OccupantBounds()
	report.Tree = tiling.Dump(eng.Root())
	return report, nil
}

func runInsert(eng *tiling.Engine, step *InsertStep) (bool, string) {
	side, err := tiling.ParseSide(step.Side)
	if err != nil {
		return false, err.Error()
	}
	target := tiling.NoNode
	where := "viewport"
	if step.TargetOccupant != "" {
		leaf := tiling.FindOccupant(eng.Root(), tiling.OccupantID(step.TargetOccupant))
		if leaf == nil {
			return false, fmt.Sprintf("target %s is not snapped", step.TargetOccupant)
		}
		target = leaf.ID
		where = step.TargetOccupant
	}
	if !eng.Insert(tiling.OccupantID(step.Occupant), target, side) {
		return false, fmt.Sprintf("%s rejected at %s %s", step.Occupant, where, side)
	}
	return true, fmt.Sprintf("%s at %s %s", step.Occupant, where, side)
}

func runDrop(eng *tiling.Engine, step *DropStep) (bool, string) {
	pt := tiling.Point{X: step.X, Y: step.Y}
	preview, ok := eng.Drop(tiling.OccupantID(step.Occupant), pt)
	if !ok {
		return false, fmt.Sprintf("%s at (%d,%d) -> no snap", step.Occupant, pt.X, pt.Y)
	}
	return true, fmt.Sprintf("%s at (%d,%d) -> %s", step.Occupant, pt.X, pt.Y, describePreview(preview, true))
}

func describePreview(p tiling.SnapPreview, ok bool) string {
	if !ok {
		return "none"
	}
	where := "viewport"
	if !p.ViewportEdge() {
		where = fmt.Sprintf("node %d", p.Target)
	}
	return fmt.Sprintf("%s %s %s", where, p.Side, formatRect(p.Rect))
}

func checkExpect(eng *tiling.Engine, exp *ExpectStep) []string {
	var failures []string
	if exp.Empty != nil {
		empty := eng.Root() == nil
		if empty != *exp.Empty {
			failures = append(failures, fmt.Sprintf("empty = %v, want %v", empty, *exp.Empty))
		}
	}

	bounds := eng.OccupantBounds()
	keys := make([]string, 0, len(exp.Bounds))
	for occ := range exp.Bounds {
		keys = append(keys, occ)
	}
	sort.Strings(keys)
	for _, occ := range keys {
		b := exp.Bounds[occ]
		want := tiling.Rect{X: b[0], Y: b[1], Width: b[2], Height: b[3]}
		got, ok := bounds[tiling.OccupantID(occ)]
		switch {
		case !ok:
			failures = append(failures, fmt.Sprintf("%s is not snapped", occ))
		case got != want:
			failures = append(failures, fmt.Sprintf("%s = %s, want %s", occ, formatRect(got), formatRect(want)))
		}
	}

	if exp.Occupants != nil {
		got := eng.Occupants()
		gotStr := make([]string, len(got))
		for i, o := range got {
			gotStr[i] = string(o)
		}
		if strings.Join(gotStr, ",") != strings.Join(exp.Occupants, ",") {
			failures = append(failures, fmt.Sprintf("occupants = [%s], want [%s]", strings.Join(gotStr, " "), strings.Join(exp.Occupants, " ")))
		}
	}
	return failures
}

func formatRect(r tiling.Rect) string {
	return fmt.Sprintf("[%d %d %d %d]", r.X, r.Y, r.Width, r.Height)
}
