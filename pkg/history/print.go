package history

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/chazu/voxmemento/pkg/scene"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Dump writes a plain text listing of every group and record to w.
func (s *Store) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, line := range s.lines() {
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// String returns the Dump listing.
func (s *Store) String() string {
	var buf bytes.Buffer
	_ = s.Dump(&buf)
	return buf.String()
}

// Print writes the Dump listing to the logger at info level, one entry
// per line.
func (s *Store) Print() {
	for _, line := range s.lines() {
		s.log.Info(line)
	}
}

func (s *Store) lines() []string {
	out := []string{fmt.Sprintf("Current memento state index: %d", s.cursor)}
	for i, g := range s.groups {
		marker := ""
		if i == s.cursor {
			marker = " <- current"
		}
		out = append(out, fmt.Sprintf("Group %d: %s (%s)%s", i, g.Name, g.ID, marker))
		for _, r := range g.Records {
			out = appendRecord(out, r)
		}
	}
	return out
}

func appendRecord(out []string, r Record) []string {
	out = append(out,
		fmt.Sprintf("%s: node id: %d", r.Kind(), r.NodeID),
		fmt.Sprintf(" - parent: %d", r.ParentID),
		fmt.Sprintf(" - reference: %d", r.ReferenceID),
		fmt.Sprintf(" - name: %s", r.Name),
		fmt.Sprintf(" - type: %s", r.NodeType),
	)
	if r.Kind().carriesVolume() {
		snap, _ := r.Volume()
		out = append(out,
			fmt.Sprintf(" - volume: %s", snap),
			fmt.Sprintf(" - modified region: %s", r.ModifiedRegion()),
		)
	}
	out = append(out,
		fmt.Sprintf(" - region: %s", r.Region),
		fmt.Sprintf(" - pivot: %s", formatVec(r.Pivot)),
		fmt.Sprintf(" - translation: %s", formatVec(r.LocalMatrix.MulPosition(v3.Vec{}))),
		fmt.Sprintf(" - key frame index: %d", r.KeyFrameIndex),
	)
	if p := r.Palette(); p != nil {
		out = append(out, fmt.Sprintf(" - palette: %s", p))
	}
	if kf := r.KeyFrames(); kf != nil {
		out = appendKeyFrames(out, kf)
	}
	if props := r.Properties(); props != nil {
		out = appendProperties(out, props)
	}
	return out
}

func appendKeyFrames(out []string, kf scene.KeyFrames) []string {
	out = append(out, " - key frames")
	for _, anim := range kf.Animations() {
		out = append(out, "   - animation: "+anim)
		for _, f := range kf[anim] {
			out = append(out,
				fmt.Sprintf("     - frame: %d", f.FrameIdx),
				fmt.Sprintf("       - interpolation: %s", f.Interpolation),
				fmt.Sprintf("       - long rotation: %t", f.LongRotation),
				fmt.Sprintf("       - translation: %s", formatVec(f.LocalMatrix.MulPosition(v3.Vec{}))),
			)
		}
	}
	return out
}

func formatVec(v v3.Vec) string {
	return fmt.Sprintf("%.3f:%.3f:%.3f", v.X, v.Y, v.Z)
}

func appendProperties(out []string, props scene.Properties) []string {
	if len(props) == 0 {
		return append(out, " - properties: none")
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out = append(out, " - properties")
	for _, k := range keys {
		out = append(out, fmt.Sprintf("   - %s: %s", k, props[k]))
	}
	return out
}
