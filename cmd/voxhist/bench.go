package main

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/chazu/voxmemento/pkg/history"
	"github.com/chazu/voxmemento/pkg/replay"
	"github.com/chazu/voxmemento/pkg/scene"
	"github.com/chazu/voxmemento/pkg/voxel"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var (
	benchEdits   int
	benchSize    int
	benchCodec   string
	benchMetrics bool

	benchCmd = &cobra.Command{
		Use:   "bench",
		Short: "Record N voxel edits, undo them all and redo them all",
		RunE:  runBench,
	}
)

func init() {
	benchCmd.Flags().IntVarP(&benchEdits, "edits", "n", 100, "number of modifications to record")
	benchCmd.Flags().IntVar(&benchSize, "size", 32, "diameter of the voxelised sphere")
	benchCmd.Flags().StringVar(&benchCodec, "codec", "", "snapshot codec (zlib, zstd, s2); overrides the config")
	benchCmd.Flags().BoolVar(&benchMetrics, "metrics", false, "print the history metrics after the run")
}

func runBench(cmd *cobra.Command, args []string) error {
	if benchEdits <= 0 || benchSize <= 1 {
		return fmt.Errorf("bench: --edits must be positive and --size at least 2")
	}
	if benchCodec != "" {
		cfg.History.Codec = benchCodec
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	reg := prometheus.NewRegistry()
	s, err := newStore(logger, history.WithMetrics(history.NewMetrics(reg)))
	if err != nil {
		return err
	}
	defer s.Shutdown()

	g := scene.NewGraph()
	n, err := sphereNode("sphere", benchSize, 1)
	if err != nil {
		return err
	}
	g.AddNode(n, scene.RootID)
	s.RecordInitialScene(g)
	original := n.Volume.Clone()

	region := n.Volume.Region()
	start := time.Now()
	for i := 0; i < benchEdits; i++ {
		x := region.Lower.X + i%region.Width()
		y := region.Lower.Y + (i/region.Width())%region.Height()
		stroke := voxel.NewRegion(x, y, region.Lower.Z, x, y, region.Upper.Z)
		paint(n.Volume, stroke, uint8(2+i%200))
		s.RecordModification(history.StateOf(n, 0), n.Volume, stroke)
	}
	recordTime := time.Since(start)
	edited := n.Volume.Clone()

	applier := &replay.Applier{Graph: g, Store: s, Log: logger}
	start = time.Now()
	undone, err := drain(applier.Undo)
	if err != nil {
		return err
	}
	undoTime := time.Since(start)
	restored := g.Get(n.ID).Volume.Equal(original)

	start = time.Now()
	redone, err := drain(applier.Redo)
	if err != nil {
		return err
	}
	redoTime := time.Since(start)
	reapplied := g.Get(n.ID).Volume.Equal(edited)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "codec:            %s\n", s.Codec().Name())
	fmt.Fprintf(out, "volume:           %s (%d voxels)\n", region, region.Voxels())
	fmt.Fprintf(out, "groups:           %d\n", s.Len())
	fmt.Fprintf(out, "snapshot bytes:   %d (raw %d per snapshot)\n", snapshotBytes(s), region.Voxels()*voxel.BytesPerVoxel)
	fmt.Fprintf(out, "record:           %s (%s/edit)\n", recordTime, recordTime/time.Duration(benchEdits))
	fmt.Fprintf(out, "undo:             %d steps in %s, restored=%t\n", undone, undoTime, restored)
	fmt.Fprintf(out, "redo:             %d steps in %s, reapplied=%t\n", redone, redoTime, reapplied)
	if benchMetrics {
		return printMetrics(out, reg)
	}
	return nil
}

// drain calls step until it reports no more work.
func drain(step func() (bool, error)) (int, error) {
	n := 0
	for {
		ok, err := step()
		if err != nil {
			return n, err
		}
		if !ok {
			return n, nil
		}
		n++
	}
}

func snapshotBytes(s *history.Store) int {
	total := 0
	for _, g := range s.Groups() {
		for _, r := range g.Records {
			if snap, ok := r.Volume(); ok {
				total += snap.Size()
			}
		}
	}
	return total
}

func printMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("bench: gather metrics: %w", err)
	}
	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := ""
			for _, lp := range m.GetLabel() {
				labels += fmt.Sprintf(" %s=%s", lp.GetName(), lp.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				fmt.Fprintf(w, "%s%s %g\n", mf.GetName(), labels, m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				fmt.Fprintf(w, "%s%s %g\n", mf.GetName(), labels, m.GetGauge().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				fmt.Fprintf(w, "%s%s count=%d sum=%g\n", mf.GetName(), labels, h.GetSampleCount(), h.GetSampleSum())
			}
		}
	}
	return nil
}
