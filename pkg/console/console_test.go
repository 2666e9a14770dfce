package console

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/voxmemento/pkg/history"
	"github.com/chazu/voxmemento/pkg/scene"
	"github.com/chazu/voxmemento/pkg/voxel"
)

func demoStore(t *testing.T) *history.Store {
	t.Helper()
	s := history.New(history.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	vol := voxel.NewRawVolume(voxel.Cube(0, 3))
	n := history.NodeState{NodeID: 1, ParentID: scene.RootID, ReferenceID: scene.InvalidNodeID, Name: "model"}
	require.True(t, s.RecordNodeAdded(n, vol, nil, nil, nil))
	vol.SetVoxel(1, 1, 1, voxel.Create(voxel.MaterialGeneric, 3))
	s.WithGroup("paint", func() {
		require.True(t, s.RecordModification(n, vol, voxel.Cube(1, 1)))
		n.Name = "painted"
		require.True(t, s.RecordNodeRenamed(n))
	})
	return s
}

func TestEvalBuiltins(t *testing.T) {
	c := New(demoStore(t), time.Second)

	tests := []struct {
		source string
		want   string
	}{
		{"(memento-size)", "2"},
		{"(memento-position)", "1"},
		{"(can-undo)", "true"},
		{"(can-redo)", "false"},
		{"(def n (memento-size)) (+ n 1)", "3"},
		{"; comment first\n(memento-size)", "2"},
		{"; a \"quoted comment\n(memento-size)", "2"},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			out, evalErrs, err := c.Eval(tt.source)
			require.NoError(t, err)
			require.Empty(t, evalErrs)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestEvalGroupKinds(t *testing.T) {
	c := New(demoStore(t), time.Second)
	out, evalErrs, err := c.Eval("(memento-group 1)")
	require.NoError(t, err)
	require.Empty(t, evalErrs)
	assert.Contains(t, out, "Modification")
	assert.Contains(t, out, "SceneNodeRenamed")
}

func TestEvalInfoReturnsDump(t *testing.T) {
	s := demoStore(t)
	c := New(s, time.Second)
	out, evalErrs, err := c.Eval("(memento-info)")
	require.NoError(t, err)
	require.Empty(t, evalErrs)
	assert.Equal(t, s.String(), out)
	assert.Contains(t, out, "Current memento state index")
}

func TestEvalEmpty(t *testing.T) {
	out, evalErrs, err := New(demoStore(t), 0).Eval("  \n ")
	require.NoError(t, err)
	assert.Empty(t, evalErrs)
	assert.Empty(t, out)
}

func TestEvalErrors(t *testing.T) {
	c := New(demoStore(t), time.Second)
	for _, src := range []string{
		"(memento-size",
		"(memento-size 1)",
		"(memento-group 99)",
		`(memento-group "one")`,
		"(undefined-thing)",
	} {
		t.Run(src, func(t *testing.T) {
			_, evalErrs, err := c.Eval(src)
			require.NoError(t, err)
			assert.NotEmpty(t, evalErrs)
		})
	}
}

func TestEvalDoesNotMutateStore(t *testing.T) {
	s := demoStore(t)
	before := s.String()
	_, _, err := New(s, time.Second).Eval("(memento-info) (memento-group 0) (can-undo)")
	require.NoError(t, err)
	assert.Equal(t, before, s.String())
}

func TestWaitWithTimeout(t *testing.T) {
	var mu sync.Mutex
	gen := uint64(1)

	_, _, err := waitWithTimeout(make(chan evalResult), 1, 10*time.Millisecond, &mu, &gen)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")

	ch := make(chan evalResult, 1)
	ch <- evalResult{value: "old"}
	gen = 2
	_, _, err = waitWithTimeout(ch, 1, time.Second, &mu, &gen)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "superseded")
}

func TestPreprocessSource(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"(can-undo)", "(can_undo)"},
		{"(- 3 1)", "(- 3 1)"},
		{"(- x-1 2)", "(- x-1 2)"},
		{`(memento-info) "keep-this"`, `(memento_info) "keep-this"`},
		{";; note\n(a-b)", "// note\n(a_b)"},
		{"; say \"hi\n(memento-size)", "// say \"hi\n(memento_size)"},
		{"; keep-this\n", "// keep-this\n"},
		{`"unterminated-`, `"unterminated-`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, preprocessSource(tt.in), tt.in)
	}
}

func TestParseZygomysError(t *testing.T) {
	errs := parseZygomysError(errString("Error on line 5: unexpected token\n"))
	require.Len(t, errs, 1)
	assert.Equal(t, 5, errs[0].Line)
	assert.Equal(t, "line 5: unexpected token", errs[0].Error())

	errs = parseZygomysError(errString("boom"))
	assert.Equal(t, EvalError{Message: "boom"}, errs[0])
}

type errString string

func (e errString) Error() string { return string(e) }
