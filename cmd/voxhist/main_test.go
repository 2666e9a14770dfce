package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/voxmemento/pkg/config"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cfg = config.Default()
	configPath, configFile, consoleExpr, benchCodec = "", "", "", ""
	benchMetrics = false

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestConfigCommand(t *testing.T) {
	out, err := run(t, "", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "codec: zlib")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("history:\n  codec: lzma\n"), 0o644))
	_, err = run(t, "", "config", "--file", path)
	assert.Error(t, err)
}

func TestConsoleCommand(t *testing.T) {
	out, err := run(t, "", "console", "-e", "(memento-size)")
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)

	out, err = run(t, "(can-undo)\n\n(can-redo)\n", "console")
	require.NoError(t, err)
	assert.Equal(t, "true\nfalse\n", out)

	_, err = run(t, "", "console", "-e", "(memento-group 42)")
	assert.Error(t, err)
}

func TestBenchCommand(t *testing.T) {
	for _, codec := range []string{"zlib", "zstd", "s2"} {
		t.Run(codec, func(t *testing.T) {
			out, err := run(t, "", "bench", "--edits", "5", "--size", "6", "--codec", codec, "--metrics")
			require.NoError(t, err)
			assert.Contains(t, out, "codec:            "+codec)
			assert.Contains(t, out, "undo:             5 steps")
			assert.Contains(t, out, "restored=true")
			assert.Contains(t, out, "reapplied=true")
			assert.Contains(t, out, "voxmemento_records_total kind=Modification 5")
		})
	}

	_, err := run(t, "", "bench", "--codec", "lzma")
	assert.Error(t, err)
}
