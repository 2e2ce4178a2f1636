package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/multilayer/pkg/config"
	mlerrors "github.com/matzehuels/multilayer/pkg/errors"
)

// isolate runs the test in an empty directory with no user config.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(&bytes.Buffer{}, log.InfoLevel)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"html"}},
		{"json", []string{"json"}},
		{"html, json,svg", []string{"html", "json", "svg"}},
		{"html,,json", []string{"html", "json"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseFormats(tt.in), "parseFormats(%q)", tt.in)
	}
}

func TestDisplayAddr(t *testing.T) {
	assert.Equal(t, ":8080", displayAddr(":8080"))
	assert.Equal(t, ":9000", displayAddr("0.0.0.0:9000"))
	assert.Equal(t, ":80", displayAddr("80"))
}

func TestStatsLine(t *testing.T) {
	line := statsLine(5, 30, 52, 60, 42)
	for _, want := range []string{"5 layers", "30 nodes", "52 edges", "61 frames", "seed 42"} {
		assert.Contains(t, line, want)
	}
}

func TestGenerateWritesArtifacts(t *testing.T) {
	dir := isolate(t)

	_, err := run(t, "generate", "--seed", "9", "--layers", "2", "-f", "html,json", "-o", "out/graph")
	require.NoError(t, err)

	html, err := os.ReadFile(filepath.Join(dir, "out", "graph.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "(seed 9)")

	data, err := os.ReadFile(filepath.Join(dir, "out", "graph.json"))
	require.NoError(t, err)
	var doc struct {
		Seed   uint64 `json:"seed"`
		Layers []any  `json:"layers"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, uint64(9), doc.Seed)
	assert.Len(t, doc.Layers, 2)
}

func TestGenerateUsesConfigFile(t *testing.T) {
	dir := isolate(t)
	cfgPath := filepath.Join(dir, "ml.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("num_layers: 3\nseed: 4\nformats: [json]\noutput: from_config\n"), 0o644))

	_, err := run(t, "generate", "-c", cfgPath)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "from_config.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"seed": 4`)
	assert.NoFileExists(t, filepath.Join(dir, "from_config.html"))
}

func TestGenerateFlagsOverrideConfig(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "multilayer.toml"), []byte("num_layers = 4\nseed = 1\nformats = [\"json\"]\n"), 0o644))

	_, err := run(t, "generate", "--layers", "2")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, config.DefaultOutput+".json"))
	require.NoError(t, err)
	var doc struct {
		Layers []any `json:"layers"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Len(t, doc.Layers, 2)
}

func TestGenerateRejectsBadInput(t *testing.T) {
	isolate(t)

	tests := []struct {
		args []string
		code mlerrors.Code
	}{
		{[]string{"generate", "--layers", "0"}, mlerrors.ErrCodeInvalidConfig},
		{[]string{"generate", "-f", "gif"}, mlerrors.ErrCodeInvalidFormat},
		{[]string{"generate", "--layout", "grid"}, mlerrors.ErrCodeInvalidLayout},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.code, mlerrors.GetCode(err))
		})
	}
}

func TestConfigInitAndShow(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "conf", "multilayer.toml")

	_, err := run(t, "config", "init", path)
	require.NoError(t, err)
	require.FileExists(t, path)

	_, err = run(t, "config", "init", path)
	require.Error(t, err, "init must not overwrite without --force")

	out, err := run(t, "config", "show", "-c", path)
	require.NoError(t, err)
	assert.Contains(t, out, "num_layers = 5")

	out, err = run(t, "config", "show", "-c", path, "--yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "num_layers: 5")
}

func TestConfigShowDefaults(t *testing.T) {
	isolate(t)

	out, err := run(t, "config", "show")
	require.NoError(t, err)

	cfg, err := config.Parse([]byte(out), config.FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Hash(), cfg.Hash())
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, log.InfoLevel).RootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"generate", "serve", "config", "completion"} {
		assert.Contains(t, names, want)
	}
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, err := run(t, "completion", shell)
			require.NoError(t, err)
			assert.Contains(t, out, "multilayer")
		})
	}

	_, err := run(t, "completion", "tcsh")
	assert.Error(t, err)
}
