// Package config loads generator settings from TOML or YAML files.
//
// Every key is optional; a file only needs the values it changes. Keys use
// the snake_case names shown by `multilayer config init`:
//
//	num_layers = 5
//	min_nodes_per_layer = 4
//	max_nodes_per_layer = 10
//	interlayer_edges = 3
//	formats = ["html", "json"]
//
// Unknown keys are rejected so typos do not silently fall back to defaults.
package config

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mlerrors "github.com/matzehuels/multilayer/pkg/errors"
	"github.com/matzehuels/multilayer/pkg/pipeline"
)

// DefaultOutput is the base path artifacts are written to.
const DefaultOutput = "multilayer_graph"

// File formats accepted by [Load] and [Config.Encode].
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// Config holds every tunable of a generation run.
type Config struct {
	NumLayers         int      `toml:"num_layers" yaml:"num_layers" json:"num_layers"`
	MinNodes          int      `toml:"min_nodes_per_layer" yaml:"min_nodes_per_layer" json:"min_nodes_per_layer"`
	MaxNodes          int      `toml:"max_nodes_per_layer" yaml:"max_nodes_per_layer" json:"max_nodes_per_layer"`
	MinEdges          int      `toml:"min_edges_per_layer" yaml:"min_edges_per_layer" json:"min_edges_per_layer"`
	MaxEdges          int      `toml:"max_edges_per_layer" yaml:"max_edges_per_layer" json:"max_edges_per_layer"`
	InterlayerEdges   int      `toml:"interlayer_edges" yaml:"interlayer_edges" json:"interlayer_edges"`
	AnimationSpeed    int      `toml:"animation_speed" yaml:"animation_speed" json:"animation_speed"`
	AllowDisconnected bool     `toml:"allow_disconnected_nodes" yaml:"allow_disconnected_nodes" json:"allow_disconnected_nodes"`
	Seed              uint64   `toml:"seed" yaml:"seed" json:"seed"`
	MaxAttempts       int      `toml:"max_attempts" yaml:"max_attempts" json:"max_attempts"`
	Layout            string   `toml:"layout" yaml:"layout" json:"layout"`
	LayoutIterations  int      `toml:"layout_iterations" yaml:"layout_iterations" json:"layout_iterations"`
	Title             string   `toml:"title" yaml:"title" json:"title"`
	Output            string   `toml:"output" yaml:"output" json:"output"`
	Formats           []string `toml:"formats" yaml:"formats" json:"formats"`
	HideAxes          bool     `toml:"hide_axes" yaml:"hide_axes" json:"hide_axes"`
	Detailed          bool     `toml:"detailed" yaml:"detailed" json:"detailed"`
	PNGScale          float64  `toml:"png_scale" yaml:"png_scale" json:"png_scale"`
	ScriptURL         string   `toml:"script_url" yaml:"script_url" json:"script_url"`
}

// Default returns the stock configuration.
func Default() *Config {
	o := pipeline.DefaultOptions()
	return &Config{
		NumLayers:         o.NumLayers,
		MinNodes:          o.MinNodes,
		MaxNodes:          o.MaxNodes,
		MinEdges:          o.MinEdges,
		MaxEdges:          o.MaxEdges,
		InterlayerEdges:   o.InterlayerEdges,
		AnimationSpeed:    o.AnimationSpeed,
		AllowDisconnected: o.AllowDisconnected,
		MaxAttempts:       o.MaxAttempts,
		Layout:            o.Layout,
		LayoutIterations:  o.LayoutIterations,
		Title:             o.Title,
		Output:            DefaultOutput,
		Formats:           o.Formats,
		PNGScale:          o.PNGScale,
	}
}

// Load reads path and decodes it onto [Default]. The decoder is chosen by
// extension: .toml, .yaml or .yml.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, mlerrors.Wrap(mlerrors.ErrCodeInvalidConfig, err, "read config")
	}

	format, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return nil, mlerrors.Wrap(mlerrors.ErrCodeInvalidConfig, err, "parse %s", filepath.Base(path))
	}
	return cfg, nil
}

// Parse decodes data in the given format onto [Default].
func Parse(data []byte, format string) (*Config, error) {
	cfg := Default()

	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, mlerrors.New(mlerrors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		return nil, mlerrors.New(mlerrors.ErrCodeInvalidConfig, "unsupported config format %q", format)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func formatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", mlerrors.New(mlerrors.ErrCodeInvalidConfig, "config file %s: want .toml, .yaml or .yml", path)
	}
}

// applyDefaults fills keys a file explicitly emptied.
func (c *Config) applyDefaults() {
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if len(c.Formats) == 0 {
		c.Formats = []string{pipeline.FormatHTML}
	}
}

// Validate checks the configuration without running anything.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Output) == "" {
		return mlerrors.New(mlerrors.ErrCodeInvalidConfig, "output must not be empty")
	}
	if c.AnimationSpeed < 0 {
		return mlerrors.New(mlerrors.ErrCodeInvalidConfig, "animation_speed must not be negative, got %d", c.AnimationSpeed)
	}
	if c.PNGScale < 0 {
		return mlerrors.New(mlerrors.ErrCodeInvalidConfig, "png_scale must not be negative, got %g", c.PNGScale)
	}
	opts := c.Options()
	return opts.ValidateAndSetDefaults()
}

// Options converts the configuration into pipeline options.
func (c *Config) Options() pipeline.Options {
	return pipeline.Options{
		NumLayers:         c.NumLayers,
		MinNodes:          c.MinNodes,
		MaxNodes:          c.MaxNodes,
		MinEdges:          c.MinEdges,
		MaxEdges:          c.MaxEdges,
		InterlayerEdges:   c.InterlayerEdges,
		AllowDisconnected: c.AllowDisconnected,
		MaxAttempts:       c.MaxAttempts,
		Seed:              c.Seed,
		Layout:            c.Layout,
		LayoutIterations:  c.LayoutIterations,
		Formats:           append([]string(nil), c.Formats...),
		Title:             c.Title,
		AnimationSpeed:    c.AnimationSpeed,
		HideAxes:          c.HideAxes,
		Detailed:          c.Detailed,
		PNGScale:          c.PNGScale,
		ScriptURL:         c.ScriptURL,
	}
}

// Hash returns the SHA-256 fingerprint of the configuration as 64 hex
// characters. Two configs with equal values hash equally regardless of the
// file format they came from.
func (c *Config) Hash() string {
	data, _ := json.Marshal(c)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Encode serializes the configuration as TOML or YAML.
func (c *Config) Encode(format string) ([]byte, error) {
	switch format {
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return nil, mlerrors.Wrap(mlerrors.ErrCodeInternal, err, "encode toml")
		}
		return buf.Bytes(), nil
	case FormatYAML:
		data, err := yaml.Marshal(c)
		if err != nil {
			return nil, mlerrors.Wrap(mlerrors.ErrCodeInternal, err, "encode yaml")
		}
		return data, nil
	default:
		return nil, mlerrors.New(mlerrors.ErrCodeInvalidConfig, "unsupported config format %q", format)
	}
}

// Save writes the configuration to path in the format implied by its
// extension.
func (c *Config) Save(path string) error {
	format, err := formatOf(path)
	if err != nil {
		return err
	}
	data, err := c.Encode(format)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
