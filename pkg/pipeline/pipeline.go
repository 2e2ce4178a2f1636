// Package pipeline provides the generate → render pipeline for multilayer.
//
// This package implements the complete pipeline used by the CLI's generate
// and serve commands. By centralizing this logic, both entry points apply
// the same defaults, validation, logging and hooks.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Generate: Assemble a multilayer graph (layers, layouts, interlayer edges)
//  2. Render: Produce artifacts in the requested formats (HTML, JSON, SVG, PDF, PNG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    NumLayers: 5,
//	    Formats:   []string{"html"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	page := result.Artifacts["html"]
//
// Run individual stages:
//
//	res, err := runner.Generate(ctx, opts)
//	artifacts, err := runner.Render(ctx, res, opts)
package pipeline

import (
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	mlerrors "github.com/matzehuels/multilayer/pkg/errors"
	"github.com/matzehuels/multilayer/pkg/layer"
	"github.com/matzehuels/multilayer/pkg/layout"
	"github.com/matzehuels/multilayer/pkg/multilayer"
)

// =============================================================================
// Default Values - Single Source of Truth for the CLI and the viewer
// =============================================================================

const (
	DefaultNumLayers        = 5
	DefaultMinNodes         = 4
	DefaultMaxNodes         = 10
	DefaultMinEdges         = 5
	DefaultMaxEdges         = 14
	DefaultInterlayerEdges  = 3
	DefaultAnimationSpeed   = 100 // milliseconds per frame
	DefaultMaxAttempts      = layer.DefaultMaxAttempts
	DefaultLayout           = layout.EngineSpring
	DefaultLayoutIterations = layout.DefaultIterations
	DefaultTitle            = "Multilayer Graph"
	DefaultPNGScale         = 2.0
)

// Format constants for output formats.
const (
	FormatHTML = "html"
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatHTML: true,
	FormatJSON: true,
	FormatSVG:  true,
	FormatPDF:  true,
	FormatPNG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
//
// Zero-valued size fields are not defaulted: zero MinEdges or
// InterlayerEdges is a valid request, while every layer needs at least one
// node. Callers that want the stock configuration start from
// [DefaultOptions].
type Options struct {
	// Generate options
	NumLayers         int    `json:"num_layers"`
	MinNodes          int    `json:"min_nodes_per_layer"`
	MaxNodes          int    `json:"max_nodes_per_layer"`
	MinEdges          int    `json:"min_edges_per_layer"`
	MaxEdges          int    `json:"max_edges_per_layer"`
	InterlayerEdges   int    `json:"interlayer_edges"`
	AllowDisconnected bool   `json:"allow_disconnected_nodes"`
	MaxAttempts       int    `json:"max_attempts,omitempty"`
	Seed              uint64 `json:"seed,omitempty"` // 0 draws a fresh seed

	// Layout options
	Layout           string `json:"layout,omitempty"`
	LayoutIterations int    `json:"layout_iterations,omitempty"`

	// Render options
	Formats        []string `json:"formats,omitempty"`
	Title          string   `json:"title,omitempty"`
	AnimationSpeed int      `json:"animation_speed,omitempty"`
	HideAxes       bool     `json:"hide_axes,omitempty"`
	Detailed       bool     `json:"detailed,omitempty"` // coordinates in node-link labels
	PNGScale       float64  `json:"png_scale,omitempty"`
	ScriptURL      string   `json:"script_url,omitempty"` // load plotly.js from here instead of inlining it

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"` // overrides Runner.Logger for this run

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// DefaultOptions returns the stock configuration: five layers of 4-10 nodes
// and 5-14 edges joined by three interlayer edges, rendered as HTML.
func DefaultOptions() Options {
	return Options{
		NumLayers:        DefaultNumLayers,
		MinNodes:         DefaultMinNodes,
		MaxNodes:         DefaultMaxNodes,
		MinEdges:         DefaultMinEdges,
		MaxEdges:         DefaultMaxEdges,
		InterlayerEdges:  DefaultInterlayerEdges,
		MaxAttempts:      DefaultMaxAttempts,
		Layout:           DefaultLayout,
		LayoutIterations: DefaultLayoutIterations,
		Formats:          []string{FormatHTML},
		Title:            DefaultTitle,
		AnimationSpeed:   DefaultAnimationSpeed,
		PNGScale:         DefaultPNGScale,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and HTTP responses.
	RunID string

	// Graph is the assembled multilayer graph.
	Graph *multilayer.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Layers       int
	NodeCount    int
	EdgeCount    int // distinct edges in the global graph
	RevealSteps  int // entries in the reveal order
	Seed         uint64
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return mlerrors.New(mlerrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: html, json, svg, pdf, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateLayout checks that a layout engine name is valid.
func ValidateLayout(name string) error {
	if !layout.Valid(name) {
		return mlerrors.New(mlerrors.ErrCodeInvalidLayout, "invalid layout: %q (must be one of: spring, circular)", name)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForGenerate(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForGenerate checks the generation parameters and applies
// defaults for attempts and layout.
func (o *Options) ValidateForGenerate() error {
	if o.MaxAttempts == 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.Layout == "" {
		o.Layout = DefaultLayout
	}
	if o.LayoutIterations == 0 {
		o.LayoutIterations = DefaultLayoutIterations
	}

	if o.MaxAttempts < 1 {
		return mlerrors.New(mlerrors.ErrCodeInvalidConfig, "max_attempts must be at least 1, got %d", o.MaxAttempts)
	}
	if o.LayoutIterations < 1 {
		return mlerrors.New(mlerrors.ErrCodeInvalidConfig, "layout_iterations must be at least 1, got %d", o.LayoutIterations)
	}
	if err := ValidateLayout(o.Layout); err != nil {
		return err
	}
	return o.Params().Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatHTML}
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.AnimationSpeed == 0 {
		o.AnimationSpeed = DefaultAnimationSpeed
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.AnimationSpeed < 1 {
		return mlerrors.New(mlerrors.ErrCodeInvalidConfig, "animation_speed must be at least 1 ms, got %d", o.AnimationSpeed)
	}
	if o.PNGScale < 0 {
		return mlerrors.New(mlerrors.ErrCodeInvalidConfig, "png_scale must be positive, got %v", o.PNGScale)
	}
	return ValidateFormats(o.Formats)
}

// Params returns the assembler parameters described by the options.
func (o *Options) Params() multilayer.Params {
	return multilayer.Params{
		NumLayers: o.NumLayers,
		Layer: layer.Params{
			MinNodes:          o.MinNodes,
			MaxNodes:          o.MaxNodes,
			MinEdges:          o.MinEdges,
			MaxEdges:          o.MaxEdges,
			AllowDisconnected: o.AllowDisconnected,
			MaxAttempts:       o.MaxAttempts,
		},
		InterlayerEdges: o.InterlayerEdges,
		Seed:            o.Seed,
	}
}

// HasFormat reports whether format was requested.
func (o *Options) HasFormat(format string) bool {
	return slices.Contains(o.Formats, format)
}

// DocumentTitle returns the figure title for a result generated with seed.
func (o *Options) DocumentTitle(seed uint64) string {
	return fmt.Sprintf("%s (seed %d)", o.Title, seed)
}
