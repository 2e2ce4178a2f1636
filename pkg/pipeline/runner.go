package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	mlerrors "github.com/matzehuels/multilayer/pkg/errors"
	"github.com/matzehuels/multilayer/pkg/layout"
	"github.com/matzehuels/multilayer/pkg/multilayer"
)

// Runner executes the pipeline.
//
// The Runner is stateless except for the logger - it doesn't store pipeline
// results. Multiple goroutines can safely use the same Runner with different
// options; every run owns its random stream.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete generate → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}
	logger := r.loggerFor(opts).With("run", result.RunID[:8])

	// Stage 1: Generate
	genStart := time.Now()
	res, err := r.generate(ctx, opts, logger)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Graph = res
	result.Stats.GenerateTime = time.Since(genStart)
	result.Stats.Layers = len(res.Layers)
	result.Stats.NodeCount = res.NodeCount()
	result.Stats.EdgeCount = res.Graph.EdgeCount()
	result.Stats.RevealSteps = len(res.Edges)
	result.Stats.Seed = res.Seed

	logger.Info("generated multilayer graph",
		"layers", result.Stats.Layers,
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"seed", res.Seed,
		"duration", result.Stats.GenerateTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, res, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"frames", result.Stats.RevealSteps+1,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Generate assembles a multilayer graph and checks its invariants.
func (r *Runner) Generate(ctx context.Context, opts Options) (*multilayer.Result, error) {
	if err := opts.ValidateForGenerate(); err != nil {
		return nil, err
	}
	return r.generate(ctx, opts, r.loggerFor(opts))
}

// loggerFor prefers the per-run logger from opts.
func (r *Runner) loggerFor(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

func (r *Runner) generate(ctx context.Context, opts Options, logger *log.Logger) (*multilayer.Result, error) {
	engine, err := layout.New(opts.Layout, opts.LayoutIterations)
	if err != nil {
		return nil, err
	}

	asm := multilayer.NewAssembler(engine, multilayer.WithLogger(logger))
	res, err := asm.Assemble(ctx, opts.Params())
	if err != nil {
		return nil, err
	}
	if err := res.Validate(); err != nil {
		return nil, mlerrors.Wrap(mlerrors.ErrCodeInternal, err, "assembled graph violates invariants")
	}
	return res, nil
}
