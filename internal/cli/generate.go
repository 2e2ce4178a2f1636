package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/multilayer/pkg/config"
	"github.com/matzehuels/multilayer/pkg/pipeline"
)

// generateFlags holds the command-line overrides for the generate command.
// Only flags the user actually set replace configuration values.
type generateFlags struct {
	configPath        string
	output            string
	formats           string
	seed              uint64
	layers            int
	interlayer        int
	speed             int
	allowDisconnected bool
	layout            string
	title             string
	hideAxes          bool
	scriptURL         string
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a multilayer graph and render it",
		Long: `Generate a random multilayer graph and write it to disk.

Each layer is a random graph whose node and edge counts are drawn from the
configured ranges. Adjacent layers are joined by random interlayer edges.
The HTML output animates the edges appearing one at a time in 3D.

Artifacts are written to <output>.<format>, e.g. multilayer_graph.html.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := c.loadConfig(flags.configPath)
			if err != nil {
				return err
			}
			flags.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "config file (.toml, .yaml)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", config.DefaultOutput, "output base path")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): html (default), json, svg, pdf, png (comma-separated)")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "random seed (0 picks one)")
	cmd.Flags().IntVar(&flags.layers, "layers", pipeline.DefaultNumLayers, "number of layers")
	cmd.Flags().IntVar(&flags.interlayer, "interlayer", pipeline.DefaultInterlayerEdges, "interlayer edges between adjacent layers")
	cmd.Flags().IntVar(&flags.speed, "speed", pipeline.DefaultAnimationSpeed, "animation frame duration in milliseconds")
	cmd.Flags().BoolVar(&flags.allowDisconnected, "allow-disconnected", false, "allow nodes without intra-layer edges")
	cmd.Flags().StringVar(&flags.layout, "layout", pipeline.DefaultLayout, "per-layer layout: spring, circular")
	cmd.Flags().StringVar(&flags.title, "title", pipeline.DefaultTitle, "document title")
	cmd.Flags().BoolVar(&flags.hideAxes, "hide-axes", false, "start with the 3D axes hidden")
	cmd.Flags().StringVar(&flags.scriptURL, "script-url", "", "load plotly.js from this URL instead of embedding it")

	return cmd
}

// apply copies every flag the user set onto cfg.
func (f *generateFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("output") {
		cfg.Output = f.output
	}
	if changed("format") {
		cfg.Formats = parseFormats(f.formats)
	}
	if changed("seed") {
		cfg.Seed = f.seed
	}
	if changed("layers") {
		cfg.NumLayers = f.layers
	}
	if changed("interlayer") {
		cfg.InterlayerEdges = f.interlayer
	}
	if changed("speed") {
		cfg.AnimationSpeed = f.speed
	}
	if changed("allow-disconnected") {
		cfg.AllowDisconnected = f.allowDisconnected
	}
	if changed("layout") {
		cfg.Layout = f.layout
	}
	if changed("title") {
		cfg.Title = f.title
	}
	if changed("hide-axes") {
		cfg.HideAxes = f.hideAxes
	}
	if changed("script-url") {
		cfg.ScriptURL = f.scriptURL
	}
}

// runGenerate executes the pipeline and writes the artifacts.
func (c *CLI) runGenerate(ctx context.Context, cfg *config.Config) error {
	opts := cfg.Options()
	opts.Logger = c.Logger
	if opts.InterlayerEdges == 0 && opts.NumLayers > 1 {
		printWarning("interlayer_edges is 0; layers will not be connected")
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating %d layers...", opts.NumLayers))
	spinner.Start()

	result, err := c.newRunner().Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return err
	}
	spinner.Stop()

	prog := newProgress(c.Logger)
	paths, err := writeArtifacts(result.Artifacts, opts.Formats, cfg.Output)
	if err != nil {
		return err
	}
	prog.done("wrote artifacts", "count", len(paths), "output", cfg.Output)

	s := result.Stats
	printSuccess("Generated multilayer graph")
	printStats(s.Layers, s.NodeCount, s.EdgeCount, s.RevealSteps, s.Seed)
	for _, p := range paths {
		printFile(p)
	}
	if cfg.Seed == 0 {
		printNextStep("Reproduce", fmt.Sprintf("%s generate --seed %d", appName, s.Seed))
	}
	return nil
}

// writeArtifacts writes each artifact to base.<format> in format order and
// returns the paths written.
func writeArtifacts(artifacts map[string][]byte, formats []string, base string) ([]string, error) {
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}

	var paths []string
	seen := make(map[string]bool, len(formats))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok || seen[format] {
			continue
		}
		seen[format] = true

		path := base + "." + format
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
