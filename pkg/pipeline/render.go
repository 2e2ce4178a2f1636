package pipeline

import (
	"bytes"
	"context"
	"time"

	mlerrors "github.com/matzehuels/multilayer/pkg/errors"
	mlio "github.com/matzehuels/multilayer/pkg/io"
	"github.com/matzehuels/multilayer/pkg/multilayer"
	"github.com/matzehuels/multilayer/pkg/observability"
	"github.com/matzehuels/multilayer/pkg/render/nodelink"
	"github.com/matzehuels/multilayer/pkg/render/plotly"
)

// Render generates output artifacts in the requested formats.
func (r *Runner) Render(ctx context.Context, res *multilayer.Result, opts Options) (artifacts map[string][]byte, err error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	defer func() {
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	}()

	if opts.HasFormat(FormatHTML) && opts.ScriptURL == "" && !plotly.Bundled() {
		r.loggerFor(opts).Warn("plotly.js is not embedded; the HTML document needs network access", "script", plotly.DefaultScriptURL)
	}

	artifacts = make(map[string][]byte, len(opts.Formats))
	var dot string

	for _, format := range opts.Formats {
		if _, done := artifacts[format]; done {
			continue
		}

		var data []byte
		var ferr error

		switch format {
		case FormatHTML:
			data, ferr = RenderHTML(res, opts)
		case FormatJSON:
			var buf bytes.Buffer
			ferr = mlio.WriteJSON(res, &buf)
			data = buf.Bytes()
		case FormatSVG, FormatPDF, FormatPNG:
			if dot == "" {
				dot = nodelink.ToDOT(res, nodelink.Options{Detailed: opts.Detailed})
			}
			switch format {
			case FormatSVG:
				data, ferr = nodelink.RenderSVG(ctx, dot)
			case FormatPDF:
				data, ferr = nodelink.RenderPDF(ctx, dot)
			default:
				data, ferr = nodelink.RenderPNG(ctx, dot, opts.PNGScale)
			}
		default:
			return nil, mlerrors.New(mlerrors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if ferr != nil {
			return nil, mlerrors.Wrap(mlerrors.ErrCodeRenderFailed, ferr, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// RenderHTML renders the animated 3D document for res.
func RenderHTML(res *multilayer.Result, opts Options) ([]byte, error) {
	fig := plotly.NewFigure(res, plotly.Options{
		Title:          opts.DocumentTitle(res.Seed),
		AnimationSpeed: opts.AnimationSpeed,
		HideAxes:       opts.HideAxes,
	})
	return plotly.RenderHTML(fig, plotly.HTMLOptions{ScriptURL: opts.ScriptURL})
}
