package render

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strconv"
	"strings"

	mlerrors "github.com/matzehuels/multilayer/pkg/errors"
)

// ErrNoRsvg is returned when rsvg-convert is not on PATH.
var ErrNoRsvg = errors.New("rsvg-convert not found (macOS: brew install librsvg, Linux: apt install librsvg2-bin)")

// rsvgBinary is the converter executable; tests point it elsewhere.
var rsvgBinary = "rsvg-convert"

// CanConvert reports whether PDF and PNG conversion is available.
func CanConvert() bool {
	_, err := exec.LookPath(rsvgBinary)
	return err == nil
}

// ToPDF converts an SVG document to PDF.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return rsvgConvert(ctx, svg, "pdf")
}

// ToPNG converts an SVG document to PNG. A scale of 2 doubles the
// resolution; non-positive scales render at 1.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	return rsvgConvert(ctx, svg, "png", "-z", strconv.FormatFloat(scale, 'f', 2, 64))
}

func rsvgConvert(ctx context.Context, svg []byte, format string, extra ...string) ([]byte, error) {
	if !CanConvert() {
		return nil, mlerrors.Wrap(mlerrors.ErrCodeRenderFailed, ErrNoRsvg, "%s export", format)
	}

	cmd := exec.CommandContext(ctx, rsvgBinary, append([]string{"-f", format}, extra...)...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, mlerrors.Wrap(mlerrors.ErrCodeRenderFailed, err, "rsvg-convert %s: %s", format, strings.TrimSpace(stderr.String()))
	}
	return out.Bytes(), nil
}
