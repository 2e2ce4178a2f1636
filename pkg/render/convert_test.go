package render

import (
	"bytes"
	"context"
	"errors"
	"testing"

	mlerrors "github.com/matzehuels/multilayer/pkg/errors"
)

const tinySVG = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`

func TestMissingConverter(t *testing.T) {
	old := rsvgBinary
	rsvgBinary = "rsvg-convert-does-not-exist"
	t.Cleanup(func() { rsvgBinary = old })

	if CanConvert() {
		t.Fatal("CanConvert() = true for a missing binary")
	}
	_, err := ToPDF(context.Background(), []byte(tinySVG))
	if !errors.Is(err, ErrNoRsvg) {
		t.Fatalf("ToPDF() error = %v, want ErrNoRsvg", err)
	}
	if !mlerrors.Is(err, mlerrors.ErrCodeRenderFailed) {
		t.Errorf("ToPDF() code = %v, want RENDER_FAILED", mlerrors.GetCode(err))
	}
}

func TestConvert(t *testing.T) {
	if !CanConvert() {
		t.Skip("rsvg-convert not installed")
	}
	ctx := context.Background()

	pdf, err := ToPDF(ctx, []byte(tinySVG))
	if err != nil {
		t.Fatalf("ToPDF() error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("ToPDF() output does not start with %%PDF")
	}

	png, err := ToPNG(ctx, []byte(tinySVG), 0)
	if err != nil {
		t.Fatalf("ToPNG() error: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Errorf("ToPNG() output is not a PNG")
	}
}
