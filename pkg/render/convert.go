package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/rdpishibashi/revision-management/pkg/errors"
)

// rsvgHint explains how to get the conversion backend onto the host.
const rsvgHint = "rsvg-convert not found; install librsvg (apt install librsvg2-bin, brew install librsvg)"

// ToPDF converts SVG bytes to a vector PDF using rsvg-convert.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return convert(ctx, svg, "-f", "pdf")
}

// ToPNG converts SVG bytes to a PNG at the given zoom factor.
// A scale of 2.0 produces a 2x resolution image for high-DPI displays.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	return convert(ctx, svg, "-f", "png", "--zoom", fmt.Sprintf("%g", scale))
}

func convert(ctx context.Context, svg []byte, args ...string) ([]byte, error) {
	bin, err := exec.LookPath("rsvg-convert")
	if err != nil {
		return nil, errors.New(errors.ErrCodeRenderFailed, "%s", rsvgHint)
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err,
			"rsvg-convert failed: %s", stderr.String())
	}
	return out.Bytes(), nil
}
