package transcode

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Background is the color alpha and palette sources are flattened onto.
var Background = color.White

// Normalize flattens src onto an opaque background and resizes it to exactly
// width x height with a Lanczos filter. Aspect ratio is not preserved.
// The returned image is a new buffer; src is never written.
func Normalize(src image.Image, width, height int) (*image.NRGBA, error) {
	if err := (TargetSpec{Width: width, Height: height}).ValidateDimensions(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, ErrDecode
	}

	b := src.Bounds()
	if b.Empty() {
		return nil, ErrDecode
	}

	flat := imaging.New(b.Dx(), b.Dy(), Background)
	flat = imaging.Overlay(flat, src, image.Pt(0, 0), 1.0)

	return imaging.Resize(flat, width, height, imaging.Lanczos), nil
}
