// Package transcode fits an arbitrary raster image to an exact pixel size and
// a JPEG file size band. Sources are flattened, resized, and encoded at
// decreasing quality until the output fits or the quality floor is reached.
//
// Calls share no mutable state and may run concurrently.
package transcode

import (
	"fmt"
	"image"
	"log/slog"
)

// Transcoder runs the decode, normalize, and encode pipeline.
type Transcoder struct {
	encoder   *Encoder
	maxPixels int
	logger    *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Transcoder {
	logger = logger.With("system", "transcode")
	return &Transcoder{
		encoder:   NewEncoder(cfg, logger),
		maxPixels: cfg.MaxPixels,
		logger:    logger,
	}
}

// Transcode decodes data and fits it to target. The header is read first so
// sources above the pixel limit are rejected before any pixels are allocated.
func (t *Transcoder) Transcode(data []byte, target TargetSpec) (*EncodeResult, error) {
	if err := target.ValidateDimensions(); err != nil {
		return nil, err
	}

	if err := t.checkPixels(data); err != nil {
		return nil, err
	}

	src, format, err := Decode(data)
	if err != nil {
		return nil, err
	}

	b := src.Bounds()
	t.logger.Debug("source decoded", "format", format, "width", b.Dx(), "height", b.Dy())

	return t.Fit(src, target)
}

func (t *Transcoder) checkPixels(data []byte) error {
	if t.maxPixels <= 0 {
		return nil
	}
	info, err := Identify(data)
	if err != nil {
		return err
	}
	if pixels := int64(info.Width) * int64(info.Height); pixels > int64(t.maxPixels) {
		return fmt.Errorf("%w: %dx%d is %d pixels, limit is %d",
			ErrSourceTooLarge, info.Width, info.Height, pixels, t.maxPixels)
	}
	return nil
}

// Fit normalizes an already decoded image and encodes it.
func (t *Transcoder) Fit(src image.Image, target TargetSpec) (*EncodeResult, error) {
	img, err := Normalize(src, target.Width, target.Height)
	if err != nil {
		return nil, err
	}

	result, err := t.encoder.Encode(img, target)
	if err != nil {
		return nil, err
	}

	attrs := []any{
		"target", target.String(),
		"size_kb", result.SizeKB,
		"quality", result.Quality,
		"attempts", result.Attempts,
	}

	switch {
	case result.Oversized:
		t.logger.Warn("quality floor reached above max size", attrs...)
	case result.Undersized:
		t.logger.Warn("output below min size", attrs...)
	default:
		t.logger.Info("transcode complete", attrs...)
	}

	return result, nil
}

// Transcode fits data to target with the default ladder and no logging.
func Transcode(data []byte, target TargetSpec) (*EncodeResult, error) {
	return New(DefaultConfig(), slog.New(slog.DiscardHandler)).Transcode(data, target)
}
