package transcode

import (
	"bytes"
	"fmt"
	"image"
	"log/slog"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"
)

// Encoder walks the quality ladder until an encoding fits the target's
// maximum size or the floor is reached.
type Encoder struct {
	cfg    Config
	logger *slog.Logger
}

func NewEncoder(cfg Config, logger *slog.Logger) *Encoder {
	return &Encoder{cfg: cfg, logger: logger}
}

// EncodeJPEG encodes img once at the given quality.
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("%w: quality %d: %v", ErrEncode, quality, err)
	}
	return buf.Bytes(), nil
}

// Encode returns the first ladder quality whose output is at most
// target.MaxSizeKB. When even the floor is too large the floor result is
// returned with Oversized set. The minimum size is reported, never enforced.
func (e *Encoder) Encode(img image.Image, target TargetSpec) (*EncodeResult, error) {
	if err := target.ValidateDimensions(); err != nil {
		return nil, err
	}

	b := img.Bounds()
	if b.Dx() != target.Width || b.Dy() != target.Height {
		return nil, fmt.Errorf("%w: image is %dx%d, target is %dx%d",
			ErrInvalidDimensions, b.Dx(), b.Dy(), target.Width, target.Height)
	}

	if e.cfg.ParallelEnabled() {
		return e.encodeParallel(img, target)
	}
	return e.encodeSequential(img, target)
}

func (e *Encoder) encodeSequential(img image.Image, target TargetSpec) (*EncodeResult, error) {
	ladder := e.cfg.Ladder()

	var data []byte
	var err error
	for i, q := range ladder {
		data, err = EncodeJPEG(img, q)
		if err != nil {
			return nil, err
		}

		e.logger.Debug("encode attempt", "quality", q, "size_kb", SizeKB(data))

		if SizeKB(data) <= target.MaxSizeKB || i == len(ladder)-1 {
			return newResult(data, q, i+1, target.Width, target.Height, target), nil
		}
	}
	return nil, fmt.Errorf("%w: empty quality ladder", ErrEncode)
}

// encodeParallel encodes every ladder quality concurrently and picks the
// result the sequential walk would have stopped at, so the outcome is identical.
func (e *Encoder) encodeParallel(img image.Image, target TargetSpec) (*EncodeResult, error) {
	ladder := e.cfg.Ladder()
	encoded := make([][]byte, len(ladder))

	g := new(errgroup.Group)
	g.SetLimit(max(e.cfg.Workers, 1))

	for i, q := range ladder {
		g.Go(func() error {
			data, err := EncodeJPEG(img, q)
			if err != nil {
				return err
			}
			encoded[i] = data
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, q := range ladder {
		e.logger.Debug("encode attempt", "quality", q, "size_kb", SizeKB(encoded[i]))
		if SizeKB(encoded[i]) <= target.MaxSizeKB || i == len(ladder)-1 {
			return newResult(encoded[i], q, i+1, target.Width, target.Height, target), nil
		}
	}
	return nil, fmt.Errorf("%w: empty quality ladder", ErrEncode)
}
