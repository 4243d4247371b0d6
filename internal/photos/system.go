package photos

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/docker/go-units"

	"github.com/JaimeStill/photo-fixer/internal/profiles"
	"github.com/JaimeStill/photo-fixer/internal/transcode"
)

// System fixes photos and inspects uploads.
type System interface {
	Fix(ctx context.Context, cmd FixCommand) (*Fixed, error)
	Identify(ctx context.Context, data []byte) (*transcode.Info, error)
	MaxUploadSize() int64
}

type photos struct {
	profiles      profiles.System
	transcoder    *transcode.Transcoder
	maxUploadSize int64
	logger        *slog.Logger
}

func New(profiles profiles.System, transcoder *transcode.Transcoder, maxUploadSize int64, logger *slog.Logger) System {
	return &photos{
		profiles:      profiles,
		transcoder:    transcoder,
		maxUploadSize: maxUploadSize,
		logger:        logger.With("system", "photos"),
	}
}

func (p *photos) MaxUploadSize() int64 {
	return p.maxUploadSize
}

// Fix resolves the target and transcodes the photo. Transcoding cannot be
// interrupted, so a cancelled ctx returns early and the result is discarded.
func (p *photos) Fix(ctx context.Context, cmd FixCommand) (*Fixed, error) {
	if err := p.checkSize(cmd.Data); err != nil {
		return nil, err
	}

	fixed := &Fixed{}
	var target transcode.TargetSpec

	switch {
	case cmd.Profile != "":
		profile, err := p.profiles.Find(ctx, cmd.Profile)
		if err != nil {
			return nil, err
		}
		fixed.Profile = profile
		fixed.FileName = profile.FileName()
		target = profile.Target()
	case cmd.Target != nil:
		if err := cmd.Target.Validate(); err != nil {
			return nil, err
		}
		target = *cmd.Target
		fixed.Profile = &profiles.Profile{
			Name:      fmt.Sprintf("%dx%d", target.Width, target.Height),
			Width:     target.Width,
			Height:    target.Height,
			MinSizeKB: target.MinSizeKB,
			MaxSizeKB: target.MaxSizeKB,
		}
		fixed.FileName = fixed.Profile.FileName()
	default:
		return nil, ErrMissingTarget
	}

	type outcome struct {
		result *transcode.EncodeResult
		err    error
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := make(chan outcome, 1)
	go func() {
		result, err := p.transcoder.Transcode(cmd.Data, target)
		done <- outcome{result, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case o := <-done:
		if o.err != nil {
			return nil, o.err
		}
		fixed.EncodeResult = o.result
	}

	p.logger.Info("photo fixed",
		"profile", fixed.Profile.Name,
		"source_size", units.HumanSize(float64(len(cmd.Data))),
		"size_kb", fixed.SizeKB,
		"quality", fixed.Quality,
		"within_bounds", fixed.WithinBounds,
	)
	return fixed, nil
}

func (p *photos) Identify(ctx context.Context, data []byte) (*transcode.Info, error) {
	if err := p.checkSize(data); err != nil {
		return nil, err
	}
	return transcode.Identify(data)
}

func (p *photos) checkSize(data []byte) error {
	if len(data) == 0 {
		return ErrMissingFile
	}
	if p.maxUploadSize > 0 && int64(len(data)) > p.maxUploadSize {
		return fmt.Errorf("%w: %s > %s", ErrTooLarge,
			units.HumanSize(float64(len(data))), units.HumanSize(float64(p.maxUploadSize)))
	}
	return nil
}
