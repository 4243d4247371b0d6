package transcode

import "fmt"

// TargetSpec is the pixel size and file size band an output must satisfy.
type TargetSpec struct {
	Width     int     `json:"width" toml:"width" yaml:"width"`
	Height    int     `json:"height" toml:"height" yaml:"height"`
	MinSizeKB float64 `json:"min_kb" toml:"min_kb" yaml:"min_kb"`
	MaxSizeKB float64 `json:"max_kb" toml:"max_kb" yaml:"max_kb"`
}

// ValidateDimensions checks only the pixel dimensions.
func (t TargetSpec) ValidateDimensions() error {
	if t.Width <= 0 || t.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, t.Width, t.Height)
	}
	return nil
}

// Validate checks the full target. Catalogs call this when profiles are loaded.
func (t TargetSpec) Validate() error {
	if err := t.ValidateDimensions(); err != nil {
		return err
	}
	if t.MinSizeKB < 0 {
		return fmt.Errorf("%w: min_kb %.2f is negative", ErrInvalidTarget, t.MinSizeKB)
	}
	if t.MaxSizeKB <= 0 {
		return fmt.Errorf("%w: max_kb must be positive", ErrInvalidTarget)
	}
	if t.MinSizeKB > t.MaxSizeKB {
		return fmt.Errorf("%w: min_kb %.2f exceeds max_kb %.2f", ErrInvalidTarget, t.MinSizeKB, t.MaxSizeKB)
	}
	return nil
}

func (t TargetSpec) String() string {
	return fmt.Sprintf("%dx%d %.0f-%.0fKB", t.Width, t.Height, t.MinSizeKB, t.MaxSizeKB)
}

// EncodeResult is the outcome of one transcode. Data is owned by the caller.
type EncodeResult struct {
	Data         []byte  `json:"-"`
	SizeKB       float64 `json:"size_kb"`
	Quality      int     `json:"quality"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	Attempts     int     `json:"attempts"`
	WithinBounds bool    `json:"within_bounds"`
	Oversized    bool    `json:"oversized"`
	Undersized   bool    `json:"undersized"`
}

func newResult(data []byte, quality, attempts int, width, height int, target TargetSpec) *EncodeResult {
	kb := SizeKB(data)
	r := &EncodeResult{
		Data:       data,
		SizeKB:     kb,
		Quality:    quality,
		Width:      width,
		Height:     height,
		Attempts:   attempts,
		Oversized:  kb > target.MaxSizeKB,
		Undersized: kb < target.MinSizeKB,
	}
	r.WithinBounds = !r.Oversized && !r.Undersized
	return r
}

// SizeKB returns the exact length of data in kilobytes.
func SizeKB(data []byte) float64 {
	return float64(len(data)) / 1024
}
