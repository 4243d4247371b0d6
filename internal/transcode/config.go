package transcode

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
)

const (
	DefaultStartQuality = 95
	DefaultQualityStep  = 5
	DefaultMinQuality   = 10

	// DefaultMaxPixels bounds decoded sources at 50 megapixels.
	DefaultMaxPixels = 50_000_000
)

// Config controls the quality ladder walked by the encoder.
type Config struct {
	StartQuality int  `toml:"start_quality"`
	QualityStep  int  `toml:"quality_step"`
	MinQuality   int  `toml:"min_quality"`
	Workers      int  `toml:"workers"`
	MaxPixels    int  `toml:"max_pixels"`

	// Parallel is a pointer so an overlay can switch it off.
	Parallel *bool `toml:"parallel"`
}

// Env maps environment variable names for transcode configuration.
type Env struct {
	StartQuality string
	QualityStep  string
	MinQuality   string
	Parallel     string
	Workers      string
	MaxPixels    string
}

// DefaultConfig returns the 95..10 step 5 sequential ladder.
func DefaultConfig() Config {
	c := Config{}
	c.loadDefaults()
	return c
}

// Ladder lists the qualities tried in order, always ending at MinQuality.
func (c *Config) Ladder() []int {
	step := max(c.QualityStep, 1)

	var ladder []int
	q := c.StartQuality
	for {
		ladder = append(ladder, q)
		if q <= c.MinQuality {
			return ladder
		}
		q = max(q-step, c.MinQuality)
	}
}

// ParallelEnabled reports whether every ladder quality is encoded concurrently.
func (c *Config) ParallelEnabled() bool {
	return c.Parallel != nil && *c.Parallel
}

// SetParallel sets the parallel mode.
func (c *Config) SetParallel(enabled bool) {
	c.Parallel = &enabled
}

func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

func (c *Config) Merge(overlay *Config) {
	if overlay.StartQuality != 0 {
		c.StartQuality = overlay.StartQuality
	}
	if overlay.QualityStep != 0 {
		c.QualityStep = overlay.QualityStep
	}
	if overlay.MinQuality != 0 {
		c.MinQuality = overlay.MinQuality
	}
	if overlay.Parallel != nil {
		c.SetParallel(*overlay.Parallel)
	}
	if overlay.Workers != 0 {
		c.Workers = overlay.Workers
	}
	if overlay.MaxPixels != 0 {
		c.MaxPixels = overlay.MaxPixels
	}
}

func (c *Config) loadDefaults() {
	if c.StartQuality == 0 {
		c.StartQuality = DefaultStartQuality
	}
	if c.QualityStep == 0 {
		c.QualityStep = DefaultQualityStep
	}
	if c.MinQuality == 0 {
		c.MinQuality = DefaultMinQuality
	}
	if c.Workers == 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.MaxPixels == 0 {
		c.MaxPixels = DefaultMaxPixels
	}
}

func (c *Config) loadEnv(env *Env) {
	if v := lookupInt(env.StartQuality); v != nil {
		c.StartQuality = *v
	}
	if v := lookupInt(env.QualityStep); v != nil {
		c.QualityStep = *v
	}
	if v := lookupInt(env.MinQuality); v != nil {
		c.MinQuality = *v
	}
	if env.Parallel != "" {
		if b, err := strconv.ParseBool(os.Getenv(env.Parallel)); err == nil {
			c.SetParallel(b)
		}
	}
	if v := lookupInt(env.Workers); v != nil {
		c.Workers = *v
	}
	if v := lookupInt(env.MaxPixels); v != nil {
		c.MaxPixels = *v
	}
}

func (c *Config) validate() error {
	if c.StartQuality < 1 || c.StartQuality > 100 {
		return fmt.Errorf("start_quality must be between 1 and 100, got %d", c.StartQuality)
	}
	if c.MinQuality < 1 || c.MinQuality > c.StartQuality {
		return fmt.Errorf("min_quality must be between 1 and start_quality, got %d", c.MinQuality)
	}
	if c.QualityStep < 1 {
		return fmt.Errorf("quality_step must be positive, got %d", c.QualityStep)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.MaxPixels < 1 {
		return fmt.Errorf("max_pixels must be positive, got %d", c.MaxPixels)
	}
	return nil
}

func lookupInt(name string) *int {
	if name == "" {
		return nil
	}
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}
