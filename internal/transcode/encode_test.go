package transcode_test

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"log/slog"
	"slices"
	"testing"

	"github.com/JaimeStill/photo-fixer/internal/transcode"
)

func newEncoder(parallel bool) *transcode.Encoder {
	cfg := transcode.DefaultConfig()
	cfg.SetParallel(parallel)
	cfg.Workers = 4
	return transcode.NewEncoder(cfg, slog.New(slog.DiscardHandler))
}

func mustNormalize(t *testing.T, src image.Image, w, h int) *image.NRGBA {
	t.Helper()
	img, err := transcode.Normalize(src, w, h)
	if err != nil {
		t.Fatalf("Normalize() failed: %v", err)
	}
	return img
}

func mustEncodeJPEG(t *testing.T, img image.Image, q int) []byte {
	t.Helper()
	data, err := transcode.EncodeJPEG(img, q)
	if err != nil {
		t.Fatalf("EncodeJPEG(%d) failed: %v", q, err)
	}
	return data
}

func TestConfig_Ladder_Default(t *testing.T) {
	cfg := transcode.DefaultConfig()
	ladder := cfg.Ladder()

	if len(ladder) != 18 {
		t.Fatalf("len(ladder) = %d, want 18", len(ladder))
	}
	if ladder[0] != 95 || ladder[len(ladder)-1] != 10 {
		t.Errorf("ladder = %v, want 95..10", ladder)
	}
	for i := 1; i < len(ladder); i++ {
		if ladder[i-1]-ladder[i] != 5 {
			t.Errorf("step at %d = %d, want 5", i, ladder[i-1]-ladder[i])
		}
	}
}

func TestConfig_Ladder_ClampsToFloor(t *testing.T) {
	cfg := transcode.Config{StartQuality: 90, QualityStep: 30, MinQuality: 20}
	want := []int{90, 60, 30, 20}
	if got := cfg.Ladder(); !slices.Equal(got, want) {
		t.Errorf("Ladder() = %v, want %v", got, want)
	}
}

func TestEncoder_FirstAttemptAt95(t *testing.T) {
	img := mustNormalize(t, gradient(350, 450, 255), 350, 450)

	result, err := newEncoder(false).Encode(img, transcode.TargetSpec{Width: 350, Height: 450, MaxSizeKB: 10000})
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	if result.Quality != 95 || result.Attempts != 1 {
		t.Errorf("quality/attempts = %d/%d, want 95/1", result.Quality, result.Attempts)
	}
	if !result.WithinBounds {
		t.Error("WithinBounds = false, want true")
	}
}

func TestEncoder_FirstFitHighestQuality(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		img := mustNormalize(t, noise(350, 450), 350, 450)

		hi := transcode.SizeKB(mustEncodeJPEG(t, img, 95))
		lo := transcode.SizeKB(mustEncodeJPEG(t, img, 10))
		target := transcode.TargetSpec{Width: 350, Height: 450, MaxSizeKB: (hi + lo) / 2}

		result, err := newEncoder(parallel).Encode(img, target)
		if err != nil {
			t.Fatalf("Encode(parallel=%v) failed: %v", parallel, err)
		}

		if result.SizeKB > target.MaxSizeKB {
			t.Errorf("SizeKB = %.2f, want <= %.2f", result.SizeKB, target.MaxSizeKB)
		}
		if result.Quality == 95 || result.Quality == 10 {
			t.Errorf("Quality = %d, want a value strictly inside the ladder", result.Quality)
		}

		for q := 95; q > result.Quality; q -= 5 {
			if kb := transcode.SizeKB(mustEncodeJPEG(t, img, q)); kb <= target.MaxSizeKB {
				t.Errorf("quality %d also fits (%.2f KB) but %d was returned", q, kb, result.Quality)
			}
		}

		if want := (95-result.Quality)/5 + 1; result.Attempts != want {
			t.Errorf("Attempts = %d, want %d", result.Attempts, want)
		}
	}
}

func TestEncoder_FloorSoftFailure(t *testing.T) {
	img := mustNormalize(t, noise(350, 450), 350, 450)
	floor := transcode.SizeKB(mustEncodeJPEG(t, img, 10))
	target := transcode.TargetSpec{Width: 350, Height: 450, MinSizeKB: 0, MaxSizeKB: floor / 2}

	for _, parallel := range []bool{false, true} {
		result, err := newEncoder(parallel).Encode(img, target)
		if err != nil {
			t.Fatalf("Encode(parallel=%v) returned error %v, want soft failure", parallel, err)
		}

		if result.Quality != 10 {
			t.Errorf("Quality = %d, want 10", result.Quality)
		}
		if result.Attempts != 18 {
			t.Errorf("Attempts = %d, want 18", result.Attempts)
		}
		if result.WithinBounds || !result.Oversized {
			t.Errorf("WithinBounds/Oversized = %v/%v, want false/true", result.WithinBounds, result.Oversized)
		}
		if result.SizeKB <= target.MaxSizeKB {
			t.Errorf("SizeKB = %.2f, want > %.2f", result.SizeKB, target.MaxSizeKB)
		}
	}
}

func TestEncoder_UndersizedReported(t *testing.T) {
	img := mustNormalize(t, gradient(100, 100, 255), 100, 100)
	target := transcode.TargetSpec{Width: 100, Height: 100, MinSizeKB: 5000, MaxSizeKB: 6000}

	result, err := newEncoder(false).Encode(img, target)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	if result.Quality != 95 {
		t.Errorf("Quality = %d, want 95 (never re-encodes upward)", result.Quality)
	}
	if result.WithinBounds || !result.Undersized || result.Oversized {
		t.Errorf("flags = within %v under %v over %v", result.WithinBounds, result.Undersized, result.Oversized)
	}
}

func TestEncoder_ParallelMatchesSequential(t *testing.T) {
	img := mustNormalize(t, gradient(600, 600, 255), 413, 531)
	noisy := mustNormalize(t, noise(413, 531), 413, 531)

	for _, src := range []*image.NRGBA{img, noisy} {
		target := transcode.TargetSpec{Width: 413, Height: 531, MinSizeKB: 20, MaxSizeKB: 50}

		seq, err := newEncoder(false).Encode(src, target)
		if err != nil {
			t.Fatalf("sequential Encode() failed: %v", err)
		}
		par, err := newEncoder(true).Encode(src, target)
		if err != nil {
			t.Fatalf("parallel Encode() failed: %v", err)
		}

		if seq.Quality != par.Quality || seq.Attempts != par.Attempts {
			t.Errorf("parallel = q%d/%d, sequential = q%d/%d", par.Quality, par.Attempts, seq.Quality, seq.Attempts)
		}
		if !bytes.Equal(seq.Data, par.Data) {
			t.Error("parallel output differs from sequential output")
		}
	}
}

func TestEncoder_DimensionMismatch(t *testing.T) {
	img := mustNormalize(t, gradient(10, 10, 255), 10, 10)

	_, err := newEncoder(false).Encode(img, transcode.TargetSpec{Width: 20, Height: 10, MaxSizeKB: 50})
	if !errors.Is(err, transcode.ErrInvalidDimensions) {
		t.Errorf("Encode() error = %v, want ErrInvalidDimensions", err)
	}
}

func TestEncodeResult_SizeIsExact(t *testing.T) {
	img := mustNormalize(t, gradient(200, 200, 255), 200, 200)

	result, err := newEncoder(false).Encode(img, transcode.TargetSpec{Width: 200, Height: 200, MaxSizeKB: 500})
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	if want := float64(len(result.Data)) / 1024; result.SizeKB != want {
		t.Errorf("SizeKB = %v, want %v", result.SizeKB, want)
	}

	decoded, err := jpeg.Decode(bytes.NewReader(result.Data))
	if err != nil {
		t.Fatalf("output is not a JPEG: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 200 || b.Dy() != 200 {
		t.Errorf("decoded size = %dx%d, want 200x200", b.Dx(), b.Dy())
	}
}
