package transcode_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"log/slog"
	"net/http"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/JaimeStill/photo-fixer/internal/transcode"
)

func decodeJPEG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if format != "jpeg" {
		t.Fatalf("output format = %q, want jpeg", format)
	}
	return img
}

func TestTranscode_ExactDimensionsAcrossFormats(t *testing.T) {
	src := gradient(300, 200, 255)

	var gifBuf, bmpBuf, tiffBuf, jpgBuf bytes.Buffer
	if err := gif.Encode(&gifBuf, src, nil); err != nil {
		t.Fatal(err)
	}
	if err := bmp.Encode(&bmpBuf, src); err != nil {
		t.Fatal(err)
	}
	if err := tiff.Encode(&tiffBuf, src, nil); err != nil {
		t.Fatal(err)
	}
	if err := jpeg.Encode(&jpgBuf, src, nil); err != nil {
		t.Fatal(err)
	}

	inputs := map[string][]byte{
		"png":  encodePNG(t, src),
		"jpeg": jpgBuf.Bytes(),
		"gif":  gifBuf.Bytes(),
		"bmp":  bmpBuf.Bytes(),
		"tiff": tiffBuf.Bytes(),
	}

	targets := []transcode.TargetSpec{
		{Width: 350, Height: 450, MinSizeKB: 20, MaxSizeKB: 50},
		{Width: 413, Height: 531, MinSizeKB: 20, MaxSizeKB: 50},
		{Width: 480, Height: 640, MinSizeKB: 5, MaxSizeKB: 200},
	}

	for name, data := range inputs {
		for _, target := range targets {
			t.Run(name+" "+target.String(), func(t *testing.T) {
				result, err := transcode.Transcode(data, target)
				if err != nil {
					t.Fatalf("Transcode() failed: %v", err)
				}

				b := decodeJPEG(t, result.Data).Bounds()
				if b.Dx() != target.Width || b.Dy() != target.Height {
					t.Errorf("output = %dx%d, want %dx%d", b.Dx(), b.Dy(), target.Width, target.Height)
				}
				if result.Width != target.Width || result.Height != target.Height {
					t.Errorf("result dims = %dx%d", result.Width, result.Height)
				}
			})
		}
	}
}

func TestTranscode_Idempotent(t *testing.T) {
	data := encodePNG(t, gradient(640, 480, 200))
	target := transcode.TargetSpec{Width: 350, Height: 450, MinSizeKB: 20, MaxSizeKB: 50}

	first, err := transcode.Transcode(data, target)
	if err != nil {
		t.Fatalf("first Transcode() failed: %v", err)
	}
	second, err := transcode.Transcode(data, target)
	if err != nil {
		t.Fatalf("second Transcode() failed: %v", err)
	}

	if !bytes.Equal(first.Data, second.Data) {
		t.Error("repeated transcode produced different bytes")
	}
}

func TestTranscode_AlreadyFitsStillEncodesAt95(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, gradient(350, 450, 255), &jpeg.Options{Quality: 60}); err != nil {
		t.Fatal(err)
	}

	result, err := transcode.Transcode(buf.Bytes(), transcode.TargetSpec{Width: 350, Height: 450, MaxSizeKB: 1000})
	if err != nil {
		t.Fatalf("Transcode() failed: %v", err)
	}

	if result.Attempts != 1 || result.Quality != 95 {
		t.Errorf("attempts/quality = %d/%d, want 1/95", result.Attempts, result.Quality)
	}
}

func TestTranscode_AlphaProducesOpaqueJPEG(t *testing.T) {
	data := encodePNG(t, gradient(200, 200, 0))

	result, err := transcode.Transcode(data, transcode.TargetSpec{Width: 100, Height: 100, MaxSizeKB: 50})
	if err != nil {
		t.Fatalf("Transcode() failed: %v", err)
	}

	img := decodeJPEG(t, result.Data)
	if _, ok := img.(*image.YCbCr); !ok {
		t.Errorf("decoded output is %T, want *image.YCbCr", img)
	}

	r, g, b, a := img.At(50, 50).RGBA()
	if a != 0xffff {
		t.Errorf("alpha = %d, want opaque", a)
	}
	if r>>8 < 245 || g>>8 < 245 || b>>8 < 245 {
		t.Errorf("fully transparent source pixel = (%d,%d,%d), want near white", r>>8, g>>8, b>>8)
	}
}

func TestTranscode_SolidAlphaPNGToRRBNTPC(t *testing.T) {
	data := encodePNG(t, solid(1000, 1000, color.NRGBA{R: 40, G: 90, B: 160, A: 180}))
	target := transcode.TargetSpec{Width: 350, Height: 450, MinSizeKB: 20, MaxSizeKB: 50}

	result, err := transcode.Transcode(data, target)
	if err != nil {
		t.Fatalf("Transcode() failed: %v", err)
	}

	b := decodeJPEG(t, result.Data).Bounds()
	if b.Dx() != 350 || b.Dy() != 450 {
		t.Errorf("output = %dx%d, want 350x450", b.Dx(), b.Dy())
	}
	if result.SizeKB > 50 {
		t.Errorf("SizeKB = %.2f, want <= 50", result.SizeKB)
	}
	if result.Quality < 10 || result.Quality > 95 || result.Quality%5 != 0 {
		t.Errorf("Quality = %d, want a ladder value", result.Quality)
	}
	if result.Undersized != (result.SizeKB < 20) {
		t.Errorf("Undersized = %v with SizeKB %.2f", result.Undersized, result.SizeKB)
	}
}

func TestTranscode_NoiseAtFloor(t *testing.T) {
	data := encodePNG(t, noise(350, 450))
	target := transcode.TargetSpec{Width: 350, Height: 450, MinSizeKB: 0, MaxSizeKB: 2}

	result, err := transcode.Transcode(data, target)
	if err != nil {
		t.Fatalf("Transcode() returned %v, want soft failure", err)
	}

	if result.Quality != 10 {
		t.Errorf("Quality = %d, want 10", result.Quality)
	}
	if result.WithinBounds {
		t.Error("WithinBounds = true, want false")
	}
}

func TestTranscode_Errors(t *testing.T) {
	valid := encodePNG(t, gradient(10, 10, 255))

	tests := []struct {
		name   string
		data   []byte
		target transcode.TargetSpec
		want   error
		status int
	}{
		{"empty input", nil, transcode.TargetSpec{Width: 10, Height: 10, MaxSizeKB: 1}, transcode.ErrDecode, http.StatusUnprocessableEntity},
		{"garbage", []byte("not an image"), transcode.TargetSpec{Width: 10, Height: 10, MaxSizeKB: 1}, transcode.ErrDecode, http.StatusUnprocessableEntity},
		{"truncated png", valid[:len(valid)/2], transcode.TargetSpec{Width: 10, Height: 10, MaxSizeKB: 1}, transcode.ErrDecode, http.StatusUnprocessableEntity},
		{"zero width", valid, transcode.TargetSpec{Width: 0, Height: 10, MaxSizeKB: 1}, transcode.ErrInvalidDimensions, http.StatusBadRequest},
		{"negative height", valid, transcode.TargetSpec{Width: 10, Height: -5, MaxSizeKB: 1}, transcode.ErrInvalidDimensions, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := transcode.Transcode(tt.data, tt.target)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Transcode() error = %v, want %v", err, tt.want)
			}
			if got := transcode.MapHTTPStatus(err); got != tt.status {
				t.Errorf("MapHTTPStatus() = %d, want %d", got, tt.status)
			}
		})
	}
}

func TestTranscode_PixelLimit(t *testing.T) {
	rrb := transcode.TargetSpec{Width: 350, Height: 450, MinSizeKB: 20, MaxSizeKB: 50}

	t.Run("default limit rejects a 12000x12000 header", func(t *testing.T) {
		data := pngClaiming(t, 12000, 12000)

		info, err := transcode.Identify(data)
		if err != nil || info.Width != 12000 {
			t.Fatalf("Identify() = %+v, %v", info, err)
		}

		_, err = transcode.Transcode(data, rrb)
		if !errors.Is(err, transcode.ErrSourceTooLarge) {
			t.Fatalf("Transcode() error = %v, want ErrSourceTooLarge", err)
		}
		if got := transcode.MapHTTPStatus(err); got != http.StatusRequestEntityTooLarge {
			t.Errorf("MapHTTPStatus() = %d, want 413", got)
		}
	})

	t.Run("configured limit", func(t *testing.T) {
		cfg := transcode.DefaultConfig()
		cfg.MaxPixels = 20 * 20

		tr := transcode.New(cfg, slog.New(slog.DiscardHandler))
		data := encodePNG(t, gradient(21, 20, 255))
		if _, err := tr.Transcode(data, rrb); !errors.Is(err, transcode.ErrSourceTooLarge) {
			t.Errorf("Transcode(21x20) error = %v, want ErrSourceTooLarge", err)
		}

		data = encodePNG(t, gradient(20, 20, 255))
		if _, err := tr.Transcode(data, rrb); err != nil {
			t.Errorf("Transcode(20x20) error = %v", err)
		}
	})
}

func TestTargetSpec_Validate(t *testing.T) {
	tests := []struct {
		name   string
		target transcode.TargetSpec
		want   error
	}{
		{"valid", transcode.TargetSpec{Width: 350, Height: 450, MinSizeKB: 20, MaxSizeKB: 50}, nil},
		{"equal band", transcode.TargetSpec{Width: 1, Height: 1, MinSizeKB: 5, MaxSizeKB: 5}, nil},
		{"bad dims", transcode.TargetSpec{Width: 0, Height: 450, MaxSizeKB: 50}, transcode.ErrInvalidDimensions},
		{"negative min", transcode.TargetSpec{Width: 1, Height: 1, MinSizeKB: -1, MaxSizeKB: 5}, transcode.ErrInvalidTarget},
		{"zero max", transcode.TargetSpec{Width: 1, Height: 1}, transcode.ErrInvalidTarget},
		{"inverted band", transcode.TargetSpec{Width: 1, Height: 1, MinSizeKB: 60, MaxSizeKB: 50}, transcode.ErrInvalidTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.target.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestIdentify(t *testing.T) {
	data := encodePNG(t, gradient(120, 80, 128))

	info, err := transcode.Identify(data)
	if err != nil {
		t.Fatalf("Identify() failed: %v", err)
	}

	if info.Format != "png" || info.Width != 120 || info.Height != 80 {
		t.Errorf("info = %+v", info)
	}
	if info.ColorModel != "nrgba" {
		t.Errorf("ColorModel = %q, want nrgba", info.ColorModel)
	}
	if info.SizeKB != transcode.SizeKB(data) {
		t.Errorf("SizeKB = %v, want %v", info.SizeKB, transcode.SizeKB(data))
	}

	if _, err := transcode.Identify([]byte("nope")); !errors.Is(err, transcode.ErrDecode) {
		t.Errorf("Identify(garbage) error = %v, want ErrDecode", err)
	}
}
