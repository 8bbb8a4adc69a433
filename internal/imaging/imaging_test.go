package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/chai2010/webp"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png: %v", err)
	}
	return buf.Bytes()
}

func TestToWebP_Downscales(t *testing.T) {
	res, err := ToWebP(bytes.NewReader(pngOf(t, 400, 200)), Options{MaxDimension: 100, Quality: 80})
	if err != nil {
		t.Fatalf("ToWebP: %v", err)
	}
	if res.Width != 100 || res.Height != 50 {
		t.Fatalf("size = %dx%d", res.Width, res.Height)
	}

	cfg, err := webp.DecodeConfig(bytes.NewReader(res.Data))
	if err != nil {
		t.Fatalf("output is not webp: %v", err)
	}
	if cfg.Width != 100 || cfg.Height != 50 {
		t.Fatalf("encoded size = %dx%d", cfg.Width, cfg.Height)
	}
}

func TestToWebP_PortraitAndSmall(t *testing.T) {
	res, err := ToWebP(bytes.NewReader(pngOf(t, 60, 120)), Options{MaxDimension: 30, Quality: 80})
	if err != nil {
		t.Fatalf("ToWebP: %v", err)
	}
	if res.Width != 15 || res.Height != 30 {
		t.Fatalf("portrait size = %dx%d", res.Width, res.Height)
	}

	res, err = ToWebP(bytes.NewReader(pngOf(t, 20, 10)), Options{MaxDimension: 30, Quality: 80})
	if err != nil {
		t.Fatalf("ToWebP: %v", err)
	}
	if res.Width != 20 || res.Height != 10 {
		t.Fatalf("small image resized to %dx%d", res.Width, res.Height)
	}
}

func TestToWebP_RejectsGarbage(t *testing.T) {
	_, err := ToWebP(strings.NewReader("not an image"), Options{Quality: 80})
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("err = %v", err)
	}
}
