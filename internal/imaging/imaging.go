// Package imaging turns uploaded clinical photos into bounded WebP images.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

// ContentType of every image produced by ToWebP.
const ContentType = "image/webp"

// ErrUnsupported is returned for input that no registered decoder accepts.
var ErrUnsupported = errors.New("imaging: unsupported image")

type Options struct {
	// MaxDimension bounds the longer side; zero keeps the original size.
	MaxDimension int
	Quality      float32
}

type Result struct {
	Data   []byte
	Width  int
	Height int
}

// ToWebP decodes jpeg, png, gif, bmp, tiff or webp and re-encodes it as
// lossy WebP, downscaled to fit MaxDimension.
func ToWebP(r io.Reader, opt Options) (Result, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}

	img := fit(src, opt.MaxDimension)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: opt.Quality}); err != nil {
		return Result{}, fmt.Errorf("encode webp: %w", err)
	}

	b := img.Bounds()
	return Result{Data: buf.Bytes(), Width: b.Dx(), Height: b.Dy()}, nil
}

// fit keeps the aspect ratio; images already within limit are returned as is.
func fit(src image.Image, limit int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if limit <= 0 || (w <= limit && h <= limit) {
		return src
	}

	if w >= h {
		h = h * limit / w
		w = limit
	} else {
		w = w * limit / h
		h = limit
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
