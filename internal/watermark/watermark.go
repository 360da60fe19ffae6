// Package watermark stamps a short text message onto an uploaded image.
package watermark

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"unicode/utf8"

	"github.com/Domenick1991/spaceflights/internal/domain"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	MinMessageLen = 10
	MaxMessageLen = 20

	originX = 10
	originY = 10
)

var (
	ErrMessageLength = fmt.Errorf("%w: message must be %d-%d characters", domain.ErrValidation, MinMessageLen, MaxMessageLen)
	ErrImageTooLarge = fmt.Errorf("%w: image dimensions exceed the limit", domain.ErrValidation)
)

// ValidateMessage counts characters, not bytes.
func ValidateMessage(message string) error {
	n := utf8.RuneCountInString(message)
	if n < MinMessageLen || n > MaxMessageLen {
		return ErrMessageLength
	}
	return nil
}

// Render decodes r, draws message in white with its top-left corner at (10,10) and returns PNG bytes.
// Images declaring more than maxPixels pixels are rejected before any pixel data is decoded.
// A maxPixels of zero disables the check.
func Render(r io.Reader, message string, maxPixels int64) ([]byte, error) {
	if err := ValidateMessage(message); err != nil {
		return nil, err
	}

	var header bytes.Buffer
	cfg, _, err := image.DecodeConfig(io.TeeReader(r, &header))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot decode image: %v", domain.ErrValidation, err)
	}
	if err := checkDimensions(cfg, maxPixels); err != nil {
		return nil, err
	}

	src, _, err := image.Decode(io.MultiReader(&header, r))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot decode image: %v", domain.ErrValidation, err)
	}

	bounds := src.Bounds()
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)

	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(bounds.Min.X+originX, bounds.Min.Y+originY+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(message)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func checkDimensions(cfg image.Config, maxPixels int64) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: cannot decode image: empty canvas", domain.ErrValidation)
	}
	if maxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		return fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
	}
	return nil
}
