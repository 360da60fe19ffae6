package watermark

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/Domenick1991/spaceflights/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blackPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.Black)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestValidateMessage(t *testing.T) {
	cases := map[string]bool{
		"short":                 false,
		"exactly10!":            true,
		"fifteen chars!!":       true,
		"twenty characters!!!":  true,
		"twenty-one characters": false,
		"лунная база":           true,
		"":                      false,
	}
	for msg, ok := range cases {
		err := ValidateMessage(msg)
		if ok {
			assert.NoError(t, err, msg)
		} else {
			assert.ErrorIs(t, err, domain.ErrValidation, msg)
		}
	}
}

func TestRender_DrawsWhiteText(t *testing.T) {
	out, err := Render(bytes.NewReader(blackPNG(t, 200, 60)), "Hello Moon Base", 0)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 200, 60), img.Bounds())

	white := 0
	for y := 0; y < 60; y++ {
		for x := 0; x < 200; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r == 0xffff && g == 0xffff && b == 0xffff {
				white++
				assert.GreaterOrEqual(t, x, originX)
				assert.GreaterOrEqual(t, y, originY)
			}
		}
	}
	assert.Greater(t, white, 0)
}

func TestRender_ShortMessage(t *testing.T) {
	_, err := Render(bytes.NewReader(blackPNG(t, 20, 20)), "short", 0)
	assert.ErrorIs(t, err, ErrMessageLength)
}

func TestRender_NotAnImage(t *testing.T) {
	_, err := Render(strings.NewReader("plain text"), "valid message", 0)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// headerOnlyPNG is a signature plus an IHDR chunk declaring a w x h 8-bit grayscale canvas.
func headerOnlyPNG(w, h uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], w)
	binary.BigEndian.PutUint32(ihdr[4:], h)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 0 // grayscale

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestRender_RejectsHugeDeclaredCanvas(t *testing.T) {
	upload := headerOnlyPNG(100000, 100000)
	require.Less(t, len(upload), 64)

	_, err := Render(bytes.NewReader(upload), "Hello Moon Base", 16<<20)
	assert.ErrorIs(t, err, ErrImageTooLarge)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRender_PixelLimit(t *testing.T) {
	img := blackPNG(t, 200, 60)

	_, err := Render(bytes.NewReader(img), "Hello Moon Base", 200*60)
	assert.NoError(t, err)

	_, err = Render(bytes.NewReader(img), "Hello Moon Base", 200*60-1)
	assert.ErrorIs(t, err, ErrImageTooLarge)
}
