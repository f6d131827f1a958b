package image

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToWebP_FromPNG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for x := 0; x < 40; x++ {
		for y := 0; y < 30; y++ {
			src.Set(x, y, color.RGBA{R: uint8(x * 6), G: uint8(y * 8), B: 120, A: 255})
		}
	}
	var in bytes.Buffer
	require.NoError(t, png.Encode(&in, src))

	out, err := ToWebP(&in, DefaultQuality)
	require.NoError(t, err)

	decoded, err := webp.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), decoded.Bounds())
}

func TestToWebP_RejectsNonImage(t *testing.T) {
	_, err := ToWebP(strings.NewReader("definitely not an image"), DefaultQuality)
	assert.Error(t, err)
}
