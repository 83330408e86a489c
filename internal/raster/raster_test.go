package raster

import (
	"bytes"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buffos/go-roadmap/internal/scene"
)

func sampleScene() *scene.Scene {
	sc := scene.New(120, 60, "#FFFFFF")
	sc.Add(
		scene.Rect{X: 0, Y: 0, W: 40, H: 30, Fill: "#FF0000"},
		scene.Rect{X: 50, Y: 10, W: 40, H: 20, Fill: "#70AD47", Radius: 4, Stroke: "black", StrokeWidth: 1},
		scene.Line{X1: 100, Y1: 0, X2: 100, Y2: 60, Color: "#0000FF", Width: 2, Dashed: true},
		scene.Text{X: 60, Y: 45, Content: "Alpha Demo", Font: scene.Font{Size: 11, Bold: true}, Color: "black", Anchor: scene.AnchorMiddle},
		scene.Polygon{Points: scene.Diamond(20, 45, 10), Fill: "#C00000"},
	)
	return sc
}

func TestPaintFillsBackgroundAndShapes(t *testing.T) {
	img, err := Paint(sampleScene())
	require.NoError(t, err)

	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 60, img.Bounds().Dy())

	r, g, b, _ := img.At(10, 10).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Zero(t, g)
	assert.Zero(t, b)

	assert.Equal(t, color.RGBAModel.Convert(color.White), color.RGBAModel.Convert(img.At(115, 55)))
}

func TestPaintRejectsBadColour(t *testing.T) {
	sc := scene.New(10, 10, "#FFFFFF")
	sc.Add(scene.Rect{W: 5, H: 5, Fill: "not-a-colour"})

	_, err := Paint(sc)
	assert.ErrorIs(t, err, scene.ErrInvalidColour)
}

func TestEncodeFormats(t *testing.T) {
	var pngBuf bytes.Buffer
	require.NoError(t, Encode(&pngBuf, sampleScene(), "png"))
	cfg, err := png.DecodeConfig(&pngBuf)
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.Width)

	var jpgBuf bytes.Buffer
	require.NoError(t, Encode(&jpgBuf, sampleScene(), "jpeg"))
	_, err = jpeg.Decode(&jpgBuf)
	require.NoError(t, err)

	assert.Error(t, Encode(&bytes.Buffer{}, sampleScene(), "gif"))
}
