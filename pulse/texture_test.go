package pulse_test

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/oliverbestmann/learngl/pulse"
	"github.com/oliverbestmann/learngl/pulse/pulsetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoRowImage is red on the top row and blue on the bottom row.
func twoRowImage(alpha uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: alpha})
	img.SetNRGBA(1, 0, color.NRGBA{R: 255, A: alpha})
	img.SetNRGBA(0, 1, color.NRGBA{B: 255, A: alpha})
	img.SetNRGBA(1, 1, color.NRGBA{B: 255, A: alpha})
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func uploadOf(t *testing.T, gl *pulsetest.GL) pulsetest.Upload {
	t.Helper()

	require.Len(t, gl.Textures, 1)
	for _, upload := range gl.Textures {
		return upload
	}

	return pulsetest.Upload{}
}

func TestNewTextureFromImageFlipsRows(t *testing.T) {
	gl, ctx := newContext()

	texture, err := pulse.NewTextureFromImage(ctx, twoRowImage(255), pulse.DefaultTextureOptions)
	require.NoError(t, err)

	assert.Equal(t, int32(2), texture.Width())
	assert.Equal(t, int32(2), texture.Height())
	assert.Equal(t, 3, texture.Channels())

	upload := uploadOf(t, gl)
	require.Len(t, upload.Pixels, 2*2*4)

	// first uploaded row is the bottom row of the image
	assert.Equal(t, []byte{0, 0, 255, 255}, upload.Pixels[0:4])
	assert.Equal(t, []byte{255, 0, 0, 255}, upload.Pixels[8:12])

	assert.True(t, upload.Params.Mipmaps)
	assert.Equal(t, pulse.FilterLinearMipmapLinear, upload.Params.MinFilter)
	assert.Empty(t, gl.Errors)
}

func TestNewTextureFromImageWithoutFlip(t *testing.T) {
	gl, ctx := newContext()

	_, err := pulse.NewTextureFromImage(ctx, twoRowImage(255), pulse.TextureOptions{})
	require.NoError(t, err)

	upload := uploadOf(t, gl)
	assert.Equal(t, []byte{255, 0, 0, 255}, upload.Pixels[0:4])
}

func TestNewTextureFromImageKeepsStraightAlpha(t *testing.T) {
	gl, ctx := newContext()

	img := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 128})
	img.SetNRGBA(0, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 64})

	_, err := pulse.NewTextureFromImage(ctx, img, pulse.DefaultTextureOptions)
	require.NoError(t, err)

	upload := uploadOf(t, gl)
	assert.Equal(t, []byte{10, 20, 30, 64, 200, 100, 50, 128}, upload.Pixels)
}

func TestNewTextureFromImageScalesDown(t *testing.T) {
	gl, ctx := newContext()

	img := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for y := range 4 {
		for x := range 8 {
			img.SetNRGBA(x, y, color.NRGBA{G: 200, A: 255})
		}
	}

	opts := pulse.DefaultTextureOptions
	opts.MaxSize = 4

	texture, err := pulse.NewTextureFromImage(ctx, img, opts)
	require.NoError(t, err)

	assert.Equal(t, int32(4), texture.Width())
	assert.Equal(t, int32(2), texture.Height())

	upload := uploadOf(t, gl)
	assert.Equal(t, int32(4), upload.Width)
	assert.Equal(t, int32(2), upload.Height)
	require.Len(t, upload.Pixels, 4*2*4)
	assert.InDelta(t, 200, int(upload.Pixels[1]), 1)
	assert.InDelta(t, 255, int(upload.Pixels[3]), 1)
}

func TestNewTextureFromImageBelowMaxSize(t *testing.T) {
	gl, ctx := newContext()

	opts := pulse.DefaultTextureOptions
	opts.MaxSize = 16

	_, err := pulse.NewTextureFromImage(ctx, twoRowImage(255), opts)
	require.NoError(t, err)
	assert.Equal(t, int32(2), uploadOf(t, gl).Width)
}

func TestTextureChannels(t *testing.T) {
	_, ctx := newContext()

	withAlpha, err := pulse.NewTextureFromImage(ctx, twoRowImage(128), pulse.TextureOptions{})
	require.NoError(t, err)
	assert.Equal(t, 4, withAlpha.Channels())

	gray, err := pulse.NewTextureFromImage(ctx, image.NewGray(image.Rect(0, 0, 4, 4)), pulse.TextureOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, gray.Channels())
}

func TestNewTextureFromEmptyImageFails(t *testing.T) {
	gl, ctx := newContext()

	_, err := pulse.NewTextureFromImage(ctx, image.NewRGBA(image.Rectangle{}), pulse.TextureOptions{})
	assert.Error(t, err)
	assert.Zero(t, gl.LiveTotal())
}

func TestDecodeImage(t *testing.T) {
	img, err := pulse.DecodeImage(bytes.NewReader(encodePNG(t, twoRowImage(255))))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())

	var jpegBuf bytes.Buffer
	require.NoError(t, jpeg.Encode(&jpegBuf, image.NewRGBA(image.Rect(0, 0, 8, 8)), nil))

	img, err = pulse.DecodeImage(&jpegBuf)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())

	_, err = pulse.DecodeImage(bytes.NewReader([]byte("not an image")))

	var decodeErr *pulse.DecodeError
	assert.ErrorAs(t, err, &decodeErr)
	assert.ErrorIs(t, err, image.ErrFormat)
}

func TestLoadTexture(t *testing.T) {
	gl, ctx := newContext()

	path := filepath.Join(t.TempDir(), "face.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, twoRowImage(200)), 0o644))

	texture, err := pulse.LoadTexture(ctx, path, pulse.DefaultTextureOptions)
	require.NoError(t, err)

	texture.Bind(1)
	assert.Contains(t, gl.Textures, gl.BoundTextures[1])
	assert.Equal(t, 4, texture.Channels())
}

func TestLoadTextureReportsMissingFile(t *testing.T) {
	gl, ctx := newContext()

	_, err := pulse.LoadTexture(ctx, filepath.Join(t.TempDir(), "missing.jpg"), pulse.DefaultTextureOptions)

	var decodeErr *pulse.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Contains(t, decodeErr.Path, "missing.jpg")
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Zero(t, gl.LiveTotal())
}

func TestLoadTextureOrUsesFallback(t *testing.T) {
	gl, ctx := newContext()

	fallback := pulse.NoiseImage(16, 8, 1)

	texture, err := pulse.LoadTextureOr(ctx, filepath.Join(t.TempDir(), "missing.jpg"), pulse.TextureOptions{}, fallback)
	require.NoError(t, err)

	assert.Equal(t, int32(16), texture.Width())
	assert.Equal(t, int32(8), texture.Height())

	upload := uploadOf(t, gl)
	assert.Equal(t, []byte(fallback.Pix), upload.Pixels)
}

func TestNoiseImage(t *testing.T) {
	img := pulse.NoiseImage(32, 32, 7)
	assert.Equal(t, image.Rect(0, 0, 32, 32), img.Bounds())
	assert.True(t, img.Opaque())

	// deterministic for the same seed
	assert.Equal(t, img.Pix, pulse.NoiseImage(32, 32, 7).Pix)

	distinct := map[uint8]bool{}
	for idx := 0; idx < len(img.Pix); idx += 4 {
		distinct[img.Pix[idx]] = true
	}

	assert.Greater(t, len(distinct), 1, "noise must not be a flat color")
}

func TestTextureReleaseIsIdempotent(t *testing.T) {
	gl, ctx := newContext()

	texture, err := pulse.NewTextureFromImage(ctx, twoRowImage(255), pulse.TextureOptions{})
	require.NoError(t, err)

	texture.Bind(0)
	texture.Release()
	texture.Release()
	ctx.Release()

	assert.Equal(t, 1, gl.Deleted[pulsetest.KindTexture])
	assert.Empty(t, gl.BoundTextures)
	assert.Empty(t, gl.Errors)
}
