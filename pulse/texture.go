package pulse

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"log/slog"
	"os"

	_ "image/jpeg"
	_ "image/png"

	"github.com/anthonynsimon/bild/transform"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DecodeError reports an image that could not be read or decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return "decode image: " + e.Err.Error()
	}

	return fmt.Sprintf("decode image %q: %s", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

type TextureOptions struct {
	Wrap      Wrap
	MinFilter Filter
	MagFilter Filter

	// FlipY flips the image vertically while uploading. Images are stored
	// top row first, while texture coordinates start at the bottom.
	FlipY bool

	// Mipmaps generates a full mipmap chain after upload.
	Mipmaps bool

	// MaxSize limits the larger side of the uploaded texture. Larger images
	// are scaled down keeping their aspect ratio. Zero means no limit.
	MaxSize int
}

// DefaultTextureOptions matches what most of the tutorial programs use.
var DefaultTextureOptions = TextureOptions{
	Wrap:      WrapRepeat,
	MinFilter: FilterLinearMipmapLinear,
	MagFilter: FilterLinear,
	FlipY:     true,
	Mipmaps:   true,
}

// Texture is a 2d RGBA texture. It is uploaded once and never changes.
type Texture struct {
	gl     GL
	handle uint32

	width    int32
	height   int32
	channels int
}

// DecodeImage decodes a png, jpeg, bmp or webp image.
func DecodeImage(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	return img, nil
}

// ReadImage reads and decodes the image file at path.
func ReadImage(path string) (image.Image, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	img, _, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	return img, nil
}

// LoadTexture reads, decodes and uploads the image file at path.
func LoadTexture(ctx *Context, path string, opts TextureOptions) (*Texture, error) {
	img, err := ReadImage(path)
	if err != nil {
		return nil, err
	}

	return NewTextureFromImage(ctx, img, opts)
}

// LoadTextureOr works like LoadTexture, but uploads the fallback image if
// the file can not be read or decoded.
func LoadTextureOr(ctx *Context, path string, opts TextureOptions, fallback image.Image) (*Texture, error) {
	img, err := ReadImage(path)
	if err != nil {
		slog.Warn("Using fallback texture",
			slog.String("path", path),
			slog.String("err", err.Error()),
		)

		img = fallback
	}

	return NewTextureFromImage(ctx, img, opts)
}

// NewTextureFromImage converts the image to RGBA with straight alpha and
// uploads it.
// The texture is released together with the context.
func NewTextureFromImage(ctx *Context, src image.Image, opts TextureOptions) (*Texture, error) {
	iw, ih := src.Bounds().Dx(), src.Bounds().Dy()
	if iw == 0 || ih == 0 {
		return nil, fmt.Errorf("create texture: image is empty (%dx%d)", iw, ih)
	}

	var pixels *image.NRGBA

	if opts.MaxSize > 0 && max(iw, ih) > opts.MaxSize {
		scale := float64(opts.MaxSize) / float64(max(iw, ih))
		width := max(1, int(float64(iw)*scale))
		height := max(1, int(float64(ih)*scale))

		slog.Info("Scale down texture",
			slog.String("from", fmt.Sprintf("%dx%d", iw, ih)),
			slog.String("to", fmt.Sprintf("%dx%d", width, height)),
		)

		// filtering works on premultiplied colors, the upload does not
		pixels = toNRGBA(transform.Resize(src, width, height, transform.Linear))
		iw, ih = width, height
	} else {
		pixels = toNRGBA(src)
	}

	if opts.FlipY {
		flipRows(pixels)
	}

	t := &Texture{
		gl:       ctx.GL,
		width:    int32(iw),
		height:   int32(ih),
		channels: channelsOf(src),
	}

	t.handle = ctx.CreateTexture()
	ctx.TexImage2D(t.handle, t.width, t.height, pixels.Pix, TextureParams{
		Wrap:      opts.Wrap,
		MinFilter: opts.MinFilter,
		MagFilter: opts.MagFilter,
		Mipmaps:   opts.Mipmaps,
	})

	ctx.track(t)

	slog.Debug("Texture uploaded",
		slog.Int("width", iw),
		slog.Int("height", ih),
		slog.Int("channels", t.channels),
	)

	return t, nil
}

// Bind binds the texture to the given texture unit.
func (t *Texture) Bind(unit uint32) {
	t.gl.BindTexture(unit, t.handle)
}

func (t *Texture) Width() int32 {
	return t.width
}

func (t *Texture) Height() int32 {
	return t.height
}

// Channels returns the number of channels of the source image:
// 1 for grayscale, 3 for opaque color and 4 for images with alpha.
// The uploaded texture always has four channels.
func (t *Texture) Channels() int {
	return t.channels
}

// Release deletes the texture. Calling Release more than once has no effect.
func (t *Texture) Release() {
	if t.handle != 0 {
		t.gl.DeleteTexture(t.handle)
		t.handle = 0
	}
}

func channelsOf(img image.Image) int {
	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model:
		return 1
	}

	if opaque, ok := img.(interface{ Opaque() bool }); ok && opaque.Opaque() {
		return 3
	}

	return 4
}

// toNRGBA copies the image into a tightly packed buffer with straight,
// not premultiplied, alpha.
func toNRGBA(src image.Image) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)
	return dst
}

func flipRows(img *image.NRGBA) {
	height := img.Bounds().Dy()
	rowLen := img.Bounds().Dx() * 4

	tmp := make([]byte, rowLen)
	for top, bottom := 0, height-1; top < bottom; top, bottom = top+1, bottom-1 {
		topRow := img.Pix[top*img.Stride : top*img.Stride+rowLen]
		bottomRow := img.Pix[bottom*img.Stride : bottom*img.Stride+rowLen]

		copy(tmp, topRow)
		copy(topRow, bottomRow)
		copy(bottomRow, tmp)
	}
}
