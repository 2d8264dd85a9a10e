package gfx

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"io/fs"
	"os"

	"golang.org/x/image/draw"
)

// LoadPNG decodes an image file from disk into RGBA.
func LoadPNG(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return ToRGBA(img), nil
}

// LoadImage decodes name from fsys.
func LoadImage(fsys fs.FS, name string) (*image.RGBA, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return ToRGBA(img), nil
}

// ToRGBA returns img as *image.RGBA with origin (0,0), copying when needed.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Rect, img, b.Min, draw.Src)
	return out
}

// Resize scales src to exactly w x h with nearest neighbour sampling, keeping
// the chunky look of the low resolution modes.
func Resize(src image.Image, w, h int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(out, out.Rect, src, src.Bounds(), draw.Src, nil)
	return out
}

// Texture is a square power of two RGBA texture with wrapping lookups.
type Texture struct {
	Pix  []color.RGBA
	Size int
	mask int
}

// NewTexture resamples img to size x size. size must be a power of two.
func NewTexture(img image.Image, size int) *Texture {
	rgba := Resize(img, size, size)
	t := &Texture{Pix: make([]color.RGBA, size*size), Size: size, mask: size - 1}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			i := rgba.PixOffset(x, y)
			t.Pix[y*size+x] = color.RGBA{rgba.Pix[i], rgba.Pix[i+1], rgba.Pix[i+2], 0xff}
		}
	}
	return t
}

// XORTexture is the classic procedural x^y pattern tinted by c.
func XORTexture(size int, c color.RGBA) *Texture {
	t := &Texture{Pix: make([]color.RGBA, size*size), Size: size, mask: size - 1}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := float64(((x*256/size)^(y*256/size))&0xff) / 255
			t.Pix[y*size+x] = Shade(c, 0.25+0.75*v)
		}
	}
	return t
}

// At returns the texel at (u, v), wrapping both coordinates.
func (t *Texture) At(u, v int) color.RGBA {
	return t.Pix[(v&t.mask)*t.Size+(u&t.mask)]
}

// NewTextureFunc builds a size x size texture from a texel generator.
func NewTextureFunc(size int, f func(x, y int) color.RGBA) *Texture {
	t := &Texture{Pix: make([]color.RGBA, size*size), Size: size, mask: size - 1}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			t.Pix[y*size+x] = f(x, y)
		}
	}
	return t
}
