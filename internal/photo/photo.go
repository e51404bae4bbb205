package photo

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	DefaultMaxWidth = 1600
	DefaultQuality  = 80

	ContentType = "image/webp"
)

// Normalizer re-encodes uploads as WebP, shrinking anything wider than
// MaxWidth while keeping the aspect ratio.
type Normalizer struct {
	MaxWidth int
	Quality  float32
}

func NewNormalizer() *Normalizer {
	return &Normalizer{MaxWidth: DefaultMaxWidth, Quality: DefaultQuality}
}

func (n *Normalizer) Normalize(data []byte) ([]byte, string, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}

	img := n.resize(src)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: n.Quality}); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), ContentType, nil
}

func (n *Normalizer) resize(src image.Image) image.Image {
	b := src.Bounds()
	if n.MaxWidth <= 0 || b.Dx() <= n.MaxWidth {
		return src
	}

	h := b.Dy() * n.MaxWidth / b.Dx()
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, n.MaxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
