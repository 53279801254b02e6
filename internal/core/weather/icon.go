package weather

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const placeholderSize = 100

var (
	placeholderOnce sync.Once
	placeholderPNG  []byte
)

// PlaceholderIcon returns a fresh copy of the PNG shown whenever a real icon is unavailable
func PlaceholderIcon() []byte {
	placeholderOnce.Do(func() {
		placeholderPNG = renderPlaceholder()
	})
	return bytes.Clone(placeholderPNG)
}

func renderPlaceholder() []byte {
	img := image.NewRGBA(image.Rect(0, 0, placeholderSize, placeholderSize))

	for y := 0; y < placeholderSize; y++ {
		progress := float64(y) / float64(placeholderSize)
		c := color.RGBA{R: uint8(200 - progress*40), G: uint8(210 - progress*40), B: uint8(225 - progress*30), A: 255}
		for x := 0; x < placeholderSize; x++ {
			img.SetRGBA(x, y, c)
		}
	}

	face := basicfont.Face7x13
	label := FallbackDescription
	width := font.MeasureString(face, label).Round()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: 60, G: 60, B: 70, A: 255}),
		Face: face,
		Dot:  fixed.P((placeholderSize-width)/2, placeholderSize/2+face.Ascent/2),
	}
	d.DrawString(label)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		// encoding an in-memory RGBA image cannot fail
		panic(err)
	}
	return buf.Bytes()
}
