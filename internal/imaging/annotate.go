package imaging

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/mj1618/mobile-locator/internal/model"
)

// Box is one rectangle to draw, in device space.
type Box struct {
	Bounds model.Bounds
	Label  string
}

var (
	boxColor     = color.RGBA{R: 255, A: 255}
	textColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor = color.RGBA{A: 200}
)

// Annotate draws every box and its label onto a copy of img. Device
// coordinates are scaled to image pixels using the ratio of the image size
// to the device window size; a zero window axis means no scaling.
func Annotate(img image.Image, boxes []Box, window model.Size) *image.RGBA {
	rgba := toRGBA(img)

	ib := img.Bounds()
	scaleX, scaleY := 1.0, 1.0
	if window.Width > 0 {
		scaleX = float64(ib.Dx()) / float64(window.Width)
	}
	if window.Height > 0 {
		scaleY = float64(ib.Dy()) / float64(window.Height)
	}

	for _, b := range boxes {
		x := ib.Min.X + int(float64(b.Bounds.X)*scaleX)
		y := ib.Min.Y + int(float64(b.Bounds.Y)*scaleY)
		w := int(float64(b.Bounds.Width) * scaleX)
		h := int(float64(b.Bounds.Height) * scaleY)
		drawRectangle(rgba, x, y, x+w, y+h, boxColor)
		if b.Label != "" {
			drawTextWithOutline(rgba, b.Label, x+w/2, y+h/2)
		}
	}
	return rgba
}

func toRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}

// drawRectangle draws a one-pixel outline clamped to the image.
func drawRectangle(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	bounds := img.Bounds()
	x1, y1 = max(x1, bounds.Min.X), max(y1, bounds.Min.Y)
	x2, y2 = min(x2, bounds.Max.X), min(y2, bounds.Max.Y)
	if x2 <= x1 || y2 <= y1 {
		return
	}
	for x := x1; x < x2; x++ {
		img.Set(x, y1, c)
		img.Set(x, y2-1, c)
	}
	for y := y1; y < y2; y++ {
		img.Set(x1, y, c)
		img.Set(x2-1, y, c)
	}
}

// drawTextWithOutline centers text on (x, y) with a dark one-pixel outline.
func drawTextWithOutline(img *image.RGBA, text string, x, y int) {
	// basicfont.Face7x13 glyphs are 7x13.
	offsetX := x - len(text)*7/2
	offsetY := y + 13/2

	paint := func(dx, dy int, c color.Color) {
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(c),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(offsetX+dx, offsetY+dy),
		}
		d.DrawString(text)
	}
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx != 0 || dy != 0 {
				paint(dx, dy, outlineColor)
			}
		}
	}
	paint(0, 0, textColor)
}
