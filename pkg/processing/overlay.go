package processing

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/menta2k/zoom-mapper/pkg/geometry"
)

// Overlay colors
var (
	cropColor     = color.NRGBA{255, 204, 0, 255} // crop window
	faceColor     = color.NRGBA{0, 255, 0, 255}   // face rectangles
	landmarkColor = color.NRGBA{255, 0, 0, 255}   // landmark crosses
)

// DrawRegions returns a copy of img with the crop window, the face
// rectangles and the landmark points drawn on top. Any empty rect is
// skipped. All inputs are in the image's own pixel coordinates.
func (p *Processor) DrawRegions(img image.Image, crop geometry.Rect, faces []geometry.Rect, landmarks []geometry.FaceLandmarks) image.Image {
	nrgba := imaging.Clone(img)
	w := nrgba.Bounds().Dx()
	h := nrgba.Bounds().Dy()

	stroke := int(math.Max(2, 0.004*float64(minInt(w, h))))
	cross := int(math.Max(4, 0.01*float64(minInt(w, h))))

	if !crop.Empty() {
		drawRect(nrgba, crop, cropColor, stroke)
	}
	for _, f := range faces {
		if !f.Empty() {
			drawRect(nrgba, f, faceColor, stroke)
		}
	}
	for _, lm := range landmarks {
		for _, pt := range []geometry.Point{lm.LeftEye, lm.RightEye, lm.Mouth} {
			drawCross(nrgba, pt, cross, landmarkColor)
		}
	}

	return nrgba
}

func drawRect(img *image.NRGBA, r geometry.Rect, c color.NRGBA, stroke int) {
	x0, y0 := int(r.Left), int(r.Top)
	x1, y1 := int(r.Right)+1, int(r.Bottom)+1
	for s := 0; s < stroke; s++ {
		drawHLine(img, y0+s, x0, x1, c)
		drawHLine(img, y1-1-s, x0, x1, c)
		drawVLine(img, x0+s, y0, y1, c)
		drawVLine(img, x1-1-s, y0, y1, c)
	}
}

func drawCross(img *image.NRGBA, p geometry.Point, size int, c color.NRGBA) {
	drawHLine(img, int(p.Y), int(p.X)-size, int(p.X)+size, c)
	drawVLine(img, int(p.X), int(p.Y)-size, int(p.Y)+size, c)
}

func drawHLine(img *image.NRGBA, y, x0, x1 int, c color.NRGBA) {
	if y < 0 || y >= img.Bounds().Dy() {
		return
	}
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if x1 <= 0 || x0 >= img.Bounds().Dx() {
		return
	}
	if x0 < 0 {
		x0 = 0
	}
	if x1 > img.Bounds().Dx() {
		x1 = img.Bounds().Dx()
	}
	i := y*img.Stride + x0*4
	for x := x0; x < x1; x++ {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
		i += 4
	}
}

func drawVLine(img *image.NRGBA, x, y0, y1 int, c color.NRGBA) {
	if x < 0 || x >= img.Bounds().Dx() {
		return
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	if y1 <= 0 || y0 >= img.Bounds().Dy() {
		return
	}
	if y0 < 0 {
		y0 = 0
	}
	if y1 > img.Bounds().Dy() {
		y1 = img.Bounds().Dy()
	}
	i := y0*img.Stride + x*4
	for y := y0; y < y1; y++ {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
		i += img.Stride
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
