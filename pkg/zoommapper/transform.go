package zoommapper

import (
	"math"

	"github.com/menta2k/zoom-mapper/pkg/geometry"
)

// ConvertZoomRatio maps a rectangle from full active-array coordinates onto
// the window the device samples at the given zoom ratio. For ratio >= 1 the
// result is corrected to lie within the array: the origin is shifted inward
// so the size survives, and the size is clipped only when the rectangle is
// larger than the array itself. Zooming out never pushes the window outside
// the array, so no correction applies there.
//
// The caller guarantees a finite, non-zero ratio (see Mapper.resolveRatio).
func ConvertZoomRatio(ratio float32, r geometry.Rect, array geometry.Size) geometry.Rect {
	z := float64(ratio)
	left := roundi(float64(r.Left)/z + 0.5*float64(array.Width)*(1-1/z))
	top := roundi(float64(r.Top)/z + 0.5*float64(array.Height)*(1-1/z))
	width := roundi(float64(r.Width()) / z)
	height := roundi(float64(r.Height()) / z)

	if ratio >= 1.0 {
		left, top, width, height = correctRegionBoundary(
			left, top, width, height, array.Width, array.Height)
	}
	return geometry.RectLTWH(left, top, width, height)
}

// RevertZoomRatio is the algebraic inverse of ConvertZoomRatio: it expands a
// rectangle reported in zoom-corrected device coordinates back to full
// active-array coordinates. Device-reported rectangles already lie inside
// the sampled window, so no boundary correction is applied.
func RevertZoomRatio(ratio float32, r geometry.Rect, array geometry.Size) geometry.Rect {
	z := float64(ratio)
	left := roundi(float64(r.Left)*z - 0.5*float64(array.Width)*(z-1))
	top := roundi(float64(r.Top)*z - 0.5*float64(array.Height)*(z-1))
	width := roundi(float64(r.Width()) * z)
	height := roundi(float64(r.Height()) * z)
	return geometry.RectLTWH(left, top, width, height)
}

// RevertPoint applies the reverse affine mapping to a single point, treating
// it as a zero-size rectangle's corner. Used for face landmarks.
func RevertPoint(ratio float32, p geometry.Point, array geometry.Size) geometry.Point {
	z := float64(ratio)
	return geometry.Point{
		X: roundi(float64(p.X)*z - 0.5*float64(array.Width)*(z-1)),
		Y: roundi(float64(p.Y)*z - 0.5*float64(array.Height)*(z-1)),
	}
}

// correctRegionBoundary moves a rectangle into [0,boundW) x [0,boundH),
// preferring an origin shift over a size change
func correctRegionBoundary(left, top, width, height, boundW, boundH int32) (int32, int32, int32, int32) {
	if width > boundW {
		width = boundW
	}
	if height > boundH {
		height = boundH
	}
	if left < 0 {
		left = 0
	}
	if left+width > boundW {
		left = boundW - width
	}
	if top < 0 {
		top = 0
	}
	if top+height > boundH {
		top = boundH - height
	}
	return left, top, width, height
}

// roundi rounds half away from zero, the rounding the device contract uses
func roundi(v float64) int32 {
	return int32(math.Round(v))
}
