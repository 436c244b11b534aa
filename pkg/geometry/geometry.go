package geometry

// Size describes the active pixel array of a camera sensor
type Size struct {
	Width  int32
	Height int32
}

// Rect is a rectangle with inclusive pixel bounds.
// An empty rect has Right = Left-1 (zero width).
type Rect struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

// RectLTWH builds a Rect from a left/top/width/height quadruple
func RectLTWH(left, top, width, height int32) Rect {
	return Rect{
		Left:   left,
		Top:    top,
		Right:  left + width - 1,
		Bottom: top + height - 1,
	}
}

// Width returns the pixel width of the rectangle
func (r Rect) Width() int32 {
	return r.Right - r.Left + 1
}

// Height returns the pixel height of the rectangle
func (r Rect) Height() int32 {
	return r.Bottom - r.Top + 1
}

// Empty reports whether the rectangle covers no pixels
func (r Rect) Empty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// In reports whether the rectangle lies fully inside the given array
func (r Rect) In(array Size) bool {
	return r.Left >= 0 && r.Top >= 0 && r.Right < array.Width && r.Bottom < array.Height
}

// WeightedRegion is a metering/targeting rectangle with a weight.
// The weight is opaque to every transform and passes through unchanged.
type WeightedRegion struct {
	Rect
	Weight int32
}

// Point is a 2D pixel coordinate
type Point struct {
	X int32
	Y int32
}

// FaceLandmarks holds the three landmark points reported per detected face
type FaceLandmarks struct {
	LeftEye  Point
	RightEye Point
	Mouth    Point
}

// ZoomRange holds the inclusive zoom-ratio bounds a device accepts
type ZoomRange struct {
	Min float32
	Max float32
}

// Clamp forces ratio into the range and reports whether it had to
func (z ZoomRange) Clamp(ratio float32) (float32, bool) {
	if ratio < z.Min {
		return z.Min, true
	}
	if ratio > z.Max {
		return z.Max, true
	}
	return ratio, false
}

// Valid reports whether the range bounds are usable
func (z ZoomRange) Valid() bool {
	return z.Min > 0 && z.Max >= z.Min
}
