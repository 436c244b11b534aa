package zoommapper

import (
	"math"
	"testing"

	"github.com/menta2k/zoom-mapper/pkg/geometry"
)

var testArray = geometry.Size{Width: 4000, Height: 3000}

func TestConvertZoomRatio_CenteredHalfWindow(t *testing.T) {
	full := geometry.RectLTWH(0, 0, 4000, 3000)

	got := ConvertZoomRatio(2.0, full, testArray)

	want := geometry.RectLTWH(1000, 750, 2000, 1500)
	if got != want {
		t.Errorf("ConvertZoomRatio(2.0, full array) = %+v, want %+v", got, want)
	}
}

func TestRevertZoomRatio_InvertsConvert(t *testing.T) {
	full := geometry.RectLTWH(0, 0, 4000, 3000)

	window := ConvertZoomRatio(2.0, full, testArray)
	got := RevertZoomRatio(2.0, window, testArray)

	if got != full {
		t.Errorf("RevertZoomRatio(ConvertZoomRatio(full)) = %+v, want %+v", got, full)
	}
}

func TestRoundTrip_WithinOneUnit(t *testing.T) {
	rects := []geometry.Rect{
		geometry.RectLTWH(0, 0, 4000, 3000),
		geometry.RectLTWH(100, 200, 640, 480),
		geometry.RectLTWH(1999, 1499, 3, 3),
		geometry.RectLTWH(3500, 2500, 400, 400),
	}
	ratios := []float32{0.5, 0.7, 1.0, 1.3, 2.0, 3.7, 4.0}

	for _, r := range rects {
		for _, ratio := range ratios {
			window := ConvertZoomRatio(ratio, r, testArray)
			back := RevertZoomRatio(ratio, window, testArray)

			// the forward rounding error of up to half a pixel is
			// magnified by the ratio on the way back
			tol := int32(math.Ceil(math.Max(1, float64(ratio)/2)))
			if absDiff(back.Left, r.Left) > tol || absDiff(back.Top, r.Top) > tol ||
				absDiff(back.Width(), r.Width()) > tol || absDiff(back.Height(), r.Height()) > tol {
				t.Errorf("round trip of %+v at ratio %v drifted to %+v", r, ratio, back)
			}
		}
	}
}

func TestConvertZoomRatio_ShiftsIntoBounds(t *testing.T) {
	// lands at (3500,2750) with size 1000x800, overflowing the array on
	// both axes; the origin must shift inward with the size intact
	r := geometry.RectLTWH(5000, 4000, 2000, 1600)

	got := ConvertZoomRatio(2.0, r, testArray)

	want := geometry.RectLTWH(3000, 2200, 1000, 800)
	if got != want {
		t.Errorf("ConvertZoomRatio = %+v, want %+v", got, want)
	}
	if !got.In(testArray) {
		t.Errorf("corrected rect %+v still outside %+v", got, testArray)
	}
}

func TestConvertZoomRatio_ClipsOversizeRect(t *testing.T) {
	r := geometry.RectLTWH(-1000, -1000, 10000, 9000)

	got := ConvertZoomRatio(1.0, r, testArray)

	want := geometry.RectLTWH(0, 0, 4000, 3000)
	if got != want {
		t.Errorf("ConvertZoomRatio of oversize rect = %+v, want %+v", got, want)
	}
}

func TestConvertZoomRatio_NoCorrectionWhenZoomingOut(t *testing.T) {
	// at ratio 0.5 the full array maps to a rect twice its size; the
	// output must be left alone, not forced into bounds
	full := geometry.RectLTWH(0, 0, 4000, 3000)

	got := ConvertZoomRatio(0.5, full, testArray)

	want := geometry.RectLTWH(-2000, -1500, 8000, 6000)
	if got != want {
		t.Errorf("ConvertZoomRatio(0.5) = %+v, want %+v", got, want)
	}
}

func TestRevertPoint(t *testing.T) {
	cases := []struct {
		ratio float32
		in    geometry.Point
		want  geometry.Point
	}{
		{2.0, geometry.Point{X: 1000, Y: 750}, geometry.Point{X: 0, Y: 0}},
		{2.0, geometry.Point{X: 2000, Y: 1500}, geometry.Point{X: 2000, Y: 1500}},
		{2.0, geometry.Point{X: 1500, Y: 1000}, geometry.Point{X: 1000, Y: 500}},
		{1.0, geometry.Point{X: 123, Y: 456}, geometry.Point{X: 123, Y: 456}},
	}

	for _, tc := range cases {
		got := RevertPoint(tc.ratio, tc.in, testArray)
		if got != tc.want {
			t.Errorf("RevertPoint(%v, %+v) = %+v, want %+v", tc.ratio, tc.in, got, tc.want)
		}
	}
}

func absDiff(a, b int32) int32 {
	if a > b {
		return a - b
	}
	return b - a
}
