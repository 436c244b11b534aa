package metadata

import "github.com/menta2k/zoom-mapper/pkg/geometry"

// Packing orders for the flat int32 buffers the metadata store carries.
// Raw buffer layout is confined to this file; everything above it works
// on geometry values.
//
//   crop region      4 ints:          left, top, width, height
//   face rectangles  4 ints per face: left, top, right, bottom
//   3A regions       5 ints per region: left, top, right, bottom, weight
//   face landmarks   6 ints per face: leftEyeX, leftEyeY, rightEyeX,
//                    rightEyeY, mouthX, mouthY

// DecodeCropRegion unpacks a crop-region entry
func DecodeCropRegion(data []int32) (geometry.Rect, bool) {
	if len(data) < 4 {
		return geometry.Rect{}, false
	}
	return geometry.RectLTWH(data[0], data[1], data[2], data[3]), true
}

// EncodeCropRegion packs a crop region for storage
func EncodeCropRegion(r geometry.Rect) []int32 {
	return []int32{r.Left, r.Top, r.Width(), r.Height()}
}

// DecodeRects unpacks a face-rectangle entry. A trailing partial tuple
// is ignored.
func DecodeRects(data []int32) []geometry.Rect {
	n := len(data) / 4
	if n == 0 {
		return nil
	}
	rects := make([]geometry.Rect, n)
	for i := 0; i < n; i++ {
		rects[i] = geometry.Rect{
			Left:   data[i*4],
			Top:    data[i*4+1],
			Right:  data[i*4+2],
			Bottom: data[i*4+3],
		}
	}
	return rects
}

// EncodeRects packs face rectangles for storage
func EncodeRects(rects []geometry.Rect) []int32 {
	data := make([]int32, 0, len(rects)*4)
	for _, r := range rects {
		data = append(data, r.Left, r.Top, r.Right, r.Bottom)
	}
	return data
}

// DecodeWeightedRegions unpacks a 3A-region entry
func DecodeWeightedRegions(data []int32) []geometry.WeightedRegion {
	n := len(data) / 5
	if n == 0 {
		return nil
	}
	regions := make([]geometry.WeightedRegion, n)
	for i := 0; i < n; i++ {
		regions[i] = geometry.WeightedRegion{
			Rect: geometry.Rect{
				Left:   data[i*5],
				Top:    data[i*5+1],
				Right:  data[i*5+2],
				Bottom: data[i*5+3],
			},
			Weight: data[i*5+4],
		}
	}
	return regions
}

// EncodeWeightedRegions packs 3A regions for storage
func EncodeWeightedRegions(regions []geometry.WeightedRegion) []int32 {
	data := make([]int32, 0, len(regions)*5)
	for _, wr := range regions {
		data = append(data, wr.Left, wr.Top, wr.Right, wr.Bottom, wr.Weight)
	}
	return data
}

// DecodeLandmarks unpacks a face-landmark entry
func DecodeLandmarks(data []int32) []geometry.FaceLandmarks {
	n := len(data) / 6
	if n == 0 {
		return nil
	}
	landmarks := make([]geometry.FaceLandmarks, n)
	for i := 0; i < n; i++ {
		landmarks[i] = geometry.FaceLandmarks{
			LeftEye:  geometry.Point{X: data[i*6], Y: data[i*6+1]},
			RightEye: geometry.Point{X: data[i*6+2], Y: data[i*6+3]},
			Mouth:    geometry.Point{X: data[i*6+4], Y: data[i*6+5]},
		}
	}
	return landmarks
}

// EncodeLandmarks packs face landmarks for storage
func EncodeLandmarks(landmarks []geometry.FaceLandmarks) []int32 {
	data := make([]int32, 0, len(landmarks)*6)
	for _, lm := range landmarks {
		data = append(data,
			lm.LeftEye.X, lm.LeftEye.Y,
			lm.RightEye.X, lm.RightEye.Y,
			lm.Mouth.X, lm.Mouth.Y,
		)
	}
	return data
}
