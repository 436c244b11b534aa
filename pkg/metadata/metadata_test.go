package metadata

import (
	"testing"

	"github.com/menta2k/zoom-mapper/pkg/geometry"
)

func TestStore_SetGet(t *testing.T) {
	s := NewStore()

	if _, ok := s.Float32s(TagControlZoomRatio); ok {
		t.Error("empty store reported an entry")
	}

	if err := s.SetFloat32s(TagControlZoomRatio, []float32{2.5}); err != nil {
		t.Fatalf("SetFloat32s: %v", err)
	}
	data, ok := s.Float32s(TagControlZoomRatio)
	if !ok || len(data) != 1 || data[0] != 2.5 {
		t.Errorf("Float32s = %v, %v; want [2.5], true", data, ok)
	}
}

func TestStore_SetCopiesInput(t *testing.T) {
	s := NewStore()
	in := []int32{1, 2, 3, 4}
	if err := s.SetInt32s(TagScalerCropRegion, in); err != nil {
		t.Fatalf("SetInt32s: %v", err)
	}

	in[0] = 99

	data, _ := s.Int32s(TagScalerCropRegion)
	if data[0] != 1 {
		t.Error("store aliased the caller's slice")
	}
}

func TestStore_RejectsTypeChange(t *testing.T) {
	s := NewStore()
	if err := s.SetFloat32s(TagControlZoomRatio, []float32{1.0}); err != nil {
		t.Fatalf("SetFloat32s: %v", err)
	}

	if err := s.SetInt32s(TagControlZoomRatio, []int32{1}); err == nil {
		t.Error("expected an error writing int32 over a float32 entry")
	}

	// original entry survives the rejected write
	data, ok := s.Float32s(TagControlZoomRatio)
	if !ok || data[0] != 1.0 {
		t.Errorf("entry after rejected write = %v, %v", data, ok)
	}
}

func TestCropRegionCodec(t *testing.T) {
	r, ok := DecodeCropRegion([]int32{100, 200, 640, 480})
	if !ok {
		t.Fatal("DecodeCropRegion failed")
	}
	want := geometry.Rect{Left: 100, Top: 200, Right: 739, Bottom: 679}
	if r != want {
		t.Errorf("DecodeCropRegion = %+v, want %+v", r, want)
	}

	out := EncodeCropRegion(r)
	if len(out) != 4 || out[0] != 100 || out[1] != 200 || out[2] != 640 || out[3] != 480 {
		t.Errorf("EncodeCropRegion = %v, want [100 200 640 480]", out)
	}

	if _, ok := DecodeCropRegion([]int32{1, 2, 3}); ok {
		t.Error("DecodeCropRegion accepted a truncated entry")
	}
}

func TestWeightedRegionCodec(t *testing.T) {
	data := []int32{0, 0, 99, 99, 7, 10, 20, 30, 40, -1}
	regions := DecodeWeightedRegions(data)
	if len(regions) != 2 {
		t.Fatalf("decoded %d regions, want 2", len(regions))
	}
	if regions[0].Weight != 7 || regions[1].Weight != -1 {
		t.Errorf("weights = %d, %d; want 7, -1", regions[0].Weight, regions[1].Weight)
	}
	if regions[1].Rect != (geometry.Rect{Left: 10, Top: 20, Right: 30, Bottom: 40}) {
		t.Errorf("region 1 rect = %+v", regions[1].Rect)
	}
}

func TestRectCodec_IgnoresTrailingPartialTuple(t *testing.T) {
	rects := DecodeRects([]int32{0, 0, 9, 9, 5, 5})
	if len(rects) != 1 {
		t.Fatalf("decoded %d rects, want 1", len(rects))
	}
	if rects[0] != (geometry.Rect{Left: 0, Top: 0, Right: 9, Bottom: 9}) {
		t.Errorf("rect = %+v", rects[0])
	}
}

func TestLandmarkCodec(t *testing.T) {
	data := []int32{10, 11, 20, 21, 30, 31}
	landmarks := DecodeLandmarks(data)
	if len(landmarks) != 1 {
		t.Fatalf("decoded %d landmark sets, want 1", len(landmarks))
	}
	lm := landmarks[0]
	if lm.LeftEye != (geometry.Point{X: 10, Y: 11}) ||
		lm.RightEye != (geometry.Point{X: 20, Y: 21}) ||
		lm.Mouth != (geometry.Point{X: 30, Y: 31}) {
		t.Errorf("landmarks = %+v", lm)
	}

	out := EncodeLandmarks(landmarks)
	for i := range data {
		if out[i] != data[i] {
			t.Fatalf("EncodeLandmarks = %v, want %v", out, data)
		}
	}
}
