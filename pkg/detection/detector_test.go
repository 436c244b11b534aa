package detection

import (
	"testing"

	"github.com/menta2k/zoom-mapper/pkg/geometry"
	"github.com/menta2k/zoom-mapper/pkg/metadata"
)

var testBounds = geometry.Size{Width: 1000, Height: 800}

const cleanResponse = `{
  "faces": [
    {
      "box": {"left": 100, "top": 100, "right": 299, "bottom": 349},
      "left_eye": {"x": 150, "y": 180},
      "right_eye": {"x": 250, "y": 180},
      "mouth": {"x": 200, "y": 300},
      "confidence": 0.92
    }
  ]
}`

func TestParseFaces_CleanJSON(t *testing.T) {
	faces := parseFaces(cleanResponse, testBounds)
	if len(faces) != 1 {
		t.Fatalf("parsed %d faces, want 1", len(faces))
	}

	f := faces[0]
	if f.Box != (geometry.Rect{Left: 100, Top: 100, Right: 299, Bottom: 349}) {
		t.Errorf("box = %+v", f.Box)
	}
	if f.Landmarks.LeftEye != (geometry.Point{X: 150, Y: 180}) {
		t.Errorf("left eye = %+v", f.Landmarks.LeftEye)
	}
	if f.Confidence != 0.92 {
		t.Errorf("confidence = %v, want 0.92", f.Confidence)
	}
}

func TestParseFaces_FencedJSON(t *testing.T) {
	fenced := "```json\n" + cleanResponse + "\n```"
	faces := parseFaces(fenced, testBounds)
	if len(faces) != 1 {
		t.Fatalf("parsed %d faces from fenced response, want 1", len(faces))
	}
}

func TestParseFaces_GarbageYieldsNoFaces(t *testing.T) {
	if faces := parseFaces("I see two people at a table.", testBounds); len(faces) != 0 {
		t.Errorf("parsed %d faces from prose, want 0", len(faces))
	}
	if faces := parseFaces(`{"faces": []}`, testBounds); len(faces) != 0 {
		t.Errorf("parsed %d faces from empty list, want 0", len(faces))
	}
}

func TestParseFaces_ClampsToBounds(t *testing.T) {
	raw := `{"faces":[{"box":{"left":-50,"top":700,"right":1200,"bottom":900},
		"left_eye":{"x":-10,"y":750},"right_eye":{"x":999,"y":750},
		"mouth":{"x":500,"y":1000},"confidence":0.5}]}`

	faces := parseFaces(raw, testBounds)
	if len(faces) != 1 {
		t.Fatalf("parsed %d faces, want 1", len(faces))
	}
	if faces[0].Box != (geometry.Rect{Left: 0, Top: 700, Right: 999, Bottom: 799}) {
		t.Errorf("clamped box = %+v", faces[0].Box)
	}
	if faces[0].Landmarks.Mouth != (geometry.Point{X: 500, Y: 799}) {
		t.Errorf("clamped mouth = %+v", faces[0].Landmarks.Mouth)
	}
}

func TestParseFaces_DropsDegenerateBox(t *testing.T) {
	raw := `{"faces":[{"box":{"left":300,"top":300,"right":200,"bottom":200},
		"left_eye":{"x":0,"y":0},"right_eye":{"x":0,"y":0},
		"mouth":{"x":0,"y":0},"confidence":0.9}]}`

	if faces := parseFaces(raw, testBounds); len(faces) != 0 {
		t.Errorf("kept %d degenerate faces, want 0", len(faces))
	}
}

func TestPublish_ModeGatesWhatIsWritten(t *testing.T) {
	faces := parseFaces(cleanResponse, testBounds)

	cases := []struct {
		mode          uint8
		wantRects     bool
		wantLandmarks bool
	}{
		{metadata.FaceDetectModeOff, false, false},
		{metadata.FaceDetectModeSimple, true, false},
		{metadata.FaceDetectModeFull, true, true},
	}

	for _, tc := range cases {
		md := metadata.NewStore()
		if err := Publish(md, faces, tc.mode); err != nil {
			t.Fatalf("Publish(mode=%d): %v", tc.mode, err)
		}

		mode, ok := md.Uint8s(metadata.TagStatisticsFaceDetectMode)
		if !ok || mode[0] != tc.mode {
			t.Errorf("mode %d: stored detect mode = %v, %v", tc.mode, mode, ok)
		}
		if _, ok := md.Int32s(metadata.TagStatisticsFaceRectangles); ok != tc.wantRects {
			t.Errorf("mode %d: rectangles present = %v, want %v", tc.mode, ok, tc.wantRects)
		}
		if _, ok := md.Int32s(metadata.TagStatisticsFaceLandmarks); ok != tc.wantLandmarks {
			t.Errorf("mode %d: landmarks present = %v, want %v", tc.mode, ok, tc.wantLandmarks)
		}
	}
}
