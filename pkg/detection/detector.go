package detection

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/menta2k/zoom-mapper/pkg/client"
	"github.com/menta2k/zoom-mapper/pkg/geometry"
	"github.com/menta2k/zoom-mapper/pkg/metadata"
)

// detLog is the sub-logger for the detection package
var detLog zerolog.Logger = log.With().Str("module", "detection").Logger()

// FacePrompt asks a vision model for every visible face in pixel coordinates
const FacePrompt = `You are a face locator.

Return JSON only:
{
  "faces": [
    {
      "box": {"left": 0, "top": 0, "right": 0, "bottom": 0},
      "left_eye": {"x": 0, "y": 0},
      "right_eye": {"x": 0, "y": 0},
      "mouth": {"x": 0, "y": 0},
      "confidence": 0.0
    }
  ]
}

HARD RULES
- All coordinates are integer PIXELS in the image, origin top-left.
- box bounds are inclusive; left < right and top < bottom.
- left_eye, right_eye and mouth are single points inside the box.
- Include every clearly visible human face; omit uncertain ones.
- If there are no faces, return {"faces": []}.
- JSON only. No markdown, no code fences, no comments, no trailing commas.`

// Face is one detected face in the coordinate space of the analyzed image
type Face struct {
	Box        geometry.Rect
	Landmarks  geometry.FaceLandmarks
	Confidence float64
}

// Detector finds faces in an image using a vision model backend
type Detector struct {
	client client.VisionClient
}

// NewDetector creates a detector on top of a vision client
func NewDetector(c client.VisionClient) *Detector {
	return &Detector{client: c}
}

// DetectFaces asks the model for faces and returns them clamped to the
// image bounds. A model response without usable JSON yields an empty list,
// not an error; the backends are best-effort.
func (d *Detector) DetectFaces(ctx context.Context, model, imgB64 string, bounds geometry.Size) ([]Face, error) {
	raw, err := d.client.Query(ctx, model, FacePrompt, imgB64)
	if err != nil {
		return nil, fmt.Errorf("vision query failed: %w", err)
	}
	return parseFaces(raw, bounds), nil
}

// wire structs for the model's JSON
type faceResponse struct {
	Faces []wireFace `json:"faces"`
}

type wireFace struct {
	Box        wireBox   `json:"box"`
	LeftEye    wirePoint `json:"left_eye"`
	RightEye   wirePoint `json:"right_eye"`
	Mouth      wirePoint `json:"mouth"`
	Confidence float64   `json:"confidence"`
}

type wireBox struct {
	Left   int32 `json:"left"`
	Top    int32 `json:"top"`
	Right  int32 `json:"right"`
	Bottom int32 `json:"bottom"`
}

type wirePoint struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

func parseFaces(raw string, bounds geometry.Size) []Face {
	raw = sanitizeModelJSON(raw)

	var resp faceResponse
	if err := sonic.UnmarshalString(raw, &resp); err != nil {
		detLog.Warn().Err(err).Msg("model response is not usable JSON, treating as no faces")
		return nil
	}

	faces := make([]Face, 0, len(resp.Faces))
	for _, wf := range resp.Faces {
		box := clampRect(geometry.Rect{
			Left:   wf.Box.Left,
			Top:    wf.Box.Top,
			Right:  wf.Box.Right,
			Bottom: wf.Box.Bottom,
		}, bounds)
		if box.Empty() {
			detLog.Warn().Interface("box", wf.Box).Msg("dropping degenerate face box")
			continue
		}
		faces = append(faces, Face{
			Box: box,
			Landmarks: geometry.FaceLandmarks{
				LeftEye:  clampPoint(geometry.Point{X: wf.LeftEye.X, Y: wf.LeftEye.Y}, bounds),
				RightEye: clampPoint(geometry.Point{X: wf.RightEye.X, Y: wf.RightEye.Y}, bounds),
				Mouth:    clampPoint(geometry.Point{X: wf.Mouth.X, Y: wf.Mouth.Y}, bounds),
			},
			Confidence: wf.Confidence,
		})
	}
	return faces
}

// Publish writes the faces into a metadata record the way a device
// reporting them would: the detect mode, the rectangles for simple and
// full modes, the landmarks for full mode only.
func Publish(md metadata.Metadata, faces []Face, mode uint8) error {
	if err := md.SetUint8s(metadata.TagStatisticsFaceDetectMode, []uint8{mode}); err != nil {
		return fmt.Errorf("writing face detect mode: %w", err)
	}
	if mode != metadata.FaceDetectModeSimple && mode != metadata.FaceDetectModeFull {
		return nil
	}

	rects := make([]geometry.Rect, len(faces))
	for i, f := range faces {
		rects[i] = f.Box
	}
	if err := md.SetInt32s(metadata.TagStatisticsFaceRectangles, metadata.EncodeRects(rects)); err != nil {
		return fmt.Errorf("writing face rectangles: %w", err)
	}

	if mode == metadata.FaceDetectModeFull {
		landmarks := make([]geometry.FaceLandmarks, len(faces))
		for i, f := range faces {
			landmarks[i] = f.Landmarks
		}
		if err := md.SetInt32s(metadata.TagStatisticsFaceLandmarks, metadata.EncodeLandmarks(landmarks)); err != nil {
			return fmt.Errorf("writing face landmarks: %w", err)
		}
	}
	return nil
}

func clampRect(r geometry.Rect, bounds geometry.Size) geometry.Rect {
	if r.Left < 0 {
		r.Left = 0
	}
	if r.Top < 0 {
		r.Top = 0
	}
	if r.Right >= bounds.Width {
		r.Right = bounds.Width - 1
	}
	if r.Bottom >= bounds.Height {
		r.Bottom = bounds.Height - 1
	}
	return r
}

func clampPoint(p geometry.Point, bounds geometry.Size) geometry.Point {
	if p.X < 0 {
		p.X = 0
	}
	if p.Y < 0 {
		p.Y = 0
	}
	if p.X >= bounds.Width {
		p.X = bounds.Width - 1
	}
	if p.Y >= bounds.Height {
		p.Y = bounds.Height - 1
	}
	return p
}
