package metadata

import "fmt"

// Tag identifies one entry in a capture metadata record
type Tag uint32

// Tags consumed and produced by the zoom mapper
const (
	TagControlZoomRatio Tag = iota + 1
	TagScalerCropRegion
	TagControlAERegions
	TagControlAFRegions
	TagControlAWBRegions
	TagStatisticsFaceDetectMode
	TagStatisticsFaceRectangles
	TagStatisticsFaceLandmarks
)

func (t Tag) String() string {
	switch t {
	case TagControlZoomRatio:
		return "ControlZoomRatio"
	case TagScalerCropRegion:
		return "ScalerCropRegion"
	case TagControlAERegions:
		return "ControlAERegions"
	case TagControlAFRegions:
		return "ControlAFRegions"
	case TagControlAWBRegions:
		return "ControlAWBRegions"
	case TagStatisticsFaceDetectMode:
		return "StatisticsFaceDetectMode"
	case TagStatisticsFaceRectangles:
		return "StatisticsFaceRectangles"
	case TagStatisticsFaceLandmarks:
		return "StatisticsFaceLandmarks"
	default:
		return fmt.Sprintf("Tag(%d)", uint32(t))
	}
}

// Face detect mode values carried by TagStatisticsFaceDetectMode
const (
	FaceDetectModeOff uint8 = iota
	FaceDetectModeSimple
	FaceDetectModeFull
)

// Metadata is the read/write view of one capture metadata record. A record
// holds zero or one entry per tag; each entry is a flat array of one
// primitive type. Getters report absence through the second return value.
type Metadata interface {
	Float32s(tag Tag) ([]float32, bool)
	Int32s(tag Tag) ([]int32, bool)
	Uint8s(tag Tag) ([]uint8, bool)

	SetFloat32s(tag Tag, data []float32) error
	SetInt32s(tag Tag, data []int32) error
	SetUint8s(tag Tag, data []uint8) error
}
