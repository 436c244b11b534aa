package zoommapper

import (
	"github.com/menta2k/zoom-mapper/pkg/geometry"
	"github.com/menta2k/zoom-mapper/pkg/metadata"
)

// InitParams carries the immutable device geometry the mapper works against
type InitParams struct {
	// ActiveArray is the primary sensor's full pixel array
	ActiveArray geometry.Size
	// PhysicalActiveArrays maps a physical camera id to that sensor's
	// active array, for multi-camera rigs
	PhysicalActiveArrays map[uint32]geometry.Size
	// ZoomRange bounds the zoom ratios the device accepts
	ZoomRange geometry.ZoomRange
}

// CaptureRequest is the outgoing side of one capture: application-space
// metadata about to be handed to the device
type CaptureRequest struct {
	Settings         metadata.Metadata
	PhysicalSettings map[uint32]metadata.Metadata
}

// CaptureResult is the incoming side: device-space metadata reported back
// for one frame
type CaptureResult struct {
	Metadata         metadata.Metadata
	PhysicalMetadata map[uint32]metadata.Metadata
}

// Mapper rewrites spatial capture metadata between full active-array
// coordinates and zoom-corrected device coordinates.
//
// Initialize must complete before the first Update call; after that the
// mapper is read-only and safe to share across concurrent pipelines, as
// long as each call owns the records it passes in.
type Mapper struct {
	activeArray          geometry.Size
	physicalActiveArrays map[uint32]geometry.Size
	zoomRange            geometry.ZoomRange
	supported            bool
}

// New returns a mapper that no-ops until Initialize is called
func New() *Mapper {
	return &Mapper{}
}

// Initialize copies the device geometry into the mapper and enables it.
// Called exactly once, during device configuration.
func (m *Mapper) Initialize(params InitParams) {
	m.activeArray = params.ActiveArray
	m.physicalActiveArrays = make(map[uint32]geometry.Size, len(params.PhysicalActiveArrays))
	for id, size := range params.PhysicalActiveArrays {
		m.physicalActiveArrays[id] = size
	}
	m.zoomRange = params.ZoomRange
	m.supported = true
}

// UpdateCaptureRequest maps the request's crop and 3A regions from full
// active-array coordinates onto the zoom-corrected window, for the primary
// settings and every configured physical camera's settings
func (m *Mapper) UpdateCaptureRequest(request *CaptureRequest) {
	if request == nil {
		zmLog.Error().Msg("request is nil")
		return
	}
	if !m.supported {
		zmLog.Debug().Msg("zoom ratio is not supported")
		return
	}

	if request.Settings != nil {
		m.applyZoomRatio(request.Settings, m.activeArray, true, false)
	}

	for cameraID, md := range request.PhysicalSettings {
		if md == nil {
			continue
		}
		size, ok := m.physicalActiveArrays[cameraID]
		if !ok {
			zmLog.Error().Uint32("camera_id", cameraID).Msg("physical camera id is not configured")
			continue
		}
		m.applyZoomRatio(md, size, true, false)
	}
}

// UpdateCaptureResult maps the result's crop and 3A regions back to full
// active-array coordinates, and on the primary metadata also the face
// rectangles and landmarks, gated by the reported face detect mode
func (m *Mapper) UpdateCaptureResult(result *CaptureResult) {
	if result == nil {
		zmLog.Error().Msg("result is nil")
		return
	}
	if !m.supported {
		zmLog.Debug().Msg("zoom ratio is not supported")
		return
	}

	if result.Metadata != nil {
		m.applyZoomRatio(result.Metadata, m.activeArray, false, true)
	}

	for cameraID, md := range result.PhysicalMetadata {
		if md == nil {
			continue
		}
		size, ok := m.physicalActiveArrays[cameraID]
		if !ok {
			zmLog.Error().Uint32("camera_id", cameraID).Msg("physical camera id is not configured")
			continue
		}
		// face data is only reported on the primary stream
		m.applyZoomRatio(md, size, false, false)
	}
}

// applyZoomRatio runs the per-record pipeline: resolve the ratio once, then
// feed it to every region applier. Without a resolved ratio there is no
// transform, so the record is left untouched.
func (m *Mapper) applyZoomRatio(md metadata.Metadata, array geometry.Size, forward, withFaces bool) {
	ratio, ok := m.resolveRatio(md)
	if !ok {
		return
	}

	m.updateCropRegion(md, ratio, array, forward)
	m.update3ARegions(md, ratio, metadata.TagControlAERegions, array, forward)
	m.update3ARegions(md, ratio, metadata.TagControlAFRegions, array, forward)
	m.update3ARegions(md, ratio, metadata.TagControlAWBRegions, array, forward)

	if !withFaces {
		return
	}

	modeData, ok := md.Uint8s(metadata.TagStatisticsFaceDetectMode)
	if !ok || len(modeData) == 0 {
		zmLog.Debug().Msg("face detect mode not published")
		return
	}

	// full mode reports landmarks on top of the rectangles simple mode has
	switch modeData[0] {
	case metadata.FaceDetectModeFull:
		m.updateFaceLandmarks(md, ratio, array)
		fallthrough
	case metadata.FaceDetectModeSimple:
		m.updateFaceRectangles(md, ratio, array)
	}
}

// resolveRatio reads the record's zoom ratio and clamps it to the supported
// range. One resolved ratio is shared by every applier for the record.
func (m *Mapper) resolveRatio(md metadata.Metadata) (float32, bool) {
	data, ok := md.Float32s(metadata.TagControlZoomRatio)
	if !ok || len(data) == 0 {
		zmLog.Error().Msg("failed to get the zoom ratio")
		return 0, false
	}

	ratio, clamped := m.zoomRange.Clamp(data[0])
	if clamped {
		zmLog.Warn().
			Float32("zoom_ratio", data[0]).
			Float32("min", m.zoomRange.Min).
			Float32("max", m.zoomRange.Max).
			Msg("zoom ratio outside supported range, clamped")
	}
	return ratio, true
}
