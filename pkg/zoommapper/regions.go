package zoommapper

import (
	"github.com/menta2k/zoom-mapper/pkg/geometry"
	"github.com/menta2k/zoom-mapper/pkg/metadata"
)

// The four region appliers. Each one reads its tag, transforms every
// element with the ratio it was handed, and writes the whole array back.
// An absent or empty tag skips only that applier; a failed write leaves
// the tag at its previous value. Neither aborts the enclosing pipeline.

func (m *Mapper) updateCropRegion(md metadata.Metadata, ratio float32, array geometry.Size, forward bool) {
	data, ok := md.Int32s(metadata.TagScalerCropRegion)
	if !ok || len(data) == 0 {
		zmLog.Debug().Msg("crop region not published")
		return
	}
	rect, ok := metadata.DecodeCropRegion(data)
	if !ok {
		zmLog.Error().Int("count", len(data)).Msg("crop region entry is truncated")
		return
	}

	if forward {
		rect = ConvertZoomRatio(ratio, rect, array)
	} else {
		rect = RevertZoomRatio(ratio, rect, array)
	}

	zmLog.Debug().
		Int32("left", rect.Left).Int32("top", rect.Top).
		Int32("width", rect.Width()).Int32("height", rect.Height()).
		Msg("set crop region")

	if err := md.SetInt32s(metadata.TagScalerCropRegion, metadata.EncodeCropRegion(rect)); err != nil {
		zmLog.Error().Err(err).Msg("updating crop region failed")
	}
}

func (m *Mapper) update3ARegions(md metadata.Metadata, ratio float32, tag metadata.Tag, array geometry.Size, forward bool) {
	data, ok := md.Int32s(tag)
	if !ok || len(data) == 0 {
		zmLog.Debug().Stringer("tag", tag).Msg("3A regions not published")
		return
	}
	regions := metadata.DecodeWeightedRegions(data)

	for i, wr := range regions {
		if forward {
			regions[i].Rect = ConvertZoomRatio(ratio, wr.Rect, array)
		} else {
			regions[i].Rect = RevertZoomRatio(ratio, wr.Rect, array)
		}
		// weight passes through untouched
	}

	if err := md.SetInt32s(tag, metadata.EncodeWeightedRegions(regions)); err != nil {
		zmLog.Error().Err(err).Stringer("tag", tag).Msg("updating 3A regions failed")
	}
}

func (m *Mapper) updateFaceRectangles(md metadata.Metadata, ratio float32, array geometry.Size) {
	data, ok := md.Int32s(metadata.TagStatisticsFaceRectangles)
	if !ok || len(data) == 0 {
		zmLog.Debug().Msg("no face rectangles found")
		return
	}
	rects := metadata.DecodeRects(data)

	for i, r := range rects {
		rects[i] = RevertZoomRatio(ratio, r, array)
	}

	if err := md.SetInt32s(metadata.TagStatisticsFaceRectangles, metadata.EncodeRects(rects)); err != nil {
		zmLog.Error().Err(err).Msg("updating face rectangles failed")
	}
}

func (m *Mapper) updateFaceLandmarks(md metadata.Metadata, ratio float32, array geometry.Size) {
	data, ok := md.Int32s(metadata.TagStatisticsFaceLandmarks)
	if !ok || len(data) == 0 {
		zmLog.Debug().Msg("no face landmarks found")
		return
	}
	landmarks := metadata.DecodeLandmarks(data)

	for i, lm := range landmarks {
		landmarks[i] = geometry.FaceLandmarks{
			LeftEye:  RevertPoint(ratio, lm.LeftEye, array),
			RightEye: RevertPoint(ratio, lm.RightEye, array),
			Mouth:    RevertPoint(ratio, lm.Mouth, array),
		}
	}

	if err := md.SetInt32s(metadata.TagStatisticsFaceLandmarks, metadata.EncodeLandmarks(landmarks)); err != nil {
		zmLog.Error().Err(err).Msg("updating face landmarks failed")
	}
}
