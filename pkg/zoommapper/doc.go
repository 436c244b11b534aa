// Package zoommapper keeps spatial capture metadata consistent across zoom.
//
// An application drives a camera in full active-array coordinates; the
// device, sampling a narrower window at zoom ratios above 1, operates in
// zoom-corrected coordinates. This package rewrites the metadata that
// crosses that boundary: the scaler crop region and the AE/AF/AWB metering
// regions on outgoing requests, and the same regions plus face rectangles
// and landmarks on incoming results.
//
// Basic usage:
//
//	mapper := zoommapper.New()
//	mapper.Initialize(zoommapper.InitParams{
//		ActiveArray: geometry.Size{Width: 4000, Height: 3000},
//		PhysicalActiveArrays: map[uint32]geometry.Size{
//			2: {Width: 3264, Height: 2448},
//		},
//		ZoomRange: geometry.ZoomRange{Min: 0.5, Max: 4.0},
//	})
//
//	// before handing a request to the device
//	mapper.UpdateCaptureRequest(&zoommapper.CaptureRequest{Settings: settings})
//
//	// after receiving a result from the device
//	mapper.UpdateCaptureResult(&zoommapper.CaptureResult{Metadata: result})
//
// Every failure inside the mapper is local: a missing field skips that
// field, an unknown physical camera skips that stream, a failed write keeps
// the previous value. Nothing propagates, so one bad frame never stalls the
// pipeline.
package zoommapper
