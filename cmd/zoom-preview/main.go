package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/menta2k/zoom-mapper/internal/config"
	"github.com/menta2k/zoom-mapper/pkg/detection"
	"github.com/menta2k/zoom-mapper/pkg/geometry"
	"github.com/menta2k/zoom-mapper/pkg/metadata"
	"github.com/menta2k/zoom-mapper/pkg/ollama"
	"github.com/menta2k/zoom-mapper/pkg/processing"
	"github.com/menta2k/zoom-mapper/pkg/zoommapper"
)

func main() {
	var in, cfgPath, outDir, ext, modeName, serverURL, model string
	var zoom float64
	var quality int
	var lossless, detect bool

	flag.StringVar(&in, "in", "", "input image path (jpg/png/webp)")
	flag.StringVar(&cfgPath, "config", "", "device config file (defaults: active array = image size)")
	flag.Float64Var(&zoom, "zoom", 2.0, "zoom ratio to simulate")
	flag.StringVar(&outDir, "out", "out", "output directory")
	flag.StringVar(&ext, "ext", "webp", "output format: jpg|png|webp")
	flag.IntVar(&quality, "quality", 90, "JPEG/WebP output quality (1-100)")
	flag.BoolVar(&lossless, "lossless", false, "WebP lossless mode")
	flag.BoolVar(&detect, "detect", false, "detect faces in the zoomed window and map them back")
	flag.StringVar(&modeName, "mode", "full", "simulated face detect mode: simple|full")
	flag.StringVar(&serverURL, "url", "", "vision server URL (default from config)")
	flag.StringVar(&model, "model", "", "vision model name (default from config)")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if in == "" {
		log.Fatal().Msgf("usage: %s -in input.jpg [-zoom 2.0] [-detect] [-config device.json]",
			filepath.Base(os.Args[0]))
	}

	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
		cfg = loaded
	}
	cfg.Preview.OutputDir = outDir
	cfg.Preview.Format = ext
	cfg.Preview.Quality = quality
	cfg.Preview.Lossless = lossless
	if serverURL != "" {
		cfg.Detection.ServerURL = serverURL
	}
	if model != "" {
		cfg.Detection.Model = model
	}

	processor := processing.NewProcessor()
	img, err := processor.LoadImage(in)
	if err != nil {
		log.Fatal().Err(err).Str("path", in).Msg("failed to load image")
	}
	imgSize := processor.ArraySize(img)

	// without a config the image itself plays the active array
	if cfgPath == "" {
		cfg.Device.ActiveArray = config.SizeConfig{Width: imgSize.Width, Height: imgSize.Height}
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	mapper := zoommapper.New()
	mapper.Initialize(cfg.InitParams())

	array := geometry.Size{
		Width:  cfg.Device.ActiveArray.Width,
		Height: cfg.Device.ActiveArray.Height,
	}

	if err := os.MkdirAll(cfg.Preview.OutputDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("failed to create output directory")
	}

	// outgoing request: the application asks for the full active array
	settings := metadata.NewStore()
	if err := settings.SetFloat32s(metadata.TagControlZoomRatio, []float32{float32(zoom)}); err != nil {
		log.Fatal().Err(err).Msg("failed to seed request metadata")
	}
	if err := settings.SetInt32s(metadata.TagScalerCropRegion,
		[]int32{0, 0, array.Width, array.Height}); err != nil {
		log.Fatal().Err(err).Msg("failed to seed request metadata")
	}

	mapper.UpdateCaptureRequest(&zoommapper.CaptureRequest{Settings: settings})

	cropData, ok := settings.Int32s(metadata.TagScalerCropRegion)
	if !ok {
		log.Fatal().Msg("mapper produced no crop region")
	}
	window, _ := metadata.DecodeCropRegion(cropData)
	log.Info().
		Float64("zoom", zoom).
		Int32("left", window.Left).Int32("top", window.Top).
		Int32("width", window.Width()).Int32("height", window.Height()).
		Msg("device crop window")

	if imgSize != array {
		log.Fatal().
			Str("image", fmt.Sprintf("%dx%d", imgSize.Width, imgSize.Height)).
			Str("array", fmt.Sprintf("%dx%d", array.Width, array.Height)).
			Msg("image does not match the configured active array")
	}

	cropped, err := processor.CropToRect(img, window)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to crop to the device window")
	}

	base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
	previewPath := filepath.Join(cfg.Preview.OutputDir,
		fmt.Sprintf("%s_zoom%.2f.%s", base, zoom, cfg.Preview.Format))
	if err := processor.SaveImage(cropped, previewPath, cfg.Preview.Format,
		cfg.Preview.Quality, cfg.Preview.Lossless); err != nil {
		log.Fatal().Err(err).Msg("failed to save preview")
	}
	log.Info().Str("path", previewPath).Msg("saved zoomed preview")

	if !detect {
		return
	}

	mode := metadata.FaceDetectModeFull
	if modeName == "simple" {
		mode = metadata.FaceDetectModeSimple
	}

	faces, err := detectFaces(cfg, processor, cropped)
	if err != nil {
		log.Fatal().Err(err).Msg("face detection failed")
	}
	log.Info().Int("count", len(faces)).Msg("detected faces in the zoomed window")

	// report the faces the way the device would: in zoom-corrected
	// coordinates, offset to the crop window's origin
	result := metadata.NewStore()
	if err := result.SetFloat32s(metadata.TagControlZoomRatio, []float32{float32(zoom)}); err != nil {
		log.Fatal().Err(err).Msg("failed to seed result metadata")
	}
	if err := result.SetInt32s(metadata.TagScalerCropRegion, metadata.EncodeCropRegion(window)); err != nil {
		log.Fatal().Err(err).Msg("failed to seed result metadata")
	}
	for i := range faces {
		faces[i] = offsetFace(faces[i], window.Left, window.Top)
	}
	if err := detection.Publish(result, faces, mode); err != nil {
		log.Fatal().Err(err).Msg("failed to publish faces")
	}

	mapper.UpdateCaptureResult(&zoommapper.CaptureResult{Metadata: result})

	overlayPath := filepath.Join(cfg.Preview.OutputDir,
		fmt.Sprintf("%s_zoom%.2f_overlay.%s", base, zoom, cfg.Preview.Format))
	overlay := processor.DrawRegions(img,
		revertedCrop(result),
		revertedFaceRects(result),
		revertedLandmarks(result))
	if err := processor.SaveImage(overlay, overlayPath, cfg.Preview.Format,
		cfg.Preview.Quality, cfg.Preview.Lossless); err != nil {
		log.Fatal().Err(err).Msg("failed to save overlay")
	}
	log.Info().Str("path", overlayPath).Msg("saved full-array overlay")
}

// detectFaces runs the vision model over the zoomed crop and returns faces
// in the crop's own pixel coordinates
func detectFaces(cfg *config.Config, processor *processing.Processor, cropped image.Image) ([]detection.Face, error) {
	imgB64, err := processor.PrepareImageForModel(cropped,
		cfg.Detection.SendFormat, cfg.Detection.SendMaxDim, cfg.Detection.SendQuality)
	if err != nil {
		return nil, fmt.Errorf("preparing image for model: %w", err)
	}

	visionClient, err := ollama.NewClient(cfg.Detection.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("creating ollama client: %w", err)
	}
	detector := detection.NewDetector(visionClient)

	// the model sees the possibly downscaled image; detect in that space
	// and scale the results back up
	cropSize := processor.ArraySize(cropped)
	sentSize := cropSize
	scale := 1.0
	if d := cfg.Detection.SendMaxDim; d > 0 {
		long := max(cropSize.Width, cropSize.Height)
		if long > int32(d) {
			scale = float64(long) / float64(d)
			sentSize = geometry.Size{
				Width:  int32(math.Round(float64(cropSize.Width) / scale)),
				Height: int32(math.Round(float64(cropSize.Height) / scale)),
			}
		}
	}

	faces, err := detector.DetectFaces(context.Background(), cfg.Detection.Model, imgB64, sentSize)
	if err != nil {
		return nil, err
	}
	for i := range faces {
		faces[i] = scaleFace(faces[i], scale)
	}
	return faces, nil
}

func scaleFace(f detection.Face, scale float64) detection.Face {
	if scale == 1.0 {
		return f
	}
	s := func(v int32) int32 { return int32(math.Round(float64(v) * scale)) }
	f.Box = geometry.Rect{
		Left: s(f.Box.Left), Top: s(f.Box.Top),
		Right: s(f.Box.Right), Bottom: s(f.Box.Bottom),
	}
	f.Landmarks = geometry.FaceLandmarks{
		LeftEye:  geometry.Point{X: s(f.Landmarks.LeftEye.X), Y: s(f.Landmarks.LeftEye.Y)},
		RightEye: geometry.Point{X: s(f.Landmarks.RightEye.X), Y: s(f.Landmarks.RightEye.Y)},
		Mouth:    geometry.Point{X: s(f.Landmarks.Mouth.X), Y: s(f.Landmarks.Mouth.Y)},
	}
	return f
}

func offsetFace(f detection.Face, dx, dy int32) detection.Face {
	f.Box.Left += dx
	f.Box.Right += dx
	f.Box.Top += dy
	f.Box.Bottom += dy
	f.Landmarks.LeftEye.X += dx
	f.Landmarks.LeftEye.Y += dy
	f.Landmarks.RightEye.X += dx
	f.Landmarks.RightEye.Y += dy
	f.Landmarks.Mouth.X += dx
	f.Landmarks.Mouth.Y += dy
	return f
}

func revertedCrop(md metadata.Metadata) geometry.Rect {
	data, ok := md.Int32s(metadata.TagScalerCropRegion)
	if !ok {
		return geometry.Rect{Right: -1, Bottom: -1}
	}
	r, _ := metadata.DecodeCropRegion(data)
	return r
}

func revertedFaceRects(md metadata.Metadata) []geometry.Rect {
	data, ok := md.Int32s(metadata.TagStatisticsFaceRectangles)
	if !ok {
		return nil
	}
	return metadata.DecodeRects(data)
}

func revertedLandmarks(md metadata.Metadata) []geometry.FaceLandmarks {
	data, ok := md.Int32s(metadata.TagStatisticsFaceLandmarks)
	if !ok {
		return nil
	}
	return metadata.DecodeLandmarks(data)
}
