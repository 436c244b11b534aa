package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bytedance/sonic"

	"github.com/menta2k/zoom-mapper/pkg/geometry"
	"github.com/menta2k/zoom-mapper/pkg/zoommapper"
)

// Config holds the application configuration
type Config struct {
	Device    DeviceConfig    `json:"device"`
	Preview   PreviewConfig   `json:"preview"`
	Detection DetectionConfig `json:"detection"`
}

// DeviceConfig describes the device geometry the mapper is initialized with
type DeviceConfig struct {
	ActiveArray SizeConfig `json:"active_array"`
	// PhysicalActiveArrays is keyed by the physical camera id, carried as
	// a string because JSON object keys are strings
	PhysicalActiveArrays map[string]SizeConfig `json:"physical_active_arrays"`
	ZoomRatioRange       RangeConfig           `json:"zoom_ratio_range"`
}

// SizeConfig is a width/height pair
type SizeConfig struct {
	Width  int32 `json:"width"`
	Height int32 `json:"height"`
}

// RangeConfig is a min/max zoom ratio pair
type RangeConfig struct {
	Min float32 `json:"min"`
	Max float32 `json:"max"`
}

// PreviewConfig holds output settings for the preview tool
type PreviewConfig struct {
	OutputDir string `json:"output_dir"`
	Format    string `json:"format"`
	Quality   int    `json:"quality"`
	Lossless  bool   `json:"lossless"`
}

// DetectionConfig holds settings for the vision-model face detector
type DetectionConfig struct {
	ServerURL   string `json:"server_url"`
	Model       string `json:"model"`
	SendFormat  string `json:"send_format"`
	SendMaxDim  int    `json:"send_max_dim"`
	SendQuality int    `json:"send_quality"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Device: DeviceConfig{
			ActiveArray:    SizeConfig{Width: 4000, Height: 3000},
			ZoomRatioRange: RangeConfig{Min: 1.0, Max: 8.0},
		},
		Preview: PreviewConfig{
			OutputDir: "out",
			Format:    "webp",
			Quality:   90,
			Lossless:  false,
		},
		Detection: DetectionConfig{
			ServerURL:   "http://localhost:11434",
			Model:       "openbmb/minicpm-v4.5",
			SendFormat:  "jpg",
			SendMaxDim:  1536,
			SendQuality: 85,
		},
	}
}

// Load reads a configuration file, applying defaults for missing fields
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := sonic.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to a file
func (c *Config) Save(path string) error {
	data, err := sonic.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the configuration for unusable values
func (c *Config) Validate() error {
	if c.Device.ActiveArray.Width <= 0 || c.Device.ActiveArray.Height <= 0 {
		return fmt.Errorf("config: active array %dx%d is not a valid size",
			c.Device.ActiveArray.Width, c.Device.ActiveArray.Height)
	}
	zr := geometry.ZoomRange{Min: c.Device.ZoomRatioRange.Min, Max: c.Device.ZoomRatioRange.Max}
	if !zr.Valid() {
		return fmt.Errorf("config: zoom ratio range [%v, %v] is not valid",
			zr.Min, zr.Max)
	}
	for id, size := range c.Device.PhysicalActiveArrays {
		if _, err := strconv.ParseUint(id, 10, 32); err != nil {
			return fmt.Errorf("config: physical camera id %q is not a number", id)
		}
		if size.Width <= 0 || size.Height <= 0 {
			return fmt.Errorf("config: physical camera %s array %dx%d is not a valid size",
				id, size.Width, size.Height)
		}
	}
	return nil
}

// InitParams converts the device section into mapper init parameters.
// Validate must have passed.
func (c *Config) InitParams() zoommapper.InitParams {
	physical := make(map[uint32]geometry.Size, len(c.Device.PhysicalActiveArrays))
	for id, size := range c.Device.PhysicalActiveArrays {
		n, err := strconv.ParseUint(id, 10, 32)
		if err != nil {
			continue
		}
		physical[uint32(n)] = geometry.Size{Width: size.Width, Height: size.Height}
	}
	return zoommapper.InitParams{
		ActiveArray: geometry.Size{
			Width:  c.Device.ActiveArray.Width,
			Height: c.Device.ActiveArray.Height,
		},
		PhysicalActiveArrays: physical,
		ZoomRange: geometry.ZoomRange{
			Min: c.Device.ZoomRatioRange.Min,
			Max: c.Device.ZoomRatioRange.Max,
		},
	}
}
