package server

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ironsheep/image-crop-mcp/internal/crop"
	"github.com/ironsheep/image-crop-mcp/internal/imaging"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvOutputDir    = "IMAGE_CROP_MCP_OUTPUT_DIR"
	EnvFormat       = "IMAGE_CROP_MCP_FORMAT"
	EnvJPEGQuality  = "IMAGE_CROP_MCP_JPEG_QUALITY"
	EnvHandleRadius = "IMAGE_CROP_MCP_HANDLE_RADIUS"
)

// Config holds runtime configuration for the crop server.
type Config struct {
	// OutputDir is where committed crops are written.
	OutputDir string `json:"output_dir"`

	// Format is the default export format, "png" or "jpeg".
	Format string `json:"format"`

	// JPEGQuality is the default JPEG quality, 1-100.
	JPEGQuality int `json:"jpeg_quality"`

	// HandleRadius is the half-size of each corner handle's hit box in
	// display pixels.
	HandleRadius float64 `json:"handle_radius"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		OutputDir:    filepath.Join(os.TempDir(), "image-crop-mcp"),
		Format:       "png",
		JPEGQuality:  imaging.DefaultJPEGQuality,
		HandleRadius: crop.DefaultHandleRadius,
	}
}

// ConfigFromEnv returns DefaultConfig overridden by any IMAGE_CROP_MCP_*
// variables that are set. Values that cannot be used keep their defaults
// and are reported in the returned error; the Config is always usable.
func ConfigFromEnv() (*Config, error) {
	cfg := DefaultConfig()
	var errs []error
	if v := os.Getenv(EnvOutputDir); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv(EnvFormat); v != "" {
		cfg.Format = strings.ToLower(v)
	}
	if v := os.Getenv(EnvJPEGQuality); v != "" {
		if q, err := strconv.Atoi(v); err == nil {
			cfg.JPEGQuality = q
		} else {
			errs = append(errs, fmt.Errorf("%s=%q is not an integer", EnvJPEGQuality, v))
		}
	}
	if v := os.Getenv(EnvHandleRadius); v != "" {
		if r, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.HandleRadius = r
		} else {
			errs = append(errs, fmt.Errorf("%s=%q is not a number", EnvHandleRadius, v))
		}
	}
	if err := cfg.Validate(); err != nil {
		errs = append(errs, err)
	}
	return cfg, errors.Join(errs...)
}

// Validate fills unset fields with defaults and replaces out-of-range values.
// Each replaced value is described in the returned error; unset fields are
// not reported.
func (c *Config) Validate() error {
	def := DefaultConfig()
	var errs []error
	if c.OutputDir == "" {
		c.OutputDir = def.OutputDir
	}
	if c.Format == "" {
		c.Format = def.Format
	} else if _, _, err := imaging.ParseFormat(c.Format); err != nil {
		errs = append(errs, fmt.Errorf("format %q: %w, using %s", c.Format, err, def.Format))
		c.Format = def.Format
	}
	if c.JPEGQuality == 0 {
		c.JPEGQuality = def.JPEGQuality
	} else if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		errs = append(errs, fmt.Errorf("jpeg quality %d outside 1-100, using %d", c.JPEGQuality, def.JPEGQuality))
		c.JPEGQuality = def.JPEGQuality
	}
	if c.HandleRadius == 0 {
		c.HandleRadius = def.HandleRadius
	} else if c.HandleRadius < 0 {
		errs = append(errs, fmt.Errorf("handle radius %g must be positive, using %g", c.HandleRadius, def.HandleRadius))
		c.HandleRadius = def.HandleRadius
	}
	return errors.Join(errs...)
}
