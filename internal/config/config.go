package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings holds startup configuration
type Settings struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	VSync  bool   `yaml:"vsync"`
	// FPSLimit caps the frame rate when vsync is off; 0 means uncapped.
	FPSLimit   int        `yaml:"fps_limit"`
	ClearColor [4]float32 `yaml:"clear_color"`
	// ShaderDir, when set, loads shaders from disk and reloads them on
	// change instead of using the embedded copies.
	ShaderDir string `yaml:"shader_dir"`
	// SlowFrame is the frame time above which the profiler's top entries
	// are logged.
	SlowFrame time.Duration `yaml:"slow_frame"`
	LogLevel  slog.Level    `yaml:"log_level"`
}

// Default returns the built-in settings
func Default() Settings {
	return Settings{
		Title:      "Hello, world!",
		Width:      1024,
		Height:     760,
		VSync:      true,
		FPSLimit:   0,
		ClearColor: [4]float32{0.2, 0.3, 0.3, 1.0},
		SlowFrame:  16 * time.Millisecond,
		LogLevel:   slog.LevelInfo,
	}
}

// Load reads YAML settings from path on top of the defaults
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("could not read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("could not parse config file %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("config file %s: %w", path, err)
	}
	return s, nil
}

// Validate checks value ranges
func (s Settings) Validate() error {
	var errs []error
	if s.Width <= 0 || s.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", s.Width, s.Height))
	}
	if s.FPSLimit < 0 {
		errs = append(errs, fmt.Errorf("fps_limit %d must not be negative", s.FPSLimit))
	}
	for i, c := range s.ClearColor {
		if c < 0 || c > 1 {
			errs = append(errs, fmt.Errorf("clear_color[%d] = %v is outside [0,1]", i, c))
		}
	}
	if s.SlowFrame < 0 {
		errs = append(errs, fmt.Errorf("slow_frame %v must not be negative", s.SlowFrame))
	}
	return errors.Join(errs...)
}
