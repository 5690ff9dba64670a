package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/lcarsmon/internal/sampler"
)

// Config carries runtime options for lcarsmon.
type Config struct {
	HostInterval    time.Duration `yaml:"host_interval"`
	BatteryInterval time.Duration `yaml:"battery_interval"`
	GPUInterval     time.Duration `yaml:"gpu_interval"`
	FrameInterval   time.Duration `yaml:"frame_interval"`
	ProcessLimit    int           `yaml:"process_limit"`
	Sort            string        `yaml:"sort"`
	SysfsRoot       string        `yaml:"sysfs_root"`
	EnableGPU       bool          `yaml:"gpu"`
	EnableBattery   bool          `yaml:"battery"`
	JSON            bool          `yaml:"-"`
	LogFile         string        `yaml:"log_file"`
	LogLevel        string        `yaml:"log_level"`
}

func Default() Config {
	return Config{
		HostInterval:    sampler.DefaultHostInterval,
		BatteryInterval: sampler.DefaultBatteryInterval,
		GPUInterval:     sampler.DefaultGPUInterval,
		FrameInterval:   500 * time.Millisecond,
		ProcessLimit:    sampler.DefaultProcessLimit,
		Sort:            sampler.SortMemory.String(),
		SysfsRoot:       "/",
		EnableGPU:       true,
		EnableBattery:   true,
		LogLevel:        "info",
	}
}

// DefaultPath is config.yaml under the user's config directory, or "" when
// that directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "lcarsmon", "config.yaml")
}

// Load overlays the YAML file at path on the defaults. A missing file is
// not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// SortColumn resolves the configured process sort column.
func (c Config) SortColumn() (sampler.SortColumn, error) {
	return sampler.ParseSortColumn(c.Sort)
}

// Validate rejects settings the pollers cannot run with.
func (c Config) Validate() error {
	var errs []error
	for _, iv := range []struct {
		name string
		d    time.Duration
	}{
		{"host interval", c.HostInterval},
		{"battery interval", c.BatteryInterval},
		{"gpu interval", c.GPUInterval},
		{"frame interval", c.FrameInterval},
	} {
		if iv.d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", iv.name, iv.d))
		}
	}
	if c.ProcessLimit <= 0 {
		errs = append(errs, fmt.Errorf("process limit must be positive, got %d", c.ProcessLimit))
	}
	if _, err := c.SortColumn(); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}
	return errors.Join(errs...)
}
