package config

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

const envPrefix = "LCARSMON_"

func env(name string) []string { return []string{envPrefix + name} }

// Flags returns the command line flags understood by FromCLI. Each flag can
// also be set through an LCARSMON_* environment variable.
func Flags() []cli.Flag {
	def := Default()
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML config file",
			EnvVars: env("CONFIG"),
			Value:   DefaultPath(),
		},
		&cli.DurationFlag{
			Name:    "interval",
			Aliases: []string{"i"},
			Usage:   "host metrics refresh interval",
			EnvVars: env("INTERVAL"),
			Value:   def.HostInterval,
		},
		&cli.DurationFlag{
			Name:    "battery-interval",
			Usage:   "battery refresh interval",
			EnvVars: env("BATTERY_INTERVAL"),
			Value:   def.BatteryInterval,
		},
		&cli.DurationFlag{
			Name:    "gpu-interval",
			Usage:   "GPU refresh interval",
			EnvVars: env("GPU_INTERVAL"),
			Value:   def.GPUInterval,
		},
		&cli.DurationFlag{
			Name:    "frame-interval",
			Usage:   "UI redraw interval",
			EnvVars: env("FRAME_INTERVAL"),
			Value:   def.FrameInterval,
		},
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"n"},
			Usage:   "number of processes listed",
			EnvVars: env("LIMIT"),
			Value:   def.ProcessLimit,
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "process sort column: pid|name|user|cpu|memory",
			EnvVars: env("SORT"),
			Value:   def.Sort,
		},
		&cli.StringFlag{
			Name:    "sysfs-root",
			Usage:   "directory holding sys/ and proc/",
			EnvVars: env("SYSFS_ROOT"),
			Value:   def.SysfsRoot,
		},
		&cli.BoolFlag{
			Name:    "gpu",
			Usage:   "enable GPU sampling (--gpu=false to disable)",
			EnvVars: env("GPU"),
			Value:   def.EnableGPU,
		},
		&cli.BoolFlag{
			Name:    "battery",
			Usage:   "enable battery sampling (--battery=false to disable)",
			EnvVars: env("BATTERY"),
			Value:   def.EnableBattery,
		},
		&cli.BoolFlag{
			Name:    "json",
			Usage:   "print a one-shot JSON report and exit",
			EnvVars: env("JSON"),
		},
		&cli.StringFlag{
			Name:    "log-file",
			Usage:   "write logs to this file",
			EnvVars: env("LOG_FILE"),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "debug|info|warn|error",
			EnvVars: env("LOG_LEVEL"),
			Value:   def.LogLevel,
		},
	}
}

// FromCLI loads the config file named by --config, then applies every flag
// the user set explicitly, on the command line or through the environment.
func FromCLI(c *cli.Context) (Config, error) {
	cfg, err := Load(c.String("config"))
	if err != nil {
		return cfg, err
	}

	if c.IsSet("interval") {
		cfg.HostInterval = c.Duration("interval")
	}
	if c.IsSet("battery-interval") {
		cfg.BatteryInterval = c.Duration("battery-interval")
	}
	if c.IsSet("gpu-interval") {
		cfg.GPUInterval = c.Duration("gpu-interval")
	}
	if c.IsSet("frame-interval") {
		cfg.FrameInterval = c.Duration("frame-interval")
	}
	if c.IsSet("limit") {
		cfg.ProcessLimit = c.Int("limit")
	}
	if c.IsSet("sort") {
		cfg.Sort = c.String("sort")
	}
	if c.IsSet("sysfs-root") {
		cfg.SysfsRoot = c.String("sysfs-root")
	}
	if c.IsSet("gpu") {
		cfg.EnableGPU = c.Bool("gpu")
	}
	if c.IsSet("battery") {
		cfg.EnableBattery = c.Bool("battery")
	}
	if c.IsSet("log-file") {
		cfg.LogFile = c.String("log-file")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	cfg.JSON = c.Bool("json")

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
