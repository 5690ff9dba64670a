package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/Dicklesworthstone/lcarsmon/internal/config"
	"github.com/Dicklesworthstone/lcarsmon/internal/coordinator"
	"github.com/Dicklesworthstone/lcarsmon/internal/logging"
	"github.com/Dicklesworthstone/lcarsmon/internal/sampler"
	"github.com/Dicklesworthstone/lcarsmon/internal/sysfs"
	"github.com/Dicklesworthstone/lcarsmon/internal/ui"
)

func main() {
	// .env only seeds LCARSMON_* variables; real environment wins.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	app := &cli.App{
		Name:        "lcarsmon",
		Usage:       "LCARS-style terminal system monitor",
		Description: "live CPU, memory, storage, network, battery, GPU and process telemetry",
		Version:     appVersion(),
		Flags:       config.Flags(),
		Action:      run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.FromCLI(c)
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()
	logger.Info("starting", "version", c.App.Version, "sysfs_root", cfg.SysfsRoot,
		"gpu", cfg.EnableGPU, "battery", cfg.EnableBattery)

	var opts []coordinator.Option
	if cfg.EnableGPU {
		opts = append(opts, coordinator.WithPCINamer(sampler.NewPCIDatabase(logger)))
	}
	src := sampler.NewSource(sampler.WithInterval(cfg.HostInterval))
	coord := coordinator.New(cfg, src, sysfs.Host(cfg.SysfsRoot), logger, opts...)

	if cfg.JSON {
		return writeReport(coord, cfg.HostInterval)
	}
	if err := ui.RunTUI(coord, cfg.FrameInterval); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}

// writeReport waits one host interval so rates and per-process CPU have a
// baseline, then prints a single JSON report.
func writeReport(coord *coordinator.Coordinator, settle time.Duration) error {
	coord.Processes()
	time.Sleep(settle)
	coord.Tick()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(coord.Report()); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

func appVersion() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi == nil {
		return "unknown"
	}

	version := bi.Main.Version
	var rev string
	var modified bool
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}

	if version != "" && version != "(devel)" {
		return version
	}
	if rev != "" {
		if modified {
			return rev + " (modified)"
		}
		return rev
	}
	return "devel"
}
