// Command volprofile computes a sliding-window volume profile over a
// close/volume series read from a CSV or XLSX file.
//
// Usage:
//
//	volprofile -input data/es.csv -bins 100 -window 255 -format json
//
// With -cron (or schedule.cron in the config file) the profile is
// recomputed on that schedule until interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"VolumeProfile/internal/collector"
	"VolumeProfile/internal/config"
	"VolumeProfile/internal/report"
	"VolumeProfile/internal/scheduler"
)

var (
	configPath = flag.String("config", "configs/config.yaml", "path to the YAML config file")
	input      = flag.String("input", "", "series file (.csv or .xlsx)")
	bins       = flag.Float64("bins", 0, "number of price buckets")
	window     = flag.Float64("window", 0, "trailing window length in samples")
	layout     = flag.String("layout", "", "bucket layout: range or origin")
	format     = flag.String("format", "", "output format: text or json")
	tail       = flag.Int("tail", 0, "trailing positions to print in text output")
	cronSpec   = flag.String("cron", "", "recompute on this six-field cron schedule")
)

func main() {
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load config
	path := *configPath
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}
	if level, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	params, err := cfg.Params()
	if err != nil {
		log.Fatal().Err(err).Msg("profile parameters")
	}

	src := collector.NewSource(cfg.Input.Path)
	switch s := src.(type) {
	case *collector.CSVSource:
		s.CloseColumn, s.VolumeColumn = cfg.Input.CloseColumn, cfg.Input.VolumeColumn
	case *collector.XLSXSource:
		s.Sheet = cfg.Input.Sheet
		s.CloseColumn, s.VolumeColumn = cfg.Input.CloseColumn, cfg.Input.VolumeColumn
	}
	col := collector.NewCollector(src, params)
	emit := emitter(os.Stdout, cfg.Output)

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sched := scheduler.NewScheduler(ctx, col, emit)
	if cfg.Schedule.Cron == "" {
		if code := runOnce(sched); code != 0 {
			os.Exit(code)
		}
		return
	}

	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		log.Fatal().Err(err).Msg("register cron task")
	}
	if runOnce(sched) != 0 {
		log.Warn().Msg("initial run failed, waiting for schedule")
	}
	sched.Start()
	log.Info().Str("input", cfg.Input.Path).Msg("volprofile is running, press Ctrl+C to stop")

	<-ctx.Done()
	log.Info().Msg("shutdown signal received, stopping")
	sched.Stop()
}

// runOnce executes one profile run and returns the process exit code. The
// scheduler has already logged a failed run under its run id.
func runOnce(sched *scheduler.Scheduler) int {
	if err := sched.RunNow(); err != nil {
		return 1
	}
	return 0
}

// applyFlags lets explicitly set command-line flags win over file and env.
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input.Path = *input
		case "bins":
			cfg.Profile.Bins = *bins
		case "window":
			cfg.Profile.Window = *window
		case "layout":
			cfg.Profile.Layout = *layout
		case "format":
			cfg.Output.Format = *format
		case "tail":
			cfg.Output.Tail = *tail
		case "cron":
			cfg.Schedule.Cron = *cronSpec
		}
	})
}

func emitter(w io.Writer, out config.OutputConfig) scheduler.EmitFunc {
	return func(snap *collector.Snapshot) error {
		if out.Format == "json" {
			return report.WriteJSON(w, snap)
		}
		_, err := fmt.Fprint(w, report.FormatSummary(snap, report.Options{
			Precision: out.Precision,
			Tail:      out.Tail,
		}))
		return err
	}
}
