// Command ambient renders an ambient profile or built-in preset to a WAV file.
//
// Usage:
//
//	ambient -preset rain -minutes 30 -out rain.wav
//	ambient -profile my_profile.json -minutes 10 -seed 42
//	ambient -preset theta_iso -minutes 1 -level 0.3 -stats
//	ambient -list
//
// Set AMBIENT_DEBUG=1 or pass -v to trace every pipeline step.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	ambient "github.com/tphakala/go-ambient"
	"github.com/tphakala/go-ambient/internal/analysis"
	alog "github.com/tphakala/go-ambient/internal/log"
	"github.com/tphakala/go-ambient/internal/wavout"
)

const (
	defaultMinutes = 1.0
	wavExt         = ".wav"
)

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

type config struct {
	profile  string
	preset   string
	minutes  float64
	seed     int64
	seedSet  bool
	level    float64
	levelSet bool
	out      string
	stats    bool
	verbose  bool
	list     bool
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	var cfg config

	fs := flag.NewFlagSet("ambient", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.profile, "profile", "", "Profile file (.json, .yaml, .yml)")
	fs.StringVar(&cfg.preset, "preset", "", "Built-in preset name (see -list)")
	fs.Float64Var(&cfg.minutes, "minutes", defaultMinutes, "Duration in minutes")
	fs.Int64Var(&cfg.seed, "seed", 0, "Random seed (random when unset)")
	fs.Float64Var(&cfg.level, "level", ambient.DefaultLevel, "Peak level, overrides the profile")
	fs.StringVar(&cfg.out, "out", "", "Output WAV path (default <name>.wav)")
	fs.BoolVar(&cfg.stats, "stats", false, "Print level and spectrum statistics")
	fs.BoolVar(&cfg.verbose, "v", false, "Verbose output")
	fs.BoolVar(&cfg.list, "list", false, "List presets and operators")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", errUsage, err)
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.seedSet = true
		case "level":
			cfg.levelSet = true
		}
	})

	if cfg.list {
		return &cfg, nil
	}
	if (cfg.profile == "") == (cfg.preset == "") {
		fmt.Fprintf(stderr, "Usage: ambient [options] (-profile file | -preset name)\n\nOptions:\n")
		fs.PrintDefaults()
		return nil, fmt.Errorf("%w: exactly one of -profile or -preset is required", errUsage)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected arguments %v", errUsage, fs.Args())
	}
	return &cfg, nil
}

func run(args []string, stdout io.Writer) error {
	cfg, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}

	if cfg.list {
		return printList(stdout)
	}

	logger := alog.GetLogger()
	if cfg.verbose {
		logger = alog.Verbose()
	}

	profile, err := loadProfile(cfg)
	if err != nil {
		return err
	}

	opts := []ambient.Option{ambient.WithLogger(logger)}
	if cfg.seedSet {
		opts = append(opts, ambient.WithSeed(cfg.seed))
	}
	if cfg.levelSet {
		opts = append(opts, ambient.WithLevel(cfg.level))
	}

	out := cfg.out
	if out == "" {
		out = profile.Name + wavExt
	}

	logger.WithFields(logrus.Fields{
		"profile": profile.Name,
		"minutes": cfg.minutes,
		"out":     out,
	}).Info("rendering")

	start := time.Now()
	buf, err := ambient.RunProfile(profile, cfg.minutes, opts...)
	if err != nil {
		return err
	}
	if err := wavout.WriteFile(out, buf, ambient.SampleRate); err != nil {
		return err
	}
	elapsed := time.Since(start)

	seconds := float64(buf.Frames()) / ambient.SampleRate
	fmt.Fprintf(stdout, "Rendered %s -> %s\n", profile.Name, out)
	fmt.Fprintf(stdout, "  %d frames, %d channels, %.1fs\n", buf.Frames(), buf.Channels, seconds)
	if elapsed > 0 {
		fmt.Fprintf(stdout, "  Elapsed: %.2fs, Speed: %.1fx realtime\n", elapsed.Seconds(), seconds/elapsed.Seconds())
	}

	if cfg.stats {
		channels := [][]float32{buf.Channel(0), buf.Channel(1)}
		stats := analysis.Summarize(buf, ambient.SampleRate)
		return analysis.WriteReport(stdout, stats, analysis.ChannelSlopes(channels, ambient.SampleRate))
	}
	return nil
}

func loadProfile(cfg *config) (*ambient.Profile, error) {
	if cfg.preset != "" {
		return ambient.Preset(cfg.preset)
	}
	return ambient.LoadProfile(cfg.profile)
}

func printList(w io.Writer) error {
	fmt.Fprintln(w, "Presets:")
	for _, name := range ambient.PresetNames() {
		p, err := ambient.Preset(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %-16s %s\n", name, p.Description)
	}
	fmt.Fprintln(w, "\nOperators:")
	fmt.Fprintf(w, "  %s\n", strings.Join(ambient.Operators(), ", "))
	return nil
}
