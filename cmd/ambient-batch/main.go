// Command ambient-batch renders every job of a YAML manifest.
//
// Usage:
//
//	ambient-batch manifest.yaml
//	ambient-batch -parallel 4 -overwrite manifest.yaml
//
// A manifest lists jobs, each rendering a preset or profile file:
//
//	parallel: 2
//	out_dir: out
//	jobs:
//	  - name: theta_6hz
//	    preset: theta_iso
//	    minutes: 45
//	  - name: rain_night
//	    profile: profiles/rain_night.yaml
//	    minutes: 90
//	    seed: 7
//
// Existing outputs are skipped unless -overwrite is set. Interrupting the
// command cancels the remaining jobs.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/tphakala/go-ambient/internal/batch"
	alog "github.com/tphakala/go-ambient/internal/log"
)

const requiredArgs = 1

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout)
	stop()
	if err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("ambient-batch", flag.ContinueOnError)
	parallel := fs.Int("parallel", 0, "Concurrent renders, overrides the manifest")
	overwrite := fs.Bool("overwrite", false, "Re-render jobs whose output exists")
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if fs.NArg() != requiredArgs {
		fmt.Fprintf(fs.Output(), "Usage: ambient-batch [options] manifest.yaml\n\nOptions:\n")
		fs.PrintDefaults()
		return fmt.Errorf("%w: expected one manifest path", errUsage)
	}

	m, err := batch.LoadManifest(fs.Arg(0))
	if err != nil {
		return err
	}
	if *parallel > 0 {
		m.Parallel = *parallel
	}
	if *overwrite {
		m.Overwrite = true
	}

	logger := alog.GetLogger()
	if *verbose {
		logger = alog.Verbose()
	}

	start := time.Now()
	results, err := batch.Render(ctx, m, batch.Options{Logger: logger})

	var rendered, skipped int
	for _, r := range results {
		status := "rendered"
		if r.Skipped {
			status = "skipped"
			skipped++
		} else {
			rendered++
		}
		fmt.Fprintf(stdout, "%-8s %-24s %s\n", status, r.Job, r.Path)
	}
	fmt.Fprintf(stdout, "%d rendered, %d skipped, %d total in %s\n",
		rendered, skipped, len(m.Jobs), time.Since(start).Round(time.Millisecond))

	return err
}
