// Package batch renders many profiles to WAV files concurrently.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	ambient "github.com/tphakala/go-ambient"
	"github.com/tphakala/go-ambient/internal/log"
	"github.com/tphakala/go-ambient/internal/wavout"
)

// DefaultParallel is the number of concurrent renders when a manifest does
// not set one.
const DefaultParallel = 2

const (
	wavExt     = ".wav"
	partSuffix = ".part"
	dirPerm    = 0o755
)

// Result reports the outcome of one job.
type Result struct {
	Job     string
	ID      string
	Path    string
	Skipped bool // output existed and overwrite was off
	Frames  int
	Elapsed time.Duration
}

// Options configures Render.
type Options struct {
	Logger log.Logger

	// Registry resolves operators for every job. Nil means the built-in set.
	Registry *ambient.Registry
}

// Render renders every job of m. Up to m.Parallel jobs run at once. The
// first failure cancels the jobs that have not finished; results are
// returned in manifest order for the jobs that completed.
func Render(ctx context.Context, m *Manifest, opts Options) ([]Result, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.GetLogger()
	}

	parallel := m.Parallel
	if parallel == 0 {
		parallel = DefaultParallel
	}

	if m.OutDir != "" {
		if err := os.MkdirAll(m.OutDir, dirPerm); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Each job owns one slot, so no lock is needed.
	results := make([]*Result, len(m.Jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, job := range m.Jobs {
		g.Go(func() error {
			r, err := renderJob(gctx, m, job, opts, logger)
			if err != nil {
				return fmt.Errorf("job %s: %w", job.Name, err)
			}
			results[i] = r
			return nil
		})
	}
	err := g.Wait()

	out := make([]Result, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, err
}

func renderJob(ctx context.Context, m *Manifest, job Job, opts Options, logger log.Logger) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r := &Result{
		Job:  job.Name,
		ID:   log.NewID(),
		Path: resolve(m.OutDir, job.OutputName()),
	}
	jobLog := logger.WithFields(logrus.Fields{
		log.FieldJob: job.Name,
		"id":         r.ID,
	})

	if !m.Overwrite {
		if _, err := os.Stat(r.Path); err == nil {
			jobLog.WithField("path", r.Path).Info("output exists, skipping")
			r.Skipped = true
			return r, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	profile, err := loadJobProfile(job)
	if err != nil {
		return nil, err
	}

	renderOpts := []ambient.Option{ambient.WithLogger(jobLog)}
	if opts.Registry != nil {
		renderOpts = append(renderOpts, ambient.WithRegistry(opts.Registry))
	}
	if job.Seed != nil {
		renderOpts = append(renderOpts, ambient.WithSeed(*job.Seed))
	}
	if job.Level != nil {
		renderOpts = append(renderOpts, ambient.WithLevel(*job.Level))
	}

	start := time.Now()
	jobLog.WithField("minutes", job.Minutes).Info("rendering")
	buf, err := ambient.RunProfileContext(ctx, profile, job.Minutes, renderOpts...)
	if err != nil {
		return nil, err
	}

	if err := writeAtomic(r.Path, buf); err != nil {
		return nil, err
	}

	r.Frames = buf.Frames()
	r.Elapsed = time.Since(start)
	jobLog.WithFields(logrus.Fields{
		"path":    r.Path,
		"elapsed": r.Elapsed,
	}).Info("rendered")
	return r, nil
}

func loadJobProfile(job Job) (*ambient.Profile, error) {
	if job.Preset != "" {
		return ambient.Preset(job.Preset)
	}
	return ambient.LoadProfile(job.Profile)
}

// writeAtomic writes to a sibling temporary file and renames it into place,
// so an interrupted job never leaves a file that a later run would skip.
func writeAtomic(path string, buf ambient.Buffer) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp := path + partSuffix
	if err := wavout.WriteFile(tmp, buf, ambient.SampleRate); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}
