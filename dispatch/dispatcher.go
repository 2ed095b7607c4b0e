package dispatch

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"youtube2mp3/history"
	"youtube2mp3/model"
	"youtube2mp3/urls"

	"github.com/Strum355/log"
	"golang.org/x/sync/errgroup"
)

// Converter turns one job into audio files
type Converter interface {
	Convert(ctx context.Context, job model.Job) ([]string, error)
}

// Reporter receives progress of a run. Methods are called from worker
// goroutines concurrently.
type Reporter interface {
	Started(job model.Job)
	Finished(o model.Outcome)
	Invalid(raw string, err error)
	Archived(job model.Job)
}

// Summary counts what happened to the candidates of one run
type Summary struct {
	Dispatched int
	Succeeded  int
	Failed     int
	Skipped    int
}

type Dispatcher struct {
	conv         Converter
	report       Reporter
	history      history.Store
	workers      int
	skipArchived bool
	youtubeOnly  bool
}

type Option func(*Dispatcher)

// WithWorkers caps the number of jobs running at once. 0 runs every job at once.
func WithWorkers(n int) Option {
	return func(d *Dispatcher) { d.workers = n }
}

// WithHistory records every finished job to s
func WithHistory(s history.Store) Option {
	return func(d *Dispatcher) {
		if s != nil {
			d.history = s
		}
	}
}

// WithSkipArchived skips urls the history store reports as converted
func WithSkipArchived(skip bool) Option {
	return func(d *Dispatcher) { d.skipArchived = skip }
}

// WithYouTubeOnly rejects valid urls that are not youtube links
func WithYouTubeOnly(only bool) Option {
	return func(d *Dispatcher) { d.youtubeOnly = only }
}

func New(conv Converter, report Reporter, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		conv:    conv,
		report:  report,
		history: history.Nop{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run validates every candidate, starts one job per valid url and blocks until
// all started jobs have finished. A failing job never affects its siblings.
func (d *Dispatcher) Run(ctx context.Context, candidates []string, settings model.Settings) Summary {
	var (
		summary   Summary
		succeeded atomic.Int64
		failed    atomic.Int64
		g         errgroup.Group
	)
	if d.workers > 0 {
		g.SetLimit(d.workers)
	}

	for _, raw := range candidates {
		if ctx.Err() != nil {
			log.WithFields(log.Fields{"remaining": len(candidates) - summary.Dispatched - summary.Skipped}).Info("Run cancelled, not dispatching remaining urls")
			break
		}

		job, ok := d.prepare(ctx, raw, settings)
		if !ok {
			summary.Skipped++
			continue
		}

		summary.Dispatched++
		g.Go(func() error {
			if d.execute(ctx, job) {
				succeeded.Add(1)
			} else {
				failed.Add(1)
			}
			return nil
		})
	}

	_ = g.Wait()

	summary.Succeeded = int(succeeded.Load())
	summary.Failed = int(failed.Load())
	return summary
}

func (d *Dispatcher) prepare(ctx context.Context, raw string, settings model.Settings) (model.Job, bool) {
	u, err := urls.Validate(raw)
	if err != nil {
		d.report.Invalid(raw, err)
		return model.Job{}, false
	}
	if d.youtubeOnly && !urls.IsYouTube(u) {
		d.report.Invalid(raw, fmt.Errorf("%w: %s", urls.ErrNotYouTube, u))
		return model.Job{}, false
	}

	job := model.NewJob(u, urls.VideoID(u), settings)

	if d.skipArchived {
		archived, err := d.history.Archived(ctx, job.URL)
		if err != nil {
			log.WithError(err).Error("Could not check archive, converting anyway")
		} else if archived {
			d.report.Archived(job)
			return model.Job{}, false
		}
	}

	return job, true
}

func (d *Dispatcher) execute(ctx context.Context, job model.Job) bool {
	start := time.Now()
	d.report.Started(job)

	files, err := d.conv.Convert(ctx, job)

	o := model.Outcome{
		Job:       job,
		Status:    model.StatusSucceeded,
		Files:     files,
		StartedAt: start,
		Elapsed:   time.Since(start),
	}
	if err != nil {
		o.Status = model.StatusFailed
		o.Err = err
	}
	d.report.Finished(o)

	if err := d.history.Record(context.WithoutCancel(ctx), history.EntryFrom(o)); err != nil {
		log.WithError(err).Error("Could not record conversion")
	}

	return err == nil
}
