// Package poller watches an asynchronous processing job by polling its
// status endpoint at a fixed cadence until the job reaches a terminal state
// or the watch is cancelled.
//
// Requests never overlap: the next tick is scheduled only after the previous
// response has settled, so a slow backend stretches the effective period
// instead of stacking requests. Transient failures are swallowed and retried
// on the next tick.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/sisimpur/sisimpur-cli/internal/client/api"
	"github.com/sisimpur/sisimpur-cli/internal/logging"
)

// StatusClient is the one API call the poller needs.
type StatusClient interface {
	JobStatus(ctx context.Context, jobID int64) (*api.JobUpdate, error)
}

const DefaultInterval = 3 * time.Second

type Poller struct {
	client   StatusClient
	interval time.Duration
	log      logging.Logger
}

func New(client StatusClient, interval time.Duration, log logging.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{client: client, interval: interval, log: log}
}

// Watch is a handle on one running poll loop.
type Watch struct {
	updates chan *api.JobUpdate
	cancel  context.CancelFunc
	done    chan struct{}

	mu    sync.Mutex
	final *api.JobUpdate
	err   error
}

// Updates streams observed status updates. The channel conflates: when the
// consumer lags, older updates are dropped in favour of the latest one. It is
// closed when the loop stops.
func (w *Watch) Updates() <-chan *api.JobUpdate {
	return w.updates
}

// Cancel stops the loop. No further requests are issued once the in-flight
// one, if any, settles.
func (w *Watch) Cancel() {
	w.cancel()
}

// Wait blocks until the loop stops and returns the terminal update, or the
// cancellation error when the watch was stopped before the job finished.
func (w *Watch) Wait() (*api.JobUpdate, error) {
	<-w.done
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.final, w.err
}

// Watch starts polling the given job. The first request is issued
// immediately; each subsequent one after the configured interval, counted
// from when the previous response settled.
func (p *Poller) Watch(ctx context.Context, jobID int64) *Watch {
	ctx, cancel := context.WithCancel(ctx)
	w := &Watch{
		updates: make(chan *api.JobUpdate, 1),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	go p.run(ctx, jobID, w)
	return w
}

func (p *Poller) run(ctx context.Context, jobID int64, w *Watch) {
	defer close(w.done)
	defer close(w.updates)
	defer w.cancel()

	lastRank := 0
	for {
		if ctx.Err() != nil {
			w.settle(nil, ctx.Err())
			return
		}

		u, err := p.client.JobStatus(ctx, jobID)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				w.settle(nil, ctx.Err())
				return
			}
			p.log.Debug(ctx, "job status poll failed, will retry",
				"job_id", jobID, "error", err)

		case u.Status.Rank() < lastRank:
			// stale response from a reordered request, the job cannot
			// move backwards
			p.log.Debug(ctx, "discarding regressed job status",
				"job_id", jobID, "status", u.Status)

		default:
			lastRank = u.Status.Rank()
			w.publish(u)
			if u.Status.Terminal() {
				w.settle(u, nil)
				return
			}
		}

		select {
		case <-ctx.Done():
			w.settle(nil, ctx.Err())
			return
		case <-time.After(p.interval):
		}
	}
}

func (w *Watch) publish(u *api.JobUpdate) {
	select {
	case w.updates <- u:
	default:
		// consumer lags: replace the pending update with the newer one
		select {
		case <-w.updates:
		default:
		}
		select {
		case w.updates <- u:
		default:
		}
	}
}

func (w *Watch) settle(final *api.JobUpdate, err error) {
	w.mu.Lock()
	w.final = final
	w.err = err
	w.mu.Unlock()
}
