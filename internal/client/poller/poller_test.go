package poller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sisimpur/sisimpur-cli/internal/client/api"
	"github.com/sisimpur/sisimpur-cli/internal/client/models"
	"github.com/sisimpur/sisimpur-cli/internal/logging"
)

type fakeStatusClient struct {
	mu       sync.Mutex
	calls    int
	inFlight int32
	respond  func(call int) (*api.JobUpdate, error)
}

func (f *fakeStatusClient) JobStatus(ctx context.Context, jobID int64) (*api.JobUpdate, error) {
	if atomic.AddInt32(&f.inFlight, 1) > 1 {
		panic("overlapping status requests")
	}
	defer atomic.AddInt32(&f.inFlight, -1)

	f.mu.Lock()
	f.calls++
	call := f.calls
	f.mu.Unlock()
	return f.respond(call)
}

func (f *fakeStatusClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func update(status models.JobStatus) *api.JobUpdate {
	return &api.JobUpdate{JobID: 42, Status: status}
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestWatch_StopsOnTerminalStatus(t *testing.T) {
	f := &fakeStatusClient{respond: func(call int) (*api.JobUpdate, error) {
		switch call {
		case 1:
			return update(models.JobPending), nil
		case 2:
			return update(models.JobProcessing), nil
		default:
			u := update(models.JobCompleted)
			u.QACount = 10
			return u, nil
		}
	}}

	w := New(f, time.Millisecond, testLogger()).Watch(context.Background(), 42)

	final, err := w.Wait()
	require.NoError(t, err)
	require.Equal(t, models.JobCompleted, final.Status)
	require.Equal(t, 10, final.QACount)
	require.Equal(t, 3, f.callCount())

	// channel is closed after the loop stops
	for range w.Updates() {
	}
}

func TestWatch_SwallowsTransientErrors(t *testing.T) {
	f := &fakeStatusClient{respond: func(call int) (*api.JobUpdate, error) {
		switch call {
		case 1:
			return update(models.JobProcessing), nil
		case 2:
			return nil, api.ErrUnavailable
		default:
			return update(models.JobCompleted), nil
		}
	}}

	final, err := New(f, time.Millisecond, testLogger()).
		Watch(context.Background(), 42).Wait()
	require.NoError(t, err)
	require.Equal(t, models.JobCompleted, final.Status)
	require.Equal(t, 3, f.callCount())
}

func TestWatch_FailedJobIsTerminal(t *testing.T) {
	f := &fakeStatusClient{respond: func(call int) (*api.JobUpdate, error) {
		u := update(models.JobFailed)
		u.Reason = "unreadable document"
		return u, nil
	}}

	final, err := New(f, time.Millisecond, testLogger()).
		Watch(context.Background(), 42).Wait()
	require.NoError(t, err)
	require.Equal(t, models.JobFailed, final.Status)
	require.Equal(t, "unreadable document", final.Reason)
	require.Equal(t, 1, f.callCount())
}

func TestWatch_StatusNeverRegresses(t *testing.T) {
	sequence := []models.JobStatus{
		models.JobProcessing,
		models.JobPending, // stale response, must be discarded
		models.JobCompleted,
	}
	f := &fakeStatusClient{respond: func(call int) (*api.JobUpdate, error) {
		return update(sequence[call-1]), nil
	}}

	w := New(f, time.Millisecond, testLogger()).Watch(context.Background(), 42)

	var seen []models.JobStatus
	for u := range w.Updates() {
		seen = append(seen, u.Status)
	}
	require.NotEmpty(t, seen)
	require.Equal(t, models.JobCompleted, seen[len(seen)-1])
	require.NotContains(t, seen, models.JobPending)

	lastRank := 0
	for _, st := range seen {
		require.GreaterOrEqual(t, st.Rank(), lastRank)
		lastRank = st.Rank()
	}
}

func TestWatch_CancelStopsRequests(t *testing.T) {
	f := &fakeStatusClient{respond: func(call int) (*api.JobUpdate, error) {
		return update(models.JobProcessing), nil
	}}

	w := New(f, time.Millisecond, testLogger()).Watch(context.Background(), 42)

	<-w.Updates()
	w.Cancel()

	_, err := w.Wait()
	require.ErrorIs(t, err, context.Canceled)

	calls := f.callCount()
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, calls, f.callCount())
}

func TestWatch_ParentContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	f := &fakeStatusClient{respond: func(call int) (*api.JobUpdate, error) {
		if call == 1 {
			cancel()
			return nil, errors.New("connection reset")
		}
		return update(models.JobProcessing), nil
	}}

	w := New(f, time.Millisecond, testLogger()).Watch(ctx, 42)
	_, err := w.Wait()
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, f.callCount())
}

func TestWatch_ConflatesWhenConsumerLags(t *testing.T) {
	f := &fakeStatusClient{respond: func(call int) (*api.JobUpdate, error) {
		if call < 4 {
			return update(models.JobProcessing), nil
		}
		return update(models.JobCompleted), nil
	}}

	w := New(f, time.Millisecond, testLogger()).Watch(context.Background(), 42)

	// read nothing until the loop finishes; the buffer keeps the latest
	final, err := w.Wait()
	require.NoError(t, err)
	require.Equal(t, models.JobCompleted, final.Status)

	u, ok := <-w.Updates()
	require.True(t, ok)
	require.Equal(t, models.JobCompleted, u.Status)
}
