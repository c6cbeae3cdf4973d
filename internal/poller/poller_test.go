package poller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cakestory-client/internal/model"
)

// scriptedQuery returns statuses in order, repeating the last one.
type scriptedQuery struct {
	mu      sync.Mutex
	script  []model.PaymentStatus
	errAt   map[int]error
	calls   int
	blockCh chan struct{}
}

func (s *scriptedQuery) fn(ctx context.Context, orderID string) (model.PaymentStatus, error) {
	s.mu.Lock()
	i := s.calls
	s.calls++
	block := s.blockCh
	s.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if err, ok := s.errAt[i]; ok {
		return "", err
	}
	if i >= len(s.script) {
		i = len(s.script) - 1
	}
	return s.script[i], nil
}

func (s *scriptedQuery) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func collectChanges() (func(model.PaymentStatus), func() []model.PaymentStatus) {
	var mu sync.Mutex
	var seen []model.PaymentStatus
	record := func(st model.PaymentStatus) {
		mu.Lock()
		seen = append(seen, st)
		mu.Unlock()
	}
	snapshot := func() []model.PaymentStatus {
		mu.Lock()
		defer mu.Unlock()
		return append([]model.PaymentStatus(nil), seen...)
	}
	return record, snapshot
}

func TestPoller_StopsOnTerminalStatus(t *testing.T) {
	q := &scriptedQuery{script: []model.PaymentStatus{
		model.PaymentPending,
		model.PaymentPending,
		model.PaymentPaid,
	}}
	record, snapshot := collectChanges()

	p := New(q.fn, WithInterval(5*time.Millisecond))
	p.Start(context.Background(), "order-1", record)

	select {
	case <-p.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not finish")
	}

	assert.Equal(t, model.PaymentPaid, p.Status())
	assert.Equal(t, []model.PaymentStatus{model.PaymentPaid}, snapshot())

	// no further queries after the terminal state
	calls := q.callCount()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, q.callCount())
}

func TestPoller_CallbackOncePerTransition(t *testing.T) {
	q := &scriptedQuery{script: []model.PaymentStatus{
		model.PaymentPending,
		model.PaymentPending,
		model.PaymentPending,
		model.PaymentFailed,
	}}
	record, snapshot := collectChanges()

	p := New(q.fn, WithInterval(5*time.Millisecond))
	p.Start(context.Background(), "order-1", record)

	select {
	case <-p.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not finish")
	}

	// pending is the initial state, so only the failed transition fires
	assert.Equal(t, []model.PaymentStatus{model.PaymentFailed}, snapshot())
}

func TestPoller_QueryErrorsAreTolerated(t *testing.T) {
	q := &scriptedQuery{
		script: []model.PaymentStatus{
			model.PaymentPending,
			"", // errAt slot
			model.PaymentPaid,
		},
		errAt: map[int]error{1: errors.New("backend unavailable")},
	}
	record, snapshot := collectChanges()

	p := New(q.fn, WithInterval(5*time.Millisecond))
	p.Start(context.Background(), "order-1", record)

	select {
	case <-p.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not finish")
	}

	assert.Equal(t, model.PaymentPaid, p.Status())
	assert.Equal(t, []model.PaymentStatus{model.PaymentPaid}, snapshot())
	assert.GreaterOrEqual(t, q.callCount(), 3)
}

func TestPoller_StopDiscardsInFlightResult(t *testing.T) {
	block := make(chan struct{})
	q := &scriptedQuery{
		script:  []model.PaymentStatus{model.PaymentPaid},
		blockCh: block,
	}
	record, snapshot := collectChanges()

	p := New(q.fn, WithInterval(5*time.Millisecond))
	p.Start(context.Background(), "order-1", record)

	// let the first probe get in flight, then stop and release it
	time.Sleep(10 * time.Millisecond)
	p.Stop()
	close(block)

	select {
	case <-p.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not finish")
	}

	assert.Empty(t, snapshot())
	assert.Equal(t, model.PaymentPending, p.Status())
}

func TestPoller_StopIsIdempotent(t *testing.T) {
	q := &scriptedQuery{script: []model.PaymentStatus{model.PaymentPending}}

	p := New(q.fn, WithInterval(5*time.Millisecond))
	p.Start(context.Background(), "order-1", nil)

	p.Stop()
	p.Stop()
	p.Stop()

	select {
	case <-p.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not finish")
	}
}

func TestPoller_StopBeforeStartIsSafe(t *testing.T) {
	q := &scriptedQuery{script: []model.PaymentStatus{model.PaymentPaid}}

	p := New(q.fn)
	p.Stop()
	p.Start(context.Background(), "order-1", func(model.PaymentStatus) {
		t.Error("callback after stop")
	})

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, q.callCount())
}

// The callback must be able to read back the session status without
// deadlocking on the poller's own mutex.
func TestPoller_CallbackCanReadStatus(t *testing.T) {
	q := &scriptedQuery{script: []model.PaymentStatus{model.PaymentPaid}}
	got := make(chan model.PaymentStatus, 1)

	p := New(q.fn, WithInterval(time.Millisecond))
	p.Start(context.Background(), "order-1", func(model.PaymentStatus) {
		got <- p.Status()
	})

	select {
	case st := <-got:
		assert.Equal(t, model.PaymentPaid, st)
	case <-time.After(2 * time.Second):
		t.Fatal("callback never completed")
	}

	select {
	case <-p.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not finish")
	}
}

func TestPoller_CallbackCanStopPolling(t *testing.T) {
	q := &scriptedQuery{script: []model.PaymentStatus{model.PaymentFailed}}

	p := New(q.fn, WithInterval(time.Millisecond))
	p.Start(context.Background(), "order-1", func(model.PaymentStatus) {
		p.Stop()
	})

	select {
	case <-p.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not finish")
	}

	assert.Equal(t, model.PaymentFailed, p.Status())
}

func TestPoller_DoneClosesWithoutStart(t *testing.T) {
	q := &scriptedQuery{script: []model.PaymentStatus{model.PaymentPending}}

	p := New(q.fn)
	p.Stop()

	select {
	case <-p.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("done never closed for a poller that was stopped before starting")
	}
}

func TestPoller_MaxAttemptsBoundsPolling(t *testing.T) {
	q := &scriptedQuery{script: []model.PaymentStatus{model.PaymentPending}}

	p := New(q.fn, WithInterval(time.Millisecond), WithMaxAttempts(3))
	p.Start(context.Background(), "order-1", nil)

	select {
	case <-p.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not finish")
	}

	assert.Equal(t, 3, q.callCount())
	assert.Equal(t, model.PaymentPending, p.Status())
}

func TestPoller_ContextCancelStopsPolling(t *testing.T) {
	q := &scriptedQuery{script: []model.PaymentStatus{model.PaymentPending}}

	ctx, cancel := context.WithCancel(context.Background())
	p := New(q.fn, WithInterval(5*time.Millisecond))
	p.Start(ctx, "order-1", nil)

	time.Sleep(12 * time.Millisecond)
	cancel()

	select {
	case <-p.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not finish")
	}
}

func TestParsePaymentStatus(t *testing.T) {
	require.Equal(t, model.PaymentPaid, model.ParsePaymentStatus("PAID"))
	require.Equal(t, model.PaymentCancelled, model.ParsePaymentStatus(" Cancelled "))
	require.Equal(t, model.PaymentFailed, model.ParsePaymentStatus("FAILED"))
	require.Equal(t, model.PaymentPending, model.ParsePaymentStatus("PENDING"))
	// unknown variants must never look terminal
	st := model.ParsePaymentStatus("SOMETHING_NEW")
	require.Equal(t, model.PaymentPending, st)
	require.False(t, st.Terminal())
}
