package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/repository"
	"github.com/alexanderramin/shopfloor/internal/testutil"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

func TestObserver_ReceivesUseCaseEvents(t *testing.T) {
	database := testutil.NewTestDB(t)
	obs := &recordingObserver{}
	clock := testutil.NewFixedClock(testutil.At(9, 0))
	ledger := NewSessionLedger(
		repository.NewSQLiteSessionRepo(database),
		testutil.NewTestUoW(database),
		NewKeyedLocks(),
		WithClock(clock.Now), WithLocation(time.UTC), WithObserver(obs),
	)
	ctx := context.Background()

	_, err := ledger.Start(ctx, "e1", "Ana")
	require.NoError(t, err)
	ev := obs.last()
	assert.Equal(t, "start-session", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, "e1", ev.Fields["employee_id"])

	_, err = ledger.Start(ctx, "e1", "Ana")
	require.NoError(t, err)
	assert.Equal(t, true, obs.last().Fields["existing"])

	_, err = ledger.End(ctx, "ghost")
	require.Error(t, err)
	ev = obs.last()
	assert.Equal(t, "end-session", ev.Name)
	assert.False(t, ev.Success)
	assert.ErrorIs(t, ev.Err, domain.ErrNotFound)
}

func TestSlogObserver_LevelsByErrorKind(t *testing.T) {
	var buf bytes.Buffer
	obs := NewSlogUseCaseObserver(slog.New(slog.NewTextHandler(&buf, nil)))
	ctx := context.Background()

	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "close-day", Success: true})
	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "patch-groups", Err: domain.NewDayClosedError(d1)})
	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "end-session", Err: errors.New("disk I/O error")})

	out := buf.String()
	assert.Contains(t, out, "level=INFO msg=service_use_case use_case=close-day")
	assert.Contains(t, out, "level=WARN msg=service_use_case use_case=patch-groups")
	assert.Contains(t, out, "level=ERROR msg=service_use_case use_case=end-session")
}

func TestNilLoggerObserverIsNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewSlogUseCaseObserver(nil))
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}

func TestPrometheusObserver_CountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := NewPrometheusUseCaseObserver(reg)
	require.NoError(t, err)
	ctx := context.Background()

	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "close-day", Success: true, Duration: time.Millisecond})
	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "close-day", Success: true, Duration: time.Millisecond})
	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "reopen-day", Err: domain.NewInvalidStateError(d1, "open")})
	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "reopen-day", Err: errors.New("boom")})

	calls := obs.(*prometheusUseCaseObserver).calls
	assert.InDelta(t, 2, promtest.ToFloat64(calls.WithLabelValues("close-day", "ok")), 0)
	assert.InDelta(t, 1, promtest.ToFloat64(calls.WithLabelValues("reopen-day", "invalid_state")), 0)
	assert.InDelta(t, 1, promtest.ToFloat64(calls.WithLabelValues("reopen-day", "error")), 0)

	_, err = NewPrometheusUseCaseObserver(reg)
	assert.Error(t, err, "registering twice on one registry fails")
}

func TestOutcomeLabel(t *testing.T) {
	cases := map[string]UseCaseEvent{
		"ok":            {Success: true},
		"validation":    {Err: domain.NewValidationError("x")},
		"not_found":     {Err: domain.NewNotFoundError("x")},
		"day_closed":    {Err: domain.NewDayClosedError(d1)},
		"invalid_state": {Err: domain.NewInvalidStateError(d1, "x")},
		"conflict":      {Err: domain.NewConflictError("x")},
		"error":         {Err: errors.New("x")},
	}
	for want, ev := range cases {
		assert.Equal(t, want, outcomeLabel(ev))
	}
}

func TestMultiObserver_FansOut(t *testing.T) {
	a, b := &recordingObserver{}, &recordingObserver{}
	multi := MultiUseCaseObserver{a, nil, b}

	multi.ObserveUseCase(context.Background(), UseCaseEvent{Name: "x", Success: true})

	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)
}
