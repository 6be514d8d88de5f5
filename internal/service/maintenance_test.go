package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingTokenReaper struct {
	calls int
}

func (r *countingTokenReaper) DeleteDefunct(context.Context) (int64, error) {
	r.calls++
	return 2, nil
}

type countingAuditReaper struct {
	calls   int
	cutoffs []time.Time
}

func (r *countingAuditReaper) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.calls++
	r.cutoffs = append(r.cutoffs, cutoff)
	return 1, nil
}

func TestSweepPrunesBothTables(t *testing.T) {
	tokens := &countingTokenReaper{}
	audit := &countingAuditReaper{}
	svc := NewMaintenanceService(tokens, audit, 90*24*time.Hour)

	svc.Sweep(context.Background())

	assert.Equal(t, 1, tokens.calls)
	require.Equal(t, 1, audit.calls)
	assert.WithinDuration(t, time.Now().UTC().Add(-90*24*time.Hour), audit.cutoffs[0], time.Minute)
}

func TestRunSweepsImmediatelyAndStopsOnCancel(t *testing.T) {
	tokens := &countingTokenReaper{}
	audit := &countingAuditReaper{}
	svc := NewMaintenanceService(tokens, audit, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx, time.Hour)
		close(done)
	}()

	// Run performs a sweep on startup before the first tick.
	assert.Eventually(t, func() bool { return tokens.calls >= 1 }, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}

func TestMaintenanceDefaultsRetention(t *testing.T) {
	audit := &countingAuditReaper{}
	svc := NewMaintenanceService(&countingTokenReaper{}, audit, 0)

	svc.Sweep(context.Background())

	require.Len(t, audit.cutoffs, 1)
	assert.WithinDuration(t, time.Now().UTC().Add(-90*24*time.Hour), audit.cutoffs[0], time.Minute)
}
