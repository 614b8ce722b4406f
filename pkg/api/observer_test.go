package api

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

//
// Helpers
//

// testObserver is a simple Observer implementation used to verify fan-out behavior.
type testObserver struct {
	mu sync.Mutex

	starts    int
	completes int
	fails     int
	opFails   int

	lastResult  *BatchResult
	lastErr     error
	lastOpFail  OpResult
	lastOpCount int
}

func (o *testObserver) OnSendStart(ctx context.Context, opCount int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.starts++
	o.lastOpCount = opCount
}

func (o *testObserver) OnSendCompleted(ctx context.Context, res *BatchResult, d time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.completes++
	o.lastResult = res
}

func (o *testObserver) OnSendFailed(ctx context.Context, err error, d time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fails++
	o.lastErr = err
}

func (o *testObserver) OnOperationFailed(ctx context.Context, res OpResult) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.opFails++
	o.lastOpFail = res
}

func TestCompositeObserverFansOut(t *testing.T) {
	ctx := context.Background()
	a := &testObserver{}
	b := &testObserver{}

	obs := NewCompositeObserver(a, nil, b)
	obs.OnSendStart(ctx, 3)
	obs.OnSendCompleted(ctx, &BatchResult{}, time.Millisecond)
	obs.OnSendFailed(ctx, errors.New("boom"), time.Millisecond)
	obs.OnOperationFailed(ctx, errResult("r1", "bad amount"))

	for _, o := range []*testObserver{a, b} {
		if o.starts != 1 || o.completes != 1 || o.fails != 1 || o.opFails != 1 {
			t.Fatalf("events not fanned out: %+v", o)
		}
		if o.lastOpCount != 3 {
			t.Fatalf("opCount = %d, want 3", o.lastOpCount)
		}
	}
}

func TestNewCompositeObserverCollapses(t *testing.T) {
	if _, ok := NewCompositeObserver().(NoopObserver); !ok {
		t.Fatal("no observers must collapse to NoopObserver")
	}
	single := &testObserver{}
	if got := NewCompositeObserver(single, nil); got != Observer(single) {
		t.Fatal("a single observer must be returned as-is")
	}
}

func TestLoggingObserverWritesStructuredRecords(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	obs := NewLoggingObserver(logger)
	obs.OnSendStart(ctx, 2)
	obs.OnSendCompleted(ctx, &BatchResult{
		Results:     []OpResult{okResult("r1"), errResult("r2", "bad amount")},
		RequestProc: ProcOK,
	}, 5*time.Millisecond)
	obs.OnSendFailed(ctx, errors.New("connection refused"), time.Millisecond)
	obs.OnOperationFailed(ctx, errResult("r2", "bad amount"))

	out := buf.String()
	for _, want := range []string{"batch_send", "batch_completed", "batch_failed", "operation_failed", "failures=1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestBasicMetricsSnapshot(t *testing.T) {
	ctx := context.Background()
	m := &BasicMetrics{}

	m.OnSendStart(ctx, 2)
	m.OnSendCompleted(ctx, &BatchResult{
		Results: []OpResult{okResult("r1"), errResult("r2", "x")},
	}, 10*time.Millisecond)

	m.OnSendStart(ctx, 1)
	m.OnSendFailed(ctx, errors.New("boom"), time.Millisecond)

	snap := m.Snapshot()
	if snap.BatchesSent != 2 || snap.BatchesCompleted != 1 || snap.BatchesFailed != 1 {
		t.Fatalf("unexpected batch counters: %+v", snap)
	}
	if snap.OperationsOK != 1 || snap.OperationsFailed != 1 {
		t.Fatalf("unexpected operation counters: %+v", snap)
	}
	if snap.AvgSendDuration != 10*time.Millisecond {
		t.Fatalf("AvgSendDuration = %s, want 10ms", snap.AvgSendDuration)
	}
}

func TestBasicMetricsIsAnObserver(t *testing.T) {
	var _ Observer = &BasicMetrics{}
}
