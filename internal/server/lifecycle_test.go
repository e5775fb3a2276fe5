package server

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// blockingService runs until stopped; it records its stop order.
type blockingService struct {
	name    string
	stop    chan struct{}
	once    sync.Once
	started chan struct{}
	order   *[]string
	mu      *sync.Mutex
}

func newBlocking(name string, order *[]string, mu *sync.Mutex) *blockingService {
	return &blockingService{name: name, stop: make(chan struct{}), started: make(chan struct{}), order: order, mu: mu}
}

func (b *blockingService) Start() error {
	close(b.started)
	<-b.stop
	return nil
}

func (b *blockingService) Stop() {
	b.once.Do(func() {
		b.mu.Lock()
		*b.order = append(*b.order, b.name)
		b.mu.Unlock()
		close(b.stop)
	})
}

func runAsync(lc *Lifecycle, ctx context.Context) chan error {
	done := make(chan error, 1)
	go func() { done <- lc.Run(ctx) }()
	return done
}

func waitErr(t *testing.T, done chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("lifecycle did not shut down in time")
		return nil
	}
}

func TestLifecycle_ContextCancelStopsInReverse(t *testing.T) {
	var order []string
	var mu sync.Mutex
	lc := NewLifecycle(zaptest.NewLogger(t))
	a, b := newBlocking("driver", &order, &mu), newBlocking("input", &order, &mu)
	lc.Add("driver", a)
	lc.Add("input", b)

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(lc, ctx)
	<-a.started
	<-b.started
	cancel()

	require.NoError(t, waitErr(t, done))
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"input", "driver"}, order)
}

func TestLifecycle_ServiceFinishingEndsRun(t *testing.T) {
	var order []string
	var mu sync.Mutex
	lc := NewLifecycle(zaptest.NewLogger(t))
	blocker := newBlocking("input", &order, &mu)
	lc.Add("input", blocker)
	lc.Add("round", &FuncService{
		StartFn: func() error { return nil },
		StopFn:  func() {},
	})

	require.NoError(t, waitErr(t, runAsync(lc, context.Background())))
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"input"}, order)
}

func TestLifecycle_ServiceErrorIsReturned(t *testing.T) {
	var order []string
	var mu sync.Mutex
	boom := errors.New("boom")
	lc := NewLifecycle(zaptest.NewLogger(t))
	lc.Add("input", newBlocking("input", &order, &mu))
	lc.Add("screen", &FuncService{
		StartFn: func() error { return boom },
		StopFn:  func() {},
	})

	err := waitErr(t, runAsync(lc, context.Background()))
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "service screen")
}

func TestFuncService(t *testing.T) {
	started := false
	stopped := false

	svc := &FuncService{
		StartFn: func() error {
			started = true
			return nil
		},
		StopFn: func() {
			stopped = true
		},
	}

	err := svc.Start()
	assert.NoError(t, err)
	assert.True(t, started)

	svc.Stop()
	assert.True(t, stopped)
}
