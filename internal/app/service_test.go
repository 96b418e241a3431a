package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type stubService struct {
	name     string
	startErr error
	stopped  atomic.Bool
}

func (s *stubService) Name() string { return s.name }

func (s *stubService) Start(ctx context.Context) error {
	if s.startErr != nil {
		return s.startErr
	}
	<-ctx.Done()
	return ctx.Err()
}

func (s *stubService) Stop(ctx context.Context) error {
	s.stopped.Store(true)
	return nil
}

func TestRunnerStopsAllServicesOnFailure(t *testing.T) {
	boom := errors.New("listener gone")
	failing := &stubService{name: "api", startErr: boom}
	steady := &stubService{name: "worker"}

	runner := NewRunner(failing, steady)
	err := runner.Run(context.Background(), time.Second, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("want start error got %v", err)
	}
	if !failing.stopped.Load() || !steady.stopped.Load() {
		t.Fatalf("every service must be stopped on exit")
	}
}

func TestRunnerReturnsNilOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	svc := &stubService{name: "api"}
	runner := NewRunner(svc)

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	if err := runner.Run(ctx, time.Second, nil); err != nil {
		t.Fatalf("cancelled run should return nil, got %v", err)
	}
	if !svc.stopped.Load() {
		t.Fatalf("service must be stopped after cancel")
	}
}

func TestNormalizeOptionsDefaults(t *testing.T) {
	opts := normalizeOptions(Options{Mode: " API "})
	if opts.Mode != ModeAPI {
		t.Fatalf("mode want api got %q", opts.Mode)
	}
	if opts.ShutdownTimeout != defaultShutdownTimeout {
		t.Fatalf("timeout want %v got %v", defaultShutdownTimeout, opts.ShutdownTimeout)
	}
	if opts.Logger == nil {
		t.Fatalf("logger default missing")
	}
}
