// Package server runs the binary's long-lived services and tears them down
// together on a signal, a cancelled context, or the first service to exit.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Service is a long-running component. Start blocks until Stop is called or
// the service finishes on its own.
type Service interface {
	Start() error
	Stop()
}

// FuncService adapts a start/stop function pair into the Service interface.
type FuncService struct {
	StartFn func() error
	StopFn  func()
}

// Start calls the underlying start function.
func (f *FuncService) Start() error { return f.StartFn() }

// Stop calls the underlying stop function.
func (f *FuncService) Stop() { f.StopFn() }

// Lifecycle starts services in registration order and stops them in reverse.
type Lifecycle struct {
	logger   *zap.Logger
	services []namedService
	signals  []os.Signal
}

type namedService struct {
	name    string
	service Service
}

type exit struct {
	name string
	err  error
}

// NewLifecycle creates a Lifecycle that shuts down on SIGINT or SIGTERM.
//
// Precondition: logger must be non-nil.
func NewLifecycle(logger *zap.Logger) *Lifecycle {
	return &Lifecycle{
		logger:  logger,
		signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}
}

// Add registers a named service. Must be called before Run.
//
// Precondition: name must be non-empty; svc must be non-nil.
func (l *Lifecycle) Add(name string, svc Service) {
	l.services = append(l.services, namedService{name: name, service: svc})
}

// Run starts every service and blocks until a signal arrives, ctx is done, or
// any service's Start returns. All services are then stopped in reverse order.
//
// Postcondition: Returns the error of the service whose exit triggered the
// shutdown, wrapped with its name; nil otherwise.
func (l *Lifecycle) Run(ctx context.Context) error {
	start := time.Now()

	exits := make(chan exit, len(l.services))
	for _, ns := range l.services {
		ns := ns
		go func() {
			l.logger.Info("starting service", zap.String("service", ns.name))
			err := ns.service.Start()
			exits <- exit{name: ns.name, err: err}
		}()
	}
	l.logger.Info("all services started", zap.Int("count", len(l.services)))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, l.signals...)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		l.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case <-ctx.Done():
		l.logger.Info("context cancelled, shutting down")
	case ex := <-exits:
		if ex.err != nil {
			l.logger.Error("service failed, shutting down",
				zap.String("service", ex.name),
				zap.Error(ex.err),
				zap.Duration("uptime", time.Since(start)),
			)
			runErr = fmt.Errorf("service %s: %w", ex.name, ex.err)
		} else {
			l.logger.Info("service finished, shutting down", zap.String("service", ex.name))
		}
	}

	l.shutdown()
	l.logger.Info("shutdown complete", zap.Duration("total_uptime", time.Since(start)))
	return runErr
}

func (l *Lifecycle) shutdown() {
	for i := len(l.services) - 1; i >= 0; i-- {
		ns := l.services[i]
		svcStart := time.Now()
		ns.service.Stop()
		l.logger.Info("service stopped",
			zap.String("service", ns.name),
			zap.Duration("elapsed", time.Since(svcStart)),
		)
	}
}
