package server

import (
	"context"
	"sync/atomic"
)

type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

type HealthCheckerFunc func(ctx context.Context) bool

func (f HealthCheckerFunc) Healthy(ctx context.Context) bool {
	return f(ctx)
}

// DeferredHealthChecker reports unhealthy until a checker is bound. It lets
// the health endpoint be registered before the storage backend is up.
type DeferredHealthChecker struct {
	checker atomic.Pointer[HealthChecker]
}

func NewDeferredHealthChecker() *DeferredHealthChecker {
	return &DeferredHealthChecker{}
}

func (d *DeferredHealthChecker) Bind(checker HealthChecker) {
	d.checker.Store(&checker)
}

func (d *DeferredHealthChecker) Healthy(ctx context.Context) bool {
	c := d.checker.Load()
	if c == nil {
		return false
	}
	return (*c).Healthy(ctx)
}
