// Package probe tracks reachability of the remote catalog API so the
// back-office can show upstream health without waiting for a page
// fetch to fail.
package probe

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kalaicenter/kalaiweb/internal/apiclient"
)

// Status is the outcome of the most recent probe.
type Status struct {
	Healthy   bool          `json:"healthy"`
	Latency   time.Duration `json:"latency"`
	CheckedAt time.Time     `json:"checked_at"`
	Message   string        `json:"message,omitempty"`
}

type Probe struct {
	api *apiclient.Client

	mu   sync.RWMutex
	last Status
}

func New(api *apiclient.Client) *Probe {
	return &Probe{api: api}
}

// Check performs one probe round-trip against a cheap public endpoint
// and records the result. Failures are recorded and logged, never
// propagated; the probe is pure observability.
func (p *Probe) Check(ctx context.Context) Status {
	start := time.Now()
	_, err := p.api.ListCategories(ctx)

	status := Status{
		Healthy:   err == nil,
		Latency:   time.Since(start),
		CheckedAt: time.Now(),
	}
	if err != nil {
		status.Message = err.Error()
		zap.L().Warn("upstream api probe failed", zap.Error(err))
	}

	p.mu.Lock()
	p.last = status
	p.mu.Unlock()
	return status
}

// Last returns the most recent recorded status. Before the first
// check it reports an unchecked zero status.
func (p *Probe) Last() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last
}
