// Package diag is the structured reporter collaborator: it collects
// non-fatal warnings raised during manifest conversion and dependency
// lowering, and mirrors them to a structured logger. It never aborts
// generation — spec.md §7 requires warnings to never fail the run.
package diag

import (
	"fmt"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Warning is one recoverable condition surfaced to the caller of Generate.
type Warning struct {
	// Scope names the component that raised it, e.g. "manifest", "depsgraph".
	Scope   string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s", w.Scope, w.Message)
}

// Reporter accumulates warnings across a single generation run. It is
// owned by the Services context for the run's lifetime (design notes,
// spec.md §5 — "the manifest cache is owned by the recursive loader for
// one generation run; it is not shared across runs" applies equally here).
type Reporter struct {
	log *zap.SugaredLogger

	mu       sync.Mutex
	warnings []Warning
}

// NewReporter wraps a zap logger. Pass zap.NewNop() in tests that don't
// care about log output.
func NewReporter(log *zap.Logger) *Reporter {
	return &Reporter{log: log.Sugar()}
}

// Warn records a recoverable condition under scope and logs it at debug
// level (warnings here are expected traffic, not operational alerts).
func (r *Reporter) Warn(scope, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.mu.Lock()
	r.warnings = append(r.warnings, Warning{Scope: scope, Message: msg})
	r.mu.Unlock()
	r.log.Debugw(msg, "scope", scope)
}

// Warnings returns a snapshot of everything recorded so far, in the order
// recorded.
func (r *Reporter) Warnings() []Warning {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Warning, len(r.warnings))
	copy(out, r.warnings)
	return out
}

// Collector accumulates multiple independent errors from one step (e.g.
// several unresolved settings while lowering one package target) using
// go.uber.org/multierr, so a caller sees every problem from that step
// instead of only the first.
type Collector struct {
	err error
}

func (c *Collector) Add(err error) {
	if err == nil {
		return
	}
	c.err = multierr.Append(c.err, err)
}

func (c *Collector) Err() error {
	return c.err
}

func (c *Collector) HasErrors() bool {
	return c.err != nil
}
