package correlator

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Policy decides what Issue does with an occupied slot.
type Policy int

const (
	// Evict cancels the stale sink and installs the new one.
	Evict Policy = iota
	// Reject keeps the pending sink and fails the new issue.
	Reject
)

func (p Policy) String() string {
	switch p {
	case Evict:
		return "evict"
	case Reject:
		return "reject"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// ParsePolicy parses evict or reject; empty means evict.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "", "evict":
		return Evict, nil
	case "reject":
		return Reject, nil
	}
	return Evict, fmt.Errorf("unsupported correlator policy: %q", name)
}

// Option configures a correlator
type Option func(c *Correlator)

// WithPolicy sets the occupied-slot policy.
func WithPolicy(policy Policy) Option {
	return func(c *Correlator) {
		c.policy = policy
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Correlator) {
		if logger != nil {
			c.logger = logger.Named("correlator")
		}
	}
}

// WithOrphanHandler registers fn to observe orphan callbacks.
func WithOrphanHandler(fn func(kind Kind, outcome Outcome)) Option {
	return func(c *Correlator) {
		c.onOrphan = fn
	}
}

// WithClock overrides the issue timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Correlator) {
		if now != nil {
			c.now = now
		}
	}
}
