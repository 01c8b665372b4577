package correlator

import (
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/viant/dyopen/schema"
	"go.uber.org/zap"
)

var (
	// ErrAlreadyPending is returned by Issue under the Reject policy.
	ErrAlreadyPending = errors.New("correlator: request already pending")
	// ErrNoPendingRequest is returned by Resolve for an orphan callback.
	ErrNoPendingRequest = errors.New("correlator: no pending request")
	// ErrInvalidKind is returned for a kind outside the defined set.
	ErrInvalidKind = errors.New("correlator: invalid request kind")
	// ErrNilSink is returned when Issue receives no sink.
	ErrNilSink = errors.New("correlator: nil sink")
)

// Binding identifies one occupancy of a slot.
type Binding struct {
	Kind     Kind
	Token    string
	Sequence uint64
	IssuedAt time.Time
}

type slot struct {
	sink    *Sink
	binding Binding
}

// Correlator holds at most one pending sink per Kind.
type Correlator struct {
	mux      sync.Mutex
	slots    [kindCount]slot
	sequence uint64
	policy   Policy
	logger   *zap.Logger
	onOrphan func(kind Kind, outcome Outcome)
	now      func() time.Time
}

// Issue binds sink to the slot of kind. An occupied slot is handled by the policy.
func (c *Correlator) Issue(kind Kind, sink *Sink, token string) (Binding, error) {
	if !kind.Valid() {
		return Binding{}, errors.Wrapf(ErrInvalidKind, "issue %v", kind)
	}
	if sink == nil {
		return Binding{}, ErrNilSink
	}
	c.mux.Lock()
	current := &c.slots[kind]
	var evicted *Sink
	if current.sink != nil {
		if c.policy == Reject {
			pending := current.binding
			c.mux.Unlock()
			c.logger.Warn("request rejected, slot occupied",
				zap.Stringer("kind", kind), zap.Uint64("pending", pending.Sequence))
			return Binding{}, errors.Wrapf(ErrAlreadyPending, "%v", kind)
		}
		evicted = current.sink
		c.logger.Info("evicting stale request",
			zap.Stringer("kind", kind), zap.Uint64("sequence", current.binding.Sequence))
	}
	c.sequence++
	binding := Binding{Kind: kind, Token: token, Sequence: c.sequence, IssuedAt: c.now()}
	c.slots[kind] = slot{sink: sink, binding: binding}
	c.mux.Unlock()

	if evicted != nil {
		if err := evicted.Deliver(Cancelled(schema.RequestSuperseded, kind)); err != nil {
			c.logger.Error("evicted sink already used", zap.Stringer("kind", kind), zap.Error(err))
		}
	}
	c.logger.Debug("request issued", zap.Stringer("kind", kind), zap.Uint64("sequence", binding.Sequence))
	return binding, nil
}

// Resolve delivers outcome to the pending sink of kind and empties the slot.
// With nothing pending it returns ErrNoPendingRequest and leaves the slot empty.
func (c *Correlator) Resolve(kind Kind, outcome Outcome) error {
	if !kind.Valid() {
		return errors.Wrapf(ErrInvalidKind, "resolve %v", kind)
	}
	c.mux.Lock()
	current := c.slots[kind]
	c.slots[kind] = slot{}
	c.mux.Unlock()

	if current.sink == nil {
		c.logger.Warn("orphan callback", zap.Stringer("kind", kind), zap.Bool("ok", outcome.OK()))
		if c.onOrphan != nil {
			c.onOrphan(kind, outcome)
		}
		return errors.Wrapf(ErrNoPendingRequest, "%v", kind)
	}
	c.logger.Debug("request resolved", zap.Stringer("kind", kind),
		zap.Uint64("sequence", current.binding.Sequence), zap.Bool("ok", outcome.OK()))
	return current.sink.Deliver(outcome)
}

// Abandon empties the slot if binding still owns it, delivering REQUEST_CANCELLED to its sink.
func (c *Correlator) Abandon(binding Binding) bool {
	if !binding.Kind.Valid() {
		return false
	}
	c.mux.Lock()
	current := c.slots[binding.Kind]
	if current.sink == nil || current.binding.Sequence != binding.Sequence {
		c.mux.Unlock()
		return false
	}
	c.slots[binding.Kind] = slot{}
	c.mux.Unlock()
	c.logger.Info("request abandoned", zap.Stringer("kind", binding.Kind), zap.Uint64("sequence", binding.Sequence))
	_ = current.sink.Deliver(Cancelled(schema.RequestCancelled, binding.Kind))
	return true
}

// Pending returns the binding occupying the slot of kind.
func (c *Correlator) Pending(kind Kind) (Binding, bool) {
	if !kind.Valid() {
		return Binding{}, false
	}
	c.mux.Lock()
	defer c.mux.Unlock()
	current := c.slots[kind]
	return current.binding, current.sink != nil
}

// Policy returns the occupied-slot policy.
func (c *Correlator) Policy() Policy {
	return c.policy
}

// New creates a correlator with all slots empty
func New(options ...Option) *Correlator {
	ret := &Correlator{
		policy: Evict,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
