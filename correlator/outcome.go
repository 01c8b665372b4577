package correlator

import (
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/viant/dyopen/schema"
)

// ErrSinkUsed is returned when a sink is invoked a second time.
var ErrSinkUsed = errors.New("correlator: sink already invoked")

// Outcome is the tagged result of one request; exactly one of Success or Failure is set.
type Outcome struct {
	Success map[string]any
	Failure *schema.Failure
}

// OK reports whether the outcome is a success.
func (o Outcome) OK() bool {
	return o.Failure == nil
}

// Succeeded creates a success outcome
func Succeeded(fields map[string]any) Outcome {
	if fields == nil {
		fields = map[string]any{}
	}
	return Outcome{Success: fields}
}

// Failed creates a failure outcome
func Failed(failure *schema.Failure) Outcome {
	if failure == nil {
		failure = schema.NewFailure(schema.UnknownError, "unknown failure", nil)
	}
	return Outcome{Failure: failure}
}

// Cancelled creates the synthetic outcome delivered to a sink that lost its slot.
func Cancelled(code string, kind Kind) Outcome {
	return Failed(schema.NewFailure(code, kind.String()+" request cancelled", map[string]any{"kind": kind.String()}))
}

// Sink is a single-use result handle bound at issue time.
type Sink struct {
	used atomic.Bool
	fn   func(Outcome)
}

// NewSink wraps fn into a single-use sink
func NewSink(fn func(Outcome)) *Sink {
	return &Sink{fn: fn}
}

// ChanSink returns a sink that sends the outcome to ch; ch should have capacity for one outcome.
func ChanSink(ch chan<- Outcome) *Sink {
	return NewSink(func(outcome Outcome) {
		select {
		case ch <- outcome:
		default:
		}
	})
}

// Deliver passes the outcome to the sink; any call after the first returns ErrSinkUsed.
func (s *Sink) Deliver(outcome Outcome) error {
	if !s.used.CompareAndSwap(false, true) {
		return ErrSinkUsed
	}
	if s.fn != nil {
		s.fn(outcome)
	}
	return nil
}

// Used reports whether the sink has been invoked.
func (s *Sink) Used() bool {
	return s.used.Load()
}
