// Package correlator pairs one issued vendor request with its single
// asynchronous response.
//
// A Correlator owns one slot per Kind. Issue binds a single-use Sink to the
// slot, Resolve hands the vendor Outcome to that sink exactly once and empties
// the slot. Neither call blocks; the caller waits on whatever the sink feeds.
//
//	c := correlator.New()
//	outcomes := make(chan correlator.Outcome, 1)
//	binding, err := c.Issue(correlator.Authorization, correlator.ChanSink(outcomes), state)
//	...
//	// later, on the platform callback path
//	_ = c.Resolve(correlator.Authorization, correlator.Succeeded(fields))
//
// A second Issue on an occupied kind follows the configured Policy: Evict
// (default) cancels the stale sink with REQUEST_SUPERSEDED before installing
// the new one, Reject fails with ErrAlreadyPending. Resolve on an empty slot
// is an orphan callback: it is logged and reported as ErrNoPendingRequest,
// never a panic.
package correlator
