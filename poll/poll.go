// Package poll implements the Poll/Timer Engine (C8): poll_oneoff
// scheduling over clock subscriptions (relative or absolute deadlines) and
// fd readiness subscriptions, blocking the calling goroutine via the
// host's synchronous Timer collaborator until the earliest condition
// fires (§4.8).
//
// There is no real concurrent I/O multiplexing underneath this host —
// every driver answers readiness synchronously and immediately — so the
// engine's job reduces to: compute the earliest deadline among the clock
// subscriptions, ask every fd subscription whether it is already ready,
// and if none are, sleep until that deadline and report it. Grounded on
// the moby-vendored poll engine pattern in other_examples (event loop
// computing a single minimum deadline across many waiters) adapted to
// wasip1's subscription/event pair; golang.org/x/sync/errgroup fans the
// readiness probes for multiple fd subscriptions out concurrently the way
// the teacher's own concurrent helpers do for independent work.
package poll

import (
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/microsoft/vscode-wasm-sub002/host"
	"github.com/microsoft/vscode-wasm-sub002/wasip1"
)

// Readiness reports whether an fd subscription is ready to read or write
// without blocking. Implemented by the dispatcher, backed by the
// descriptor's driver.
type Readiness interface {
	// ReadReady reports whether fd has data available to read.
	ReadReady(fd wasip1.Fd) (bool, error)
	// WriteReady reports whether fd can accept a write without blocking.
	// Every driver in this host accepts writes immediately (§4.8), so this
	// always returns true for a valid fd; it exists for symmetry and so a
	// future driver with real backpressure has somewhere to report it.
	WriteReady(fd wasip1.Fd) (bool, error)
}

// Engine runs poll_oneoff against a clock and timer collaborator.
type Engine struct {
	Clock     host.Clock
	Timer     host.Timer
	Readiness Readiness
}

// Poll returns the fd subscriptions that are already ready, if any.
// Otherwise, when there is at least one clock subscription, it sleeps until
// the earliest clock deadline, re-checks the fd subscriptions once, and
// returns either the fds that became ready or a single event for that
// earliest clock. With no clock subscription and no ready fd it returns no
// events without blocking. It never returns more events than
// len(clocks)+len(fds) (§4.8, "nevents is monotonically <= nsubs").
func (e *Engine) Poll(clocks []wasip1.Subscription, fds []wasip1.Subscription) ([]wasip1.Event, error) {
	if ready, err := e.pollReady(fds); err != nil {
		return nil, err
	} else if len(ready) > 0 {
		return ready, nil
	}

	if len(clocks) == 0 {
		// No clock to bound the wait and nothing ready: this host has no
		// asynchronous readiness notification, so there is nothing further
		// to wait on. Return immediately with no events rather than
		// blocking forever.
		return nil, nil
	}

	earliest, deadline := e.earliestDeadline(clocks)

	now := e.now(earliest.ClockID)
	if deadline > now {
		e.Timer.Sleep(time.Duration(deadline - now))
	}

	// Re-check fd readiness once after waking, since the sleep may have let
	// a byte source accumulate data.
	if ready, err := e.pollReady(fds); err != nil {
		return nil, err
	} else if len(ready) > 0 {
		return ready, nil
	}

	return []wasip1.Event{{Userdata: earliest.Userdata, Error: wasip1.ESUCCESS, Type: wasip1.EVENTTYPE_CLOCK}}, nil
}

// earliestDeadline returns the clock subscription with the soonest
// absolute deadline, resolving relative timeouts (subclockflags.abstime
// unset) against the subscription's own clock reading.
func (e *Engine) earliestDeadline(clocks []wasip1.Subscription) (wasip1.Subscription, wasip1.Timestamp) {
	abs := func(s wasip1.Subscription) wasip1.Timestamp {
		if s.Flags.Has(wasip1.SUBSCRIPTION_CLOCK_ABSTIME) {
			return s.Timeout
		}
		return e.now(s.ClockID) + s.Timeout
	}

	best := clocks[0]
	bestDeadline := abs(best)
	for _, c := range clocks[1:] {
		if d := abs(c); d < bestDeadline {
			best, bestDeadline = c, d
		}
	}
	return best, bestDeadline
}

func (e *Engine) now(clock wasip1.Clockid) wasip1.Timestamp {
	switch clock {
	case wasip1.CLOCK_REALTIME:
		return e.Clock.Realtime()
	default:
		// monotonic, process_cputime_id and thread_cputime_id are all
		// served from the monotonic source (§4.8: cputime clocks are
		// treated as wall-clock sleeps since the host does not multiplex
		// compute).
		return e.Clock.Monotonic()
	}
}

func (e *Engine) pollReady(subs []wasip1.Subscription) ([]wasip1.Event, error) {
	if len(subs) == 0 {
		return nil, nil
	}

	results := make([]*wasip1.Event, len(subs))
	var group errgroup.Group
	for i, sub := range subs {
		i, sub := i, sub
		group.Go(func() error {
			var ready bool
			var err error
			if sub.Type == wasip1.EVENTTYPE_FD_WRITE {
				ready, err = e.Readiness.WriteReady(sub.FD)
			} else {
				ready, err = e.Readiness.ReadReady(sub.FD)
			}
			switch {
			case err != nil:
				results[i] = &wasip1.Event{Userdata: sub.Userdata, Error: wasip1.ErrnoOf(err), Type: sub.Type}
			case ready:
				results[i] = &wasip1.Event{Userdata: sub.Userdata, Error: wasip1.ESUCCESS, Type: sub.Type}
			}
			return nil
		})
	}
	_ = group.Wait() // readiness probes never return an error from Go; failures are encoded per-event

	var out []wasip1.Event
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}
