package poll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microsoft/vscode-wasm-sub002/wasip1"
)

type fakeClock struct {
	mono uint64
}

func (c *fakeClock) Realtime() uint64  { return c.mono }
func (c *fakeClock) Monotonic() uint64 { return c.mono }

type fakeTimer struct{ slept time.Duration }

func (t *fakeTimer) Sleep(d time.Duration) { t.slept += d }

type fakeReadiness struct {
	readReady map[wasip1.Fd]bool
}

func (r *fakeReadiness) ReadReady(fd wasip1.Fd) (bool, error)  { return r.readReady[fd], nil }
func (r *fakeReadiness) WriteReady(wasip1.Fd) (bool, error)    { return true, nil }

func TestPollReturnsImmediateFDReadiness(t *testing.T) {
	e := &Engine{Clock: &fakeClock{}, Timer: &fakeTimer{}, Readiness: &fakeReadiness{readReady: map[wasip1.Fd]bool{3: true}}}
	events, err := e.Poll(nil, []wasip1.Subscription{{Userdata: 42, Type: wasip1.EVENTTYPE_FD_READ, FD: 3}})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, uint64(42), events[0].Userdata)
	assert.Equal(t, wasip1.ESUCCESS, events[0].Error)
}

func TestPollSleepsUntilEarliestClock(t *testing.T) {
	clock := &fakeClock{mono: 1000}
	timer := &fakeTimer{}
	e := &Engine{Clock: clock, Timer: timer, Readiness: &fakeReadiness{}}

	clocks := []wasip1.Subscription{
		{Userdata: 1, Type: wasip1.EVENTTYPE_CLOCK, ClockID: wasip1.CLOCK_MONOTONIC, Timeout: 500},
		{Userdata: 2, Type: wasip1.EVENTTYPE_CLOCK, ClockID: wasip1.CLOCK_MONOTONIC, Timeout: 200},
	}
	events, err := e.Poll(clocks, nil)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, uint64(2), events[0].Userdata)
	assert.Equal(t, time.Duration(200), timer.slept)
}

func TestPollReturnsNothingWithNoSubscriptions(t *testing.T) {
	e := &Engine{Clock: &fakeClock{}, Timer: &fakeTimer{}, Readiness: &fakeReadiness{}}
	events, err := e.Poll(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, events)
}
