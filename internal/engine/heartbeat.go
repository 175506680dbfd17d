package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/sednev/llrpc/internal/observability"
)

// Heartbeat asks the event loop to originate one ECHO_REQ per interval. The
// pending state is a single flag, never a counter: ticks that land before the
// loop consumes the previous one coalesce into "a heartbeat is due". The flag
// is the only state shared between the timer goroutine and the loop.
type Heartbeat struct {
	interval time.Duration
	due      atomic.Bool
}

func NewHeartbeat(interval time.Duration) *Heartbeat {
	return &Heartbeat{interval: interval}
}

// Start arms the timer until ctx is done. The timer goroutine only ever sets
// the flag; it performs no I/O of its own.
func (h *Heartbeat) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(h.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				h.Fire()
			}
		}
	}()
}

// Fire marks a heartbeat as due.
func (h *Heartbeat) Fire() {
	if h.due.Swap(true) {
		observability.RecordHeartbeatCoalesced()
	}
}

// Consume reports whether a heartbeat was due and clears the flag.
func (h *Heartbeat) Consume() bool {
	return h.due.Swap(false)
}
