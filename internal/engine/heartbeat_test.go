package engine

import (
	"context"
	"testing"
	"time"

	"github.com/sednev/llrpc/internal/testutil/testlog"
)

func TestHeartbeatCoalescesPendingTicks(t *testing.T) {
	testlog.Start(t)

	hb := NewHeartbeat(time.Second)
	hb.Fire()
	hb.Fire()

	if !hb.Consume() {
		t.Fatalf("expected a heartbeat to be due")
	}
	if hb.Consume() {
		t.Fatalf("two fires must coalesce into one pending heartbeat")
	}
}

func TestHeartbeatStartsIdle(t *testing.T) {
	hb := NewHeartbeat(time.Second)
	if hb.Consume() {
		t.Fatalf("no heartbeat should be due before the first tick")
	}
}

func TestHeartbeatRearms(t *testing.T) {
	testlog.Start(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hb := NewHeartbeat(10 * time.Millisecond)
	hb.Start(ctx)

	for fired := 0; fired < 2; {
		deadline := time.Now().Add(time.Second)
		for !hb.Consume() {
			if time.Now().After(deadline) {
				t.Fatalf("timer did not fire (got %d of 2)", fired)
			}
			time.Sleep(time.Millisecond)
		}
		fired++
	}
}
