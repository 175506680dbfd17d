package endpoint

import (
	"bytes"
	"errors"
	"net"
	"testing"
	"time"
)

func udpConn(t *testing.T) net.PacketConn {
	t.Helper()
	conn, err := net.ListenPacket("udp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen udp: %v", err)
	}
	return conn
}

func TestOpenRejectsMalformedAddress(t *testing.T) {
	ep, err := Open("not-an-address", 0)
	if err == nil {
		ep.Close()
		t.Fatalf("expected open to fail")
	}
	if !errors.Is(err, ErrBindFailed) && !errors.Is(err, ErrResourceUnavailable) {
		t.Fatalf("unclassified open failure: %v", err)
	}
}

func TestCloseNeverOpened(t *testing.T) {
	var nilEp *Endpoint
	if err := nilEp.Close(); err != nil {
		t.Fatalf("close nil endpoint: %v", err)
	}
	if err := (&Endpoint{}).Close(); err != nil {
		t.Fatalf("close zero endpoint: %v", err)
	}
}

func TestCloseTolerantOfDoubleClose(t *testing.T) {
	ep := FromPacketConn(udpConn(t))
	if err := ep.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := ep.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestReceiveTimeoutIsNotAnError(t *testing.T) {
	ep := FromPacketConn(udpConn(t))
	defer ep.Close()

	buf := make([]byte, 64)
	n, peer, err := ep.Receive(buf, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("deadline expiry must not be an error: %v", err)
	}
	if n != 0 || peer != nil {
		t.Fatalf("expected nothing ready, got n=%d peer=%v", n, peer)
	}
}

func TestSendReceiveDatagram(t *testing.T) {
	a := FromPacketConn(udpConn(t))
	defer a.Close()
	b := FromPacketConn(udpConn(t))
	defer b.Close()

	payload := []byte{0xde, 0xad, 0xbe, 0xef}
	if err := a.Send(b.LocalAddr(), payload); err != nil {
		t.Fatalf("send: %v", err)
	}

	buf := make([]byte, 64)
	n, peer, err := b.Receive(buf, time.Second)
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if !bytes.Equal(buf[:n], payload) {
		t.Fatalf("payload mismatch: got %x want %x", buf[:n], payload)
	}
	if peer == nil {
		t.Fatalf("expected peer address")
	}
}

func TestReceiveAfterCloseFails(t *testing.T) {
	ep := FromPacketConn(udpConn(t))
	ep.Close()

	buf := make([]byte, 64)
	if _, _, err := ep.Receive(buf, 20*time.Millisecond); !errors.Is(err, ErrReceive) {
		t.Fatalf("expected ErrReceive, got %v", err)
	}
}
