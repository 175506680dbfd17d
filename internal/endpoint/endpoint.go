// Package endpoint owns the raw IPv4 transport handle for one LLRPC endpoint.
package endpoint

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"golang.org/x/net/ipv4"
)

// ProtocolNumber is the IP protocol identifier reserved for LLRPC traffic.
// LLRPC rides directly on IPv4; there is no port concept.
const ProtocolNumber = 0xFC

var (
	ErrResourceUnavailable = errors.New("endpoint: resource unavailable")
	ErrBindFailed          = errors.New("endpoint: bind failed")
	ErrReceive             = errors.New("endpoint: receive failed")
	ErrSend                = errors.New("endpoint: send failed")
)

// Endpoint is a single bound datagram transport. It is owned by one event
// loop for its whole lifetime; nothing mutates it concurrently.
type Endpoint struct {
	conn net.PacketConn
	pc   *ipv4.PacketConn
}

// Open acquires a raw IPv4 socket restricted to ProtocolNumber and binds it
// to local. Creating raw sockets needs elevated privilege; that failure is
// reported as ErrResourceUnavailable, everything else as ErrBindFailed.
// No handle leaks on the failure path.
func Open(local string, ttl int) (*Endpoint, error) {
	network := fmt.Sprintf("ip4:%d", ProtocolNumber)
	conn, err := net.ListenPacket(network, local)
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return nil, fmt.Errorf("%w: %v", ErrResourceUnavailable, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrBindFailed, err)
	}

	ep := FromPacketConn(conn)
	if ttl > 0 {
		if err := ep.pc.SetTTL(ttl); err != nil {
			conn.Close()
			return nil, fmt.Errorf("%w: set ttl: %v", ErrResourceUnavailable, err)
		}
	}
	return ep, nil
}

// FromPacketConn wraps an already-bound packet conn. Tests use this to drive
// the event loop over UDP loopback, where no raw-socket privilege is needed.
func FromPacketConn(conn net.PacketConn) *Endpoint {
	return &Endpoint{conn: conn, pc: ipv4.NewPacketConn(conn)}
}

func (e *Endpoint) LocalAddr() net.Addr {
	return e.conn.LocalAddr()
}

// Receive waits up to wait for one inbound datagram into buf. A deadline
// expiry means nothing was ready and is not an error: it returns (0, nil, nil).
func (e *Endpoint) Receive(buf []byte, wait time.Duration) (int, net.Addr, error) {
	if err := e.conn.SetReadDeadline(time.Now().Add(wait)); err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrReceive, err)
	}
	n, _, peer, err := e.pc.ReadFrom(buf)
	if err != nil {
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return 0, nil, nil
		}
		return 0, nil, fmt.Errorf("%w: %v", ErrReceive, err)
	}
	return n, peer, nil
}

// Send transmits one datagram to remote.
func (e *Endpoint) Send(remote net.Addr, b []byte) error {
	if _, err := e.pc.WriteTo(b, nil, remote); err != nil {
		return fmt.Errorf("%w: %v", ErrSend, err)
	}
	return nil
}

// Close releases the transport. Safe on a nil or never-opened endpoint, and
// tolerates a conn that was already closed.
func (e *Endpoint) Close() error {
	if e == nil || e.conn == nil {
		return nil
	}
	if err := e.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}
