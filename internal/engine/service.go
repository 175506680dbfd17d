// Package engine runs the LLRPC event loop: one endpoint, one heartbeat
// timer, inbound decode and outbound ECHO_REQ dispatch.
package engine

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/sednev/llrpc/internal/endpoint"
	"github.com/sednev/llrpc/internal/observability"
	"github.com/sednev/llrpc/internal/protocol"
)

var (
	ErrInvalidInterval = errors.New("engine: invalid heartbeat interval")
	ErrInvalidAddress  = errors.New("engine: invalid address")
)

// Config carries the runtime knobs for one endpoint process.
type Config struct {
	// LocalAddr is the IPv4 address the endpoint binds to.
	LocalAddr string
	// RemoteAddr is the IPv4 destination for heartbeats.
	RemoteAddr string
	// HeartbeatInterval is how often one ECHO_REQ is originated.
	HeartbeatInterval time.Duration
	// PollTimeout bounds one iteration's wait for inbound data, and with it
	// both the loop rate and the shutdown latency.
	PollTimeout time.Duration
	// TTL, when positive, overrides the outbound hop limit.
	TTL int
	// DebugAddr, when set, serves /healthz and /metrics over HTTP.
	DebugAddr string
}

func DefaultConfig() Config {
	return Config{
		LocalAddr:         "127.0.0.1",
		RemoteAddr:        "127.0.0.1",
		HeartbeatInterval: time.Second,
		PollTimeout:       200 * time.Millisecond,
	}
}

func (c Config) validate() error {
	if c.HeartbeatInterval <= 0 {
		return ErrInvalidInterval
	}
	if c.PollTimeout <= 0 {
		return fmt.Errorf("%w: poll timeout must be positive", ErrInvalidAddress)
	}
	for _, addr := range []string{c.LocalAddr, c.RemoteAddr} {
		ip := net.ParseIP(addr)
		if ip == nil || ip.To4() == nil {
			return fmt.Errorf("%w: %q is not an IPv4 address", ErrInvalidAddress, addr)
		}
	}
	return nil
}

// Service drives one LLRPC endpoint until its context is cancelled.
type Service struct {
	cfg Config
	log zerolog.Logger

	// seq numbers every message this endpoint originates. Process-lifetime,
	// starts at 1, never advanced by receives.
	seq       atomic.Uint32
	startedAt time.Time
}

func NewService(cfg Config, logger zerolog.Logger) *Service {
	return &Service{cfg: cfg, log: logger}
}

// Run validates the config, opens the raw endpoint and serves until ctx is
// done. Open/bind failure is the only fatal outcome.
func (s *Service) Run(ctx context.Context) error {
	if err := s.cfg.validate(); err != nil {
		return err
	}
	ep, err := endpoint.Open(s.cfg.LocalAddr, s.cfg.TTL)
	if err != nil {
		return err
	}
	remote := &net.IPAddr{IP: net.ParseIP(s.cfg.RemoteAddr)}
	return s.Serve(ctx, ep, remote)
}

// Serve multiplexes inbound arrival against heartbeat dispatch over ep. It
// takes ownership of ep and closes it exactly once on return. Within an
// iteration inbound handling always precedes the heartbeat send; per-step
// failures are reported and never stop the loop.
func (s *Service) Serve(ctx context.Context, ep *endpoint.Endpoint, remote net.Addr) error {
	defer func() {
		if err := ep.Close(); err != nil {
			s.log.Warn().Err(err).Msg("endpoint close failed")
		}
	}()

	s.startedAt = time.Now()
	hb := NewHeartbeat(s.cfg.HeartbeatInterval)
	hb.Start(ctx)
	if s.cfg.DebugAddr != "" {
		go s.serveDebug(ctx, s.cfg.DebugAddr)
	}

	s.log.Info().
		Str("local", ep.LocalAddr().String()).
		Str("remote", remote.String()).
		Dur("heartbeat", s.cfg.HeartbeatInterval).
		Msg("llrpc endpoint up")

	buf := make([]byte, 64*1024)
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("llrpc endpoint shutting down")
			return nil
		default:
		}

		n, peer, err := ep.Receive(buf, s.cfg.PollTimeout)
		switch {
		case err != nil:
			observability.RecordTransportError(observability.OpReceive)
			s.log.Warn().Err(err).Msg("receive failed")
		case n > 0:
			s.reportInbound(peer, buf[:n])
		}

		if hb.Consume() {
			s.sendHeartbeat(ep, remote)
		}
	}
}

func (s *Service) reportInbound(peer net.Addr, datagram []byte) {
	h, err := protocol.DecodeHeader(datagram)
	if err != nil {
		observability.RecordTransportError(observability.OpDecode)
		s.log.Warn().Err(err).
			Str("peer", peer.String()).
			Int("bytes", len(datagram)).
			Msg("discarding inbound datagram")
		return
	}
	observability.RecordReceived(h.Type.String())
	s.log.Info().Str("dir", "recv").Msg(protocol.FormatEvent(peer.String(), h))
}

func (s *Service) sendHeartbeat(ep *endpoint.Endpoint, remote net.Addr) {
	h := protocol.New(protocol.MsgEchoRequest, s.seq.Add(1))
	if err := ep.Send(remote, protocol.EncodeHeader(h)); err != nil {
		observability.RecordTransportError(observability.OpSend)
		s.log.Warn().Err(err).Uint32("seq", h.SequenceID).Msg("heartbeat send failed")
		return
	}
	observability.RecordSent(h.Type.String())
	s.log.Info().Str("dir", "send").Msg(protocol.FormatEvent(remote.String(), h))
}
