package dtp

import (
	"context"
	"net"

	"github.com/pkg/errors"
)

// endpoint is one bound UDP socket. The language a response is phrased in
// comes from the endpoint that received the request, never from the packet.
type endpoint struct {
	conn     *net.UDPConn
	language Language
	logger   Logger
	bufSize  int
}

// datagram is one received packet together with the endpoint it arrived on.
type datagram struct {
	endpoint *endpoint
	from     *net.UDPAddr
	payload  []byte
}

// listenEndpoint binds b.Addr with SO_REUSEADDR set.
func listenEndpoint(ctx context.Context, b Binding, opts options) (*endpoint, error) {
	lc := net.ListenConfig{Control: reuseAddrControl}
	pc, err := lc.ListenPacket(ctx, "udp4", b.Addr)
	if err != nil {
		return nil, errors.Wrapf(err, "bind %s endpoint %s", b.Language, b.Addr)
	}

	return &endpoint{
		conn:     pc.(*net.UDPConn),
		language: b.Language,
		logger:   opts.logger,
		bufSize:  opts.readBufferSize,
	}, nil
}

// Addr returns the local address of the endpoint.
func (e *endpoint) Addr() net.Addr {
	return e.conn.LocalAddr()
}

// readLoop receives datagrams and hands them to out one at a time.
// It holds at most one pending datagram, so a busy endpoint cannot starve
// the others sharing out.
// Returns when the context is canceled or the endpoint is closed.
func (e *endpoint) readLoop(ctx context.Context, out chan<- datagram) error {
	buf := make([]byte, e.bufSize)
	for {
		n, from, err := e.conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, net.ErrClosed) {
				return ErrServerClosed
			}
			e.logger.Warn("receive failed", "addr", e.Addr(), "error", err)
			continue
		}

		payload := make([]byte, n)
		copy(payload, buf[:n])

		select {
		case out <- datagram{endpoint: e, from: from, payload: payload}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// reply sends data back to addr from this endpoint.
func (e *endpoint) reply(addr *net.UDPAddr, data []byte) error {
	_, err := e.conn.WriteToUDP(data, addr)
	return errors.Wrapf(err, "send to %s", addr)
}

func (e *endpoint) close() error {
	return e.conn.Close()
}
