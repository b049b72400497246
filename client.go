package dtp

import (
	"context"
	"net"
	"time"

	"github.com/pkg/errors"
)

// ErrTimeout is returned when no response arrives within the client's wait
// bound. It is an expected outcome, not a protocol violation.
var ErrTimeout = errors.New("dtp: response timed out")

// Client performs single-shot date/time exchanges. It never retries.
type Client struct {
	opts options
}

// NewClient creates a client with the given options.
func NewClient(opt ...Option) *Client {
	return &Client{opts: newOptions(opt...)}
}

// Exchange sends one request of kind to target ("host:port") and waits for
// one response. The wait ends at the configured timeout or the context
// deadline, whichever is earlier.
//
// Returns:
//   - the decoded Response on success
//   - ErrTimeout if nothing arrived in time
//   - a *ProtocolError (matching ErrProtocol) if the reply is malformed
//   - a wrapped transport error if resolving, sending or receiving failed
func (c *Client) Exchange(ctx context.Context, target string, kind RequestKind) (Response, error) {
	logger := c.opts.logger

	packet, err := EncodeRequest(NewRequest(kind))
	if err != nil {
		return Response{}, err
	}

	raddr, err := net.ResolveUDPAddr("udp4", target)
	if err != nil {
		return Response{}, errors.Wrapf(err, "resolve %s", target)
	}

	// An unconnected socket ignores ICMP port-unreachable replies, so a
	// missing server shows up as a timeout rather than a read error.
	conn, err := net.ListenUDP("udp4", nil)
	if err != nil {
		return Response{}, errors.Wrap(err, "open socket")
	}
	defer conn.Close()

	if _, err = conn.WriteToUDP(packet, raddr); err != nil {
		return Response{}, errors.Wrapf(err, "send request to %s", raddr)
	}
	logger.Debug("request sent", "to", raddr, "kind", kind)

	deadline := time.Now().Add(c.opts.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetReadDeadline(deadline)

	buf := make([]byte, c.opts.readBufferSize)
	n, err := c.receiveFrom(conn, raddr, buf)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			logger.Info("response timed out", "to", raddr, "timeout", c.opts.timeout)
			return Response{}, ErrTimeout
		}
		return Response{}, errors.Wrapf(err, "receive from %s", raddr)
	}

	resp, err := DecodeResponse(buf[:n])
	if err != nil {
		logger.Warn("invalid response", "from", raddr, "size", n, "error", err)
		return Response{}, err
	}

	logger.Debug("response received", "from", raddr, "language", resp.Language, "text", resp.Text)
	return resp, nil
}

// receiveFrom reads into buf until a datagram from raddr arrives or the read
// deadline passes. Datagrams from any other source are dropped.
func (c *Client) receiveFrom(conn *net.UDPConn, raddr *net.UDPAddr, buf []byte) (int, error) {
	for {
		n, from, err := conn.ReadFromUDP(buf)
		if err != nil {
			return 0, err
		}
		if from.Port == raddr.Port && from.IP.Equal(raddr.IP) {
			return n, nil
		}
		c.opts.logger.Debug("ignoring datagram from unexpected source", "from", from, "want", raddr)
	}
}
