package dtp

import (
	"context"
	"net"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Errors returned by server setup and serving.
var (
	// ErrServerClosed is returned by Serve after Close.
	ErrServerClosed = errors.New("dtp: server closed")
	// ErrNoBindings is returned when a server is created without endpoints.
	ErrNoBindings = errors.New("dtp: no bindings")
	// ErrDuplicateBinding is returned when two bindings share an address.
	ErrDuplicateBinding = errors.New("dtp: duplicate binding")
)

// Binding ties one listening address to the language served on it.
type Binding struct {
	Addr     string
	Language Language
}

// Server answers DT-Requests on a set of language endpoints.
type Server struct {
	endpoints []*endpoint
	logger    Logger
	clock     func() time.Time

	closed atomic.Bool
}

// New binds one UDP endpoint per binding. Either every endpoint is bound or
// none is: on failure the endpoints bound so far are closed again.
func New(bindings []Binding, opt ...Option) (*Server, error) {
	if len(bindings) == 0 {
		return nil, ErrNoBindings
	}

	seen := make(map[string]bool, len(bindings))
	for _, b := range bindings {
		if !b.Language.valid() {
			return nil, protocolErr("language code", int(b.Language), "unsupported language")
		}
		if !wildcardPort(b.Addr) {
			if seen[b.Addr] {
				return nil, errors.Wrap(ErrDuplicateBinding, b.Addr)
			}
			seen[b.Addr] = true
		}
	}

	opts := newOptions(opt...)
	s := &Server{
		logger: opts.logger,
		clock:  opts.clock,
	}

	for _, b := range bindings {
		ep, err := listenEndpoint(context.Background(), b, opts)
		if err != nil {
			s.closeEndpoints()
			return nil, err
		}
		s.logger.Debug("endpoint bound", "addr", ep.Addr(), "language", b.Language)
		s.endpoints = append(s.endpoints, ep)
	}

	return s, nil
}

// wildcardPort reports whether addr asks the system to pick a port, in which
// case it cannot clash with another binding.
func wildcardPort(addr string) bool {
	_, port, err := net.SplitHostPort(addr)
	return err == nil && (port == "0" || port == "")
}

// Serve receives requests on every endpoint and answers them one at a time.
// Per-packet failures are logged and never stop the loop.
// It blocks until the context is canceled, returning ctx.Err(), or until
// Close is called, returning ErrServerClosed.
func (s *Server) Serve(ctx context.Context) error {
	if s.closed.Load() {
		return ErrServerClosed
	}
	s.logger.Info("server started", "addrs", s.Addrs())

	// Clear any deadline left behind by an earlier, canceled Serve.
	for _, ep := range s.endpoints {
		_ = ep.conn.SetReadDeadline(time.Time{})
	}

	group, child := errgroup.WithContext(ctx)
	inbound := make(chan datagram)

	for _, ep := range s.endpoints {
		ep := ep
		group.Go(func() error {
			return ep.readLoop(child, inbound)
		})
	}

	group.Go(func() error {
		for {
			select {
			case <-child.Done():
				return child.Err()
			case d := <-inbound:
				s.dispatch(d)
			}
		}
	})

	// Unblock pending reads once serving ends. Readers and the dispatcher
	// only return with an error, so child is always canceled.
	group.Go(func() error {
		<-child.Done()
		for _, ep := range s.endpoints {
			_ = ep.conn.SetReadDeadline(time.Now())
		}
		return nil
	})

	err := group.Wait()
	if s.closed.Load() {
		err = ErrServerClosed
	}
	s.logger.Info("server stopped", "error", err)
	return err
}

// dispatch answers a single datagram in the language of the endpoint that
// received it.
func (s *Server) dispatch(d datagram) {
	ep := d.endpoint
	s.logger.Debug("received datagram", "addr", ep.Addr(), "from", d.from, "size", len(d.payload))

	req, err := DecodeRequest(d.payload)
	if err != nil {
		s.logger.Info("discarding invalid request", "addr", ep.Addr(), "from", d.from, "error", err)
		return
	}

	resp, err := NewResponse(ep.language, req.Kind, s.clock())
	if err != nil {
		s.logger.Warn("cannot build response", "language", ep.language, "kind", req.Kind, "error", err)
		return
	}

	data, err := EncodeResponse(resp)
	if err != nil {
		s.logger.Warn("cannot encode response", "language", ep.language, "kind", req.Kind, "error", err)
		return
	}

	if err = ep.reply(d.from, data); err != nil {
		s.logger.Error("send response failed", "addr", ep.Addr(), "error", err)
		return
	}
	s.logger.Debug("response sent", "to", d.from, "language", ep.language, "kind", req.Kind, "text", resp.Text)
}

// Close closes every endpoint. A running Serve returns ErrServerClosed.
// Safe to call multiple times.
func (s *Server) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.closeEndpoints()
}

func (s *Server) closeEndpoints() error {
	var first error
	for _, ep := range s.endpoints {
		if err := ep.close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Addrs returns the bound addresses in binding order.
func (s *Server) Addrs() []net.Addr {
	addrs := make([]net.Addr, 0, len(s.endpoints))
	for _, ep := range s.endpoints {
		addrs = append(addrs, ep.Addr())
	}
	return addrs
}
