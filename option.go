package dtp

import (
	"log/slog"
	"time"
)

// Logger is the interface for structured logging.
// It is satisfied by *slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Default configuration values.
const (
	// defaultTimeout bounds how long a client waits for its one response.
	defaultTimeout = time.Second
	// defaultReadBufferSize is the largest datagram read in one call.
	defaultReadBufferSize = 1024
)

// options holds the configuration shared by Server and Client.
type options struct {
	logger Logger
	clock  func() time.Time

	timeout        time.Duration // client wait bound
	readBufferSize int           // receive buffer per endpoint
}

// Option is a function that configures a Server or a Client.
type Option func(*options)

// LoggerOption sets the logger. If not set, slog.Default() is used.
func LoggerOption(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// ClockOption sets the clock a server samples when building responses.
func ClockOption(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// TimeoutOption sets how long a client waits for a response.
func TimeoutOption(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

// ReadBufferSizeOption sets the receive buffer size. Datagrams longer than
// this are truncated and then rejected by the codecs.
func ReadBufferSizeOption(size int) Option {
	return func(o *options) {
		o.readBufferSize = size
	}
}

func newOptions(opt ...Option) options {
	var opts options
	for _, o := range opt {
		o(&opts)
	}
	checkOptions(&opts)
	return opts
}

// checkOptions sets default values for unset options.
func checkOptions(opts *options) {
	if opts.logger == nil {
		opts.logger = slog.Default()
	}

	if opts.clock == nil {
		opts.clock = time.Now
	}

	if opts.timeout <= 0 {
		opts.timeout = defaultTimeout
	}

	if opts.readBufferSize <= 0 {
		opts.readBufferSize = defaultReadBufferSize
	}
}
