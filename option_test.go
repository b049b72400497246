package dtp

import (
	"log/slog"
	"sync"
	"testing"
	"time"
)

// mockLogger records logged messages. Safe for concurrent use.
type mockLogger struct {
	mu   sync.Mutex
	msgs []string
}

func (l *mockLogger) record(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgs = append(l.msgs, msg)
}

func (l *mockLogger) Debug(msg string, args ...any) { l.record(msg) }
func (l *mockLogger) Info(msg string, args ...any)  { l.record(msg) }
func (l *mockLogger) Warn(msg string, args ...any)  { l.record(msg) }
func (l *mockLogger) Error(msg string, args ...any) { l.record(msg) }

func (l *mockLogger) logged(msg string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.msgs {
		if m == msg {
			return true
		}
	}
	return false
}

func TestLogger_Interface(t *testing.T) {
	// Verify that *slog.Logger implements our Logger interface
	var _ Logger = slog.Default()
}

func TestLoggerOption(t *testing.T) {
	logger := &mockLogger{}
	opt := LoggerOption(logger)

	var opts options
	opt(&opts)

	if opts.logger != logger {
		t.Error("logger not set correctly")
	}
}

func TestClockOption(t *testing.T) {
	fixed := time.Date(2024, time.March, 5, 9, 7, 0, 0, time.UTC)
	opt := ClockOption(func() time.Time { return fixed })

	var opts options
	opt(&opts)

	if opts.clock == nil {
		t.Fatal("clock is nil")
	}
	if !opts.clock().Equal(fixed) {
		t.Errorf("clock() = %v, want %v", opts.clock(), fixed)
	}
}

func TestTimeoutOption(t *testing.T) {
	opt := TimeoutOption(time.Millisecond * 250)

	var opts options
	opt(&opts)

	if opts.timeout != time.Millisecond*250 {
		t.Errorf("timeout = %v, want %v", opts.timeout, time.Millisecond*250)
	}
}

func TestReadBufferSizeOption(t *testing.T) {
	opt := ReadBufferSizeOption(4096)

	var opts options
	opt(&opts)

	if opts.readBufferSize != 4096 {
		t.Errorf("readBufferSize = %d, want 4096", opts.readBufferSize)
	}
}

func TestCheckOptions_DefaultValues(t *testing.T) {
	opts := &options{}
	checkOptions(opts)

	if opts.logger != slog.Default() {
		t.Error("logger should default to slog.Default()")
	}
	if opts.clock == nil {
		t.Error("clock should have default value")
	}
	if opts.timeout != defaultTimeout {
		t.Errorf("timeout = %v, want %v", opts.timeout, defaultTimeout)
	}
	if opts.readBufferSize != defaultReadBufferSize {
		t.Errorf("readBufferSize = %d, want %d", opts.readBufferSize, defaultReadBufferSize)
	}
}

func TestNewOptions_MultipleOptions(t *testing.T) {
	logger := &mockLogger{}
	opts := newOptions(
		LoggerOption(logger),
		TimeoutOption(time.Second*3),
		ReadBufferSizeOption(512),
		TimeoutOption(-1),
	)

	if opts.logger != logger {
		t.Error("logger not set")
	}
	// A later non-positive timeout falls back to the default.
	if opts.timeout != defaultTimeout {
		t.Errorf("timeout = %v, want %v", opts.timeout, defaultTimeout)
	}
	if opts.readBufferSize != 512 {
		t.Errorf("readBufferSize = %d, want 512", opts.readBufferSize)
	}
}
