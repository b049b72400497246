package dtp

import (
	"net"
	"strconv"

	"github.com/pkg/errors"
)

// Port limits accepted on the command line.
const (
	MinPort = 1024
	MaxPort = 64000
)

// Configuration errors.
var (
	ErrInvalidPort   = errors.New("port must be an integer between 1024 and 64000")
	ErrDuplicatePort = errors.New("port numbers must be unique")
)

// ParsePort parses a port number and checks it lies within MinPort-MaxPort.
func ParsePort(s string) (int, error) {
	port, err := strconv.Atoi(s)
	if err != nil || port < MinPort || port > MaxPort {
		return 0, errors.Wrapf(ErrInvalidPort, "port %q", s)
	}
	return port, nil
}

// Bindings builds the server bindings for host from one port per language,
// assigned in the order of Languages.
func Bindings(host string, ports ...string) ([]Binding, error) {
	if len(ports) != len(Languages) {
		return nil, errors.Errorf("expected %d ports, got %d", len(Languages), len(ports))
	}

	seen := make(map[int]bool, len(ports))
	bindings := make([]Binding, 0, len(ports))
	for i, p := range ports {
		port, err := ParsePort(p)
		if err != nil {
			return nil, errors.WithMessagef(err, "port %d", i+1)
		}
		if seen[port] {
			return nil, errors.Wrapf(ErrDuplicatePort, "port %d", port)
		}
		seen[port] = true

		bindings = append(bindings, Binding{
			Addr:     net.JoinHostPort(host, strconv.Itoa(port)),
			Language: Languages[i],
		})
	}
	return bindings, nil
}
