// Package dtp implements a small date/time protocol over UDP.
// A server binds one endpoint per language and answers DT-Request packets
// with a DT-Response carrying the current date or time as a localized
// sentence. A client sends exactly one request and waits a bounded time
// for the answer.
package dtp

import (
	"fmt"

	"github.com/pkg/errors"
)

// Magic identifies every packet of the protocol.
const Magic uint16 = 0x497E

// Wire sizes.
const (
	// RequestSize is the exact length of a DT-Request packet.
	RequestSize = 6
	// HeaderSize is the length of the fixed DT-Response header.
	HeaderSize = 13
	// MaxTextLength is the largest text body the length field can describe.
	MaxTextLength = 255
	// MaxYear is the last year a response may carry.
	MaxYear = 2100
)

// PacketType distinguishes requests from responses.
type PacketType uint16

const (
	RequestPacket  PacketType = 0x0001
	ResponsePacket PacketType = 0x0002
)

func (t PacketType) String() string {
	switch t {
	case RequestPacket:
		return "request"
	case ResponsePacket:
		return "response"
	}
	return fmt.Sprintf("PacketType(%#04x)", uint16(t))
}

// RequestKind selects whether the date or the time is asked for.
type RequestKind uint16

const (
	Date RequestKind = 0x0001
	Time RequestKind = 0x0002
)

func (k RequestKind) valid() bool {
	return k == Date || k == Time
}

func (k RequestKind) String() string {
	switch k {
	case Date:
		return "date"
	case Time:
		return "time"
	}
	return fmt.Sprintf("RequestKind(%#04x)", uint16(k))
}

// ParseRequestKind maps the command line selector "date" or "time" to a kind.
func ParseRequestKind(s string) (RequestKind, error) {
	switch s {
	case "date":
		return Date, nil
	case "time":
		return Time, nil
	}
	return 0, errors.Errorf("request kind must be 'date' or 'time', got %q", s)
}

// Language selects the natural language of the response text.
type Language uint16

const (
	English Language = 0x0001
	Maori   Language = 0x0002
	German  Language = 0x0003
)

// Languages lists the supported languages in endpoint binding order.
var Languages = []Language{English, Maori, German}

func (l Language) valid() bool {
	_, ok := catalog[l]
	return ok
}

func (l Language) String() string {
	switch l {
	case English:
		return "English"
	case Maori:
		return "Te reo Māori"
	case German:
		return "German"
	}
	return fmt.Sprintf("Language(%#04x)", uint16(l))
}

// ErrProtocol matches every *ProtocolError through errors.Is.
var ErrProtocol = errors.New("dtp: protocol error")

// ProtocolError reports a packet or value that violates the protocol.
// Field names the offending header field so callers can tell failures apart.
type ProtocolError struct {
	Field  string
	Value  int
	Reason string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("dtp: invalid %s %d: %s", e.Field, e.Value, e.Reason)
}

// Is reports whether target is ErrProtocol.
func (e *ProtocolError) Is(target error) bool {
	return target == ErrProtocol
}

func protocolErr(field string, value int, reason string) error {
	return &ProtocolError{Field: field, Value: value, Reason: reason}
}

// checkRange returns a ProtocolError for field when v lies outside [lo, hi].
func checkRange(field string, v, lo, hi int) error {
	if v < lo || v > hi {
		return protocolErr(field, v, fmt.Sprintf("must be within %d-%d", lo, hi))
	}
	return nil
}
