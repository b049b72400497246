package dtp

import (
	"encoding/binary"
	"time"
	"unicode/utf8"
)

// Response is a DT-Response packet.
type Response struct {
	Magic    uint16
	Type     PacketType
	Language Language
	Year     uint16
	Month    uint8
	Day      uint8
	Hour     uint8
	Minute   uint8
	Text     string
}

// NewResponse answers a request of kind in lang using the clock reading now.
func NewResponse(lang Language, kind RequestKind, now time.Time) (Response, error) {
	text, err := BuildText(lang, kind, now)
	if err != nil {
		return Response{}, err
	}
	if err = checkRange("year", now.Year(), 0, MaxYear); err != nil {
		return Response{}, err
	}

	return Response{
		Magic:    Magic,
		Type:     ResponsePacket,
		Language: lang,
		Year:     uint16(now.Year()),
		Month:    uint8(now.Month()),
		Day:      uint8(now.Day()),
		Hour:     uint8(now.Hour()),
		Minute:   uint8(now.Minute()),
		Text:     text,
	}, nil
}

// Length returns the byte length of the UTF-8 text body.
func (r Response) Length() int {
	return len(r.Text)
}

// validateHeader checks every header field except the text length.
func (r Response) validateHeader() error {
	if r.Magic != Magic {
		return protocolErr("magic", int(r.Magic), "unknown protocol identifier")
	}
	if r.Type != ResponsePacket {
		return protocolErr("packet type", int(r.Type), "not a response")
	}
	if !r.Language.valid() {
		return protocolErr("language code", int(r.Language), "unsupported language")
	}
	if r.Year > MaxYear {
		return protocolErr("year", int(r.Year), "after 2100")
	}
	if err := checkRange("month", int(r.Month), 1, 12); err != nil {
		return err
	}
	if err := checkRange("day", int(r.Day), 1, 31); err != nil {
		return err
	}
	if err := checkRange("hour", int(r.Hour), 0, 23); err != nil {
		return err
	}
	return checkRange("minute", int(r.Minute), 0, 59)
}

// EncodeResponse validates r and returns the 13 byte header followed by the
// text. Text longer than 255 bytes is rejected, never truncated.
func EncodeResponse(r Response) ([]byte, error) {
	if err := r.validateHeader(); err != nil {
		return nil, err
	}
	if r.Length() > MaxTextLength {
		return nil, protocolErr("text length", r.Length(), "exceeds 255 bytes")
	}

	b := make([]byte, HeaderSize+r.Length())
	binary.BigEndian.PutUint16(b[0:], r.Magic)
	binary.BigEndian.PutUint16(b[2:], uint16(r.Type))
	binary.BigEndian.PutUint16(b[4:], uint16(r.Language))
	binary.BigEndian.PutUint16(b[6:], r.Year)
	b[8] = r.Month
	b[9] = r.Day
	b[10] = r.Hour
	b[11] = r.Minute
	b[12] = uint8(r.Length())
	copy(b[HeaderSize:], r.Text)
	return b, nil
}

// DecodeResponse parses a DT-Response packet. The text starts right after
// the header and must fill the rest of the packet exactly.
func DecodeResponse(b []byte) (Response, error) {
	if len(b) < HeaderSize {
		return Response{}, protocolErr("length", len(b), "shorter than the 13 byte header")
	}

	r := Response{
		Magic:    binary.BigEndian.Uint16(b[0:]),
		Type:     PacketType(binary.BigEndian.Uint16(b[2:])),
		Language: Language(binary.BigEndian.Uint16(b[4:])),
		Year:     binary.BigEndian.Uint16(b[6:]),
		Month:    b[8],
		Day:      b[9],
		Hour:     b[10],
		Minute:   b[11],
	}
	if err := r.validateHeader(); err != nil {
		return Response{}, err
	}

	length := int(b[12])
	if len(b) != HeaderSize+length {
		return Response{}, protocolErr("length", len(b), "does not match 13 + text length")
	}

	body := b[HeaderSize:]
	if !utf8.Valid(body) {
		return Response{}, protocolErr("text", length, "not valid UTF-8")
	}
	r.Text = string(body)
	return r, nil
}
