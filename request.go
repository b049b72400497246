package dtp

import "encoding/binary"

// Request is a DT-Request packet.
type Request struct {
	Magic uint16
	Type  PacketType
	Kind  RequestKind
}

// NewRequest returns a well-formed request for kind.
func NewRequest(kind RequestKind) Request {
	return Request{Magic: Magic, Type: RequestPacket, Kind: kind}
}

func (r Request) validate() error {
	if r.Magic != Magic {
		return protocolErr("magic", int(r.Magic), "unknown protocol identifier")
	}
	if r.Type != RequestPacket {
		return protocolErr("packet type", int(r.Type), "not a request")
	}
	if !r.Kind.valid() {
		return protocolErr("request kind", int(r.Kind), "must be date or time")
	}
	return nil
}

// EncodeRequest validates r and returns its 6 byte wire form.
func EncodeRequest(r Request) ([]byte, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}

	b := make([]byte, RequestSize)
	binary.BigEndian.PutUint16(b[0:], r.Magic)
	binary.BigEndian.PutUint16(b[2:], uint16(r.Type))
	binary.BigEndian.PutUint16(b[4:], uint16(r.Kind))
	return b, nil
}

// DecodeRequest parses a DT-Request packet. The zero Request is returned
// together with a *ProtocolError when b is not a valid request.
func DecodeRequest(b []byte) (Request, error) {
	if len(b) != RequestSize {
		return Request{}, protocolErr("length", len(b), "request must be exactly 6 bytes")
	}

	r := Request{
		Magic: binary.BigEndian.Uint16(b[0:]),
		Type:  PacketType(binary.BigEndian.Uint16(b[2:])),
		Kind:  RequestKind(binary.BigEndian.Uint16(b[4:])),
	}
	if err := r.validate(); err != nil {
		return Request{}, err
	}
	return r, nil
}
