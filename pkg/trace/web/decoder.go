package web

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/cpu"
)

var (
	// ErrUnknownMessage is returned for messages the Decoder does not
	// understand.
	ErrUnknownMessage = errors.New("trace: unknown message")
	// ErrUncached is returned for a repeated batch whose payload was
	// never received.
	ErrUncached = errors.New("trace: unknown cache index")
)

// Decoder turns the messages sent by a Hub back into events. It keeps
// the cached batches, so a Decoder must see every message sent to a
// client, in order.
type Decoder struct {
	cache map[uint16][]byte
}

// NewDecoder returns a new Decoder.
func NewDecoder() *Decoder {
	return &Decoder{cache: make(map[uint16][]byte)}
}

// Decode returns the events carried by message. Messages that carry
// no events, such as ClientInfo, return nil.
func (d *Decoder) Decode(message []byte) ([]cpu.Event, error) {
	if len(message) == 0 {
		return nil, ErrUnknownMessage
	}

	switch message[0] {
	case Batch, BatchCompressed, BatchCache:
		if len(message) < 3 {
			return nil, fmt.Errorf("%w: truncated batch", ErrUnknownMessage)
		}
	case ClientInfo:
		d.cache = make(map[uint16][]byte)
		return nil, nil
	case ServerInfo:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: type %d", ErrUnknownMessage, message[0])
	}

	idx := binary.LittleEndian.Uint16(message[1:])
	records := message[3:]
	switch message[0] {
	case BatchCache:
		cached, ok := d.cache[idx]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUncached, idx)
		}
		records = cached
	case BatchCompressed:
		var err error
		if records, err = decompress(records); err != nil {
			return nil, fmt.Errorf("trace: decompressing batch: %w", err)
		}
	default:
		records = append([]byte(nil), records...)
	}

	if message[0] != BatchCache && idx != noCacheIndex {
		d.cache[idx] = records
	}
	return DecodeBatch(records)
}

// Stats holds the counters broadcast by a Hub.
type Stats struct {
	Clients uint8
	Traced  uint64
	Dropped uint64
}

// ParseServerInfo parses a ServerInfo message.
func ParseServerInfo(message []byte) (Stats, error) {
	if len(message) != 18 || message[0] != ServerInfo {
		return Stats{}, fmt.Errorf("%w: not a server info message", ErrUnknownMessage)
	}

	return Stats{
		Clients: message[1],
		Traced:  binary.LittleEndian.Uint64(message[2:]),
		Dropped: binary.LittleEndian.Uint64(message[10:]),
	}, nil
}
