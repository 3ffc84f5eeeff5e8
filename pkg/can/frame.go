// Package can holds the raw CAN frame representation used by the decoders.
//
// A Frame is a value type: copy it freely, compare it with ==, use it as a
// map key. The constructors are the only way to build one and they reject
// any declared length over 8 bytes, so code holding a Frame can always read
// its payload safely.
package can

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	ecan "go.einride.tech/can"
)

// MaxDataLength is the classical CAN payload capacity in bytes.
const MaxDataLength = 8

// idMask strips SocketCAN flag bits (EFF/RTR/ERR) and anything else a
// transport may have packed into the identifier field, leaving the 11-bit
// standard identifier. Applied on every read, never on store.
const idMask = 0x7FF

// ErrBadLength is returned by the constructors when the declared length
// exceeds MaxDataLength. No Frame value exists after this error.
var ErrBadLength = errors.New("can: frame length exceeds 8 bytes")

// Frame is one fixed-size CAN message: identifier plus up to 8 payload bytes.
//
// Bytes beyond the declared length are zeroed by every constructor, so two
// frames that agree on identifier, length and payload are equal under ==
// regardless of whatever padding the transport delivered.
type Frame struct {
	id     uint32
	length uint8
	data   [MaxDataLength]byte
}

// New builds a Frame from an identifier (flag bits tolerated) and a payload
// slice of at most 8 bytes. The payload is copied and zero-padded.
func New(id uint32, payload []byte) (Frame, error) {
	if len(payload) > MaxDataLength {
		return Frame{}, errors.Wrapf(ErrBadLength, "payload is %d bytes", len(payload))
	}
	f := Frame{id: id, length: uint8(len(payload))}
	copy(f.data[:], payload)
	return f, nil
}

// NewWithLength builds a Frame from a full 8-byte buffer and a declared
// length, the shape a SocketCAN read delivers. Buffer bytes past the declared
// length are discarded.
func NewWithLength(id uint32, data [MaxDataLength]byte, length uint8) (Frame, error) {
	if length > MaxDataLength {
		return Frame{}, errors.Wrapf(ErrBadLength, "declared length is %d", length)
	}
	f := Frame{id: id, length: length, data: data}
	for i := int(length); i < MaxDataLength; i++ {
		f.data[i] = 0
	}
	return f, nil
}

// MustFrame is New for fixtures and literals known to be valid.
func MustFrame(id uint32, payload []byte) Frame {
	f, err := New(id, payload)
	if err != nil {
		panic(err)
	}
	return f
}

// FromCAN converts a go.einride.tech/can Frame. Remote frames carry no
// payload worth decoding and are rejected.
func FromCAN(f ecan.Frame) (Frame, error) {
	if f.IsRemote {
		return Frame{}, errors.New("can: remote frame has no payload")
	}
	return NewWithLength(f.ID, f.Data, f.Length)
}

// CAN converts back to a go.einride.tech/can Frame (standard data frame).
func (f Frame) CAN() ecan.Frame {
	return ecan.Frame{
		ID:     f.ID(),
		Length: f.length,
		Data:   ecan.Data(f.data),
	}
}

// ID returns the 11-bit identifier. The mask is applied on every read so the
// stored value may carry transport flag bits without affecting dispatch.
func (f Frame) ID() uint32 {
	return f.id & idMask
}

// Raw returns the stored identifier unmasked, flag bits and all.
func (f Frame) Raw() uint32 {
	return f.id
}

// Length returns the declared payload length, always <= 8.
func (f Frame) Length() uint8 {
	return f.length
}

// Payload returns exactly Length() bytes. The slice aliases a copy of the
// frame, so mutating it never corrupts the caller's value.
func (f Frame) Payload() []byte {
	return f.data[:f.length]
}

// Equal reports whether the frames agree on identifier, declared length and
// payload. Identical to == since the constructors zero the padding.
func (f Frame) Equal(o Frame) bool {
	return f == o
}

// String renders the frame in candump notation: identifier in hex, `#`, then
// the payload bytes in hex.
func (f Frame) String() string {
	return fmt.Sprintf("%03X#%X", f.ID(), f.Payload())
}

type frameJSON struct {
	ID     uint32              `json:"id"`
	Length uint8               `json:"len"`
	Data   [MaxDataLength]byte `json:"data"`
}

// MarshalJSON encodes the frame as {"id":...,"len":...,"data":[...]}.
func (f Frame) MarshalJSON() ([]byte, error) {
	return json.Marshal(frameJSON{ID: f.id, Length: f.length, Data: f.data})
}

// UnmarshalJSON re-validates the length invariant; a declared length over 8
// fails before any Frame value is observable.
func (f *Frame) UnmarshalJSON(b []byte) error {
	var raw frameJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	frame, err := NewWithLength(raw.ID, raw.Data, raw.Length)
	if err != nil {
		return err
	}
	*f = frame
	return nil
}

// TimedFrame couples a Frame with its capture or receive time.
type TimedFrame struct {
	Frame
	Timestamp time.Time
}
