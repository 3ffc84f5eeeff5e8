package events

import (
	"encoding/json"
	"fmt"

	"github.com/openhood/jeepcan/pkg/can"
)

// ErrorKind classifies why a frame failed to decode.
type ErrorKind uint8

const (
	// UnrecognizedID means the frame's identifier maps to no decoder. On a
	// real bus this is constant background noise, not a fault.
	UnrecognizedID ErrorKind = iota + 1
	// UnexpectedLength means the identifier was known but the payload length
	// did not match the fixed length for that identifier.
	UnexpectedLength
	// InvalidData means shape checks passed but the payload held a value
	// outside the decode table.
	InvalidData
)

func (k ErrorKind) String() string {
	switch k {
	case UnrecognizedID:
		return "unrecognized_id"
	case UnexpectedLength:
		return "unexpected_length"
	case InvalidData:
		return "invalid_data"
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// ParseError is the structured failure shared by every decoder. It owns the
// offending frame by value so a failed decode never loses its input; Frame
// recovers it losslessly for logging or a retry with another decoder.
//
// ParseErrors are terminal values, never wrappers: once a Frame exists there
// is no lower-level cause left to chain.
type ParseError struct {
	Kind ErrorKind
	// Expected is the required payload length, set for UnexpectedLength.
	Expected int
	// Detail says what was wrong with the data, set for InvalidData.
	Detail string

	frame can.Frame
}

func errUnrecognizedID(f can.Frame) error {
	return &ParseError{Kind: UnrecognizedID, frame: f}
}

func errUnexpectedLength(f can.Frame, expected int) error {
	return &ParseError{Kind: UnexpectedLength, Expected: expected, frame: f}
}

func errInvalidData(f can.Frame, detail string) error {
	return &ParseError{Kind: InvalidData, Detail: detail, frame: f}
}

// Frame returns the frame that failed to decode, unchanged.
func (e *ParseError) Frame() can.Frame {
	return e.frame
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case UnrecognizedID:
		return fmt.Sprintf("frame id 0x%03X not recognized (frame: %s)", e.frame.ID(), e.frame)
	case UnexpectedLength:
		return fmt.Sprintf("frame length %d unexpected from id 0x%03X (expected %d)",
			e.frame.Length(), e.frame.ID(), e.Expected)
	case InvalidData:
		return fmt.Sprintf("frame %s failed validation: %s", e.frame, e.Detail)
	}
	return fmt.Sprintf("frame %s failed to decode", e.frame)
}

type parseErrorJSON struct {
	Kind     string    `json:"kind"`
	Frame    can.Frame `json:"frame"`
	Expected int       `json:"expected,omitempty"`
	Detail   string    `json:"detail,omitempty"`
}

// MarshalJSON renders the error as a tagged self-describing object.
func (e *ParseError) MarshalJSON() ([]byte, error) {
	return json.Marshal(parseErrorJSON{
		Kind:     e.Kind.String(),
		Frame:    e.frame,
		Expected: e.Expected,
		Detail:   e.Detail,
	})
}

// payloadExact is the shared shape check of the decoder protocol: every
// identifier has one fixed payload length, checked after the identifier and
// before any byte is interpreted.
func payloadExact(f can.Frame, n int) ([]byte, error) {
	data := f.Payload()
	if len(data) != n {
		return nil, errUnexpectedLength(f, n)
	}
	return data, nil
}
