package events

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/openhood/jeepcan/pkg/can"
)

const ignitionID = 0x122

// Ignition is the ignition switch state.
type Ignition uint8

const (
	IgnitionOff Ignition = iota
	IgnitionKill
	IgnitionAcc
	IgnitionRun
	// IgnitionStartReceived and IgnitionCranking are distinct switch states
	// on the wire, but the captured patterns for them have so far decoded as
	// Off. They are declared for when those patterns are pinned down.
	IgnitionStartReceived
	IgnitionCranking
)

func (i Ignition) isEvent() {}

func (i Ignition) String() string {
	return "Ignition(" + i.tag() + ")"
}

func (i Ignition) tag() string {
	switch i {
	case IgnitionOff:
		return "off"
	case IgnitionKill:
		return "kill"
	case IgnitionAcc:
		return "acc"
	case IgnitionRun:
		return "run"
	case IgnitionStartReceived:
		return "start_received"
	case IgnitionCranking:
		return "cranking"
	}
	return "unknown"
}

// MarshalJSON renders {"ignition":"run"}.
func (i Ignition) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"ignition": i.tag()})
}

// ParseIgnition decodes the ignition state from ignitionID. The whole 4-byte
// payload matches against captured literal patterns; several distinct
// patterns map to the same state and the odd assignments below reflect what
// was actually observed, not what the names suggest.
func ParseIgnition(f can.Frame) (Ignition, error) {
	if f.ID() != ignitionID {
		return 0, errUnrecognizedID(f)
	}
	data, err := payloadExact(f, 4)
	if err != nil {
		return 0, err
	}
	switch binary.BigEndian.Uint32(data) {
	case 0x00000000:
		return IgnitionOff, nil // off
	case 0x00010000:
		return IgnitionOff, nil // off
	case 0x03010000:
		return IgnitionKill, nil // engine kill
	case 0x03020000:
		return IgnitionKill, nil // engine kill
	case 0x05020000:
		return IgnitionAcc, nil // accessory on
	case 0x15020000:
		return IgnitionAcc, nil // accessory on
	case 0x44010000:
		return IgnitionRun, nil // remote run (on)
	case 0x44020000:
		return IgnitionOff, nil // normal run (on)
	case 0x45010000:
		return IgnitionOff, nil // start command received
	case 0x5d010000:
		return IgnitionOff, nil // starter is cranking
	}
	return 0, errInvalidData(f, fmt.Sprintf(
		"unrecognized ignition value %#08x", binary.BigEndian.Uint32(data)))
}
