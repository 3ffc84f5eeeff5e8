package events

import (
	"encoding/json"
	"fmt"

	"github.com/openhood/jeepcan/pkg/can"
)

const busWakeID = 0x401

// Wake is a bus wake event, usually the first thing sent on the bus, naming
// what woke it.
type Wake uint8

const (
	WakePlug Wake = iota + 1
	WakeUnplug
	WakeHoodOpen
	WakeHoodClose
)

func (w Wake) isEvent() {}

func (w Wake) String() string {
	switch w {
	case WakePlug:
		return "Wake(Plug)"
	case WakeUnplug:
		return "Wake(Unplug)"
	case WakeHoodOpen:
		return "Wake(HoodOpen)"
	case WakeHoodClose:
		return "Wake(HoodClose)"
	}
	return fmt.Sprintf("Wake(%d)", uint8(w))
}

func (w Wake) tag() string {
	switch w {
	case WakePlug:
		return "plug"
	case WakeUnplug:
		return "unplug"
	case WakeHoodOpen:
		return "hood_open"
	case WakeHoodClose:
		return "hood_close"
	}
	return "unknown"
}

// MarshalJSON renders {"bus":{"wake":"hood_open"}}.
func (w Wake) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"bus": map[string]string{"wake": w.tag()}})
}

// ParseWake decodes a bus wake event from busWakeID. Bytes 4 and 5 carry the
// wake cause.
func ParseWake(f can.Frame) (Wake, error) {
	if f.ID() != busWakeID {
		return 0, errUnrecognizedID(f)
	}
	data, err := payloadExact(f, 8)
	if err != nil {
		return 0, err
	}
	switch [2]byte{data[4], data[5]} {
	case [2]byte{0x01, 0x03}:
		return WakePlug, nil
	case [2]byte{0x01, 0x04}:
		return WakeUnplug, nil
	case [2]byte{0x0c, 0x06}:
		return WakeHoodOpen, nil
	case [2]byte{0x0c, 0x07}:
		return WakeHoodClose, nil
	}
	return 0, errInvalidData(f, fmt.Sprintf("unrecognized wake bytes [%#02x %#02x]", data[4], data[5]))
}
