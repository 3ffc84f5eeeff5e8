package events

import (
	"encoding/json"
	"fmt"

	"github.com/openhood/jeepcan/pkg/can"
)

// Lights is the sub-category for exterior and interior lighting events.
type Lights interface {
	Event
	isLights()
}

// ParkingLights is the parking light state from the body state frame, byte 1.
type ParkingLights uint8

// On reports whether the parking lights are on.
func (p ParkingLights) On() bool {
	return p == 1
}

// Off reports whether the parking lights are off.
func (p ParkingLights) Off() bool {
	return !p.On()
}

func (p ParkingLights) isEvent()  {}
func (p ParkingLights) isLights() {}

func (p ParkingLights) String() string {
	if p.On() {
		return "ParkingLights(on)"
	}
	return "ParkingLights(off)"
}

// MarshalJSON renders {"lights":{"parking":true}}.
func (p ParkingLights) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"lights": map[string]bool{"parking": p.On()},
	})
}

// parseParkingLights reads byte 1 of a body state frame. Anything other than
// 0 or 1 is invalid data.
func parseParkingLights(f can.Frame) (ParkingLights, error) {
	if f.ID() != bodyStateID {
		return 0, errUnrecognizedID(f)
	}
	data, err := payloadExact(f, 8)
	if err != nil {
		return 0, err
	}
	if data[1] > 1 {
		return 0, errInvalidData(f, fmt.Sprintf(
			"parking lights value (%d) at index 1 was neither 0 nor 1", data[1]))
	}
	return ParkingLights(data[1]), nil
}

// Dimmer is the interior dimmer level from the body state frame, byte 2.
// The full byte range is a valid level.
type Dimmer uint8

// Percent returns the dimmer level as a 0..1 fraction.
func (d Dimmer) Percent() float64 {
	return float64(d) / 255.0
}

func (d Dimmer) isEvent()  {}
func (d Dimmer) isLights() {}

func (d Dimmer) String() string {
	return fmt.Sprintf("Dimmer(%d)", uint8(d))
}

// MarshalJSON renders {"lights":{"dimmer":128}}.
func (d Dimmer) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"lights": map[string]uint8{"dimmer": uint8(d)},
	})
}

// parseDimmer reads byte 2 of a body state frame. Total over the byte range;
// the error return only reflects shape checks.
func parseDimmer(f can.Frame) (Dimmer, error) {
	if f.ID() != bodyStateID {
		return 0, errUnrecognizedID(f)
	}
	data, err := payloadExact(f, 8)
	if err != nil {
		return 0, err
	}
	return Dimmer(data[2]), nil
}

// Hazards marks the hazard lights being toggled. No identifier is confirmed
// to produce it yet; it is declared so callers can match the category
// completely once the source frame is pinned down.
type Hazards struct{}

func (Hazards) isEvent()  {}
func (Hazards) isLights() {}

func (Hazards) String() string {
	return "Hazards"
}

// MarshalJSON renders {"lights":"hazards"}.
func (Hazards) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"lights": "hazards"})
}
