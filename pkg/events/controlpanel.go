package events

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openhood/jeepcan/pkg/can"
)

const (
	buttonsID = 0x2d3
	warmersID = 0x2d4
	knobsID   = 0x273
)

// ControlPanel is the sub-category for events from the panel below the head
// unit: Buttons, Warmers or a Knob turn.
type ControlPanel interface {
	Event
	isControlPanel()
}

// ParseControlPanel decodes a control panel event from any of its three
// source identifiers.
func ParseControlPanel(f can.Frame) (ControlPanel, error) {
	switch f.ID() {
	case buttonsID:
		return ParseButtons(f)
	case warmersID:
		return ParseWarmers(f)
	case knobsID:
		return ParseKnobs(f)
	}
	return nil, errUnrecognizedID(f)
}

// Buttons are the control panel button bitflags from buttonsID. More than one
// can be set per frame. Note every constant shares the 0x07000000_00000000
// marker bits that accompany any button press on this source.
type Buttons uint64

const (
	ButtonTractionControl Buttons = 0x07000000_00000001 // traction control on/off
	ButtonRadioPower      Buttons = 0x07000000_00000040 // radio on/off
	ButtonAC              Buttons = 0x07000000_00000100 // A/C system on/off
	ButtonRecirculation   Buttons = 0x07000000_00000200 // air recirculation on/off
	ButtonVentMode        Buttons = 0x07000000_00000800 // HVAC vent mode
	ButtonHVACPower       Buttons = 0x07000000_00010000 // HVAC system on/off
	ButtonAuto            Buttons = 0x07000000_00020000 // automatic HVAC control
	ButtonDriverTempUp    Buttons = 0x07000000_00040000 // driver temp +
	ButtonDriverTempDown  Buttons = 0x07000000_00080000 // driver temp -
	ButtonPassTempUp      Buttons = 0x07000000_00100000 // passenger temp +
	ButtonPassTempDown    Buttons = 0x07000000_00200000 // passenger temp -
	ButtonRearDefroster   Buttons = 0x07000000_00400000 // rear defroster
	ButtonFrontDefroster  Buttons = 0x07000000_00800000 // front defroster
	ButtonMute            Buttons = 0x07000100_00000000 // uConnect mute on/off
	ButtonScreen          Buttons = 0x07002000_00000000 // uConnect screen on/off
	ButtonESSMaxRegen     Buttons = 0x07240000_00000000 // ESS system on/off
)

// buttonsMask is the union of every assigned bit; anything outside it is an
// unrecognized button.
const buttonsMask = ButtonTractionControl | ButtonRadioPower | ButtonAC |
	ButtonRecirculation | ButtonVentMode | ButtonHVACPower | ButtonAuto |
	ButtonDriverTempUp | ButtonDriverTempDown | ButtonPassTempUp |
	ButtonPassTempDown | ButtonRearDefroster | ButtonFrontDefroster |
	ButtonMute | ButtonScreen | ButtonESSMaxRegen

var buttonNames = []struct {
	flag Buttons
	name string
}{
	{ButtonTractionControl, "traction_control"},
	{ButtonRadioPower, "radio_power"},
	{ButtonAC, "ac"},
	{ButtonRecirculation, "recirculation"},
	{ButtonVentMode, "vent_mode"},
	{ButtonHVACPower, "hvac_power"},
	{ButtonAuto, "auto"},
	{ButtonDriverTempUp, "driver_temp_up"},
	{ButtonDriverTempDown, "driver_temp_down"},
	{ButtonPassTempUp, "passenger_temp_up"},
	{ButtonPassTempDown, "passenger_temp_down"},
	{ButtonRearDefroster, "rear_defroster"},
	{ButtonFrontDefroster, "front_defroster"},
	{ButtonMute, "mute"},
	{ButtonScreen, "screen"},
	{ButtonESSMaxRegen, "ess_max_regen"},
}

// Has reports whether every bit of flag is set.
func (b Buttons) Has(flag Buttons) bool {
	return b&flag == flag
}

func (b Buttons) names() []string {
	var out []string
	for _, bn := range buttonNames {
		if b.Has(bn.flag) {
			out = append(out, bn.name)
		}
	}
	return out
}

func (b Buttons) isEvent()        {}
func (b Buttons) isControlPanel() {}

func (b Buttons) String() string {
	return "Buttons(" + strings.Join(b.names(), "|") + ")"
}

// MarshalJSON renders {"control_panel":{"buttons":["traction_control","mute"]}}.
func (b Buttons) MarshalJSON() ([]byte, error) {
	names := b.names()
	if names == nil {
		names = []string{}
	}
	return json.Marshal(map[string]any{
		"control_panel": map[string]any{"buttons": names},
	})
}

// ParseButtons decodes control panel button flags from buttonsID. The whole
// payload is one big-endian bit set; a set bit outside the assigned flags is
// invalid data.
func ParseButtons(f can.Frame) (Buttons, error) {
	if f.ID() != buttonsID {
		return 0, errUnrecognizedID(f)
	}
	data, err := payloadExact(f, 8)
	if err != nil {
		return 0, err
	}
	raw := Buttons(binary.BigEndian.Uint64(data))
	if raw&^buttonsMask != 0 {
		return 0, errInvalidData(f, fmt.Sprintf(
			"a bit was set that corresponds to no button flag: %#016x", uint64(raw)))
	}
	return raw, nil
}

// Warmers are the seat and wheel heater button bitflags from warmersID,
// carried in bytes 1..3 as a big-endian u16.
type Warmers uint16

const (
	WarmerDriverSeat    Warmers = 0x0001 // driver seat heater
	WarmerPassengerSeat Warmers = 0x0010 // passenger seat heater
	WarmerSteeringWheel Warmers = 0x4000 // steering wheel heater
)

const warmersMask = WarmerDriverSeat | WarmerPassengerSeat | WarmerSteeringWheel

var warmerNames = []struct {
	flag Warmers
	name string
}{
	{WarmerDriverSeat, "driver_seat"},
	{WarmerPassengerSeat, "passenger_seat"},
	{WarmerSteeringWheel, "steering_wheel"},
}

// Has reports whether every bit of flag is set.
func (w Warmers) Has(flag Warmers) bool {
	return w&flag == flag
}

func (w Warmers) names() []string {
	var out []string
	for _, wn := range warmerNames {
		if w.Has(wn.flag) {
			out = append(out, wn.name)
		}
	}
	return out
}

func (w Warmers) isEvent()        {}
func (w Warmers) isControlPanel() {}

func (w Warmers) String() string {
	return "Warmers(" + strings.Join(w.names(), "|") + ")"
}

// MarshalJSON renders {"control_panel":{"warmers":["driver_seat"]}}.
func (w Warmers) MarshalJSON() ([]byte, error) {
	names := w.names()
	if names == nil {
		names = []string{}
	}
	return json.Marshal(map[string]any{
		"control_panel": map[string]any{"warmers": names},
	})
}

// ParseWarmers decodes warmer button flags from warmersID.
func ParseWarmers(f can.Frame) (Warmers, error) {
	if f.ID() != warmersID {
		return 0, errUnrecognizedID(f)
	}
	data, err := payloadExact(f, 8)
	if err != nil {
		return 0, err
	}
	raw := Warmers(binary.BigEndian.Uint16(data[1:3]))
	if raw&^warmersMask != 0 {
		return 0, errInvalidData(f, fmt.Sprintf(
			"a bit was set that corresponds to no warmer flag: %#04x", uint16(raw)))
	}
	return raw, nil
}

// Knob is a control panel knob turn from knobsID.
type Knob uint8

const (
	KnobFanDown Knob = iota + 1
	KnobFanUp
)

func (k Knob) isEvent()        {}
func (k Knob) isControlPanel() {}

func (k Knob) String() string {
	return "Knob(" + k.tag() + ")"
}

func (k Knob) tag() string {
	switch k {
	case KnobFanDown:
		return "fan_down"
	case KnobFanUp:
		return "fan_up"
	}
	return "unknown"
}

// MarshalJSON renders {"control_panel":{"knob":"fan_up"}}.
func (k Knob) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"control_panel": map[string]string{"knob": k.tag()},
	})
}

// ParseKnobs decodes a knob turn from knobsID. The whole payload matches
// against literal patterns; two distinct patterns have been captured for fan
// up and both are kept until the second one is identified.
func ParseKnobs(f can.Frame) (Knob, error) {
	if f.ID() != knobsID {
		return 0, errUnrecognizedID(f)
	}
	data, err := payloadExact(f, 8)
	if err != nil {
		return 0, err
	}
	switch binary.BigEndian.Uint64(data) {
	case 0x00000A0000000000:
		return KnobFanDown, nil
	case 0x0000050000000000:
		return KnobFanUp, nil
	case 0x0000090000000000:
		return KnobFanUp, nil
	}
	return 0, errInvalidData(f, fmt.Sprintf(
		"unrecognized knob pattern %#016x", binary.BigEndian.Uint64(data)))
}
