package events

import (
	"encoding/binary"
	"encoding/json"
	"strings"

	"github.com/openhood/jeepcan/pkg/can"
)

const steeringWheelID = 0x318

// SteeringWheelButtons are the steering wheel button bitflags (cruise
// control excepted), carried in bytes 3 and 4 of a steeringWheelID frame as
// a big-endian u16. Combinations are real input: more than one button can be
// held at once.
//
// All sixteen bits are assigned, so every bit pattern decodes; the mystery
// bits cover custom or optional wheels.
type SteeringWheelButtons uint16

const (
	// front buttons
	SWDpadLeft SteeringWheelButtons = 1 << iota
	SWMysteryButton0
	SWDpadDown
	SWMysteryButton1
	SWDpadUp
	SWMysteryButton2
	SWDpadRight
	SWMysteryButton3

	// rear buttons
	SWBackInput
	SWMysteryButton4
	SWBackVolUp
	SWBackVolDown
	SWBackTrackSkip
	SWBackTrackRewind
	SWBackSeek
	SWMysteryButton5
)

// SWStockButtons masks the buttons present on a stock Wrangler wheel.
const SWStockButtons SteeringWheelButtons = 0b01111101_01010101

var swButtonNames = []struct {
	flag SteeringWheelButtons
	name string
}{
	{SWDpadLeft, "dpad_left"},
	{SWMysteryButton0, "mystery_btn_0"},
	{SWDpadDown, "dpad_down"},
	{SWMysteryButton1, "mystery_btn_1"},
	{SWDpadUp, "dpad_up"},
	{SWMysteryButton2, "mystery_btn_2"},
	{SWDpadRight, "dpad_right"},
	{SWMysteryButton3, "mystery_btn_3"},
	{SWBackInput, "back_input"},
	{SWMysteryButton4, "mystery_btn_4"},
	{SWBackVolUp, "back_vol_up"},
	{SWBackVolDown, "back_vol_down"},
	{SWBackTrackSkip, "back_track_skip"},
	{SWBackTrackRewind, "back_track_rewind"},
	{SWBackSeek, "back_seek"},
	{SWMysteryButton5, "mystery_btn_5"},
}

// Has reports whether every bit of flag is set.
func (b SteeringWheelButtons) Has(flag SteeringWheelButtons) bool {
	return b&flag == flag
}

// Stock masks out the mystery bits, keeping only buttons present on a stock
// wheel.
func (b SteeringWheelButtons) Stock() SteeringWheelButtons {
	return b & SWStockButtons
}

func (b SteeringWheelButtons) names() []string {
	var out []string
	for _, bn := range swButtonNames {
		if b.Has(bn.flag) {
			out = append(out, bn.name)
		}
	}
	return out
}

func (b SteeringWheelButtons) isEvent() {}

func (b SteeringWheelButtons) String() string {
	return "SteeringWheelButtons(" + strings.Join(b.names(), "|") + ")"
}

// MarshalJSON renders {"steering_wheel":{"raw":...,"pressed":[...]}}.
func (b SteeringWheelButtons) MarshalJSON() ([]byte, error) {
	pressed := b.names()
	if pressed == nil {
		pressed = []string{}
	}
	return json.Marshal(map[string]any{
		"steering_wheel": map[string]any{"raw": uint16(b), "pressed": pressed},
	})
}

// ParseSteeringWheel decodes the steering wheel buttons from
// steeringWheelID. Every bit has a flag, so bad input cannot make this fail;
// only a wrong identifier or payload length can.
func ParseSteeringWheel(f can.Frame) (SteeringWheelButtons, error) {
	if f.ID() != steeringWheelID {
		return 0, errUnrecognizedID(f)
	}
	data, err := payloadExact(f, 8)
	if err != nil {
		return 0, err
	}
	return SteeringWheelButtons(binary.BigEndian.Uint16(data[3:5])), nil
}
