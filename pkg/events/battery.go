package events

import (
	"encoding/json"
	"fmt"

	"github.com/openhood/jeepcan/pkg/can"
)

const auxBatteryID = 0x2c2

// AuxBattery is a reading from the 12v starter battery under the hood that
// powers the "aux" systems. The first two bytes are unidentified (charge?
// load?); byte 2 carries the voltage.
type AuxBattery [4]byte

// Raw returns the full 4-byte payload.
func (b AuxBattery) Raw() [4]byte {
	return [4]byte(b)
}

// RawVolts returns the raw voltage byte.
func (b AuxBattery) RawVolts() uint8 {
	return b[2]
}

// Volts returns the aux battery voltage.
func (b AuxBattery) Volts() float64 {
	return float64(b[2]) / 100.0
}

func (b AuxBattery) isEvent() {}

func (b AuxBattery) String() string {
	return fmt.Sprintf("AuxBattery(%.2fV)", b.Volts())
}

// MarshalJSON renders {"battery":{"aux":{"raw":[...],"volts":...}}}.
func (b AuxBattery) MarshalJSON() ([]byte, error) {
	type aux struct {
		Raw   [4]byte `json:"raw"`
		Volts float64 `json:"volts"`
	}
	return json.Marshal(map[string]any{
		"battery": map[string]any{"aux": aux{Raw: b.Raw(), Volts: b.Volts()}},
	})
}

// ParseAuxBattery decodes an aux battery reading from auxBatteryID.
func ParseAuxBattery(f can.Frame) (AuxBattery, error) {
	if f.ID() != auxBatteryID {
		return AuxBattery{}, errUnrecognizedID(f)
	}
	data, err := payloadExact(f, 4)
	if err != nil {
		return AuxBattery{}, err
	}
	return AuxBattery(data), nil
}
