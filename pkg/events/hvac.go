package events

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/openhood/jeepcan/pkg/can"
)

const cabinTempID = 0x33a

// CabinTemperature is the cabin air temperature. The raw value is offset
// 100ths of a degree: 0 means -40C.
type CabinTemperature uint16

// Raw returns the wire value.
func (t CabinTemperature) Raw() uint16 {
	return uint16(t)
}

// Celsius returns the temperature in degrees Celsius.
func (t CabinTemperature) Celsius() float64 {
	return float64(t)/100.0 - 40.0
}

// Fahrenheit returns the temperature in degrees Fahrenheit.
func (t CabinTemperature) Fahrenheit() float64 {
	return t.Celsius()*9.0/5.0 + 32.0
}

func (t CabinTemperature) isEvent() {}

func (t CabinTemperature) String() string {
	return fmt.Sprintf("CabinTemperature(%.2fC)", t.Celsius())
}

// MarshalJSON renders {"hvac":{"cabin":{"raw":...,"celsius":...,"fahrenheit":...}}}.
func (t CabinTemperature) MarshalJSON() ([]byte, error) {
	type cabin struct {
		Raw        uint16  `json:"raw"`
		Celsius    float64 `json:"celsius"`
		Fahrenheit float64 `json:"fahrenheit"`
	}
	return json.Marshal(map[string]any{
		"hvac": map[string]any{
			"cabin": cabin{Raw: t.Raw(), Celsius: t.Celsius(), Fahrenheit: t.Fahrenheit()},
		},
	})
}

// ParseCabinTemperature decodes the cabin temperature from cabinTempID,
// bytes 0..2 big-endian.
func ParseCabinTemperature(f can.Frame) (CabinTemperature, error) {
	if f.ID() != cabinTempID {
		return 0, errUnrecognizedID(f)
	}
	data, err := payloadExact(f, 8)
	if err != nil {
		return 0, err
	}
	return CabinTemperature(binary.BigEndian.Uint16(data[0:2])), nil
}
