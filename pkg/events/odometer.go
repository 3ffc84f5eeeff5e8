package events

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/openhood/jeepcan/pkg/can"
)

const odometerID = 0x3d2

// Odometer is the total distance traveled, stored as 100ths of a kilometer.
type Odometer uint32

// Raw returns the odometer count in 100ths of a kilometer.
func (o Odometer) Raw() uint32 {
	return uint32(o)
}

// Kilometers returns the distance in kilometers, down to the 100th.
func (o Odometer) Kilometers() float64 {
	return float64(o) / 100.0
}

// Miles returns the distance in miles.
func (o Odometer) Miles() float64 {
	return o.Kilometers() * 0.621371
}

func (o Odometer) isEvent() {}

func (o Odometer) String() string {
	return fmt.Sprintf("Odometer(%.2fkm)", o.Kilometers())
}

// MarshalJSON renders {"odometer":{"raw":...,"km":...,"miles":...}}.
func (o Odometer) MarshalJSON() ([]byte, error) {
	type odo struct {
		Raw   uint32  `json:"raw"`
		KM    float64 `json:"km"`
		Miles float64 `json:"miles"`
	}
	return json.Marshal(map[string]any{
		"odometer": odo{Raw: o.Raw(), KM: o.Kilometers(), Miles: o.Miles()},
	})
}

// ParseOdometer decodes the odometer from odometerID, the whole 4-byte
// payload as a big-endian u32.
func ParseOdometer(f can.Frame) (Odometer, error) {
	if f.ID() != odometerID {
		return 0, errUnrecognizedID(f)
	}
	data, err := payloadExact(f, 4)
	if err != nil {
		return 0, err
	}
	return Odometer(binary.BigEndian.Uint32(data)), nil
}
