package events

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/openhood/jeepcan/pkg/can"
)

const (
	engineID   = 0x322
	gpsSpeedID = 0x340
)

// Engine is the sub-category for engine and speed readings.
type Engine interface {
	Event
	isEngine()
}

// engineOff is the RPM sentinel meaning the engine is not running.
const engineOff = 0xffff

// RPM is the engine speed. The raw value 0xffff means the engine is off.
type RPM uint16

// Raw returns the raw counter value, sentinel included.
func (r RPM) Raw() uint16 {
	return uint16(r)
}

// EngineOn reports whether the engine is running.
func (r RPM) EngineOn() bool {
	return r != engineOff
}

// EngineOff reports whether the engine is off.
func (r RPM) EngineOff() bool {
	return !r.EngineOn()
}

// Get returns the revolutions per minute, or false when the engine is off.
func (r RPM) Get() (uint16, bool) {
	if r.EngineOff() {
		return 0, false
	}
	return uint16(r), true
}

func (r RPM) isEvent()  {}
func (r RPM) isEngine() {}

func (r RPM) String() string {
	if rpm, ok := r.Get(); ok {
		return fmt.Sprintf("RPM(%d)", rpm)
	}
	return "RPM(off)"
}

// MarshalJSON renders {"engine":{"rpm":10000}}, with null when the engine is
// off.
func (r RPM) MarshalJSON() ([]byte, error) {
	var rpm any
	if v, ok := r.Get(); ok {
		rpm = v
	}
	return json.Marshal(map[string]any{"engine": map[string]any{"rpm": rpm}})
}

// MPH is a speed reading stored at 200x scale, which keeps the metric
// conversion lossless.
type MPH uint16

// Raw returns the 200x-scaled value.
func (m MPH) Raw() uint16 {
	return uint16(m)
}

// Float returns miles per hour.
func (m MPH) Float() float64 {
	return float64(m) / 200.0
}

// KPH returns kilometers per hour.
func (m MPH) KPH() float64 {
	return m.Float() * 1.60934
}

// MPHFromByte scales a whole-mph byte up to the internal representation.
func MPHFromByte(b uint8) MPH {
	return MPH(uint16(b) * 200)
}

// ApproxMPH is the wheel-derived speed from engineID, not GPS corrected.
type ApproxMPH struct {
	MPH
}

func (a ApproxMPH) isEvent()  {}
func (a ApproxMPH) isEngine() {}

func (a ApproxMPH) String() string {
	return fmt.Sprintf("ApproxMPH(%.2f)", a.Float())
}

// MarshalJSON renders {"engine":{"approx_mph":0.25,"raw":50}}.
func (a ApproxMPH) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"engine": map[string]any{"approx_mph": a.Float(), "raw": a.Raw()},
	})
}

// GPSMPH is the GPS-corrected speed from gpsSpeedID.
type GPSMPH struct {
	MPH
}

func (g GPSMPH) isEvent()  {}
func (g GPSMPH) isEngine() {}

func (g GPSMPH) String() string {
	return fmt.Sprintf("MPH(%.2f)", g.Float())
}

// MarshalJSON renders {"engine":{"mph":42,"raw":8400}}.
func (g GPSMPH) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"engine": map[string]any{"mph": g.Float(), "raw": g.Raw()},
	})
}

// ParseEngine decodes engine readings. gpsSpeedID carries one GPS-corrected
// speed byte; engineID always carries two simultaneous readings, RPM and
// approximate speed, and so always yields a batch.
func ParseEngine(f can.Frame) (OneOrMany[Engine], error) {
	switch f.ID() {
	case gpsSpeedID:
		data, err := payloadExact(f, 8)
		if err != nil {
			return OneOrMany[Engine]{}, err
		}
		return One[Engine](GPSMPH{MPH: MPHFromByte(data[7])}), nil
	case engineID:
		data, err := payloadExact(f, 8)
		if err != nil {
			return OneOrMany[Engine]{}, err
		}
		// bytes 4..8 are unidentified
		return Many([]Engine{
			RPM(binary.BigEndian.Uint16(data[0:2])),
			ApproxMPH{MPH: MPH(binary.BigEndian.Uint16(data[2:4]))},
		}), nil
	}
	return OneOrMany[Engine]{}, errUnrecognizedID(f)
}
