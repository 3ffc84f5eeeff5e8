package events

import (
	"encoding/json"
	"fmt"

	"github.com/openhood/jeepcan/pkg/can"
)

const (
	roadFeedbackFrontID = 0x24e
	roadFeedbackRearID  = 0x252
)

// Axle tags which axle a force reading came from.
type Axle uint8

const (
	AxleFront Axle = iota + 1
	AxleRear
)

func (a Axle) String() string {
	switch a {
	case AxleFront:
		return "front"
	case AxleRear:
		return "rear"
	}
	return fmt.Sprintf("Axle(%d)", uint8(a))
}

// RoadFeedback is a raw reading from the axle force sensors. The payload has
// not been decoded into physical units yet and is kept opaque.
type RoadFeedback struct {
	axle Axle
	raw  [8]byte
}

// Axle returns which axle produced the reading.
func (r RoadFeedback) Axle() Axle {
	return r.axle
}

// Raw returns the untouched payload.
func (r RoadFeedback) Raw() [8]byte {
	return r.raw
}

func (r RoadFeedback) isEvent() {}

func (r RoadFeedback) String() string {
	return fmt.Sprintf("RoadFeedback(%s, %#x)", r.axle, r.raw)
}

// MarshalJSON renders {"force":{"road_feedback":{"axle":"front","raw":[...]}}}.
func (r RoadFeedback) MarshalJSON() ([]byte, error) {
	type feedback struct {
		Axle string  `json:"axle"`
		Raw  [8]byte `json:"raw"`
	}
	return json.Marshal(map[string]any{
		"force": map[string]any{
			"road_feedback": feedback{Axle: r.axle.String(), Raw: r.raw},
		},
	})
}

// ParseRoadFeedback decodes a force sensor reading from either axle
// identifier.
func ParseRoadFeedback(f can.Frame) (RoadFeedback, error) {
	var axle Axle
	switch f.ID() {
	case roadFeedbackFrontID:
		axle = AxleFront
	case roadFeedbackRearID:
		axle = AxleRear
	default:
		return RoadFeedback{}, errUnrecognizedID(f)
	}
	data, err := payloadExact(f, 8)
	if err != nil {
		return RoadFeedback{}, err
	}
	return RoadFeedback{axle: axle, raw: [8]byte(data)}, nil
}
