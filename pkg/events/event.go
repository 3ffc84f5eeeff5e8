// Package events decodes raw CAN frames from the Jeep JL body network into a
// closed set of typed events: door states, ignition, remote control actions,
// speed, cabin temperature and so on.
//
// Parse is the entry point. It routes a frame by identifier to the matching
// decoder and returns one event or, for the few identifiers that carry
// several readings per frame, a batch:
//
//	frame := can.MustFrame(0x1c0, []byte{0x21, 0, 0, 0, 0, 0})
//	result, err := events.Parse(frame)
//	if err != nil {
//		// err is a *ParseError carrying the frame back
//	}
//	it := result.Iter()
//	for ev, ok := it.Next(); ok; ev, ok = it.Next() {
//		if doors, ok := ev.(events.Doors); ok {
//			fmt.Println(doors)
//		}
//	}
//
// Callers interested in a single category can skip the dispatcher and use the
// per-category decoder directly, e.g. ParseRemote. Every decoder is a pure
// function of its frame; the package holds no state and is safe to call from
// any number of goroutines.
//
// Decoding is byte-exact: the identifiers, offsets, bit masks and literal
// constants in this package are a compatibility contract with the vehicle,
// not an implementation detail.
package events

import (
	"fmt"
	"strings"

	"github.com/openhood/jeepcan/pkg/can"
)

// Event is one decoded, semantically meaningful interpretation of a frame's
// payload. The set of implementations is closed: every Event comes out of a
// decoder in this package.
type Event interface {
	fmt.Stringer
	isEvent()
}

// bodyStateID carries doors, locks, parking lights and the dimmer in a
// single frame. It is the only identifier that fans out into multiple event
// categories.
const bodyStateID = 0x2fa

// Parse decodes a frame into one or many events.
//
// Most identifiers map to exactly one decoder. 0x2d3, 0x2d4 and 0x273 route
// through the control panel sub-dispatcher; 0x322 always yields two engine
// readings; bodyStateID fans out into up to four events. Identifiers outside
// the table fail with UnrecognizedID, which on a live bus is expected noise
// rather than a fault.
func Parse(f can.Frame) (OneOrMany[Event], error) {
	switch f.ID() {
	case auxBatteryID:
		return oneEvent(ParseAuxBattery(f))
	case remoteID:
		return oneEvent(ParseRemote(f))
	case ignitionID:
		return oneEvent(ParseIgnition(f))
	case steeringWheelID:
		return oneEvent(ParseSteeringWheel(f))
	case buttonsID, warmersID, knobsID:
		return oneEvent(ParseControlPanel(f))
	case bodyStateID:
		return parseBodyState(f)
	case roadFeedbackFrontID, roadFeedbackRearID:
		return oneEvent(ParseRoadFeedback(f))
	case cameraID:
		return oneEvent(ParseCamera(f))
	case engineID, gpsSpeedID:
		engines, err := ParseEngine(f)
		if err != nil {
			return OneOrMany[Event]{}, err
		}
		return mapOneOrMany(engines, func(e Engine) Event { return e }), nil
	case cabinTempID:
		return oneEvent(ParseCabinTemperature(f))
	case dateTimeID:
		return oneEvent(ParseDateTime(f))
	case odometerID:
		return oneEvent(ParseOdometer(f))
	case busWakeID:
		return oneEvent(ParseWake(f))
	}
	return OneOrMany[Event]{}, errUnrecognizedID(f)
}

// oneEvent wraps a single-decoder result into the top-level container.
func oneEvent[T Event](ev T, err error) (OneOrMany[Event], error) {
	if err != nil {
		return OneOrMany[Event]{}, err
	}
	return One[Event](ev), nil
}

// parseBodyState fans bodyStateID out into doors, parking lights, dimmer and
// locks. The doors and locks bitflag decodes are total; the other two are
// attempted independently and any failure fails the whole frame with one
// aggregate error. No partial success is surfaced.
func parseBodyState(f can.Frame) (OneOrMany[Event], error) {
	data, err := payloadExact(f, 8)
	if err != nil {
		return OneOrMany[Event]{}, err
	}

	evs := make([]Event, 0, 4)
	var details []string

	// every bit pattern is a valid door combination
	evs = append(evs, DoorsFromBits(data[0]))

	if pl, err := parseParkingLights(f); err != nil {
		details = append(details, err.Error())
	} else {
		evs = append(evs, pl)
	}

	if dim, err := parseDimmer(f); err != nil {
		details = append(details, err.Error())
	} else {
		evs = append(evs, dim)
	}

	// every bit pattern is a valid lock combination
	evs = append(evs, LocksFromBits(data[3]))

	if len(details) > 0 {
		return OneOrMany[Event]{}, errInvalidData(f,
			"error(s) decoding body state frame: "+strings.Join(details, "; "))
	}
	return Many(evs), nil
}

// Category names the top-level category an event belongs to, matching the
// outer tag of its JSON form. Sinks use it to group events by topic.
func Category(e Event) string {
	switch e.(type) {
	case AuxBattery:
		return "battery"
	case Remote:
		return "remote"
	case Ignition:
		return "ignition"
	case SteeringWheelButtons:
		return "steering_wheel"
	case Buttons, Warmers, Knob:
		return "control_panel"
	case ParkingLights, Dimmer, Hazards:
		return "lights"
	case Doors:
		return "doors"
	case Locks:
		return "locks"
	case RoadFeedback:
		return "force"
	case Camera:
		return "camera"
	case RPM, ApproxMPH, GPSMPH:
		return "engine"
	case CabinTemperature:
		return "hvac"
	case DateTime:
		return "datetime"
	case Odometer:
		return "odometer"
	case Wake:
		return "bus"
	}
	return "unknown"
}
