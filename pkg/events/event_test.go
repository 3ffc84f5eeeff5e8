package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhood/jeepcan/pkg/can"
)

// parseOne runs the dispatcher and requires a single-event result.
func parseOne(t *testing.T, id uint32, payload []byte) Event {
	t.Helper()
	result, err := Parse(can.MustFrame(id, payload))
	require.NoError(t, err)
	require.False(t, result.IsMany())
	ev, ok := result.Iter().Next()
	require.True(t, ok)
	return ev
}

func TestParseDispatchesEveryKnownID(t *testing.T) {
	tests := []struct {
		name    string
		id      uint32
		payload []byte
		want    Event
	}{
		{"aux battery", 0x2c2, []byte{0x00, 0x00, 0x5c, 0x00}, AuxBattery{0x00, 0x00, 0x5c, 0x00}},
		{"remote lock", 0x1c0, []byte{0x21, 0, 0, 0, 0, 0}, Remote{Action: RemoteLock, Source: SourceKeyFob}},
		{"ignition run", 0x122, []byte{0x44, 0x01, 0x00, 0x00}, IgnitionRun},
		{"steering wheel", 0x318, []byte{0, 0, 0, 0x01, 0x04, 0, 0, 0}, SWBackInput | SWDpadDown},
		{"buttons", 0x2d3, []byte{0x07, 0, 0, 0, 0, 0, 0, 0x01}, ButtonTractionControl},
		{"warmers", 0x2d4, []byte{0, 0x40, 0x11, 0, 0, 0, 0, 0}, WarmerDriverSeat | WarmerPassengerSeat | WarmerSteeringWheel},
		{"knob fan down", 0x273, []byte{0, 0, 0x0a, 0, 0, 0, 0, 0}, KnobFanDown},
		{"camera reverse", 0x302, []byte{0x02, 0, 0, 0, 0, 0, 0, 0}, CameraReverse},
		{"cabin temp", 0x33a, []byte{0x18, 0x9c, 0, 0, 0, 0, 0, 0}, CabinTemperature(0x189c)},
		{"odometer", 0x3d2, []byte{0x00, 0x10, 0x00, 0x00}, Odometer(0x100000)},
		{"bus wake", 0x401, []byte{0, 0, 0, 0, 0x0c, 0x06, 0, 0}, WakeHoodOpen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseOne(t, tt.id, tt.payload))
		})
	}
}

func TestParseUnrecognizedIDCarriesFrameBack(t *testing.T) {
	frame := can.MustFrame(0x6ff, []byte{1, 2, 3})
	_, err := Parse(frame)
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, UnrecognizedID, perr.Kind)
	assert.Equal(t, frame, perr.Frame())
}

func TestParseWrongLength(t *testing.T) {
	frame := can.MustFrame(0x2c2, []byte{0x00}) // aux battery wants 4 bytes
	_, err := Parse(frame)
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, UnexpectedLength, perr.Kind)
	assert.Equal(t, 4, perr.Expected)
	assert.Equal(t, frame, perr.Frame())
}

func TestParseBodyStateFansOut(t *testing.T) {
	result, err := Parse(can.MustFrame(0x2fa, []byte{0x03, 0x01, 0x80, 0x21, 0, 0, 0, 0}))
	require.NoError(t, err)
	require.True(t, result.IsMany())
	require.Equal(t, 4, result.Len())

	assert.ElementsMatch(t, []Event{
		DoorsFromBits(0x03),
		ParkingLights(1),
		Dimmer(0x80),
		LocksFromBits(0x21),
	}, result.Slice())
}

func TestParseBodyStateAggregatesErrors(t *testing.T) {
	// parking lights byte out of range fails the whole frame
	_, err := Parse(can.MustFrame(0x2fa, []byte{0x03, 0x02, 0x80, 0x21, 0, 0, 0, 0}))
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, InvalidData, perr.Kind)
	assert.Contains(t, perr.Detail, "parking lights")
}

func TestParseEngineAlwaysYieldsTwo(t *testing.T) {
	result, err := Parse(can.MustFrame(0x322, []byte{0x27, 0x10, 0x00, 0x32, 0, 0, 0, 0}))
	require.NoError(t, err)
	require.True(t, result.IsMany())

	assert.ElementsMatch(t, []Event{
		RPM(10000),
		ApproxMPH{MPH: MPH(50)},
	}, result.Slice())
}

func TestParseGPSSpeed(t *testing.T) {
	ev := parseOne(t, 0x340, []byte{0, 0, 0, 0, 0, 0, 0, 42})
	speed, ok := ev.(GPSMPH)
	require.True(t, ok)
	assert.Equal(t, 42.0, speed.Float())
	assert.Equal(t, uint16(8400), speed.Raw())
}

func TestParseDateTimeScenario(t *testing.T) {
	ev := parseOne(t, 0x350, []byte{7, 34, 13, 7, 231, 1, 11, 1})
	dt, ok := ev.(DateTime)
	require.True(t, ok)
	assert.Equal(t, time.Date(2023, time.January, 11, 13, 34, 7, 0, time.UTC), dt.Time)
}

func TestCategory(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{AuxBattery{}, "battery"},
		{Remote{Action: RemoteLock}, "remote"},
		{IgnitionRun, "ignition"},
		{SWDpadUp, "steering_wheel"},
		{ButtonMute, "control_panel"},
		{WarmerDriverSeat, "control_panel"},
		{KnobFanUp, "control_panel"},
		{ParkingLights(1), "lights"},
		{Dimmer(10), "lights"},
		{Hazards{}, "lights"},
		{DoorsFromBits(1), "doors"},
		{LocksFromBits(1), "locks"},
		{RoadFeedback{}, "force"},
		{CameraOff, "camera"},
		{RPM(100), "engine"},
		{ApproxMPH{}, "engine"},
		{GPSMPH{}, "engine"},
		{CabinTemperature(0), "hvac"},
		{DateTime{}, "datetime"},
		{Odometer(0), "odometer"},
		{WakePlug, "bus"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Category(tt.ev), "%T", tt.ev)
	}
}

func TestEventJSONIsTagged(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{IgnitionRun, `{"ignition":"run"}`},
		{CameraReverse, `{"camera":"reverse"}`},
		{KnobFanUp, `{"control_panel":{"knob":"fan_up"}}`},
		{WakeHoodClose, `{"bus":{"wake":"hood_close"}}`},
		{Remote{Action: RemoteLock, Source: SourceKeyFob},
			`{"remote":{"action":"lock","source":"key_fob"}}`},
		{ParkingLights(0), `{"lights":{"parking":false}}`},
	}
	for _, tt := range tests {
		data, err := json.Marshal(tt.ev)
		require.NoError(t, err)
		assert.JSONEq(t, tt.want, string(data), "%T", tt.ev)
	}
}
