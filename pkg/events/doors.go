package events

import (
	"encoding/json"
	"strings"
)

// Doors is the open/closed state of all doors as a bit set. A set bit means
// open. Every bit pattern is a valid combination, so decoding doors can
// never fail.
type Doors uint8

const (
	DoorDriver        Doors = 1 << iota // driver's side door
	DoorPassenger                       // passenger's side door
	DoorRearDriver                      // rear driver's side door
	DoorRearPassenger                   // rear passenger's side door
	// DoorMystery0 appears unused on the Wrangler but might represent a door
	// on some other model.
	DoorMystery0
	DoorSwingGate // rear swing gate (the one holding the spare tire)
	// DoorMysteryBit is set when all doors are closed and locked, but stays
	// set when a door is opened from the inside. It does not guarantee the
	// doors are secure.
	DoorMysteryBit
	DoorMystery2
)

// AllJeepDoors masks the doors physically present on the Wrangler.
const AllJeepDoors = DoorDriver | DoorPassenger | DoorRearDriver |
	DoorRearPassenger | DoorSwingGate

var doorNames = []struct {
	flag Doors
	name string
}{
	{DoorDriver, "driver"},
	{DoorPassenger, "passenger"},
	{DoorRearDriver, "rear_driver"},
	{DoorRearPassenger, "rear_passenger"},
	{DoorMystery0, "mystery_door_0"},
	{DoorSwingGate, "swing_gate"},
	{DoorMysteryBit, "mystery_bit"},
	{DoorMystery2, "mystery_door_2"},
}

// DoorsFromBits interprets a raw byte as door state. Total: every bit has a
// meaning.
func DoorsFromBits(b uint8) Doors {
	return Doors(b)
}

// Has reports whether every bit of flag is set.
func (d Doors) Has(flag Doors) bool {
	return d&flag == flag
}

// AllClosed reports whether every physical door is closed. Use this instead
// of comparing against zero; the mystery bits are not doors.
func (d Doors) AllClosed() bool {
	return d&AllJeepDoors == 0
}

// AnyOpen reports whether any physical door is open.
func (d Doors) AnyOpen() bool {
	return !d.AllClosed()
}

func (d Doors) names() []string {
	var out []string
	for _, dn := range doorNames {
		if d.Has(dn.flag) {
			out = append(out, dn.name)
		}
	}
	return out
}

func (d Doors) isEvent() {}

func (d Doors) String() string {
	return "Doors(" + strings.Join(d.names(), "|") + ")"
}

// MarshalJSON renders {"doors":{"raw":47,"open":["driver",...]}}.
func (d Doors) MarshalJSON() ([]byte, error) {
	open := d.names()
	if open == nil {
		open = []string{}
	}
	return json.Marshal(map[string]any{
		"doors": map[string]any{"raw": uint8(d), "open": open},
	})
}
