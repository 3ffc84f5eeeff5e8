package events

import (
	"encoding/json"
	"strings"
)

// Locks is the lock state of all doors as a bit set. A set bit means
// unlocked. Bit assignments mirror Doors but are less verified; treat the
// per-door bits as provisional. Every bit pattern is valid, so decoding
// locks can never fail.
type Locks uint8

const (
	LockDriver Locks = 1 << iota
	LockPassenger
	LockRearDriver
	LockRearPassenger
	LockMystery0
	LockSwingGate
	LockMystery1
	LockMystery2
)

// AllJeepLocks masks the locks for doors physically present on the Wrangler.
const AllJeepLocks = LockDriver | LockPassenger | LockRearDriver |
	LockRearPassenger | LockSwingGate

var lockNames = []struct {
	flag Locks
	name string
}{
	{LockDriver, "driver"},
	{LockPassenger, "passenger"},
	{LockRearDriver, "rear_driver"},
	{LockRearPassenger, "rear_passenger"},
	{LockMystery0, "mystery_door_0"},
	{LockSwingGate, "swing_gate"},
	{LockMystery1, "mystery_door_1"},
	{LockMystery2, "mystery_door_2"},
}

// LocksFromBits interprets a raw byte as lock state. Total: every bit has a
// meaning.
func LocksFromBits(b uint8) Locks {
	return Locks(b)
}

// Has reports whether every bit of flag is set.
func (l Locks) Has(flag Locks) bool {
	return l&flag == flag
}

// AllLocked reports whether every physical door is locked.
func (l Locks) AllLocked() bool {
	return l&AllJeepLocks == 0
}

// AnyUnlocked reports whether any physical door is unlocked.
func (l Locks) AnyUnlocked() bool {
	return !l.AllLocked()
}

func (l Locks) names() []string {
	var out []string
	for _, ln := range lockNames {
		if l.Has(ln.flag) {
			out = append(out, ln.name)
		}
	}
	return out
}

func (l Locks) isEvent() {}

func (l Locks) String() string {
	return "Locks(" + strings.Join(l.names(), "|") + ")"
}

// MarshalJSON renders {"locks":{"raw":47,"unlocked":["driver",...]}}.
func (l Locks) MarshalJSON() ([]byte, error) {
	unlocked := l.names()
	if unlocked == nil {
		unlocked = []string{}
	}
	return json.Marshal(map[string]any{
		"locks": map[string]any{"raw": uint8(l), "unlocked": unlocked},
	})
}
