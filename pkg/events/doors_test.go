package events

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Door decoding is total: every byte value is a valid combination.
func TestDoorsFromBitsIsTotal(t *testing.T) {
	for b := 0; b < 256; b++ {
		d := DoorsFromBits(uint8(b))
		assert.Equal(t, uint8(b), uint8(d))
		assert.Len(t, d.names(), bits.OnesCount8(uint8(b)))
		assert.Equal(t, d&AllJeepDoors == 0, d.AllClosed(), "byte %#02x", b)
		assert.Equal(t, !d.AllClosed(), d.AnyOpen(), "byte %#02x", b)
	}
}

func TestDoorsMysteryBitsAreNotDoors(t *testing.T) {
	// the mystery bit stays set with everything shut; it must not read as
	// an open door
	d := DoorsFromBits(uint8(DoorMysteryBit))
	assert.True(t, d.AllClosed())
	assert.False(t, d.AnyOpen())

	d = DoorsFromBits(uint8(DoorMysteryBit | DoorSwingGate))
	assert.False(t, d.AllClosed())
}

func TestDoorsNames(t *testing.T) {
	d := DoorDriver | DoorSwingGate
	assert.Equal(t, []string{"driver", "swing_gate"}, d.names())
	assert.Equal(t, "Doors(driver|swing_gate)", d.String())
}

func TestLocksFromBitsIsTotal(t *testing.T) {
	for b := 0; b < 256; b++ {
		l := LocksFromBits(uint8(b))
		assert.Equal(t, uint8(b), uint8(l))
		assert.Len(t, l.names(), bits.OnesCount8(uint8(b)))
		assert.Equal(t, l&AllJeepLocks == 0, l.AllLocked(), "byte %#02x", b)
		assert.Equal(t, !l.AllLocked(), l.AnyUnlocked(), "byte %#02x", b)
	}
}

func TestLocksMysteryBitsAreNotLocks(t *testing.T) {
	l := LocksFromBits(uint8(LockMystery1 | LockMystery2))
	assert.True(t, l.AllLocked())
	assert.True(t, LocksFromBits(uint8(LockDriver)).AnyUnlocked())
}
