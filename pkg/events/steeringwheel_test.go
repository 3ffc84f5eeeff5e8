package events

import (
	"encoding/binary"
	"math/bits"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhood/jeepcan/pkg/can"
)

func steeringWheelFrame(raw uint16) can.Frame {
	var data [8]byte
	binary.BigEndian.PutUint16(data[3:5], raw)
	return can.MustFrame(0x318, data[:])
}

// All sixteen bits are assigned, so the decode is total over the u16 range.
func TestParseSteeringWheelIsTotal(t *testing.T) {
	for raw := 0; raw <= 0xffff; raw++ {
		got, err := ParseSteeringWheel(steeringWheelFrame(uint16(raw)))
		require.NoError(t, err, "%#04x", raw)
		require.Equal(t, uint16(raw), uint16(got))
		require.Len(t, got.names(), bits.OnesCount16(uint16(raw)))
		require.Equal(t, got&SWStockButtons, got.Stock())
	}
}

func TestSteeringWheelStockMasksMysteryBits(t *testing.T) {
	pressed := SWDpadUp | SWMysteryButton3 | SWBackVolUp
	assert.Equal(t, SWDpadUp|SWBackVolUp, pressed.Stock())
	assert.True(t, pressed.Has(SWMysteryButton3))
	assert.False(t, pressed.Stock().Has(SWMysteryButton3))
}

func TestParseSteeringWheelShapeErrors(t *testing.T) {
	_, err := ParseSteeringWheel(can.MustFrame(0x318, []byte{0, 0, 0}))
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, UnexpectedLength, perr.Kind)

	_, err = ParseSteeringWheel(can.MustFrame(0x319, make([]byte, 8)))
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, UnrecognizedID, perr.Kind)
}
