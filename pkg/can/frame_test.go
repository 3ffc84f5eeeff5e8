package can

import (
	"encoding/json"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ecan "go.einride.tech/can"
)

func TestNewRoundTrip(t *testing.T) {
	f, err := New(0x2d3, []byte{0x07, 0x00, 0x01})
	require.NoError(t, err)

	assert.Equal(t, uint32(0x2d3), f.ID())
	assert.Equal(t, uint8(3), f.Length())
	assert.Equal(t, []byte{0x07, 0x00, 0x01}, f.Payload())
}

func TestNewRejectsLongPayload(t *testing.T) {
	_, err := New(0x123, make([]byte, 9))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadLength))
}

func TestNewWithLengthRejectsLongLength(t *testing.T) {
	_, err := NewWithLength(0x123, [MaxDataLength]byte{}, 9)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadLength))
}

func TestPaddingExcludedFromEquality(t *testing.T) {
	// same declared bytes, garbage past the length
	dirty, err := NewWithLength(0x122, [MaxDataLength]byte{0x44, 0x01, 0x00, 0x00, 0xde, 0xad, 0xbe, 0xef}, 4)
	require.NoError(t, err)
	clean, err := New(0x122, []byte{0x44, 0x01, 0x00, 0x00})
	require.NoError(t, err)

	assert.True(t, dirty.Equal(clean))
	assert.Equal(t, clean, dirty)
	assert.Equal(t, clean.String(), dirty.String())

	// frames are comparable, so they hash alike as map keys
	seen := map[Frame]int{dirty: 1}
	assert.Equal(t, 1, seen[clean])
}

func TestIDMaskedOnRead(t *testing.T) {
	f := MustFrame(0x80000122, []byte{0x44, 0x01, 0x00, 0x00})
	assert.Equal(t, uint32(0x122), f.ID())
	assert.Equal(t, uint32(0x80000122), f.Raw())
}

func TestString(t *testing.T) {
	assert.Equal(t, "2D3#0700000000000001",
		MustFrame(0x2d3, []byte{0x07, 0, 0, 0, 0, 0, 0, 0x01}).String())
	assert.Equal(t, "1C0#", MustFrame(0x1c0, nil).String())
}

func TestJSONRoundTrip(t *testing.T) {
	f := MustFrame(0x350, []byte{7, 34, 13, 7, 231, 1, 11, 1})

	data, err := json.Marshal(f)
	require.NoError(t, err)

	var got Frame
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, f, got)
}

func TestUnmarshalRejectsBadLength(t *testing.T) {
	var f Frame
	err := json.Unmarshal([]byte(`{"id":291,"len":12,"data":[0,0,0,0,0,0,0,0]}`), &f)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadLength))
}

func TestFromCAN(t *testing.T) {
	src := ecan.Frame{
		ID:     0x2c2,
		Length: 4,
		Data:   ecan.Data{0x00, 0x00, 0x5c, 0x00, 0xff, 0xff, 0xff, 0xff},
	}
	f, err := FromCAN(src)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x2c2), f.ID())
	assert.Equal(t, []byte{0x00, 0x00, 0x5c, 0x00}, f.Payload())

	// padding from the transport buffer does not leak back out
	back := f.CAN()
	assert.Equal(t, ecan.Data{0x00, 0x00, 0x5c, 0x00, 0, 0, 0, 0}, back.Data)
	assert.Equal(t, uint8(4), back.Length)
}

func TestFromCANRejectsRemote(t *testing.T) {
	_, err := FromCAN(ecan.Frame{ID: 0x2c2, IsRemote: true})
	require.Error(t, err)
}
