package candump

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhood/jeepcan/pkg/can"
)

func TestParseLine(t *testing.T) {
	tf, err := ParseLine("(1684104609.640533) can0 2D3#0700000000000001")
	require.NoError(t, err)

	assert.Equal(t, can.MustFrame(0x2d3, []byte{0x07, 0, 0, 0, 0, 0, 0, 0x01}), tf.Frame)
	assert.Equal(t, time.Unix(1684104609, 640533000), tf.Timestamp)
}

func TestParseLineEmptyPayload(t *testing.T) {
	tf, err := ParseLine("(1684104609.000001) can0 1C0#")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x1c0), tf.ID())
	assert.Equal(t, uint8(0), tf.Length())
}

func TestParseLineRejectsGarbage(t *testing.T) {
	lines := []string{
		"",
		"not a candump line",
		"(123.456) can0 2D3",    // no separator
		"(123.456) can0 ZZZ#07", // bad identifier
		"(123.456) can0 2D3#070000000000000102", // 9 bytes
		"(123.456) can0 2D3#070",                // odd hex digit count
	}
	for _, line := range lines {
		_, err := ParseLine(line)
		assert.Error(t, err, "%q", line)
	}
}

func TestReaderSkipsMalformedLines(t *testing.T) {
	log := strings.Join([]string{
		"(1684104609.000001) can0 2C2#00005C00",
		"garbage",
		"(1684104609.000002) can0 122#44010000",
		"",
	}, "\n")

	r := NewReader(strings.NewReader(log), nil)

	tf, err := r.ReadFrame()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x2c2), tf.ID())

	tf, err = r.ReadFrame()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x122), tf.ID())

	_, err = r.ReadFrame()
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, uint64(1), r.Skipped())
}

func TestReaderFilters(t *testing.T) {
	log := strings.Join([]string{
		"(1.000001) can0 2C2#00005C00",
		"(1.000002) can0 122#44010000",
		"(1.000003) can0 2C2#00005D00",
	}, "\n")

	r := NewReader(strings.NewReader(log), []uint32{0x122})

	tf, err := r.ReadFrame()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x122), tf.ID())

	_, err = r.ReadFrame()
	assert.ErrorIs(t, err, io.EOF)
}
