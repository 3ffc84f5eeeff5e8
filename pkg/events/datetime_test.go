package events

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhood/jeepcan/pkg/can"
)

func TestParseDateTime(t *testing.T) {
	got, err := ParseDateTime(can.MustFrame(0x350, []byte{7, 34, 13, 7, 231, 1, 11, 1}))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, time.January, 11, 13, 34, 7, 0, time.UTC), got.Time)
	assert.Equal(t, "DateTime(2023-01-11 13:34:07)", got.String())
}

func TestParseDateTimeRejectsImpossibleValues(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		detail  string
	}{
		// time.Date would normalize these; the decoder must not
		{"day 32", []byte{0, 0, 0, 7, 231, 1, 32, 0}, "invalid date"},
		{"month 13", []byte{0, 0, 0, 7, 231, 13, 1, 0}, "invalid date"},
		{"april 31", []byte{0, 0, 0, 7, 231, 4, 31, 0}, "invalid date"},
		{"hour 24", []byte{0, 0, 24, 7, 231, 1, 11, 0}, "invalid time"},
		{"minute 60", []byte{0, 60, 0, 7, 231, 1, 11, 0}, "invalid time"},
		{"second 61", []byte{61, 0, 0, 7, 231, 1, 11, 0}, "invalid time"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDateTime(can.MustFrame(0x350, tt.payload))
			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, InvalidData, perr.Kind)
			assert.Contains(t, perr.Detail, tt.detail)
		})
	}
}
