package events

import (
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/openhood/jeepcan/pkg/can"
)

const dateTimeID = 0x350

// DateTime is the vehicle's reported date and time.
type DateTime struct {
	time.Time
}

func (d DateTime) isEvent() {}

func (d DateTime) String() string {
	return "DateTime(" + d.Format("2006-01-02 15:04:05") + ")"
}

// MarshalJSON renders {"datetime":"2023-01-11T13:34:07"}.
func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		"datetime": d.Format("2006-01-02T15:04:05"),
	})
}

// ParseDateTime decodes the vehicle clock from dateTimeID: seconds, minutes,
// hours, a big-endian u16 year, month, then day. A payload that names no
// real calendar date or time of day is invalid data.
func ParseDateTime(f can.Frame) (DateTime, error) {
	if f.ID() != dateTimeID {
		return DateTime{}, errUnrecognizedID(f)
	}
	data, err := payloadExact(f, 8)
	if err != nil {
		return DateTime{}, err
	}

	var (
		seconds = int(data[0])
		minutes = int(data[1])
		hours   = int(data[2])
		year    = int(binary.BigEndian.Uint16(data[3:5]))
		month   = int(data[5])
		day     = int(data[6])
	)

	// time.Date normalizes out-of-range components (Apr 31 becomes May 1),
	// so build the value and then require an exact round-trip.
	t := time.Date(year, time.Month(month), day, hours, minutes, seconds, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return DateTime{}, errInvalidData(f, "invalid date")
	}
	if t.Hour() != hours || t.Minute() != minutes || t.Second() != seconds {
		return DateTime{}, errInvalidData(f, "invalid time")
	}
	return DateTime{Time: t}, nil
}
