// Package dump writes decoded events and parse errors as JSON lines.
package dump

import (
	"encoding/json"
	"io"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/openhood/jeepcan/pkg/events"
)

// Writer emits one JSON object per line. Events and parse errors share the
// stream so a dump preserves bus order.
type Writer struct {
	enc *json.Encoder
}

// NewWriter returns a Writer emitting to out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{enc: json.NewEncoder(out)}
}

type record struct {
	Timestamp int64           `json:"ts"`
	Event     json.RawMessage `json:"event,omitempty"`
	Error     json.RawMessage `json:"error,omitempty"`
}

// WriteEvent writes a decoded event stamped with ts.
func (w *Writer) WriteEvent(ev events.Event, ts time.Time) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}
	return w.enc.Encode(record{Timestamp: ts.UnixNano(), Event: data})
}

// WriteError writes a decode failure stamped with ts. A ParseError keeps its
// structured form; anything else is reduced to its message.
func (w *Writer) WriteError(decodeErr error, ts time.Time) error {
	var data []byte
	var perr *events.ParseError
	if errors.As(decodeErr, &perr) {
		var err error
		data, err = json.Marshal(perr)
		if err != nil {
			return errors.Wrap(err, "marshal parse error")
		}
	} else {
		var err error
		data, err = json.Marshal(map[string]string{"message": decodeErr.Error()})
		if err != nil {
			return errors.Wrap(err, "marshal error")
		}
	}
	return w.enc.Encode(record{Timestamp: ts.UnixNano(), Error: data})
}
