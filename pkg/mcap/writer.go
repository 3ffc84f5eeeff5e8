package mcap

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/foxglove/mcap/go/mcap"

	"github.com/openhood/jeepcan/pkg/events"
)

// Writer writes decoded bus events into an MCAP file.
//
// Design decisions:
//   - Events are self-describing JSON, so channels carry no schema (SchemaID 0).
//   - Channel granularity = event category, i.e. one topic per kind of event.
//   - Topic naming: /jeep/<category>
//
// A new channel is created lazily on first occurrence of a category.
type Writer struct {
	mu         sync.Mutex
	writer     *mcap.Writer
	nextChanID uint16
	channels   map[string]uint16 // key: event category
}

// NewWriter initializes an MCAP writer over out. The provided io.Writer
// should be an opened file (will not be closed here).
func NewWriter(out io.Writer) (*Writer, error) {
	w, err := mcap.NewWriter(out, &mcap.WriterOptions{
		Chunked:     true,
		ChunkSize:   2 * 1024 * 1024, // 2MB chunks
		Compression: mcap.CompressionZSTD,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create MCAP writer")
	}

	if err := w.WriteHeader(&mcap.Header{
		Profile: "",
		Library: "jeepcan",
	}); err != nil {
		return nil, errors.Wrap(err, "write header")
	}

	return &Writer{
		writer:   w,
		channels: make(map[string]uint16),
	}, nil
}

// ensureChannel ensures a channel exists for a category; returns channel ID.
func (w *Writer) ensureChannel(category string) (uint16, error) {
	if id, ok := w.channels[category]; ok {
		return id, nil
	}

	w.nextChanID++
	chID := w.nextChanID

	topic := "/jeep/" + category
	if err := w.writer.WriteChannel(&mcap.Channel{
		ID:              chID,
		SchemaID:        0, // schemaless JSON
		Topic:           topic,
		MessageEncoding: "json",
		Metadata: map[string]string{
			"category": category,
		},
	}); err != nil {
		return 0, errors.Wrapf(err, "write channel (topic=%s)", topic)
	}

	w.channels[category] = chID
	return chID, nil
}

// WriteEvent writes a single decoded event as an MCAP message stamped with
// ts. A zero ts falls back to the current time.
func (w *Writer) WriteEvent(ev events.Event, ts time.Time) error {
	if ev == nil {
		return errors.New("nil event")
	}
	if ts.IsZero() {
		ts = time.Now()
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	channelID, err := w.ensureChannel(events.Category(ev))
	if err != nil {
		return err
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}
	if err := w.writer.WriteMessage(&mcap.Message{
		ChannelID:   channelID,
		Sequence:    0,
		LogTime:     uint64(ts.UnixNano()),
		PublishTime: uint64(ts.UnixNano()),
		Data:        data,
	}); err != nil {
		return errors.Wrap(err, "write message")
	}
	return nil
}

// Close finalizes the MCAP file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writer.Close()
}
