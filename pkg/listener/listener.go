// Package listener turns a SocketCAN interface into a stream of decoded
// events.
package listener

import (
	"context"
	"net"

	"github.com/cockroachdb/errors"
	ecan "go.einride.tech/can"
	"go.einride.tech/can/pkg/socketcan"

	"github.com/openhood/jeepcan/pkg/can"
	"github.com/openhood/jeepcan/pkg/events"
)

// Message is one result off the bus: a decoded Event, or the decode error
// for the frame that produced it. Exactly one field is set.
type Message struct {
	Event events.Event
	Err   error
}

// frameSource is the slice of socketcan.Receiver the listener needs; tests
// substitute their own.
type frameSource interface {
	Receive() bool
	Frame() ecan.Frame
	Err() error
}

// Listener reads frames from a CAN interface and decodes them. Frames that
// fan out into several events are buffered and drained one Message at a
// time before the next read.
//
// A Listener is driven by a single goroutine; call Close from another to
// unblock a pending Next.
type Listener struct {
	conn    net.Conn
	src     frameSource
	filters map[uint32]struct{}
	pending []events.Event
}

// Connect opens the named SocketCAN interface, e.g. "can0".
func Connect(ctx context.Context, ifname string) (*Listener, error) {
	conn, err := socketcan.DialContext(ctx, "can", ifname)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open CAN interface %q", ifname)
	}
	return &Listener{conn: conn, src: socketcan.NewReceiver(conn)}, nil
}

// Filter restricts decoding to the given identifiers. Frames with any other
// identifier are dropped before decoding instead of surfacing as
// unrecognized. An empty call clears the filter.
func (l *Listener) Filter(ids ...uint32) {
	if len(ids) == 0 {
		l.filters = nil
		return
	}
	l.filters = make(map[uint32]struct{}, len(ids))
	for _, id := range ids {
		l.filters[id] = struct{}{}
	}
}

// Next blocks for the next message. It returns false when the transport is
// done (closed or failed); the final Message then carries the transport
// error, which callers should treat separately from the per-frame decode
// errors delivered while the second return is true.
func (l *Listener) Next() (Message, bool) {
	if n := len(l.pending); n > 0 {
		ev := l.pending[n-1]
		l.pending = l.pending[:n-1]
		return Message{Event: ev}, true
	}

	var frame can.Frame
	for {
		if !l.src.Receive() {
			return Message{Err: errors.Wrap(l.src.Err(), "transport")}, false
		}
		f, err := can.FromCAN(l.src.Frame())
		if err != nil {
			return Message{Err: err}, true
		}
		if l.filters != nil {
			if _, ok := l.filters[f.ID()]; !ok {
				continue
			}
		}
		frame = f
		break
	}
	result, err := events.Parse(frame)
	if err != nil {
		return Message{Err: err}, true
	}

	it := result.Iter()
	first, _ := it.Next()
	for ev, ok := it.Next(); ok; ev, ok = it.Next() {
		l.pending = append(l.pending, ev)
	}
	return Message{Event: first}, true
}

// Close shuts the underlying connection, unblocking any pending Next.
func (l *Listener) Close() error {
	return l.conn.Close()
}
