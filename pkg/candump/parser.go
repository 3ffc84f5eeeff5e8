// Package candump reads `candump -L` log files back into frames.
package candump

import (
	"bufio"
	"encoding/hex"
	"io"
	"regexp"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/openhood/jeepcan/pkg/can"
)

// lineRE matches one `candump -L` record:
//
//	(1684104609.640533) can0 2D3#0700000000000001
var lineRE = regexp.MustCompile(`^\((\d+)\.(\d+)\)\s+(\S+)\s+([0-9A-Fa-f]+)#([0-9A-Fa-f]*)\s*$`)

// ParseLine parses a single candump log line into a timestamped frame.
func ParseLine(line string) (can.TimedFrame, error) {
	m := lineRE.FindStringSubmatch(line)
	if m == nil {
		return can.TimedFrame{}, errors.Newf("not a candump -L line: %q", line)
	}

	sec, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return can.TimedFrame{}, errors.Wrap(err, "bad timestamp seconds")
	}
	// the subsecond field is microseconds, zero-padded to 6 digits
	usec, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return can.TimedFrame{}, errors.Wrap(err, "bad timestamp microseconds")
	}

	id, err := strconv.ParseUint(m[4], 16, 32)
	if err != nil {
		return can.TimedFrame{}, errors.Wrap(err, "bad frame id")
	}

	payload, err := hex.DecodeString(m[5])
	if err != nil {
		return can.TimedFrame{}, errors.Wrap(err, "bad frame data")
	}

	frame, err := can.New(uint32(id), payload)
	if err != nil {
		return can.TimedFrame{}, err
	}
	return can.TimedFrame{
		Frame:     frame,
		Timestamp: time.Unix(sec, usec*int64(time.Microsecond)),
	}, nil
}

// Reader iterates a candump log. Malformed lines are skipped and counted,
// the same way capture readers skip non-CAN packets.
type Reader struct {
	scanner *bufio.Scanner
	filters map[uint32]struct{}
	skipped uint64
}

// NewReader wraps r. When filters is non-empty, frames whose masked
// identifier is not listed are dropped.
func NewReader(r io.Reader, filters []uint32) *Reader {
	var set map[uint32]struct{}
	if len(filters) > 0 {
		set = make(map[uint32]struct{}, len(filters))
		for _, id := range filters {
			set[id] = struct{}{}
		}
	}
	return &Reader{scanner: bufio.NewScanner(r), filters: set}
}

// ReadFrame returns the next frame that parses and passes the filter, or
// io.EOF at end of log.
func (r *Reader) ReadFrame() (can.TimedFrame, error) {
	for r.scanner.Scan() {
		line := r.scanner.Text()
		if line == "" {
			continue
		}
		tf, err := ParseLine(line)
		if err != nil {
			r.skipped++
			continue
		}
		if r.filters != nil {
			if _, ok := r.filters[tf.ID()]; !ok {
				continue
			}
		}
		return tf, nil
	}
	if err := r.scanner.Err(); err != nil {
		return can.TimedFrame{}, errors.Wrap(err, "failed to read candump log")
	}
	return can.TimedFrame{}, io.EOF
}

// Skipped returns how many lines failed to parse so far.
func (r *Reader) Skipped() uint64 {
	return r.skipped
}
