// Package pcapng reads CAN frames out of pcapng captures.
package pcapng

import (
	"encoding/binary"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"github.com/openhood/jeepcan/pkg/can"
)

// linkTypeCAN is the raw SocketCAN link type.
// ref: https://www.tcpdump.org/linktypes.html
const linkTypeCAN = 227

// SocketCAN wire flag and mask bits for the 4-byte identifier field.
const (
	idFlagExtended = 0x80000000
	idFlagRemote   = 0x40000000
	idFlagError    = 0x20000000
)

// Reader reads CAN frames from a pcapng capture, skipping anything that is
// not a standard (11-bit) data frame: this bus carries nothing else worth
// decoding.
type Reader struct {
	reader      *pcapgo.NgReader
	linkType    layers.LinkType
	packetCount uint64
	skipped     uint64
}

// NewReader creates a reader over a pcapng stream.
func NewReader(r io.Reader) (*Reader, error) {
	ngReader, err := pcapgo.NewNgReader(r, pcapgo.DefaultNgReaderOptions)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create pcapng reader")
	}
	return &Reader{
		reader:   ngReader,
		linkType: ngReader.LinkType(),
	}, nil
}

// ReadFrame returns the next decodable CAN frame, or io.EOF at end of
// capture. Non-CAN packets and extended/remote/error frames are skipped and
// counted.
func (r *Reader) ReadFrame() (can.TimedFrame, error) {
	for {
		data, ci, err := r.reader.ReadPacketData()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return can.TimedFrame{}, io.EOF
			}
			return can.TimedFrame{}, errors.Wrap(err, "failed to read packet data")
		}
		r.packetCount++

		payload, err := r.canPayload(data)
		if err != nil {
			r.skipped++
			continue
		}
		frame, err := extractFrame(payload, ci)
		if err != nil {
			r.skipped++
			continue
		}
		return frame, nil
	}
}

// canPayload strips the link-layer envelope, leaving the raw SocketCAN
// record.
func (r *Reader) canPayload(data []byte) ([]byte, error) {
	switch r.linkType {
	case layers.LinkTypeLinuxSLL:
		packet := gopacket.NewPacket(data, r.linkType, gopacket.Default)
		if sllLayer := packet.Layer(layers.LayerTypeLinuxSLL); sllLayer != nil {
			return sllLayer.(*layers.LinuxSLL).Payload, nil
		}
		return data, nil
	case linkTypeCAN:
		return data, nil
	}
	return nil, errors.Newf("unsupported link type: %v", r.linkType)
}

// extractFrame decodes one raw SocketCAN record: a little-endian id+flags
// word, the length byte, three bytes of padding, then up to 8 data bytes.
func extractFrame(data []byte, ci gopacket.CaptureInfo) (can.TimedFrame, error) {
	if len(data) < 8 {
		return can.TimedFrame{}, errors.Newf("data too short for CAN frame: %d", len(data))
	}

	idRaw := binary.LittleEndian.Uint32(data[0:4])
	if idRaw&(idFlagExtended|idFlagRemote|idFlagError) != 0 {
		return can.TimedFrame{}, errors.New("not a standard data frame")
	}

	length := data[4]
	if length > can.MaxDataLength {
		length = can.MaxDataLength
	}

	var buf [can.MaxDataLength]byte
	if len(data) >= 8+int(length) {
		copy(buf[:], data[8:8+length])
	}

	// the raw id word goes in as-is; Frame masks on read
	frame, err := can.NewWithLength(idRaw, buf, length)
	if err != nil {
		return can.TimedFrame{}, err
	}
	return can.TimedFrame{Frame: frame, Timestamp: ci.Timestamp}, nil
}

// PacketCount returns the number of packets read so far.
func (r *Reader) PacketCount() uint64 {
	return r.packetCount
}

// Skipped returns how many packets were not decodable CAN frames.
func (r *Reader) Skipped() uint64 {
	return r.skipped
}
