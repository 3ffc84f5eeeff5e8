package events

import (
	"encoding/json"
	"fmt"

	"github.com/openhood/jeepcan/pkg/can"
)

const cameraID = 0x302

// Camera is the state of the backup/cargo camera view. The constant values
// are the wire byte at index 0 of a cameraID frame.
//
// The byte-to-name assignments follow captured behavior on a 2021 4xE; some
// documentation assigns 0x02 and 0x09 the other way around, so treat those
// two labels as provisional.
type Camera uint8

const (
	CameraOff          Camera = 0x00
	CameraReverse      Camera = 0x02
	CameraCargo        Camera = 0x07
	CameraInitializing Camera = 0x09
)

func (c Camera) isEvent() {}

func (c Camera) String() string {
	return fmt.Sprintf("Camera(%s)", c.tag())
}

func (c Camera) tag() string {
	switch c {
	case CameraOff:
		return "off"
	case CameraReverse:
		return "reverse"
	case CameraCargo:
		return "cargo"
	case CameraInitializing:
		return "initializing"
	}
	return "unknown"
}

// MarshalJSON renders {"camera":"reverse"}.
func (c Camera) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"camera": c.tag()})
}

// ParseCamera decodes a camera state from cameraID.
func ParseCamera(f can.Frame) (Camera, error) {
	if f.ID() != cameraID {
		return 0, errUnrecognizedID(f)
	}
	data, err := payloadExact(f, 8)
	if err != nil {
		return 0, err
	}
	switch Camera(data[0]) {
	case CameraOff, CameraReverse, CameraCargo, CameraInitializing:
		return Camera(data[0]), nil
	}
	return 0, errInvalidData(f, fmt.Sprintf("unrecognized camera byte at index 0: %#02x", data[0]))
}
