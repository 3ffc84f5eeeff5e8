package events

import (
	"encoding/json"
	"fmt"

	"github.com/openhood/jeepcan/pkg/can"
)

const remoteID = 0x1c0

// RemoteSource is where a remote control event came from.
type RemoteSource uint8

const (
	// SourceKeyFob is the physical fob; nearly instant.
	SourceKeyFob RemoteSource = iota + 1
	// SourceApp is the phone app, should the alignment of the planets and
	// the telematics backend permit.
	SourceApp
)

func (s RemoteSource) String() string {
	switch s {
	case SourceKeyFob:
		return "key_fob"
	case SourceApp:
		return "app"
	}
	return fmt.Sprintf("RemoteSource(%d)", uint8(s))
}

// RemoteAction is what the remote asked for.
type RemoteAction uint8

const (
	// RemoteIdle can be ignored, but is one indication the vehicle is awake.
	RemoteIdle RemoteAction = iota
	RemoteLock
	RemoteUnlock
	// RemoteDoubleUnlock is the second of two sequential unlock presses on
	// the fob.
	RemoteDoubleUnlock
	// RemoteKeylessEntry fires on passive entry, if that's enabled. Enabling
	// it exposes the vehicle to fob relay attacks; this package just reports
	// the event.
	RemoteKeylessEntry
	RemoteStart
	RemoteCancelStart
	RemotePanic
)

func (a RemoteAction) String() string {
	switch a {
	case RemoteIdle:
		return "idle"
	case RemoteLock:
		return "lock"
	case RemoteUnlock:
		return "unlock"
	case RemoteDoubleUnlock:
		return "double_unlock"
	case RemoteKeylessEntry:
		return "keyless_entry"
	case RemoteStart:
		return "start"
	case RemoteCancelStart:
		return "cancel_start"
	case RemotePanic:
		return "panic"
	}
	return fmt.Sprintf("RemoteAction(%d)", uint8(a))
}

// Remote is a remote control event. Source is only set for actions that
// identify one (lock, unlock, start, panic).
type Remote struct {
	Action RemoteAction
	Source RemoteSource
}

func (r Remote) isEvent() {}

func (r Remote) String() string {
	if r.Source != 0 {
		return fmt.Sprintf("Remote(%s from %s)", r.Action, r.Source)
	}
	return fmt.Sprintf("Remote(%s)", r.Action)
}

// MarshalJSON renders {"remote":{"action":"lock","source":"key_fob"}}; the
// source is omitted for unsourced actions.
func (r Remote) MarshalJSON() ([]byte, error) {
	inner := map[string]string{"action": r.Action.String()}
	if r.Source != 0 {
		inner["source"] = r.Source.String()
	}
	return json.Marshal(map[string]any{"remote": inner})
}

// ParseRemote decodes a remote control event from remoteID. The first byte
// is enough to identify any remote event.
func ParseRemote(f can.Frame) (Remote, error) {
	if f.ID() != remoteID {
		return Remote{}, errUnrecognizedID(f)
	}
	data, err := payloadExact(f, 6)
	if err != nil {
		return Remote{}, err
	}
	switch data[0] {
	case 0x00:
		return Remote{Action: RemoteIdle}, nil
	case 0x21:
		return Remote{Action: RemoteLock, Source: SourceKeyFob}, nil
	case 0x23: // first fob unlock press
		return Remote{Action: RemoteUnlock, Source: SourceKeyFob}, nil
	case 0x24: // second fob unlock press
		return Remote{Action: RemoteDoubleUnlock}, nil
	case 0x2E:
		return Remote{Action: RemotePanic, Source: SourceKeyFob}, nil
	case 0x43:
		return Remote{Action: RemoteKeylessEntry}, nil
	case 0x69:
		return Remote{Action: RemoteStart, Source: SourceKeyFob}, nil
	case 0x6A: // cancel remote start, from either source
		return Remote{Action: RemoteCancelStart}, nil
	case 0x81:
		return Remote{Action: RemoteLock, Source: SourceApp}, nil
	case 0x83:
		// 0x83 has been captured for both app unlock and app panic; unlock
		// wins until a capture separates them (one is suspected to be 0x82).
		return Remote{Action: RemoteUnlock, Source: SourceApp}, nil
	}
	return Remote{}, errInvalidData(f, fmt.Sprintf(
		"byte at index 0 not recognized: %#02x", data[0]))
}
