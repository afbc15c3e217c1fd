package types

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/gear-dapps/nft-marketplace/internal/cbor"
)

// Event is an event emitted by a deployed program or a node module.
//
// Value semantics are module-dependent.
type Event struct {
	Module    string          `json:"module"`
	Code      uint32          `json:"code"`
	Value     cbor.RawMessage `json:"value"`
	MessageID *MessageID      `json:"message_id,omitempty"`
}

// UnmarshalRaw decodes the event from a raw key/value pair.
func (ev *Event) UnmarshalRaw(key, value []byte, msgID *MessageID) error {
	if len(key) < 4 {
		return fmt.Errorf("types: malformed event key")
	}

	ev.Module = string(key[:len(key)-4])
	ev.Code = binary.BigEndian.Uint32(key[len(key)-4:])
	ev.Value = value
	ev.MessageID = msgID
	return nil
}

// Key returns the event key.
func (ev *Event) Key() EventKey {
	return NewEventKey(ev.Module, ev.Code)
}

// EventKey is an event tag key.
type EventKey []byte

// IsEqual compares this event key against another for equality.
func (ek EventKey) IsEqual(other []byte) bool {
	return bytes.Equal(ek[:], other)
}

// NewEventKey generates an event tag key from a module name and event code.
func NewEventKey(module string, code uint32) EventKey {
	key := make([]byte, len(module)+4)
	copy(key[:len(module)], module)
	binary.BigEndian.PutUint32(key[len(module):], code)
	return key
}
