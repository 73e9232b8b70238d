package protocol

import (
	"errors"
	"fmt"
)

// EventType identifies the type of client event.
type EventType uint8

const (
	EventScroll   EventType = 0x30 // View scrolled
	EventNavigate EventType = 0x70 // Navigation request
)

// String returns the string representation of the event type.
func (et EventType) String() string {
	switch et {
	case EventScroll:
		return "Scroll"
	case EventNavigate:
		return "Navigate"
	default:
		return "Unknown"
	}
}

// ScrollEventData contains scroll event data.
type ScrollEventData struct {
	ScrollTop  int
	ScrollLeft int
}

// NavigateEventData contains navigation event data.
type NavigateEventData struct {
	Path    string
	Replace bool
}

// Event represents a decoded event from the client.
type Event struct {
	Seq     uint64
	Type    EventType
	HID     string
	Payload any // *ScrollEventData or *NavigateEventData
}

// ErrInvalidEventType is returned when decoding an unknown event type.
var ErrInvalidEventType = errors.New("protocol: invalid event type")

// EncodeEvent encodes an event to bytes.
func EncodeEvent(e *Event) []byte {
	enc := NewEncoder()
	EncodeEventTo(enc, e)
	return enc.Bytes()
}

// EncodeEventTo encodes an event using the provided encoder.
// A missing or mistyped payload encodes as its zero value.
func EncodeEventTo(enc *Encoder, e *Event) {
	enc.WriteUvarint(e.Seq)
	enc.WriteByte(byte(e.Type))
	enc.WriteString(e.HID)

	switch e.Type {
	case EventScroll:
		data, ok := e.Payload.(*ScrollEventData)
		if !ok || data == nil {
			data = &ScrollEventData{}
		}
		enc.WriteSvarint(int64(data.ScrollTop))
		enc.WriteSvarint(int64(data.ScrollLeft))

	case EventNavigate:
		data, ok := e.Payload.(*NavigateEventData)
		if !ok || data == nil {
			data = &NavigateEventData{}
		}
		enc.WriteString(data.Path)
		enc.WriteBool(data.Replace)
	}
}

// DecodeEvent decodes an event from bytes.
func DecodeEvent(data []byte) (*Event, error) {
	return DecodeEventFrom(NewDecoder(data))
}

// DecodeEventFrom decodes an event from a decoder.
func DecodeEventFrom(d *Decoder) (*Event, error) {
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	typeByte, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	hid, err := d.ReadString()
	if err != nil {
		return nil, err
	}

	e := &Event{Seq: seq, Type: EventType(typeByte), HID: hid}

	switch e.Type {
	case EventScroll:
		top, err := d.ReadSvarint()
		if err != nil {
			return nil, err
		}
		left, err := d.ReadSvarint()
		if err != nil {
			return nil, err
		}
		e.Payload = &ScrollEventData{
			ScrollTop:  int(top),
			ScrollLeft: int(left),
		}

	case EventNavigate:
		path, err := d.ReadString()
		if err != nil {
			return nil, err
		}
		replace, err := d.ReadBool()
		if err != nil {
			return nil, err
		}
		e.Payload = &NavigateEventData{Path: path, Replace: replace}

	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrInvalidEventType, typeByte)
	}

	return e, nil
}
