package protocol

import "fmt"

// PatchOp is the type of patch operation.
type PatchOp uint8

const (
	PatchSetText     PatchOp = 0x01 // Update text content
	PatchScrollTo    PatchOp = 0x0D // Scroll to position
	PatchSetStyle    PatchOp = 0x13 // Set style property
	PatchRemoveStyle PatchOp = 0x14 // Remove style property
)

// String returns the string representation of the patch operation.
func (op PatchOp) String() string {
	switch op {
	case PatchSetText:
		return "SetText"
	case PatchScrollTo:
		return "ScrollTo"
	case PatchSetStyle:
		return "SetStyle"
	case PatchRemoveStyle:
		return "RemoveStyle"
	default:
		return "Unknown"
	}
}

// ScrollBehavior represents the scroll behavior for PatchScrollTo.
type ScrollBehavior uint8

const (
	ScrollInstant ScrollBehavior = 0
	ScrollSmooth  ScrollBehavior = 1
)

// Patch represents a single DOM operation.
type Patch struct {
	Op       PatchOp
	HID      string         // Target element handle
	Key      string         // Style property
	Value    string         // Text or style value
	X        int            // For ScrollTo
	Y        int            // For ScrollTo
	Behavior ScrollBehavior // For ScrollTo
}

// String renders the patch in a compact human-readable form.
func (p Patch) String() string {
	switch p.Op {
	case PatchSetText:
		return fmt.Sprintf("SetText(%s, %q)", p.HID, p.Value)
	case PatchScrollTo:
		return fmt.Sprintf("ScrollTo(%s, %d, %d)", p.HID, p.X, p.Y)
	case PatchSetStyle:
		return fmt.Sprintf("SetStyle(%s, %s: %s)", p.HID, p.Key, p.Value)
	case PatchRemoveStyle:
		return fmt.Sprintf("RemoveStyle(%s, %s)", p.HID, p.Key)
	default:
		return fmt.Sprintf("Unknown(0x%02x, %s)", uint8(p.Op), p.HID)
	}
}

// NewSetStylePatch creates a SetStyle patch.
func NewSetStylePatch(hid, property, value string) Patch {
	return Patch{Op: PatchSetStyle, HID: hid, Key: property, Value: value}
}

// NewRemoveStylePatch creates a RemoveStyle patch.
func NewRemoveStylePatch(hid, property string) Patch {
	return Patch{Op: PatchRemoveStyle, HID: hid, Key: property}
}

// NewScrollToPatch creates an instant ScrollTo patch.
func NewScrollToPatch(hid string, x, y int) Patch {
	return Patch{Op: PatchScrollTo, HID: hid, X: x, Y: y}
}

// PatchesFrame represents a batch of patches with sequence number.
type PatchesFrame struct {
	Seq     uint64
	Patches []Patch
}

// EncodePatches encodes a patches frame to bytes.
func EncodePatches(pf *PatchesFrame) []byte {
	e := NewEncoder()
	EncodePatchesTo(e, pf)
	return e.Bytes()
}

// EncodePatchesTo encodes a patches frame using the provided encoder.
func EncodePatchesTo(e *Encoder, pf *PatchesFrame) {
	e.WriteUvarint(pf.Seq)
	e.WriteUvarint(uint64(len(pf.Patches)))

	for i := range pf.Patches {
		encodePatch(e, &pf.Patches[i])
	}
}

func encodePatch(e *Encoder, p *Patch) {
	e.WriteByte(byte(p.Op))
	e.WriteString(p.HID)

	switch p.Op {
	case PatchSetText:
		e.WriteString(p.Value)

	case PatchScrollTo:
		e.WriteSvarint(int64(p.X))
		e.WriteSvarint(int64(p.Y))
		e.WriteByte(byte(p.Behavior))

	case PatchSetStyle:
		e.WriteString(p.Key)
		e.WriteString(p.Value)

	case PatchRemoveStyle:
		e.WriteString(p.Key)
	}
}

// DecodePatches decodes a patches frame from bytes.
func DecodePatches(data []byte) (*PatchesFrame, error) {
	return DecodePatchesFrom(NewDecoder(data))
}

// DecodePatchesFrom decodes a patches frame from a decoder.
func DecodePatchesFrom(d *Decoder) (*PatchesFrame, error) {
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}

	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}

	patches := make([]Patch, count)
	for i := range patches {
		if err := decodePatch(d, &patches[i]); err != nil {
			return nil, err
		}
	}

	return &PatchesFrame{
		Seq:     seq,
		Patches: patches,
	}, nil
}

func decodePatch(d *Decoder, p *Patch) error {
	opByte, err := d.ReadByte()
	if err != nil {
		return err
	}
	p.Op = PatchOp(opByte)

	p.HID, err = d.ReadString()
	if err != nil {
		return err
	}

	switch p.Op {
	case PatchSetText:
		p.Value, err = d.ReadString()

	case PatchScrollTo:
		var x, y int64
		x, err = d.ReadSvarint()
		if err != nil {
			return err
		}
		y, err = d.ReadSvarint()
		if err != nil {
			return err
		}
		p.X = int(x)
		p.Y = int(y)
		var beh byte
		beh, err = d.ReadByte()
		p.Behavior = ScrollBehavior(beh)

	case PatchSetStyle:
		p.Key, err = d.ReadString()
		if err != nil {
			return err
		}
		p.Value, err = d.ReadString()

	case PatchRemoveStyle:
		p.Key, err = d.ReadString()

	default:
		return fmt.Errorf("protocol: unknown patch op 0x%02x", opByte)
	}

	return err
}
