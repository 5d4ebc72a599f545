package packet

import (
	"fmt"

	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol/wire"
)

// MetadataEnd terminates an entity metadata list.
const MetadataEnd byte = 0x7F

// MetadataType identifies the value layout of a metadata entry.
type MetadataType uint8

const (
	MetaByte     MetadataType = 0
	MetaShort    MetadataType = 1
	MetaInt      MetadataType = 2
	MetaFloat    MetadataType = 3
	MetaString   MetadataType = 4
	MetaSlot     MetadataType = 5
	MetaPosition MetadataType = 6
	MetaRotation MetadataType = 7
)

// MetadataEntry is one indexed entity property. Value holds int8, int16,
// int32, float32, string, ItemStack, [3]int32 or [3]float32 according to Type.
type MetadataEntry struct {
	Index uint8
	Type  MetadataType
	Value any
}

// Metadata is an entity metadata list. On the wire each entry starts with
// a header byte (type<<5 | index) and the list ends with 0x7F.
type Metadata []MetadataEntry

// Get returns the entry with the given index.
func (m Metadata) Get(index uint8) (MetadataEntry, bool) {
	for _, e := range m {
		if e.Index == index {
			return e, true
		}
	}
	return MetadataEntry{}, false
}

func (m *Metadata) DecodeField(r *wire.Reader) error {
	var out Metadata
	for {
		header, err := r.ReadU8()
		if err != nil {
			return fmt.Errorf("read metadata header: %w", err)
		}
		if header == MetadataEnd {
			break
		}

		e := MetadataEntry{Index: header & 0x1F, Type: MetadataType(header >> 5)}
		if e.Value, err = readMetadataValue(r, e.Type); err != nil {
			return fmt.Errorf("read metadata index %d: %w", e.Index, err)
		}
		out = append(out, e)
	}
	*m = out
	return nil
}

func readMetadataValue(r *wire.Reader, t MetadataType) (any, error) {
	switch t {
	case MetaByte:
		return r.ReadI8()
	case MetaShort:
		return r.ReadI16()
	case MetaInt:
		return r.ReadI32()
	case MetaFloat:
		return r.ReadF32()
	case MetaString:
		return r.ReadString()
	case MetaSlot:
		return readItemStack(r)
	case MetaPosition:
		var v [3]int32
		for i := range v {
			x, err := r.ReadI32()
			if err != nil {
				return nil, err
			}
			v[i] = x
		}
		return v, nil
	case MetaRotation:
		var v [3]float32
		for i := range v {
			x, err := r.ReadF32()
			if err != nil {
				return nil, err
			}
			v[i] = x
		}
		return v, nil
	default:
		return nil, fmt.Errorf("metadata type %d: %w", t, wire.ErrInvariantViolation)
	}
}

func (m *Metadata) EncodeField(w *wire.Writer) error {
	for _, e := range *m {
		if e.Index > 0x1F {
			return fmt.Errorf("metadata index %d: %w", e.Index, wire.ErrInvariantViolation)
		}
		w.WriteU8(byte(e.Type)<<5 | e.Index)
		if err := writeMetadataValue(w, e); err != nil {
			return fmt.Errorf("write metadata index %d: %w", e.Index, err)
		}
	}
	w.WriteU8(MetadataEnd)
	return nil
}

func writeMetadataValue(w *wire.Writer, e MetadataEntry) error {
	mismatch := fmt.Errorf("metadata type %d with %T value: %w", e.Type, e.Value, wire.ErrInvariantViolation)
	switch e.Type {
	case MetaByte:
		v, ok := e.Value.(int8)
		if !ok {
			return mismatch
		}
		w.WriteI8(v)
	case MetaShort:
		v, ok := e.Value.(int16)
		if !ok {
			return mismatch
		}
		w.WriteI16(v)
	case MetaInt:
		v, ok := e.Value.(int32)
		if !ok {
			return mismatch
		}
		w.WriteI32(v)
	case MetaFloat:
		v, ok := e.Value.(float32)
		if !ok {
			return mismatch
		}
		w.WriteF32(v)
	case MetaString:
		v, ok := e.Value.(string)
		if !ok {
			return mismatch
		}
		return w.WriteString(v)
	case MetaSlot:
		v, ok := e.Value.(ItemStack)
		if !ok {
			return mismatch
		}
		return v.EncodeField(w)
	case MetaPosition:
		v, ok := e.Value.([3]int32)
		if !ok {
			return mismatch
		}
		for _, x := range v {
			w.WriteI32(x)
		}
	case MetaRotation:
		v, ok := e.Value.([3]float32)
		if !ok {
			return mismatch
		}
		for _, x := range v {
			w.WriteF32(x)
		}
	default:
		return mismatch
	}
	return nil
}
