package protocol

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"

	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol/wire"
)

const tagName = "mc"

// Field is implemented by composite field types (item stacks, metadata)
// that know their own wire layout. Tag such fields with `mc:"field"`.
type Field interface {
	DecodeField(r *wire.Reader) error
	EncodeField(w *wire.Writer) error
}

var (
	fieldType    = reflect.TypeOf((*Field)(nil)).Elem()
	uuidType     = reflect.TypeOf((*uuid.UUID)(nil)).Elem()
	positionType = reflect.TypeOf((*wire.Position)(nil)).Elem()
)

// Marshal encodes the mc-tagged fields of the struct pointed to by v, in
// declaration order.
func Marshal(w *wire.Writer, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("marshal: expected struct, got %s", rv.Kind())
	}
	if !rv.CanAddr() {
		// Field types encode through pointer receivers.
		c := reflect.New(rv.Type()).Elem()
		c.Set(rv)
		rv = c
	}

	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get(tagName)
		if tag == "" || tag == "-" {
			continue
		}
		if err := writeField(w, tag, rv.Field(i)); err != nil {
			return fmt.Errorf("marshal field %s: %w", field.Name, err)
		}
	}
	return nil
}

// Unmarshal decodes mc-tagged fields from r into the struct pointed to by v.
func Unmarshal(r *wire.Reader, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("unmarshal: expected non-nil pointer, got %T", v)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("unmarshal: expected pointer to struct, got pointer to %s", rv.Kind())
	}

	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get(tagName)
		if tag == "" || tag == "-" {
			continue
		}
		if err := readField(r, tag, rv.Field(i)); err != nil {
			return fmt.Errorf("unmarshal field %s: %w", field.Name, err)
		}
	}
	return nil
}

func checkKind(fv reflect.Value, tag string, kinds ...reflect.Kind) error {
	for _, k := range kinds {
		if fv.Kind() == k {
			return nil
		}
	}
	return fmt.Errorf("tag %q does not fit %s", tag, fv.Type())
}

func writeField(w *wire.Writer, tag string, fv reflect.Value) error {
	switch tag {
	case "varint", "varlong", "i8", "i16", "i32", "i64":
		if err := checkKind(fv, tag, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int); err != nil {
			return err
		}
		v := fv.Int()
		switch tag {
		case "varint":
			w.WriteVarInt(int32(v))
		case "varlong":
			w.WriteVarLong(v)
		case "i8":
			w.WriteI8(int8(v))
		case "i16":
			w.WriteI16(int16(v))
		case "i32":
			w.WriteI32(int32(v))
		case "i64":
			w.WriteI64(v)
		}
	case "u8", "u16", "u64":
		if err := checkKind(fv, tag, reflect.Uint8, reflect.Uint16, reflect.Uint64); err != nil {
			return err
		}
		v := fv.Uint()
		switch tag {
		case "u8":
			w.WriteU8(uint8(v))
		case "u16":
			w.WriteU16(uint16(v))
		case "u64":
			w.WriteU64(v)
		}
	case "f32":
		if err := checkKind(fv, tag, reflect.Float32); err != nil {
			return err
		}
		w.WriteF32(float32(fv.Float()))
	case "f64":
		if err := checkKind(fv, tag, reflect.Float64); err != nil {
			return err
		}
		w.WriteF64(fv.Float())
	case "bool":
		if err := checkKind(fv, tag, reflect.Bool); err != nil {
			return err
		}
		w.WriteBool(fv.Bool())
	case "string":
		if err := checkKind(fv, tag, reflect.String); err != nil {
			return err
		}
		return w.WriteString(fv.String())
	case "position":
		if fv.Type() != positionType {
			return fmt.Errorf("tag %q does not fit %s", tag, fv.Type())
		}
		w.WritePosition(fv.Interface().(wire.Position))
	case "uuid":
		if fv.Type() != uuidType {
			return fmt.Errorf("tag %q does not fit %s", tag, fv.Type())
		}
		w.WriteUUID(fv.Interface().(uuid.UUID))
	case "rest":
		w.WriteBytes(fv.Bytes())
	case "bytes:varint":
		return w.WritePrefixedBytes(wire.PrefixVarInt, fv.Bytes())
	case "bytes:i16":
		return w.WritePrefixedBytes(wire.PrefixInt16, fv.Bytes())
	case "bytes:i32":
		return w.WritePrefixedBytes(wire.PrefixInt32, fv.Bytes())
	case "field":
		f, ok := fieldValue(fv)
		if !ok {
			return fmt.Errorf("tag %q requires a Field, got %s", tag, fv.Type())
		}
		return f.EncodeField(w)
	default:
		return fmt.Errorf("unknown field tag: %q", tag)
	}
	return nil
}

func readField(r *wire.Reader, tag string, fv reflect.Value) error {
	switch tag {
	case "varint", "varlong", "i8", "i16", "i32", "i64":
		if err := checkKind(fv, tag, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int); err != nil {
			return err
		}
		var (
			v   int64
			err error
		)
		switch tag {
		case "varint":
			var x int32
			x, err = r.ReadVarInt()
			v = int64(x)
		case "varlong":
			v, err = r.ReadVarLong()
		case "i8":
			var x int8
			x, err = r.ReadI8()
			v = int64(x)
		case "i16":
			var x int16
			x, err = r.ReadI16()
			v = int64(x)
		case "i32":
			var x int32
			x, err = r.ReadI32()
			v = int64(x)
		case "i64":
			v, err = r.ReadI64()
		}
		if err != nil {
			return err
		}
		fv.SetInt(v)
	case "u8", "u16", "u64":
		if err := checkKind(fv, tag, reflect.Uint8, reflect.Uint16, reflect.Uint64); err != nil {
			return err
		}
		var (
			v   uint64
			err error
		)
		switch tag {
		case "u8":
			var x uint8
			x, err = r.ReadU8()
			v = uint64(x)
		case "u16":
			var x uint16
			x, err = r.ReadU16()
			v = uint64(x)
		case "u64":
			v, err = r.ReadU64()
		}
		if err != nil {
			return err
		}
		fv.SetUint(v)
	case "f32":
		if err := checkKind(fv, tag, reflect.Float32); err != nil {
			return err
		}
		v, err := r.ReadF32()
		if err != nil {
			return err
		}
		fv.SetFloat(float64(v))
	case "f64":
		if err := checkKind(fv, tag, reflect.Float64); err != nil {
			return err
		}
		v, err := r.ReadF64()
		if err != nil {
			return err
		}
		fv.SetFloat(v)
	case "bool":
		if err := checkKind(fv, tag, reflect.Bool); err != nil {
			return err
		}
		v, err := r.ReadBool()
		if err != nil {
			return err
		}
		fv.SetBool(v)
	case "string":
		if err := checkKind(fv, tag, reflect.String); err != nil {
			return err
		}
		v, err := r.ReadString()
		if err != nil {
			return err
		}
		fv.SetString(v)
	case "position":
		if fv.Type() != positionType {
			return fmt.Errorf("tag %q does not fit %s", tag, fv.Type())
		}
		v, err := r.ReadPosition()
		if err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(v))
	case "uuid":
		if fv.Type() != uuidType {
			return fmt.Errorf("tag %q does not fit %s", tag, fv.Type())
		}
		v, err := r.ReadUUID()
		if err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(v))
	case "rest":
		fv.SetBytes(r.ReadRest())
	case "bytes:varint", "bytes:i16", "bytes:i32":
		prefix := map[string]wire.LengthPrefix{
			"bytes:varint": wire.PrefixVarInt,
			"bytes:i16":    wire.PrefixInt16,
			"bytes:i32":    wire.PrefixInt32,
		}[tag]
		v, err := r.ReadPrefixedBytes(prefix)
		if err != nil {
			return err
		}
		fv.SetBytes(v)
	case "field":
		f, ok := fieldValue(fv)
		if !ok {
			return fmt.Errorf("tag %q requires a Field, got %s", tag, fv.Type())
		}
		return f.DecodeField(r)
	default:
		return fmt.Errorf("unknown field tag: %q", tag)
	}
	return nil
}

// fieldValue returns the Field implementation for fv, addressing it when
// the pointer receiver implements the interface.
func fieldValue(fv reflect.Value) (Field, bool) {
	if fv.Kind() == reflect.Ptr {
		if fv.IsNil() {
			fv.Set(reflect.New(fv.Type().Elem()))
		}
		f, ok := fv.Interface().(Field)
		return f, ok
	}
	if fv.CanAddr() && reflect.PointerTo(fv.Type()).Implements(fieldType) {
		return fv.Addr().Interface().(Field), true
	}
	return nil, false
}
