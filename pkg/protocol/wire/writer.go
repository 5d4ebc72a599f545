package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Writer accumulates the encoded bytes of a single frame.
type Writer struct {
	buf bytes.Buffer
}

func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the encoded bytes. The slice aliases the writer's buffer.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

func (w *Writer) Len() int {
	return w.buf.Len()
}

func (w *Writer) Reset() {
	w.buf.Reset()
}

func (w *Writer) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func (w *Writer) WriteByte(b byte) error {
	return w.buf.WriteByte(b)
}

func (w *Writer) WriteBytes(p []byte) {
	w.buf.Write(p)
}

func (w *Writer) WriteU8(v uint8) {
	w.buf.WriteByte(v)
}

func (w *Writer) WriteI8(v int8) {
	w.buf.WriteByte(byte(v))
}

func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf.WriteByte(1)
		return
	}
	w.buf.WriteByte(0)
}

func (w *Writer) WriteU16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) WriteI16(v int16) {
	w.WriteU16(uint16(v))
}

func (w *Writer) WriteI32(v int32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	w.buf.Write(b[:])
}

func (w *Writer) WriteI64(v int64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	w.buf.Write(b[:])
}

func (w *Writer) WriteU64(v uint64) {
	w.WriteI64(int64(v))
}

func (w *Writer) WriteF32(v float32) {
	w.WriteI32(int32(math.Float32bits(v)))
}

func (w *Writer) WriteF64(v float64) {
	w.WriteI64(int64(math.Float64bits(v)))
}

func (w *Writer) WriteVarInt(v int32) {
	var b [maxVarIntLen]byte
	n := PutVarInt(b[:], v)
	w.buf.Write(b[:n])
}

func (w *Writer) WriteVarLong(v int64) {
	var b [maxVarLongLen]byte
	n := putVarLong(b[:], v)
	w.buf.Write(b[:n])
}

// WriteString writes s with a VarInt byte-length prefix. Strings that are
// not valid UTF-8 or exceed MaxStringBytes are rejected.
func (w *Writer) WriteString(s string) error {
	if len(s) > MaxStringBytes {
		return fmt.Errorf("string length %d: %w", len(s), ErrInvariantViolation)
	}
	if !utf8.ValidString(s) {
		return fmt.Errorf("write string: %w", ErrInvalidEncoding)
	}
	w.WriteVarInt(int32(len(s)))
	w.buf.WriteString(s)
	return nil
}

func (w *Writer) WritePosition(p Position) {
	w.WriteI64(p.Pack())
}

func (w *Writer) WriteUUID(id uuid.UUID) {
	w.buf.Write(id[:])
}

// WriteCount writes an array or byte-block length using the given prefix.
func (w *Writer) WriteCount(prefix LengthPrefix, n int) error {
	switch prefix {
	case PrefixVarInt:
		if n > math.MaxInt32 {
			return fmt.Errorf("length %d: %w", n, ErrInvariantViolation)
		}
		w.WriteVarInt(int32(n))
	case PrefixInt16:
		if n > math.MaxInt16 {
			return fmt.Errorf("length %d does not fit int16: %w", n, ErrInvariantViolation)
		}
		w.WriteI16(int16(n))
	case PrefixInt32:
		if n > math.MaxInt32 {
			return fmt.Errorf("length %d: %w", n, ErrInvariantViolation)
		}
		w.WriteI32(int32(n))
	default:
		return fmt.Errorf("length prefix %d: %w", prefix, ErrInvariantViolation)
	}
	return nil
}

// WritePrefixedBytes writes p preceded by its length.
func (w *Writer) WritePrefixedBytes(prefix LengthPrefix, p []byte) error {
	if err := w.WriteCount(prefix, len(p)); err != nil {
		return err
	}
	w.buf.Write(p)
	return nil
}

// WriteArray writes a counted array, encoding each element with write.
func WriteArray[T any](w *Writer, prefix LengthPrefix, items []T, write func(*Writer, T) error) error {
	if err := w.WriteCount(prefix, len(items)); err != nil {
		return err
	}
	for i, v := range items {
		if err := write(w, v); err != nil {
			return fmt.Errorf("write array element %d: %w", i, err)
		}
	}
	return nil
}
