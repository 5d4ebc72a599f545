package wire

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxStringBytes bounds the byte length of a protocol string
// (32767 UTF-16 units, at most four bytes each).
const MaxStringBytes = 32767 * 4

// LengthPrefix selects the integer encoding used in front of a byte block
// or an array count.
type LengthPrefix int

const (
	PrefixVarInt LengthPrefix = iota
	PrefixInt16
	PrefixInt32
)

// Reader is a cursor over the bytes of a single frame. It never reads past
// the end of its buffer and never blocks.
type Reader struct {
	buf []byte
	off int
}

func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.off
}

func (r *Reader) ReadByte() (byte, error) {
	if r.off >= len(r.buf) {
		return 0, ErrUnexpectedEndOfStream
	}
	b := r.buf[r.off]
	r.off++
	return b, nil
}

// Peek returns the next n bytes without consuming them.
func (r *Reader) Peek(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, ErrUnexpectedEndOfStream
	}
	return r.buf[r.off : r.off+n], nil
}

// ReadBytes consumes n bytes and returns a copy of them.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("byte count %d: %w", n, ErrInvariantViolation)
	}
	if r.Remaining() < n {
		return nil, fmt.Errorf("need %d bytes, have %d: %w", n, r.Remaining(), ErrUnexpectedEndOfStream)
	}
	if n == 0 {
		return nil, nil
	}
	out := make([]byte, n)
	copy(out, r.buf[r.off:r.off+n])
	r.off += n
	return out, nil
}

// ReadRest consumes every remaining byte of the frame.
func (r *Reader) ReadRest() []byte {
	out, _ := r.ReadBytes(r.Remaining())
	return out
}

func (r *Reader) fixed(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, ErrUnexpectedEndOfStream
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *Reader) ReadU8() (uint8, error) {
	return r.ReadByte()
}

func (r *Reader) ReadI8() (int8, error) {
	b, err := r.ReadByte()
	return int8(b), err
}

func (r *Reader) ReadBool() (bool, error) {
	b, err := r.ReadByte()
	return b != 0, err
}

func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.fixed(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *Reader) ReadI16() (int16, error) {
	v, err := r.ReadU16()
	return int16(v), err
}

func (r *Reader) ReadI32() (int32, error) {
	b, err := r.fixed(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

func (r *Reader) ReadI64() (int64, error) {
	b, err := r.fixed(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

func (r *Reader) ReadU64() (uint64, error) {
	v, err := r.ReadI64()
	return uint64(v), err
}

func (r *Reader) ReadF32() (float32, error) {
	b, err := r.fixed(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.BigEndian.Uint32(b)), nil
}

func (r *Reader) ReadF64() (float64, error) {
	b, err := r.fixed(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
}

func (r *Reader) ReadVarInt() (int32, error) {
	return decodeVarInt(r.ReadByte)
}

func (r *Reader) ReadVarLong() (int64, error) {
	return decodeVarLong(r.ReadByte)
}

func (r *Reader) ReadString() (string, error) {
	length, err := r.ReadVarInt()
	if err != nil {
		return "", fmt.Errorf("read string length: %w", err)
	}
	if length < 0 || length > MaxStringBytes {
		return "", fmt.Errorf("string length %d: %w", length, ErrInvariantViolation)
	}
	b, err := r.ReadBytes(int(length))
	if err != nil {
		return "", fmt.Errorf("read string data: %w", err)
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("read string data: %w", ErrInvalidEncoding)
	}
	return string(b), nil
}

func (r *Reader) ReadPosition() (Position, error) {
	v, err := r.ReadI64()
	if err != nil {
		return Position{}, err
	}
	return UnpackPosition(v), nil
}

func (r *Reader) ReadUUID() (uuid.UUID, error) {
	var id uuid.UUID
	b, err := r.fixed(16)
	if err != nil {
		return id, err
	}
	copy(id[:], b)
	return id, nil
}

// ReadCount reads an array or byte-block length using the given prefix.
// Negative counts are rejected.
func (r *Reader) ReadCount(prefix LengthPrefix) (int, error) {
	var n int
	switch prefix {
	case PrefixVarInt:
		v, err := r.ReadVarInt()
		if err != nil {
			return 0, err
		}
		n = int(v)
	case PrefixInt16:
		v, err := r.ReadI16()
		if err != nil {
			return 0, err
		}
		n = int(v)
	case PrefixInt32:
		v, err := r.ReadI32()
		if err != nil {
			return 0, err
		}
		n = int(v)
	default:
		return 0, fmt.Errorf("length prefix %d: %w", prefix, ErrInvariantViolation)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative length %d: %w", n, ErrInvariantViolation)
	}
	return n, nil
}

// ReadPrefixedBytes reads a length-prefixed byte block.
func (r *Reader) ReadPrefixedBytes(prefix LengthPrefix) ([]byte, error) {
	n, err := r.ReadCount(prefix)
	if err != nil {
		return nil, fmt.Errorf("read byte array length: %w", err)
	}
	b, err := r.ReadBytes(n)
	if err != nil {
		return nil, fmt.Errorf("read byte array data: %w", err)
	}
	return b, nil
}

// ReadArray reads a counted array, decoding each element with read. An
// empty array decodes to nil.
func ReadArray[T any](r *Reader, prefix LengthPrefix, read func(*Reader) (T, error)) ([]T, error) {
	n, err := r.ReadCount(prefix)
	if err != nil {
		return nil, fmt.Errorf("read array length: %w", err)
	}
	// Every element is at least one byte wide.
	if n > r.Remaining() {
		return nil, fmt.Errorf("array length %d exceeds frame: %w", n, ErrUnexpectedEndOfStream)
	}
	if n == 0 {
		return nil, nil
	}
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		v, err := read(r)
		if err != nil {
			return nil, fmt.Errorf("read array element %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}
