package nbt

import (
	"encoding/binary"
	"io"
	"math"
)

// Writer writes NBT binary data to an io.Writer in big-endian format.
// Errors are sticky; call Err() after writing.
type Writer struct {
	w   io.Writer
	err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Err returns the first error encountered during writing.
func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) write(data []byte) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.Write(data)
}

func (w *Writer) putByte(v byte) {
	w.write([]byte{v})
}

func (w *Writer) putUint16(v uint16) {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	w.write(buf[:])
}

func (w *Writer) putInt32(v int32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(v))
	w.write(buf[:])
}

func (w *Writer) putInt64(v int64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	w.write(buf[:])
}

func (w *Writer) writeTagHeader(tagType byte, name string) {
	w.putByte(tagType)
	w.putUint16(uint16(len(name)))
	w.write([]byte(name))
}

// BeginCompound writes a compound tag header.
func (w *Writer) BeginCompound(name string) {
	w.writeTagHeader(TagCompound, name)
}

// End closes the innermost compound. A lone End also encodes "no tag".
func (w *Writer) End() {
	w.putByte(TagEnd)
}

func (w *Writer) Byte(name string, v int8) {
	w.writeTagHeader(TagByte, name)
	w.putByte(byte(v))
}

func (w *Writer) Short(name string, v int16) {
	w.writeTagHeader(TagShort, name)
	w.putUint16(uint16(v))
}

func (w *Writer) Int(name string, v int32) {
	w.writeTagHeader(TagInt, name)
	w.putInt32(v)
}

func (w *Writer) Long(name string, v int64) {
	w.writeTagHeader(TagLong, name)
	w.putInt64(v)
}

func (w *Writer) Double(name string, v float64) {
	w.writeTagHeader(TagDouble, name)
	w.putInt64(int64(math.Float64bits(v)))
}

func (w *Writer) String(name, v string) {
	w.writeTagHeader(TagString, name)
	w.putUint16(uint16(len(v)))
	w.write([]byte(v))
}

func (w *Writer) ByteArray(name string, v []byte) {
	w.writeTagHeader(TagByteArray, name)
	w.putInt32(int32(len(v)))
	w.write(v)
}

func (w *Writer) IntArray(name string, v []int32) {
	w.writeTagHeader(TagIntArray, name)
	w.putInt32(int32(len(v)))
	for _, val := range v {
		w.putInt32(val)
	}
}

// BeginList writes a list header. The caller then writes count payloads
// of elemType without headers, e.g. via ListString or nested compounds
// closed with End.
func (w *Writer) BeginList(name string, elemType byte, count int32) {
	w.writeTagHeader(TagList, name)
	w.putByte(elemType)
	w.putInt32(count)
}

// ListString writes a bare string payload inside a TagString list.
func (w *Writer) ListString(v string) {
	w.putUint16(uint16(len(v)))
	w.write([]byte(v))
}
