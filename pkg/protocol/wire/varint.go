package wire

import (
	"fmt"
	"io"
)

const (
	maxVarIntLen  = 5
	maxVarLongLen = 10
)

// ReadVarIntFrom reads a VarInt from a blocking stream. It is used by the
// framing layer to read length prefixes before a frame is available.
func ReadVarIntFrom(r io.Reader) (int32, int, error) {
	var result uint32
	var numRead int
	var buf [1]byte

	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			if err == io.ErrUnexpectedEOF || (err == io.EOF && numRead > 0) {
				err = ErrUnexpectedEndOfStream
			}
			return 0, numRead, err
		}
		result |= uint32(buf[0]&0x7F) << (7 * numRead)
		numRead++

		if buf[0]&0x80 == 0 {
			break
		}
		if numRead >= maxVarIntLen {
			return 0, numRead, ErrMalformedVarInt
		}
	}

	return int32(result), numRead, nil
}

// WriteVarIntTo writes a VarInt to w.
func WriteVarIntTo(w io.Writer, value int32) (int, error) {
	var buf [maxVarIntLen]byte
	n := PutVarInt(buf[:], value)
	return w.Write(buf[:n])
}

// PutVarInt encodes value into buf and returns the number of bytes written.
// buf must hold at least 5 bytes.
func PutVarInt(buf []byte, value int32) int {
	val := uint32(value)
	n := 0
	for {
		b := byte(val & 0x7F)
		val >>= 7
		if val != 0 {
			b |= 0x80
		}
		buf[n] = b
		n++
		if val == 0 {
			break
		}
	}
	return n
}

func putVarLong(buf []byte, value int64) int {
	val := uint64(value)
	n := 0
	for {
		b := byte(val & 0x7F)
		val >>= 7
		if val != 0 {
			b |= 0x80
		}
		buf[n] = b
		n++
		if val == 0 {
			break
		}
	}
	return n
}

// VarIntSize returns the encoded length of value.
func VarIntSize(value int32) int {
	val := uint32(value)
	size := 0
	for {
		size++
		val >>= 7
		if val == 0 {
			break
		}
	}
	return size
}

// VarLongSize returns the encoded length of value.
func VarLongSize(value int64) int {
	val := uint64(value)
	size := 0
	for {
		size++
		val >>= 7
		if val == 0 {
			break
		}
	}
	return size
}

func decodeVarInt(next func() (byte, error)) (int32, error) {
	var result uint32
	for i := 0; ; i++ {
		if i >= maxVarIntLen {
			return 0, ErrMalformedVarInt
		}
		b, err := next()
		if err != nil {
			return 0, fmt.Errorf("read varint: %w", err)
		}
		result |= uint32(b&0x7F) << (7 * i)
		if b&0x80 == 0 {
			return int32(result), nil
		}
	}
}

func decodeVarLong(next func() (byte, error)) (int64, error) {
	var result uint64
	for i := 0; ; i++ {
		if i >= maxVarLongLen {
			return 0, ErrMalformedVarLong
		}
		b, err := next()
		if err != nil {
			return 0, fmt.Errorf("read varlong: %w", err)
		}
		result |= uint64(b&0x7F) << (7 * i)
		if b&0x80 == 0 {
			return int64(result), nil
		}
	}
}
