// Package transport moves length-prefixed Minecraft frames over a byte
// stream, with optional zlib compression and AES/CFB8 encryption.
package transport

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol/wire"
)

// MaxFrameSize caps both the wire length and the uncompressed length of a
// frame.
const MaxFrameSize = 1 << 21

// CompressionDisabled is the threshold of a connection that has not seen
// SetCompression.
const CompressionDisabled = -1

// ReadFrame reads one frame and returns its payload (packet id followed by
// fields). threshold is CompressionDisabled or the negotiated threshold.
func ReadFrame(r io.Reader, threshold int) ([]byte, error) {
	frame, err := readBody(r)
	if err != nil {
		return nil, err
	}
	return unwrap(frame, threshold)
}

// readBody reads the length prefix and the bytes it covers.
func readBody(r io.Reader) ([]byte, error) {
	length, _, err := wire.ReadVarIntFrom(r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read frame length: %w", err)
	}
	if length < 1 {
		return nil, fmt.Errorf("frame length %d: %w", length, wire.ErrInvariantViolation)
	}
	if length > MaxFrameSize {
		return nil, fmt.Errorf("frame too large: %d bytes: %w", length, wire.ErrInvariantViolation)
	}

	frame := make([]byte, length)
	if _, err := io.ReadFull(r, frame); err != nil {
		return nil, fmt.Errorf("read frame payload: %w", unexpectedEOF(err))
	}
	return frame, nil
}

func unwrap(frame []byte, threshold int) ([]byte, error) {
	if threshold < 0 {
		return frame, nil
	}
	return decompress(frame, threshold)
}

func decompress(frame []byte, threshold int) ([]byte, error) {
	br := bytes.NewReader(frame)
	dataLength, _, err := wire.ReadVarIntFrom(br)
	if err != nil {
		return nil, fmt.Errorf("read data length: %w", unexpectedEOF(err))
	}
	if dataLength == 0 {
		return frame[len(frame)-br.Len():], nil
	}
	if dataLength < 0 || dataLength > MaxFrameSize {
		return nil, fmt.Errorf("data length %d: %w", dataLength, wire.ErrInvariantViolation)
	}
	if int(dataLength) < threshold {
		return nil, fmt.Errorf("compressed frame of %d bytes below threshold %d: %w", dataLength, threshold, wire.ErrInvariantViolation)
	}

	zr, err := zlib.NewReader(br)
	if err != nil {
		return nil, fmt.Errorf("open zlib stream: %w", err)
	}
	defer zr.Close()

	payload := make([]byte, dataLength)
	if _, err := io.ReadFull(zr, payload); err != nil {
		return nil, fmt.Errorf("inflate frame: %w", unexpectedEOF(err))
	}
	return payload, nil
}

// WriteFrame writes payload as one frame in a single Write call.
func WriteFrame(w io.Writer, payload []byte, threshold int) error {
	body := payload
	if threshold >= 0 {
		var err error
		if body, err = compress(payload, threshold); err != nil {
			return err
		}
	}
	if len(body) > MaxFrameSize {
		return fmt.Errorf("frame too large: %d bytes: %w", len(body), wire.ErrInvariantViolation)
	}

	var buf bytes.Buffer
	buf.Grow(wire.VarIntSize(int32(len(body))) + len(body))
	if _, err := wire.WriteVarIntTo(&buf, int32(len(body))); err != nil {
		return fmt.Errorf("write frame length: %w", err)
	}
	buf.Write(body)

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("flush frame: %w", err)
	}
	return nil
}

func compress(payload []byte, threshold int) ([]byte, error) {
	var buf bytes.Buffer
	if len(payload) < threshold {
		_, _ = wire.WriteVarIntTo(&buf, 0)
		buf.Write(payload)
		return buf.Bytes(), nil
	}

	_, _ = wire.WriteVarIntTo(&buf, int32(len(payload)))
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(payload); err != nil {
		return nil, fmt.Errorf("deflate frame: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("deflate frame: %w", err)
	}
	return buf.Bytes(), nil
}

func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return wire.ErrUnexpectedEndOfStream
	}
	return err
}
