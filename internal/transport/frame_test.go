package transport

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol/wire"
)

func TestFrameRoundTrip(t *testing.T) {
	big := bytes.Repeat([]byte("chunk"), 200)

	tests := []struct {
		name      string
		payload   []byte
		threshold int
	}{
		{"uncompressed", []byte{0x00, 0x2A}, CompressionDisabled},
		{"below threshold", []byte{0x03, 0x01, 0x02}, 256},
		{"at threshold", bytes.Repeat([]byte{7}, 256), 256},
		{"large compressed", big, 64},
		{"threshold zero", []byte{0x01}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteFrame(&buf, tt.payload, tt.threshold); err != nil {
				t.Fatalf("WriteFrame: %v", err)
			}
			got, err := ReadFrame(&buf, tt.threshold)
			if err != nil {
				t.Fatalf("ReadFrame: %v", err)
			}
			if !bytes.Equal(got, tt.payload) {
				t.Errorf("payload mismatch: got %d bytes, want %d", len(got), len(tt.payload))
			}
			if buf.Len() != 0 {
				t.Errorf("%d bytes left in stream", buf.Len())
			}
		})
	}
}

func TestFrameLayout(t *testing.T) {
	tests := []struct {
		name      string
		payload   []byte
		threshold int
		want      []byte
	}{
		{"plain", []byte{0x00, 0x2A}, CompressionDisabled, []byte{0x02, 0x00, 0x2A}},
		{"uncompressed marker", []byte{0x00, 0x2A}, 256, []byte{0x03, 0x00, 0x00, 0x2A}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteFrame(&buf, tt.payload, tt.threshold); err != nil {
				t.Fatalf("WriteFrame: %v", err)
			}
			if !bytes.Equal(buf.Bytes(), tt.want) {
				t.Errorf("frame = % x, want % x", buf.Bytes(), tt.want)
			}
		})
	}
}

func TestCompressedFrameShrinks(t *testing.T) {
	payload := bytes.Repeat([]byte{0}, 4096)
	var buf bytes.Buffer
	if err := WriteFrame(&buf, payload, 256); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	if buf.Len() >= len(payload) {
		t.Errorf("compressed frame is %d bytes for %d byte payload", buf.Len(), len(payload))
	}
}

func TestReadFrameErrors(t *testing.T) {
	tests := []struct {
		name      string
		stream    []byte
		threshold int
		want      error
	}{
		{"zero length", []byte{0x00}, CompressionDisabled, wire.ErrInvariantViolation},
		{"too large", []byte{0x81, 0x80, 0x80, 0x01}, CompressionDisabled, wire.ErrInvariantViolation},
		{"truncated payload", []byte{0x05, 0x01, 0x02}, CompressionDisabled, wire.ErrUnexpectedEndOfStream},
		{"truncated length", []byte{0x80}, CompressionDisabled, wire.ErrUnexpectedEndOfStream},
		{"malformed length", []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01}, CompressionDisabled, wire.ErrMalformedVarInt},
		{"short compressed frame", []byte{0x02, 0x05, 0x00}, 8, wire.ErrInvariantViolation},
		{"clean close", nil, CompressionDisabled, io.EOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadFrame(bytes.NewReader(tt.stream), tt.threshold)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}
