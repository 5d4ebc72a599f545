package protocol

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol/wire"
)

type gameMode uint8

type testPacket struct {
	EntityID    int32    `mc:"i32"`
	GameMode    gameMode `mc:"u8"`
	Dimension   int8     `mc:"i8"`
	Difficulty  uint8    `mc:"u8"`
	MaxPlayers  uint8    `mc:"u8"`
	LevelType   string   `mc:"string"`
	ReducedInfo bool     `mc:"bool"`
	Ignored     int      `mc:"-"`
}

func TestMarshalUnmarshal(t *testing.T) {
	original := &testPacket{
		EntityID:   42,
		GameMode:   1,
		Difficulty: 1,
		MaxPlayers: 20,
		LevelType:  "flat",
	}

	w := wire.NewWriter()
	if err := Marshal(w, original); err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	decoded := &testPacket{}
	if err := Unmarshal(wire.NewReader(w.Bytes()), decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if *original != *decoded {
		t.Errorf("round-trip mismatch:\n  got  %+v\n  want %+v", decoded, original)
	}
}

type testVarIntPacket struct {
	ProtocolVersion int32  `mc:"varint"`
	ServerAddress   string `mc:"string"`
	ServerPort      uint16 `mc:"u16"`
	NextState       int32  `mc:"varint"`
}

func TestMarshalVarIntLayout(t *testing.T) {
	p := &testVarIntPacket{ProtocolVersion: 47, ServerAddress: "localhost", ServerPort: 25565, NextState: 2}

	w := wire.NewWriter()
	if err := Marshal(w, p); err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	want := []byte{0x2F, 0x09, 'l', 'o', 'c', 'a', 'l', 'h', 'o', 's', 't', 0x63, 0xDD, 0x02}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("Marshal = %x, want %x", w.Bytes(), want)
	}
}

type testBlobPacket struct {
	ID       uuid.UUID     `mc:"uuid"`
	Location wire.Position `mc:"position"`
	Short    []byte        `mc:"bytes:i16"`
	Data     []byte        `mc:"rest"`
}

func TestMarshalBlobs(t *testing.T) {
	original := &testBlobPacket{
		ID:       uuid.MustParse("069a79f4-44e9-4726-a5be-fca90e38aaf5"),
		Location: wire.Position{X: -10, Y: 70, Z: 300},
		Short:    []byte{1, 2},
		Data:     []byte{0xDE, 0xAD, 0xBE, 0xEF},
	}

	w := wire.NewWriter()
	if err := Marshal(w, original); err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	decoded := &testBlobPacket{}
	if err := Unmarshal(wire.NewReader(w.Bytes()), decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.ID != original.ID || decoded.Location != original.Location {
		t.Errorf("decoded = %+v, want %+v", decoded, original)
	}
	if !bytes.Equal(decoded.Short, original.Short) || !bytes.Equal(decoded.Data, original.Data) {
		t.Errorf("decoded blobs = %x %x, want %x %x", decoded.Short, decoded.Data, original.Short, original.Data)
	}
}

type countedField struct {
	Values []int16
}

func (c *countedField) DecodeField(r *wire.Reader) error {
	v, err := wire.ReadArray(r, wire.PrefixVarInt, (*wire.Reader).ReadI16)
	c.Values = v
	return err
}

func (c *countedField) EncodeField(w *wire.Writer) error {
	return wire.WriteArray(w, wire.PrefixVarInt, c.Values, func(w *wire.Writer, v int16) error {
		w.WriteI16(v)
		return nil
	})
}

type testFieldPacket struct {
	Before int8         `mc:"i8"`
	Inner  countedField `mc:"field"`
	After  int8         `mc:"i8"`
}

func TestMarshalField(t *testing.T) {
	original := &testFieldPacket{Before: 1, Inner: countedField{Values: []int16{7, -7}}, After: 2}

	w := wire.NewWriter()
	if err := Marshal(w, original); err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	decoded := &testFieldPacket{}
	if err := Unmarshal(wire.NewReader(w.Bytes()), decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Before != 1 || decoded.After != 2 || len(decoded.Inner.Values) != 2 || decoded.Inner.Values[1] != -7 {
		t.Errorf("decoded = %+v, want %+v", decoded, original)
	}
}

func TestUnmarshalTruncated(t *testing.T) {
	err := Unmarshal(wire.NewReader([]byte{0x2F, 0x09, 'l'}), &testVarIntPacket{})
	if !errors.Is(err, ErrUnexpectedEndOfStream) {
		t.Errorf("Unmarshal error = %v, want ErrUnexpectedEndOfStream", err)
	}
}

type badTagPacket struct {
	Name string `mc:"varint"`
}

func TestMarshalTagMismatch(t *testing.T) {
	if err := Marshal(wire.NewWriter(), &badTagPacket{Name: "x"}); err == nil {
		t.Error("Marshal accepted a varint tag on a string field")
	}
}

func TestModeFromNextState(t *testing.T) {
	tests := []struct {
		name    string
		next    int32
		want    Mode
		wantErr bool
	}{
		{"status", 1, ModeStatus, false},
		{"login", 2, ModeLogin, false},
		{"zero", 0, 0, true},
		{"play", 3, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ModeFromNextState(tt.next)
			if tt.wantErr {
				if !errors.Is(err, ErrInvariantViolation) {
					t.Errorf("ModeFromNextState(%d) error = %v, want ErrInvariantViolation", tt.next, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ModeFromNextState(%d): %v", tt.next, err)
			}
			if got != tt.want {
				t.Errorf("ModeFromNextState(%d) = %s, want %s", tt.next, got, tt.want)
			}
		})
	}
}
