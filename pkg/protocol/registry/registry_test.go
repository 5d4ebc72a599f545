package registry

import (
	"errors"
	"reflect"
	"testing"

	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol"
	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol/packet"
)

var allModes = []protocol.Mode{protocol.ModeHandshake, protocol.ModeStatus, protocol.ModeLogin, protocol.ModePlay}

var bothDirections = []protocol.Direction{protocol.Serverbound, protocol.Clientbound}

func TestInverseConsistency(t *testing.T) {
	for _, mode := range allModes {
		for _, dir := range bothDirections {
			for _, id := range Default[mode].Direction(dir).Sorted() {
				p, err := Resolve(mode, dir, id)
				if err != nil {
					t.Fatalf("%s %s 0x%02X: Resolve: %v", mode, dir, id, err)
				}
				got, err := IDOf(mode, dir, p)
				if err != nil {
					t.Fatalf("%s %s 0x%02X: IDOf: %v", mode, dir, id, err)
				}
				if got != id {
					t.Errorf("%s %s: IDOf(Resolve(0x%02X)) = 0x%02X", mode, dir, id, got)
				}
			}
		}
	}
}

func TestTableSizes(t *testing.T) {
	tests := []struct {
		mode protocol.Mode
		dir  protocol.Direction
		want int
	}{
		{protocol.ModeHandshake, protocol.Serverbound, 1},
		{protocol.ModeHandshake, protocol.Clientbound, 0},
		{protocol.ModeStatus, protocol.Serverbound, 2},
		{protocol.ModeStatus, protocol.Clientbound, 2},
		{protocol.ModeLogin, protocol.Serverbound, 2},
		{protocol.ModeLogin, protocol.Clientbound, 4},
		{protocol.ModePlay, protocol.Serverbound, 0x1A},
		{protocol.ModePlay, protocol.Clientbound, 0x4A},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String()+" "+tt.dir.String(), func(t *testing.T) {
			ids := IDs(tt.mode, tt.dir)
			if ids.Size() != tt.want {
				t.Fatalf("size = %d, want %d", ids.Size(), tt.want)
			}
			for id := int32(0); id < int32(tt.want); id++ {
				if !ids.Has(id) {
					t.Errorf("id 0x%02X missing, table should be dense", id)
				}
			}
		})
	}
}

func TestResolveKnown(t *testing.T) {
	tests := []struct {
		name string
		mode protocol.Mode
		dir  protocol.Direction
		id   int32
		want protocol.Packet
	}{
		{"handshake", protocol.ModeHandshake, protocol.Serverbound, 0x00, &packet.Handshake{}},
		{"login success", protocol.ModeLogin, protocol.Clientbound, 0x02, &packet.LoginSuccess{}},
		{"click window", protocol.ModePlay, protocol.Serverbound, 0x0E, &packet.ClickWindow{}},
		{"held item serverbound", protocol.ModePlay, protocol.Serverbound, 0x09, &packet.HeldItemChange{}},
		{"held item clientbound", protocol.ModePlay, protocol.Clientbound, 0x09, &packet.HeldItemChange{}},
		{"position and look clientbound", protocol.ModePlay, protocol.Clientbound, 0x08, &packet.PlayerPositionAndLook{}},
		{"position and look serverbound", protocol.ModePlay, protocol.Serverbound, 0x06, &packet.PlayerPositionAndLook{}},
		{"tab complete response", protocol.ModePlay, protocol.Clientbound, 0x3A, &packet.TabCompleteResponse{}},
		{"tab complete request", protocol.ModePlay, protocol.Serverbound, 0x14, &packet.TabCompleteRequest{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.mode, tt.dir, tt.id)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if reflect.TypeOf(got) != reflect.TypeOf(tt.want) {
				t.Errorf("Resolve = %T, want %T", got, tt.want)
			}
		})
	}
}

func TestResolveReturnsFreshValue(t *testing.T) {
	a, _ := Resolve(protocol.ModePlay, protocol.Clientbound, 0x00)
	a.(*packet.KeepAlive).KeepAliveID = 9
	b, _ := Resolve(protocol.ModePlay, protocol.Clientbound, 0x00)
	if b.(*packet.KeepAlive).KeepAliveID != 0 {
		t.Error("Resolve returned a shared value")
	}
}

func TestUnknownID(t *testing.T) {
	tests := []struct {
		name     string
		mode     protocol.Mode
		dir      protocol.Direction
		id       int32
		fallback bool
	}{
		{"handshake strict", protocol.ModeHandshake, protocol.Serverbound, 0x01, false},
		{"status strict", protocol.ModeStatus, protocol.Clientbound, 0x05, false},
		{"login strict", protocol.ModeLogin, protocol.Serverbound, 0x02, false},
		{"play clientbound fallback", protocol.ModePlay, protocol.Clientbound, 0x4A, true},
		{"play serverbound fallback", protocol.ModePlay, protocol.Serverbound, 0x7F, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Resolve(tt.mode, tt.dir, tt.id)
			if !tt.fallback {
				if !errors.Is(err, protocol.ErrUnknownPacketId) {
					t.Fatalf("err = %v, want ErrUnknownPacketId", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			u, ok := p.(*packet.Unknown)
			if !ok || u.ID != tt.id {
				t.Fatalf("Resolve = %#v, want Unknown{ID: 0x%02X}", p, tt.id)
			}
			id, err := IDOf(tt.mode, tt.dir, u)
			if err != nil || id != tt.id {
				t.Errorf("IDOf(Unknown) = 0x%02X, %v", id, err)
			}
		})
	}
}

func TestIDOfUnregisteredType(t *testing.T) {
	_, err := IDOf(protocol.ModeStatus, protocol.Serverbound, &packet.ChatMessage{})
	if !errors.Is(err, protocol.ErrUnknownPacketId) {
		t.Errorf("err = %v, want ErrUnknownPacketId", err)
	}
	_, err = IDOf(protocol.ModeLogin, protocol.Serverbound, &packet.Unknown{ID: 5})
	if !errors.Is(err, protocol.ErrUnknownPacketId) {
		t.Errorf("strict Unknown: err = %v, want ErrUnknownPacketId", err)
	}
}

func TestName(t *testing.T) {
	if got := Default.Name(protocol.ModePlay, protocol.Clientbound, 0x38); got != "PlayerListItem" {
		t.Errorf("Name(0x38) = %q, want PlayerListItem", got)
	}
	if got := Default.Name(protocol.ModePlay, protocol.Clientbound, 0x60); got != "" {
		t.Errorf("Name(0x60) = %q, want empty", got)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	r := NewPacketRegistry()
	r.Register(&packet.KeepAlive{}, 0x00)

	defer func() {
		if recover() == nil {
			t.Error("duplicate id did not panic")
		}
	}()
	r.Register(&packet.Player{}, 0x00)
}
