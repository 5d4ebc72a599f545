// Package packet holds one Go type per Minecraft 1.8 (protocol 47) packet
// shape. Flat packets are described by mc struct tags; packets whose layout
// depends on a discriminant or on the direction encode themselves by hand.
package packet

import (
	"fmt"

	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol"
	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol/nbt"
	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol/wire"
)

// GameMode constants.
const (
	GameModeSurvival  uint8 = 0
	GameModeCreative  uint8 = 1
	GameModeAdventure uint8 = 2
	GameModeSpectator uint8 = 3
)

// Dimension constants.
const (
	DimensionNether    int8 = -1
	DimensionOverworld int8 = 0
	DimensionEnd       int8 = 1
)

// Difficulty constants.
const (
	DifficultyPeaceful uint8 = 0
	DifficultyEasy     uint8 = 1
	DifficultyNormal   uint8 = 2
	DifficultyHard     uint8 = 3
)

// PlayerAbility flag bits.
const (
	AbilityInvulnerable int8 = 0x01
	AbilityFlying       int8 = 0x02
	AbilityAllowFlight  int8 = 0x04
	AbilityCreativeMode int8 = 0x08
)

// Unknown carries a packet whose id has no registered shape. The payload is
// kept verbatim so it can be forwarded unchanged.
type Unknown struct {
	ID   int32
	Data []byte
}

func (p *Unknown) Decode(r *wire.Reader, _ protocol.Direction) error {
	p.Data = r.ReadRest()
	return nil
}

func (p *Unknown) Encode(w *wire.Writer, _ protocol.Direction) error {
	w.WriteBytes(p.Data)
	return nil
}

func writeVarInt(w *wire.Writer, v int32) error {
	w.WriteVarInt(v)
	return nil
}

func writeString(w *wire.Writer, s string) error {
	return w.WriteString(s)
}

func readInt3(r *wire.Reader, x, y, z *int32) error {
	for _, dst := range []*int32{x, y, z} {
		v, err := r.ReadI32()
		if err != nil {
			return err
		}
		*dst = v
	}
	return nil
}

func readVelocity(r *wire.Reader, v *Velocity) error {
	for _, dst := range []*int16{&v.X, &v.Y, &v.Z} {
		x, err := r.ReadI16()
		if err != nil {
			return err
		}
		*dst = x
	}
	return nil
}

func writeVelocity(w *wire.Writer, v Velocity) {
	w.WriteI16(v.X)
	w.WriteI16(v.Y)
	w.WriteI16(v.Z)
}

// readNBT returns the raw root tag, or nil when the payload is a lone TagEnd.
func readNBT(r *wire.Reader) ([]byte, error) {
	tag, err := nbt.ReadRaw(r)
	if err != nil {
		return nil, fmt.Errorf("read nbt: %w", err)
	}
	if len(tag) == 1 && tag[0] == nbt.TagEnd {
		return nil, nil
	}
	return tag, nil
}

func writeNBT(w *wire.Writer, tag []byte) {
	if len(tag) == 0 {
		w.WriteU8(nbt.TagEnd)
		return
	}
	w.WriteBytes(tag)
}

func readOptionalString(r *wire.Reader) (*string, error) {
	present, err := r.ReadBool()
	if err != nil || !present {
		return nil, err
	}
	s, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func writeOptionalString(w *wire.Writer, s *string) error {
	w.WriteBool(s != nil)
	if s == nil {
		return nil
	}
	return w.WriteString(*s)
}
