package packet

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol"
	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol/wire"
)

// SpawnPlayer introduces another player to the client (clientbound 0x0C).
// Name and skin data are not part of the packet; they arrive through
// PlayerListItem, which must be sent first.
type SpawnPlayer struct {
	EntityID    int32     `mc:"varint"`
	PlayerUUID  uuid.UUID `mc:"uuid"`
	X           int32     `mc:"i32"`
	Y           int32     `mc:"i32"`
	Z           int32     `mc:"i32"`
	Yaw         int8      `mc:"i8"`
	Pitch       int8      `mc:"i8"`
	CurrentItem int16     `mc:"i16"`
	Metadata    Metadata  `mc:"field"`
}

func (p *SpawnPlayer) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *SpawnPlayer) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// CollectItem plays the pickup animation (clientbound 0x0D).
type CollectItem struct {
	CollectedEntityID int32 `mc:"varint"`
	CollectorEntityID int32 `mc:"varint"`
}

func (p *CollectItem) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *CollectItem) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// Velocity is measured in 1/8000 of a block per tick.
type Velocity struct {
	X, Y, Z int16
}

// SpawnObject spawns a vehicle or other non-living entity (clientbound 0x0E).
// Velocity is on the wire only when Data is non-zero.
type SpawnObject struct {
	EntityID int32
	Type     int8
	X, Y, Z  int32
	Pitch    int8
	Yaw      int8
	Data     int32
	Velocity Velocity
}

func (p *SpawnObject) Decode(r *wire.Reader, _ protocol.Direction) error {
	var err error
	if p.EntityID, err = r.ReadVarInt(); err != nil {
		return err
	}
	if p.Type, err = r.ReadI8(); err != nil {
		return err
	}
	if err := readInt3(r, &p.X, &p.Y, &p.Z); err != nil {
		return err
	}
	if p.Pitch, err = r.ReadI8(); err != nil {
		return err
	}
	if p.Yaw, err = r.ReadI8(); err != nil {
		return err
	}
	if p.Data, err = r.ReadI32(); err != nil {
		return err
	}
	p.Velocity = Velocity{}
	if p.Data != 0 {
		return readVelocity(r, &p.Velocity)
	}
	return nil
}

func (p *SpawnObject) Encode(w *wire.Writer, _ protocol.Direction) error {
	w.WriteVarInt(p.EntityID)
	w.WriteI8(p.Type)
	w.WriteI32(p.X)
	w.WriteI32(p.Y)
	w.WriteI32(p.Z)
	w.WriteI8(p.Pitch)
	w.WriteI8(p.Yaw)
	w.WriteI32(p.Data)
	if p.Data != 0 {
		writeVelocity(w, p.Velocity)
	}
	return nil
}

// SpawnMob spawns a living entity (clientbound 0x0F).
type SpawnMob struct {
	EntityID  int32    `mc:"varint"`
	Type      uint8    `mc:"u8"`
	X         int32    `mc:"i32"`
	Y         int32    `mc:"i32"`
	Z         int32    `mc:"i32"`
	Yaw       int8     `mc:"i8"`
	Pitch     int8     `mc:"i8"`
	HeadPitch int8     `mc:"i8"`
	VelocityX int16    `mc:"i16"`
	VelocityY int16    `mc:"i16"`
	VelocityZ int16    `mc:"i16"`
	Metadata  Metadata `mc:"field"`
}

func (p *SpawnMob) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *SpawnMob) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// SpawnPainting places a painting (clientbound 0x10).
type SpawnPainting struct {
	EntityID  int32         `mc:"varint"`
	Title     string        `mc:"string"`
	Location  wire.Position `mc:"position"`
	Direction uint8         `mc:"u8"`
}

func (p *SpawnPainting) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *SpawnPainting) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// SpawnExperienceOrb (clientbound 0x11).
type SpawnExperienceOrb struct {
	EntityID int32 `mc:"varint"`
	X        int32 `mc:"i32"`
	Y        int32 `mc:"i32"`
	Z        int32 `mc:"i32"`
	Count    int16 `mc:"i16"`
}

func (p *SpawnExperienceOrb) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *SpawnExperienceOrb) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// SpawnGlobalEntity spawns a thunderbolt (clientbound 0x2C).
type SpawnGlobalEntity struct {
	EntityID int32 `mc:"varint"`
	Type     int8  `mc:"i8"`
	X        int32 `mc:"i32"`
	Y        int32 `mc:"i32"`
	Z        int32 `mc:"i32"`
}

func (p *SpawnGlobalEntity) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *SpawnGlobalEntity) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// EntityVelocity (clientbound 0x12).
type EntityVelocity struct {
	EntityID  int32 `mc:"varint"`
	VelocityX int16 `mc:"i16"`
	VelocityY int16 `mc:"i16"`
	VelocityZ int16 `mc:"i16"`
}

func (p *EntityVelocity) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *EntityVelocity) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// DestroyEntities removes entities from the client (clientbound 0x13).
type DestroyEntities struct {
	EntityIDs []int32
}

func (p *DestroyEntities) Decode(r *wire.Reader, _ protocol.Direction) error {
	ids, err := wire.ReadArray(r, wire.PrefixVarInt, (*wire.Reader).ReadVarInt)
	if err != nil {
		return fmt.Errorf("read entity ids: %w", err)
	}
	p.EntityIDs = ids
	return nil
}

func (p *DestroyEntities) Encode(w *wire.Writer, _ protocol.Direction) error {
	return wire.WriteArray(w, wire.PrefixVarInt, p.EntityIDs, writeVarInt)
}

// Entity keeps an entity alive on the client without moving it (clientbound 0x14).
type Entity struct {
	EntityID int32 `mc:"varint"`
}

func (p *Entity) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *Entity) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// EntityRelativeMove moves an entity by at most four blocks, in 1/32 block
// units (clientbound 0x15).
type EntityRelativeMove struct {
	EntityID int32 `mc:"varint"`
	DeltaX   int8  `mc:"i8"`
	DeltaY   int8  `mc:"i8"`
	DeltaZ   int8  `mc:"i8"`
	OnGround bool  `mc:"bool"`
}

func (p *EntityRelativeMove) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *EntityRelativeMove) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// EntityLook (clientbound 0x16). Angles are in 1/256 of a full turn.
type EntityLook struct {
	EntityID int32 `mc:"varint"`
	Yaw      int8  `mc:"i8"`
	Pitch    int8  `mc:"i8"`
	OnGround bool  `mc:"bool"`
}

func (p *EntityLook) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *EntityLook) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// EntityLookAndRelativeMove (clientbound 0x17).
type EntityLookAndRelativeMove struct {
	EntityID int32 `mc:"varint"`
	DeltaX   int8  `mc:"i8"`
	DeltaY   int8  `mc:"i8"`
	DeltaZ   int8  `mc:"i8"`
	Yaw      int8  `mc:"i8"`
	Pitch    int8  `mc:"i8"`
	OnGround bool  `mc:"bool"`
}

func (p *EntityLookAndRelativeMove) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *EntityLookAndRelativeMove) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// EntityTeleport moves an entity to absolute fixed-point coordinates (clientbound 0x18).
type EntityTeleport struct {
	EntityID int32 `mc:"varint"`
	X        int32 `mc:"i32"`
	Y        int32 `mc:"i32"`
	Z        int32 `mc:"i32"`
	Yaw      int8  `mc:"i8"`
	Pitch    int8  `mc:"i8"`
	OnGround bool  `mc:"bool"`
}

func (p *EntityTeleport) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *EntityTeleport) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// EntityHeadLook (clientbound 0x19).
type EntityHeadLook struct {
	EntityID int32 `mc:"varint"`
	HeadYaw  int8  `mc:"i8"`
}

func (p *EntityHeadLook) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *EntityHeadLook) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// EntityStatus triggers an entity event such as the hurt animation (clientbound 0x1A).
type EntityStatus struct {
	EntityID int32 `mc:"i32"`
	Status   int8  `mc:"i8"`
}

func (p *EntityStatus) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *EntityStatus) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// AttachEntity mounts or leashes an entity (clientbound 0x1B). A VehicleID
// of -1 detaches.
type AttachEntity struct {
	EntityID  int32 `mc:"i32"`
	VehicleID int32 `mc:"i32"`
	Leash     bool  `mc:"bool"`
}

func (p *AttachEntity) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *AttachEntity) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// EntityMetadata (clientbound 0x1C).
type EntityMetadata struct {
	EntityID int32    `mc:"varint"`
	Metadata Metadata `mc:"field"`
}

func (p *EntityMetadata) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *EntityMetadata) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// EntityEffect (clientbound 0x1D). Duration is in ticks.
type EntityEffect struct {
	EntityID      int32 `mc:"varint"`
	EffectID      int8  `mc:"i8"`
	Amplifier     int8  `mc:"i8"`
	Duration      int32 `mc:"varint"`
	HideParticles bool  `mc:"bool"`
}

func (p *EntityEffect) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *EntityEffect) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// RemoveEntityEffect (clientbound 0x1E).
type RemoveEntityEffect struct {
	EntityID int32 `mc:"varint"`
	EffectID int8  `mc:"i8"`
}

func (p *RemoveEntityEffect) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *RemoveEntityEffect) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// EntityProperties updates attribute values such as movement speed (clientbound 0x20).
type EntityProperties struct {
	EntityID   int32
	Properties []EntityProperty
}

type EntityProperty struct {
	Key       string
	Value     float64
	Modifiers []AttributeModifier
}

// AttributeModifier operations: 0 add, 1 add percent, 2 multiply.
type AttributeModifier struct {
	UUID      uuid.UUID
	Amount    float64
	Operation int8
}

func (p *EntityProperties) Decode(r *wire.Reader, _ protocol.Direction) error {
	var err error
	if p.EntityID, err = r.ReadVarInt(); err != nil {
		return err
	}
	p.Properties, err = wire.ReadArray(r, wire.PrefixInt32, readEntityProperty)
	if err != nil {
		return fmt.Errorf("read properties: %w", err)
	}
	return nil
}

func readEntityProperty(r *wire.Reader) (EntityProperty, error) {
	var (
		prop EntityProperty
		err  error
	)
	if prop.Key, err = r.ReadString(); err != nil {
		return prop, err
	}
	if prop.Value, err = r.ReadF64(); err != nil {
		return prop, err
	}
	prop.Modifiers, err = wire.ReadArray(r, wire.PrefixVarInt, func(r *wire.Reader) (AttributeModifier, error) {
		var (
			m   AttributeModifier
			err error
		)
		if m.UUID, err = r.ReadUUID(); err != nil {
			return m, err
		}
		if m.Amount, err = r.ReadF64(); err != nil {
			return m, err
		}
		m.Operation, err = r.ReadI8()
		return m, err
	})
	return prop, err
}

func (p *EntityProperties) Encode(w *wire.Writer, _ protocol.Direction) error {
	w.WriteVarInt(p.EntityID)
	return wire.WriteArray(w, wire.PrefixInt32, p.Properties, func(w *wire.Writer, prop EntityProperty) error {
		if err := w.WriteString(prop.Key); err != nil {
			return err
		}
		w.WriteF64(prop.Value)
		return wire.WriteArray(w, wire.PrefixVarInt, prop.Modifiers, func(w *wire.Writer, m AttributeModifier) error {
			w.WriteUUID(m.UUID)
			w.WriteF64(m.Amount)
			w.WriteI8(m.Operation)
			return nil
		})
	})
}

// EntityEquipment sets the item shown in an entity's hand or armour slot (clientbound 0x04).
type EntityEquipment struct {
	EntityID int32     `mc:"varint"`
	Slot     int16     `mc:"i16"`
	Item     ItemStack `mc:"field"`
}

func (p *EntityEquipment) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *EntityEquipment) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// UpdateEntityNBT (clientbound 0x49). Tag holds the raw root compound.
type UpdateEntityNBT struct {
	EntityID int32
	Tag      []byte
}

func (p *UpdateEntityNBT) Decode(r *wire.Reader, _ protocol.Direction) error {
	var err error
	if p.EntityID, err = r.ReadVarInt(); err != nil {
		return err
	}
	p.Tag, err = readNBT(r)
	return err
}

func (p *UpdateEntityNBT) Encode(w *wire.Writer, _ protocol.Direction) error {
	w.WriteVarInt(p.EntityID)
	writeNBT(w, p.Tag)
	return nil
}
