package packet

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol"
	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol/wire"
)

// KeepAlive is echoed by the client to prove liveness (both directions, 0x00).
type KeepAlive struct {
	KeepAliveID int32 `mc:"varint"`
}

func (p *KeepAlive) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *KeepAlive) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// JoinGame is the first play-mode packet sent to the client (clientbound 0x01).
type JoinGame struct {
	EntityID         int32  `mc:"i32"`
	GameMode         uint8  `mc:"u8"`
	Dimension        int8   `mc:"i8"`
	Difficulty       uint8  `mc:"u8"`
	MaxPlayers       uint8  `mc:"u8"`
	LevelType        string `mc:"string"`
	ReducedDebugInfo bool   `mc:"bool"`
}

func (p *JoinGame) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *JoinGame) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// Chat positions, clientbound only.
const (
	ChatPositionChat   int8 = 0
	ChatPositionSystem int8 = 1
	ChatPositionHotbar int8 = 2
)

// ChatMessage carries chat in both directions (clientbound 0x02,
// serverbound 0x01). Clientbound messages are JSON and are followed by a
// position byte; serverbound messages are raw text without one.
type ChatMessage struct {
	Message  string
	Position int8
}

func (p *ChatMessage) Decode(r *wire.Reader, dir protocol.Direction) error {
	var err error
	if p.Message, err = r.ReadString(); err != nil {
		return err
	}
	p.Position = 0
	if dir == protocol.Clientbound {
		p.Position, err = r.ReadI8()
	}
	return err
}

func (p *ChatMessage) Encode(w *wire.Writer, dir protocol.Direction) error {
	if err := w.WriteString(p.Message); err != nil {
		return err
	}
	if dir == protocol.Clientbound {
		w.WriteI8(p.Position)
	}
	return nil
}

// TimeUpdate (clientbound 0x03).
type TimeUpdate struct {
	WorldAge  int64 `mc:"i64"`
	TimeOfDay int64 `mc:"i64"`
}

func (p *TimeUpdate) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *TimeUpdate) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// SpawnPosition sets the compass target (clientbound 0x05).
type SpawnPosition struct {
	Location wire.Position `mc:"position"`
}

func (p *SpawnPosition) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *SpawnPosition) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// UpdateHealth (clientbound 0x06).
type UpdateHealth struct {
	Health         float32 `mc:"f32"`
	Food           int32   `mc:"varint"`
	FoodSaturation float32 `mc:"f32"`
}

func (p *UpdateHealth) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *UpdateHealth) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// Respawn (clientbound 0x07).
type Respawn struct {
	Dimension  int32  `mc:"i32"`
	Difficulty uint8  `mc:"u8"`
	GameMode   uint8  `mc:"u8"`
	LevelType  string `mc:"string"`
}

func (p *Respawn) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *Respawn) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// Relative flag bits of PlayerPositionAndLook. A set bit makes the
// matching field an offset from the current value.
const (
	RelativeX     uint8 = 0x01
	RelativeY     uint8 = 0x02
	RelativeZ     uint8 = 0x04
	RelativeYaw   uint8 = 0x08
	RelativePitch uint8 = 0x10
)

// PlayerPositionAndLook (clientbound 0x08, serverbound 0x06). Stance is on
// the wire only when the packet travels serverbound, between X and Y.
type PlayerPositionAndLook struct {
	X      float64
	Stance float64
	Y      float64
	Z      float64
	Yaw    float32
	Pitch  float32
	Flags  uint8
}

// IsRelative reports whether the given Relative* bit is set.
func (p *PlayerPositionAndLook) IsRelative(flag uint8) bool {
	return p.Flags&flag != 0
}

func (p *PlayerPositionAndLook) Decode(r *wire.Reader, dir protocol.Direction) error {
	var err error
	if p.X, err = r.ReadF64(); err != nil {
		return err
	}
	p.Stance = 0
	if dir == protocol.Serverbound {
		if p.Stance, err = r.ReadF64(); err != nil {
			return err
		}
	}
	if p.Y, err = r.ReadF64(); err != nil {
		return err
	}
	if p.Z, err = r.ReadF64(); err != nil {
		return err
	}
	if p.Yaw, err = r.ReadF32(); err != nil {
		return err
	}
	if p.Pitch, err = r.ReadF32(); err != nil {
		return err
	}
	p.Flags, err = r.ReadU8()
	return err
}

func (p *PlayerPositionAndLook) Encode(w *wire.Writer, dir protocol.Direction) error {
	w.WriteF64(p.X)
	if dir == protocol.Serverbound {
		w.WriteF64(p.Stance)
	}
	w.WriteF64(p.Y)
	w.WriteF64(p.Z)
	w.WriteF32(p.Yaw)
	w.WriteF32(p.Pitch)
	w.WriteU8(p.Flags)
	return nil
}

// HeldItemChange selects the hotbar slot (clientbound 0x09, serverbound
// 0x09). The slot is one byte wide clientbound and two bytes serverbound.
type HeldItemChange struct {
	Slot int16
}

func (p *HeldItemChange) Decode(r *wire.Reader, dir protocol.Direction) error {
	if dir == protocol.Clientbound {
		v, err := r.ReadI8()
		p.Slot = int16(v)
		return err
	}
	v, err := r.ReadI16()
	p.Slot = v
	return err
}

func (p *HeldItemChange) Encode(w *wire.Writer, dir protocol.Direction) error {
	if dir == protocol.Clientbound {
		if p.Slot < math.MinInt8 || p.Slot > math.MaxInt8 {
			return fmt.Errorf("held slot %d does not fit a byte: %w", p.Slot, wire.ErrInvariantViolation)
		}
		w.WriteI8(int8(p.Slot))
		return nil
	}
	w.WriteI16(p.Slot)
	return nil
}

// UseBed (clientbound 0x0A).
type UseBed struct {
	EntityID int32         `mc:"varint"`
	Location wire.Position `mc:"position"`
}

func (p *UseBed) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *UseBed) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// Animation values, clientbound.
const (
	AnimationSwingArm       uint8 = 0
	AnimationTakeDamage     uint8 = 1
	AnimationLeaveBed       uint8 = 2
	AnimationEatFood        uint8 = 3
	AnimationCriticalEffect uint8 = 4
	AnimationMagicCritical  uint8 = 5
)

// Animation (clientbound 0x0B, serverbound 0x0A). Serverbound it is an
// empty arm-swing notification; EntityID and Animation are clientbound only.
type Animation struct {
	EntityID  int32
	Animation uint8
}

func (p *Animation) Decode(r *wire.Reader, dir protocol.Direction) error {
	*p = Animation{}
	if dir != protocol.Clientbound {
		return nil
	}
	var err error
	if p.EntityID, err = r.ReadVarInt(); err != nil {
		return err
	}
	p.Animation, err = r.ReadU8()
	return err
}

func (p *Animation) Encode(w *wire.Writer, dir protocol.Direction) error {
	if dir != protocol.Clientbound {
		return nil
	}
	w.WriteVarInt(p.EntityID)
	w.WriteU8(p.Animation)
	return nil
}

// SetExperience (clientbound 0x1F).
type SetExperience struct {
	ExperienceBar   float32 `mc:"f32"`
	Level           int32   `mc:"varint"`
	TotalExperience int32   `mc:"varint"`
}

func (p *SetExperience) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *SetExperience) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// ChangeGameState reasons.
const (
	GameStateInvalidBed     uint8 = 0
	GameStateEndRaining     uint8 = 1
	GameStateBeginRaining   uint8 = 2
	GameStateChangeGameMode uint8 = 3
	GameStateEnterCredits   uint8 = 4
	GameStateDemoMessage    uint8 = 5
	GameStateArrowHit       uint8 = 6
	GameStateFadeValue      uint8 = 7
	GameStateFadeTime       uint8 = 8
	GameStateMobAppearance  uint8 = 10
)

// ChangeGameState (clientbound 0x2B).
type ChangeGameState struct {
	Reason uint8   `mc:"u8"`
	Value  float32 `mc:"f32"`
}

func (p *ChangeGameState) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *ChangeGameState) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// PlayerAbilities (clientbound 0x39, serverbound 0x13).
type PlayerAbilities struct {
	Flags        int8    `mc:"i8"`
	FlyingSpeed  float32 `mc:"f32"`
	WalkingSpeed float32 `mc:"f32"`
}

func (p *PlayerAbilities) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *PlayerAbilities) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// ServerDifficulty (clientbound 0x41).
type ServerDifficulty struct {
	Difficulty uint8 `mc:"u8"`
}

func (p *ServerDifficulty) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *ServerDifficulty) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// Camera attaches the client view to an entity (clientbound 0x43).
type Camera struct {
	CameraID int32 `mc:"varint"`
}

func (p *Camera) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *Camera) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// Player reports whether the client is on the ground (serverbound 0x03).
type Player struct {
	OnGround bool `mc:"bool"`
}

func (p *Player) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *Player) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// PlayerPosition is sent when the client moves (serverbound 0x04).
type PlayerPosition struct {
	X        float64 `mc:"f64"`
	Stance   float64 `mc:"f64"`
	Y        float64 `mc:"f64"`
	Z        float64 `mc:"f64"`
	OnGround bool    `mc:"bool"`
}

func (p *PlayerPosition) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *PlayerPosition) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// PlayerLook is sent when the client rotates (serverbound 0x05).
type PlayerLook struct {
	Yaw      float32 `mc:"f32"`
	Pitch    float32 `mc:"f32"`
	OnGround bool    `mc:"bool"`
}

func (p *PlayerLook) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *PlayerLook) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// Digging statuses.
const (
	DiggingStarted       int8 = 0
	DiggingCancelled     int8 = 1
	DiggingFinished      int8 = 2
	DiggingDropItemStack int8 = 3
	DiggingDropItem      int8 = 4
	DiggingShootArrow    int8 = 5
)

// PlayerDigging (serverbound 0x07).
type PlayerDigging struct {
	Status   int8          `mc:"i8"`
	Location wire.Position `mc:"position"`
	Face     int8          `mc:"i8"`
}

func (p *PlayerDigging) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *PlayerDigging) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// PlayerBlockPlacement (serverbound 0x08). Cursor values are in 1/16 block.
type PlayerBlockPlacement struct {
	Location wire.Position `mc:"position"`
	Face     int8          `mc:"i8"`
	HeldItem ItemStack     `mc:"field"`
	CursorX  int8          `mc:"i8"`
	CursorY  int8          `mc:"i8"`
	CursorZ  int8          `mc:"i8"`
}

func (p *PlayerBlockPlacement) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *PlayerBlockPlacement) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// Entity actions.
const (
	EntityActionStartSneaking  uint8 = 0
	EntityActionStopSneaking   uint8 = 1
	EntityActionLeaveBed       uint8 = 2
	EntityActionStartSprinting uint8 = 3
	EntityActionStopSprinting  uint8 = 4
	EntityActionJumpWithHorse  uint8 = 5
	EntityActionOpenInventory  uint8 = 6
)

// EntityAction (serverbound 0x0B).
type EntityAction struct {
	EntityID        int32 `mc:"varint"`
	Action          uint8 `mc:"u8"`
	ActionParameter int32 `mc:"varint"`
}

func (p *EntityAction) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *EntityAction) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// SteerVehicle (serverbound 0x0C). Flags: 0x01 jump, 0x02 unmount.
type SteerVehicle struct {
	Sideways float32 `mc:"f32"`
	Forward  float32 `mc:"f32"`
	Flags    uint8   `mc:"u8"`
}

func (p *SteerVehicle) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *SteerVehicle) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// ClientSettings (serverbound 0x15).
type ClientSettings struct {
	Locale       string `mc:"string"`
	ViewDistance int8   `mc:"i8"`
	ChatMode     int8   `mc:"i8"`
	ChatColors   bool   `mc:"bool"`
	SkinParts    uint8  `mc:"u8"`
}

func (p *ClientSettings) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *ClientSettings) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// Client status actions.
const (
	ClientStatusRespawn       int32 = 0
	ClientStatusRequestStats  int32 = 1
	ClientStatusOpenInventory int32 = 2
)

// ClientStatus (serverbound 0x16).
type ClientStatus struct {
	Action int32 `mc:"varint"`
}

func (p *ClientStatus) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *ClientStatus) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// Spectate teleports a spectator to the given player (serverbound 0x18).
type Spectate struct {
	Target uuid.UUID `mc:"uuid"`
}

func (p *Spectate) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *Spectate) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}
