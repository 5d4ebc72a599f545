package packet

import (
	"fmt"

	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol"
	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol/wire"
)

// BlockState packs a block type and its 4-bit metadata as type<<4 | meta.
type BlockState int32

func NewBlockState(blockType int32, meta uint8) BlockState {
	return BlockState(blockType<<4 | int32(meta&0x0F))
}

func (s BlockState) Type() int32 { return int32(s) >> 4 }
func (s BlockState) Meta() uint8 { return uint8(s & 0x0F) }

// ChunkData sends one chunk column (clientbound 0x21). An empty bitmask with
// GroundUpContinuous set unloads the column.
type ChunkData struct {
	ChunkX             int32  `mc:"i32"`
	ChunkZ             int32  `mc:"i32"`
	GroundUpContinuous bool   `mc:"bool"`
	PrimaryBitMask     uint16 `mc:"u16"`
	Data               []byte `mc:"bytes:varint"`
}

func (p *ChunkData) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *ChunkData) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// BlockRecord is a single change inside a MultiBlockChange.
type BlockRecord struct {
	HorizontalPosition uint8      `mc:"u8"`
	Y                  uint8      `mc:"u8"`
	BlockID            BlockState `mc:"varint"`
}

// X returns the chunk-relative x coordinate.
func (b BlockRecord) X() uint8 { return b.HorizontalPosition >> 4 }

// Z returns the chunk-relative z coordinate.
func (b BlockRecord) Z() uint8 { return b.HorizontalPosition & 0x0F }

// MultiBlockChange (clientbound 0x22).
type MultiBlockChange struct {
	ChunkX  int32
	ChunkZ  int32
	Records []BlockRecord
}

func (p *MultiBlockChange) Decode(r *wire.Reader, _ protocol.Direction) error {
	var err error
	if err = readInt2(r, &p.ChunkX, &p.ChunkZ); err != nil {
		return err
	}
	p.Records, err = wire.ReadArray(r, wire.PrefixVarInt, func(r *wire.Reader) (BlockRecord, error) {
		var rec BlockRecord
		return rec, protocol.Unmarshal(r, &rec)
	})
	return err
}

func (p *MultiBlockChange) Encode(w *wire.Writer, _ protocol.Direction) error {
	w.WriteI32(p.ChunkX)
	w.WriteI32(p.ChunkZ)
	return wire.WriteArray(w, wire.PrefixVarInt, p.Records, func(w *wire.Writer, rec BlockRecord) error {
		return protocol.Marshal(w, &rec)
	})
}

// BlockChange (clientbound 0x23).
type BlockChange struct {
	Location wire.Position `mc:"position"`
	BlockID  BlockState    `mc:"varint"`
}

func (p *BlockChange) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *BlockChange) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// BlockAction drives note blocks, pistons and chests (clientbound 0x24).
type BlockAction struct {
	Location  wire.Position `mc:"position"`
	Byte1     uint8         `mc:"u8"`
	Byte2     uint8         `mc:"u8"`
	BlockType int32         `mc:"varint"`
}

func (p *BlockAction) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *BlockAction) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// BlockBreakAnimation (clientbound 0x25). Stage is 0-9, anything else
// removes the animation.
type BlockBreakAnimation struct {
	EntityID int32         `mc:"varint"`
	Location wire.Position `mc:"position"`
	Stage    int8          `mc:"i8"`
}

func (p *BlockBreakAnimation) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *BlockBreakAnimation) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// ChunkMeta describes one column of a MapChunkBulk.
type ChunkMeta struct {
	ChunkX         int32  `mc:"i32"`
	ChunkZ         int32  `mc:"i32"`
	PrimaryBitMask uint16 `mc:"u16"`
}

// MapChunkBulk sends several chunk columns at once (clientbound 0x26). Data
// holds the concatenated column payloads in Meta order.
type MapChunkBulk struct {
	SkyLightSent bool
	Meta         []ChunkMeta
	Data         []byte
}

func (p *MapChunkBulk) Decode(r *wire.Reader, _ protocol.Direction) error {
	var err error
	if p.SkyLightSent, err = r.ReadBool(); err != nil {
		return err
	}
	p.Meta, err = wire.ReadArray(r, wire.PrefixVarInt, func(r *wire.Reader) (ChunkMeta, error) {
		var m ChunkMeta
		return m, protocol.Unmarshal(r, &m)
	})
	if err != nil {
		return err
	}
	p.Data = r.ReadRest()
	return nil
}

func (p *MapChunkBulk) Encode(w *wire.Writer, _ protocol.Direction) error {
	w.WriteBool(p.SkyLightSent)
	err := wire.WriteArray(w, wire.PrefixVarInt, p.Meta, func(w *wire.Writer, m ChunkMeta) error {
		return protocol.Marshal(w, &m)
	})
	if err != nil {
		return err
	}
	w.WriteBytes(p.Data)
	return nil
}

// ExplosionRecord is a destroyed block offset from the explosion centre.
type ExplosionRecord struct {
	X int8 `mc:"i8"`
	Y int8 `mc:"i8"`
	Z int8 `mc:"i8"`
}

// Explosion (clientbound 0x27).
type Explosion struct {
	X, Y, Z float32
	Radius  float32
	Records []ExplosionRecord
	MotionX float32
	MotionY float32
	MotionZ float32
}

func (p *Explosion) Decode(r *wire.Reader, _ protocol.Direction) error {
	var err error
	for _, dst := range []*float32{&p.X, &p.Y, &p.Z, &p.Radius} {
		if *dst, err = r.ReadF32(); err != nil {
			return err
		}
	}
	p.Records, err = wire.ReadArray(r, wire.PrefixInt32, func(r *wire.Reader) (ExplosionRecord, error) {
		var rec ExplosionRecord
		return rec, protocol.Unmarshal(r, &rec)
	})
	if err != nil {
		return err
	}
	for _, dst := range []*float32{&p.MotionX, &p.MotionY, &p.MotionZ} {
		if *dst, err = r.ReadF32(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Explosion) Encode(w *wire.Writer, _ protocol.Direction) error {
	for _, v := range []float32{p.X, p.Y, p.Z, p.Radius} {
		w.WriteF32(v)
	}
	err := wire.WriteArray(w, wire.PrefixInt32, p.Records, func(w *wire.Writer, rec ExplosionRecord) error {
		return protocol.Marshal(w, &rec)
	})
	if err != nil {
		return err
	}
	for _, v := range []float32{p.MotionX, p.MotionY, p.MotionZ} {
		w.WriteF32(v)
	}
	return nil
}

// Effect plays a sound or particle effect (clientbound 0x28).
type Effect struct {
	EffectID              int32         `mc:"i32"`
	Location              wire.Position `mc:"position"`
	Data                  int32         `mc:"i32"`
	DisableRelativeVolume bool          `mc:"bool"`
}

func (p *Effect) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *Effect) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// SoundEffect (clientbound 0x29). Coordinates are multiplied by 8.
type SoundEffect struct {
	SoundName string  `mc:"string"`
	X         int32   `mc:"i32"`
	Y         int32   `mc:"i32"`
	Z         int32   `mc:"i32"`
	Volume    float32 `mc:"f32"`
	Pitch     uint8   `mc:"u8"`
}

func (p *SoundEffect) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *SoundEffect) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// Particle (clientbound 0x2A). Data holds the trailing VarInts that some
// particle types (iconcrack, blockcrack, blockdust) carry.
type Particle struct {
	ParticleID   int32   `mc:"i32"`
	LongDistance bool    `mc:"bool"`
	X            float32 `mc:"f32"`
	Y            float32 `mc:"f32"`
	Z            float32 `mc:"f32"`
	OffsetX      float32 `mc:"f32"`
	OffsetY      float32 `mc:"f32"`
	OffsetZ      float32 `mc:"f32"`
	ParticleData float32 `mc:"f32"`
	Count        int32   `mc:"i32"`
	Data         []int32
}

func (p *Particle) Decode(r *wire.Reader, _ protocol.Direction) error {
	if err := protocol.Unmarshal(r, p); err != nil {
		return err
	}
	p.Data = nil
	for r.Remaining() > 0 {
		v, err := r.ReadVarInt()
		if err != nil {
			return fmt.Errorf("read particle data: %w", err)
		}
		p.Data = append(p.Data, v)
	}
	return nil
}

func (p *Particle) Encode(w *wire.Writer, _ protocol.Direction) error {
	if err := protocol.Marshal(w, p); err != nil {
		return err
	}
	for _, v := range p.Data {
		w.WriteVarInt(v)
	}
	return nil
}

// MapIcon is a marker drawn on a map item.
type MapIcon struct {
	DirectionAndType int8 `mc:"i8"`
	X                int8 `mc:"i8"`
	Z                int8 `mc:"i8"`
}

// MapData updates a map item (clientbound 0x34). Rows, X, Z and Data are on
// the wire only when Columns is positive.
type MapData struct {
	ItemDamage int32
	Scale      int8
	Icons      []MapIcon
	Columns    int8
	Rows       int8
	X          int8
	Z          int8
	Data       []byte
}

func (p *MapData) Decode(r *wire.Reader, _ protocol.Direction) error {
	var err error
	if p.ItemDamage, err = r.ReadVarInt(); err != nil {
		return err
	}
	if p.Scale, err = r.ReadI8(); err != nil {
		return err
	}
	p.Icons, err = wire.ReadArray(r, wire.PrefixVarInt, func(r *wire.Reader) (MapIcon, error) {
		var icon MapIcon
		return icon, protocol.Unmarshal(r, &icon)
	})
	if err != nil {
		return err
	}
	if p.Columns, err = r.ReadI8(); err != nil {
		return err
	}
	p.Rows, p.X, p.Z, p.Data = 0, 0, 0, nil
	if p.Columns <= 0 {
		return nil
	}
	for _, dst := range []*int8{&p.Rows, &p.X, &p.Z} {
		if *dst, err = r.ReadI8(); err != nil {
			return err
		}
	}
	p.Data, err = r.ReadPrefixedBytes(wire.PrefixVarInt)
	return err
}

func (p *MapData) Encode(w *wire.Writer, _ protocol.Direction) error {
	w.WriteVarInt(p.ItemDamage)
	w.WriteI8(p.Scale)
	err := wire.WriteArray(w, wire.PrefixVarInt, p.Icons, func(w *wire.Writer, icon MapIcon) error {
		return protocol.Marshal(w, &icon)
	})
	if err != nil {
		return err
	}
	w.WriteI8(p.Columns)
	if p.Columns <= 0 {
		return nil
	}
	w.WriteI8(p.Rows)
	w.WriteI8(p.X)
	w.WriteI8(p.Z)
	return w.WritePrefixedBytes(wire.PrefixVarInt, p.Data)
}

// UpdateBlockEntity (clientbound 0x35). NBT is nil when the block entity is
// removed.
type UpdateBlockEntity struct {
	Location wire.Position
	Action   uint8
	NBT      []byte
}

func (p *UpdateBlockEntity) Decode(r *wire.Reader, _ protocol.Direction) error {
	var err error
	if p.Location, err = r.ReadPosition(); err != nil {
		return err
	}
	if p.Action, err = r.ReadU8(); err != nil {
		return err
	}
	p.NBT, err = readNBT(r)
	return err
}

func (p *UpdateBlockEntity) Encode(w *wire.Writer, _ protocol.Direction) error {
	w.WritePosition(p.Location)
	w.WriteU8(p.Action)
	writeNBT(w, p.NBT)
	return nil
}

// OpenSignEditor (clientbound 0x36).
type OpenSignEditor struct {
	Location wire.Position `mc:"position"`
}

func (p *OpenSignEditor) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *OpenSignEditor) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// UpdateSign (clientbound 0x33, serverbound 0x12). Clientbound lines are
// JSON chat components.
type UpdateSign struct {
	Location wire.Position `mc:"position"`
	Line1    string        `mc:"string"`
	Line2    string        `mc:"string"`
	Line3    string        `mc:"string"`
	Line4    string        `mc:"string"`
}

func (p *UpdateSign) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *UpdateSign) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// Statistic is one named counter.
type Statistic struct {
	Name  string `mc:"string"`
	Value int32  `mc:"varint"`
}

// Statistics (clientbound 0x37).
type Statistics struct {
	Entries []Statistic
}

func (p *Statistics) Decode(r *wire.Reader, _ protocol.Direction) error {
	var err error
	p.Entries, err = wire.ReadArray(r, wire.PrefixVarInt, func(r *wire.Reader) (Statistic, error) {
		var s Statistic
		return s, protocol.Unmarshal(r, &s)
	})
	return err
}

func (p *Statistics) Encode(w *wire.Writer, _ protocol.Direction) error {
	return wire.WriteArray(w, wire.PrefixVarInt, p.Entries, func(w *wire.Writer, s Statistic) error {
		return protocol.Marshal(w, &s)
	})
}

// WorldBorderAction is one of the WorldBorder* branches.
type WorldBorderAction interface {
	worldBorderAction() int32
}

type WorldBorderSetSize struct {
	Diameter float64 `mc:"f64"`
}

type WorldBorderLerpSize struct {
	OldDiameter float64 `mc:"f64"`
	NewDiameter float64 `mc:"f64"`
	Speed       int64   `mc:"varlong"`
}

type WorldBorderSetCenter struct {
	X float64 `mc:"f64"`
	Z float64 `mc:"f64"`
}

type WorldBorderInitialize struct {
	X                      float64 `mc:"f64"`
	Z                      float64 `mc:"f64"`
	OldDiameter            float64 `mc:"f64"`
	NewDiameter            float64 `mc:"f64"`
	Speed                  int64   `mc:"varlong"`
	PortalTeleportBoundary int32   `mc:"varint"`
	WarningTime            int32   `mc:"varint"`
	WarningBlocks          int32   `mc:"varint"`
}

type WorldBorderSetWarningTime struct {
	WarningTime int32 `mc:"varint"`
}

type WorldBorderSetWarningBlocks struct {
	WarningBlocks int32 `mc:"varint"`
}

type WorldBorderUnknown struct {
	Action int32
	Data   []byte
}

func (WorldBorderSetSize) worldBorderAction() int32          { return 0 }
func (WorldBorderLerpSize) worldBorderAction() int32         { return 1 }
func (WorldBorderSetCenter) worldBorderAction() int32        { return 2 }
func (WorldBorderInitialize) worldBorderAction() int32       { return 3 }
func (WorldBorderSetWarningTime) worldBorderAction() int32   { return 4 }
func (WorldBorderSetWarningBlocks) worldBorderAction() int32 { return 5 }
func (u WorldBorderUnknown) worldBorderAction() int32        { return u.Action }
func (u WorldBorderUnknown) raw() []byte                     { return u.Data }

// WorldBorder (clientbound 0x44).
type WorldBorder struct {
	Action WorldBorderAction
}

func (p *WorldBorder) Decode(r *wire.Reader, _ protocol.Direction) error {
	action, err := r.ReadVarInt()
	if err != nil {
		return err
	}
	var body WorldBorderAction
	switch action {
	case 0:
		body = &WorldBorderSetSize{}
	case 1:
		body = &WorldBorderLerpSize{}
	case 2:
		body = &WorldBorderSetCenter{}
	case 3:
		body = &WorldBorderInitialize{}
	case 4:
		body = &WorldBorderSetWarningTime{}
	case 5:
		body = &WorldBorderSetWarningBlocks{}
	default:
		p.Action = &WorldBorderUnknown{Action: action, Data: r.ReadRest()}
		return nil
	}
	if err := protocol.Unmarshal(r, body); err != nil {
		return err
	}
	p.Action = body
	return nil
}

func (p *WorldBorder) Encode(w *wire.Writer, _ protocol.Direction) error {
	if p.Action == nil {
		return fmt.Errorf("world border without action: %w", wire.ErrInvariantViolation)
	}
	return writeBranch(w, p.Action.worldBorderAction(), p.Action)
}

func readInt2(r *wire.Reader, x, z *int32) error {
	var err error
	if *x, err = r.ReadI32(); err != nil {
		return err
	}
	*z, err = r.ReadI32()
	return err
}
