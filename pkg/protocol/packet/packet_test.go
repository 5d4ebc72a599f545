package packet

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol"
	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol/nbt"
	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol/wire"
)

func encode(t *testing.T, p protocol.Packet, dir protocol.Direction) []byte {
	t.Helper()
	w := wire.NewWriter()
	if err := p.Encode(w, dir); err != nil {
		t.Fatalf("Encode %T: %v", p, err)
	}
	return w.Bytes()
}

// roundTrip encodes in, decodes into out and requires every byte to be
// consumed and the values to match.
func roundTrip(t *testing.T, in, out protocol.Packet, dir protocol.Direction) {
	t.Helper()
	r := wire.NewReader(encode(t, in, dir))
	if err := out.Decode(r, dir); err != nil {
		t.Fatalf("Decode %T: %v", out, err)
	}
	if r.Remaining() != 0 {
		t.Fatalf("Decode %T left %d bytes", out, r.Remaining())
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round-trip mismatch:\n  got  %+v\n  want %+v", out, in)
	}
}

func TestPacketRoundTrip(t *testing.T) {
	sig := "c2lnbmF0dXJl"
	display := `{"text":"Steve"}`
	id := uuid.MustParse("069a79f4-44e9-4726-a5be-fca90e38aaf5")

	tests := []struct {
		name string
		in   protocol.Packet
		out  protocol.Packet
		dir  protocol.Direction
	}{
		{"handshake", &Handshake{ProtocolVersion: 47, ServerAddress: "localhost", ServerPort: 25565, NextState: 2}, &Handshake{}, protocol.Serverbound},
		{"login success", &LoginSuccess{UUID: id.String(), Username: "Notch"}, &LoginSuccess{}, protocol.Clientbound},
		{"encryption request", &EncryptionRequest{ServerID: "", PublicKey: []byte{1, 2, 3}, VerifyToken: []byte{4, 5, 6, 7}}, &EncryptionRequest{}, protocol.Clientbound},
		{"join game", &JoinGame{EntityID: 7, GameMode: GameModeCreative, Dimension: DimensionNether, Difficulty: DifficultyHard, MaxPlayers: 20, LevelType: "default"}, &JoinGame{}, protocol.Clientbound},
		{"chat clientbound", &ChatMessage{Message: `{"text":"hi"}`, Position: ChatPositionSystem}, &ChatMessage{}, protocol.Clientbound},
		{"chat serverbound", &ChatMessage{Message: "hi"}, &ChatMessage{}, protocol.Serverbound},
		{"position and look serverbound", &PlayerPositionAndLook{X: 1.5, Stance: 65.62, Y: 64, Z: -3, Yaw: 90, Pitch: 10}, &PlayerPositionAndLook{}, protocol.Serverbound},
		{"position and look clientbound", &PlayerPositionAndLook{X: 1.5, Y: 64, Z: -3, Yaw: 90, Pitch: 10, Flags: RelativeX | RelativeYaw}, &PlayerPositionAndLook{}, protocol.Clientbound},
		{"held item serverbound", &HeldItemChange{Slot: 300}, &HeldItemChange{}, protocol.Serverbound},
		{"held item clientbound", &HeldItemChange{Slot: 8}, &HeldItemChange{}, protocol.Clientbound},
		{"animation clientbound", &Animation{EntityID: 99, Animation: AnimationLeaveBed}, &Animation{}, protocol.Clientbound},
		{"animation serverbound", &Animation{}, &Animation{}, protocol.Serverbound},
		{"use entity attack", &UseEntity{Target: 5, Action: &UseEntityAttack{}}, &UseEntity{}, protocol.Serverbound},
		{"use entity interact at", &UseEntity{Target: 5, Action: &UseEntityInteractAt{TargetX: 0.5, TargetY: 1, TargetZ: -0.25}}, &UseEntity{}, protocol.Serverbound},
		{"use entity unknown", &UseEntity{Target: 5, Action: &UseEntityUnknown{Type: 9, Data: []byte{1, 2}}}, &UseEntity{}, protocol.Serverbound},
		{"combat dead", &CombatEvent{Event: &CombatEntityDead{PlayerID: 3, EntityID: 4, Message: "fell"}}, &CombatEvent{}, protocol.Clientbound},
		{"combat enter", &CombatEvent{Event: &CombatEnter{}}, &CombatEvent{}, protocol.Clientbound},
		{"block placement", &PlayerBlockPlacement{Location: wire.Position{X: 1, Y: 2, Z: 3}, Face: 1, HeldItem: ItemStack{ID: 1, Count: 64}, CursorX: 8}, &PlayerBlockPlacement{}, protocol.Serverbound},
		{"spawn object with velocity", &SpawnObject{EntityID: 1, Type: 60, X: 32, Data: 12, Velocity: Velocity{X: 100, Y: -50, Z: 7}}, &SpawnObject{}, protocol.Clientbound},
		{"spawn object without velocity", &SpawnObject{EntityID: 1, Type: 1}, &SpawnObject{}, protocol.Clientbound},
		{"spawn player", &SpawnPlayer{EntityID: 2, PlayerUUID: id, X: 10, Metadata: Metadata{{Index: 0, Type: MetaByte, Value: int8(0)}, {Index: 6, Type: MetaFloat, Value: float32(20)}}}, &SpawnPlayer{}, protocol.Clientbound},
		{"multi block change", &MultiBlockChange{ChunkX: -1, ChunkZ: 2, Records: []BlockRecord{{HorizontalPosition: 0x3F, Y: 64, BlockID: NewBlockState(35, 14)}}}, &MultiBlockChange{}, protocol.Clientbound},
		{"chunk data", &ChunkData{ChunkX: 1, ChunkZ: 2, GroundUpContinuous: true, PrimaryBitMask: 0x0001, Data: []byte{9, 9, 9}}, &ChunkData{}, protocol.Clientbound},
		{"map chunk bulk", &MapChunkBulk{SkyLightSent: true, Meta: []ChunkMeta{{ChunkX: 0, ChunkZ: 0, PrimaryBitMask: 1}, {ChunkX: 1, ChunkZ: 0, PrimaryBitMask: 3}}, Data: []byte{1, 2, 3, 4}}, &MapChunkBulk{}, protocol.Clientbound},
		{"explosion", &Explosion{X: 1, Y: 2, Z: 3, Radius: 4, Records: []ExplosionRecord{{X: 1, Y: -1, Z: 0}}, MotionY: 0.5}, &Explosion{}, protocol.Clientbound},
		{"particle with data", &Particle{ParticleID: 37, Count: 10, Data: []int32{1, 300}}, &Particle{}, protocol.Clientbound},
		{"map data with columns", &MapData{ItemDamage: 3, Scale: 1, Icons: []MapIcon{{DirectionAndType: 0x12, X: 4, Z: -4}}, Columns: 2, Rows: 1, X: 5, Z: 6, Data: []byte{7, 8}}, &MapData{}, protocol.Clientbound},
		{"update sign", &UpdateSign{Location: wire.Position{X: -5, Y: 70, Z: 5}, Line1: "a", Line4: "d"}, &UpdateSign{}, protocol.Serverbound},
		{"statistics", &Statistics{Entries: []Statistic{{Name: "stat.jump", Value: 12}}}, &Statistics{}, protocol.Clientbound},
		{"world border initialize", &WorldBorder{Action: &WorldBorderInitialize{X: 1, Z: 2, OldDiameter: 100, NewDiameter: 200, Speed: 60000, PortalTeleportBoundary: 29999984, WarningTime: 15, WarningBlocks: 5}}, &WorldBorder{}, protocol.Clientbound},
		{"world border lerp", &WorldBorder{Action: &WorldBorderLerpSize{OldDiameter: 10, NewDiameter: 20, Speed: 1 << 40}}, &WorldBorder{}, protocol.Clientbound},
		{"title times", &Title{Action: &TitleSetTimes{FadeIn: 10, Stay: 70, FadeOut: 20}}, &Title{}, protocol.Clientbound},
		{"title reset", &Title{Action: &TitleReset{}}, &Title{}, protocol.Clientbound},
		{"title unknown", &Title{Action: &TitleUnknown{Action: 7, Data: []byte{0xAA}}}, &Title{}, protocol.Clientbound},
		{"open horse window", &OpenWindow{WindowID: 1, WindowType: HorseWindowType, WindowTitle: `{"text":"Horse"}`, NumberOfSlots: 2, EntityID: 77}, &OpenWindow{}, protocol.Clientbound},
		{"open chest window", &OpenWindow{WindowID: 1, WindowType: "minecraft:chest", WindowTitle: `{"text":"Chest"}`, NumberOfSlots: 27}, &OpenWindow{}, protocol.Clientbound},
		{"window items", &WindowItems{WindowID: 0, Items: []ItemStack{EmptyItemStack(), {ID: 276, Count: 1, Damage: 3}}}, &WindowItems{}, protocol.Clientbound},
		{"tab complete request", &TabCompleteRequest{Text: "/tp ", HasPosition: true, LookedAtBlock: wire.Position{X: 1, Y: 2, Z: 3}}, &TabCompleteRequest{}, protocol.Serverbound},
		{"tab complete response", &TabCompleteResponse{Matches: []string{"/tp", "/time"}}, &TabCompleteResponse{}, protocol.Clientbound},
		{"plugin message", &PluginMessage{Channel: "MC|Brand", Data: []byte("vanilla")}, &PluginMessage{}, protocol.Clientbound},
		{"objective create", &ScoreboardObjective{Name: "kills", Action: &ObjectiveCreate{Value: "Kills", Type: "integer"}}, &ScoreboardObjective{}, protocol.Clientbound},
		{"objective remove", &ScoreboardObjective{Name: "kills", Action: &ObjectiveRemove{}}, &ScoreboardObjective{}, protocol.Clientbound},
		{"objective update", &ScoreboardObjective{Name: "kills", Action: &ObjectiveUpdate{Value: "Frags", Type: "hearts"}}, &ScoreboardObjective{}, protocol.Clientbound},
		{"objective unknown", &ScoreboardObjective{Name: "kills", Action: &ObjectiveUnknown{Mode: 9, Data: []byte{0x01, 0x02}}}, &ScoreboardObjective{}, protocol.Clientbound},
		{"score update", &UpdateScore{ScoreName: "Steve", ObjectiveName: "kills", Action: &ScoreUpdate{Value: 3}}, &UpdateScore{}, protocol.Clientbound},
		{"score remove", &UpdateScore{ScoreName: "Steve", ObjectiveName: "kills", Action: &ScoreRemove{}}, &UpdateScore{}, protocol.Clientbound},
		{"score unknown", &UpdateScore{ScoreName: "Steve", ObjectiveName: "kills", Action: &ScoreUnknown{Action: -1, Data: []byte{0x05}}}, &UpdateScore{}, protocol.Clientbound},
		{"team create", &Teams{Name: "red", Action: &TeamCreate{Info: TeamInfo{DisplayName: "Red", Prefix: "§c", FriendlyFire: 1, NameTagVisibility: "always", Color: 12}, Players: TeamPlayers{"Steve"}}}, &Teams{}, protocol.Clientbound},
		{"team create without players", &Teams{Name: "red", Action: &TeamCreate{Info: TeamInfo{DisplayName: "Red"}}}, &Teams{}, protocol.Clientbound},
		{"team remove", &Teams{Name: "red", Action: &TeamRemove{}}, &Teams{}, protocol.Clientbound},
		{"team update", &Teams{Name: "red", Action: &TeamUpdate{Info: TeamInfo{DisplayName: "Reds", NameTagVisibility: "never"}}}, &Teams{}, protocol.Clientbound},
		{"team add players", &Teams{Name: "red", Action: &TeamAddPlayers{Players: TeamPlayers{"Alex", "Steve"}}}, &Teams{}, protocol.Clientbound},
		{"team remove players", &Teams{Name: "red", Action: &TeamRemovePlayers{Players: TeamPlayers{"Alex"}}}, &Teams{}, protocol.Clientbound},
		{"team unknown", &Teams{Name: "red", Action: &TeamUnknown{Mode: 5, Data: []byte{0xFF}}}, &Teams{}, protocol.Clientbound},
		{"destroy nothing", &DestroyEntities{}, &DestroyEntities{}, protocol.Clientbound},
		{"empty window", &WindowItems{WindowID: 2}, &WindowItems{}, protocol.Clientbound},
		{"no completions", &TabCompleteResponse{}, &TabCompleteResponse{}, protocol.Clientbound},
		{"plugin message without data", &PluginMessage{Channel: "REGISTER"}, &PluginMessage{}, protocol.Serverbound},
		{"player list add", &PlayerListItem{Action: &PlayerListAddPlayers{Players: []PlayerListEntry{{
			UUID: id, Name: "Notch",
			Properties: []PlayerProperty{{Name: "textures", Value: "e30=", Signature: &sig}},
			GameMode:   1, Ping: 35, DisplayName: &display,
		}}}}, &PlayerListItem{}, protocol.Clientbound},
		{"player list latency", &PlayerListItem{Action: &PlayerListUpdateLatency{Players: []PlayerLatency{{UUID: id, Ping: 120}}}}, &PlayerListItem{}, protocol.Clientbound},
		{"player list remove", &PlayerListItem{Action: &PlayerListRemovePlayers{Players: []uuid.UUID{id}}}, &PlayerListItem{}, protocol.Clientbound},
		{"spectate", &Spectate{Target: id}, &Spectate{}, protocol.Serverbound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roundTrip(t, tt.in, tt.out, tt.dir)
		})
	}
}

func TestPositionAndLookStance(t *testing.T) {
	p := &PlayerPositionAndLook{X: 1, Stance: 2.62, Y: 1, Z: 3, Yaw: 4, Pitch: 5}

	serverbound := encode(t, p, protocol.Serverbound)
	clientbound := encode(t, p, protocol.Clientbound)
	if len(serverbound) != 41 {
		t.Errorf("serverbound length = %d, want 41", len(serverbound))
	}
	if len(clientbound) != 33 {
		t.Errorf("clientbound length = %d, want 33", len(clientbound))
	}

	var got PlayerPositionAndLook
	if err := got.Decode(wire.NewReader(clientbound), protocol.Clientbound); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Stance != 0 || got.Y != 1 || got.Z != 3 {
		t.Errorf("clientbound decode = %+v, want Stance 0 Y 1 Z 3", got)
	}
	if !(&PlayerPositionAndLook{Flags: RelativeY | RelativePitch}).IsRelative(RelativePitch) {
		t.Error("IsRelative(RelativePitch) = false")
	}
}

func TestHeldItemChangeWidth(t *testing.T) {
	p := &HeldItemChange{Slot: 4}
	if got := encode(t, p, protocol.Clientbound); !bytes.Equal(got, []byte{0x04}) {
		t.Errorf("clientbound = % x, want 04", got)
	}
	if got := encode(t, p, protocol.Serverbound); !bytes.Equal(got, []byte{0x00, 0x04}) {
		t.Errorf("serverbound = % x, want 00 04", got)
	}

	err := (&HeldItemChange{Slot: 200}).Encode(wire.NewWriter(), protocol.Clientbound)
	if !errors.Is(err, wire.ErrInvariantViolation) {
		t.Errorf("oversized clientbound slot: got %v, want ErrInvariantViolation", err)
	}
}

func TestChatPositionOnlyClientbound(t *testing.T) {
	p := &ChatMessage{Message: "a", Position: ChatPositionHotbar}
	if got := encode(t, p, protocol.Serverbound); !bytes.Equal(got, []byte{0x01, 'a'}) {
		t.Errorf("serverbound = % x, want 01 61", got)
	}
	if got := encode(t, p, protocol.Clientbound); !bytes.Equal(got, []byte{0x01, 'a', 0x02}) {
		t.Errorf("clientbound = % x, want 01 61 02", got)
	}
}

func TestClassifyClick(t *testing.T) {
	tests := []struct {
		name   string
		mode   uint8
		button uint8
		slot   int16
		want   ClickAction
	}{
		{"left click", 0, 0, 5, LeftClick},
		{"left click outside", 0, 0, OutsideWindow, DropAll},
		{"right click", 0, 1, 5, RightClick},
		{"right click outside", 0, 1, OutsideWindow, Drop},
		{"shift left", 1, 0, 3, ShiftLeftClick},
		{"shift right", 1, 1, 3, ShiftRightClick},
		{"number key 1", 2, 0, 36, NumKey1},
		{"number key 9", 2, 8, 36, NumKey9},
		{"number key out of range", 2, 9, 36, Invalid},
		{"middle click", 3, 2, 10, MiddleClick},
		{"middle mode wrong button", 3, 0, 10, Invalid},
		{"drop key", 4, 0, 10, Drop},
		{"ctrl drop key", 4, 1, 10, DropAll},
		{"drop mode wrong button", 4, 2, 10, Invalid},
		{"drop mode wrong button outside", 4, 5, OutsideWindow, Invalid},
		{"left edge empty hand", 4, 0, OutsideWindow, LeftClickEdgeWithEmptyHand},
		{"right edge empty hand", 4, 1, OutsideWindow, RightClickEdgeWithEmptyHand},
		{"start left paint", 5, 0, OutsideWindow, StartLeftClickPaint},
		{"left paint progress", 5, 1, 12, LeftMousePaintProgress},
		{"end left paint", 5, 2, OutsideWindow, EndLeftMousePaint},
		{"start right paint", 5, 4, OutsideWindow, StartRightClickPaint},
		{"right paint progress", 5, 5, 12, RightMousePaintProgress},
		{"end right paint", 5, 6, OutsideWindow, EndRightMousePaint},
		{"paint gap", 5, 3, 12, Invalid},
		{"double click", 6, 0, 12, DoubleClick},
		{"unknown mode", 7, 0, 12, Invalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyClick(tt.mode, tt.button, tt.slot); got != tt.want {
				t.Errorf("ClassifyClick(%d, %d, %d) = %v, want %v", tt.mode, tt.button, tt.slot, got, tt.want)
			}
		})
	}
}

func TestClickWindowDerivesAction(t *testing.T) {
	in := &ClickWindow{WindowID: 0, Slot: 3, Button: 1, ActionNumber: 12, Mode: 1, ClickedItem: EmptyItemStack(), Action: Invalid}
	data := encode(t, in, protocol.Serverbound)

	// window i8, slot i16, button u8, action i16, mode u8, empty slot i16
	if len(data) != 9 {
		t.Fatalf("encoded length = %d, want 9", len(data))
	}

	var out ClickWindow
	if err := out.Decode(wire.NewReader(data), protocol.Serverbound); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.Action != ShiftRightClick {
		t.Errorf("Action = %v, want ShiftRightClick", out.Action)
	}
	if out.Action.String() != "ShiftRightClick" {
		t.Errorf("String() = %q", out.Action.String())
	}
}

func TestTeamsFieldGroups(t *testing.T) {
	tests := []struct {
		name string
		team *Teams
		want []byte
	}{
		{"remove has neither group", &Teams{Name: "r", Action: TeamRemove{}}, []byte{0x01, 'r', 0x01}},
		{"update has only info", &Teams{Name: "r", Action: TeamUpdate{Info: TeamInfo{Color: 3}}}, []byte{0x01, 'r', 0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0x03}},
		{"remove players has only players", &Teams{Name: "r", Action: TeamRemovePlayers{Players: TeamPlayers{"x"}}}, []byte{0x01, 'r', 0x04, 0x01, 0x01, 'x'}},
		{"create has info then players", &Teams{Name: "r", Action: &TeamCreate{Players: TeamPlayers{"x"}}}, []byte{0x01, 'r', 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x01, 'x'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := encode(t, tt.team, protocol.Clientbound); !bytes.Equal(got, tt.want) {
				t.Errorf("Encode = % x, want % x", got, tt.want)
			}
		})
	}
}

func TestObjectiveUpdateCarriesValue(t *testing.T) {
	p := &ScoreboardObjective{Name: "o", Action: ObjectiveUpdate{Value: "V", Type: "hearts"}}
	got := encode(t, p, protocol.Clientbound)
	want := []byte{0x01, 'o', 0x02, 0x01, 'V', 0x06, 'h', 'e', 'a', 'r', 't', 's'}
	if !bytes.Equal(got, want) {
		t.Errorf("Encode = % x, want % x", got, want)
	}
}

func TestUnionUnknownKeepsPayload(t *testing.T) {
	frame := []byte{0x09, 0xDE, 0xAD}
	var wb WorldBorder
	if err := wb.Decode(wire.NewReader(frame), protocol.Clientbound); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	u, ok := wb.Action.(*WorldBorderUnknown)
	if !ok {
		t.Fatalf("Action = %T, want *WorldBorderUnknown", wb.Action)
	}
	if u.Action != 9 || !bytes.Equal(u.Data, []byte{0xDE, 0xAD}) {
		t.Errorf("unknown = %+v", u)
	}
	if got := encode(t, &wb, protocol.Clientbound); !bytes.Equal(got, frame) {
		t.Errorf("re-encoded = % x, want % x", got, frame)
	}
}

func TestUnionWithoutBranch(t *testing.T) {
	tests := []struct {
		name string
		p    protocol.Packet
	}{
		{"world border", &WorldBorder{}},
		{"title", &Title{}},
		{"combat event", &CombatEvent{}},
		{"use entity", &UseEntity{}},
		{"player list item", &PlayerListItem{}},
		{"scoreboard objective", &ScoreboardObjective{Name: "o"}},
		{"update score", &UpdateScore{ScoreName: "s"}},
		{"teams", &Teams{Name: "t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Encode(wire.NewWriter(), protocol.Clientbound)
			if !errors.Is(err, wire.ErrInvariantViolation) {
				t.Errorf("got %v, want ErrInvariantViolation", err)
			}
		})
	}
}

func TestItemStackNBT(t *testing.T) {
	var buf bytes.Buffer
	w := nbt.NewWriter(&buf)
	w.BeginCompound("")
	w.BeginCompound("display")
	w.String("Name", "Excalibur")
	w.End()
	w.End()
	if err := w.Err(); err != nil {
		t.Fatalf("build nbt: %v", err)
	}

	in := &SetSlot{WindowID: 0, Slot: 36, SlotData: ItemStack{ID: 276, Count: 1, NBT: buf.Bytes()}}
	roundTrip(t, in, &SetSlot{}, protocol.Clientbound)
}

func TestItemStackEmptyIsTwoBytes(t *testing.T) {
	got := encode(t, &CreativeInventoryAction{Slot: 1, ClickedItem: EmptyItemStack()}, protocol.Serverbound)
	want := []byte{0x00, 0x01, 0xFF, 0xFF}
	if !bytes.Equal(got, want) {
		t.Errorf("Encode = % x, want % x", got, want)
	}
}

func TestMetadataTypeMismatch(t *testing.T) {
	p := &EntityMetadata{EntityID: 1, Metadata: Metadata{{Index: 0, Type: MetaInt, Value: "nope"}}}
	err := p.Encode(wire.NewWriter(), protocol.Clientbound)
	if !errors.Is(err, wire.ErrInvariantViolation) {
		t.Errorf("got %v, want ErrInvariantViolation", err)
	}
}

func TestBlockState(t *testing.T) {
	s := NewBlockState(35, 14)
	if s != 35<<4|14 {
		t.Errorf("NewBlockState = %d", s)
	}
	if s.Type() != 35 || s.Meta() != 14 {
		t.Errorf("Type/Meta = %d/%d, want 35/14", s.Type(), s.Meta())
	}
	rec := BlockRecord{HorizontalPosition: 0xA3}
	if rec.X() != 0x0A || rec.Z() != 0x03 {
		t.Errorf("X/Z = %d/%d, want 10/3", rec.X(), rec.Z())
	}
}

func TestHandshakeNextMode(t *testing.T) {
	tests := []struct {
		next    int32
		want    protocol.Mode
		wantErr error
	}{
		{1, protocol.ModeStatus, nil},
		{2, protocol.ModeLogin, nil},
		{3, 0, protocol.ErrInvariantViolation},
	}

	for _, tt := range tests {
		got, err := (&Handshake{NextState: tt.next}).NextMode()
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("NextState %d: err = %v, want %v", tt.next, err, tt.wantErr)
		}
		if err == nil && got != tt.want {
			t.Errorf("NextState %d: mode = %v, want %v", tt.next, got, tt.want)
		}
	}
}
