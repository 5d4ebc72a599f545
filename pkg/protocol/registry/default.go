package registry

import (
	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol"
	p "github.com/OCharnyshevich/minecraft-protocol/pkg/protocol/packet"
)

// Per-mode tables of Default.
var (
	Handshake = NewRegistry(protocol.ModeHandshake)
	Status    = NewRegistry(protocol.ModeStatus)
	Login     = NewRegistry(protocol.ModeLogin)
	Play      = NewRegistry(protocol.ModePlay)
)

// Default is the protocol 47 dispatch table.
var Default = Table{
	protocol.ModeHandshake: Handshake,
	protocol.ModeStatus:    Status,
	protocol.ModeLogin:     Login,
	protocol.ModePlay:      Play,
}

func init() {
	Handshake.ServerBound.Register(&p.Handshake{}, 0x00)

	Status.ServerBound.Register(&p.StatusRequest{}, 0x00)
	Status.ServerBound.Register(&p.StatusPing{}, 0x01)
	Status.ClientBound.Register(&p.StatusResponse{}, 0x00)
	Status.ClientBound.Register(&p.StatusPong{}, 0x01)

	Login.ServerBound.Register(&p.LoginStart{}, 0x00)
	Login.ServerBound.Register(&p.EncryptionResponse{}, 0x01)
	Login.ClientBound.Register(&p.LoginDisconnect{}, 0x00)
	Login.ClientBound.Register(&p.EncryptionRequest{}, 0x01)
	Login.ClientBound.Register(&p.LoginSuccess{}, 0x02)
	Login.ClientBound.Register(&p.SetCompression{}, 0x03)

	// Play traffic outlives any single table revision; unknown ids are
	// carried through as opaque bytes.
	Play.ServerBound.Fallback = true
	Play.ClientBound.Fallback = true

	cb := Play.ClientBound
	cb.Register(&p.KeepAlive{}, 0x00)
	cb.Register(&p.JoinGame{}, 0x01)
	cb.Register(&p.ChatMessage{}, 0x02)
	cb.Register(&p.TimeUpdate{}, 0x03)
	cb.Register(&p.EntityEquipment{}, 0x04)
	cb.Register(&p.SpawnPosition{}, 0x05)
	cb.Register(&p.UpdateHealth{}, 0x06)
	cb.Register(&p.Respawn{}, 0x07)
	cb.Register(&p.PlayerPositionAndLook{}, 0x08)
	cb.Register(&p.HeldItemChange{}, 0x09)
	cb.Register(&p.UseBed{}, 0x0A)
	cb.Register(&p.Animation{}, 0x0B)
	cb.Register(&p.SpawnPlayer{}, 0x0C)
	cb.Register(&p.CollectItem{}, 0x0D)
	cb.Register(&p.SpawnObject{}, 0x0E)
	cb.Register(&p.SpawnMob{}, 0x0F)
	cb.Register(&p.SpawnPainting{}, 0x10)
	cb.Register(&p.SpawnExperienceOrb{}, 0x11)
	cb.Register(&p.EntityVelocity{}, 0x12)
	cb.Register(&p.DestroyEntities{}, 0x13)
	cb.Register(&p.Entity{}, 0x14)
	cb.Register(&p.EntityRelativeMove{}, 0x15)
	cb.Register(&p.EntityLook{}, 0x16)
	cb.Register(&p.EntityLookAndRelativeMove{}, 0x17)
	cb.Register(&p.EntityTeleport{}, 0x18)
	cb.Register(&p.EntityHeadLook{}, 0x19)
	cb.Register(&p.EntityStatus{}, 0x1A)
	cb.Register(&p.AttachEntity{}, 0x1B)
	cb.Register(&p.EntityMetadata{}, 0x1C)
	cb.Register(&p.EntityEffect{}, 0x1D)
	cb.Register(&p.RemoveEntityEffect{}, 0x1E)
	cb.Register(&p.SetExperience{}, 0x1F)
	cb.Register(&p.EntityProperties{}, 0x20)
	cb.Register(&p.ChunkData{}, 0x21)
	cb.Register(&p.MultiBlockChange{}, 0x22)
	cb.Register(&p.BlockChange{}, 0x23)
	cb.Register(&p.BlockAction{}, 0x24)
	cb.Register(&p.BlockBreakAnimation{}, 0x25)
	cb.Register(&p.MapChunkBulk{}, 0x26)
	cb.Register(&p.Explosion{}, 0x27)
	cb.Register(&p.Effect{}, 0x28)
	cb.Register(&p.SoundEffect{}, 0x29)
	cb.Register(&p.Particle{}, 0x2A)
	cb.Register(&p.ChangeGameState{}, 0x2B)
	cb.Register(&p.SpawnGlobalEntity{}, 0x2C)
	cb.Register(&p.OpenWindow{}, 0x2D)
	cb.Register(&p.CloseWindow{}, 0x2E)
	cb.Register(&p.SetSlot{}, 0x2F)
	cb.Register(&p.WindowItems{}, 0x30)
	cb.Register(&p.WindowProperty{}, 0x31)
	cb.Register(&p.ConfirmTransaction{}, 0x32)
	cb.Register(&p.UpdateSign{}, 0x33)
	cb.Register(&p.MapData{}, 0x34)
	cb.Register(&p.UpdateBlockEntity{}, 0x35)
	cb.Register(&p.OpenSignEditor{}, 0x36)
	cb.Register(&p.Statistics{}, 0x37)
	cb.Register(&p.PlayerListItem{}, 0x38)
	cb.Register(&p.PlayerAbilities{}, 0x39)
	cb.Register(&p.TabCompleteResponse{}, 0x3A)
	cb.Register(&p.ScoreboardObjective{}, 0x3B)
	cb.Register(&p.UpdateScore{}, 0x3C)
	cb.Register(&p.DisplayScoreboard{}, 0x3D)
	cb.Register(&p.Teams{}, 0x3E)
	cb.Register(&p.PluginMessage{}, 0x3F)
	cb.Register(&p.Disconnect{}, 0x40)
	cb.Register(&p.ServerDifficulty{}, 0x41)
	cb.Register(&p.CombatEvent{}, 0x42)
	cb.Register(&p.Camera{}, 0x43)
	cb.Register(&p.WorldBorder{}, 0x44)
	cb.Register(&p.Title{}, 0x45)
	cb.Register(&p.SetCompression{}, 0x46)
	cb.Register(&p.PlayerListHeaderFooter{}, 0x47)
	cb.Register(&p.ResourcePackSend{}, 0x48)
	cb.Register(&p.UpdateEntityNBT{}, 0x49)

	sb := Play.ServerBound
	sb.Register(&p.KeepAlive{}, 0x00)
	sb.Register(&p.ChatMessage{}, 0x01)
	sb.Register(&p.UseEntity{}, 0x02)
	sb.Register(&p.Player{}, 0x03)
	sb.Register(&p.PlayerPosition{}, 0x04)
	sb.Register(&p.PlayerLook{}, 0x05)
	sb.Register(&p.PlayerPositionAndLook{}, 0x06)
	sb.Register(&p.PlayerDigging{}, 0x07)
	sb.Register(&p.PlayerBlockPlacement{}, 0x08)
	sb.Register(&p.HeldItemChange{}, 0x09)
	sb.Register(&p.Animation{}, 0x0A)
	sb.Register(&p.EntityAction{}, 0x0B)
	sb.Register(&p.SteerVehicle{}, 0x0C)
	sb.Register(&p.CloseWindow{}, 0x0D)
	sb.Register(&p.ClickWindow{}, 0x0E)
	sb.Register(&p.ConfirmTransaction{}, 0x0F)
	sb.Register(&p.CreativeInventoryAction{}, 0x10)
	sb.Register(&p.EnchantItem{}, 0x11)
	sb.Register(&p.UpdateSign{}, 0x12)
	sb.Register(&p.PlayerAbilities{}, 0x13)
	sb.Register(&p.TabCompleteRequest{}, 0x14)
	sb.Register(&p.ClientSettings{}, 0x15)
	sb.Register(&p.ClientStatus{}, 0x16)
	sb.Register(&p.PluginMessage{}, 0x17)
	sb.Register(&p.Spectate{}, 0x18)
	sb.Register(&p.ResourcePackStatus{}, 0x19)
}
