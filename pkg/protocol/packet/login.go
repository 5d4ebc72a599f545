package packet

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol"
	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol/wire"
)

// LoginStart is sent by the client with their username (serverbound 0x00 in Login state).
type LoginStart struct {
	Name string `mc:"string"`
}

func (p *LoginStart) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *LoginStart) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// EncryptionRequest is sent by the server to initiate encryption (clientbound 0x01).
type EncryptionRequest struct {
	ServerID    string `mc:"string"`
	PublicKey   []byte `mc:"bytes:varint"`
	VerifyToken []byte `mc:"bytes:varint"`
}

func (p *EncryptionRequest) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *EncryptionRequest) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// EncryptionResponse is sent by the client with RSA-encrypted data (serverbound 0x01).
type EncryptionResponse struct {
	SharedSecret []byte `mc:"bytes:varint"`
	VerifyToken  []byte `mc:"bytes:varint"`
}

func (p *EncryptionResponse) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *EncryptionResponse) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// LoginSuccess completes the login sequence (clientbound 0x02). Reading or
// writing it moves the connection to play mode.
type LoginSuccess struct {
	UUID     string `mc:"string"`
	Username string `mc:"string"`
}

func (p *LoginSuccess) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *LoginSuccess) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

func (p *LoginSuccess) NextMode() (protocol.Mode, error) {
	return protocol.ModePlay, nil
}

// PlayerUUID parses the hyphenated UUID string.
func (p *LoginSuccess) PlayerUUID() (uuid.UUID, error) {
	id, err := uuid.Parse(p.UUID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse login uuid %q: %w", p.UUID, err)
	}
	return id, nil
}

// LoginDisconnect tells the client they are disconnected during login (clientbound 0x00).
type LoginDisconnect struct {
	Reason string `mc:"string"`
}

func (p *LoginDisconnect) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *LoginDisconnect) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// SetCompression enables compression for every later frame. It exists in
// login (clientbound 0x03) and, deprecated, in play (clientbound 0x46).
// A negative threshold disables compression.
type SetCompression struct {
	Threshold int32 `mc:"varint"`
}

func (p *SetCompression) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *SetCompression) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}
