package packet

import (
	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol"
	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol/wire"
)

// Handshake is sent by the client to begin a connection (serverbound 0x00).
// NextState is 1 for status and 2 for login.
type Handshake struct {
	ProtocolVersion int32  `mc:"varint"`
	ServerAddress   string `mc:"string"`
	ServerPort      uint16 `mc:"u16"`
	NextState       int32  `mc:"varint"`
}

func (p *Handshake) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *Handshake) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// NextMode returns the mode selected by NextState.
func (p *Handshake) NextMode() (protocol.Mode, error) {
	return protocol.ModeFromNextState(p.NextState)
}
