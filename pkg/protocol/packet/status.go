package packet

import (
	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol"
	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol/wire"
)

// StatusRequest asks the server for its status JSON (serverbound 0x00).
type StatusRequest struct{}

func (*StatusRequest) Decode(*wire.Reader, protocol.Direction) error { return nil }
func (*StatusRequest) Encode(*wire.Writer, protocol.Direction) error { return nil }

// StatusResponse carries the server list JSON (clientbound 0x00).
type StatusResponse struct {
	JSON string `mc:"string"`
}

func (p *StatusResponse) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *StatusResponse) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// StatusPing is sent by the client to measure latency (serverbound 0x01).
type StatusPing struct {
	Payload int64 `mc:"i64"`
}

func (p *StatusPing) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *StatusPing) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// StatusPong echoes the ping payload (clientbound 0x01).
type StatusPong struct {
	Payload int64 `mc:"i64"`
}

func (p *StatusPong) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *StatusPong) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}
