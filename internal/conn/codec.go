package conn

import (
	"log/slog"
	"sync"

	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol"
	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol/engine"
)

// Codec guards one engine.Engine so that the connections of a session can
// share its mode from different goroutines.
type Codec struct {
	mu  sync.Mutex
	eng *engine.Engine
}

func NewCodec(log *slog.Logger) *Codec {
	return &Codec{eng: engine.New(log)}
}

func (c *Codec) Decode(dir protocol.Direction, frame []byte) (protocol.Packet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eng.Decode(dir, frame)
}

func (c *Codec) Encode(dir protocol.Direction, p protocol.Packet) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eng.Encode(dir, p)
}

func (c *Codec) Mode() protocol.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eng.Mode()
}

// Name returns the registered name of id in the current mode.
func (c *Codec) Name(dir protocol.Direction, id int32) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eng.Name(dir, id)
}
