// Package engine turns frame payloads into packet values and back, and
// tracks the connection mode as Handshake and LoginSuccess go past.
package engine

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol"
	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol/registry"
	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol/wire"
)

// Decode reads a packet id and body from r using registry.Default and
// returns the packet together with the mode that follows it.
func Decode(mode protocol.Mode, dir protocol.Direction, r *wire.Reader) (protocol.Packet, protocol.Mode, error) {
	return decode(registry.Default, mode, dir, r)
}

// Encode writes the id and body of p to w using registry.Default and
// returns the mode that follows it.
func Encode(w *wire.Writer, mode protocol.Mode, dir protocol.Direction, p protocol.Packet) (protocol.Mode, error) {
	return encode(registry.Default, w, mode, dir, p)
}

func decode(table registry.Table, mode protocol.Mode, dir protocol.Direction, r *wire.Reader) (protocol.Packet, protocol.Mode, error) {
	id, err := r.ReadVarInt()
	if err != nil {
		return nil, mode, fmt.Errorf("decode %s %s packet id: %w", mode, dir, err)
	}
	p, err := table.Resolve(mode, dir, id)
	if err != nil {
		return nil, mode, fmt.Errorf("decode: %w", err)
	}
	if err := p.Decode(r, dir); err != nil {
		return nil, mode, fmt.Errorf("decode %s %s 0x%02X: %w", mode, dir, id, err)
	}
	if n := r.Remaining(); n > 0 {
		return nil, mode, fmt.Errorf("decode %s %s 0x%02X: %d trailing bytes: %w", mode, dir, id, n, protocol.ErrInvariantViolation)
	}
	next, err := transition(mode, p)
	if err != nil {
		return nil, mode, fmt.Errorf("decode %s %s 0x%02X: %w", mode, dir, id, err)
	}
	return p, next, nil
}

func encode(table registry.Table, w *wire.Writer, mode protocol.Mode, dir protocol.Direction, p protocol.Packet) (protocol.Mode, error) {
	id, err := table.IDOf(mode, dir, p)
	if err != nil {
		return mode, fmt.Errorf("encode: %w", err)
	}
	next, err := transition(mode, p)
	if err != nil {
		return mode, fmt.Errorf("encode %s %s 0x%02X: %w", mode, dir, id, err)
	}
	w.WriteVarInt(id)
	if err := p.Encode(w, dir); err != nil {
		return mode, fmt.Errorf("encode %s %s 0x%02X: %w", mode, dir, id, err)
	}
	return next, nil
}

func transition(mode protocol.Mode, p protocol.Packet) (protocol.Mode, error) {
	t, ok := p.(protocol.ModeTransition)
	if !ok {
		return mode, nil
	}
	return t.NextMode()
}

// Engine is the codec for one connection. It owns the current mode and is
// not safe for concurrent use.
type Engine struct {
	table registry.Table
	mode  protocol.Mode
	log   *slog.Logger
}

// New returns an Engine in handshake mode backed by registry.Default. A nil
// logger discards transition logs.
func New(log *slog.Logger) *Engine {
	return NewWithTable(registry.Default, log)
}

// NewWithTable is New with a caller-supplied dispatch table.
func NewWithTable(table registry.Table, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{table: table, mode: protocol.ModeHandshake, log: log}
}

// Mode returns the current connection mode.
func (e *Engine) Mode() protocol.Mode {
	return e.mode
}

// Reset puts the engine back into handshake mode.
func (e *Engine) Reset() {
	e.setMode(protocol.ModeHandshake)
}

// Decode decodes one frame payload (packet id followed by fields).
func (e *Engine) Decode(dir protocol.Direction, frame []byte) (protocol.Packet, error) {
	p, next, err := decode(e.table, e.mode, dir, wire.NewReader(frame))
	if err != nil {
		return nil, err
	}
	e.setMode(next)
	return p, nil
}

// Encode encodes p into a new frame payload.
func (e *Engine) Encode(dir protocol.Direction, p protocol.Packet) ([]byte, error) {
	w := wire.NewWriter()
	next, err := encode(e.table, w, e.mode, dir, p)
	if err != nil {
		return nil, err
	}
	e.setMode(next)
	return w.Bytes(), nil
}

// Name returns the registered name of id in the current mode.
func (e *Engine) Name(dir protocol.Direction, id int32) string {
	return e.table.Name(e.mode, dir, id)
}

func (e *Engine) setMode(next protocol.Mode) {
	if next == e.mode {
		return
	}
	e.log.Debug("mode transition", "from", e.mode, "to", next)
	e.mode = next
}
