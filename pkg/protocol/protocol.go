// Package protocol defines the connection modes, packet directions and the
// Packet contract shared by the Minecraft 1.8 (protocol 47) codec.
package protocol

import (
	"fmt"

	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol/wire"
)

// Version is the protocol number spoken by this codec.
const Version = 47

// Mode is the connection state. It selects which slice of the dispatch
// table is consulted.
type Mode int

const (
	ModeHandshake Mode = iota
	ModeStatus
	ModeLogin
	ModePlay
)

func (m Mode) String() string {
	switch m {
	case ModeHandshake:
		return "handshake"
	case ModeStatus:
		return "status"
	case ModeLogin:
		return "login"
	case ModePlay:
		return "play"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ModeFromNextState maps a Handshake NextState value to the mode it selects.
func ModeFromNextState(next int32) (Mode, error) {
	switch next {
	case 1:
		return ModeStatus, nil
	case 2:
		return ModeLogin, nil
	default:
		return 0, fmt.Errorf("handshake next state %d: %w", next, ErrInvariantViolation)
	}
}

// Direction is the travel direction of a packet.
type Direction int

const (
	Serverbound Direction = iota
	Clientbound
)

func (d Direction) String() string {
	switch d {
	case Serverbound:
		return "serverbound"
	case Clientbound:
		return "clientbound"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Packet is a single decoded packet value. Implementations decode from and
// encode to the payload that follows the packet id. dir selects
// direction-specific layouts.
type Packet interface {
	Decode(r *wire.Reader, dir Direction) error
	Encode(w *wire.Writer, dir Direction) error
}

// ModeTransition is implemented by packets that move the connection to a
// new mode once they have been read or written.
type ModeTransition interface {
	NextMode() (Mode, error)
}

// Errors shared with the wire codec.
var (
	ErrUnexpectedEndOfStream = wire.ErrUnexpectedEndOfStream
	ErrMalformedVarInt       = wire.ErrMalformedVarInt
	ErrMalformedVarLong      = wire.ErrMalformedVarLong
	ErrInvalidEncoding       = wire.ErrInvalidEncoding
	ErrUnknownPacketId       = wire.ErrUnknownPacketId
	ErrInvariantViolation    = wire.ErrInvariantViolation
)
