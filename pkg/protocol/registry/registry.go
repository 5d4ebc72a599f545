// Package registry maps (mode, direction, packet id) to packet types and
// back. Default holds the protocol 47 table.
package registry

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/scylladb/go-set/i32set"

	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol"
	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol/packet"
)

// PacketRegistry is the id table for one mode and direction.
type PacketRegistry struct {
	// Fallback makes unknown ids resolve to packet.Unknown instead of
	// failing with ErrUnknownPacketId.
	Fallback bool

	byID   map[int32]reflect.Type
	byType map[reflect.Type]int32
}

func NewPacketRegistry() *PacketRegistry {
	return &PacketRegistry{
		byID:   make(map[int32]reflect.Type),
		byType: make(map[reflect.Type]int32),
	}
}

// Register binds id to the type of p, which must be a pointer to a struct.
// Registering the same id or type twice panics, since it is a programming
// error in the table itself.
func (r *PacketRegistry) Register(p protocol.Packet, id int32) {
	t := reflect.TypeOf(p)
	if t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("registry: %T is not a pointer to a struct", p))
	}
	if prev, ok := r.byID[id]; ok {
		panic(fmt.Sprintf("registry: id 0x%02X already bound to %s", id, prev.Elem().Name()))
	}
	if prev, ok := r.byType[t]; ok {
		panic(fmt.Sprintf("registry: %s already bound to id 0x%02X", t.Elem().Name(), prev))
	}
	r.byID[id] = t
	r.byType[t] = id
}

// New returns a fresh zero packet for id. An unknown id yields a
// packet.Unknown carrying the id when Fallback is set.
func (r *PacketRegistry) New(id int32) (protocol.Packet, error) {
	t, ok := r.byID[id]
	if !ok {
		if r.Fallback {
			return &packet.Unknown{ID: id}, nil
		}
		return nil, fmt.Errorf("packet id 0x%02X: %w", id, protocol.ErrUnknownPacketId)
	}
	return reflect.New(t.Elem()).Interface().(protocol.Packet), nil
}

// ID returns the id registered for the type of p. A packet.Unknown reports
// its own id when Fallback is set.
func (r *PacketRegistry) ID(p protocol.Packet) (int32, error) {
	if u, ok := p.(*packet.Unknown); ok {
		if !r.Fallback {
			return 0, fmt.Errorf("unknown packet 0x%02X: %w", u.ID, protocol.ErrUnknownPacketId)
		}
		return u.ID, nil
	}
	id, ok := r.byType[reflect.TypeOf(p)]
	if !ok {
		return 0, fmt.Errorf("packet %T: %w", p, protocol.ErrUnknownPacketId)
	}
	return id, nil
}

// Name returns the Go type name registered for id, or "" when unknown.
func (r *PacketRegistry) Name(id int32) string {
	t, ok := r.byID[id]
	if !ok {
		return ""
	}
	return t.Elem().Name()
}

// IDs returns the set of registered ids.
func (r *PacketRegistry) IDs() *i32set.Set {
	s := i32set.NewWithSize(len(r.byID))
	for id := range r.byID {
		s.Add(id)
	}
	return s
}

// Sorted returns the registered ids in ascending order.
func (r *PacketRegistry) Sorted() []int32 {
	ids := r.IDs().List()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Registry holds both directions of one mode.
type Registry struct {
	Mode        protocol.Mode
	ServerBound *PacketRegistry
	ClientBound *PacketRegistry
}

func NewRegistry(mode protocol.Mode) *Registry {
	return &Registry{
		Mode:        mode,
		ServerBound: NewPacketRegistry(),
		ClientBound: NewPacketRegistry(),
	}
}

// Direction returns the table for dir.
func (r *Registry) Direction(dir protocol.Direction) *PacketRegistry {
	if dir == protocol.Clientbound {
		return r.ClientBound
	}
	return r.ServerBound
}

// Table is a full dispatch table, one Registry per mode.
type Table map[protocol.Mode]*Registry

func (t Table) lookup(mode protocol.Mode, dir protocol.Direction) (*PacketRegistry, error) {
	reg, ok := t[mode]
	if !ok {
		return nil, fmt.Errorf("mode %s: %w", mode, protocol.ErrInvariantViolation)
	}
	return reg.Direction(dir), nil
}

// Resolve returns a fresh packet for id in the given mode and direction.
func (t Table) Resolve(mode protocol.Mode, dir protocol.Direction, id int32) (protocol.Packet, error) {
	reg, err := t.lookup(mode, dir)
	if err != nil {
		return nil, err
	}
	p, err := reg.New(id)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", mode, dir, err)
	}
	return p, nil
}

// IDOf is the inverse of Resolve.
func (t Table) IDOf(mode protocol.Mode, dir protocol.Direction, p protocol.Packet) (int32, error) {
	reg, err := t.lookup(mode, dir)
	if err != nil {
		return 0, err
	}
	id, err := reg.ID(p)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", mode, dir, err)
	}
	return id, nil
}

// IDs returns the registered ids for mode and dir, or an empty set.
func (t Table) IDs(mode protocol.Mode, dir protocol.Direction) *i32set.Set {
	reg, err := t.lookup(mode, dir)
	if err != nil {
		return i32set.New()
	}
	return reg.IDs()
}

// Name returns the packet name for id, or "" when unknown.
func (t Table) Name(mode protocol.Mode, dir protocol.Direction, id int32) string {
	reg, err := t.lookup(mode, dir)
	if err != nil {
		return ""
	}
	return reg.Name(id)
}

// Resolve looks id up in Default.
func Resolve(mode protocol.Mode, dir protocol.Direction, id int32) (protocol.Packet, error) {
	return Default.Resolve(mode, dir, id)
}

// IDOf looks p up in Default.
func IDOf(mode protocol.Mode, dir protocol.Direction, p protocol.Packet) (int32, error) {
	return Default.IDOf(mode, dir, p)
}

// IDs returns the ids Default registers for mode and dir.
func IDs(mode protocol.Mode, dir protocol.Direction) *i32set.Set {
	return Default.IDs(mode, dir)
}
