// Package identity resolves player UUIDs to names and skin properties
// before PlayerListItem and SpawnPlayer packets are built. The codec never
// performs lookups itself.
package identity

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol/packet"
)

var ErrNotFound = errors.New("identity not found")

// Identity is what a client needs to render another player.
type Identity struct {
	UUID       uuid.UUID
	Name       string
	Properties []packet.PlayerProperty
}

// Resolver looks up a player by UUID.
type Resolver interface {
	Resolve(ctx context.Context, id uuid.UUID) (Identity, error)
}

// OfflineUUID returns the UUID an offline-mode server assigns to name:
// a version 3 UUID over the MD5 of "OfflinePlayer:" + name.
func OfflineUUID(name string) uuid.UUID {
	h := md5.Sum([]byte("OfflinePlayer:" + name))
	h[6] = h[6]&0x0f | 0x30
	h[8] = h[8]&0x3f | 0x80
	return uuid.UUID(h)
}

// OfflineResolver resolves the offline UUIDs of the names it has seen.
type OfflineResolver struct {
	mu    sync.RWMutex
	names map[uuid.UUID]string
}

func NewOfflineResolver(names ...string) *OfflineResolver {
	r := &OfflineResolver{names: make(map[uuid.UUID]string, len(names))}
	for _, name := range names {
		r.Add(name)
	}
	return r
}

// Add records name and returns its offline UUID.
func (r *OfflineResolver) Add(name string) uuid.UUID {
	id := OfflineUUID(name)
	r.mu.Lock()
	r.names[id] = name
	r.mu.Unlock()
	return id
}

func (r *OfflineResolver) Resolve(_ context.Context, id uuid.UUID) (Identity, error) {
	r.mu.RLock()
	name, ok := r.names[id]
	r.mu.RUnlock()
	if !ok {
		return Identity{}, fmt.Errorf("offline player %s: %w", id, ErrNotFound)
	}
	return Identity{UUID: id, Name: name}, nil
}

// StaticResolver is a fixed map of identities.
type StaticResolver map[uuid.UUID]Identity

func (s StaticResolver) Resolve(_ context.Context, id uuid.UUID) (Identity, error) {
	ident, ok := s[id]
	if !ok {
		return Identity{}, fmt.Errorf("player %s: %w", id, ErrNotFound)
	}
	return ident, nil
}

// Chain tries each resolver in turn and returns the first hit.
type Chain []Resolver

func (c Chain) Resolve(ctx context.Context, id uuid.UUID) (Identity, error) {
	for _, r := range c {
		ident, err := r.Resolve(ctx, id)
		if err == nil {
			return ident, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return Identity{}, err
		}
	}
	return Identity{}, fmt.Errorf("player %s: %w", id, ErrNotFound)
}

// Cache remembers identities, either stored with Put or returned by the
// resolver behind it. Misses are not cached.
type Cache struct {
	next Resolver

	mu  sync.RWMutex
	ids map[uuid.UUID]Identity
}

// NewCache returns a cache in front of next. next may be nil, in which case
// only stored identities resolve.
func NewCache(next Resolver) *Cache {
	return &Cache{next: next, ids: make(map[uuid.UUID]Identity)}
}

// Put stores ident, replacing any earlier entry for its UUID.
func (c *Cache) Put(ident Identity) {
	c.mu.Lock()
	c.ids[ident.UUID] = ident
	c.mu.Unlock()
}

func (c *Cache) Resolve(ctx context.Context, id uuid.UUID) (Identity, error) {
	c.mu.RLock()
	ident, ok := c.ids[id]
	c.mu.RUnlock()
	if ok {
		return ident, nil
	}
	if c.next == nil {
		return Identity{}, fmt.Errorf("player %s: %w", id, ErrNotFound)
	}
	ident, err := c.next.Resolve(ctx, id)
	if err != nil {
		return Identity{}, err
	}
	c.Put(ident)
	return ident, nil
}

// Presence is the tab-list state of a player.
type Presence struct {
	UUID        uuid.UUID
	GameMode    int32
	Ping        int32
	DisplayName *string
}

// PlayerListAdd resolves every player and builds the add-players packet.
func PlayerListAdd(ctx context.Context, r Resolver, players ...Presence) (*packet.PlayerListItem, error) {
	entries := make([]packet.PlayerListEntry, 0, len(players))
	for _, pr := range players {
		ident, err := r.Resolve(ctx, pr.UUID)
		if err != nil {
			return nil, fmt.Errorf("resolve player list entry: %w", err)
		}
		entries = append(entries, packet.PlayerListEntry{
			UUID:        pr.UUID,
			Name:        ident.Name,
			Properties:  ident.Properties,
			GameMode:    pr.GameMode,
			Ping:        pr.Ping,
			DisplayName: pr.DisplayName,
		})
	}
	return &packet.PlayerListItem{Action: &packet.PlayerListAddPlayers{Players: entries}}, nil
}

// Placement is where a spawned player appears, in blocks and degrees.
type Placement struct {
	X, Y, Z     float64
	Yaw, Pitch  float32
	CurrentItem int16
}

// SpawnPlayer resolves id and returns the PlayerListItem that must reach the
// client first together with the SpawnPlayer packet.
func SpawnPlayer(ctx context.Context, r Resolver, entityID int32, id uuid.UUID, at Placement, meta packet.Metadata) (*packet.PlayerListItem, *packet.SpawnPlayer, error) {
	list, err := PlayerListAdd(ctx, r, Presence{UUID: id})
	if err != nil {
		return nil, nil, err
	}
	spawn := &packet.SpawnPlayer{
		EntityID:    entityID,
		PlayerUUID:  id,
		X:           fixedPoint(at.X),
		Y:           fixedPoint(at.Y),
		Z:           fixedPoint(at.Z),
		Yaw:         angle(at.Yaw),
		Pitch:       angle(at.Pitch),
		CurrentItem: at.CurrentItem,
		Metadata:    meta,
	}
	return list, spawn, nil
}

// fixedPoint converts blocks to the 1/32 block units of entity packets.
func fixedPoint(v float64) int32 {
	return int32(math.Floor(v * 32))
}

// angle converts degrees to 1/256 of a turn.
func angle(deg float32) int8 {
	return int8(int32(math.Floor(float64(deg) * 256 / 360)))
}
