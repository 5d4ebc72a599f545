// Package proxy is a logging man-in-the-middle for offline-mode servers.
// Every frame is decoded for logging and forwarded byte for byte. Players
// are named in the log from their login, the tab list, or a session server.
package proxy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/OCharnyshevich/minecraft-protocol/internal/conn"
	"github.com/OCharnyshevich/minecraft-protocol/pkg/identity"
	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol"
	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol/packet"
	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol/wire"
)

// lookupTimeout bounds a session server request made to name a player.
const lookupTimeout = 5 * time.Second

// Proxy accepts clients and relays them to one upstream server.
type Proxy struct {
	upstream string
	log      *slog.Logger
	dialer   net.Dialer

	players  *identity.OfflineResolver
	profiles *identity.Cache
}

func New(upstream string, log *slog.Logger) *Proxy {
	players := identity.NewOfflineResolver()
	return &Proxy{
		upstream: upstream,
		log:      log,
		players:  players,
		profiles: identity.NewCache(players),
	}
}

// UseSessionServer lets player lookups fall back to the session server at
// baseURL for UUIDs no login or tab list entry has named. It must be called
// before Start.
func (p *Proxy) UseSessionServer(baseURL string) {
	m := identity.NewMojangResolver()
	m.BaseURL = baseURL
	p.profiles = identity.NewCache(identity.Chain{p.players, m})
}

// Start listens on addr and blocks until the context is cancelled.
func (p *Proxy) Start(ctx context.Context, addr string) error {
	lc := net.ListenConfig{}
	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	p.log.Info("proxy started", "listen", listener.Addr().String(), "upstream", p.upstream)
	return p.Serve(ctx, listener)
}

// Serve accepts connections on listener until the context is cancelled.
// The listener is closed on return.
func (p *Proxy) Serve(ctx context.Context, listener net.Listener) error {
	defer listener.Close()
	stop := context.AfterFunc(ctx, func() { listener.Close() })
	defer stop()

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		c, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				p.log.Info("proxy shutting down")
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			p.log.Error("accept connection", "error", err)
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			p.relay(ctx, c)
		}()
	}
}

func (p *Proxy) relay(ctx context.Context, client net.Conn) {
	log := p.log.With("client", client.RemoteAddr().String())

	server, err := p.dialer.DialContext(ctx, "tcp", p.upstream)
	if err != nil {
		log.Error("dial upstream", "upstream", p.upstream, "error", err)
		client.Close()
		return
	}

	s := p.newSession(log)
	s.client = conn.New(client, protocol.Serverbound, s.codec, log)
	s.server = conn.New(server, protocol.Clientbound, s.codec, log)
	s.run(ctx)
}

func (p *Proxy) newSession(log *slog.Logger) *session {
	return &session{
		codec:    conn.NewCodec(log),
		log:      log,
		players:  p.players,
		profiles: p.profiles,
	}
}

// session is one client and its upstream connection. Both legs share one
// codec so that a transition seen on either side applies to both.
type session struct {
	codec  *conn.Codec
	client *conn.Connection
	server *conn.Connection
	log    *slog.Logger

	players  *identity.OfflineResolver
	profiles *identity.Cache
	lookups  sync.WaitGroup

	// raw is set once the login switches to encryption; frames can no
	// longer be read and both legs copy bytes.
	raw atomic.Bool
}

func (s *session) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, func() {
		s.client.Close()
		s.server.Close()
	})
	defer stop()

	s.log.Info("session started")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		defer cancel()
		s.finish(protocol.Serverbound, s.pump(ctx, protocol.Serverbound, s.client, s.server))
	}()
	go func() {
		defer wg.Done()
		defer cancel()
		s.finish(protocol.Clientbound, s.pump(ctx, protocol.Clientbound, s.server, s.client))
	}()
	wg.Wait()
	s.lookups.Wait()

	s.client.Close()
	s.server.Close()
	s.log.Info("session closed", "mode", s.codec.Mode())
}

func (s *session) finish(dir protocol.Direction, err error) {
	if err == nil || errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) || errors.Is(err, io.ErrClosedPipe) {
		return
	}
	s.log.Debug("relay stopped", "direction", dir, "error", err)
}

// pump forwards frames read from src to dst until either side fails.
func (s *session) pump(ctx context.Context, dir protocol.Direction, src, dst *conn.Connection) error {
	for !s.raw.Load() {
		frame, p, err := src.ReadFrame()
		if frame == nil {
			return err
		}
		if err != nil {
			s.log.Warn("decode packet", "direction", dir, "mode", s.codec.Mode(), "packet", frameName(s.codec, dir, frame), "error", err)
		} else {
			s.log.Debug("packet", "direction", dir, "mode", s.codec.Mode(), "packet", PacketName(p))
			s.observe(ctx, p)
		}

		// The flag is set before forwarding so the other leg sees it
		// once the peer's EncryptionResponse has passed.
		if _, ok := p.(*packet.EncryptionRequest); ok {
			s.log.Info("encryption requested, relaying raw bytes")
			s.raw.Store(true)
		}
		if err := dst.Forward(frame, p); err != nil {
			return err
		}
	}

	r, _ := src.Raw()
	_, w := dst.Raw()
	_, err := io.Copy(w, r)
	return err
}

// observe records player names as they pass and logs spawned players by
// name. Lookups run off the relay path.
func (s *session) observe(ctx context.Context, p protocol.Packet) {
	switch p := p.(type) {
	case *packet.LoginStart:
		id := s.players.Add(p.Name)
		s.log.Info("player logging in", "name", p.Name, "offline_uuid", id)
	case *packet.LoginSuccess:
		s.log.Info("login succeeded", "name", p.Username, "uuid", p.UUID)
	case *packet.PlayerListItem:
		add, ok := p.Action.(*packet.PlayerListAddPlayers)
		if !ok {
			return
		}
		for _, e := range add.Players {
			s.profiles.Put(identity.Identity{UUID: e.UUID, Name: e.Name, Properties: e.Properties})
		}
	case *packet.SpawnPlayer:
		s.lookups.Add(1)
		go s.announce(ctx, p.EntityID, p.PlayerUUID)
	}
}

func (s *session) announce(ctx context.Context, entityID int32, id uuid.UUID) {
	defer s.lookups.Done()
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	ident, err := s.profiles.Resolve(ctx, id)
	if err != nil {
		s.log.Debug("player spawned", "entity", entityID, "uuid", id, "error", err)
		return
	}
	s.log.Info("player spawned", "entity", entityID, "name", ident.Name, "uuid", id)
}

// PacketName returns a short name for p, with the id for opaque packets.
func PacketName(p protocol.Packet) string {
	if u, ok := p.(*packet.Unknown); ok {
		return fmt.Sprintf("Unknown(0x%02X)", u.ID)
	}
	return strings.TrimPrefix(fmt.Sprintf("%T", p), "*packet.")
}

func frameName(codec *conn.Codec, dir protocol.Direction, frame []byte) string {
	id, err := wire.NewReader(frame).ReadVarInt()
	if err != nil {
		return "?"
	}
	return fmt.Sprintf("%s(0x%02X)", codec.Name(dir, id), id)
}
