// Package conn pairs a framed transport with a protocol codec and runs the
// per-connection read loop.
package conn

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"

	"github.com/OCharnyshevich/minecraft-protocol/internal/transport"
	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol"
	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol/packet"
)

// Handler receives every packet read by Connection.Handle.
type Handler interface {
	HandlePacket(ctx context.Context, c *Connection, p protocol.Packet) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, c *Connection, p protocol.Packet) error

func (f HandlerFunc) HandlePacket(ctx context.Context, c *Connection, p protocol.Packet) error {
	return f(ctx, c, p)
}

// Connection reads packets travelling in one direction and writes packets
// travelling in the other.
type Connection struct {
	tc    *transport.Conn
	codec *Codec
	in    protocol.Direction
	out   protocol.Direction
	log   *slog.Logger
}

// New wraps nc. in is the direction of packets arriving on nc: Serverbound
// for the server side of a client connection, Clientbound for a connection
// dialled to a server.
func New(nc net.Conn, in protocol.Direction, codec *Codec, log *slog.Logger) *Connection {
	out := protocol.Clientbound
	if in == protocol.Clientbound {
		out = protocol.Serverbound
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if codec == nil {
		codec = NewCodec(log)
	}
	return &Connection{
		tc:    transport.New(nc),
		codec: codec,
		in:    in,
		out:   out,
		log:   log.With("addr", nc.RemoteAddr().String()),
	}
}

// Mode returns the current protocol mode.
func (c *Connection) Mode() protocol.Mode {
	return c.codec.Mode()
}

// Logger returns the connection-scoped logger.
func (c *Connection) Logger() *slog.Logger {
	return c.log
}

// ReadFrame reads one frame and decodes it. The raw payload is returned
// alongside the packet so that it can be forwarded unchanged.
func (c *Connection) ReadFrame() ([]byte, protocol.Packet, error) {
	frame, err := c.tc.ReadFrame()
	if err != nil {
		return nil, nil, err
	}
	p, err := c.codec.Decode(c.in, frame)
	if err != nil {
		return frame, nil, err
	}
	c.received(p)
	return frame, p, nil
}

// ReadPacket reads and decodes the next packet.
func (c *Connection) ReadPacket() (protocol.Packet, error) {
	_, p, err := c.ReadFrame()
	return p, err
}

// WritePacket encodes p and sends it.
func (c *Connection) WritePacket(p protocol.Packet) error {
	frame, err := c.codec.Encode(c.out, p)
	if err != nil {
		return err
	}
	return c.Forward(frame, p)
}

// Forward sends a frame that has already been encoded, then applies the
// transport side effects of p. p may be nil for opaque frames.
//
// A forwarded SetCompression raises the read threshold before the frame is
// written, since the peer may answer compressed as soon as it arrives. The
// frame itself still goes out at the old write threshold.
func (c *Connection) Forward(frame []byte, p protocol.Packet) error {
	sc, compressing := p.(*packet.SetCompression)
	if compressing {
		c.tc.SetReadCompression(int(sc.Threshold))
	}
	if err := c.tc.WriteFrame(frame); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	if compressing {
		c.tc.SetWriteCompression(int(sc.Threshold))
		c.log.Debug("compression enabled", "threshold", sc.Threshold)
	}
	return nil
}

// received reacts to packets read from the peer that change how frames
// are carried.
func (c *Connection) received(p protocol.Packet) {
	if sc, ok := p.(*packet.SetCompression); ok {
		c.tc.SetCompression(int(sc.Threshold))
		c.log.Debug("compression enabled", "threshold", sc.Threshold)
	}
}

// EnableEncryption switches the transport to AES/CFB8.
func (c *Connection) EnableEncryption(secret []byte) error {
	return c.tc.EnableEncryption(secret)
}

// Raw returns the transport's reader and writer for byte-level piping.
func (c *Connection) Raw() (io.Reader, io.Writer) {
	return c.tc.Raw()
}

func (c *Connection) Close() error {
	return c.tc.Close()
}

// Handle reads packets and passes them to h until the peer disconnects,
// ctx is cancelled, or an error occurs. The connection is closed on return.
func (c *Connection) Handle(ctx context.Context, h Handler) error {
	stop := context.AfterFunc(ctx, func() { c.Close() })
	defer func() {
		stop()
		c.Close()
		c.log.Info("connection closed")
	}()

	c.log.Info("connection accepted")

	for {
		p, err := c.ReadPacket()
		if err == nil {
			err = h.HandlePacket(ctx, c, p)
		}
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
				return nil
			}
			c.log.Error("handling packet", "mode", c.Mode(), "error", err)
			return err
		}
	}
}
