package transport

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"sync"
)

// Conn frames packets over a net.Conn. Reads must come from one goroutine;
// writes are serialized internally.
type Conn struct {
	conn net.Conn
	br   *bufio.Reader

	r io.Reader
	w io.Writer

	mu sync.Mutex
	// Thresholds are tracked per direction. A relay raises the read side
	// before SetCompression goes out and the write side after it.
	readThreshold  int
	writeThreshold int
	encrypted      bool
}

func New(conn net.Conn) *Conn {
	br := bufio.NewReader(conn)
	return &Conn{
		conn:      conn,
		br:        br,
		r:         br,
		w:         conn,
		readThreshold:  CompressionDisabled,
		writeThreshold: CompressionDisabled,
	}
}

// ReadFrame returns the next frame payload. The read threshold is taken
// once the frame has arrived, so a change made while the read was blocked
// applies to that frame.
func (c *Conn) ReadFrame() ([]byte, error) {
	c.mu.Lock()
	r := c.r
	c.mu.Unlock()

	frame, err := readBody(r)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	threshold := c.readThreshold
	c.mu.Unlock()
	return unwrap(frame, threshold)
}

// WriteFrame sends payload as one frame.
func (c *Conn) WriteFrame(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return WriteFrame(c.w, payload, c.writeThreshold)
}

// SetCompression applies a threshold from SetCompression to both
// directions. A negative threshold disables compression.
func (c *Conn) SetCompression(threshold int) {
	c.SetReadCompression(threshold)
	c.SetWriteCompression(threshold)
}

// SetReadCompression sets the threshold for incoming frames only.
func (c *Conn) SetReadCompression(threshold int) {
	c.mu.Lock()
	c.readThreshold = normalizeThreshold(threshold)
	c.mu.Unlock()
}

// SetWriteCompression sets the threshold for outgoing frames only.
func (c *Conn) SetWriteCompression(threshold int) {
	c.mu.Lock()
	c.writeThreshold = normalizeThreshold(threshold)
	c.mu.Unlock()
}

// Threshold returns the current read and write compression thresholds.
func (c *Conn) Threshold() (read, write int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readThreshold, c.writeThreshold
}

func normalizeThreshold(threshold int) int {
	if threshold < 0 {
		return CompressionDisabled
	}
	return threshold
}

// EnableEncryption switches both directions to AES/CFB8 with the shared
// secret as key and IV. Bytes already buffered but not yet read are
// decrypted as well.
func (c *Conn) EnableEncryption(secret []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.encrypted {
		return fmt.Errorf("encryption already enabled")
	}
	enc, dec, err := newStreams(secret)
	if err != nil {
		return err
	}
	c.r = &decryptReader{r: c.br, stream: dec}
	c.w = &encryptWriter{w: c.conn, stream: enc}
	c.encrypted = true
	return nil
}

// Raw returns the underlying reader and writer, including any buffered
// input. It is used to fall back to a byte pipe.
func (c *Conn) Raw() (io.Reader, io.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.r, c.w
}

func (c *Conn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

func (c *Conn) Close() error {
	return c.conn.Close()
}
