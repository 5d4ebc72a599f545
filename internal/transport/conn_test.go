package transport

import (
	"bytes"
	"net"
	"testing"
	"time"
)

func pipe(t *testing.T) (*Conn, *Conn) {
	t.Helper()
	a, b := net.Pipe()
	ca, cb := New(a), New(b)
	t.Cleanup(func() {
		ca.Close()
		cb.Close()
	})
	return ca, cb
}

func sendAsync(c *Conn, payload []byte) <-chan error {
	done := make(chan error, 1)
	go func() { done <- c.WriteFrame(payload) }()
	return done
}

func TestConnPlainAndCompressed(t *testing.T) {
	client, server := pipe(t)

	payload := []byte{0x00, 0x2F}
	done := sendAsync(client, payload)
	got, err := server.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("got % x, want % x", got, payload)
	}

	client.SetCompression(16)
	server.SetCompression(16)
	if r, w := server.Threshold(); r != 16 || w != 16 {
		t.Fatalf("Threshold = %d/%d, want 16/16", r, w)
	}

	large := bytes.Repeat([]byte("abc"), 100)
	done = sendAsync(client, large)
	got, err = server.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame compressed: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("WriteFrame compressed: %v", err)
	}
	if !bytes.Equal(got, large) {
		t.Errorf("compressed payload mismatch")
	}
}

func TestConnEncrypted(t *testing.T) {
	client, server := pipe(t)
	secret := []byte("0123456789abcdef")

	if err := client.EnableEncryption(secret); err != nil {
		t.Fatalf("client EnableEncryption: %v", err)
	}
	if err := server.EnableEncryption(secret); err != nil {
		t.Fatalf("server EnableEncryption: %v", err)
	}
	if err := server.EnableEncryption(secret); err == nil {
		t.Error("second EnableEncryption succeeded")
	}

	for _, payload := range [][]byte{{0x01, 0x02, 0x03}, []byte("second frame keeps the stream state")} {
		done := sendAsync(client, payload)
		got, err := server.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame: %v", err)
		}
		if err := <-done; err != nil {
			t.Fatalf("WriteFrame: %v", err)
		}
		if !bytes.Equal(got, payload) {
			t.Errorf("got % x, want % x", got, payload)
		}
	}
}

func TestSetCompressionNegativeDisables(t *testing.T) {
	a, _ := net.Pipe()
	c := New(a)
	defer c.Close()
	c.SetCompression(-5)
	if r, w := c.Threshold(); r != CompressionDisabled || w != CompressionDisabled {
		t.Errorf("Threshold = %d/%d, want %d", r, w, CompressionDisabled)
	}
}

func TestReadThresholdAppliesToBlockedRead(t *testing.T) {
	client, server := pipe(t)

	type result struct {
		payload []byte
		err     error
	}
	read := make(chan result, 1)
	go func() {
		p, err := server.ReadFrame()
		read <- result{p, err}
	}()
	// let the reader block on the length prefix first
	time.Sleep(20 * time.Millisecond)

	server.SetReadCompression(16)
	client.SetWriteCompression(16)

	payload := bytes.Repeat([]byte{0x00, 0x05}, 20)
	done := sendAsync(client, payload)
	got := <-read
	if got.err != nil {
		t.Fatalf("ReadFrame: %v", got.err)
	}
	if err := <-done; err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	if !bytes.Equal(got.payload, payload) {
		t.Errorf("got % x, want % x", got.payload, payload)
	}
}

func TestDirectionalThresholds(t *testing.T) {
	a, _ := net.Pipe()
	c := New(a)
	defer c.Close()

	c.SetReadCompression(64)
	if r, w := c.Threshold(); r != 64 || w != CompressionDisabled {
		t.Fatalf("after read: %d/%d, want 64/%d", r, w, CompressionDisabled)
	}
	c.SetWriteCompression(32)
	if r, w := c.Threshold(); r != 64 || w != 32 {
		t.Fatalf("after write: %d/%d, want 64/32", r, w)
	}
}
