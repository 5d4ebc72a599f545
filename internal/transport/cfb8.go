package transport

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"io"
)

// cfb8 is AES in 8-bit cipher feedback mode. Each byte is XORed with the
// first byte of the encrypted register, then the ciphertext byte is shifted
// into the register. Only the block's Encrypt direction is ever used.
type cfb8 struct {
	block    cipher.Block
	register [aes.BlockSize]byte
	pad      [aes.BlockSize]byte
	decrypt  bool
}

func newCFB8(block cipher.Block, iv []byte, decrypt bool) *cfb8 {
	c := &cfb8{block: block, decrypt: decrypt}
	copy(c.register[:], iv)
	return c
}

func (c *cfb8) XORKeyStream(dst, src []byte) {
	for i, in := range src {
		c.block.Encrypt(c.pad[:], c.register[:])
		out := in ^ c.pad[0]
		dst[i] = out

		ciphertext := out
		if c.decrypt {
			ciphertext = in
		}
		copy(c.register[:], c.register[1:])
		c.register[aes.BlockSize-1] = ciphertext
	}
}

// newStreams returns the write and read streams for a shared secret. The
// secret is both the AES key and the IV.
func newStreams(secret []byte) (enc, dec cipher.Stream, err error) {
	block, err := aes.NewCipher(secret)
	if err != nil {
		return nil, nil, fmt.Errorf("create AES cipher: %w", err)
	}
	return newCFB8(block, secret, false), newCFB8(block, secret, true), nil
}

type decryptReader struct {
	r      io.Reader
	stream cipher.Stream
}

func (d *decryptReader) Read(p []byte) (int, error) {
	n, err := d.r.Read(p)
	if n > 0 {
		d.stream.XORKeyStream(p[:n], p[:n])
	}
	return n, err
}

type encryptWriter struct {
	w      io.Writer
	stream cipher.Stream
}

func (e *encryptWriter) Write(p []byte) (int, error) {
	out := make([]byte, len(p))
	e.stream.XORKeyStream(out, p)
	return e.w.Write(out)
}
