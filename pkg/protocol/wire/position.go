package wire

import "fmt"

// Position is a block coordinate packed into a single int64:
// X in the high 26 bits, Y in the middle 12 bits and Z in the low 26 bits.
type Position struct {
	X, Y, Z int32
}

// Pack encodes p into its 64-bit wire form. Components outside their bit
// width are truncated.
func (p Position) Pack() int64 {
	return (int64(p.X)&0x3FFFFFF)<<38 | (int64(p.Y)&0xFFF)<<26 | int64(p.Z)&0x3FFFFFF
}

// UnpackPosition decodes a packed position, sign-extending each component.
func UnpackPosition(val int64) Position {
	x := int32(val >> 38)
	y := int32((val >> 26) & 0xFFF)
	z := int32(val & 0x3FFFFFF)

	if x >= 1<<25 {
		x -= 1 << 26
	}
	if y >= 1<<11 {
		y -= 1 << 12
	}
	if z >= 1<<25 {
		z -= 1 << 26
	}
	return Position{X: x, Y: y, Z: z}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.X, p.Y, p.Z)
}
