// Package nbt frames and builds Named Binary Tag payloads embedded in
// packets. It does not interpret tag trees; callers that need structure
// decode the raw bytes themselves.
package nbt

import (
	"fmt"

	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol/wire"
)

// NBT tag type IDs.
const (
	TagEnd       byte = 0
	TagByte      byte = 1
	TagShort     byte = 2
	TagInt       byte = 3
	TagLong      byte = 4
	TagFloat     byte = 5
	TagDouble    byte = 6
	TagByteArray byte = 7
	TagString    byte = 8
	TagList      byte = 9
	TagCompound  byte = 10
	TagIntArray  byte = 11
)

const maxDepth = 512

// ReadRaw consumes one root tag from r and returns its bytes unchanged.
// A lone TagEnd byte stands for "no tag" and is returned as a one-byte slice.
func ReadRaw(r *wire.Reader) ([]byte, error) {
	start := r.Offset()
	rest, err := r.Peek(r.Remaining())
	if err != nil {
		return nil, err
	}
	if err := Skip(r); err != nil {
		return nil, err
	}
	n := r.Offset() - start
	out := make([]byte, n)
	copy(out, rest[:n])
	return out, nil
}

// Skip advances r past one named root tag.
func Skip(r *wire.Reader) error {
	tagType, err := r.ReadU8()
	if err != nil {
		return fmt.Errorf("read nbt tag type: %w", err)
	}
	if tagType == TagEnd {
		return nil
	}
	if err := skipName(r); err != nil {
		return err
	}
	return skipPayload(r, tagType, 0)
}

func skipName(r *wire.Reader) error {
	n, err := r.ReadU16()
	if err != nil {
		return fmt.Errorf("read nbt name length: %w", err)
	}
	if _, err := r.ReadBytes(int(n)); err != nil {
		return fmt.Errorf("read nbt name: %w", err)
	}
	return nil
}

func skipPayload(r *wire.Reader, tagType byte, depth int) error {
	if depth > maxDepth {
		return fmt.Errorf("nbt nesting deeper than %d: %w", maxDepth, wire.ErrInvariantViolation)
	}

	switch tagType {
	case TagByte:
		return skipN(r, 1)
	case TagShort:
		return skipN(r, 2)
	case TagInt, TagFloat:
		return skipN(r, 4)
	case TagLong, TagDouble:
		return skipN(r, 8)
	case TagByteArray:
		return skipCounted(r, 1)
	case TagIntArray:
		return skipCounted(r, 4)
	case TagString:
		n, err := r.ReadU16()
		if err != nil {
			return err
		}
		return skipN(r, int(n))
	case TagList:
		elem, err := r.ReadU8()
		if err != nil {
			return err
		}
		count, err := r.ReadI32()
		if err != nil {
			return err
		}
		if count < 0 {
			return fmt.Errorf("nbt list length %d: %w", count, wire.ErrInvariantViolation)
		}
		for i := int32(0); i < count; i++ {
			if err := skipPayload(r, elem, depth+1); err != nil {
				return err
			}
		}
		return nil
	case TagCompound:
		for {
			child, err := r.ReadU8()
			if err != nil {
				return err
			}
			if child == TagEnd {
				return nil
			}
			if err := skipName(r); err != nil {
				return err
			}
			if err := skipPayload(r, child, depth+1); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("nbt tag type %d: %w", tagType, wire.ErrInvariantViolation)
	}
}

func skipN(r *wire.Reader, n int) error {
	_, err := r.ReadBytes(n)
	return err
}

func skipCounted(r *wire.Reader, width int) error {
	count, err := r.ReadI32()
	if err != nil {
		return err
	}
	if count < 0 {
		return fmt.Errorf("nbt array length %d: %w", count, wire.ErrInvariantViolation)
	}
	return skipN(r, int(count)*width)
}
