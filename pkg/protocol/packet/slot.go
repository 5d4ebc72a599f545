package packet

import (
	"fmt"

	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol/nbt"
	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol/wire"
)

// EmptyItemID marks an empty inventory slot.
const EmptyItemID int16 = -1

// ItemStack is the contents of an inventory slot. An ID of -1 is an empty
// slot and carries no further fields. NBT holds the raw root tag, or nil
// when the stack has none.
type ItemStack struct {
	ID     int16
	Count  int8
	Damage int16
	NBT    []byte
}

// EmptyItemStack returns an empty slot.
func EmptyItemStack() ItemStack {
	return ItemStack{ID: EmptyItemID}
}

func (s ItemStack) Empty() bool {
	return s.ID == EmptyItemID
}

func (s *ItemStack) DecodeField(r *wire.Reader) error {
	id, err := r.ReadI16()
	if err != nil {
		return fmt.Errorf("read slot item id: %w", err)
	}
	if id == EmptyItemID {
		*s = EmptyItemStack()
		return nil
	}

	count, err := r.ReadI8()
	if err != nil {
		return fmt.Errorf("read slot count: %w", err)
	}
	damage, err := r.ReadI16()
	if err != nil {
		return fmt.Errorf("read slot damage: %w", err)
	}

	head, err := r.Peek(1)
	if err != nil {
		return fmt.Errorf("read slot nbt tag: %w", err)
	}
	var tag []byte
	if head[0] == nbt.TagEnd {
		_, _ = r.ReadByte()
	} else {
		tag, err = nbt.ReadRaw(r)
		if err != nil {
			return fmt.Errorf("read slot nbt: %w", err)
		}
	}

	*s = ItemStack{ID: id, Count: count, Damage: damage, NBT: tag}
	return nil
}

func (s *ItemStack) EncodeField(w *wire.Writer) error {
	w.WriteI16(s.ID)
	if s.Empty() {
		return nil
	}
	w.WriteI8(s.Count)
	w.WriteI16(s.Damage)
	if len(s.NBT) == 0 {
		w.WriteU8(nbt.TagEnd)
		return nil
	}
	w.WriteBytes(s.NBT)
	return nil
}

func readItemStack(r *wire.Reader) (ItemStack, error) {
	var s ItemStack
	err := s.DecodeField(r)
	return s, err
}

func writeItemStack(w *wire.Writer, s ItemStack) error {
	return s.EncodeField(w)
}
