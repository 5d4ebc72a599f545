package packet

import (
	"fmt"

	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol"
	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol/wire"
)

// OutsideWindow is the slot number of a click outside the inventory area.
const OutsideWindow int16 = -999

// HorseWindowType is the only window type followed by an entity id.
const HorseWindowType = "EntityHorse"

// OpenWindow (clientbound 0x2D). EntityID is on the wire only for horse
// windows.
type OpenWindow struct {
	WindowID      uint8
	WindowType    string
	WindowTitle   string
	NumberOfSlots uint8
	EntityID      int32
}

func (p *OpenWindow) Decode(r *wire.Reader, _ protocol.Direction) error {
	var err error
	if p.WindowID, err = r.ReadU8(); err != nil {
		return err
	}
	if p.WindowType, err = r.ReadString(); err != nil {
		return err
	}
	if p.WindowTitle, err = r.ReadString(); err != nil {
		return err
	}
	if p.NumberOfSlots, err = r.ReadU8(); err != nil {
		return err
	}
	p.EntityID = 0
	if p.WindowType == HorseWindowType {
		p.EntityID, err = r.ReadI32()
	}
	return err
}

func (p *OpenWindow) Encode(w *wire.Writer, _ protocol.Direction) error {
	w.WriteU8(p.WindowID)
	if err := w.WriteString(p.WindowType); err != nil {
		return err
	}
	if err := w.WriteString(p.WindowTitle); err != nil {
		return err
	}
	w.WriteU8(p.NumberOfSlots)
	if p.WindowType == HorseWindowType {
		w.WriteI32(p.EntityID)
	}
	return nil
}

// CloseWindow (clientbound 0x2E, serverbound 0x0D).
type CloseWindow struct {
	WindowID uint8 `mc:"u8"`
}

func (p *CloseWindow) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *CloseWindow) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// SetSlot (clientbound 0x2F). WindowID -1 with slot -1 sets the cursor item.
type SetSlot struct {
	WindowID int8      `mc:"i8"`
	Slot     int16     `mc:"i16"`
	SlotData ItemStack `mc:"field"`
}

func (p *SetSlot) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *SetSlot) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// WindowItems replaces every slot of a window (clientbound 0x30).
type WindowItems struct {
	WindowID uint8
	Items    []ItemStack
}

func (p *WindowItems) Decode(r *wire.Reader, _ protocol.Direction) error {
	var err error
	if p.WindowID, err = r.ReadU8(); err != nil {
		return err
	}
	p.Items, err = wire.ReadArray(r, wire.PrefixInt16, readItemStack)
	return err
}

func (p *WindowItems) Encode(w *wire.Writer, _ protocol.Direction) error {
	w.WriteU8(p.WindowID)
	return wire.WriteArray(w, wire.PrefixInt16, p.Items, writeItemStack)
}

// WindowProperty (clientbound 0x31).
type WindowProperty struct {
	WindowID uint8 `mc:"u8"`
	Property int16 `mc:"i16"`
	Value    int16 `mc:"i16"`
}

func (p *WindowProperty) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *WindowProperty) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// ConfirmTransaction (clientbound 0x32, serverbound 0x0F).
type ConfirmTransaction struct {
	WindowID     int8  `mc:"i8"`
	ActionNumber int16 `mc:"i16"`
	Accepted     bool  `mc:"bool"`
}

func (p *ConfirmTransaction) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *ConfirmTransaction) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// ClickAction is the user gesture behind a ClickWindow packet.
type ClickAction int

const (
	LeftClick ClickAction = iota
	RightClick
	ShiftLeftClick
	ShiftRightClick
	NumKey1
	NumKey2
	NumKey3
	NumKey4
	NumKey5
	NumKey6
	NumKey7
	NumKey8
	NumKey9
	MiddleClick
	Drop
	DropAll
	LeftClickEdgeWithEmptyHand
	RightClickEdgeWithEmptyHand
	StartLeftClickPaint
	StartRightClickPaint
	LeftMousePaintProgress
	RightMousePaintProgress
	EndLeftMousePaint
	EndRightMousePaint
	DoubleClick
	Invalid
)

var clickActionNames = [...]string{
	"LeftClick", "RightClick", "ShiftLeftClick", "ShiftRightClick",
	"NumKey1", "NumKey2", "NumKey3", "NumKey4", "NumKey5",
	"NumKey6", "NumKey7", "NumKey8", "NumKey9",
	"MiddleClick", "Drop", "DropAll",
	"LeftClickEdgeWithEmptyHand", "RightClickEdgeWithEmptyHand",
	"StartLeftClickPaint", "StartRightClickPaint",
	"LeftMousePaintProgress", "RightMousePaintProgress",
	"EndLeftMousePaint", "EndRightMousePaint",
	"DoubleClick", "Invalid",
}

func (a ClickAction) String() string {
	if a < 0 || int(a) >= len(clickActionNames) {
		return fmt.Sprintf("ClickAction(%d)", int(a))
	}
	return clickActionNames[a]
}

// ClassifyClick derives the gesture from the mode, button and slot of a
// window click. Combinations the client never sends are Invalid.
func ClassifyClick(mode, button uint8, slot int16) ClickAction {
	switch mode {
	case 0:
		switch button {
		case 0:
			if slot == OutsideWindow {
				return DropAll
			}
			return LeftClick
		case 1:
			if slot == OutsideWindow {
				return Drop
			}
			return RightClick
		}
	case 1:
		switch button {
		case 0:
			return ShiftLeftClick
		case 1:
			return ShiftRightClick
		}
	case 2:
		if button <= 8 {
			return NumKey1 + ClickAction(button)
		}
	case 3:
		if button == 2 {
			return MiddleClick
		}
	case 4:
		switch button {
		case 0:
			if slot == OutsideWindow {
				return LeftClickEdgeWithEmptyHand
			}
			return Drop
		case 1:
			if slot == OutsideWindow {
				return RightClickEdgeWithEmptyHand
			}
			return DropAll
		}
	case 5:
		switch button {
		case 0:
			return StartLeftClickPaint
		case 1:
			return LeftMousePaintProgress
		case 2:
			return EndLeftMousePaint
		case 4:
			return StartRightClickPaint
		case 5:
			return RightMousePaintProgress
		case 6:
			return EndRightMousePaint
		}
	case 6:
		return DoubleClick
	}
	return Invalid
}

// ClickWindow is sent when the player clicks a window slot (serverbound
// 0x0E). Action is derived from Mode, Button and Slot on decode and is
// never written.
type ClickWindow struct {
	WindowID     int8      `mc:"i8"`
	Slot         int16     `mc:"i16"`
	Button       uint8     `mc:"u8"`
	ActionNumber int16     `mc:"i16"`
	Mode         uint8     `mc:"u8"`
	ClickedItem  ItemStack `mc:"field"`

	Action ClickAction
}

func (p *ClickWindow) Decode(r *wire.Reader, _ protocol.Direction) error {
	if err := protocol.Unmarshal(r, p); err != nil {
		return err
	}
	p.Action = ClassifyClick(p.Mode, p.Button, p.Slot)
	return nil
}

func (p *ClickWindow) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// CreativeInventoryAction (serverbound 0x10).
type CreativeInventoryAction struct {
	Slot        int16     `mc:"i16"`
	ClickedItem ItemStack `mc:"field"`
}

func (p *CreativeInventoryAction) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *CreativeInventoryAction) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// EnchantItem (serverbound 0x11). Enchantment is the table row, 0 to 2.
type EnchantItem struct {
	WindowID    int8 `mc:"i8"`
	Enchantment int8 `mc:"i8"`
}

func (p *EnchantItem) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *EnchantItem) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}
