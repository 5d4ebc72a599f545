package packet

import (
	"fmt"

	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol"
	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol/wire"
)

// TabCompleteRequest asks the server to complete Text (serverbound 0x14).
// LookedAtBlock is on the wire only when HasPosition is set.
type TabCompleteRequest struct {
	Text          string
	HasPosition   bool
	LookedAtBlock wire.Position
}

func (p *TabCompleteRequest) Decode(r *wire.Reader, _ protocol.Direction) error {
	var err error
	if p.Text, err = r.ReadString(); err != nil {
		return err
	}
	if p.HasPosition, err = r.ReadBool(); err != nil {
		return err
	}
	p.LookedAtBlock = wire.Position{}
	if p.HasPosition {
		p.LookedAtBlock, err = r.ReadPosition()
	}
	return err
}

func (p *TabCompleteRequest) Encode(w *wire.Writer, _ protocol.Direction) error {
	if err := w.WriteString(p.Text); err != nil {
		return err
	}
	w.WriteBool(p.HasPosition)
	if p.HasPosition {
		w.WritePosition(p.LookedAtBlock)
	}
	return nil
}

// TabCompleteResponse lists completions (clientbound 0x3A).
type TabCompleteResponse struct {
	Matches []string
}

func (p *TabCompleteResponse) Decode(r *wire.Reader, _ protocol.Direction) error {
	var err error
	p.Matches, err = wire.ReadArray(r, wire.PrefixVarInt, (*wire.Reader).ReadString)
	return err
}

func (p *TabCompleteResponse) Encode(w *wire.Writer, _ protocol.Direction) error {
	return wire.WriteArray(w, wire.PrefixVarInt, p.Matches, writeString)
}

// PluginMessage carries a mod channel payload (clientbound 0x3F,
// serverbound 0x17). Data runs to the end of the frame.
type PluginMessage struct {
	Channel string `mc:"string"`
	Data    []byte `mc:"rest"`
}

func (p *PluginMessage) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *PluginMessage) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// Disconnect closes a play connection with a JSON reason (clientbound 0x40).
type Disconnect struct {
	Reason string `mc:"string"`
}

func (p *Disconnect) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *Disconnect) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// PlayerListHeaderFooter (clientbound 0x47).
type PlayerListHeaderFooter struct {
	Header string `mc:"string"`
	Footer string `mc:"string"`
}

func (p *PlayerListHeaderFooter) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *PlayerListHeaderFooter) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// ResourcePackSend (clientbound 0x48).
type ResourcePackSend struct {
	URL  string `mc:"string"`
	Hash string `mc:"string"`
}

func (p *ResourcePackSend) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *ResourcePackSend) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// Resource pack results.
const (
	ResourcePackLoaded   int32 = 0
	ResourcePackDeclined int32 = 1
	ResourcePackFailed   int32 = 2
	ResourcePackAccepted int32 = 3
)

// ResourcePackStatus (serverbound 0x19).
type ResourcePackStatus struct {
	Hash   string `mc:"string"`
	Result int32  `mc:"varint"`
}

func (p *ResourcePackStatus) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *ResourcePackStatus) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// TitleAction is one of the Title* branches.
type TitleAction interface {
	titleAction() int32
}

type TitleSetTitle struct {
	Text string `mc:"string"`
}

type TitleSetSubtitle struct {
	Text string `mc:"string"`
}

// TitleSetTimes values are in ticks.
type TitleSetTimes struct {
	FadeIn  int32 `mc:"i32"`
	Stay    int32 `mc:"i32"`
	FadeOut int32 `mc:"i32"`
}

type TitleClear struct{}

type TitleReset struct{}

type TitleUnknown struct {
	Action int32
	Data   []byte
}

func (TitleSetTitle) titleAction() int32    { return 0 }
func (TitleSetSubtitle) titleAction() int32 { return 1 }
func (TitleSetTimes) titleAction() int32    { return 2 }
func (TitleClear) titleAction() int32       { return 3 }
func (TitleReset) titleAction() int32       { return 4 }
func (u TitleUnknown) titleAction() int32   { return u.Action }
func (u TitleUnknown) raw() []byte          { return u.Data }

// Title (clientbound 0x45).
type Title struct {
	Action TitleAction
}

func (p *Title) Decode(r *wire.Reader, _ protocol.Direction) error {
	action, err := r.ReadVarInt()
	if err != nil {
		return err
	}
	var body TitleAction
	switch action {
	case 0:
		body = &TitleSetTitle{}
	case 1:
		body = &TitleSetSubtitle{}
	case 2:
		body = &TitleSetTimes{}
	case 3:
		body = &TitleClear{}
	case 4:
		body = &TitleReset{}
	default:
		p.Action = &TitleUnknown{Action: action, Data: r.ReadRest()}
		return nil
	}
	if err := protocol.Unmarshal(r, body); err != nil {
		return err
	}
	p.Action = body
	return nil
}

func (p *Title) Encode(w *wire.Writer, _ protocol.Direction) error {
	if p.Action == nil {
		return fmt.Errorf("title without action: %w", wire.ErrInvariantViolation)
	}
	return writeBranch(w, p.Action.titleAction(), p.Action)
}
