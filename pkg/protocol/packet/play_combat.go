package packet

import (
	"fmt"

	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol"
	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol/wire"
)

// UseEntityAction is one of UseEntityInteract, UseEntityAttack,
// UseEntityInteractAt or UseEntityUnknown.
type UseEntityAction interface {
	useEntityType() int32
}

type UseEntityInteract struct{}

type UseEntityAttack struct{}

// UseEntityInteractAt carries the target point relative to the entity.
type UseEntityInteractAt struct {
	TargetX float32 `mc:"f32"`
	TargetY float32 `mc:"f32"`
	TargetZ float32 `mc:"f32"`
}

// UseEntityUnknown keeps an unrecognised action type and its payload.
type UseEntityUnknown struct {
	Type int32
	Data []byte
}

func (UseEntityInteract) useEntityType() int32   { return 0 }
func (UseEntityAttack) useEntityType() int32     { return 1 }
func (UseEntityInteractAt) useEntityType() int32 { return 2 }
func (u UseEntityUnknown) useEntityType() int32  { return u.Type }

// UseEntity is sent when the client attacks or right-clicks an entity
// (serverbound 0x02).
type UseEntity struct {
	Target int32
	Action UseEntityAction
}

func (p *UseEntity) Decode(r *wire.Reader, _ protocol.Direction) error {
	var err error
	if p.Target, err = r.ReadVarInt(); err != nil {
		return err
	}
	kind, err := r.ReadVarInt()
	if err != nil {
		return err
	}
	switch kind {
	case 0:
		p.Action = &UseEntityInteract{}
	case 1:
		p.Action = &UseEntityAttack{}
	case 2:
		at := &UseEntityInteractAt{}
		if err := protocol.Unmarshal(r, at); err != nil {
			return err
		}
		p.Action = at
	default:
		p.Action = &UseEntityUnknown{Type: kind, Data: r.ReadRest()}
	}
	return nil
}

func (p *UseEntity) Encode(w *wire.Writer, _ protocol.Direction) error {
	if p.Action == nil {
		return fmt.Errorf("use entity without action: %w", wire.ErrInvariantViolation)
	}
	w.WriteVarInt(p.Target)
	return writeBranch(w, p.Action.useEntityType(), p.Action)
}

// CombatEventBody is one of CombatEnter, CombatEnd, CombatEntityDead or
// CombatEventUnknown.
type CombatEventBody interface {
	combatEvent() int32
}

type CombatEnter struct{}

type CombatEnd struct {
	Duration int32 `mc:"varint"`
	EntityID int32 `mc:"i32"`
}

type CombatEntityDead struct {
	PlayerID int32  `mc:"varint"`
	EntityID int32  `mc:"i32"`
	Message  string `mc:"string"`
}

type CombatEventUnknown struct {
	Event int32
	Data  []byte
}

func (CombatEnter) combatEvent() int32          { return 0 }
func (CombatEnd) combatEvent() int32            { return 1 }
func (CombatEntityDead) combatEvent() int32     { return 2 }
func (c CombatEventUnknown) combatEvent() int32 { return c.Event }

// CombatEvent (clientbound 0x42).
type CombatEvent struct {
	Event CombatEventBody
}

func (p *CombatEvent) Decode(r *wire.Reader, _ protocol.Direction) error {
	event, err := r.ReadVarInt()
	if err != nil {
		return err
	}
	var body CombatEventBody
	switch event {
	case 0:
		body = &CombatEnter{}
	case 1:
		body = &CombatEnd{}
	case 2:
		body = &CombatEntityDead{}
	default:
		p.Event = &CombatEventUnknown{Event: event, Data: r.ReadRest()}
		return nil
	}
	if err := protocol.Unmarshal(r, body); err != nil {
		return err
	}
	p.Event = body
	return nil
}

func (p *CombatEvent) Encode(w *wire.Writer, _ protocol.Direction) error {
	if p.Event == nil {
		return fmt.Errorf("combat event without body: %w", wire.ErrInvariantViolation)
	}
	return writeBranch(w, p.Event.combatEvent(), p.Event)
}

// rawBranch is implemented by the Unknown variant of every tagged union.
type rawBranch interface {
	raw() []byte
}

func (u UseEntityUnknown) raw() []byte   { return u.Data }
func (c CombatEventUnknown) raw() []byte { return c.Data }

// writeBranch writes a VarInt discriminant followed by the branch body.
func writeBranch(w *wire.Writer, discriminant int32, body any) error {
	w.WriteVarInt(discriminant)
	return writeBody(w, body)
}

// writeBody marshals a branch body. Unknown branches re-emit their
// captured payload verbatim.
func writeBody(w *wire.Writer, body any) error {
	if rb, ok := body.(rawBranch); ok {
		w.WriteBytes(rb.raw())
		return nil
	}
	return protocol.Marshal(w, body)
}
