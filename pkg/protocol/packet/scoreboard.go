package packet

import (
	"fmt"

	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol"
	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol/wire"
)

// The scoreboard packets select their branch with a single signed byte
// rather than a VarInt.

// ObjectiveAction is one of the Objective* branches.
type ObjectiveAction interface {
	objectiveMode() int8
}

type ObjectiveCreate struct {
	Value string `mc:"string"`
	Type  string `mc:"string"`
}

type ObjectiveRemove struct{}

type ObjectiveUpdate struct {
	Value string `mc:"string"`
	Type  string `mc:"string"`
}

type ObjectiveUnknown struct {
	Mode int8
	Data []byte
}

func (ObjectiveCreate) objectiveMode() int8    { return 0 }
func (ObjectiveRemove) objectiveMode() int8    { return 1 }
func (ObjectiveUpdate) objectiveMode() int8    { return 2 }
func (u ObjectiveUnknown) objectiveMode() int8 { return u.Mode }
func (u ObjectiveUnknown) raw() []byte         { return u.Data }

// ScoreboardObjective (clientbound 0x3B).
type ScoreboardObjective struct {
	Name   string
	Action ObjectiveAction
}

func (p *ScoreboardObjective) Decode(r *wire.Reader, _ protocol.Direction) error {
	var err error
	if p.Name, err = r.ReadString(); err != nil {
		return err
	}
	mode, err := r.ReadI8()
	if err != nil {
		return err
	}
	var body ObjectiveAction
	switch mode {
	case 0:
		body = &ObjectiveCreate{}
	case 1:
		body = &ObjectiveRemove{}
	case 2:
		body = &ObjectiveUpdate{}
	default:
		p.Action = &ObjectiveUnknown{Mode: mode, Data: r.ReadRest()}
		return nil
	}
	if err := protocol.Unmarshal(r, body); err != nil {
		return err
	}
	p.Action = body
	return nil
}

func (p *ScoreboardObjective) Encode(w *wire.Writer, _ protocol.Direction) error {
	if p.Action == nil {
		return fmt.Errorf("scoreboard objective without action: %w", wire.ErrInvariantViolation)
	}
	if err := w.WriteString(p.Name); err != nil {
		return err
	}
	w.WriteI8(p.Action.objectiveMode())
	return writeBody(w, p.Action)
}

// ScoreAction is one of the Score* branches.
type ScoreAction interface {
	scoreAction() int8
}

type ScoreUpdate struct {
	Value int32 `mc:"varint"`
}

type ScoreRemove struct{}

type ScoreUnknown struct {
	Action int8
	Data   []byte
}

func (ScoreUpdate) scoreAction() int8    { return 0 }
func (ScoreRemove) scoreAction() int8    { return 1 }
func (u ScoreUnknown) scoreAction() int8 { return u.Action }
func (u ScoreUnknown) raw() []byte       { return u.Data }

// UpdateScore (clientbound 0x3C). The action byte sits between the two
// names on the wire; the branch body follows the objective name.
type UpdateScore struct {
	ScoreName     string
	ObjectiveName string
	Action        ScoreAction
}

func (p *UpdateScore) Decode(r *wire.Reader, _ protocol.Direction) error {
	var err error
	if p.ScoreName, err = r.ReadString(); err != nil {
		return err
	}
	action, err := r.ReadI8()
	if err != nil {
		return err
	}
	if p.ObjectiveName, err = r.ReadString(); err != nil {
		return err
	}
	var body ScoreAction
	switch action {
	case 0:
		body = &ScoreUpdate{}
	case 1:
		body = &ScoreRemove{}
	default:
		p.Action = &ScoreUnknown{Action: action, Data: r.ReadRest()}
		return nil
	}
	if err := protocol.Unmarshal(r, body); err != nil {
		return err
	}
	p.Action = body
	return nil
}

func (p *UpdateScore) Encode(w *wire.Writer, _ protocol.Direction) error {
	if p.Action == nil {
		return fmt.Errorf("update score without action: %w", wire.ErrInvariantViolation)
	}
	if err := w.WriteString(p.ScoreName); err != nil {
		return err
	}
	w.WriteI8(p.Action.scoreAction())
	if err := w.WriteString(p.ObjectiveName); err != nil {
		return err
	}
	return writeBody(w, p.Action)
}

// Scoreboard display slots.
const (
	DisplayList      int8 = 0
	DisplaySidebar   int8 = 1
	DisplayBelowName int8 = 2
)

// DisplayScoreboard (clientbound 0x3D).
type DisplayScoreboard struct {
	Position  int8   `mc:"i8"`
	ScoreName string `mc:"string"`
}

func (p *DisplayScoreboard) Decode(r *wire.Reader, _ protocol.Direction) error {
	return protocol.Unmarshal(r, p)
}

func (p *DisplayScoreboard) Encode(w *wire.Writer, _ protocol.Direction) error {
	return protocol.Marshal(w, p)
}

// TeamInfo is the descriptive part of a team, sent on create and update.
type TeamInfo struct {
	DisplayName       string `mc:"string"`
	Prefix            string `mc:"string"`
	Suffix            string `mc:"string"`
	FriendlyFire      int8   `mc:"i8"`
	NameTagVisibility string `mc:"string"`
	Color             int8   `mc:"i8"`
}

func (t *TeamInfo) DecodeField(r *wire.Reader) error {
	return protocol.Unmarshal(r, t)
}

func (t *TeamInfo) EncodeField(w *wire.Writer) error {
	return protocol.Marshal(w, t)
}

// TeamPlayers is a VarInt-counted list of member names.
type TeamPlayers []string

func (p *TeamPlayers) DecodeField(r *wire.Reader) error {
	players, err := wire.ReadArray(r, wire.PrefixVarInt, (*wire.Reader).ReadString)
	*p = players
	return err
}

func (p *TeamPlayers) EncodeField(w *wire.Writer) error {
	return wire.WriteArray(w, wire.PrefixVarInt, *p, writeString)
}

// TeamAction is one of the Team* branches. The info and player groups are
// shared: create carries both, update only the info, and the two player
// edits only the players.
type TeamAction interface {
	teamMode() int8
}

type TeamCreate struct {
	Info    TeamInfo    `mc:"field"`
	Players TeamPlayers `mc:"field"`
}

type TeamRemove struct{}

type TeamUpdate struct {
	Info TeamInfo `mc:"field"`
}

type TeamAddPlayers struct {
	Players TeamPlayers `mc:"field"`
}

type TeamRemovePlayers struct {
	Players TeamPlayers `mc:"field"`
}

type TeamUnknown struct {
	Mode int8
	Data []byte
}

func (TeamCreate) teamMode() int8        { return 0 }
func (TeamRemove) teamMode() int8        { return 1 }
func (TeamUpdate) teamMode() int8        { return 2 }
func (TeamAddPlayers) teamMode() int8    { return 3 }
func (TeamRemovePlayers) teamMode() int8 { return 4 }
func (u TeamUnknown) teamMode() int8     { return u.Mode }
func (u TeamUnknown) raw() []byte        { return u.Data }

// Teams (clientbound 0x3E).
type Teams struct {
	Name   string
	Action TeamAction
}

func (p *Teams) Decode(r *wire.Reader, _ protocol.Direction) error {
	var err error
	if p.Name, err = r.ReadString(); err != nil {
		return err
	}
	mode, err := r.ReadI8()
	if err != nil {
		return err
	}
	var body TeamAction
	switch mode {
	case 0:
		body = &TeamCreate{}
	case 1:
		body = &TeamRemove{}
	case 2:
		body = &TeamUpdate{}
	case 3:
		body = &TeamAddPlayers{}
	case 4:
		body = &TeamRemovePlayers{}
	default:
		p.Action = &TeamUnknown{Mode: mode, Data: r.ReadRest()}
		return nil
	}
	if err := protocol.Unmarshal(r, body); err != nil {
		return err
	}
	p.Action = body
	return nil
}

func (p *Teams) Encode(w *wire.Writer, _ protocol.Direction) error {
	if p.Action == nil {
		return fmt.Errorf("teams without action: %w", wire.ErrInvariantViolation)
	}
	if err := w.WriteString(p.Name); err != nil {
		return err
	}
	w.WriteI8(p.Action.teamMode())
	return writeBody(w, p.Action)
}
