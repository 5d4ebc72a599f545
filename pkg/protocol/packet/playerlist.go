package packet

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol"
	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol/wire"
)

// PlayerProperty is a signed profile property, usually "textures".
type PlayerProperty struct {
	Name      string
	Value     string
	Signature *string
}

// PlayerListEntry is one player added to the tab list.
type PlayerListEntry struct {
	UUID        uuid.UUID
	Name        string
	Properties  []PlayerProperty
	GameMode    int32
	Ping        int32
	DisplayName *string
}

type PlayerGameMode struct {
	UUID     uuid.UUID `mc:"uuid"`
	GameMode int32     `mc:"varint"`
}

type PlayerLatency struct {
	UUID uuid.UUID `mc:"uuid"`
	Ping int32     `mc:"varint"`
}

type PlayerDisplayName struct {
	UUID        uuid.UUID
	DisplayName *string
}

// PlayerListAction is one of the PlayerList* branches.
type PlayerListAction interface {
	playerListAction() int32
	encodePlayers(w *wire.Writer) error
}

type PlayerListAddPlayers struct {
	Players []PlayerListEntry
}

type PlayerListUpdateGameMode struct {
	Players []PlayerGameMode
}

type PlayerListUpdateLatency struct {
	Players []PlayerLatency
}

type PlayerListUpdateDisplayName struct {
	Players []PlayerDisplayName
}

type PlayerListRemovePlayers struct {
	Players []uuid.UUID
}

type PlayerListUnknown struct {
	Action int32
	Data   []byte
}

func (PlayerListAddPlayers) playerListAction() int32        { return 0 }
func (PlayerListUpdateGameMode) playerListAction() int32    { return 1 }
func (PlayerListUpdateLatency) playerListAction() int32     { return 2 }
func (PlayerListUpdateDisplayName) playerListAction() int32 { return 3 }
func (PlayerListRemovePlayers) playerListAction() int32     { return 4 }
func (u PlayerListUnknown) playerListAction() int32         { return u.Action }

// PlayerListItem edits the tab list (clientbound 0x38).
type PlayerListItem struct {
	Action PlayerListAction
}

func (p *PlayerListItem) Decode(r *wire.Reader, _ protocol.Direction) error {
	action, err := r.ReadVarInt()
	if err != nil {
		return err
	}
	switch action {
	case 0:
		players, err := wire.ReadArray(r, wire.PrefixVarInt, readPlayerListEntry)
		p.Action = &PlayerListAddPlayers{Players: players}
		return err
	case 1:
		players, err := wire.ReadArray(r, wire.PrefixVarInt, func(r *wire.Reader) (PlayerGameMode, error) {
			var e PlayerGameMode
			return e, protocol.Unmarshal(r, &e)
		})
		p.Action = &PlayerListUpdateGameMode{Players: players}
		return err
	case 2:
		players, err := wire.ReadArray(r, wire.PrefixVarInt, func(r *wire.Reader) (PlayerLatency, error) {
			var e PlayerLatency
			return e, protocol.Unmarshal(r, &e)
		})
		p.Action = &PlayerListUpdateLatency{Players: players}
		return err
	case 3:
		players, err := wire.ReadArray(r, wire.PrefixVarInt, func(r *wire.Reader) (PlayerDisplayName, error) {
			var e PlayerDisplayName
			var err error
			if e.UUID, err = r.ReadUUID(); err != nil {
				return e, err
			}
			e.DisplayName, err = readOptionalString(r)
			return e, err
		})
		p.Action = &PlayerListUpdateDisplayName{Players: players}
		return err
	case 4:
		players, err := wire.ReadArray(r, wire.PrefixVarInt, (*wire.Reader).ReadUUID)
		p.Action = &PlayerListRemovePlayers{Players: players}
		return err
	default:
		p.Action = &PlayerListUnknown{Action: action, Data: r.ReadRest()}
		return nil
	}
}

func (p *PlayerListItem) Encode(w *wire.Writer, _ protocol.Direction) error {
	if p.Action == nil {
		return fmt.Errorf("player list item without action: %w", wire.ErrInvariantViolation)
	}
	w.WriteVarInt(p.Action.playerListAction())
	return p.Action.encodePlayers(w)
}

func (a PlayerListAddPlayers) encodePlayers(w *wire.Writer) error {
	return wire.WriteArray(w, wire.PrefixVarInt, a.Players, writePlayerListEntry)
}

func (a PlayerListUpdateGameMode) encodePlayers(w *wire.Writer) error {
	return wire.WriteArray(w, wire.PrefixVarInt, a.Players, func(w *wire.Writer, e PlayerGameMode) error {
		return protocol.Marshal(w, &e)
	})
}

func (a PlayerListUpdateLatency) encodePlayers(w *wire.Writer) error {
	return wire.WriteArray(w, wire.PrefixVarInt, a.Players, func(w *wire.Writer, e PlayerLatency) error {
		return protocol.Marshal(w, &e)
	})
}

func (a PlayerListUpdateDisplayName) encodePlayers(w *wire.Writer) error {
	return wire.WriteArray(w, wire.PrefixVarInt, a.Players, func(w *wire.Writer, e PlayerDisplayName) error {
		w.WriteUUID(e.UUID)
		return writeOptionalString(w, e.DisplayName)
	})
}

func (a PlayerListRemovePlayers) encodePlayers(w *wire.Writer) error {
	return wire.WriteArray(w, wire.PrefixVarInt, a.Players, func(w *wire.Writer, id uuid.UUID) error {
		w.WriteUUID(id)
		return nil
	})
}

func (u PlayerListUnknown) encodePlayers(w *wire.Writer) error {
	w.WriteBytes(u.Data)
	return nil
}

func readPlayerListEntry(r *wire.Reader) (PlayerListEntry, error) {
	var (
		e   PlayerListEntry
		err error
	)
	if e.UUID, err = r.ReadUUID(); err != nil {
		return e, err
	}
	if e.Name, err = r.ReadString(); err != nil {
		return e, err
	}
	e.Properties, err = wire.ReadArray(r, wire.PrefixVarInt, func(r *wire.Reader) (PlayerProperty, error) {
		var (
			prop PlayerProperty
			err  error
		)
		if prop.Name, err = r.ReadString(); err != nil {
			return prop, err
		}
		if prop.Value, err = r.ReadString(); err != nil {
			return prop, err
		}
		prop.Signature, err = readOptionalString(r)
		return prop, err
	})
	if err != nil {
		return e, err
	}
	if e.GameMode, err = r.ReadVarInt(); err != nil {
		return e, err
	}
	if e.Ping, err = r.ReadVarInt(); err != nil {
		return e, err
	}
	e.DisplayName, err = readOptionalString(r)
	return e, err
}

func writePlayerListEntry(w *wire.Writer, e PlayerListEntry) error {
	w.WriteUUID(e.UUID)
	if err := w.WriteString(e.Name); err != nil {
		return err
	}
	err := wire.WriteArray(w, wire.PrefixVarInt, e.Properties, func(w *wire.Writer, prop PlayerProperty) error {
		if err := w.WriteString(prop.Name); err != nil {
			return err
		}
		if err := w.WriteString(prop.Value); err != nil {
			return err
		}
		return writeOptionalString(w, prop.Signature)
	})
	if err != nil {
		return err
	}
	w.WriteVarInt(e.GameMode)
	w.WriteVarInt(e.Ping)
	return writeOptionalString(w, e.DisplayName)
}
