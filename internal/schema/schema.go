// Package schema reads the packet id tables of PrismarineJS minecraft-data
// and checks them against the dispatch table.
package schema

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	get "github.com/hashicorp/go-getter"
	"github.com/scylladb/go-set/strset"

	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol"
)

// Phases are the protocol.json sections that carry packets, in mode order.
var Phases = []string{"handshaking", "status", "login", "play"}

var phaseModes = map[string]protocol.Mode{
	"handshaking": protocol.ModeHandshake,
	"status":      protocol.ModeStatus,
	"login":       protocol.ModeLogin,
	"play":        protocol.ModePlay,
}

// Packet is one id mapping from protocol.json.
type Packet struct {
	ID   int32
	Name string
}

// Table is the id mapping of one mode and direction.
type Table struct {
	Mode      protocol.Mode
	Direction protocol.Direction
	Packets   []Packet
}

// Protocol holds every table found in a protocol.json.
type Protocol struct {
	Tables []Table
}

// Lookup returns the table for mode and dir.
func (p *Protocol) Lookup(mode protocol.Mode, dir protocol.Direction) (Table, bool) {
	for _, t := range p.Tables {
		if t.Mode == mode && t.Direction == dir {
			return t, true
		}
	}
	return Table{}, false
}

// LoadFile parses a protocol.json from disk.
func LoadFile(path string) (*Protocol, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read protocol: %w", err)
	}
	return Parse(raw)
}

// Parse extracts the packet id mappings of every phase.
func Parse(raw []byte) (*Protocol, error) {
	var rawProto map[string]json.RawMessage
	if err := json.Unmarshal(raw, &rawProto); err != nil {
		return nil, fmt.Errorf("unmarshal protocol: %w", err)
	}

	present := strset.New()
	for key := range rawProto {
		present.Add(key)
	}
	if missing := strset.Difference(strset.New(Phases...), present); !missing.IsEmpty() {
		list := missing.List()
		sort.Strings(list)
		return nil, fmt.Errorf("protocol is missing phases %s", strings.Join(list, ", "))
	}

	proto := &Protocol{}
	for _, phaseName := range Phases {
		var phase struct {
			ToClient struct {
				Types map[string]json.RawMessage `json:"types"`
			} `json:"toClient"`
			ToServer struct {
				Types map[string]json.RawMessage `json:"types"`
			} `json:"toServer"`
		}
		if err := json.Unmarshal(rawProto[phaseName], &phase); err != nil {
			return nil, fmt.Errorf("unmarshal phase %s: %w", phaseName, err)
		}

		mode := phaseModes[phaseName]
		for _, side := range []struct {
			dir   protocol.Direction
			types map[string]json.RawMessage
		}{
			{protocol.Serverbound, phase.ToServer.Types},
			{protocol.Clientbound, phase.ToClient.Types},
		} {
			packets, err := extractMappings(side.types)
			if err != nil {
				return nil, fmt.Errorf("phase %s %s: %w", phaseName, side.dir, err)
			}
			proto.Tables = append(proto.Tables, Table{Mode: mode, Direction: side.dir, Packets: packets})
		}
	}
	return proto, nil
}

// extractMappings reads the mapper of the "name" field in the "packet"
// container type.
func extractMappings(types map[string]json.RawMessage) ([]Packet, error) {
	packetRaw, ok := types["packet"]
	if !ok {
		return nil, nil
	}

	var packetDef []json.RawMessage
	if err := json.Unmarshal(packetRaw, &packetDef); err != nil || len(packetDef) < 2 {
		return nil, fmt.Errorf("packet container is not [type, fields]")
	}

	var fields []struct {
		Name string          `json:"name"`
		Type json.RawMessage `json:"type"`
	}
	if err := json.Unmarshal(packetDef[1], &fields); err != nil {
		return nil, fmt.Errorf("unmarshal packet fields: %w", err)
	}

	var packets []Packet
	for _, f := range fields {
		if f.Name != "name" {
			continue
		}
		var mapper []json.RawMessage
		if err := json.Unmarshal(f.Type, &mapper); err != nil || len(mapper) < 2 {
			return nil, fmt.Errorf("packet name is not a mapper")
		}
		var mapperDef struct {
			Mappings map[string]string `json:"mappings"`
		}
		if err := json.Unmarshal(mapper[1], &mapperDef); err != nil {
			return nil, fmt.Errorf("unmarshal mappings: %w", err)
		}
		for hexID, name := range mapperDef.Mappings {
			id, err := strconv.ParseInt(hexID, 0, 32)
			if err != nil {
				return nil, fmt.Errorf("packet id %q: %w", hexID, err)
			}
			packets = append(packets, Packet{ID: int32(id), Name: name})
		}
	}

	sort.Slice(packets, func(i, j int) bool { return packets[i].ID < packets[j].ID })
	return packets, nil
}

// Fetch downloads the minecraft-data directory of version from src into
// dir and returns the path of its protocol.json. src uses go-getter
// syntax, e.g. "git::https://github.com/PrismarineJS/minecraft-data.git//data/pc".
func Fetch(ctx context.Context, src, version, dir string) (string, error) {
	dst := filepath.Join(dir, "pc-"+version)
	if err := os.RemoveAll(dst); err != nil {
		return "", fmt.Errorf("clean %s: %w", dst, err)
	}

	client := &get.Client{
		Ctx:  ctx,
		Src:  strings.TrimSuffix(src, "/") + "/" + version,
		Dst:  dst,
		Mode: get.ClientModeDir,
	}
	if err := client.Get(); err != nil {
		return "", fmt.Errorf("fetch schema %s: %w", client.Src, err)
	}
	return filepath.Join(dst, "protocol.json"), nil
}
