package schema

import (
	"sort"
	"strings"

	"github.com/scylladb/go-set/i32set"

	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol"
	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol/registry"
)

// Entry pairs the schema and registry names of one id. Either may be empty.
type Entry struct {
	ID       int32
	Schema   string
	Registry string
}

// Diff is the comparison of one mode and direction.
type Diff struct {
	Mode      protocol.Mode
	Direction protocol.Direction

	// Missing ids are in the schema but not registered.
	Missing []int32
	// Extra ids are registered but absent from the schema.
	Extra   []int32
	Entries []Entry
}

// OK reports whether both sides register the same ids.
func (d Diff) OK() bool {
	return len(d.Missing) == 0 && len(d.Extra) == 0
}

// Compare checks every table of p against table.
func Compare(p *Protocol, table registry.Table) []Diff {
	diffs := make([]Diff, 0, len(p.Tables))
	for _, t := range p.Tables {
		diffs = append(diffs, compareTable(t, table))
	}
	return diffs
}

func compareTable(t Table, table registry.Table) Diff {
	names := make(map[int32]string, len(t.Packets))
	schemaIDs := i32set.New()
	for _, pk := range t.Packets {
		schemaIDs.Add(pk.ID)
		names[pk.ID] = pk.Name
	}
	registered := table.IDs(t.Mode, t.Direction)

	d := Diff{
		Mode:      t.Mode,
		Direction: t.Direction,
		Missing:   sorted(i32set.Difference(schemaIDs, registered)),
		Extra:     sorted(i32set.Difference(registered, schemaIDs)),
	}
	for _, id := range sorted(i32set.Union(schemaIDs, registered)) {
		d.Entries = append(d.Entries, Entry{
			ID:       id,
			Schema:   names[id],
			Registry: table.Name(t.Mode, t.Direction, id),
		})
	}
	return d
}

// SameName reports whether the schema's snake_case name spells the
// registry's Go name, ignoring case and underscores.
func (e Entry) SameName() bool {
	return e.Schema != "" && normalize(e.Schema) == normalize(e.Registry)
}

func normalize(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "_", ""))
}

func sorted(s *i32set.Set) []int32 {
	ids := s.List()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
