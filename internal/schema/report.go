package schema

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// WriteSummary renders one row per mode and direction.
func WriteSummary(w io.Writer, diffs []Diff) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"Mode", "Direction", "Ids", "Missing", "Extra", "Status"})
	tw.SetBorder(true)
	tw.SetAutoWrapText(false)

	for _, d := range diffs {
		status := "ok"
		if !d.OK() {
			status = "MISMATCH"
		}
		tw.Append([]string{
			d.Mode.String(),
			d.Direction.String(),
			fmt.Sprintf("%d", len(d.Entries)),
			formatIDs(d.Missing),
			formatIDs(d.Extra),
			status,
		})
	}
	tw.Render()
}

// WriteEntries renders every id of d with both names.
func WriteEntries(w io.Writer, d Diff) {
	fmt.Fprintf(w, "%s %s\n", d.Mode, d.Direction)

	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"Id", "Schema", "Registry", ""})
	tw.SetAutoWrapText(false)

	for _, e := range d.Entries {
		mark := ""
		switch {
		case e.Schema == "" || e.Registry == "":
			mark = "!"
		case !e.SameName():
			mark = "~"
		}
		tw.Append([]string{fmt.Sprintf("0x%02X", e.ID), e.Schema, e.Registry, mark})
	}
	tw.Render()
}

func formatIDs(ids []int32) string {
	if len(ids) == 0 {
		return "-"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("0x%02X", id)
	}
	return strings.Join(parts, " ")
}
