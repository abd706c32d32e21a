package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/edalab/pinwire/pkg/schematic"
)

// Netlist renders connections as a netlist grouped by net name. Connections
// without a net name get a generated NET_<3-digit> name from their 1-based
// position. Within a net, "component.pin" members are deduplicated and
// sorted lexically; nets appear in first-seen order.
func Netlist(connections []schematic.Connection, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, `# Proteus Netlist File
# Generated by the Proteus Connection Editor
# Date: %s
#
# This file describes the connections (nets) between component pins.
# It can be used for cross-probing or importing into other EDA tools.
#
# Total connections: %d

`, now.Format("2006-01-02 15:04:05"), len(connections))

	var order []string
	nets := make(map[string]map[string]bool)
	for i, conn := range connections {
		name := conn.NetName
		if name == "" {
			name = fmt.Sprintf("NET_%03d", i+1)
		}

		if nets[name] == nil {
			nets[name] = make(map[string]bool)
			order = append(order, name)
		}
		from, to := conn.Endpoints()
		nets[name][from] = true
		nets[name][to] = true
	}

	for _, name := range order {
		members := make([]string, 0, len(nets[name]))
		for m := range nets[name] {
			members = append(members, m)
		}
		sort.Strings(members)

		fmt.Fprintf(&b, "(NET %q\n", name)
		for _, m := range members {
			fmt.Fprintf(&b, "  (PIN %q)\n", m)
		}
		b.WriteString(")\n\n")
	}

	return b.String()
}
