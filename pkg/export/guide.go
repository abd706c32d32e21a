package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/edalab/pinwire/pkg/schematic"
)

// Guide renders connections as a human-readable wiring guide: a numbered
// quick list in fixed-width columns, a per-component grouping (outgoing
// wires only, with the reverse direction of each connection added so both
// endpoints list it), and fixed how-to text.
func Guide(connections []schematic.Connection, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, `#================================================================
# PROTEUS WIRING GUIDE
#================================================================
# Generated: %s
# Total Connections: %d
#
# This guide provides step-by-step instructions for wiring your
# circuit in Proteus. For best results, use the Manual Wiring method.
#================================================================

## 1. QUICK WIRING LIST
# Use this list for rapid manual wiring.
#----------------------------------------------------------------
`, now.Format("2006-01-02 15:04:05"), len(connections))

	for i, conn := range connections {
		fmt.Fprintf(&b, "%02d. %-15s Pin %-10s ───► %-15s Pin %-10s\n",
			i+1, conn.FromComponent, conn.FromPin, conn.ToComponent, conn.ToPin)
	}

	b.WriteString(`
## 2. DETAILED COMPONENT-BY-COMPONENT GUIDE
# Wire all connections for one component before moving to the next.
#----------------------------------------------------------------
`)

	byComponent := make(map[string][]schematic.Connection)
	var order []string
	add := func(comp string, conn schematic.Connection) {
		if _, ok := byComponent[comp]; !ok {
			order = append(order, comp)
		}
		byComponent[comp] = append(byComponent[comp], conn)
	}
	for _, conn := range connections {
		add(conn.FromComponent, conn)
		// Reverse direction so the destination component lists the wire too.
		add(conn.ToComponent, schematic.Connection{
			FromComponent: conn.ToComponent, FromPin: conn.ToPin,
			ToComponent: conn.FromComponent, ToPin: conn.FromPin,
		})
	}
	sort.Strings(order)

	for _, comp := range order {
		fmt.Fprintf(&b, "\n### Component: %s\n", comp)
		for _, conn := range byComponent[comp] {
			if conn.FromComponent != comp {
				continue
			}
			fmt.Fprintf(&b, "  - Pin %-10s → connects to %s.%s\n",
				conn.FromPin, conn.ToComponent, conn.ToPin)
		}
		b.WriteString("\n")
	}

	b.WriteString(`
## 3. HOW TO WIRE IN PROTEUS
#----------------------------------------------------------------
#
# ### Method 1: Manual Wiring (Recommended)
#   1. Open your Proteus project.
#   2. Press the 'W' key to activate the Wire tool.
#   3. Follow the 'QUICK WIRING LIST' or the 'COMPONENT-BY-COMPONENT GUIDE'.
#   4. Click on the first component's pin (e.g., IC1.TXD).
#   5. Click on the second component's pin (e.g., CONN1.RXD).
#   6. A wire will be created. Repeat for all connections.
#
# ### Method 2: Using the Generated Script (.SCR file)
#   1. Go to 'File' -> 'Run Script...' in Proteus.
#   2. Select the accompanying .scr file.
#   3. The script will attempt to wire everything automatically.
#      (Note: This may fail if component names do not match exactly).
#
## 4. VERIFICATION CHECKLIST
#----------------------------------------------------------------
#  [ ] All connections from the list have been made.
#  [ ] No accidental short circuits (especially to VCC or GND).
#  [ ] Power and Ground pins for all ICs are correctly wired.
#  [ ] Run the simulation to ensure the circuit behaves as expected.
#
##================================================================
# End of Guide
#================================================================
`)
	return b.String()
}
