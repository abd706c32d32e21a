package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/edalab/pinwire/pkg/schematic"
)

// Script renders connections as a Proteus ISIS automation script: a
// verification preamble listing every referenced component, then one
// ASSIGN/WIRE block per connection guarded by ERRORLEVEL checks so missing
// components or pins are reported by name when the user runs the script.
func Script(connections []schematic.Connection, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, `-- Proteus ISIS Script
-- Generated by Proteus Connection Editor
-- Date: %s
--
-- This script automates wire connections in Proteus.
--
-- HOW TO USE:
-- 1. In Proteus, go to 'File' -> 'Run Script...'
-- 2. Select this .SCR file.
-- 3. The script will attempt to create all connections.
--
-- !! IMPORTANT !!
-- - Component reference designators (e.g., U1, R1) MUST match your schematic.
-- - Pin names/numbers MUST match the component's definition in Proteus.
-- - If a component or pin is not found, the script will report an error.
--

-- Clear any existing selections
COMMAND "SELECT_NONE"

-- Script header
MESSAGE "Starting automated wiring script..."

`, now.Format("2006-01-02 15:04:05"))

	b.WriteString("-- COMPONENT AND PIN VERIFICATION\n")
	b.WriteString("-- Please verify the following components and pins exist in your project:\n")
	for _, comp := range referencedComponents(connections) {
		fmt.Fprintf(&b, "-- Component: %s\n", comp)
	}
	b.WriteString("\n")

	b.WriteString("-- WIRING CONNECTIONS\n")
	for i, conn := range connections {
		fmt.Fprintf(&b, "\n-- Connection %d: %s.%s -> %s.%s\n",
			i+1, conn.FromComponent, conn.FromPin, conn.ToComponent, conn.ToPin)
		b.WriteString("-- Try to select start and end pins\n")
		fmt.Fprintf(&b, "ASSIGN PIN %q %q\n", conn.FromComponent, conn.FromPin)
		b.WriteString("IF ERRORLEVEL == 0 THEN\n")
		fmt.Fprintf(&b, "  ASSIGN PIN %q %q\n", conn.ToComponent, conn.ToPin)
		b.WriteString("  IF ERRORLEVEL == 0 THEN\n")
		b.WriteString("    -- Both pins found, create wire\n")
		fmt.Fprintf(&b, "    WIRE %q %q %q %q\n", conn.FromComponent, conn.FromPin, conn.ToComponent, conn.ToPin)
		fmt.Fprintf(&b, "    MESSAGE \"Wired %s.%s to %s.%s\"\n", conn.FromComponent, conn.FromPin, conn.ToComponent, conn.ToPin)
		b.WriteString("  ELSE\n")
		fmt.Fprintf(&b, "    MESSAGE \"ERROR: Pin %s on component %s not found!\"\n", conn.ToPin, conn.ToComponent)
		b.WriteString("  ENDIF\n")
		b.WriteString("ELSE\n")
		fmt.Fprintf(&b, "  MESSAGE \"ERROR: Pin %s on component %s not found!\"\n", conn.FromPin, conn.FromComponent)
		b.WriteString("ENDIF\n")
	}

	b.WriteString(`
-- Script finished
MESSAGE "Automated wiring script complete. Check for any error messages."

-- End of script
`)
	return b.String()
}

// referencedComponents returns the sorted distinct component references
// appearing on either side of any connection.
func referencedComponents(connections []schematic.Connection) []string {
	seen := make(map[string]bool)
	for _, conn := range connections {
		seen[conn.FromComponent] = true
		seen[conn.ToComponent] = true
	}
	out := make([]string, 0, len(seen))
	for comp := range seen {
		out = append(out, comp)
	}
	sort.Strings(out)
	return out
}
