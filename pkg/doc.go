// Package pkg provides the core libraries for PinWire connection annotation.
//
// # Overview
//
// PinWire takes opaque Proteus project files, extracts a best-effort
// component list from them, and turns user-annotated pin-to-pin connections
// into files that can be carried back into the CAD tool. The pkg directory
// is organized into:
//
//  1. [sniff] - File classification (archive vs legacy binary vs markup)
//  2. [extract] - Structured-content extraction from archive members and markup
//  3. [heuristic] - Name cleaning, pin inference, and power-rail mapping
//  4. [schematic] - The component/pin/connection data model and the demo board
//  5. [export] - Netlist, wiring script, wiring guide, and diagram emitters
//  6. [errors] - Structured error codes shared by the CLI and the HTTP API
//
// # Architecture
//
// The typical data flow through PinWire:
//
//	.pdsprj upload
//	       ↓
//	sniff.Classify ──→ extract.Components ──→ heuristic cleanup
//	       ↓                                       ↓
//	session state  ←──────────────────── component list (or demo board)
//	       ↓
//	export.Emitter ──→ copy + netlist + script + guide + diagram
//
// Extraction is heuristic by design: the container format is undocumented, so
// every stage degrades gracefully instead of failing, and the demo board
// keeps the editor usable when nothing could be recovered.
package pkg
