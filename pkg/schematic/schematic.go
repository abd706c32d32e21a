// Package schematic defines the in-memory model shared by the extraction
// pipeline, the HTTP editor API, and the export emitter.
//
// A loaded project is an ordered list of [Component] values, each owning an
// unordered set of [Pin] values. The editor UI supplies [Connection] values
// wholesale on every save; nets are derived from connections at export time
// and have no standalone identity here.
package schematic

// Pin is a single named connection point on a component.
//
// ConnectedTo is written only by the editor UI; extraction always leaves it
// empty. Net carries the originating net name verbatim when the source file
// declared one.
type Pin struct {
	Name        string `json:"name"`
	ConnectedTo string `json:"connected_to"`
	Net         string `json:"net"`
}

// Component is one schematic device recovered from, or synthesized for, an
// uploaded project file.
//
// ID is the reference designator (e.g. "R1", "IC1") and is preserved
// verbatim when the source data carried one, since it is the authoritative
// external reference for scripts and netlists. X and Y are display hints
// only. Every component has at least one pin.
type Component struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
	Pins  []Pin  `json:"pins"`
	X     string `json:"x"`
	Y     string `json:"y"`
}

// Pin returns the pin with the given name and whether it exists.
func (c *Component) Pin(name string) (Pin, bool) {
	for _, p := range c.Pins {
		if p.Name == name {
			return p, true
		}
	}
	return Pin{}, false
}

// Connection is a user-declared edge between two component pins.
// NetName is optional; the export emitter generates one when absent.
type Connection struct {
	FromComponent string `json:"from_component"`
	FromPin       string `json:"from_pin"`
	ToComponent   string `json:"to_component"`
	ToPin         string `json:"to_pin"`
	NetName       string `json:"net_name,omitempty"`
}

// Endpoints returns the two "component.pin" endpoint strings.
func (c Connection) Endpoints() (from, to string) {
	return c.FromComponent + "." + c.FromPin, c.ToComponent + "." + c.ToPin
}

// Find returns the component with the given reference designator, or nil.
func Find(components []Component, id string) *Component {
	for i := range components {
		if components[i].ID == id {
			return &components[i]
		}
	}
	return nil
}
