package extract

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/edalab/pinwire/pkg/heuristic"
	"github.com/edalab/pinwire/pkg/schematic"
)

// Node is a schema-agnostic markup element. Proteus never published its
// project schema, so the walk keeps the full tree (tag, attributes, text,
// children) and classifies nodes by tag-name vocabulary instead of
// unmarshalling into fixed structs.
type Node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []Node     `xml:",any"`
}

// Attr returns the first attribute whose local name matches name
// (case-insensitive), or "" when absent.
func (n *Node) Attr(name string) string {
	for _, a := range n.Attrs {
		if strings.EqualFold(a.Name.Local, name) {
			return a.Value
		}
	}
	return ""
}

// firstAttr returns the first non-empty attribute value in priority order.
func (n *Node) firstAttr(names ...string) string {
	for _, name := range names {
		if v := n.Attr(name); v != "" {
			return v
		}
	}
	return ""
}

// ParseTree parses markup content into a Node tree.
func ParseTree(content string) (*Node, error) {
	var root Node
	if err := xml.NewDecoder(bytes.NewReader([]byte(content))).Decode(&root); err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}
	return &root, nil
}

// Tag-name vocabularies for node classification. Matching is a
// case-insensitive substring check so that namespaced and versioned tags
// (COMPINST, proteus:Part, DEVICE2) still classify.
var (
	componentTags = []string{"component", "part", "device", "symbol", "instance", "compinst", "element"}
	netTags       = []string{"power", "rail", "net", "wire"}
)

// nodeHandler pairs a tag predicate with the routine that turns a matching
// node into components. Handlers are evaluated in table order and the first
// match wins for a given node, keeping the vocabulary explicit and testable.
type nodeHandler struct {
	matches func(tag string) bool
	emit    func(w *walker, n *Node)
}

var handlers = []nodeHandler{
	{matches: tagContainsAny(componentTags), emit: (*walker).emitComponent},
	{matches: tagContainsAny(netTags), emit: (*walker).emitPowerRail},
}

func tagContainsAny(vocab []string) func(string) bool {
	return func(tag string) bool {
		for _, kw := range vocab {
			if strings.Contains(tag, kw) {
				return true
			}
		}
		return false
	}
}

// walker accumulates components over one tree traversal. The counter is
// shared by both handlers, matching the original numbering behavior.
type walker struct {
	components []schematic.Component
	counter    int
}

// Walk traverses every node of the tree and returns the components the
// handler table produced. The result may be empty; the caller decides
// whether to fall back.
func Walk(root *Node) []schematic.Component {
	w := &walker{counter: 1}
	w.visit(root)
	return w.components
}

func (w *walker) visit(n *Node) {
	tag := strings.ToLower(n.XMLName.Local)
	for _, h := range handlers {
		if h.matches(tag) {
			h.emit(w, n)
			break
		}
	}
	for i := range n.Children {
		w.visit(&n.Children[i])
	}
}

// emitComponent turns a component-like node into a Component, resolving
// identity and type from attribute priority chains and pins from descendant
// pin nodes, with heuristic inference when no pins are declared.
func (w *walker) emitComponent(n *Node) {
	refDes := n.firstAttr("refdes", "name", "id", "ref", "designator")
	compType := n.firstAttr("device", "type", "library", "part")
	if compType == "" {
		compType = "Unknown"
	}
	value := n.firstAttr("value", "val", "model", "package")

	var name, id string
	if refDes != "" && refDes != "Unknown" {
		// A recognizable reference designator is the authoritative external
		// reference; keep it verbatim as the ID.
		name = heuristic.CleanName(refDes)
		id = refDes
	} else {
		name = fmt.Sprintf("Component_%d", w.counter)
		id = fmt.Sprintf("U%d", w.counter)
	}

	pins := collectPins(n)
	if len(pins) == 0 {
		pins = heuristic.InferPins(refDes, compType)
	}

	x := n.Attr("x")
	if x == "" {
		x = fmt.Sprintf("%d", w.counter*100)
	}
	y := n.Attr("y")
	if y == "" {
		y = fmt.Sprintf("%d", w.counter*100)
	}

	w.components = append(w.components, schematic.Component{
		ID:    id,
		Name:  name,
		Type:  heuristic.CleanName(compType),
		Value: heuristic.CleanName(value),
		Pins:  pins,
		X:     x,
		Y:     y,
	})
	w.counter++
}

// emitPowerRail accepts a net-like node as a synthetic power-rail component
// only when its name carries a recognized power keyword; plain signal nets
// produce nothing.
func (w *walker) emitPowerRail(n *Node) {
	netName := n.firstAttr("name", "id")
	if netName == "" {
		netName = strings.TrimSpace(n.Text)
	}
	if netName == "" || !heuristic.IsPowerNet(netName) {
		return
	}

	w.components = append(w.components, schematic.Component{
		ID:    fmt.Sprintf("PWR%d", w.counter),
		Name:  heuristic.CleanName(netName),
		Type:  "Power Rail",
		Value: heuristic.PowerValue(netName),
		Pins:  []schematic.Pin{{Name: "OUT"}},
		X:     fmt.Sprintf("%d", w.counter*100),
		Y:     "50",
	})
	w.counter++
}

// collectPins gathers pins from all descendants tagged PIN or CONNECT.
// Pin names fall back to a 1-based positional default when no naming
// attribute is present; a pin name is never empty.
func collectPins(n *Node) []schematic.Pin {
	var pins []schematic.Pin
	var descend func(*Node)
	descend = func(node *Node) {
		for i := range node.Children {
			child := &node.Children[i]
			tag := strings.ToLower(child.XMLName.Local)
			if tag == "pin" || tag == "connect" {
				name := child.firstAttr("name", "pinname", "pinnum", "number", "id")
				if name == "" {
					name = fmt.Sprintf("Pin%d", len(pins)+1)
				}
				pins = append(pins, schematic.Pin{
					Name: heuristic.CleanPinName(name),
					Net:  child.Attr("net"),
				})
			}
			descend(child)
		}
	}
	descend(n)
	return pins
}
