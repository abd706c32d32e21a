package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/edalab/pinwire/pkg/schematic"
)

// ToDOT converts the connection graph to Graphviz DOT. Components are
// nodes labeled with their reference designator and value; each connection
// is an undirected edge labeled with the two pin names. Power rails are
// drawn filled to stand out.
func ToDOT(components []schematic.Component, connections []schematic.Connection) string {
	var buf bytes.Buffer
	buf.WriteString("graph wiring {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  node [shape=box, style=rounded, fontsize=12];\n")
	buf.WriteString("\n")

	referenced := make(map[string]bool)
	for _, conn := range connections {
		referenced[conn.FromComponent] = true
		referenced[conn.ToComponent] = true
	}

	for _, c := range components {
		if !referenced[c.ID] {
			continue
		}
		attrs := []string{fmt.Sprintf("label=%q", nodeLabel(c))}
		if c.Type == "Power Rail" {
			attrs = append(attrs, "style=\"rounded,filled\"", "fillcolor=lightyellow")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", c.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, conn := range connections {
		fmt.Fprintf(&buf, "  %q -- %q [label=%q, fontsize=10];\n",
			conn.FromComponent, conn.ToComponent,
			conn.FromPin+" / "+conn.ToPin)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(c schematic.Component) string {
	if c.Value == "" || c.Value == "Unknown" {
		return c.ID
	}
	return c.ID + "\n" + c.Value
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
