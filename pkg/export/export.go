// Package export renders a finished connection list into the auxiliary
// files the user imports back into the CAD tool.
//
// One save operation produces four artifacts sharing a single timestamp: a
// byte-exact copy of the original project file (the safety guarantee — the
// original is never touched), a netlist, an ISIS automation script, and a
// prose wiring guide. A Graphviz SVG of the connection graph is produced as
// a fifth, best-effort artifact. None of the outputs is ever parsed back by
// this system.
package export

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/edalab/pinwire/pkg/errors"
	"github.com/edalab/pinwire/pkg/schematic"
)

// Emitter writes save artifacts into a storage directory.
type Emitter struct {
	// Dir is the managed storage root generated files are written to.
	Dir string

	// Logger receives progress and warning messages. Optional.
	Logger func(format string, args ...any)

	// Now overrides the clock, for tests. Optional.
	Now func() time.Time
}

// Result lists the files one save operation produced. Names are relative to
// the emitter's storage directory.
type Result struct {
	Timestamp   string `json:"timestamp"`
	CopyFile    string `json:"updated_file"`
	NetlistFile string `json:"netlist_file"`
	ScriptFile  string `json:"script_file"`
	GuideFile   string `json:"guide_file"`
	DiagramFile string `json:"diagram_file,omitempty"`
}

// Save writes all artifacts for the given connection list. The artifact copy
// and the three text outputs are mandatory: any write failure aborts the
// save with an EXPORT_FAILED error (already-written files are not cleaned
// up). The diagram is best-effort and only logged on failure.
//
// Components are used for diagram labels and for warning about connection
// references that do not exist in the loaded project; unknown references are
// permitted and exported as-is, since the generated script self-reports
// missing pins when the user runs it.
func (e *Emitter) Save(ctx context.Context, artifactPath string, components []schematic.Component, connections []schematic.Connection) (*Result, error) {
	now := time.Now()
	if e.Now != nil {
		now = e.Now()
	}
	ts := now.Format("20060102_150405")

	e.warnUnknownReferences(components, connections)

	ext := filepath.Ext(artifactPath)
	if ext == "" {
		ext = ".pdsprj"
	}

	res := &Result{
		Timestamp:   ts,
		CopyFile:    "connected_proteus_" + ts + ext,
		NetlistFile: "netlist_" + ts + ".net",
		ScriptFile:  "connect_script_" + ts + ".scr",
		GuideFile:   "wiring_guide_" + ts + ".txt",
	}

	if err := copyFile(artifactPath, filepath.Join(e.Dir, res.CopyFile)); err != nil {
		return nil, errors.Wrap(errors.ErrCodeExportFailed, err, "failed to create a copy of the Proteus file")
	}

	outputs := []struct {
		name    string
		content string
	}{
		{res.NetlistFile, Netlist(connections, now)},
		{res.ScriptFile, Script(connections, now)},
		{res.GuideFile, Guide(connections, now)},
	}
	for _, out := range outputs {
		if err := os.WriteFile(filepath.Join(e.Dir, out.name), []byte(out.content), 0o644); err != nil {
			return nil, errors.Wrap(errors.ErrCodeExportFailed, err, "failed to write %s", out.name)
		}
	}

	if svg, err := RenderSVG(ctx, ToDOT(components, connections)); err != nil {
		e.logf("diagram rendering failed: %v", err)
	} else {
		name := "diagram_" + ts + ".svg"
		if err := os.WriteFile(filepath.Join(e.Dir, name), svg, 0o644); err != nil {
			e.logf("diagram write failed: %v", err)
		} else {
			res.DiagramFile = name
		}
	}

	return res, nil
}

func (e *Emitter) warnUnknownReferences(components []schematic.Component, connections []schematic.Connection) {
	for _, conn := range connections {
		for _, ref := range []struct{ comp, pin string }{
			{conn.FromComponent, conn.FromPin},
			{conn.ToComponent, conn.ToPin},
		} {
			c := schematic.Find(components, ref.comp)
			if c == nil {
				e.logf("connection references unknown component %s", ref.comp)
				continue
			}
			if _, ok := c.Pin(ref.pin); !ok {
				e.logf("connection references unknown pin %s.%s", ref.comp, ref.pin)
			}
		}
	}
}

func (e *Emitter) logf(format string, args ...any) {
	if e.Logger != nil {
		e.Logger(format, args...)
	}
}

// copyFile writes a byte-exact duplicate of src at dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
