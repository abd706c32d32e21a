package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/edalab/pinwire/pkg/errors"
	"github.com/edalab/pinwire/pkg/schematic"
)

var testTime = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func oneConnection() []schematic.Connection {
	return []schematic.Connection{
		{FromComponent: "IC1", FromPin: "D2", ToComponent: "LED1", ToPin: "A"},
	}
}

func TestNetlistGroupsAndSorts(t *testing.T) {
	out := Netlist(oneConnection(), testTime)

	if !strings.Contains(out, `(NET "NET_001"`) {
		t.Errorf("missing generated net name:\n%s", out)
	}
	iIC := strings.Index(out, `(PIN "IC1.D2")`)
	iLED := strings.Index(out, `(PIN "LED1.A")`)
	if iIC < 0 || iLED < 0 {
		t.Fatalf("missing pin members:\n%s", out)
	}
	if iIC > iLED {
		t.Error("members not lexically sorted within net")
	}
	if !strings.Contains(out, "# Total connections: 1") {
		t.Error("missing connection count header")
	}
}

func TestNetlistExplicitNetDeduplicates(t *testing.T) {
	conns := []schematic.Connection{
		{FromComponent: "IC1", FromPin: "GND", ToComponent: "PWR2", ToPin: "OUT", NetName: "GND"},
		{FromComponent: "R1", FromPin: "2", ToComponent: "PWR2", ToPin: "OUT", NetName: "GND"},
	}
	out := Netlist(conns, testTime)

	if got := strings.Count(out, `(PIN "PWR2.OUT")`); got != 1 {
		t.Errorf("PWR2.OUT appears %d times, want 1 (set semantics)", got)
	}
	if got := strings.Count(out, "(NET "); got != 1 {
		t.Errorf("%d net blocks, want 1", got)
	}
}

func TestScriptContents(t *testing.T) {
	out := Script(oneConnection(), testTime)

	for _, want := range []string{
		`COMMAND "SELECT_NONE"`,
		"-- Component: IC1",
		"-- Component: LED1",
		`ASSIGN PIN "IC1" "D2"`,
		`WIRE "IC1" "D2" "LED1" "A"`,
		`MESSAGE "ERROR: Pin A on component LED1 not found!"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("script missing %q", want)
		}
	}

	// Verification preamble lists components sorted and before the wiring.
	if strings.Index(out, "-- Component: IC1") > strings.Index(out, "-- WIRING CONNECTIONS") {
		t.Error("component verification preamble after wiring section")
	}
}

func TestGuideQuickListAndGrouping(t *testing.T) {
	out := Guide(oneConnection(), testTime)

	if !strings.Contains(out, "01. IC1") || !strings.Contains(out, "LED1") {
		t.Errorf("quick list missing endpoints:\n%s", out)
	}
	// Both components get a section; the destination lists the reverse wire.
	if !strings.Contains(out, "### Component: IC1") || !strings.Contains(out, "### Component: LED1") {
		t.Error("missing per-component sections")
	}
	if !strings.Contains(out, "connects to IC1.D2") {
		t.Error("reverse direction not listed under destination component")
	}
	if !strings.Contains(out, "## 3. HOW TO WIRE IN PROTEUS") {
		t.Error("missing instructional text")
	}
}

func TestToDOT(t *testing.T) {
	components := schematic.DemoBoard()
	conns := []schematic.Connection{
		{FromComponent: "IC1", FromPin: "D13", ToComponent: "R1", ToPin: "1"},
	}
	dot := ToDOT(components, conns)

	if !strings.Contains(dot, `"IC1"`) || !strings.Contains(dot, `"R1"`) {
		t.Errorf("referenced nodes missing:\n%s", dot)
	}
	if strings.Contains(dot, `"SW1"`) {
		t.Error("unreferenced component rendered")
	}
	if !strings.Contains(dot, `"IC1" -- "R1"`) {
		t.Error("edge missing")
	}
}

func TestSaveWritesAllArtifacts(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "blinky.pdsprj")
	payload := []byte("PK\x03\x04 not really a zip, bytes must survive verbatim \x00\x01\x02")
	if err := os.WriteFile(original, payload, 0o644); err != nil {
		t.Fatal(err)
	}

	em := &Emitter{Dir: dir, Logger: t.Logf, Now: func() time.Time { return testTime }}
	res, err := em.Save(context.Background(), original, schematic.DemoBoard(), oneConnection())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if res.Timestamp != "20250314_092653" {
		t.Errorf("Timestamp = %q", res.Timestamp)
	}
	if res.CopyFile != "connected_proteus_20250314_092653.pdsprj" {
		t.Errorf("CopyFile = %q", res.CopyFile)
	}

	copied, err := os.ReadFile(filepath.Join(dir, res.CopyFile))
	if err != nil {
		t.Fatalf("read copy: %v", err)
	}
	if !bytes.Equal(copied, payload) {
		t.Error("copy is not byte-identical to the original")
	}

	for _, name := range []string{res.NetlistFile, res.ScriptFile, res.GuideFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing artifact %s: %v", name, err)
		}
	}
}

func TestSaveMissingOriginalIsFatal(t *testing.T) {
	em := &Emitter{Dir: t.TempDir(), Now: func() time.Time { return testTime }}
	_, err := em.Save(context.Background(), "/nonexistent/file.pdsprj", nil, oneConnection())
	if err == nil {
		t.Fatal("Save succeeded with missing original")
	}
	if !errors.Is(err, errors.ErrCodeExportFailed) {
		t.Errorf("error code = %q, want EXPORT_FAILED", errors.GetCode(err))
	}
}

func TestSaveWarnsOnUnknownReferences(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "p.pdsprj")
	if err := os.WriteFile(original, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	var warnings []string
	em := &Emitter{
		Dir:    dir,
		Logger: func(format string, args ...any) { warnings = append(warnings, format) },
		Now:    func() time.Time { return testTime },
	}

	conns := []schematic.Connection{
		{FromComponent: "GHOST1", FromPin: "1", ToComponent: "IC1", ToPin: "NOPE"},
	}
	if _, err := em.Save(context.Background(), original, schematic.DemoBoard(), conns); err != nil {
		t.Fatalf("Save: %v (unknown references must stay permissive)", err)
	}

	joined := strings.Join(warnings, "\n")
	if !strings.Contains(joined, "unknown component") || !strings.Contains(joined, "unknown pin") {
		t.Errorf("expected unknown-reference warnings, got %v", warnings)
	}
}
