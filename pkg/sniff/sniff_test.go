package sniff

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeZip(t *testing.T, path string, members map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range members {
		mw, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := mw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestClassifyArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.pdsprj")
	writeZip(t, path, map[string]string{"PROJECT.XML": "<PROJECT/>"})

	info := Classify(path)

	if !info.IsArchive {
		t.Fatal("IsArchive = false for a zip artifact")
	}
	if info.Format != "ZIP Archive (Proteus 8+)" {
		t.Errorf("Format = %q", info.Format)
	}
	if info.Version != "Proteus 8.x" {
		t.Errorf("Version = %q, want Proteus 8.x", info.Version)
	}
	if !strings.Contains(info.Preview, "PROJECT.XML") {
		t.Errorf("Preview = %q, want member listing", info.Preview)
	}
	// Zip local file header magic.
	if !strings.HasPrefix(info.Signature, "50 4B") {
		t.Errorf("Signature = %q, want PK header", info.Signature)
	}
	if info.Size == 0 {
		t.Error("Size = 0")
	}
}

func TestClassifyArchiveDSNVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.pdsprj")
	writeZip(t, path, map[string]string{"board.dsn": "not xml"})

	info := Classify(path)
	if info.Version != "Proteus 7.x/8.x" {
		t.Errorf("Version = %q, want Proteus 7.x/8.x", info.Version)
	}
}

func TestClassifyLegacyBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.pdsprj")
	data := append([]byte("ISIS SCHEMATIC "), 0x00, 0x01, 0x02, 0xFF)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	info := Classify(path)
	if info.IsArchive {
		t.Error("IsArchive = true for raw binary")
	}
	if info.Format != "Proteus Binary (Legacy)" {
		t.Errorf("Format = %q", info.Format)
	}
	if info.Version != "Proteus 6.x/7.x" {
		t.Errorf("Version = %q", info.Version)
	}
}

func TestClassifyLegacyXML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.pdsprj")
	content := `<?xml version="1.0"?><DESIGN><COMPONENT refdes="R1"/></DESIGN>`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	info := Classify(path)
	if info.Format != "Proteus XML (Legacy)" {
		t.Errorf("Format = %q", info.Format)
	}
	if !info.IsMarkup {
		t.Error("IsMarkup = false for XML content")
	}
	if info.Encoding != "UTF-8" {
		t.Errorf("Encoding = %q", info.Encoding)
	}
	if !strings.Contains(info.Preview, "<DESIGN>") {
		t.Errorf("Preview = %q", info.Preview)
	}
}

func TestClassifyUnknownBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.pdsprj")
	data := make([]byte, 64)
	for i := range data {
		data[i] = byte(i % 7)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	info := Classify(path)
	if info.Format != "Unknown Proteus Format" {
		t.Errorf("Format = %q", info.Format)
	}
	if !strings.HasPrefix(info.Preview, "Binary data") {
		t.Errorf("Preview = %q", info.Preview)
	}
	if info.IsMarkup {
		t.Error("IsMarkup = true for binary junk")
	}
}

func TestClassifyMissingFile(t *testing.T) {
	info := Classify(filepath.Join(t.TempDir(), "nope.pdsprj"))
	if info.Format != "Unknown" || info.Version != "Unknown" {
		t.Errorf("Format/Version = %q/%q, want Unknown", info.Format, info.Version)
	}
	if !strings.Contains(info.Preview, "Error analyzing file") {
		t.Errorf("Preview = %q", info.Preview)
	}
}

func TestClassifyLongPreviewTruncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.pdsprj")
	content := "<A>" + strings.Repeat("x", 900) + "</A>"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	info := Classify(path)
	if !strings.HasSuffix(info.Preview, "...") {
		t.Errorf("Preview not truncated: %d chars", len(info.Preview))
	}
	if len([]rune(info.Preview)) != previewLen+3 {
		t.Errorf("Preview length = %d, want %d", len([]rune(info.Preview)), previewLen+3)
	}
}
