// Package sniff classifies uploaded project artifacts without assuming a
// fixed schema.
//
// Proteus project files changed container formats across generations: modern
// releases write zip archives, older ones wrote raw binary or XML. Classify
// inspects the raw bytes (archive probe first, then bounded signature
// sniffing) and produces a diagnostic [FileInfo] record that steers the
// extractor and is surfaced verbatim to the API caller. Classification never
// fails: any internal error degrades fields to "Unknown" and is captured in
// the preview.
package sniff

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

const (
	signatureLen = 16   // leading bytes rendered as the hex signature
	prefixLen    = 1000 // bounded prefix for legacy-format probing
	previewLen   = 200  // characters of text preview
)

// FileInfo is the classification record for one uploaded artifact.
// JSON field names match the upload response consumed by the editor UI.
type FileInfo struct {
	Size      int64  `json:"size"`
	Format    string `json:"type"`
	Encoding  string `json:"encoding"`
	IsArchive bool   `json:"is_zip"`
	IsMarkup  bool   `json:"is_xml"`
	Preview   string `json:"content_preview"`
	Signature string `json:"file_signature"`
	Version   string `json:"proteus_version"`
}

// Classify inspects the artifact at path and returns its classification.
// It never returns an error; see the package comment.
func Classify(path string) FileInfo {
	info := FileInfo{
		Format:   "Unknown",
		Encoding: "Unknown",
		Version:  "Unknown",
	}

	stat, err := os.Stat(path)
	if err != nil {
		info.Preview = fmt.Sprintf("Error analyzing file: %v", err)
		return info
	}
	info.Size = stat.Size()
	info.Signature = hexSignature(path)

	if classifyArchive(path, &info) {
		return info
	}
	classifyLegacy(path, &info)
	return info
}

// hexSignature renders the first 16 bytes as space-separated hex.
func hexSignature(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	buf := make([]byte, signatureLen)
	n, _ := f.Read(buf)

	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = fmt.Sprintf("%02X", buf[i])
	}
	return strings.Join(parts, " ")
}

// classifyArchive probes the artifact as a zip archive. On success it fills
// the archive fields and refines the version guess from canonical member
// names. Returns false when the file is not a readable archive.
func classifyArchive(path string, info *FileInfo) bool {
	r, err := zip.OpenReader(path)
	if err != nil {
		return false
	}
	defer r.Close()

	info.IsArchive = true
	info.Format = "ZIP Archive (Proteus 8+)"

	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
	}

	preview := names
	if len(preview) > 5 {
		preview = preview[:5]
	}
	info.Preview = "ZIP contains: " + strings.Join(preview, ", ")

	hasProjectXML := false
	hasDSN := false
	for _, n := range names {
		if n == "PROJECT.XML" {
			hasProjectXML = true
		}
		if strings.Contains(n, ".dsn") {
			hasDSN = true
		}
	}
	switch {
	case hasProjectXML:
		info.Version = "Proteus 8.x"
	case hasDSN:
		info.Version = "Proteus 7.x/8.x"
	}
	return true
}

// classifyLegacy sniffs a bounded prefix of a non-archive artifact for known
// legacy magic substrings and probes whether it decodes as markup-bearing
// text.
func classifyLegacy(path string, info *FileInfo) {
	prefix, err := readPrefix(path, prefixLen)
	if err != nil {
		info.Preview = fmt.Sprintf("File reading error: %v", err)
		return
	}

	switch {
	case containsAny(prefix, "ISIS", "ARES"):
		info.Format = "Proteus Binary (Legacy)"
		info.Version = "Proteus 6.x/7.x"
	case strings.Contains(string(prefix), "<?xml"):
		info.Format = "Proteus XML (Legacy)"
		info.Version = "Proteus 7.x"
	default:
		info.Format = "Unknown Proteus Format"
	}

	text := string(prefix)
	if !utf8.ValidString(text) || !mostlyPrintable(text) {
		info.Preview = fmt.Sprintf("Binary data (%d bytes)", len(prefix))
		return
	}

	info.Encoding = "UTF-8"
	info.Preview = text
	if r := []rune(text); len(r) > previewLen {
		info.Preview = string(r[:previewLen]) + "..."
	}

	if strings.Contains(text, "<") && strings.Contains(text, ">") {
		info.IsMarkup = true
		if containsAny(prefix, "ISIS", "ARES") {
			info.Format = "Proteus XML"
		}
	}
}

func readPrefix(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, n)
	read, err := f.Read(buf)
	if read == 0 && err != nil && err != io.EOF {
		return nil, err
	}
	return buf[:read], nil
}

func containsAny(b []byte, subs ...string) bool {
	s := string(b)
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// mostlyPrintable reports whether fewer than 10% of the runes are control
// characters other than whitespace. This is the "decodes as text" probe for
// legacy files.
func mostlyPrintable(s string) bool {
	if s == "" {
		return true
	}
	control, total := 0, 0
	for _, r := range s {
		total++
		if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
			control++
		}
	}
	return control*10 < total
}
