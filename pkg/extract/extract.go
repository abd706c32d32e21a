// Package extract recovers a component list from a classified project
// artifact.
//
// Nothing about the artifact's internal schema is trusted. Extraction is a
// chain of strategies tried in priority order — archive-member scan first,
// then a direct markup parse of the whole file — where every parse or decode
// failure simply fails that strategy and the chain moves on. An empty result
// is a valid outcome; the caller substitutes the fallback component set
// (schematic.DemoBoard) so the editor is never left without data.
package extract

import (
	"archive/zip"
	"io"
	"os"
	"path"
	"strings"

	"github.com/edalab/pinwire/pkg/heuristic"
	"github.com/edalab/pinwire/pkg/schematic"
	"github.com/edalab/pinwire/pkg/sniff"
)

// memberExtensions are the archive member names worth parsing. Proteus 8
// archives carry the design as an embedded .pdsprj or PROJECT.XML; older
// generations used .dsn and .PWI members.
var memberExtensions = []string{".pdsprj", ".xml", ".dsn", ".pwi"}

// Options configures extraction.
type Options struct {
	// Logger receives progress and strategy-failure messages. Optional.
	Logger func(format string, args ...any)
}

func (o Options) logf(format string, args ...any) {
	if o.Logger != nil {
		o.Logger(format, args...)
	}
}

// Components extracts an ordered component list from the artifact at path,
// guided by its classification. The result may be empty when no strategy
// succeeds; Components never returns an error.
func Components(artifactPath string, info sniff.FileInfo, opts Options) []schematic.Component {
	if info.IsArchive {
		if components := fromArchive(artifactPath, opts); len(components) > 0 {
			return components
		}
	}
	return fromDirectMarkup(artifactPath, opts)
}

// fromArchive scans archive members with recognized extensions and returns
// the first member whose markup walk yields at least one component with a
// non-placeholder name. The placeholder guard rejects decorative markup that
// matched the component vocabulary but carried no real device data.
func fromArchive(artifactPath string, opts Options) []schematic.Component {
	r, err := zip.OpenReader(artifactPath)
	if err != nil {
		opts.logf("archive open failed: %v", err)
		return nil
	}
	defer r.Close()

	for _, member := range r.File {
		if !parseableMember(member.Name) {
			continue
		}

		components, err := parseMember(member)
		if err != nil {
			opts.logf("member %s: %v", member.Name, err)
			continue
		}
		if hasRealComponent(components) {
			opts.logf("extracted %d components from member %s", len(components), member.Name)
			return components
		}
	}
	return nil
}

func parseMember(member *zip.File) ([]schematic.Component, error) {
	rc, err := member.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}

	content, err := DecodeText(data)
	if err != nil {
		return nil, err
	}
	if !looksLikeMarkup(content) {
		return nil, nil
	}

	root, err := ParseTree(content)
	if err != nil {
		return nil, err
	}
	return Walk(root), nil
}

// fromDirectMarkup reads the whole artifact as best-effort text and attempts
// a single markup parse. Used both for legacy non-archive files and as the
// second chance when no archive member parsed.
func fromDirectMarkup(artifactPath string, opts Options) []schematic.Component {
	data, err := os.ReadFile(artifactPath)
	if err != nil {
		opts.logf("read failed: %v", err)
		return nil
	}

	content, err := DecodeText(data)
	if err != nil {
		opts.logf("decode failed: %v", err)
		return nil
	}
	if !looksLikeMarkup(content) {
		return nil
	}

	root, err := ParseTree(content)
	if err != nil {
		opts.logf("direct parse failed: %v", err)
		return nil
	}

	components := Walk(root)
	if len(components) > 0 {
		opts.logf("extracted %d components from direct markup", len(components))
	}
	return components
}

func parseableMember(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, want := range memberExtensions {
		if ext == want {
			return true
		}
	}
	return false
}

func looksLikeMarkup(content string) bool {
	return strings.Contains(content, "<") && strings.Contains(content, ">")
}

func hasRealComponent(components []schematic.Component) bool {
	for _, c := range components {
		if c.Name != heuristic.PlaceholderName {
			return true
		}
	}
	return false
}
