package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/edalab/pinwire/pkg/export"
	"github.com/edalab/pinwire/pkg/extract"
	"github.com/edalab/pinwire/pkg/schematic"
	"github.com/edalab/pinwire/pkg/sniff"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	connections string // path to the connections JSON file
	output      string // output directory for the generated artifacts
}

// newExportCmd creates the export command. It produces the same artifacts as
// the save endpoint (project copy, netlist, wiring script, wiring guide,
// diagram) without running a server, which is handy for scripting.
func newExportCmd() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Emit connection artifacts for a project file without a server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.connections == "" {
				return fmt.Errorf("--connections is required")
			}
			return runExport(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.connections, "connections", "", "connections JSON file (required)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", ".", "output directory")

	return cmd
}

func runExport(ctx context.Context, path string, opts *exportOpts) error {
	logger := loggerFromContext(ctx)

	connections, err := readConnections(opts.connections)
	if err != nil {
		return err
	}

	info := sniff.Classify(path)
	components := extract.Components(path, info, extract.Options{Logger: logger.Debugf})
	if len(components) == 0 {
		logger.Warn("no components extracted, using demo board")
		components = schematic.DemoBoard()
	}

	emitter := &export.Emitter{Dir: opts.output, Logger: logger.Warnf}
	res, err := emitter.Save(ctx, path, components, connections)
	if err != nil {
		printError("export failed: %v", err)
		return err
	}

	printSuccess("Exported %d connections", len(connections))
	for _, name := range []string{res.CopyFile, res.NetlistFile, res.ScriptFile, res.GuideFile, res.DiagramFile} {
		if name != "" {
			printFile(name)
		}
	}
	return nil
}

// readConnections loads a connection list from a JSON file. Both a bare
// array and the API request shape {"connections": [...]} are accepted.
func readConnections(path string) ([]schematic.Connection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var list []schematic.Connection
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var wrapped struct {
		Connections []schematic.Connection `json:"connections"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("parse connections %s: %w", path, err)
	}
	return wrapped.Connections, nil
}
