package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/edalab/pinwire/pkg/extract"
	"github.com/edalab/pinwire/pkg/schematic"
	"github.com/edalab/pinwire/pkg/sniff"
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	interactive bool // browse components in a TUI instead of printing
	pins        bool // list every pin of every component
}

// newInspectCmd creates the inspect command. It runs the same classification
// and extraction pipeline the server runs on upload, and reports the result
// on the terminal.
func newInspectCmd() *cobra.Command {
	var opts inspectOpts

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Classify a project file and list the extracted components",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse components interactively")
	cmd.Flags().BoolVar(&opts.pins, "pins", false, "list every pin of every component")

	return cmd
}

func runInspect(ctx context.Context, path string, opts *inspectOpts) error {
	logger := loggerFromContext(ctx)

	prog := newProgress(logger)
	info := sniff.Classify(path)
	components := extract.Components(path, info, extract.Options{Logger: logger.Debugf})
	prog.done(fmt.Sprintf("Extracted %d components", len(components)))

	printFileInfo(path, info)
	printNewline()

	if len(components) == 0 {
		printWarning("no components could be extracted; the server would fall back to a demo board")
		return nil
	}

	if opts.interactive {
		model := NewComponentListModel(components)
		_, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
		return err
	}

	printComponents(components, opts.pins)
	return nil
}

func printFileInfo(path string, info sniff.FileInfo) {
	fmt.Println(StyleTitle.Render(path))
	printKeyValue("Size", fmt.Sprintf("%d bytes", info.Size))
	printKeyValue("Format", info.Format)
	printKeyValue("Version", info.Version)
	printKeyValue("Encoding", info.Encoding)
	printKeyValue("Signature", info.Signature)

	flags := []string{}
	if info.IsArchive {
		flags = append(flags, "archive")
	}
	if info.IsMarkup {
		flags = append(flags, "markup")
	}
	if len(flags) > 0 {
		printKeyValue("Structure", strings.Join(flags, ", "))
	}
}

func printComponents(components []schematic.Component, pins bool) {
	for _, c := range components {
		label := c.ID
		if c.Name != c.ID {
			label += " " + StyleDim.Render("("+c.Name+")")
		}
		printInfo("%s  %s %s", label, c.Type, StyleDim.Render(c.Value))
		if pins {
			for _, p := range c.Pins {
				detail := p.Name
				if p.Net != "" {
					detail += "  net=" + p.Net
				}
				printDetail("%s", detail)
			}
		} else {
			printDetail("%d pins", len(c.Pins))
		}
	}
}
