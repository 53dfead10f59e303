package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rionatty/ampower-visualize/internal/config"
	"github.com/rionatty/ampower-visualize/internal/graph"
	"github.com/rionatty/ampower-visualize/internal/links"
	"github.com/rionatty/ampower-visualize/internal/logger"
)

// Flags shared by every command that builds a graph
var (
	srcDoctype string
	srcInput   string
	srcNested  bool
)

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&srcDoctype, "doctype", config.DefaultDoctype, "Document type of the root document")
	cmd.Flags().StringVar(&srcInput, "input", "", "Read linked documents from a JSON file instead of the database")
	cmd.Flags().BoolVar(&srcNested, "nested", false, "Link purchase invoices and receipts under their purchase orders")
}

func graphOptions() []graph.Option {
	if srcNested || config.GetEnvBool(config.EnvNested, false) {
		return []graph.Option{graph.WithNested()}
	}
	return nil
}

// readLinksFile decodes a procedure response saved as JSON
func readLinksFile(path string) (*graph.LinksResponse, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var resp graph.LinksResponse
	if err := json.NewDecoder(f).Decode(&resp); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &resp, nil
}

// loadGraph builds the graph of reference, from --input when given and
// from the database otherwise
func loadGraph(ctx context.Context, reference string) (*graph.Graph, error) {
	if srcInput != "" {
		resp, err := readLinksFile(srcInput)
		if err != nil {
			return nil, err
		}
		rootName := reference
		if rootName == "" && resp.RootDocument != nil {
			rootName = resp.RootDocument.Name
		}
		service := links.NewService(links.NewRegistry(), logger.Default(), graphOptions()...)
		return service.Build(resp, rootName)
	}

	d, err := OpenDatabase()
	if err != nil {
		return nil, err
	}
	defer d.Close()

	doc, err := ResolveDocument(ctx, d, srcDoctype, reference)
	if err != nil {
		return nil, err
	}
	service := links.NewService(links.DefaultRegistry(d), logger.Default(), graphOptions()...)
	return service.Graph(ctx, doc.Doctype, doc.Name)
}

// documentArg accepts a document argument that may be omitted with --input
func documentArg(cmd *cobra.Command, args []string) error {
	if srcInput != "" {
		return cobra.MaximumNArgs(1)(cmd, args)
	}
	return cobra.ExactArgs(1)(cmd, args)
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
