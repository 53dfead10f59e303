package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rionatty/ampower-visualize/internal/config"
	"github.com/rionatty/ampower-visualize/internal/graph"
	"github.com/rionatty/ampower-visualize/internal/logger"
	"github.com/rionatty/ampower-visualize/internal/render"
)

var (
	renderOutput  string
	renderSiteURL string
	renderTitle   string
)

var renderCmd = &cobra.Command{
	Use:   "render <document>",
	Short: "Write the traceability graph of a document as an HTML page",
	Args:  documentArg,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGraph(cmd.Context(), firstArg(args))
		if err != nil {
			return err
		}

		out := renderOutput
		if out == "" {
			root, _ := g.Root()
			out = outputName(root.Label)
		}
		if err := writePage(g, out); err != nil {
			return err
		}
		fmt.Printf("Wrote %s (%d nodes, %d links)\n", out, len(g.Nodes), len(g.Links))
		return nil
	},
}

func init() {
	addSourceFlags(renderCmd)
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output file (default <document>.html)")
	renderCmd.Flags().StringVar(&renderSiteURL, "site-url", "", "Base URL document links point to (default $"+config.EnvSiteURL+")")
	renderCmd.Flags().StringVar(&renderTitle, "title", "", "Page title")
	rootCmd.AddCommand(renderCmd)
}

func renderOptions() render.Options {
	siteURL := renderSiteURL
	if siteURL == "" {
		siteURL = config.GetEnv(config.EnvSiteURL)
	}
	return render.Options{Title: renderTitle, BaseURL: siteURL}
}

func writePage(g *graph.Graph, path string) error {
	page, err := render.RenderHTML(g, renderOptions())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, page, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	logger.Debug("Rendered graph", "path", path, "bytes", len(page))
	return nil
}

// outputName turns a document name into a file name
func outputName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" {
		name = "graph"
	}
	return name + ".html"
}
