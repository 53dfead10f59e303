package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rionatty/ampower-visualize/internal/graph"
	"github.com/rionatty/ampower-visualize/internal/render"
)

var buildJSON bool

var buildCmd = &cobra.Command{
	Use:   "build <document>",
	Short: "Build the traceability graph of a document",
	Args:  documentArg,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGraph(cmd.Context(), firstArg(args))
		if err != nil {
			return err
		}

		if buildJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(g)
		}

		printTree(os.Stdout, g)
		return nil
	},
}

func init() {
	addSourceFlags(buildCmd)
	buildCmd.Flags().BoolVar(&buildJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(buildCmd)
}

var (
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#696C71"))
	parentStyle = lipgloss.NewStyle().Bold(true)
)

func typeStyle(t graph.NodeType) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(render.ColorOf(t)))
}

// printTree writes the graph as a tree hanging off the root. A node reached
// again through another parent is printed once more and marked as shared.
func printTree(w io.Writer, g *graph.Graph) {
	snap := graph.NewSnapshot(g)
	root, ok := snap.Pos[graph.RootID]
	if !ok {
		fmt.Fprintln(w, "  (empty graph)")
		return
	}

	seen := make(map[int]bool)
	var walk func(i int, prefix string, last bool, depth int)
	walk = func(i int, prefix string, last bool, depth int) {
		node := g.Nodes[i]
		branch, next := "", prefix
		if depth > 0 {
			branch, next = "├── ", prefix+"│   "
			if last {
				branch, next = "└── ", prefix+"    "
			}
		}
		fmt.Fprintf(w, "%s%s%s\n", mutedStyle.Render(prefix+branch), nodeLine(node), sharedMark(seen[i]))
		if seen[i] {
			return
		}
		seen[i] = true
		children := snap.OutAdj[i]
		for k, c := range children {
			walk(c, next, k == len(children)-1, depth+1)
		}
	}
	walk(root, "", true, 0)

	if len(g.Skipped) > 0 {
		fmt.Fprintf(w, "\n%s\n", mutedStyle.Render(fmt.Sprintf("%d linked records skipped", len(g.Skipped))))
	}
}

func nodeLine(n graph.Node) string {
	label := strings.ReplaceAll(n.Label, "\n", " ")
	swatch := typeStyle(n.Type).Render("■")
	if n.IsParent {
		label = parentStyle.Render(label)
		if n.Type == graph.TypeRoot {
			return swatch + " " + label
		}
		return fmt.Sprintf("%s %s %s", swatch, label, mutedStyle.Render("qty "+graph.FormatQty(n.Qty)))
	}
	return fmt.Sprintf("%s %s %s", swatch, label, mutedStyle.Render(linkLabel(n)))
}

// linkLabel is the text drawn on the edge leading to n
func linkLabel(n graph.Node) string {
	if n.Status == "" {
		return fmt.Sprintf("[Qty: %s]", graph.FormatQty(n.Qty))
	}
	return fmt.Sprintf("%s [Qty: %s]", n.Status, graph.FormatQty(n.Qty))
}

func sharedMark(shared bool) string {
	if !shared {
		return ""
	}
	return mutedStyle.Render(" (shared)")
}
