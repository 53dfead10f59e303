package cmd

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rionatty/ampower-visualize/internal/config"
	"github.com/rionatty/ampower-visualize/internal/graph"
)

var (
	statsJSON         bool
	statsTopN         int
	statsHubThreshold int
)

var statsCmd = &cobra.Command{
	Use:   "stats <document>",
	Short: "Analyze graph structure: components, orphans, shared children, hubs",
	Args:  documentArg,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGraph(cmd.Context(), firstArg(args))
		if err != nil {
			return err
		}

		topN, hubThreshold := statsLimits()
		snap := graph.NewSnapshot(g)
		report := graph.ComputeTopology(snap, hubThreshold, topN)

		if statsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		printHumanReadable(report, g)
		return nil
	},
}

func init() {
	addSourceFlags(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
	statsCmd.Flags().IntVar(&statsTopN, "top-n", 0, "Number of top items to show per section (default $"+config.EnvTopN+" or 10)")
	statsCmd.Flags().IntVar(&statsHubThreshold, "hub-threshold", 0, "Minimum degree to consider a node a hub (default $"+config.EnvHubMin+" or 5)")
	rootCmd.AddCommand(statsCmd)
}

// statsLimits resolves --top-n and --hub-threshold, falling back to the
// environment and then the defaults
func statsLimits() (topN, hubThreshold int) {
	topN, hubThreshold = statsTopN, statsHubThreshold
	if topN <= 0 {
		topN = config.GetEnvInt(config.EnvTopN, config.DefaultTopN)
	}
	if hubThreshold <= 0 {
		hubThreshold = config.GetEnvInt(config.EnvHubMin, config.DefaultHubMin)
	}
	return topN, hubThreshold
}

func printHumanReadable(report *graph.TopologyReport, g *graph.Graph) {
	root, _ := g.Root()
	fmt.Printf("\n  Traceability: %s\n\n", root.Label)

	// Topology
	fmt.Println("  TOPOLOGY")
	fmt.Println("  ────────────────────────────────────────")
	fmt.Printf("  Nodes: %d  Edges: %d  Components: %d\n", report.TotalNodes, report.TotalEdges, report.NumComponents)
	fmt.Printf("  Line items: %d  Shared children: %d  Largest component: %d\n",
		report.ParentNodes-1, report.SharedChildren, report.LargestComponent)

	printIDs := func(title string, count int, ids []string) {
		if count == 0 {
			return
		}
		fmt.Printf("  %s: %d\n", title, count)
		for _, id := range ids {
			label := "?"
			if n, ok := g.Node(id); ok {
				label = truncTitle(strings.ReplaceAll(n.Label, "\n", " "), 50)
			}
			fmt.Printf("    - %s (%s)\n", truncID(id), label)
		}
		if count > len(ids) {
			fmt.Printf("    ... and %d more\n", count-len(ids))
		}
	}
	printIDs("Orphans", report.OrphanCount, report.OrphanIDs)
	printIDs("Unreachable from root", report.UnreachableCount, report.UnreachableIDs)

	// Node types
	fmt.Println("\n  Node types:")
	for _, tc := range report.TypeCounts {
		fmt.Printf("    %-18s %4d\n", tc.Type, tc.Count)
	}

	// Degree distribution
	fmt.Println("\n  Degree distribution:")
	for _, b := range report.DegreeHistogram {
		if b.Count > 0 {
			barWidth := int(math.Log2(float64(b.Count))) + 2
			if barWidth < 1 {
				barWidth = 1
			}
			fmt.Printf("    %5s: %4d  %s\n", b.Label, b.Count, strings.Repeat("=", barWidth))
		}
	}

	// Hubs
	if len(report.Hubs) > 0 {
		fmt.Println("\n  Top hubs (degree > threshold):")
		for _, hub := range report.Hubs {
			fmt.Printf("    %s degree=%d (in=%d, out=%d)  %s\n",
				truncID(hub.ID), hub.Degree, hub.InDegree, hub.OutDegree,
				truncTitle(strings.ReplaceAll(hub.Label, "\n", " "), 40))
		}
	}

	// Structural problems
	if err := graph.Validate(g); err != nil {
		fmt.Println("\n  PROBLEMS")
		fmt.Println("  ────────────────────────────────────────")
		for _, line := range strings.Split(err.Error(), "\n") {
			fmt.Printf("  %s\n", line)
		}
	}
	if len(g.Skipped) > 0 {
		fmt.Printf("\n  %d linked records skipped:\n", len(g.Skipped))
		for _, s := range g.Skipped {
			fmt.Printf("    - %s\n", s)
		}
	}

	fmt.Println()
}

func truncID(id string) string {
	if len(id) > 24 {
		return id[:24]
	}
	return id
}

func truncTitle(s string, max int) string {
	if len(s) <= max {
		return s
	}
	// Find a safe UTF-8 boundary
	truncated := s[:max]
	for len(truncated) > 0 && truncated[len(truncated)-1]>>6 == 2 {
		truncated = truncated[:len(truncated)-1]
	}
	return truncated + "..."
}
