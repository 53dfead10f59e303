package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rionatty/ampower-visualize/internal/config"
	"github.com/rionatty/ampower-visualize/internal/links"
	"github.com/rionatty/ampower-visualize/internal/logger"
)

var viewOutput string

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Pick documents interactively and keep an HTML page in sync",
	Long: `Reads selections from stdin, one per line:

  doctype <Document Type>   switch the document type
  <document name>           draw the graph of that document

The page is rewritten only when the selection changes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		service := links.NewService(links.DefaultRegistry(d), logger.Default(), graphOptions()...)
		v := &viewer{
			out: viewOutput,
			draw: func(doctype, name string) error {
				g, err := service.Graph(cmd.Context(), doctype, name)
				if err != nil {
					return err
				}
				return writePage(g, viewOutput)
			},
		}
		v.selection.SelectDoctype(srcDoctype)
		return v.run(os.Stdin, os.Stdout)
	},
}

func init() {
	viewCmd.Flags().StringVar(&srcDoctype, "doctype", config.DefaultDoctype, "Initial document type")
	viewCmd.Flags().BoolVar(&srcNested, "nested", false, "Link purchase invoices and receipts under their purchase orders")
	viewCmd.Flags().StringVarP(&viewOutput, "output", "o", "traceability.html", "Page to keep in sync")
	viewCmd.Flags().StringVar(&renderSiteURL, "site-url", "", "Base URL document links point to (default $"+config.EnvSiteURL+")")
	rootCmd.AddCommand(viewCmd)
}

type viewer struct {
	selection links.Selection
	out       string
	draw      func(doctype, name string) error
}

func (v *viewer) run(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		v.handle(strings.TrimSpace(scanner.Text()), out)
	}
	return scanner.Err()
}

func (v *viewer) handle(line string, out io.Writer) {
	if line == "" {
		return
	}
	if rest, ok := strings.CutPrefix(line, "doctype "); ok {
		if v.selection.SelectDoctype(rest) {
			fmt.Fprintf(out, "Select %s\n", v.selection.Doctype)
		}
		return
	}
	if !v.selection.SelectDocument(line) {
		return
	}
	fmt.Fprintln(out, "Fetching linked documents...")
	if err := v.draw(v.selection.Doctype, v.selection.Document); err != nil {
		fmt.Fprintln(out, links.NoticeFor(err).Message)
		logger.Debug("Graph not drawn", "doctype", v.selection.Doctype, "name", v.selection.Document, "err", err)
		return
	}
	fmt.Fprintf(out, "Drew %s %s into %s\n", v.selection.Doctype, v.selection.Document, v.out)
}
