package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rionatty/ampower-visualize/internal/config"
	"github.com/rionatty/ampower-visualize/internal/db"
	"github.com/rionatty/ampower-visualize/internal/logger"
)

var importCreate bool

var importCmd = &cobra.Command{
	Use:   "import <documents.json>",
	Short: "Load documents and their line items into the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		file, err := db.ParseImportFile(f)
		if err != nil {
			return err
		}

		d, err := openForImport()
		if err != nil {
			return err
		}
		defer d.Close()

		n, err := d.ImportDocuments(cmd.Context(), file.Documents)
		if err != nil {
			return fmt.Errorf("importing %s: %w", args[0], err)
		}
		logger.Info("Imported documents", "file", args[0], "documents", len(file.Documents), "items", n)
		fmt.Printf("Imported %d documents (%d line items)\n", len(file.Documents), n)
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVar(&importCreate, "create", true, "Create "+config.DefaultDBName+" in the working directory if no database is found")
	rootCmd.AddCommand(importCmd)
}

// openForImport opens the discovered database, creating one in the working
// directory when none exists and --create is set
func openForImport() (*db.DB, error) {
	d, err := OpenDatabase()
	if err == nil || !importCreate {
		return d, err
	}
	path := dbPath
	if path == "" {
		path = config.GetEnvString(config.EnvDB, config.DefaultDBName)
	}
	logger.Info("Creating database", "path", path)
	return openAt(path)
}
