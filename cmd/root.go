package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rionatty/ampower-visualize/internal/config"
	"github.com/rionatty/ampower-visualize/internal/db"
	"github.com/rionatty/ampower-visualize/internal/logger"
)

var (
	dbPath string
	debug  bool
)

var rootCmd = &cobra.Command{
	Use:           "trace",
	Short:         "Product traceability graphs for sales orders",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadEnv()
		logger.Init(logger.Params{Debug: debug || config.GetEnvBool(config.EnvDebug, false)})
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to "+config.DefaultDBName+" database")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}

// DiscoverDB finds the database path using priority: env > flag > walk-up > XDG fallback
func DiscoverDB() (string, error) {
	// 1. Environment variable
	if envPath := config.GetEnv(config.EnvDB); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		logger.Warn("Database from environment not found", "env", config.EnvDB, "path", envPath)
	}

	// 2. CLI flag
	if dbPath != "" {
		if _, err := os.Stat(dbPath); err == nil {
			return dbPath, nil
		}
		return "", fmt.Errorf("database not found at --db path: %s", dbPath)
	}

	// 3. Walk up from CWD
	dir, err := os.Getwd()
	if err == nil {
		for {
			candidate := filepath.Join(dir, config.DefaultDBName)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	// 4. XDG fallback
	if xdgPath, err := xdgDBPath(); err == nil {
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath, nil
		}
	}

	return "", fmt.Errorf("no %s found (set %s, use --db, or run from a directory containing %s)",
		config.DefaultDBName, config.EnvDB, config.DefaultDBName)
}

func xdgDBPath() (string, error) {
	if dataHome := config.GetEnv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "traceability", "traceability.db"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "traceability", "traceability.db"), nil
}

// OpenDatabase discovers, opens and migrates the database
func OpenDatabase() (*db.DB, error) {
	path, err := DiscoverDB()
	if err != nil {
		return nil, err
	}
	return openAt(path)
}

func openAt(path string) (*db.DB, error) {
	d, err := db.OpenDB(path)
	if err != nil {
		return nil, err
	}
	if err := d.Migrate(); err != nil {
		d.Close()
		return nil, fmt.Errorf("migrating %s: %w", path, err)
	}
	logger.Debug("Opened database", "path", path)
	return d, nil
}

// ResolveDocument finds a document by exact name or unique name prefix
func ResolveDocument(ctx context.Context, d *db.DB, doctype, reference string) (*db.Document, error) {
	reference = strings.TrimSpace(reference)

	// 1. Exact name match
	doc, err := d.GetDocument(ctx, doctype, reference)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, db.ErrDocumentNotFound) {
		return nil, err
	}

	// 2. Name prefix match
	matches, err := d.SearchByNamePrefix(ctx, doctype, reference, 10)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 1:
		return &matches[0], nil
	case 0:
		return nil, fmt.Errorf("%s %s: %w", doctype, reference, db.ErrDocumentNotFound)
	default:
		lines := make([]string, len(matches))
		for i, m := range matches {
			lines[i] = fmt.Sprintf("  %s (%s)", m.Name, m.Status)
		}
		return nil, fmt.Errorf("ambiguous reference '%s'. %d matches:\n%s\nUse a full document name instead.",
			reference, len(matches), strings.Join(lines, "\n"))
	}
}
