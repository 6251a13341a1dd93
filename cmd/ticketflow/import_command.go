package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"ticketflow/internal/backlog"
	"ticketflow/internal/store"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import [path]",
		Short: "Parse a backlog document and replace the stored tickets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			source := ""
			if len(args) > 0 {
				source = strings.TrimSpace(args[0])
			}
			if source == "" {
				source = cfg.Backlog.File
			}
			if source == "" {
				return errors.New("no backlog file given and backlog.file is not configured")
			}
			absPath, err := filepath.Abs(source)
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}

			data, err := os.ReadFile(absPath)
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("backlog file does not exist: %s", absPath)
				}
				return fmt.Errorf("read backlog file: %w", err)
			}

			logger := ctx.ensureLogger()
			parser := backlog.NewParser(logger)
			doc := parser.Parse(string(data))

			return ctx.withStore(func(s *store.Store) error {
				batchID, count, err := s.ReplaceDocument(cmd.Context(), doc, absPath)
				if err != nil {
					return fmt.Errorf("store document: %w", err)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Imported %d tickets from %s\n", count, absPath)
				fmt.Fprintf(out, "Sections: %d\n", len(doc.Sections))
				fmt.Fprintf(out, "Batch: %s\n", batchID)
				return nil
			})
		},
	}
}
