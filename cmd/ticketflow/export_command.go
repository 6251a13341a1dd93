package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"ticketflow/internal/backlog"
	"ticketflow/internal/store"
	"ticketflow/internal/textutil"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var sections []string
	var types []string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the stored tickets back into a backlog document",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(sections) > 0 && len(types) > 0 {
				return fmt.Errorf("--sections and --types cannot be combined")
			}

			return ctx.withStore(func(s *store.Store) error {
				doc, err := s.Document(cmd.Context())
				if err != nil {
					return fmt.Errorf("load document: %w", err)
				}

				var rendered string
				switch {
				case len(sections) > 0:
					rendered = backlog.ExportSections(doc, sections...)
				case len(types) > 0:
					normalized := make([]string, 0, len(types))
					for _, t := range types {
						normalized = append(normalized, strings.ToUpper(strings.TrimSpace(t)))
					}
					rendered = backlog.ExportTypes(doc, normalized...)
				default:
					rendered = backlog.Export(doc)
				}
				if rendered == "" {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing to export")
					return nil
				}

				target := strings.TrimSpace(outputPath)
				if target == "" {
					fmt.Fprint(cmd.OutOrStdout(), rendered)
					return nil
				}
				absPath, err := filepath.Abs(target)
				if err != nil {
					return fmt.Errorf("resolve output path: %w", err)
				}
				if info, err := os.Stat(absPath); err == nil && info.IsDir() {
					absPath = filepath.Join(absPath, exportFileName(doc))
				}
				if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
					return fmt.Errorf("create output directory: %w", err)
				}
				if err := os.WriteFile(absPath, []byte(rendered), 0o644); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported backlog to %s\n", absPath)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the document to a file or directory instead of stdout")
	cmd.Flags().StringSliceVar(&sections, "sections", nil, "Restrict the export to the given section ids")
	cmd.Flags().StringSliceVar(&types, "types", nil, "Restrict the export to the given ticket types")
	return cmd
}

// exportFileName derives a filename from the document title when the output
// target is a directory.
func exportFileName(doc *backlog.Document) string {
	title := strings.TrimSpace(strings.TrimLeft(firstLine(doc.Header), "# "))
	name := textutil.SanitizeFileName(title)
	if name == "" {
		name = "backlog"
	}
	return name + ".md"
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
