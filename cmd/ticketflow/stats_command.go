package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"ticketflow/internal/store"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize stored tickets per type",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(s *store.Store) error {
				stats, err := s.Stats(cmd.Context())
				if err != nil {
					return fmt.Errorf("load stats: %w", err)
				}
				out := cmd.OutOrStdout()
				if len(stats) == 0 {
					fmt.Fprintln(out, "No tickets stored")
					return nil
				}

				types := make([]string, 0, len(stats))
				total := 0
				for t, count := range stats {
					types = append(types, t)
					total += count
				}
				sort.Strings(types)

				rows := make([][]string, 0, len(types)+1)
				for _, t := range types {
					rows = append(rows, []string{t, strconv.Itoa(stats[t])})
				}
				rows = append(rows, []string{"Total", strconv.Itoa(total)})
				fmt.Fprintln(out, renderRows([]string{"Type", "Tickets"}, rows, []columnAlignment{alignLeft, alignRight}))

				batch, err := s.LastImport(cmd.Context())
				if err != nil {
					return fmt.Errorf("load last import: %w", err)
				}
				if batch != nil {
					fmt.Fprintf(out, "Last import: %s (%d tickets, %s)\n",
						batch.ImportedAt.Format("2006-01-02 15:04:05"), batch.TicketCount, batch.SourcePath)
				}
				return nil
			})
		},
	}
}
