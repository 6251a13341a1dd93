package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ticketflow/internal/store"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a single ticket as markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.ToUpper(strings.TrimSpace(args[0]))
			return ctx.withStore(func(s *store.Store) error {
				item, err := s.GetItem(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("load ticket: %w", err)
				}
				if item == nil {
					return fmt.Errorf("no ticket with id %s", id)
				}
				fmt.Fprintln(cmd.OutOrStdout(), item.Markdown())
				return nil
			})
		},
	}
}
