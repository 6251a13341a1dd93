package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"ticketflow/internal/backlog"
	"ticketflow/internal/store"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var typeFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored tickets",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(s *store.Store) error {
				var items []*backlog.Item
				var err error
				filter := strings.ToUpper(strings.TrimSpace(typeFilter))
				if filter != "" {
					items, err = s.ItemsByType(cmd.Context(), filter)
				} else {
					items, err = s.ListItems(cmd.Context())
				}
				if err != nil {
					return fmt.Errorf("list tickets: %w", err)
				}
				if len(items) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No tickets stored")
					return nil
				}

				headers := []string{"ID", "Title", "Severity", "Priority", "Criteria"}
				rows := make([][]string, 0, len(items))
				for _, item := range items {
					rows = append(rows, []string{
						item.ID,
						itemDisplayTitle(item),
						string(item.Severity),
						item.Priority,
						criteriaSummary(item),
					})
				}
				aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight}
				fmt.Fprintln(cmd.OutOrStdout(), renderRows(headers, rows, aligns))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&typeFilter, "type", "t", "", "Only list tickets of this type (e.g. BUG)")
	return cmd
}

func itemDisplayTitle(item *backlog.Item) string {
	if item.Emoji != "" {
		return item.Emoji + " " + item.Title
	}
	return item.Title
}

func criteriaSummary(item *backlog.Item) string {
	if len(item.Criteria) == 0 {
		return "-"
	}
	done := 0
	for _, c := range item.Criteria {
		if c.Checked {
			done++
		}
	}
	return strconv.Itoa(done) + "/" + strconv.Itoa(len(item.Criteria))
}
