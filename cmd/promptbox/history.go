package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCommand(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse and prune recorded prompts",
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List history, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items := o.services().History.Items()
			if limit > 0 && len(items) > limit {
				items = items[:limit]
			}
			out := cmd.OutOrStdout()
			for _, it := range items {
				fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("#%d %s", it.ID, it.Timestamp.Local().Format(time.DateTime))))
				if it.TemplateName != "" {
					fmt.Fprintln(out, dimStyle.Render(it.ModelName+" / "+it.TemplateName))
				} else if it.ModelName != "" {
					fmt.Fprintln(out, dimStyle.Render(it.ModelName))
				}
				fmt.Fprintf(out, "> %s\n%s\n\n", oneLine(it.Prompt), it.Response)
			}
			return nil
		},
	}
	list.Flags().IntVarP(&limit, "limit", "n", 0, "show at most n items")

	cmd.AddCommand(list)

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Remove one history item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			history := o.services().History
			history.Remove(cmd.Context(), id)
			if msg := history.Error(); msg != "" {
				return errors.New(msg)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			history := o.services().History
			history.Clear(cmd.Context())
			if msg := history.Error(); msg != "" {
				return errors.New(msg)
			}
			return nil
		},
	})

	return cmd
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
