package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"promptbox/internal/models"
)

func newSettingsCommand(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and change settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every setting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, headerStyle.Render("SETTINGS"))
			for _, s := range o.services().Settings.Values() {
				fmt.Fprintf(out, "%-18s %s\n", s.Key, displayValue(s))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "get <key>",
		Short:     "Print one setting",
		Args:      cobra.ExactArgs(1),
		ValidArgs: models.SettingKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range o.services().Settings.Values() {
				if s.Key == args[0] {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), displayValue(s))
					return err
				}
			}
			return fmt.Errorf("unknown setting %q", args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Long:  "Change one setting. String settings take the value as typed; numbers and booleans are parsed.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(models.SettingKeys, args[0]) {
				return fmt.Errorf("unknown setting %q", args[0])
			}
			return o.services().Settings.SetValue(cmd.Context(), args[0], args[1])
		},
	})

	return cmd
}

// displayValue masks the API key.
func displayValue(s models.Setting) string {
	if s.Key == models.KeyAPIKey && s.Value != `""` {
		return dimStyle.Render("(set)")
	}
	return s.Value
}
