package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 0)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return uint(id), nil
}

func newTemplateCommand(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "template",
		Aliases: []string{"templates"},
		Short:   "Manage saved setting templates",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings := o.services().Settings
			current := settings.Snapshot().CurrentTemplateID
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%-5s %-24s %s", "ID", "NAME", "MODEL")))
			for _, t := range settings.Templates() {
				line := fmt.Sprintf("%-5d %-24s %s", t.ID, t.Name, t.Config.ModelName)
				if t.ID == current {
					line = currentStyle.Render(line + "  (current)")
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "save <name>",
		Short: "Save the current settings as a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := o.services().Settings
			t := settings.SaveAsTemplate(cmd.Context(), args[0])
			if t == nil {
				return errors.New(settings.Error())
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "saved template %d %q\n", t.ID, t.Name)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "load <id>",
		Short: "Apply a template to the current settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			settings := o.services().Settings
			if !settings.LoadTemplate(cmd.Context(), id) {
				return errors.New(settings.Error())
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "loaded template %q\n", settings.CurrentTemplateName())
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			settings := o.services().Settings
			if !settings.DeleteTemplate(cmd.Context(), id) {
				return errors.New(settings.Error())
			}
			return nil
		},
	})

	return cmd
}
