package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newPromptCommand(o *rootOptions) *cobra.Command {
	var (
		render    bool
		noHistory bool
	)

	cmd := &cobra.Command{
		Use:   "prompt [text...]",
		Short: "Send a prompt with the current settings",
		Long:  "Send a prompt with the current settings. Without arguments the prompt is read from stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read prompt: %w", err)
				}
				prompt = string(data)
			}

			svc := o.services().Prompts
			var response string
			if noHistory {
				text, err := svc.CallAPI(cmd.Context(), prompt)
				if err != nil {
					return err
				}
				response = text
			} else {
				item, err := svc.Submit(cmd.Context(), prompt)
				if err != nil {
					return err
				}
				response = item.Response
			}

			if render {
				response = renderMarkdown(response)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), response)
			return err
		},
	}

	cmd.Flags().BoolVar(&render, "render", false, "render the response as markdown")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record the exchange")
	return cmd
}
