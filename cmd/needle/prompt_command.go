package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/needle-flow/internal/config"
)

func newPromptCommand(ctx *commandContext) *cobra.Command {
	var builtin bool

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the prompt sent with each audio clip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if builtin {
				fmt.Fprintln(cmd.OutOrStdout(), config.DefaultPrompt)
				return nil
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			prompt, err := cfg.ActivePrompt()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), prompt)
			return nil
		},
	}

	// The built-in prompt needs no configuration; RunE loads it otherwise.
	cmd.Annotations = map[string]string{"skipConfigLoad": "true"}
	cmd.Flags().BoolVar(&builtin, "default", false, "Print the built-in prompt instead of the configured one")
	return cmd
}
