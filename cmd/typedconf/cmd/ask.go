package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/typedconf/internal/llm"
	"github.com/MKhiriev/typedconf/internal/service"
)

func newAskCommand(opts *rootOptions) *cobra.Command {
	var (
		system      string
		temperature float64
		maxTokens   int
		showUsage   bool
	)

	cmd := &cobra.Command{
		Use:   "ask PROMPT...",
		Short: "Send one prompt to the configured model and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := llm.NewOpenAIModel(opts.cfg.Model, opts.cfg.Provider, opts.log)
			if err != nil {
				return err
			}
			conv, err := service.NewConversation(model, system, opts.log)
			if err != nil {
				return err
			}

			overrides := map[string]any{}
			if cmd.Flags().Changed("temperature") {
				overrides["temperature"] = temperature
			}
			if cmd.Flags().Changed("max-tokens") {
				overrides["max_tokens"] = maxTokens
			}

			resp, err := conv.Send(cmd.Context(), strings.Join(args, " "), overrides)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, resp.Content)
			if showUsage && resp.Usage != nil {
				fmt.Fprintf(out, "[%s, %d prompt + %d completion = %d tokens, %s]\n",
					resp.Model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens, resp.Usage.TotalTokens, resp.ResponseTime.Round(time.Millisecond))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&system, "system", "", "system prompt")
	cmd.Flags().Float64Var(&temperature, "temperature", 0, "override model.temperature for this call")
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 0, "override model.max_tokens for this call")
	cmd.Flags().BoolVar(&showUsage, "usage", false, "print token usage after the reply")
	return cmd
}
