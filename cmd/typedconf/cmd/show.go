package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/MKhiriev/typedconf/internal/service"
)

func newShowCommand(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration without secrets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := service.NewAppInfoService(*opts.cfg, opts.log)
			if err != nil {
				return err
			}
			info := svc.GetAppInfo(cmd.Context())

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			case "yaml":
				enc := yaml.NewEncoder(out)
				defer enc.Close()
				return enc.Encode(info)
			case "text":
				fmt.Fprintf(out, "App name:    %s\n", info.AppName)
				fmt.Fprintf(out, "Model:       %s\n", info.ModelID)
				fmt.Fprintf(out, "Temperature: %g\n", info.Temperature)
				fmt.Fprintf(out, "Max tokens:  %d\n", info.MaxTokens)
				fmt.Fprintf(out, "Top p:       %g\n", info.TopP)
				fmt.Fprintf(out, "Base URL:    %s\n", info.BaseURL)
				fmt.Fprintf(out, "API key set: %t\n", info.HasAPIKey)
				return nil
			default:
				return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", "text", "output format: text, json or yaml")
	return cmd
}
