package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ashish-Jain-dev/voicestudio/internal/domain"
)

func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List agent templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient(loadConfig())
			templates, err := client.ListTemplates(cmd.Context())
			if err != nil {
				log.Warn().Err(err).Msg("template list unavailable, showing built-ins")
				templates = builtinTemplates()
			}

			for _, t := range templates {
				fmt.Printf("  %s %-12s %-20s %s\n", domain.TemplateIcon(t.ID), t.ID, t.Name, t.Description)
			}
			return nil
		},
	}
}
