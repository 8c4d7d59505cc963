package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Ashish-Jain-dev/voicestudio/internal/api"
	"github.com/Ashish-Jain-dev/voicestudio/internal/domain"
)

func newAgentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Manage voice agents",
	}

	cmd.AddCommand(newAgentListCmd())
	cmd.AddCommand(newAgentShowCmd())
	cmd.AddCommand(newAgentCreateCmd())
	cmd.AddCommand(newAgentUpdateCmd())
	cmd.AddCommand(newAgentDeleteCmd())
	cmd.AddCommand(newAgentDocsCmd())
	return cmd
}

func newAgentListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List agents on the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			state := openAppState(cfg)
			defer state.Close()

			client := newAPIClient(cfg)
			agents, err := client.ListAgents(cmd.Context())
			if err != nil {
				cached, ok := state.CachedAgents()
				if !ok {
					return err
				}
				log.Warn().Err(err).Msg("backend unreachable, showing cached agents")
				agents = cached
			} else {
				state.SetAgents(agents)
			}

			if len(agents) == 0 {
				fmt.Println("No agents yet. Create one with: voicestudio agent create")
				return nil
			}

			for _, a := range agents {
				fmt.Printf("  %s %-24s %-12s queries=%-5d docs=%-3d %s\n",
					domain.TemplateIcon(a.TemplateID), a.Name, a.ID, a.QueryCount, a.DocumentCount, a.Status)
			}
			return nil
		},
	}
}

func newAgentShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <agent-id>",
		Short: "Show details about an agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient(loadConfig())
			a, err := client.GetAgent(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Agent: %s %s (%s)\n", domain.TemplateIcon(a.TemplateID), a.Name, a.ID)
			if a.Description != "" {
				fmt.Printf("  Description: %s\n", a.Description)
			}
			fmt.Printf("  Template:    %s\n", a.TemplateID)
			fmt.Printf("  Voice:       %s\n", a.VoiceID())
			fmt.Printf("  Status:      %s\n", a.Status)
			fmt.Printf("  Queries:     %d\n", a.QueryCount)
			fmt.Printf("  Documents:   %d\n", a.DocumentCount)
			if a.LastUsed != nil {
				fmt.Printf("  Last used:   %s\n", a.LastUsed.Format("2006-01-02 15:04"))
			}
			fmt.Printf("  Prompt:      %s\n", a.SystemPrompt)
			return nil
		},
	}
}

func newAgentCreateCmd() *cobra.Command {
	var (
		name        string
		description string
		templateID  string
		prompt      string
		voice       string
	)

	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create an agent, interactively unless flags are given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && name == "" {
				name = args[0]
			}

			req := api.CreateAgentRequest{
				Name:         name,
				Description:  description,
				TemplateID:   templateID,
				SystemPrompt: prompt,
				VoiceID:      voice,
			}

			// Missing required fields send us through the wizard.
			if req.Name == "" || req.TemplateID == "" || req.SystemPrompt == "" {
				client := newAPIClient(loadConfig())
				templates, err := client.ListTemplates(cmd.Context())
				if err != nil {
					log.Warn().Err(err).Msg("template list unavailable, using built-ins")
					templates = builtinTemplates()
				}
				req, err = runAgentWizard(os.Stdin, os.Stdout, req, templates)
				if err != nil {
					return err
				}
			}

			cfg := loadConfig()
			client := newAPIClient(cfg)
			created, err := client.CreateAgent(cmd.Context(), req)
			if err != nil {
				return err
			}

			state := openAppState(cfg)
			state.AddAgent(created)
			state.Close()

			fmt.Printf("Created agent %s %s (%s)\n", domain.TemplateIcon(created.TemplateID), created.Name, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "agent name")
	cmd.Flags().StringVar(&description, "description", "", "short description")
	cmd.Flags().StringVar(&templateID, "template", "", "template id (general, project, techstack, client)")
	cmd.Flags().StringVar(&prompt, "prompt", "", "system prompt")
	cmd.Flags().StringVar(&voice, "voice", "", "voice id (default "+domain.DefaultVoiceID+")")
	return cmd
}

func newAgentUpdateCmd() *cobra.Command {
	var (
		name        string
		description string
		prompt      string
		voice       string
		status      string
	)

	cmd := &cobra.Command{
		Use:   "update <agent-id>",
		Short: "Update fields on an agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req api.UpdateAgentRequest
			changed := false
			if cmd.Flags().Changed("name") {
				req.Name = &name
				changed = true
			}
			if cmd.Flags().Changed("description") {
				req.Description = &description
				changed = true
			}
			if cmd.Flags().Changed("prompt") {
				req.SystemPrompt = &prompt
				changed = true
			}
			if cmd.Flags().Changed("voice") {
				req.VoiceID = &voice
				changed = true
			}
			if cmd.Flags().Changed("status") {
				req.Status = &status
				changed = true
			}
			if !changed {
				return fmt.Errorf("nothing to update, pass at least one flag")
			}

			cfg := loadConfig()
			client := newAPIClient(cfg)
			updated, err := client.UpdateAgent(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}

			state := openAppState(cfg)
			state.UpdateAgent(updated)
			state.Close()

			fmt.Printf("Updated agent %s (%s)\n", updated.Name, updated.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "agent name")
	cmd.Flags().StringVar(&description, "description", "", "short description")
	cmd.Flags().StringVar(&prompt, "prompt", "", "system prompt")
	cmd.Flags().StringVar(&voice, "voice", "", "voice id")
	cmd.Flags().StringVar(&status, "status", "", "agent status (active, inactive, draft)")
	return cmd
}

func newAgentDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <agent-id>",
		Short: "Delete an agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("deleting an agent removes its documents and history; re-run with --force")
			}
			cfg := loadConfig()
			client := newAPIClient(cfg)
			if err := client.DeleteAgent(cmd.Context(), args[0]); err != nil {
				return err
			}

			state := openAppState(cfg)
			state.DeleteAgent(args[0])
			state.Close()

			fmt.Printf("Deleted agent %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip the confirmation")
	return cmd
}

func newAgentDocsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Manage an agent's knowledge documents",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list <agent-id>",
		Short: "List an agent's documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient(loadConfig())
			docs, err := client.ListDocuments(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				fmt.Println("No documents uploaded.")
				return nil
			}
			for _, d := range docs {
				fmt.Printf("  %-12s %-32s %6d bytes  %d chunks\n", d.ID, d.Filename, d.FileSize, d.ChunkCount)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "upload <agent-id> <file>",
		Short: "Upload a knowledge document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer f.Close()

			client := newAPIClient(loadConfig())
			doc, err := client.UploadDocument(cmd.Context(), args[0], filepath.Base(args[1]), f)
			if err != nil {
				return err
			}
			fmt.Printf("Uploaded %s (%s)\n", doc.Filename, doc.ID)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "delete <document-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a document",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient(loadConfig())
			if err := client.DeleteDocument(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted document %s\n", args[0])
			return nil
		},
	})

	return cmd
}
