package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Ashish-Jain-dev/voicestudio/internal/domain"
	"github.com/Ashish-Jain-dev/voicestudio/internal/hooks"
	"github.com/Ashish-Jain-dev/voicestudio/internal/realtime"
	"github.com/Ashish-Jain-dev/voicestudio/internal/session"
	"github.com/Ashish-Jain-dev/voicestudio/internal/store"
	"github.com/Ashish-Jain-dev/voicestudio/internal/ui"
)

func newTestCmd() *cobra.Command {
	var textOnly bool

	cmd := &cobra.Command{
		Use:   "test <agent-id>",
		Short: "Run a live voice test session against an agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if err := paths.EnsureDirs(); err != nil {
				return err
			}

			client := newAPIClient(cfg)
			agent, err := client.GetAgent(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("look up agent: %w", err)
			}

			hookMgr := hooks.NewManager(log)
			hookMgr.RegisterConfigured(cfg.Hooks)

			// The notifier reads the session id back off the controller,
			// so bind the variable before construction.
			var controller *session.Controller
			wasConnected := false
			notifier := session.NotifierFunc(func(state domain.SessionState) {
				data := map[string]any{
					"agent_id":   agent.ID,
					"agent_name": agent.Name,
					"session_id": controller.SessionID(),
				}
				switch state {
				case domain.SessionConnected:
					wasConnected = true
					hookMgr.Emit(cmd.Context(), hooks.EventSessionStart, data)
				case domain.SessionIdle:
					if wasConnected {
						wasConnected = false
						hookMgr.Emit(cmd.Context(), hooks.EventSessionEnd, data)
					}
				}
			})

			controller = session.NewController(session.Options{
				Gateway:    client,
				Dialer:     realtime.NewWebsocketDialer(log),
				Notifier:   notifier,
				Log:        log,
				ServerURL:  cfg.LiveKit.URL,
				EndOnClose: cfg.Session.EndOnCloseEnabled(),
			})

			controls := cfg.Controls.Resolve()
			if textOnly {
				controls.Microphone = false
				controls.Camera = false
			}

			view := ui.NewSessionView(controller, agent, controls)
			program := tea.NewProgram(view, tea.WithAltScreen())
			final, err := program.Run()

			// The view tears down on quit, but cover abnormal exits too.
			controller.Close(context.Background())
			if err != nil {
				return err
			}

			if cfg.Session.SaveTranscripts {
				if v, ok := final.(ui.SessionView); ok {
					saveTranscript(agent, v.Transcript())
				}
			}
			return controller.Err()
		},
	}

	cmd.Flags().BoolVar(&textOnly, "text", false, "transcript only, keep the microphone muted")
	return cmd
}

func saveTranscript(agent domain.Agent, messages []domain.TranscriptMessage) {
	if len(messages) == 0 {
		return
	}
	db, err := store.Open(paths.CacheDB(), log)
	if err != nil {
		log.Warn().Err(err).Msg("transcript cache unavailable")
		return
	}
	defer db.Close()

	cache := store.NewCache(db)
	id := fmt.Sprintf("local-%d", time.Now().Unix())
	if err := cache.SaveTranscript(id, agent.ID, messages[0].Timestamp, messages); err != nil {
		log.Warn().Err(err).Msg("transcript save failed")
	}
}
