package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Ashish-Jain-dev/voicestudio/internal/domain"
	"github.com/Ashish-Jain-dev/voicestudio/internal/store"
)

func newQueryCmd() *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "query <agent-id> <question...>",
		Short: "Ask an agent a one-shot text question",
		Long:  "Starts a session (unless --session is given), sends the question, prints the answer, and ends the session.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			client := newAPIClient(cfg)
			question := strings.Join(args[1:], " ")

			id := sessionID
			ephemeral := id == ""
			if ephemeral {
				started, err := client.StartSession(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("start session: %w", err)
				}
				id = started.SessionID
				defer func() {
					if err := client.EndSession(cmd.Context(), id); err != nil {
						log.Warn().Err(err).Str("sessionId", id).Msg("end session failed")
					}
				}()
			}

			resp, err := client.QuerySession(cmd.Context(), id, question)
			recordQueryActivity(args[0], question, err == nil)
			if err != nil {
				return err
			}

			fmt.Println(resp.Answer)
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "reuse an existing session id")
	return cmd
}

// recordQueryActivity appends to the local activity feed; failures are
// logged, never surfaced.
func recordQueryActivity(agentID, question string, ok bool) {
	db, err := store.Open(paths.CacheDB(), log)
	if err != nil {
		log.Debug().Err(err).Msg("activity cache unavailable")
		return
	}
	defer db.Close()

	status := domain.ActivityStatusSuccess
	if !ok {
		status = domain.ActivityStatusError
	}
	cache := store.NewCache(db)
	if err := cache.RecordActivity(domain.Activity{
		ID:        uuid.New().String(),
		AgentID:   agentID,
		Query:     question,
		Status:    status,
		Timestamp: time.Now(),
	}); err != nil {
		log.Debug().Err(err).Msg("activity record failed")
	}
}
