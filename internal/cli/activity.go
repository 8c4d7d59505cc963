package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ashish-Jain-dev/voicestudio/internal/store"
)

func newActivityCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show recent sessions and local query activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			client := newAPIClient(cfg)

			sessions, err := client.RecentSessions(cmd.Context(), limit)
			if err != nil {
				log.Warn().Err(err).Msg("backend unreachable, showing local activity only")
			} else if len(sessions) > 0 {
				fmt.Println("Recent sessions:")
				for _, s := range sessions {
					ended := "active"
					if s.EndedAt != nil {
						ended = s.EndedAt.Format("15:04:05")
					}
					fmt.Printf("  %-12s agent=%-12s %s  %s → %s\n",
						s.ID, s.AgentID, s.Status, s.StartedAt.Format("2006-01-02 15:04:05"), ended)
				}
				fmt.Println()
			}

			db, err := store.Open(paths.CacheDB(), log)
			if err != nil {
				return nil // no local feed yet
			}
			defer db.Close()

			activities, err := store.NewCache(db).RecentActivities(limit)
			if err != nil || len(activities) == 0 {
				return nil
			}
			fmt.Println("Local queries:")
			for _, a := range activities {
				fmt.Printf("  %s  %-8s %s\n", a.Timestamp.Format("2006-01-02 15:04:05"), a.Status, a.Query)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum entries to show")
	return cmd
}
