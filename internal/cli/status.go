package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Ashish-Jain-dev/voicestudio/internal/config"
	"github.com/Ashish-Jain-dev/voicestudio/internal/domain"
	"github.com/Ashish-Jain-dev/voicestudio/internal/store"
	"github.com/Ashish-Jain-dev/voicestudio/internal/version"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show voicestudio status and configuration summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Voice Studio %s (commit %s)\n\n", version.Version, version.Commit)

			fmt.Printf("Config:  %s\n", paths.Config)
			fmt.Printf("Data:    %s\n", paths.Data)
			fmt.Printf("Logs:    %s\n", paths.Logs)
			fmt.Println()

			cfg := loadConfig()
			fmt.Printf("API:     %s (timeout %ds)\n", cfg.API.BaseURL, cfg.API.TimeoutSeconds)
			if config.IsPlaceholderURL(cfg.LiveKit.URL) {
				fmt.Println("Room:    NOT CONFIGURED (livekit.url is unset or a placeholder)")
			} else {
				fmt.Printf("Room:    %s\n", cfg.LiveKit.URL)
			}
			fmt.Printf("Session: endOnClose=%v saveTranscripts=%v\n",
				cfg.Session.EndOnCloseEnabled(), cfg.Session.SaveTranscripts)

			// Probe the backend and the local cache concurrently.
			client := newAPIClient(cfg)
			var (
				overview   domain.AnalyticsOverview
				backendErr error
				cacheErr   error
			)
			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				overview, backendErr = client.AnalyticsOverview(ctx)
				return nil
			})
			g.Go(func() error {
				db, err := store.Open(paths.CacheDB(), log)
				if err != nil {
					cacheErr = err
					return nil
				}
				return db.Close()
			})
			g.Wait()

			if backendErr != nil {
				fmt.Printf("Backend: unreachable (%v)\n", backendErr)
			} else {
				fmt.Printf("Backend: ok (%d agents, %d sessions)\n", overview.TotalAgents, overview.TotalSessions)
			}
			if cacheErr != nil {
				fmt.Printf("Cache:   error (%v)\n", cacheErr)
			} else {
				fmt.Printf("Cache:   %s\n", paths.CacheDB())
			}

			issues := config.Validate(&cfg)
			if len(issues) > 0 {
				fmt.Printf("\nValidation issues (%d):\n", len(issues))
				for _, issue := range issues {
					fmt.Printf("  - %s\n", issue)
				}
			}
			return nil
		},
	}
}
