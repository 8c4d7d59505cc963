package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Ashish-Jain-dev/voicestudio/internal/domain"
)

func newAnalyticsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analytics [agent-id]",
		Short: "Show usage analytics, platform-wide or per agent",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient(loadConfig())

			if len(args) == 1 {
				stats, err := client.AgentAnalytics(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Printf("Agent: %s\n", stats.AgentName)
				fmt.Printf("  Sessions:  %d\n", stats.TotalSessions)
				fmt.Printf("  Queries:   %d\n", stats.TotalQueries)
				fmt.Printf("  Documents: %d\n", stats.DocumentsIndexed)
				if stats.LastUsed != nil {
					fmt.Printf("  Last used: %s\n", stats.LastUsed.Format("2006-01-02 15:04"))
				}
				return nil
			}

			// Overview and the agent list come from separate endpoints;
			// fetch them together.
			var (
				overview domain.AnalyticsOverview
				agents   []domain.Agent
			)
			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				var err error
				overview, err = client.AnalyticsOverview(ctx)
				return err
			})
			g.Go(func() error {
				var err error
				agents, err = client.ListAgents(ctx)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			fmt.Println("Platform overview:")
			fmt.Printf("  Agents:    %d\n", overview.TotalAgents)
			fmt.Printf("  Sessions:  %d\n", overview.TotalSessions)
			fmt.Printf("  Queries:   %d\n", overview.TotalQueries)
			fmt.Printf("  Documents: %d\n", overview.TotalDocuments)

			if len(agents) > 0 {
				fmt.Println()
				fmt.Println("Per agent:")
				for _, a := range agents {
					fmt.Printf("  %s %-24s queries=%-5d docs=%d\n",
						domain.TemplateIcon(a.TemplateID), a.Name, a.QueryCount, a.DocumentCount)
				}
			}
			return nil
		},
	}
}
