package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/calendar"
	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/jarvis"
	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/progress"
	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/rules"
	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/ui"
)

// recentDays is how much of the chart window goes to the analysis core.
const recentDays = 14

func newJarvisCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jarvis",
		Short: "Ask the analysis core for a discipline review",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			now := time.Now()

			cfg, _, store, err := openStore(ctx)
			if err != nil {
				return err
			}
			report := progress.Compute(store, rules.Default(), now)
			recent := recentHistory(report.Chart, calendar.DateKey(now))

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconRobot, "Jarvis Analysis"))
			summarizer := jarvis.New(cfg.OpenRouterURL, cfg.OpenRouterKey, cfg.OpenRouterModel, newLogger())
			fmt.Fprintln(cmd.OutOrStdout(), summarizer.Summarize(ctx, recent))
			return nil
		},
	}

	return cmd
}

// recentHistory returns the last recentDays chart points up to and
// including today. The chart window extends two weeks past today with
// empty balances; the analysis core only ever sees lived days.
func recentHistory(chart []progress.ChartPoint, todayKey string) []progress.ChartPoint {
	for i, p := range chart {
		if p.DateKey == todayKey {
			chart = chart[:i+1]
			break
		}
	}
	if len(chart) > recentDays {
		chart = chart[len(chart)-recentDays:]
	}
	return chart
}
