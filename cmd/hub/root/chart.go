package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/calendar"
	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/progress"
	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/rules"
	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/ui"
)

func newChartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Print the 28-day balance vs ideal window",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			now := time.Now()

			_, _, store, err := openStore(ctx)
			if err != nil {
				return err
			}
			report := progress.Compute(store, rules.Default(), now)

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconChart, "Velocity: Balance vs Ideal"))
			fmt.Fprintf(cmd.OutOrStdout(), "%-8s %10s %10s\n", "Day", "Balance", "Ideal")

			todayKey := calendar.DateKey(now)
			for _, p := range report.Chart {
				balance := ui.Muted.Render(fmt.Sprintf("%10s", "—"))
				if p.Balance != nil {
					balance = fmt.Sprintf("%10d", *p.Balance)
				}
				ideal := ui.Muted.Render(fmt.Sprintf("%10s", "—"))
				if p.Ideal != nil {
					ideal = ui.Muted.Render(fmt.Sprintf("%10d", *p.Ideal))
				}
				label := fmt.Sprintf("%-8s", p.Label)
				if p.DateKey == todayKey {
					label = ui.Gold.Render(label)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", label, balance, ideal)
			}
			return nil
		},
	}

	return cmd
}
