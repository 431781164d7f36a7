package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/calendar"
	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/rules"
	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/state"
	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/ui"
)

var weekDayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func newWeekCmd() *cobra.Command {
	var offset int

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Print the weekly grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			now := time.Now()
			cat := rules.Default()

			_, _, store, err := openStore(ctx)
			if err != nil {
				return err
			}

			week := calendar.AddDays(calendar.WeekStart(now), offset*7)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconSpark, "Week of "+calendar.DateKey(week)))

			header := fmt.Sprintf("%-24s", "")
			for _, d := range weekDayNames {
				header += fmt.Sprintf(" %3s", d)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(header))

			for _, task := range cat.Tasks {
				printWeekRow(cmd, store, week, task.ID, fmt.Sprintf("%-18s %s", task.Title, ui.Muted.Render(fmt.Sprintf("+%4d", task.Reward))),
					func(col int, date time.Time) bool { return task.Available(col, date, now) })
			}
			for _, fine := range cat.Fines {
				printWeekRow(cmd, store, week, fine.ID, fmt.Sprintf("%-18s %s", fine.Title, ui.Bad.Render(fmt.Sprintf("-%4d", fine.Pricing.AmountFor(0)))),
					func(int, time.Time) bool { return true })
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&offset, "offset", "o", 0, "Week offset relative to the current week")

	return cmd
}

func printWeekRow(cmd *cobra.Command, store *state.HistoryStore, week time.Time, ruleID, label string, available func(col int, date time.Time) bool) {
	line := label
	for col := 0; col < 7; col++ {
		date := calendar.AddDays(week, col)
		rec := store.Record(calendar.DateKey(date))
		line += fmt.Sprintf(" [%s]", ui.Mark(rec != nil && rec[ruleID], available(col, date)))
	}
	fmt.Fprintln(cmd.OutOrStdout(), line)
}
