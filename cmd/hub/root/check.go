package root

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/calendar"
	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/progress"
	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/rules"
	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/ui"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <task> [date]",
		Short: "Toggle a task checkmark (default: today)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 || len(args) > 2 {
				return errors.New("task id is required, date is optional (YYYY-MM-DD)")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			now := time.Now()

			cat := rules.Default()
			task, ok := cat.Task(args[0])
			if !ok {
				return fmt.Errorf("unknown task %q", args[0])
			}
			date, err := resolveDate(args, 1, now)
			if err != nil {
				return err
			}
			if !task.AvailableOn(date, now) {
				return fmt.Errorf("%s is not available on %s", task.Title, calendar.DateKey(date))
			}

			_, client, store, err := openStore(ctx)
			if err != nil {
				return err
			}
			checked := store.Toggle(date, task.ID)
			if err := client.Save(ctx, store); err != nil {
				return err
			}

			report := progress.Compute(store, cat, now)
			if checked {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s on %s %s\n",
					ui.Good.Render(ui.IconCheck+" Done:"), task.Title, calendar.DateKey(date),
					ui.Muted.Render(fmt.Sprintf("(+%d)", task.Reward)))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s on %s\n",
					ui.Warn.Render("Cleared:"), task.Title, calendar.DateKey(date))
			}
			if st := report.Streaks[task.ID]; st.NearBonus {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Gold.Render(ui.IconStreak+" Streak at "+fmt.Sprint(st.Count)+", double reward is close"))
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Balance", ui.Rub(report.Balance)))
			return nil
		},
	}

	return cmd
}
