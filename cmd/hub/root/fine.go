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

func newFineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fine <fine> [date]",
		Short: "Toggle a rule-violation fine (default: today)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 || len(args) > 2 {
				return errors.New("fine id is required, date is optional (YYYY-MM-DD)")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			now := time.Now()

			cat := rules.Default()
			fine, ok := cat.Fine(args[0])
			if !ok {
				return fmt.Errorf("unknown fine %q", args[0])
			}
			date, err := resolveDate(args, 1, now)
			if err != nil {
				return err
			}

			_, client, store, err := openStore(ctx)
			if err != nil {
				return err
			}
			marked := store.Toggle(date, fine.ID)
			if err := client.Save(ctx, store); err != nil {
				return err
			}

			report := progress.Compute(store, cat, now)
			if marked {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s on %s %s\n",
					ui.Bad.Render(ui.IconFine+" Fine:"), fine.Title, calendar.DateKey(date),
					ui.Muted.Render(fmt.Sprintf("(-%d)", fine.Pricing.AmountFor(0))))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s on %s\n",
					ui.Warn.Render("Cleared:"), fine.Title, calendar.DateKey(date))
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Balance", ui.Rub(report.Balance)))
			return nil
		},
	}

	return cmd
}
