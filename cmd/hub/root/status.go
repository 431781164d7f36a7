package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/progress"
	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/rules"
	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show balance, streaks and achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			now := time.Now()
			cat := rules.Default()

			_, client, store, err := openStore(ctx)
			if err != nil {
				return err
			}
			report := progress.Compute(store, cat, now)

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconReactor, "Stark Discipline Hub"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Balance", ui.Rub(report.Balance)))
			percent := float64(report.Balance) / float64(rules.Goal) * 100
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Key.Render("Mission:"), ui.Reactor(percent, 24, false))
			fmt.Fprintln(cmd.OutOrStdout(), "")

			fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(ui.IconStreak+" Streaks"))
			active := 0
			for _, task := range cat.Tasks {
				st := report.Streaks[task.ID]
				if st.Count == 0 {
					continue
				}
				active++
				line := fmt.Sprintf("- %s: %d day(s)", task.Title, st.Count)
				if st.NearBonus {
					line += " " + ui.Gold.Render("(2x reward next)")
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			if active == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("- no active streaks"))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "")

			// Persist anything that just became true, then render the union.
			newly := progress.NewlyEarned(store.Unlocked, report.Context)
			if len(newly) > 0 {
				ids := make([]string, 0, len(newly))
				for _, a := range newly {
					ids = append(ids, a.ID)
				}
				store.Unlock(ids)
				if err := client.Save(ctx, store); err != nil {
					return err
				}
			}

			checker := progress.NewAchievementChecker(report.Context)
			fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(fmt.Sprintf("%s Achievements (%d unlocked)", ui.IconTrophy, len(store.Unlocked))))
			for _, a := range checker.GetAchievements() {
				switch {
				case store.HasUnlocked(a.ID):
					fmt.Fprintf(cmd.OutOrStdout(), "- %s %s %s\n", a.Icon, a.Title, ui.Muted.Render(a.Description))
				default:
					fmt.Fprintf(cmd.OutOrStdout(), "- %s %s %s\n", ui.IconLocked, ui.Muted.Render(a.Title), ui.Muted.Render(a.Description))
				}
			}
			for _, a := range newly {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Gold.Render(ui.IconSpark+" Unlocked: "+a.Title))
			}
			return nil
		},
	}

	return cmd
}
