package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/ui"
)

const Version = "1.2.0"

var rootCmd = &cobra.Command{
	Use:           "hub",
	Short:         "Stark Discipline Hub: habit tracker with a mission balance",
	Long:          "StarkHub tracks daily tasks and fines, folds them into a running RUB balance with streak bonuses, and unlocks achievements on the way to the 60 000 RUB goal.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newWeekCmd(),
		newCheckCmd(),
		newFineCmd(),
		newStatusCmd(),
		newChartCmd(),
		newJarvisCmd(),
		newBoardCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
