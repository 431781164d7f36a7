package root

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/rules"
	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/state"
	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the interactive weekly grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, client, store, err := openStore(ctx)
			if err != nil {
				return err
			}
			saver := state.NewSaver(client, cfg.SaveDelay, newLogger())
			return tui.RunBoard(ctx, store, rules.Default(), saver, time.Now, cmd.OutOrStdout())
		},
	}

	return cmd
}
