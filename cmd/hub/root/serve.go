package root

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/config"
	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/server"
	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/storage"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the state server (GET/POST the full history document)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := newLogger()

			db, err := storage.Open(ctx, cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			handler := server.NewHandler(storage.NewStateRepo(db), log)
			srv := &http.Server{
				Addr:              cfg.ListenAddr,
				Handler:           server.NewRouter(handler),
				ReadHeaderTimeout: 5 * time.Second,
			}
			return server.Run(ctx, srv, log)
		},
	}

	return cmd
}
