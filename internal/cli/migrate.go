package cli

import (
	"fmt"

	"github.com/tuannt39-study/jhipster-sample/common/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMigrateCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply, roll back or list the embedded schema migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			action := "up"
			if len(args) == 1 {
				action = args[0]
			}
			cfg, logger, err := g.setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := database.NewPostgresDB(&cfg.Database)
			if err != nil {
				return err
			}
			defer database.Close(db)

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			switch action {
			case "up":
				versions, err := database.MigrateUp(ctx, db)
				if err != nil {
					return err
				}
				logger.Info("Migrations applied", zap.Int64s("versions", versions))
				fmt.Fprintf(out, "applied %d migration(s)\n", len(versions))
			case "down":
				v, err := database.MigrateDown(ctx, db)
				if err != nil {
					return err
				}
				logger.Info("Migration rolled back", zap.Int64("version", v))
				fmt.Fprintf(out, "rolled back %d\n", v)
			case "status":
				list, err := database.Status(ctx, db)
				if err != nil {
					return err
				}
				for _, s := range list {
					state := "pending"
					if s.Applied {
						state = "applied"
					}
					fmt.Fprintf(out, "%05d  %-8s %s\n", s.Version, state, s.Path)
				}
			}
			return nil
		},
	}
}
