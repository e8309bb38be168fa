package main

import (
	"github.com/spf13/cobra"

	"github.com/tde-services/project-portal/internal/infrastructure/config"
	"github.com/tde-services/project-portal/internal/infrastructure/db/mongo"
	"github.com/tde-services/project-portal/internal/infrastructure/db/postgres"
	"github.com/tde-services/project-portal/pkg/logger"
)

func newMigrateCmd(cfg func() *config.Config) *cobra.Command {
	var skipMongo bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema and the activity log indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c := cfg()
			log := logger.Get()

			pg, err := connectPostgres(ctx, c)
			if err != nil {
				return err
			}
			defer pg.Close()
			if err := postgres.Migrate(ctx, pg); err != nil {
				return err
			}
			log.Info().Msg("postgres schema applied")

			if skipMongo {
				return nil
			}
			db, err := connectMongo(ctx, c)
			if err != nil {
				return err
			}
			defer db.Close(ctx)
			if err := mongo.NewActivityRepository(db.Database()).EnsureIndexes(ctx); err != nil {
				return err
			}
			log.Info().Msg("activity log indexes ensured")
			return nil
		},
	}
	cmd.Flags().BoolVar(&skipMongo, "skip-mongo", false, "Only migrate Postgres")
	return cmd
}
