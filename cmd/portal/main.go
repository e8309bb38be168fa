// Command portal runs the project portal API and its maintenance tasks.
//
//	@title						Project Portal API
//	@version					1.0
//	@description				Back-office and client portal for construction projects.
//	@BasePath					/
//	@securityDefinitions.apikey	TabID
//	@in							header
//	@name						X-Tab-ID
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tde-services/project-portal/internal/infrastructure/config"
	"github.com/tde-services/project-portal/pkg/logger"
)

func main() {
	var cfg *config.Config

	root := &cobra.Command{
		Use:           "portal",
		Short:         "Project portal API server and maintenance commands",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("load .env: %w", err)
			}
			c, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			cfg = c
			logger.Init(logger.Options{
				Level:   cfg.LogLevel,
				Pretty:  !cfg.IsProduction(),
				Service: "project-portal",
			})
			return nil
		},
	}

	cfgFn := func() *config.Config { return cfg }
	root.AddCommand(
		newServeCmd(cfgFn),
		newMigrateCmd(cfgFn),
		newCreateAdminCmd(cfgFn),
	)

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
