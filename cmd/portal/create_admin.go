package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
	"github.com/tde-services/project-portal/internal/infrastructure/config"
	"github.com/tde-services/project-portal/pkg/logger"
)

// cliOperator stands in for a signed-in superadmin when accounts are created
// from the command line.
var cliOperator = &domain.Profile{ID: "cli", FullName: "command line", Role: domain.RoleSuperAdmin}

func newCreateAdminCmd(cfg func() *config.Config) *cobra.Command {
	var in ports.CreateAdminInput
	var role string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create or promote a back-office account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c := cfg()
			log := logger.Get()

			b, err := connect(ctx, c)
			if err != nil {
				return err
			}
			defer b.close()
			a, err := wire(c, b, log)
			if err != nil {
				return err
			}

			in.Role = domain.Role(role)
			res, err := a.superadmin.CreateAdmin(ctx, cliOperator, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s)\n", res.Status, in.Email, res.UserID)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&in.Password, "password", "", "Password, at least 8 characters")
	cmd.Flags().StringVar(&in.FullName, "name", "", "Full name")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleAdmin), "admin or superadmin")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
