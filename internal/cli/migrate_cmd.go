package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"weekly-planner/backend/pkg/database"
)

func newMigrateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Gerencia as migrações do banco",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Aplica todas as migrações pendentes",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.migrate(); err != nil {
					return err
				}
				return printVersion(cmd, app)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Reverte a última migração",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := database.RollbackMigration(app.sqlDB, app.cfg.Database.Driver, app.logger); err != nil {
					return err
				}
				return printVersion(cmd, app)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Mostra a versão atual do schema",
			RunE: func(cmd *cobra.Command, args []string) error {
				return printVersion(cmd, app)
			},
		},
	)

	return cmd
}

func printVersion(cmd *cobra.Command, app *App) error {
	version, dirty, err := database.MigrationVersion(app.sqlDB, app.cfg.Database.Driver)
	if err != nil {
		return err
	}
	state := "limpo"
	if dirty {
		state = "dirty"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "versão do schema: %d (%s)\n", version, state)
	return nil
}
