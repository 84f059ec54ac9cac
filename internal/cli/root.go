package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd 创建 plannerctl 根命令并注册全部子命令
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "plannerctl",
		Short:         "Ferramenta de operação do planejamento semanal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.open()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.close()
		},
	}
	root.PersistentFlags().StringVarP(&app.ConfigPath, "config", "c", "", "arquivo de configuração (yaml)")

	root.AddCommand(
		newMigrateCmd(app),
		newSeedCmd(app),
		newWeekCmd(app),
		newExportCmd(app),
	)

	return root
}
