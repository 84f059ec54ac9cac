package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"weekly-planner/backend/internal/dto"
)

func newWeekCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Consulta e altera o ciclo de vida das semanas",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := app.open(); err != nil {
				return err
			}
			return app.migrate()
		},
	}

	cmd.AddCommand(
		newWeekCurrentCmd(app),
		newWeekCloseCmd(app),
		newWeekReopenCmd(app),
		newWeekStatsCmd(app),
	)

	return cmd
}

func newWeekCurrentCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Mostra (ou cria) a semana atual",
		RunE: func(cmd *cobra.Command, args []string) error {
			week, err := app.svc.Week.Current(cmdContext(cmd))
			if err != nil {
				return err
			}
			printWeek(cmd.OutOrStdout(), week)
			return nil
		},
	}
}

func newWeekCloseCmd(app *App) *cobra.Command {
	var closedBy string
	cmd := &cobra.Command{
		Use:   "close WEEK_ID",
		Short: "Fecha uma semana para edição",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseWeekID(args[0])
			if err != nil {
				return err
			}
			req := &dto.CloseWeekRequest{}
			if closedBy != "" {
				req.ClosedBy = &closedBy
			}
			week, err := app.svc.Week.Close(cmdContext(cmd), id, req)
			if err != nil {
				return err
			}
			printWeek(cmd.OutOrStdout(), week)
			return nil
		},
	}
	cmd.Flags().StringVar(&closedBy, "by", "", "quem fechou a semana")
	return cmd
}

func newWeekReopenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reopen WEEK_ID",
		Short: "Reabre uma semana fechada",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseWeekID(args[0])
			if err != nil {
				return err
			}
			week, err := app.svc.Week.Reopen(cmdContext(cmd), id)
			if err != nil {
				return err
			}
			printWeek(cmd.OutOrStdout(), week)
			return nil
		},
	}
}

func newWeekStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats WEEK_ID",
		Short: "Mostra as estatísticas de conclusão da semana",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseWeekID(args[0])
			if err != nil {
				return err
			}
			stats, err := app.svc.Stats.GetWeekStats(cmdContext(cmd), id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			t := stats.Totals
			fmt.Fprintf(out, "Concluídas: %d/%d (%d%%)\n", t.Done, t.Total, t.Percentage)
			fmt.Fprintf(out, "Nível: %s  Esferas: %d  Sequência: %d dia(s)\n", t.PowerLevel, t.DragonBalls, stats.StreakDays)
			for _, s := range stats.Sectors {
				fmt.Fprintf(out, "  %-20s %d/%d (%d%%)\n", s.Sector.Name, s.Done, s.Total, s.Percentage)
			}
			return nil
		},
	}
}

func printWeek(w io.Writer, week *dto.WeekResponse) {
	fmt.Fprintf(w, "#%d %s - %s [%s]\n", week.ID, week.StartDate, week.EndDate, week.Status)
}

func parseWeekID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("ID de semana inválido: %q", raw)
	}
	return uint(id), nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
