package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const (
	formatXLSX = "xlsx"
	formatICS  = "ics"
)

func newExportCmd(app *App) *cobra.Command {
	var (
		format   string
		output   string
		personID uint
	)

	cmd := &cobra.Command{
		Use:   "export WEEK_ID",
		Short: "Exporta o planejamento da semana (xlsx ou ics)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseWeekID(args[0])
			if err != nil {
				return err
			}
			if err := app.migrate(); err != nil {
				return err
			}
			ctx := cmdContext(cmd)

			var (
				data     []byte
				filename string
			)
			switch format {
			case formatXLSX:
				buf, name, err := app.svc.Export.ExportWeek(ctx, id)
				if err != nil {
					return err
				}
				data, filename = buf.Bytes(), name
			case formatICS:
				var filter *uint
				if personID != 0 {
					filter = &personID
				}
				body, err := app.svc.Calendar.WeekCalendar(ctx, id, filter)
				if err != nil {
					return err
				}
				data, filename = []byte(body), fmt.Sprintf("semana_%d.ics", id)
			default:
				return fmt.Errorf("formato desconhecido %q (use xlsx ou ics)", format)
			}

			if output == "" {
				output = filename
			} else if info, err := os.Stat(output); err == nil && info.IsDir() {
				output = filepath.Join(output, filename)
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("gravar %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Arquivo gerado: %s (%d bytes)\n", output, len(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatXLSX, "formato: xlsx | ics")
	cmd.Flags().StringVarP(&output, "output", "o", "", "arquivo ou diretório de destino")
	cmd.Flags().UintVar(&personID, "pessoa", 0, "filtra o calendário por pessoa (ics)")
	return cmd
}
