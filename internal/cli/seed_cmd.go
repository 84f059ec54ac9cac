package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"weekly-planner/backend/internal/dto"
	"weekly-planner/backend/internal/service"
)

type seedPerson struct {
	name   string
	sector string
	order  int
}

type seedItem struct {
	title       string
	description string
	sector      string
	color       string
}

var seedSectors = []string{"Desenvolvimento", "QA", "Design", "Infraestrutura"}

var seedPeople = []seedPerson{
	{"João Silva", "Desenvolvimento", 1},
	{"Maria Santos", "Desenvolvimento", 2},
	{"Pedro Costa", "Desenvolvimento", 3},
	{"Ana Oliveira", "QA", 1},
	{"Carlos Lima", "QA", 2},
	{"Fernanda Souza", "Design", 1},
	{"Ricardo Mendes", "Infraestrutura", 1},
}

var seedItems = []seedItem{
	{"Bug Fix", "Correção de bugs", "Desenvolvimento", "#ef4444"},
	{"Code Review", "Revisão de código", "Desenvolvimento", "#f59e0b"},
	{"Nova Feature", "Desenvolvimento de funcionalidade", "Desenvolvimento", "#22c55e"},
	{"Refatoração", "Melhoria de código existente", "Desenvolvimento", "#8b5cf6"},
	{"Documentação", "Documentação técnica", "Desenvolvimento", "#6366f1"},
	{"Testes Manuais", "Execução de testes manuais", "QA", "#ec4899"},
	{"Automação", "Criação de testes automatizados", "QA", "#14b8a6"},
	{"Homologação", "Validação em ambiente de homologação", "QA", "#f97316"},
	{"Wireframe", "Criação de wireframes", "Design", "#06b6d4"},
	{"UI Design", "Design de interface", "Design", "#a855f7"},
	{"Prototipação", "Criação de protótipos", "Design", "#84cc16"},
	{"Deploy", "Deploy em produção", "Infraestrutura", "#dc2626"},
	{"Monitoramento", "Monitoramento de sistemas", "Infraestrutura", "#0ea5e9"},
	{"Backup", "Execução de backups", "Infraestrutura", "#64748b"},
	{"Reunião", "Participação em reuniões", "", "#94a3b8"},
	{"Treinamento", "Treinamento e capacitação", "", "#fbbf24"},
	{"Suporte", "Atendimento de suporte", "", "#f472b6"},
}

func newSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Popula setores, pessoas, itens e a semana atual",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.migrate(); err != nil {
				return err
			}
			return runSeed(cmd.Context(), app.svc, cmd)
		},
	}
}

// runSeed 重复执行时跳过已存在的记录
func runSeed(ctx context.Context, svc *service.Service, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	// ── 部门 ──
	sectorIDs := make(map[string]uint, len(seedSectors))
	existing, err := svc.Sector.List(ctx)
	if err != nil {
		return err
	}
	for _, s := range existing {
		sectorIDs[s.Name] = s.ID
	}
	created := 0
	for i, name := range seedSectors {
		if _, ok := sectorIDs[name]; ok {
			continue
		}
		order := i + 1
		sector, err := svc.Sector.Create(ctx, &dto.CreateSectorRequest{Name: name, Order: &order})
		if err != nil && !errors.Is(err, service.ErrSectorNameExists) {
			return fmt.Errorf("criar setor %s: %w", name, err)
		}
		if sector != nil {
			sectorIDs[name] = sector.ID
			created++
		}
	}
	fmt.Fprintf(out, "Setores criados: %d\n", created)

	// ── 人员 ──
	people, err := svc.Person.List(ctx, &dto.PersonListRequest{})
	if err != nil {
		return err
	}
	knownPeople := make(map[string]bool, len(people))
	for _, p := range people {
		knownPeople[personKey(p.Name, p.SectorID)] = true
	}
	created = 0
	for _, p := range seedPeople {
		sectorID := sectorIDs[p.sector]
		if knownPeople[personKey(p.name, sectorID)] {
			continue
		}
		order := p.order
		if _, err := svc.Person.Create(ctx, &dto.CreatePersonRequest{Name: p.name, SectorID: sectorID, Order: &order}); err != nil {
			return fmt.Errorf("criar pessoa %s: %w", p.name, err)
		}
		created++
	}
	fmt.Fprintf(out, "Pessoas criadas: %d\n", created)

	// ── 条目 ──
	items, err := svc.Item.List(ctx, &dto.ItemListRequest{})
	if err != nil {
		return err
	}
	knownItems := make(map[string]bool, len(items))
	for _, it := range items {
		knownItems[it.Title] = true
	}
	created = 0
	for _, it := range seedItems {
		if knownItems[it.title] {
			continue
		}
		desc := it.description
		req := &dto.CreateItemRequest{Title: it.title, Description: &desc, Color: it.color}
		if it.sector != "" {
			id := sectorIDs[it.sector]
			req.SuggestedSectorID = &id
		}
		if _, err := svc.Item.Create(ctx, req); err != nil {
			return fmt.Errorf("criar item %s: %w", it.title, err)
		}
		created++
	}
	fmt.Fprintf(out, "Itens criados: %d\n", created)

	// ── 当前周 ──
	week, err := svc.Week.Current(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Semana atual: %s - %s\n", week.StartDate, week.EndDate)
	return nil
}

func personKey(name string, sectorID uint) string {
	return fmt.Sprintf("%d:%s", sectorID, name)
}
