package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"weekly-planner/backend/internal/dto"
	"weekly-planner/backend/internal/model"
	"weekly-planner/backend/pkg/weekdate"
)

// ── 导出模块业务错误 ──

var ErrExportGenerateFail = errors.New("Falha ao gerar planilha")

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportWeek 导出周计划为 Excel，返回内容与建议文件名
	ExportWeek(ctx context.Context, weekID uint) (*bytes.Buffer, string, error)
}

type exportService struct {
	planning PlanningService
	logger   *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(planning PlanningService, logger *zap.Logger) ExportService {
	return &exportService{planning: planning, logger: logger}
}

const exportSheet = "Planejamento"

var weekdayLabels = [weekdate.WorkDays]string{"Seg", "Ter", "Qua", "Qui", "Sex"}

// ═══════════════════════════════════════════════════════════
// ExportWeek
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 第 1 行：标题（合并单元格）
//   - 第 2 行：Setor | Pessoa | Seg dd/mm ... Sex dd/mm | Observação
//   - 数据行：每名在职人员一行，单元格内每条分配一行，前缀为状态标记

func (s *exportService) ExportWeek(ctx context.Context, weekID uint) (*bytes.Buffer, string, error) {
	plan, err := s.planning.GetPlanning(ctx, weekID)
	if err != nil {
		return nil, "", err
	}

	days, err := weekdate.Days(plan.Week.StartDate)
	if err != nil {
		s.logger.Error("计算周日期失败", zap.String("start_date", plan.Week.StartDate), zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(exportSheet)
	if err != nil {
		s.logger.Error("创建 Sheet 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	f.DeleteSheet("Sheet1")

	lastCol := 2 + len(days) // 0-based：Setor, Pessoa, 日期..., Observação

	// 列宽
	f.SetColWidth(exportSheet, "A", "A", 18)
	f.SetColWidth(exportSheet, "B", "B", 20)
	f.SetColWidth(exportSheet, colName(2), colName(lastCol-1), 28)
	f.SetColWidth(exportSheet, colName(lastCol), colName(lastCol), 32)

	// 样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	wrapStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})

	// 标题行
	title := fmt.Sprintf("Planejamento semanal %s a %s", formatDayMonth(plan.Week.StartDate), formatDayMonth(plan.Week.EndDate))
	if plan.Week.Status == model.WeekStatusClosed {
		title += " (fechada)"
	}
	f.SetCellValue(exportSheet, "A1", title)
	f.MergeCell(exportSheet, "A1", cell(colName(lastCol), 1))
	f.SetCellStyle(exportSheet, "A1", cell(colName(lastCol), 1), headerStyle)

	// 表头
	row := 2
	f.SetCellValue(exportSheet, cell("A", row), "Setor")
	f.SetCellValue(exportSheet, cell("B", row), "Pessoa")
	for i, day := range days {
		f.SetCellValue(exportSheet, cell(colName(2+i), row), weekdayLabels[i]+" "+formatDayMonth(day))
	}
	f.SetCellValue(exportSheet, cell(colName(lastCol), row), "Observação")
	f.SetCellStyle(exportSheet, cell("A", row), cell(colName(lastCol), row), headerStyle)

	// 数据行
	row = 3
	for _, sector := range plan.Sectors {
		for _, person := range sector.People {
			f.SetCellValue(exportSheet, cell("A", row), sector.Sector.Name)
			f.SetCellValue(exportSheet, cell("B", row), person.Person.Name)
			for i, day := range days {
				f.SetCellValue(exportSheet, cell(colName(2+i), row), cellText(person.AllocationsByDate[day]))
			}
			if person.Observation != nil {
				f.SetCellValue(exportSheet, cell(colName(lastCol), row), *person.Observation)
			}
			row++
		}
	}
	if row > 3 {
		f.SetCellStyle(exportSheet, "A3", cell(colName(lastCol), row-1), wrapStyle)
	}

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("planejamento_%s.xlsx", plan.Week.StartDate)
	return buf, filename, nil
}

// ── 辅助函数 ──

// statusMarks 单元格内的状态前缀
var statusMarks = map[string]string{
	model.AllocationPending: "[ ]",
	model.AllocationDone:    "[x]",
	model.AllocationNotDone: "[-]",
}

// cellText 每条分配一行；条目已删除时显示占位
func cellText(allocs []dto.AllocationResponse) string {
	lines := make([]string, 0, len(allocs))
	for _, a := range allocs {
		title := "(item removido)"
		if a.Item != nil {
			title = a.Item.Title
		}
		line := statusMarks[a.Status] + " " + title
		if a.Comment != nil && *a.Comment != "" {
			line += " - " + *a.Comment
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// formatDayMonth "2024-03-04" → "04/03"，无法解析时原样返回
func formatDayMonth(date string) string {
	t, err := weekdate.Parse(date)
	if err != nil {
		return date
	}
	return t.Format("02/01")
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
