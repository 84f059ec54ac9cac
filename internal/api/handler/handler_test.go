package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"weekly-planner/backend/internal/dto"
	"weekly-planner/backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// 桩服务：嵌入接口，只实现用到的方法
// ═══════════════════════════════════════════════════════════

type stubWeekService struct {
	service.WeekService
	list  func(req *dto.WeekListRequest) ([]dto.WeekResponse, int64, error)
	close func(id uint) (*dto.WeekResponse, error)
}

func (s *stubWeekService) List(_ context.Context, req *dto.WeekListRequest) ([]dto.WeekResponse, int64, error) {
	return s.list(req)
}

func (s *stubWeekService) Close(_ context.Context, id uint, _ *dto.CloseWeekRequest) (*dto.WeekResponse, error) {
	return s.close(id)
}

type stubAllocationService struct {
	service.AllocationService
	err error
}

func (s *stubAllocationService) UpdateStatus(_ context.Context, id uint, status string) (*dto.AllocationResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.AllocationResponse{ID: id, Status: status}, nil
}

func (s *stubAllocationService) Delete(_ context.Context, _ uint) error {
	return s.err
}

type stubPlanningService struct {
	service.PlanningService
	copyErr error
}

func (s *stubPlanningService) CopyWeek(_ context.Context, _, _ uint) (*dto.CopyWeekResponse, error) {
	if s.copyErr != nil {
		return nil, s.copyErr
	}
	return &dto.CopyWeekResponse{Success: true, Count: 3, Message: "3 alocações copiadas com sucesso"}, nil
}

type stubExportService struct{}

func (stubExportService) ExportWeek(_ context.Context, _ uint) (*bytes.Buffer, string, error) {
	return bytes.NewBufferString("xlsx"), "planejamento_2024-03-04.xlsx", nil
}

type stubObservationService struct {
	service.ObservationService
}

func (stubObservationService) Get(_ context.Context, _, _ uint) (*dto.ObservationResponse, error) {
	return nil, nil
}

// ═══════════════════════════════════════════════════════════
// 辅助
// ═══════════════════════════════════════════════════════════

func newErrs(devMode bool) *errorWriter {
	return &errorWriter{logger: zap.NewNop(), devMode: devMode}
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("响应不是 JSON: %v, body=%s", err, w.Body.String())
	}
	return body
}

// ═══════════════════════════════════════════════════════════
// Test: 错误映射
// ═══════════════════════════════════════════════════════════

func TestToAppError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"周已锁定", service.ErrWeekLocked, http.StatusForbidden, "WEEK_LOCKED"},
		{"包装后的周锁定", errors.Join(errors.New("ctx"), service.ErrWeekLocked), http.StatusForbidden, "WEEK_LOCKED"},
		{"重复关闭", service.ErrWeekAlreadyClosed, http.StatusBadRequest, "ALREADY_CLOSED"},
		{"重复开放", service.ErrWeekAlreadyOpen, http.StatusBadRequest, "ALREADY_OPEN"},
		{"部门重名", service.ErrSectorNameExists, http.StatusBadRequest, "DUPLICATE"},
		{"部门有人员", service.ErrSectorHasPeople, http.StatusBadRequest, "HAS_RELATIONS"},
		{"周不存在", service.ErrWeekNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"分配不存在", service.ErrAllocationNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"状态非法", service.ErrInvalidStatus, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"复制失败", &service.CopyError{Reason: service.CopyReasonDestClosed}, http.StatusBadRequest, "COPY_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := toAppError(tt.err)
			if appErr == nil {
				t.Fatalf("期望映射为 %s，实际为 nil", tt.wantCode)
			}
			if appErr.Status != tt.wantStatus || appErr.Code != tt.wantCode {
				t.Errorf("期望 %d/%s，实际 %d/%s", tt.wantStatus, tt.wantCode, appErr.Status, appErr.Code)
			}
		})
	}

	if toAppError(errors.New("disk full")) != nil {
		t.Error("未知错误应返回 nil")
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Handler
// ═══════════════════════════════════════════════════════════

func TestWeekHandler_ListPagination(t *testing.T) {
	var gotReq *dto.WeekListRequest
	svc := &stubWeekService{list: func(req *dto.WeekListRequest) ([]dto.WeekResponse, int64, error) {
		gotReq = req
		return []dto.WeekResponse{{ID: 3, StartDate: "2024-03-04", EndDate: "2024-03-08", Status: "open"}}, 41, nil
	}}
	h := NewWeekHandler(svc, newErrs(false))
	r := gin.New()
	r.GET("/api/semanas", h.ListWeeks)

	w := serve(r, http.MethodGet, "/api/semanas?page=2&pageSize=20&status=open", "")
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际=%d body=%s", w.Code, w.Body.String())
	}
	if gotReq == nil || gotReq.Status != "open" {
		t.Fatalf("status 过滤未传递: %+v", gotReq)
	}

	body := decode(t, w)
	if body["total"].(float64) != 41 || body["page"].(float64) != 2 || body["pageSize"].(float64) != 20 {
		t.Errorf("分页字段不符: %v", body)
	}
	if body["totalPages"].(float64) != 3 {
		t.Errorf("期望 totalPages=3，实际=%v", body["totalPages"])
	}
	if data, ok := body["data"].([]any); !ok || len(data) != 1 {
		t.Errorf("data 不符: %v", body["data"])
	}
}

func TestWeekHandler_ListInvalidStatus(t *testing.T) {
	h := NewWeekHandler(&stubWeekService{}, newErrs(false))
	r := gin.New()
	r.GET("/api/semanas", h.ListWeeks)

	w := serve(r, http.MethodGet, "/api/semanas?status=aberta", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("非法 status 应返回 400，实际=%d", w.Code)
	}
	if body := decode(t, w); body["error"] != "VALIDATION_ERROR" || body["details"] != nil {
		t.Errorf("生产模式下不应携带 details: %v", body)
	}
}

func TestWeekHandler_CloseAlreadyClosed(t *testing.T) {
	svc := &stubWeekService{close: func(uint) (*dto.WeekResponse, error) {
		return nil, service.ErrWeekAlreadyClosed
	}}
	h := NewWeekHandler(svc, newErrs(false))
	r := gin.New()
	r.PATCH("/api/semanas/:id/fechar", h.CloseWeek)

	w := serve(r, http.MethodPatch, "/api/semanas/1/fechar", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际=%d", w.Code)
	}
	body := decode(t, w)
	if body["error"] != "ALREADY_CLOSED" || body["message"] != service.ErrWeekAlreadyClosed.Error() {
		t.Errorf("错误响应不符: %v", body)
	}
}

func TestAllocationHandler_WeekLocked(t *testing.T) {
	h := NewAllocationHandler(&stubAllocationService{err: service.ErrWeekLocked}, newErrs(false))
	r := gin.New()
	r.PATCH("/api/alocacoes/:id/status", h.UpdateStatus)
	r.DELETE("/api/alocacoes/:id", h.DeleteAllocation)

	w := serve(r, http.MethodPatch, "/api/alocacoes/7/status", `{"status":"done"}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("期望 403，实际=%d", w.Code)
	}
	body := decode(t, w)
	if body["error"] != "WEEK_LOCKED" || body["message"] != "Esta semana está fechada e não pode ser editada." {
		t.Errorf("错误响应不符: %v", body)
	}

	w = serve(r, http.MethodDelete, "/api/alocacoes/7", "")
	if w.Code != http.StatusForbidden {
		t.Errorf("删除锁定周分配期望 403，实际=%d", w.Code)
	}
}

func TestAllocationHandler_StatusAndDelete(t *testing.T) {
	h := NewAllocationHandler(&stubAllocationService{}, newErrs(false))
	r := gin.New()
	r.PATCH("/api/alocacoes/:id/status", h.UpdateStatus)
	r.DELETE("/api/alocacoes/:id", h.DeleteAllocation)

	w := serve(r, http.MethodPatch, "/api/alocacoes/7/status", `{"status":"done"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际=%d", w.Code)
	}
	data := decode(t, w)["data"].(map[string]any)
	if data["status"] != "done" || data["id"].(float64) != 7 {
		t.Errorf("data 不符: %v", data)
	}

	w = serve(r, http.MethodPatch, "/api/alocacoes/7/status", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("缺少 status 应返回 400，实际=%d", w.Code)
	}

	w = serve(r, http.MethodDelete, "/api/alocacoes/7", "")
	if w.Code != http.StatusNoContent || w.Body.Len() != 0 {
		t.Errorf("删除期望 204 且无响应体，实际=%d body=%q", w.Code, w.Body.String())
	}

	w = serve(r, http.MethodDelete, "/api/alocacoes/abc", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("非法 ID 应返回 400，实际=%d", w.Code)
	}
}

func TestAllocationHandler_InternalErrorDetails(t *testing.T) {
	tests := []struct {
		name        string
		devMode     bool
		wantDetails any
	}{
		{"生产模式", false, nil},
		{"开发模式", true, "database is locked"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAllocationHandler(&stubAllocationService{err: errors.New("database is locked")}, newErrs(tt.devMode))
			r := gin.New()
			r.DELETE("/api/alocacoes/:id", h.DeleteAllocation)

			w := serve(r, http.MethodDelete, "/api/alocacoes/1", "")
			if w.Code != http.StatusInternalServerError {
				t.Fatalf("期望 500，实际=%d", w.Code)
			}
			body := decode(t, w)
			if body["error"] != "INTERNAL_ERROR" || body["details"] != tt.wantDetails {
				t.Errorf("错误响应不符: %v", body)
			}
		})
	}
}

func TestPlanningHandler_Copy(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"成功", nil, http.StatusOK},
		{"目标周已关闭", &service.CopyError{Reason: service.CopyReasonDestClosed}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewPlanningHandler(&stubPlanningService{copyErr: tt.err}, stubExportService{}, nil, newErrs(false))
			r := gin.New()
			r.POST("/api/semanas/:id/copiar-de/:origemId", h.CopyWeek)

			w := serve(r, http.MethodPost, "/api/semanas/2/copiar-de/1", "")
			if w.Code != tt.wantStatus {
				t.Fatalf("期望 %d，实际=%d", tt.wantStatus, w.Code)
			}
			body := decode(t, w)
			if tt.err == nil {
				data := body["data"].(map[string]any)
				if data["count"].(float64) != 3 || data["message"] != "3 alocações copiadas com sucesso" {
					t.Errorf("data 不符: %v", data)
				}
				return
			}
			if body["error"] != "COPY_ERROR" || body["message"] != service.CopyReasonDestClosed {
				t.Errorf("错误响应不符: %v", body)
			}
		})
	}
}

func TestPlanningHandler_ExportHeaders(t *testing.T) {
	h := NewPlanningHandler(&stubPlanningService{}, stubExportService{}, nil, newErrs(false))
	r := gin.New()
	r.GET("/api/semanas/:id/exportar", h.ExportWeek)

	w := serve(r, http.MethodGet, "/api/semanas/1/exportar", "")
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("Content-Type 不符: %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "planejamento_2024-03-04.xlsx") {
		t.Errorf("Content-Disposition 不符: %q", cd)
	}
}

func TestObservationHandler_MissingIsNull(t *testing.T) {
	h := NewObservationHandler(stubObservationService{}, newErrs(false))
	r := gin.New()
	r.GET("/api/semanas/:id/pessoas/:pessoaId/observacao", h.GetObservation)

	w := serve(r, http.MethodGet, "/api/semanas/1/pessoas/2/observacao", "")
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际=%d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"data":null}` {
		t.Errorf("期望 data 为 null，实际=%s", got)
	}
}

func TestHealth(t *testing.T) {
	at := time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)
	h := NewHealthHandler(func() time.Time { return at })
	r := gin.New()
	r.GET("/api/health", h.Health)

	w := serve(r, http.MethodGet, "/api/health", "")
	body := decode(t, w)
	if body["status"] != "ok" || body["timestamp"] != "2024-03-06T12:00:00Z" {
		t.Errorf("健康检查响应不符: %v", body)
	}
	if _, wrapped := body["data"]; wrapped {
		t.Error("健康检查不应包裹 data")
	}
}
