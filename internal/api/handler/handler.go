package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"weekly-planner/backend/internal/service"
	apperrors "weekly-planner/backend/pkg/errors"
	"weekly-planner/backend/pkg/response"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Sector      *SectorHandler
	Person      *PersonHandler
	Item        *ItemHandler
	Week        *WeekHandler
	Planning    *PlanningHandler
	Allocation  *AllocationHandler
	Observation *ObservationHandler
	Stats       *StatsHandler
	Health      *HealthHandler
}

// NewHandler 创建 Handler 聚合
// devMode 为 true 时 500 响应携带 details
func NewHandler(svc *service.Service, logger *zap.Logger, devMode bool) *Handler {
	errs := &errorWriter{logger: logger, devMode: devMode}
	return &Handler{
		Sector:      NewSectorHandler(svc.Sector, errs),
		Person:      NewPersonHandler(svc.Person, errs),
		Item:        NewItemHandler(svc.Item, errs),
		Week:        NewWeekHandler(svc.Week, errs),
		Planning:    NewPlanningHandler(svc.Planning, svc.Export, svc.Calendar, errs),
		Allocation:  NewAllocationHandler(svc.Allocation, errs),
		Observation: NewObservationHandler(svc.Observation, errs),
		Stats:       NewStatsHandler(svc.Stats, errs),
		Health:      NewHealthHandler(nil),
	}
}

// ═══════════════════════════════════════════════════════════
// 错误映射
// ═══════════════════════════════════════════════════════════

// errorWriter 将 service 层错误翻译为统一错误响应
type errorWriter struct {
	logger  *zap.Logger
	devMode bool
}

// 业务错误 → 错误码
var (
	notFoundErrors = []error{
		service.ErrSectorNotFound,
		service.ErrPersonNotFound,
		service.ErrItemNotFound,
		service.ErrWeekNotFound,
		service.ErrAllocationNotFound,
	}
	validationErrors = []error{
		service.ErrSectorNameRequired,
		service.ErrPersonNameRequired,
		service.ErrItemTitleRequired,
		service.ErrSectorInvalid,
		service.ErrPersonInvalid,
		service.ErrItemInvalid,
		service.ErrInvalidStatus,
		service.ErrInvalidDate,
		service.ErrDateOutsideWeek,
		service.ErrInvalidReferenceDate,
	}
)

// toAppError 未知错误返回 nil
func toAppError(err error) *apperrors.AppError {
	var copyErr *service.CopyError
	switch {
	case errors.As(err, &copyErr):
		return apperrors.New(http.StatusBadRequest, apperrors.CodeCopyError, copyErr.Reason)
	case errors.Is(err, service.ErrWeekLocked):
		return apperrors.WeekLocked(err.Error())
	case errors.Is(err, service.ErrWeekAlreadyClosed):
		return apperrors.New(http.StatusBadRequest, apperrors.CodeAlreadyClosed, err.Error())
	case errors.Is(err, service.ErrWeekAlreadyOpen):
		return apperrors.New(http.StatusBadRequest, apperrors.CodeAlreadyOpen, err.Error())
	case errors.Is(err, service.ErrSectorNameExists):
		return apperrors.Duplicate(err.Error())
	case errors.Is(err, service.ErrSectorHasPeople):
		return apperrors.HasRelations(err.Error())
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return apperrors.NotFound(target.Error())
		}
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return apperrors.Validation(target.Error())
		}
	}
	if appErr, ok := apperrors.As(err); ok {
		return appErr
	}
	return nil
}

// handle 业务错误按映射输出，其余记录日志后返回 INTERNAL_ERROR
func (w *errorWriter) handle(c *gin.Context, err error) {
	if appErr := toAppError(err); appErr != nil {
		response.AppError(c, appErr)
		return
	}
	w.logger.Error("请求处理失败",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.String("request_id", c.GetString("request_id")),
		zap.Error(err),
	)
	response.InternalError(c, err, w.devMode)
}

// bindError 请求体或查询参数校验失败
func (w *errorWriter) bindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Error(c, http.StatusRequestEntityTooLarge, apperrors.CodeTooLarge, "Corpo da requisição muito grande")
		return
	}
	if w.devMode {
		response.ErrorWithDetails(c, http.StatusBadRequest, apperrors.CodeValidation, "Dados inválidos", err.Error())
		return
	}
	response.BadRequest(c, "Dados inválidos")
}
