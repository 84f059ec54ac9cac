package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "weekly-planner/backend/pkg/errors"
)

// Response 成功响应结构 { data: T }
type Response struct {
	Data interface{} `json:"data"`
}

// PageResponse 分页响应结构（不再嵌套 data 之外的外层）
type PageResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// ErrorResponse 错误响应结构
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ── 成功响应 ──

// OK 200 成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Data: data})
}

// Created 201 创建成功
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Data: data})
}

// NoContent 204 删除成功
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// OKPage 200 分页成功
func OKPage(c *gin.Context, list interface{}, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, PageResponse{
		Data:       list,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: TotalPages(total, pageSize),
	})
}

// TotalPages 向上取整计算总页数
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		pages++
	}
	return pages
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, code, message string) {
	c.AbortWithStatusJSON(httpStatus, ErrorResponse{
		Error:   code,
		Message: message,
	})
}

// ErrorWithDetails 带详情的错误响应（仅开发模式使用）
func ErrorWithDetails(c *gin.Context, httpStatus int, code, message, details string) {
	c.AbortWithStatusJSON(httpStatus, ErrorResponse{
		Error:   code,
		Message: message,
		Details: details,
	})
}

// AppError 按 AppError 自带的状态码输出
func AppError(c *gin.Context, err *apperrors.AppError) {
	Error(c, err.Status, err.Code, err.Message)
}

// ── 常见快捷方式 ──

// BadRequest 400 参数校验失败
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, apperrors.CodeValidation, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, apperrors.CodeNotFound, message)
}

// InternalError 500；details 仅在开发模式下输出
func InternalError(c *gin.Context, err error, devMode bool) {
	if devMode && err != nil {
		ErrorWithDetails(c, http.StatusInternalServerError, apperrors.CodeInternal, "Erro interno do servidor", err.Error())
		return
	}
	Error(c, http.StatusInternalServerError, apperrors.CodeInternal, "Erro interno do servidor")
}
