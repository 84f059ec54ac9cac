package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"weekly-planner/backend/pkg/response"
)

// ParseIDParam 从路径参数中解析正整数 ID。
// 解析失败时写入 400 响应并返回 false，调用方应直接 return。
func ParseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "ID inválido")
		return 0, false
	}
	return uint(id), true
}

// ParseOptionalIDQuery 解析可选的查询参数 ID，参数缺失时返回 nil。
func ParseOptionalIDQuery(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, name+" inválido")
		return nil, false
	}
	v := uint(id)
	return &v, true
}
