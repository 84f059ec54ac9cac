package dto

import (
	"bytes"
	"encoding/json"
)

// ── 分页请求 ──

// MaxPageSize 每页数量上限
const MaxPageSize = 100

// PaginationRequest 通用分页参数
type PaginationRequest struct {
	Page     int `form:"page"     binding:"omitempty,min=1"`
	PageSize int `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

// GetPage 获取页码（含默认值）
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize 获取每页数量（含默认值与上限）
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 20
	}
	if p.PageSize > MaxPageSize {
		return MaxPageSize
	}
	return p.PageSize
}

// GetOffset 计算偏移量
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}

// ── 三态字段 ──

// Optional 区分 JSON 中"字段缺失"与"显式 null"
//
//	缺失      → Set=false            保持原值
//	null      → Set=true, Value=nil  清空
//	具体值    → Set=true, Value=&v   覆盖
type Optional[T any] struct {
	Set   bool
	Value *T
}

// UnmarshalJSON 仅在字段出现时被调用
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// MarshalJSON 未设置或为 nil 时输出 null
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Null 构造显式 null
func Null[T any]() Optional[T] { return Optional[T]{Set: true} }

// Some 构造具体值
func Some[T any](v T) Optional[T] { return Optional[T]{Set: true, Value: &v} }
