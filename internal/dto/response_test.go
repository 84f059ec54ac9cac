package dto

import (
	"encoding/json"
	"testing"
)

func TestOptional_AbsentNullValue(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantSet   bool
		wantValue *uint
	}{
		{"字段缺失", `{}`, false, nil},
		{"显式 null", `{"suggested_sector_id": null}`, true, nil},
		{"具体值", `{"suggested_sector_id": 3}`, true, ptrUint(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateItemRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("Unmarshal 应成功: %v", err)
			}
			got := req.SuggestedSectorID
			if got.Set != tt.wantSet {
				t.Errorf("Set=%v, 期望 %v", got.Set, tt.wantSet)
			}
			if (got.Value == nil) != (tt.wantValue == nil) {
				t.Fatalf("Value=%v, 期望 %v", got.Value, tt.wantValue)
			}
			if got.Value != nil && *got.Value != *tt.wantValue {
				t.Errorf("Value=%d, 期望 %d", *got.Value, *tt.wantValue)
			}
		})
	}
}

func TestOptional_InvalidType(t *testing.T) {
	var req UpdateItemRequest
	if err := json.Unmarshal([]byte(`{"suggested_sector_id": "x"}`), &req); err == nil {
		t.Error("期望类型错误")
	}
}

func TestPaginationDefaults(t *testing.T) {
	p := PaginationRequest{}
	if p.GetPage() != 1 || p.GetPageSize() != 20 || p.GetOffset() != 0 {
		t.Errorf("默认分页不符: page=%d size=%d", p.GetPage(), p.GetPageSize())
	}
	p = PaginationRequest{Page: 3, PageSize: 500}
	if p.GetPageSize() != MaxPageSize {
		t.Errorf("期望上限 %d，实际 %d", MaxPageSize, p.GetPageSize())
	}
	if p.GetOffset() != 200 {
		t.Errorf("期望 offset=200，实际 %d", p.GetOffset())
	}
}

func ptrUint(v uint) *uint { return &v }
