package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total    int64
		pageSize int
		want     int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{5, 0, 0},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.total, tc.pageSize); got != tc.want {
			t.Errorf("TotalPages(%d,%d)=%d, 期望 %d", tc.total, tc.pageSize, got, tc.want)
		}
	}
}

func TestOKPage_FlatEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	OKPage(c, []int{1, 2}, 41, 2, 20)

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("响应不是合法 JSON: %v", err)
	}
	if body["totalPages"].(float64) != 3 {
		t.Errorf("期望 totalPages=3，实际=%v", body["totalPages"])
	}
	if _, ok := body["data"].([]interface{}); !ok {
		t.Errorf("期望 data 为数组，实际=%T", body["data"])
	}
}

func TestInternalError_DetailsOnlyInDevMode(t *testing.T) {
	for _, dev := range []bool{false, true} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		InternalError(c, errors.New("boom"), dev)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("期望 500，实际 %d", w.Code)
		}
		var body ErrorResponse
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body.Error != "INTERNAL_ERROR" {
			t.Errorf("期望 INTERNAL_ERROR，实际 %s", body.Error)
		}
		if dev && body.Details != "boom" {
			t.Errorf("开发模式应输出 details，实际=%q", body.Details)
		}
		if !dev && body.Details != "" {
			t.Errorf("生产模式不应输出 details，实际=%q", body.Details)
		}
	}
}
