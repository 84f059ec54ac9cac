// Package metrics 汇总应用级 Prometheus 指标
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "weekly_planner"

var (
	// Registry 应用专属的指标注册表
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)

	weekTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "weeks",
			Name:      "transitions_total",
			Help:      "Week lifecycle transitions (close / reopen).",
		},
		[]string{"transition"},
	)

	lockedWrites = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "weeks",
			Name:      "locked_writes_total",
			Help:      "Writes rejected because the owning week is closed.",
		},
	)

	copiedAllocations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "allocations",
			Name:      "copied_total",
			Help:      "Allocations inserted by week-to-week copy.",
		},
	)

	weekCompletion = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "stats",
			Name:      "week_completion_percent",
			Help:      "Completion percentage of the most recently computed week statistics.",
		},
		[]string{"week_start"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		weekTransitions,
		lockedWrites,
		copiedAllocations,
		weekCompletion,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}

// Handler 暴露已注册指标
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ── HTTP ──

// RequestStarted 请求开始，返回结束回调
func RequestStarted() func() {
	httpInFlight.Inc()
	return httpInFlight.Dec
}

// ObserveRequest 记录一次请求；path 应为路由模板而非原始路径
func ObserveRequest(method, path string, status int, duration time.Duration) {
	if path == "" {
		path = "unmatched"
	}
	method = strings.ToUpper(method)
	httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ── 业务 ──

// RecordWeekTransition 记录周状态迁移（close / reopen）
func RecordWeekTransition(transition string) {
	weekTransitions.WithLabelValues(transition).Inc()
}

// RecordLockedWrite 记录被周锁拒绝的写操作
func RecordLockedWrite() {
	lockedWrites.Inc()
}

// RecordCopiedAllocations 累加复制插入的分配数
func RecordCopiedAllocations(n int) {
	if n > 0 {
		copiedAllocations.Add(float64(n))
	}
}

// SetWeekCompletion 更新某周的完成率
func SetWeekCompletion(weekStart string, percentage int) {
	weekCompletion.WithLabelValues(weekStart).Set(float64(percentage))
}
