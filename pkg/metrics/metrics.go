// Package metrics 基于Prometheus的指标收集
//
// 指标分两类：
//   - HTTP指标：请求总数、耗时分布、处理中的请求数，由middleware.Metrics记录
//   - 业务指标：借阅、库存操作、事件发布、缓存命中，由应用层用例记录
//
// 所有指标通过promauto注册到默认Registry，GET /metrics暴露给Prometheus抓取。
//
// 命名规范：
//  1. Counter以_total结尾
//  2. Histogram以单位结尾（_seconds）
//  3. 标签只用有限取值（method、status、result），不要用book_id、member_id这类高基数值
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 业务结果标签取值
const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultLent     = "lent"
	ResultReturned = "returned"
	ResultRejected = "rejected"
	ResultHit      = "hit"
	ResultMiss     = "miss"
	ResultError    = "error"
)

var (
	initOnce sync.Once

	// HTTPRequestsTotal HTTP请求总数
	// 标签：method、path（路由模板，如/api/v1/books/:id）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// LoansTotal 借阅操作总数
	// 标签：result（lent/returned/rejected）
	LoansTotal *prometheus.CounterVec

	// LoanProcessingDuration 借书/还书用例耗时（含事务）
	LoanProcessingDuration *prometheus.HistogramVec

	// InventoryOperationsTotal 库存操作总数
	// 标签：operation（create/add_units/lend/return/delete）、result（success/failure）
	InventoryOperationsTotal *prometheus.CounterVec

	// EventsPublishedTotal 领域事件发布总数
	// 标签：routing_key、result（success/failure）
	EventsPublishedTotal *prometheus.CounterVec

	// EventsConsumedTotal 领域事件消费总数
	// 标签：queue、result（success/failure）
	EventsConsumedTotal *prometheus.CounterVec

	// CacheRequestsTotal 缓存访问总数
	// 标签：cache、result（hit/miss/error）
	CacheRequestsTotal *prometheus.CounterVec
)

// InitMetrics 注册所有指标（重复调用安全）
func InitMetrics() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP请求耗时（秒）",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		)

		LoansTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "library_loans_total",
				Help: "借阅操作总数",
			},
			[]string{"result"},
		)

		LoanProcessingDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "library_loan_processing_duration_seconds",
				Help:    "借书/还书处理耗时（秒）",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"operation"},
		)

		InventoryOperationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "library_inventory_operations_total",
				Help: "库存操作总数",
			},
			[]string{"operation", "result"},
		)

		EventsPublishedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "library_events_published_total",
				Help: "领域事件发布总数",
			},
			[]string{"routing_key", "result"},
		)

		EventsConsumedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "library_events_consumed_total",
				Help: "领域事件消费总数",
			},
			[]string{"queue", "result"},
		)

		CacheRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "library_cache_requests_total",
				Help: "缓存访问总数",
			},
			[]string{"cache", "result"},
		)
	})
}

// Handler /metrics端点
func Handler() http.Handler {
	InitMetrics()
	return promhttp.Handler()
}

// IncCounter 递增Counter
func IncCounter(counter prometheus.Counter) {
	counter.Inc()
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// SetGauge 设置Gauge值
func SetGauge(gauge prometheus.Gauge, value float64) {
	gauge.Set(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}

// =========================================
// 业务指标便捷函数
// =========================================

// RecordLoan 记录一次借阅操作结果
func RecordLoan(result string) {
	InitMetrics()
	LoansTotal.WithLabelValues(result).Inc()
}

// ObserveLoanDuration 记录借书/还书耗时
func ObserveLoanDuration(operation string, seconds float64) {
	InitMetrics()
	LoanProcessingDuration.WithLabelValues(operation).Observe(seconds)
}

// RecordInventoryOperation 记录一次库存操作
func RecordInventoryOperation(operation string, err error) {
	InitMetrics()
	InventoryOperationsTotal.WithLabelValues(operation, resultOf(err)).Inc()
}

// RecordEventPublished 记录一次事件发布
func RecordEventPublished(routingKey string, err error) {
	InitMetrics()
	EventsPublishedTotal.WithLabelValues(routingKey, resultOf(err)).Inc()
}

// RecordEventConsumed 记录一次事件消费
func RecordEventConsumed(queue string, err error) {
	InitMetrics()
	EventsConsumedTotal.WithLabelValues(queue, resultOf(err)).Inc()
}

// RecordCache 记录一次缓存访问
func RecordCache(cache, result string) {
	InitMetrics()
	CacheRequestsTotal.WithLabelValues(cache, result).Inc()
}

func resultOf(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}
