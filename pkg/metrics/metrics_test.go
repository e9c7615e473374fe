package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInitMetrics 重复初始化不会重复注册
func TestInitMetrics(t *testing.T) {
	InitMetrics()
	InitMetrics()

	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, HTTPRequestsInProgress)
	assert.NotNil(t, LoansTotal)
	assert.NotNil(t, InventoryOperationsTotal)
	assert.NotNil(t, EventsPublishedTotal)
	assert.NotNil(t, CacheRequestsTotal)
}

func TestCounterVec(t *testing.T) {
	InitMetrics()

	labels := map[string]string{"method": "GET", "path": "/api/v1/books/:id", "status": "200"}
	before := getCounterVecValue(t, HTTPRequestsTotal, labels)

	IncCounterVec(HTTPRequestsTotal, labels)
	IncCounterVec(HTTPRequestsTotal, labels)
	IncCounterVec(HTTPRequestsTotal, map[string]string{"method": "POST", "path": "/api/v1/books", "status": "201"})

	assert.Equal(t, before+2, getCounterVecValue(t, HTTPRequestsTotal, labels))
}

func TestGauge(t *testing.T) {
	InitMetrics()
	SetGauge(HTTPRequestsInProgress, 0)

	IncGauge(HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	assert.Equal(t, float64(2), getGaugeValue(t, HTTPRequestsInProgress))

	DecGauge(HTTPRequestsInProgress)
	assert.Equal(t, float64(1), getGaugeValue(t, HTTPRequestsInProgress))

	SetGauge(HTTPRequestsInProgress, 0)
}

func TestHistogramVec(t *testing.T) {
	InitMetrics()

	labels := map[string]string{"method": "PATCH", "path": "/api/v1/loans/:id/return"}
	before := getHistogramVecCount(t, HTTPRequestDuration, labels)

	ObserveHistogramVec(HTTPRequestDuration, labels, 0.05)
	ObserveHistogramVec(HTTPRequestDuration, labels, 0.1)

	assert.Equal(t, before+2, getHistogramVecCount(t, HTTPRequestDuration, labels))
}

func TestBusinessRecorders(t *testing.T) {
	t.Run("借阅结果", func(t *testing.T) {
		before := getCounterVecValue(t, loansVec(), map[string]string{"result": ResultLent})
		RecordLoan(ResultLent)
		assert.Equal(t, before+1, getCounterVecValue(t, LoansTotal, map[string]string{"result": ResultLent}))
	})

	t.Run("库存操作按error区分结果", func(t *testing.T) {
		ok := map[string]string{"operation": "lend", "result": ResultSuccess}
		fail := map[string]string{"operation": "lend", "result": ResultFailure}
		InitMetrics()
		okBefore := getCounterVecValue(t, InventoryOperationsTotal, ok)
		failBefore := getCounterVecValue(t, InventoryOperationsTotal, fail)

		RecordInventoryOperation("lend", nil)
		RecordInventoryOperation("lend", errors.New("no units"))

		assert.Equal(t, okBefore+1, getCounterVecValue(t, InventoryOperationsTotal, ok))
		assert.Equal(t, failBefore+1, getCounterVecValue(t, InventoryOperationsTotal, fail))
	})

	t.Run("缓存命中", func(t *testing.T) {
		InitMetrics()
		labels := map[string]string{"cache": "book_detail", "result": ResultHit}
		before := getCounterVecValue(t, CacheRequestsTotal, labels)
		RecordCache("book_detail", ResultHit)
		assert.Equal(t, before+1, getCounterVecValue(t, CacheRequestsTotal, labels))
	})

	t.Run("事件发布", func(t *testing.T) {
		InitMetrics()
		labels := map[string]string{"routing_key": "loan.lent", "result": ResultSuccess}
		before := getCounterVecValue(t, EventsPublishedTotal, labels)
		RecordEventPublished("loan.lent", nil)
		assert.Equal(t, before+1, getCounterVecValue(t, EventsPublishedTotal, labels))
	})
}

func TestHandler(t *testing.T) {
	RecordLoan(ResultReturned)

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "library_loans_total"), "应暴露借阅指标")
}

func loansVec() *prometheus.CounterVec {
	InitMetrics()
	return LoansTotal
}

func getCounterVecValue(t *testing.T, counterVec *prometheus.CounterVec, labels map[string]string) float64 {
	var metric dto.Metric
	counter := counterVec.With(labels)
	if err := counter.(prometheus.Counter).Write(&metric); err != nil {
		t.Fatalf("读取CounterVec值失败: %v", err)
	}
	return metric.Counter.GetValue()
}

func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	var metric dto.Metric
	if err := gauge.Write(&metric); err != nil {
		t.Fatalf("读取Gauge值失败: %v", err)
	}
	return metric.Gauge.GetValue()
}

func getHistogramVecCount(t *testing.T, histogramVec *prometheus.HistogramVec, labels map[string]string) uint64 {
	var metric dto.Metric
	histogram := histogramVec.With(labels)
	if err := histogram.(prometheus.Histogram).Write(&metric); err != nil {
		t.Fatalf("读取HistogramVec值失败: %v", err)
	}
	return metric.Histogram.GetSampleCount()
}
