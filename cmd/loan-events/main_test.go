package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xiebiao/library/pkg/metrics"
)

func TestAuditHandler(t *testing.T) {
	metrics.InitMetrics()
	core, logs := observer.New(zapcore.InfoLevel)
	handle := auditHandler(zap.New(core), "library.test")

	err := handle(context.Background(), "loan.lent", []byte(`{"loan_id":7,"member_id":3}`))
	assert.NoError(t, err)

	entries := logs.FilterMessage("circulation event").All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "loan.lent", entries[0].ContextMap()["routing_key"])
	}

	// 坏消息确认后丢弃，不返回错误
	err = handle(context.Background(), "inventory.restocked", []byte("not-json"))
	assert.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("丢弃无法解析的事件").Len())
}

func TestMetricsServer(t *testing.T) {
	metrics.InitMetrics()
	handle := auditHandler(zap.NewNop(), "library.metrics-test")
	assert.NoError(t, handle(context.Background(), "loan.returned", []byte(`{"loan_id":9}`)))

	srv := newMetricsServer(":0")
	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `library_events_consumed_total{queue="library.metrics-test",result="success"} 1`)

	w = httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
