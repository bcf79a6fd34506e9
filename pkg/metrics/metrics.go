// Package metrics 提供 Prometheus helper，包含 HTTP/数据库与理赔业务指标
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wyfcoding/claimsmanagement/pkg/logger"
)

// Metrics 指标集合
type Metrics struct {
	registry *prometheus.Registry

	// HTTP 请求计数
	HTTPRequestsTotal *prometheus.CounterVec
	// HTTP 请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// 业务指标
	ClaimsSubmittedTotal    prometheus.Counter
	ClaimsApprovedTotal     prometheus.Counter
	ClaimsRejectedTotal     prometheus.Counter
	DocumentsUploadedTotal  prometheus.Counter
	PolicyDeniedTotal       *prometheus.CounterVec
}

// New 创建指标实例并注册到独立的 registry
func New(serviceName string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "claims",
			Subsystem: serviceName,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "claims",
			Subsystem: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		ClaimsSubmittedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "claims",
			Subsystem: serviceName,
			Name:      "claims_submitted_total",
			Help:      "Total claims submitted",
		}),
		ClaimsApprovedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "claims",
			Subsystem: serviceName,
			Name:      "claims_approved_total",
			Help:      "Total claims approved",
		}),
		ClaimsRejectedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "claims",
			Subsystem: serviceName,
			Name:      "claims_rejected_total",
			Help:      "Total claims rejected",
		}),
		DocumentsUploadedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "claims",
			Subsystem: serviceName,
			Name:      "documents_uploaded_total",
			Help:      "Total supporting documents uploaded",
		}),
		PolicyDeniedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "claims",
			Subsystem: serviceName,
			Name:      "policy_denied_total",
			Help:      "Total requests denied by the access policy",
		}, []string{"action"}),
	}

	m.registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ClaimsSubmittedTotal,
		m.ClaimsApprovedTotal,
		m.ClaimsRejectedTotal,
		m.DocumentsUploadedTotal,
		m.PolicyDeniedTotal,
	)

	return m
}

// Handler 返回 /metrics 的 HTTP handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ExposeHTTP 启动独立的指标 HTTP 服务
func (m *Metrics) ExposeHTTP(port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	addr := fmt.Sprintf(":%d", port)
	logger.Info(context.Background(), "Metrics server starting", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error(context.Background(), "Metrics server exited", "error", err)
	}
}

// GinMiddleware 记录 HTTP 请求指标
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
