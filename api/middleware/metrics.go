/*
 * @module api/middleware/metrics
 * @description HTTP请求指标中间件，按路由模板记录请求数和耗时
 * @architecture 中间件模式
 * @stateFlow 请求进入 -> 包装ResponseWriter -> 执行下游处理器 -> 记录状态码和耗时
 * @rules 使用chi路由模板作为route标签，避免查询参数导致标签基数膨胀
 * @dependencies github.com/go-chi/chi/v5, github.com/prometheus/client_golang
 * @refs service/monitoring/metrics.go
 */

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"employee-datahub/service/monitoring"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Metrics 返回记录HTTP请求指标的中间件
func Metrics(reg *monitoring.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			reg.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
			reg.HTTPDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
		}
		return http.HandlerFunc(fn)
	}
}
