/*
 * @module api/middleware/rate_limit
 * @description 查询接口限流中间件，按客户端IP限制请求频率
 * @architecture 中间件模式
 * @stateFlow 请求进入 -> 提取客户端IP -> 限流检查 -> 放行或返回429
 * @rules 限流器出错时放行请求，只记录日志
 * @dependencies employee-datahub/service/rate_limiter, github.com/go-chi/render
 * @refs api/routes.go
 */

package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"employee-datahub/api/controllers"
	"employee-datahub/service/rate_limiter"

	"github.com/go-chi/render"
)

// RateLimit 返回按客户端IP限流的中间件
func RateLimit(limiter rate_limiter.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r)
			result, err := limiter.Allow(r.Context(), key)
			if err != nil {
				slog.Error("限流检查失败，放行请求", "client_ip", key, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt, 10))

			if !result.Allowed {
				slog.Warn("请求超过限流", "client_ip", key, "path", r.URL.Path, "limit", result.Limit)
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, controllers.ErrorResponse(http.StatusTooManyRequests, "请求过于频繁", nil))
				return
			}
			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}

// clientIP 去掉RemoteAddr中的端口
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
