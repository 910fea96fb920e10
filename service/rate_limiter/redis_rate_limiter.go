/*
 * @module service/rate_limiter/redis_rate_limiter
 * @description 基于Redis的固定窗口限流器，限制查询接口每个客户端的请求频率
 * @architecture 工具层 - 提供分布式限流能力
 * @stateFlow 构造窗口Key -> Redis计数 -> 判断是否超限
 * @rules 使用Redis INCR和EXPIRE实现固定窗口限流，多实例共享计数
 * @dependencies github.com/go-redis/redis/v8
 * @refs api/middleware/rate_limit.go
 */

package rate_limiter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "employee_datahub:rate_limit"

// 原子地检查并增加计数，返回 {是否允许, 当前计数, 剩余秒数}
const rateLimitScript = `
	local key = KEYS[1]
	local max_requests = tonumber(ARGV[1])
	local window = tonumber(ARGV[2])

	local current = tonumber(redis.call('GET', key) or '0')
	if current >= max_requests then
		local ttl = redis.call('TTL', key)
		if ttl < 0 then
			ttl = window
		end
		return {0, current, ttl}
	end

	local new_count = redis.call('INCR', key)
	if new_count == 1 then
		redis.call('EXPIRE', key, window)
	end

	local ttl = redis.call('TTL', key)
	if ttl < 0 then
		ttl = window
	end
	return {1, new_count, ttl}
`

// RateLimitResult 限流检查结果
type RateLimitResult struct {
	Allowed   bool  `json:"allowed"`   // 是否允许请求
	Limit     int   `json:"limit"`     // 窗口内最大请求数
	Remaining int   `json:"remaining"` // 剩余数量
	ResetAt   int64 `json:"reset_at"`  // 重置时间（Unix时间戳）
}

// Limiter 限流器接口
type Limiter interface {
	Allow(ctx context.Context, key string) (*RateLimitResult, error)
}

// RedisRateLimiter Redis限流器
type RedisRateLimiter struct {
	client      *redis.Client
	window      time.Duration
	maxRequests int
	now         func() time.Time
}

// NewRedisRateLimiter 连接Redis并创建限流器，window内每个Key最多maxRequests次请求
func NewRedisRateLimiter(ctx context.Context, addr string, window time.Duration, maxRequests int) (*RedisRateLimiter, error) {
	if window < time.Second {
		return nil, fmt.Errorf("限流窗口不能小于1秒: %s", window)
	}
	if maxRequests <= 0 {
		return nil, fmt.Errorf("限流请求数必须大于0: %d", maxRequests)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis连接失败: %w", err)
	}

	slog.Info("Redis限流器初始化成功", "redis_addr", addr, "window", window, "max_requests", maxRequests)
	return &RedisRateLimiter{
		client:      client,
		window:      window,
		maxRequests: maxRequests,
		now:         time.Now,
	}, nil
}

// Allow 检查key在当前窗口内是否超过限流
func (r *RedisRateLimiter) Allow(ctx context.Context, key string) (*RateLimitResult, error) {
	seconds := int64(r.window / time.Second)
	now := r.now()

	result, err := r.client.Eval(ctx, rateLimitScript, []string{buildKey(key, now, seconds)}, r.maxRequests, seconds).Result()
	if err != nil {
		return nil, fmt.Errorf("限流检查失败: %w", err)
	}
	return parseResult(result, r.maxRequests, now)
}

// Close 关闭Redis客户端
func (r *RedisRateLimiter) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// buildKey 构造限流Key，同一窗口内的请求落在同一个Key上
func buildKey(key string, now time.Time, windowSeconds int64) string {
	return fmt.Sprintf("%s:%s:%d", keyPrefix, key, now.Unix()/windowSeconds)
}

func parseResult(raw interface{}, limit int, now time.Time) (*RateLimitResult, error) {
	values, ok := raw.([]interface{})
	if !ok || len(values) != 3 {
		return nil, fmt.Errorf("限流脚本返回格式错误: %v", raw)
	}
	nums := make([]int64, len(values))
	for i, v := range values {
		n, ok := v.(int64)
		if !ok {
			return nil, fmt.Errorf("限流脚本返回格式错误: %v", raw)
		}
		nums[i] = n
	}

	remaining := limit - int(nums[1])
	if remaining < 0 {
		remaining = 0
	}
	return &RateLimitResult{
		Allowed:   nums[0] == 1,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   now.Add(time.Duration(nums[2]) * time.Second).Unix(),
	}, nil
}
