/*
 * @module service/distributed_lock/redis_lock
 * @description Redis分布式锁实现，用于多实例部署时定时清洗任务防重
 * @architecture 工具层 - 提供分布式锁能力
 * @stateFlow 获取锁 -> 执行任务 -> 释放锁/自动过期
 * @rules 使用Redis SET NX实现，只有锁的持有者可以释放
 * @dependencies github.com/go-redis/redis/v8
 * @refs service/scheduler/scheduler_service.go, cmd/schedule.go
 */

package distributed_lock

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
)

// DistributedLock 分布式锁接口
type DistributedLock interface {
	// TryLock 尝试获取锁
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Unlock 释放锁
	Unlock(ctx context.Context, key string) error
}

const keyPrefix = "employee_datahub:lock:"

// 只有持有者才能删除锁
const unlockScript = `
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`

// RedisLock Redis分布式锁实现
type RedisLock struct {
	client     *redis.Client
	instanceID string // 实例ID，用于标识锁的持有者
}

// NewRedisLock 连接Redis并创建分布式锁
func NewRedisLock(ctx context.Context, addr string) (*RedisLock, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("Redis连接失败: %w", err)
	}

	// 实例ID使用主机名+进程ID
	hostname, _ := os.Hostname()
	instanceID := fmt.Sprintf("%s:%d", hostname, os.Getpid())

	slog.Info("Redis分布式锁初始化成功", "instance_id", instanceID, "redis_addr", addr)
	return &RedisLock{client: client, instanceID: instanceID}, nil
}

// TryLock 使用SET NX尝试获取锁
func (r *RedisLock) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, keyPrefix+key, r.instanceID, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("获取锁失败: %w", err)
	}
	if ok {
		slog.Debug("分布式锁: 成功获取锁", "key", key, "ttl", ttl, "instance", r.instanceID)
	}
	return ok, nil
}

// Unlock 释放锁
func (r *RedisLock) Unlock(ctx context.Context, key string) error {
	result, err := r.client.Eval(ctx, unlockScript, []string{keyPrefix + key}, r.instanceID).Int64()
	if err != nil {
		return fmt.Errorf("释放锁失败: %w", err)
	}
	if result != 1 {
		slog.Warn("分布式锁: 锁不存在或已被其他实例持有", "key", key, "instance", r.instanceID)
	}
	return nil
}

// Close 关闭Redis客户端
func (r *RedisLock) Close() error {
	return r.client.Close()
}

// LockExecutor 带锁执行器
type LockExecutor struct {
	lock DistributedLock
	ttl  time.Duration
}

// NewLockExecutor 创建带锁执行器，ttl为锁的最长持有时间
func NewLockExecutor(lock DistributedLock, ttl time.Duration) *LockExecutor {
	return &LockExecutor{lock: lock, ttl: ttl}
}

// ExecuteWithLock 在锁保护下执行函数，锁被其他实例持有时跳过且不返回错误
func (e *LockExecutor) ExecuteWithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	locked, err := e.lock.TryLock(ctx, key, e.ttl)
	if err != nil {
		return err
	}
	if !locked {
		slog.Info("分布式锁: 锁已被其他实例持有，跳过执行", "key", key)
		return nil
	}

	defer func() {
		if unlockErr := e.lock.Unlock(context.WithoutCancel(ctx), key); unlockErr != nil {
			slog.Error("分布式锁: 释放锁失败", "key", key, "error", unlockErr)
		}
	}()

	return fn(ctx)
}
