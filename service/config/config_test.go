package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"employee-datahub/service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "app/data/raw_data.csv", cfg.Cleaning.RawDataFile)
	assert.Equal(t, "app/data/cleaned_data.csv", cfg.Cleaning.CleanedDataFile)
	assert.Equal(t, models.PolicyGlobalDrop, cfg.Policy())
	assert.Equal(t, "@every 1h", cfg.Cleaning.Schedule)
	assert.Empty(t, cfg.RunStore.Driver)
	assert.Empty(t, cfg.Notification.KafkaBrokers)
	assert.Equal(t, 10*time.Minute, cfg.Cleaning.LockTTL)
	assert.Equal(t, 30, cfg.RunStore.RetentionDays)
	assert.Equal(t, 600, cfg.Server.RateLimitPerMinute)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("LISTEN_PORT", "9090")
	t.Setenv("BASE_CONTEXT", "/employees")
	t.Setenv("CLEAN_OUTLIER_POLICY", "per-department-replace")
	t.Setenv("RUN_STORE_DRIVER", "sqlite")
	t.Setenv("RUN_STORE_DSN", "runs.db")
	t.Setenv("NOTIFY_KAFKA_BROKERS", "k1:9092, k2:9092,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/employees", cfg.Server.BaseContext)
	assert.Equal(t, models.PolicyPerDepartmentReplace, cfg.Policy())
	assert.Equal(t, "sqlite", cfg.RunStore.Driver)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Notification.KafkaBrokers)
}

func TestLoad_SchedulingEnv(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("CLEAN_LOCK_REDIS_ADDR", "redis:6379")
	t.Setenv("CLEAN_LOCK_TTL", "90s")
	t.Setenv("RUN_STORE_RETENTION_DAYS", "7")
	t.Setenv("RATE_LIMIT_REDIS_ADDR", "redis:6379")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "120")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "redis:6379", cfg.Cleaning.LockRedisAddr)
	assert.Equal(t, 90*time.Second, cfg.Cleaning.LockTTL)
	assert.Equal(t, 7, cfg.RunStore.RetentionDays)
	assert.Equal(t, 120, cfg.Server.RateLimitPerMinute)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 8081
cleaning:
  outlier_policy: per_department_replace
  schedule: "0 */10 * * * *"
notification:
  redis_addr: localhost:6379
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LISTEN_PORT", "8082")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8082, cfg.Server.Port, "环境变量优先于配置文件")
	assert.Equal(t, models.PolicyPerDepartmentReplace, cfg.Policy())
	assert.Equal(t, "0 */10 * * * *", cfg.Cleaning.Schedule)
	assert.Equal(t, "localhost:6379", cfg.Notification.RedisAddr)
	assert.Equal(t, "employee:cleaning-runs", cfg.Notification.RedisChannel, "未配置的字段保留默认值")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"端口不是数字", map[string]string{"LISTEN_PORT": "http"}},
		{"端口超出范围", map[string]string{"LISTEN_PORT": "70000"}},
		{"未知策略", map[string]string{"CLEAN_OUTLIER_POLICY": "median"}},
		{"未知存储驱动", map[string]string{"RUN_STORE_DRIVER": "mysql", "RUN_STORE_DSN": "x"}},
		{"缺少DSN", map[string]string{"RUN_STORE_DRIVER": "postgres"}},
		{"限流次数不是整数", map[string]string{"RATE_LIMIT_PER_MINUTE": "many"}},
		{"限流次数为0", map[string]string{"RATE_LIMIT_REDIS_ADDR": "localhost:6379", "RATE_LIMIT_PER_MINUTE": "0"}},
		{"锁时长无效", map[string]string{"CLEAN_LOCK_TTL": "soon"}},
		{"保留天数不是整数", map[string]string{"RUN_STORE_RETENTION_DAYS": "month"}},
		{"配置文件不存在", map[string]string{"CONFIG_FILE": "/nonexistent/config.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CONFIG_FILE", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestPolicy_Fallback(t *testing.T) {
	cfg := Default()
	cfg.Cleaning.OutlierPolicy = "bogus"
	assert.Equal(t, models.PolicyGlobalDrop, cfg.Policy())
}
