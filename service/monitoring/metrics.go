/*
 * @module service/monitoring/metrics
 * @description Prometheus指标注册表，记录清洗运行、字段替换、异常值和HTTP请求指标
 * @architecture 分层架构 - 监控层
 * @stateFlow 指标定义 -> 清洗/请求时记录 -> /metrics 暴露
 * @rules 指标名统一使用 employee_datahub 命名空间
 * @dependencies github.com/prometheus/client_golang
 * @refs api/middleware/metrics.go, service/app.go
 */

package monitoring

import (
	"employee-datahub/service/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "employee_datahub"

// Registry 指标集合
type Registry struct {
	// 清洗指标
	CleaningRuns     *prometheus.CounterVec
	CleaningDuration prometheus.Histogram
	RowsProcessed    *prometheus.CounterVec
	Substitutions    *prometheus.CounterVec
	Outliers         *prometheus.CounterVec

	// 查询服务指标
	LoadedEmployees prometheus.Gauge
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
}

// NewRegistry 在给定的注册器上创建指标
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		CleaningRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cleaning",
				Name:      "runs_total",
				Help:      "Total number of cleaning runs",
			},
			[]string{"policy", "status"},
		),
		CleaningDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "cleaning",
				Name:      "run_duration_seconds",
				Help:      "Duration of successful cleaning runs",
				Buckets:   prometheus.DefBuckets,
			},
		),
		RowsProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cleaning",
				Name:      "rows_total",
				Help:      "Rows read and written by cleaning runs",
			},
			[]string{"direction"},
		),
		Substitutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cleaning",
				Name:      "substitutions_total",
				Help:      "Values repaired or imputed by cleaning runs",
			},
			[]string{"kind"},
		),
		Outliers: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cleaning",
				Name:      "salary_outliers_total",
				Help:      "Salary outliers handled by cleaning runs",
			},
			[]string{"action"},
		),
		LoadedEmployees: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "query",
				Name:      "loaded_employees",
				Help:      "Number of employees loaded by the query service",
			},
		),
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"route", "method", "code"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
	}
}

// ObserveRun 记录一次清洗运行，report为空表示运行在清洗前失败
func (r *Registry) ObserveRun(policy models.OutlierPolicy, report *models.CleaningReport, runErr error) {
	status := models.RunStatusSucceeded
	if runErr != nil {
		status = models.RunStatusFailed
	}
	r.CleaningRuns.WithLabelValues(string(policy), status).Inc()
	if report == nil || runErr != nil {
		return
	}

	r.CleaningDuration.Observe(report.Duration.Seconds())
	r.RowsProcessed.WithLabelValues("in").Add(float64(report.RowsIn))
	r.RowsProcessed.WithLabelValues("out").Add(float64(report.RowsOut))

	r.Substitutions.WithLabelValues("id_repaired").Add(float64(report.IDsRepaired))
	r.Substitutions.WithLabelValues("date_invalid").Add(float64(report.InvalidDates))
	r.Substitutions.WithLabelValues("salary_imputed").Add(float64(report.SalariesImputed))
	r.Substitutions.WithLabelValues("name_filled").Add(float64(report.NamesFilled))
	r.Substitutions.WithLabelValues("department_filled").Add(float64(report.DepartmentsFilled))

	r.Outliers.WithLabelValues("dropped").Add(float64(report.OutliersDropped))
	r.Outliers.WithLabelValues("replaced").Add(float64(report.OutliersReplaced))
}
