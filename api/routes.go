/*
 * @module api/routes
 * @description API路由配置模块，负责初始化和配置所有HTTP路由
 * @architecture RESTful API架构
 * @stateFlow 无状态HTTP请求处理
 * @rules 查询接口共享只读数据表；统一错误响应格式
 * @dependencies github.com/go-chi/chi/v5, github.com/go-chi/cors, github.com/go-chi/render
 * @refs api/controllers
 */

package api

import (
	"employee-datahub/api/controllers"
	apimiddleware "employee-datahub/api/middleware"
	"employee-datahub/service/analyzer"
	"employee-datahub/service/monitoring"
	"employee-datahub/service/rate_limiter"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
)

// Dependencies 路由依赖
type Dependencies struct {
	Analyzer *analyzer.EmployeeAnalyzer
	Runs     controllers.RunHistory // 为nil时运行记录接口返回503
	Metrics  *monitoring.Registry   // 为nil时不记录HTTP指标
	Limiter  rate_limiter.Limiter   // 为nil时查询接口不限流
}

// InitRoute 初始化所有API路由
func InitRoute(r *chi.Mux, deps Dependencies) {
	// 基础中间件
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if deps.Metrics != nil {
		r.Use(apimiddleware.Metrics(deps.Metrics))
	}
	r.Use(render.SetContentType(render.ContentTypeJSON))

	// CORS配置
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// 健康检查
	var employees func() int
	if deps.Analyzer != nil {
		employees = deps.Analyzer.Len
	}
	healthController := controllers.NewHealthController(employees)
	r.Get("/health", healthController.Health)
	r.Get("/ready", healthController.Ready)

	// 员工数据查询
	if deps.Analyzer != nil {
		employeeController := controllers.NewEmployeeController(deps.Analyzer)
		r.Group(func(r chi.Router) {
			if deps.Limiter != nil {
				r.Use(apimiddleware.RateLimit(deps.Limiter))
			}
			r.Get("/top-n-highest-paid-employees", employeeController.TopNHighestPaid)
			r.Get("/number-of-employees-in-department", employeeController.CountInDepartment)
			r.Get("/average-salary-per-department", employeeController.AverageSalaryPerDepartment)
			r.Get("/number-of-employees-per-department", employeeController.CountPerDepartment)
		})
	}

	// 清洗运行记录
	r.Route("/cleaning-runs", func(r chi.Router) {
		runController := controllers.NewCleaningRunController(deps.Runs)
		r.Get("/", runController.ListRuns)
		r.Get("/{id}", runController.GetRun)
	})
}
