/*
 * @module api/controllers/health_controller
 * @description 健康检查控制器，提供服务存活和就绪状态检查
 * @architecture MVC架构 - 控制器层
 * @stateFlow HTTP请求处理流程
 * @rules 存活检查始终成功；就绪检查要求清洗后数据已加载
 * @dependencies github.com/go-chi/render
 * @refs api/routes.go
 */

package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/render"
)

// ServiceName 服务名称
const ServiceName = "employee-datahub"

// Version 服务版本
var Version = "1.0.0"

// HealthController 健康检查控制器
type HealthController struct {
	employees func() int
}

// NewHealthController 创建健康检查控制器实例，employees返回已加载的员工数，可为nil
func NewHealthController(employees func() int) *HealthController {
	return &HealthController{employees: employees}
}

// HealthResponse 健康检查响应结构
type HealthResponse struct {
	Status    string    `json:"status" example:"ok"`
	Timestamp time.Time `json:"timestamp" example:"2024-01-01T00:00:00Z"`
	Version   string    `json:"version" example:"1.0.0"`
	Service   string    `json:"service" example:"employee-datahub"`
	Employees int       `json:"employees" example:"100"`
}

// Health 健康检查
// @Summary 健康检查
// @Description 检查服务健康状态
// @Tags 系统
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, c.response("ok"))
}

// Ready 就绪检查
// @Summary 就绪检查
// @Description 检查清洗后数据是否已加载
// @Tags 系统
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /ready [get]
func (c *HealthController) Ready(w http.ResponseWriter, r *http.Request) {
	response := c.response("ready")
	if c.employees == nil {
		response.Status = "not_ready"
		render.Status(r, http.StatusServiceUnavailable)
	}
	render.JSON(w, r, response)
}

func (c *HealthController) response(status string) HealthResponse {
	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Version:   Version,
		Service:   ServiceName,
	}
	if c.employees != nil {
		response.Employees = c.employees()
	}
	return response
}
