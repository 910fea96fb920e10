/*
 * @module api/controllers/employee_controller
 * @description 员工数据查询控制器，提供薪资排名和部门人数统计接口
 * @architecture MVC架构 - 控制器层
 * @stateFlow HTTP请求 -> 参数校验 -> 分析器查询 -> JSON响应
 * @rules 参数缺失或格式错误返回422；n<=0返回400；成功时直接返回查询结果
 * @dependencies github.com/go-chi/render, employee-datahub/service/analyzer
 * @refs service/analyzer/employee_analyzer.go
 */

package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"employee-datahub/service/analyzer"

	"github.com/go-chi/render"
)

// EmployeeController 员工数据查询控制器
type EmployeeController struct {
	analyzer *analyzer.EmployeeAnalyzer
}

// NewEmployeeController 创建员工数据查询控制器实例
func NewEmployeeController(a *analyzer.EmployeeAnalyzer) *EmployeeController {
	return &EmployeeController{analyzer: a}
}

// DepartmentHeadcount 指定部门人数查询结果
type DepartmentHeadcount struct {
	Department        string `json:"department" example:"hr"`
	NumberOfEmployees int    `json:"number_of_employees" example:"4"`
}

// TopNHighestPaid 薪资最高的前N名员工
// @Summary 薪资最高的前N名员工
// @Description 按薪资降序返回前N名员工，薪资相同时保持原始顺序
// @Tags 员工
// @Produce json
// @Param n query int true "返回人数，必须大于0"
// @Success 200 {array} analyzer.EmployeeSalary
// @Failure 400 {object} APIResponse "n必须大于0"
// @Failure 422 {object} APIResponse "n缺失或不是整数"
// @Router /top-n-highest-paid-employees [get]
func (c *EmployeeController) TopNHighestPaid(w http.ResponseWriter, r *http.Request) {
	raw, ok := r.URL.Query()["n"]
	if !ok || len(raw) == 0 {
		renderError(w, r, http.StatusUnprocessableEntity, "缺少参数n", nil)
		return
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw[0]))
	if err != nil {
		renderError(w, r, http.StatusUnprocessableEntity, "参数n必须是整数", err)
		return
	}

	result, err := c.analyzer.TopNHighestPaid(n)
	if errors.Is(err, analyzer.ErrInvalidArgument) {
		renderError(w, r, http.StatusBadRequest, "n必须大于0", err)
		return
	}
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, "查询失败", err)
		return
	}
	render.JSON(w, r, result)
}

// CountInDepartment 指定部门人数
// @Summary 指定部门人数
// @Description 部门名称大小写不敏感，未知部门返回0
// @Tags 员工
// @Produce json
// @Param department query string true "部门名称"
// @Success 200 {object} DepartmentHeadcount
// @Failure 422 {object} APIResponse "department缺失"
// @Router /number-of-employees-in-department [get]
func (c *EmployeeController) CountInDepartment(w http.ResponseWriter, r *http.Request) {
	raw, ok := r.URL.Query()["department"]
	if !ok || len(raw) == 0 {
		renderError(w, r, http.StatusUnprocessableEntity, "缺少参数department", nil)
		return
	}

	render.JSON(w, r, DepartmentHeadcount{
		Department:        raw[0],
		NumberOfEmployees: c.analyzer.CountInDepartment(raw[0]),
	})
}

// AverageSalaryPerDepartment 各部门平均薪资
// @Summary 各部门平均薪资
// @Description 按平均薪资降序返回各部门平均薪资
// @Tags 员工
// @Produce json
// @Success 200 {array} analyzer.DepartmentAverage
// @Router /average-salary-per-department [get]
func (c *EmployeeController) AverageSalaryPerDepartment(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, c.analyzer.AverageSalaryPerDepartment())
}

// CountPerDepartment 各部门人数
// @Summary 各部门人数
// @Description 按人数降序返回各部门人数
// @Tags 员工
// @Produce json
// @Success 200 {array} analyzer.DepartmentCount
// @Router /number-of-employees-per-department [get]
func (c *EmployeeController) CountPerDepartment(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, c.analyzer.CountPerDepartment())
}
