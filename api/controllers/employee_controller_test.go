/*
 * @module api/controllers/employee_controller_test
 * @description 员工数据查询控制器单元测试
 * @architecture 测试层
 * @stateFlow 测试准备 -> 请求构建 -> 响应验证
 * @rules 确保查询接口的状态码和响应结构符合约定
 * @dependencies testing, net/http/httptest, stretchr/testify
 */

package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"employee-datahub/service/analyzer"
	"employee-datahub/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmployeeController(t *testing.T) *EmployeeController {
	t.Helper()
	path := testutil.WriteFile(t, "cleaned_data.csv", testutil.CleanedEmployeesCSV)
	a, err := analyzer.LoadEmployeeAnalyzer(context.Background(), path)
	require.NoError(t, err)
	return NewEmployeeController(a)
}

// ===================== 最高薪员工 =====================

// TestTopNHighestPaid 测试返回薪资前三名
func TestTopNHighestPaid(t *testing.T) {
	controller := newEmployeeController(t)

	req := httptest.NewRequest(http.MethodGet, "/top-n-highest-paid-employees?n=3", nil)
	w := httptest.NewRecorder()
	controller.TopNHighestPaid(w, req)

	var result []analyzer.EmployeeSalary
	testutil.DecodeJSON(t, w, http.StatusOK, &result)
	require.Len(t, result, 3)
	assert.Equal(t, "Lily Evans", result[0].Name)
	assert.Equal(t, "Oliver Queen", result[1].Name)
	assert.Equal(t, "Barry Allen", result[2].Name)
	assert.Equal(t, 98000.0, result[0].Salary)
	assert.Equal(t, "engineering", result[0].Department)
}

// TestTopNHighestPaid_ResponseShape 测试响应字段名
func TestTopNHighestPaid_ResponseShape(t *testing.T) {
	controller := newEmployeeController(t)

	req := httptest.NewRequest(http.MethodGet, "/top-n-highest-paid-employees?n=1", nil)
	w := httptest.NewRecorder()
	controller.TopNHighestPaid(w, req)

	var result []map[string]interface{}
	testutil.DecodeJSON(t, w, http.StatusOK, &result)
	require.Len(t, result, 1)
	assert.Equal(t, map[string]interface{}{
		"Name":       "Lily Evans",
		"Salary":     98000.0,
		"Department": "engineering",
	}, result[0])
}

// TestTopNHighestPaid_InvalidParams 测试参数错误的状态码
func TestTopNHighestPaid_InvalidParams(t *testing.T) {
	controller := newEmployeeController(t)

	tests := []struct {
		name   string
		query  string
		status int
	}{
		{"n为0", "?n=0", http.StatusBadRequest},
		{"n为负数", "?n=-2", http.StatusBadRequest},
		{"缺少n", "", http.StatusUnprocessableEntity},
		{"n不是整数", "?n=three", http.StatusUnprocessableEntity},
		{"n为小数", "?n=1.5", http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/top-n-highest-paid-employees"+tt.query, nil)
			w := httptest.NewRecorder()
			controller.TopNHighestPaid(w, req)

			var response APIResponse
			testutil.DecodeJSON(t, w, tt.status, &response)
			assert.Equal(t, tt.status, response.Status)
			assert.NotEmpty(t, response.Msg)
		})
	}
}

// ===================== 部门人数 =====================

// TestCountInDepartment 测试部门名称大小写不敏感
func TestCountInDepartment(t *testing.T) {
	controller := newEmployeeController(t)

	for _, dept := range []string{"HR", "hr"} {
		req := httptest.NewRequest(http.MethodGet, "/number-of-employees-in-department?department="+dept, nil)
		w := httptest.NewRecorder()
		controller.CountInDepartment(w, req)

		var result DepartmentHeadcount
		testutil.DecodeJSON(t, w, http.StatusOK, &result)
		assert.Equal(t, dept, result.Department)
		assert.Equal(t, 4, result.NumberOfEmployees)
	}
}

// TestCountInDepartment_Unknown 测试未知部门返回0
func TestCountInDepartment_Unknown(t *testing.T) {
	controller := newEmployeeController(t)

	req := httptest.NewRequest(http.MethodGet, "/number-of-employees-in-department?department=legal", nil)
	w := httptest.NewRecorder()
	controller.CountInDepartment(w, req)

	var result map[string]interface{}
	testutil.DecodeJSON(t, w, http.StatusOK, &result)
	assert.Equal(t, map[string]interface{}{"department": "legal", "number_of_employees": 0.0}, result)
}

// TestCountInDepartment_Missing 测试缺少部门参数
func TestCountInDepartment_Missing(t *testing.T) {
	controller := newEmployeeController(t)

	req := httptest.NewRequest(http.MethodGet, "/number-of-employees-in-department", nil)
	w := httptest.NewRecorder()
	controller.CountInDepartment(w, req)

	var response APIResponse
	testutil.DecodeJSON(t, w, http.StatusUnprocessableEntity, &response)
	assert.Equal(t, http.StatusUnprocessableEntity, response.Status)
}

// ===================== 部门统计 =====================

func TestAverageSalaryPerDepartment(t *testing.T) {
	controller := newEmployeeController(t)

	req := httptest.NewRequest(http.MethodGet, "/average-salary-per-department", nil)
	w := httptest.NewRecorder()
	controller.AverageSalaryPerDepartment(w, req)

	var result []analyzer.DepartmentAverage
	testutil.DecodeJSON(t, w, http.StatusOK, &result)
	require.Len(t, result, 4)
	assert.Equal(t, "engineering", result[0].Department)
	assert.Equal(t, "hr", result[3].Department)
}

func TestCountPerDepartment(t *testing.T) {
	controller := newEmployeeController(t)

	req := httptest.NewRequest(http.MethodGet, "/number-of-employees-per-department", nil)
	w := httptest.NewRecorder()
	controller.CountPerDepartment(w, req)

	var result []analyzer.DepartmentCount
	testutil.DecodeJSON(t, w, http.StatusOK, &result)
	require.Len(t, result, 4)
	assert.Equal(t, analyzer.DepartmentCount{Department: "hr", NumberOfEmployees: 4}, result[0])
}
