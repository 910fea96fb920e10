/*
 * @module service/analyzer/employee_analyzer
 * @description 员工数据查询层，提供部门平均薪资、最高薪前N名、部门人数统计
 * @architecture 分层架构 - 业务服务层
 * @stateFlow 启动时加载清洗后数据 -> 只读查询
 * @rules 数据表加载后不再修改，并发读取无需加锁；部门名称查询大小写不敏感
 * @dependencies employee-datahub/service/models, employee-datahub/service/dataset
 * @refs api/controllers/employee_controller.go
 */

package analyzer

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"employee-datahub/service/data_quality"
	"employee-datahub/service/dataset"
	"employee-datahub/service/models"
)

// ErrInvalidArgument 查询参数不合法
var ErrInvalidArgument = errors.New("参数不合法")

// DepartmentAverage 部门平均薪资
type DepartmentAverage struct {
	Department    string  `json:"Department"`
	AverageSalary float64 `json:"Average_Salary"`
}

// DepartmentCount 部门人数
type DepartmentCount struct {
	Department        string `json:"Department"`
	NumberOfEmployees int    `json:"Number_of_Employees"`
}

// EmployeeSalary 薪资查询结果投影
type EmployeeSalary struct {
	Name       string  `json:"Name"`
	Salary     float64 `json:"Salary"`
	Department string  `json:"Department"`
}

// EmployeeAnalyzer 员工数据分析器
type EmployeeAnalyzer struct {
	records []*models.Employee
}

// NewEmployeeAnalyzer 基于已清洗的数据表创建分析器，数据表此后视为只读
func NewEmployeeAnalyzer(t *models.Table) *EmployeeAnalyzer {
	records := make([]*models.Employee, 0)
	if t != nil {
		records = append(records, t.Records...)
	}
	return &EmployeeAnalyzer{records: records}
}

// LoadEmployeeAnalyzer 读取清洗后的CSV文件并创建分析器
func LoadEmployeeAnalyzer(ctx context.Context, path string) (*EmployeeAnalyzer, error) {
	table, err := dataset.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	data_quality.ParseColumns(table)
	return NewEmployeeAnalyzer(table), nil
}

// Len 返回员工总数
func (a *EmployeeAnalyzer) Len() int {
	return len(a.records)
}

// AverageSalaryPerDepartment 按部门计算平均薪资，按平均薪资降序，相同时按部门名升序
func (a *EmployeeAnalyzer) AverageSalaryPerDepartment() []DepartmentAverage {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, rec := range a.records {
		if rec.Salary == nil {
			continue
		}
		dept := rec.DepartmentOrEmpty()
		sums[dept] += *rec.Salary
		counts[dept]++
	}

	result := make([]DepartmentAverage, 0, len(counts))
	for dept, n := range counts {
		result = append(result, DepartmentAverage{
			Department:    dept,
			AverageSalary: sums[dept] / float64(n),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].AverageSalary != result[j].AverageSalary {
			return result[i].AverageSalary > result[j].AverageSalary
		}
		return result[i].Department < result[j].Department
	})
	return result
}

// TopNHighestPaid 返回薪资最高的n名员工，薪资相同时保持原始行顺序
func (a *EmployeeAnalyzer) TopNHighestPaid(n int) ([]EmployeeSalary, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n必须大于0，实际为%d", ErrInvalidArgument, n)
	}

	paid := make([]*models.Employee, 0, len(a.records))
	for _, rec := range a.records {
		if rec.Salary != nil {
			paid = append(paid, rec)
		}
	}
	sort.SliceStable(paid, func(i, j int) bool {
		return *paid[i].Salary > *paid[j].Salary
	})
	if n > len(paid) {
		n = len(paid)
	}

	result := make([]EmployeeSalary, n)
	for i, rec := range paid[:n] {
		result[i] = EmployeeSalary{
			Name:       rec.NameOrEmpty(),
			Salary:     *rec.Salary,
			Department: rec.DepartmentOrEmpty(),
		}
	}
	return result, nil
}

// CountPerDepartment 统计各部门人数，按人数降序，相同时按首次出现顺序
func (a *EmployeeAnalyzer) CountPerDepartment() []DepartmentCount {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, rec := range a.records {
		dept := rec.DepartmentOrEmpty()
		if _, ok := counts[dept]; !ok {
			order = append(order, dept)
		}
		counts[dept]++
	}

	result := make([]DepartmentCount, len(order))
	for i, dept := range order {
		result[i] = DepartmentCount{Department: dept, NumberOfEmployees: counts[dept]}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].NumberOfEmployees > result[j].NumberOfEmployees
	})
	return result
}

// CountInDepartment 统计指定部门人数，部门名转小写后匹配，不存在时返回0
func (a *EmployeeAnalyzer) CountInDepartment(name string) int {
	target := data_quality.NormalizeDepartment(name)
	count := 0
	for _, rec := range a.records {
		if rec.DepartmentOrEmpty() == target {
			count++
		}
	}
	return count
}
