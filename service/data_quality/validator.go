/*
 * @module service/data_quality/validator
 * @description 清洗结果校验器，检查编号连续、必填字段完整、薪资非负、部门小写
 * @architecture 分层架构 - 数据验证层
 * @stateFlow 清洗后数据 -> 逐行校验 -> 违规列表
 * @rules 校验只读，不修改数据表
 * @dependencies employee-datahub/service/models
 * @refs service/data_quality
 */

package data_quality

import (
	"fmt"

	"employee-datahub/service/models"
)

// Violation 校验违规项
type Violation struct {
	Row    int    `json:"row"` // 从0开始的行下标
	Column string `json:"column"`
	Reason string `json:"reason"`
}

func (v Violation) String() string {
	return fmt.Sprintf("第%d行 %s: %s", v.Row, v.Column, v.Reason)
}

// Validator 清洗结果校验器
type Validator struct{}

// NewValidator 创建校验器实例
func NewValidator() *Validator {
	return &Validator{}
}

// Validate 校验清洗后的数据表，没有违规时返回空切片
func (v *Validator) Validate(t *models.Table) []Violation {
	violations := make([]Violation, 0)
	for i, rec := range t.Records {
		if rec.ID == nil {
			violations = append(violations, Violation{Row: i, Column: models.ColumnID, Reason: "编号缺失"})
		} else if *rec.ID != i+1 {
			violations = append(violations, Violation{Row: i, Column: models.ColumnID, Reason: fmt.Sprintf("编号应为%d，实际为%d", i+1, *rec.ID)})
		}
		if rec.Name == nil {
			violations = append(violations, Violation{Row: i, Column: models.ColumnName, Reason: "姓名缺失"})
		}
		if rec.Salary == nil {
			violations = append(violations, Violation{Row: i, Column: models.ColumnSalary, Reason: "薪资缺失"})
		} else if *rec.Salary < 0 {
			violations = append(violations, Violation{Row: i, Column: models.ColumnSalary, Reason: "薪资为负"})
		}
		if rec.Department == nil {
			violations = append(violations, Violation{Row: i, Column: models.ColumnDepartment, Reason: "部门缺失"})
		} else if NormalizeDepartment(*rec.Department) != *rec.Department {
			violations = append(violations, Violation{Row: i, Column: models.ColumnDepartment, Reason: "部门未转小写"})
		}
	}
	return violations
}
