/*
 * @module service/models/employee
 * @description 员工记录与内存数据表模型，清洗流水线和查询层共用
 * @architecture 数据模型层
 * @stateFlow 原始CSV -> Table(原始值) -> 清洗各阶段原地修改 -> 输出CSV
 * @rules 缺失值用nil指针显式表示，不使用哨兵数值
 * @dependencies time
 * @refs service/data_quality, service/dataset, service/analyzer
 */

package models

import "time"

// 固定列名，区分大小写
const (
	ColumnID          = "ID"
	ColumnName        = "Name"
	ColumnDateOfBirth = "Date_of_Birth"
	ColumnSalary      = "Salary"
	ColumnDepartment  = "Department"
)

// RequiredColumns 输入文件必须包含的列，按输出顺序排列
var RequiredColumns = []string{
	ColumnID,
	ColumnName,
	ColumnDateOfBirth,
	ColumnSalary,
	ColumnDepartment,
}

// NotAvailable 分类字段缺失时的默认值
const NotAvailable = "not_available"

// DateLayout 标准化后的出生日期格式
const DateLayout = "2006-01-02"

// RawFields 解析前的原始单元格文本
type RawFields struct {
	ID          string
	DateOfBirth string
	Salary      string
}

// Employee 员工记录
type Employee struct {
	ID          *int
	Name        *string
	DateOfBirth *time.Time
	Salary      *float64
	Department  *string

	// Raw 读取时的原始文本，由缺失值处理阶段解析
	Raw RawFields
	// Extra 非固定列，按列名保存原值并原样写回
	Extra map[string]string
}

// NameOrEmpty 返回姓名，缺失时返回空串
func (e *Employee) NameOrEmpty() string {
	if e.Name == nil {
		return ""
	}
	return *e.Name
}

// DepartmentOrEmpty 返回部门，缺失时返回空串
func (e *Employee) DepartmentOrEmpty() string {
	if e.Department == nil {
		return ""
	}
	return *e.Department
}

// Table 有序的员工记录集合
type Table struct {
	// Header 源文件的列顺序，写回时保持
	Header  []string
	Records []*Employee
}

// NewTable 创建使用标准列顺序的空表
func NewTable() *Table {
	header := make([]string, len(RequiredColumns))
	copy(header, RequiredColumns)
	return &Table{Header: header}
}

// Len 返回行数
func (t *Table) Len() int {
	return len(t.Records)
}

// IntPtr 返回整数指针
func IntPtr(v int) *int { return &v }

// FloatPtr 返回浮点数指针
func FloatPtr(v float64) *float64 { return &v }

// StringPtr 返回字符串指针
func StringPtr(v string) *string { return &v }
