/*
 * @module service/data_quality/imputation
 * @description 缺失值处理：出生日期与薪资类型转换、薪资中位数填充、分类字段默认值填充
 * @architecture 分层架构 - 数据清洗层
 * @stateFlow 原始文本 -> 类型解析(失败记为缺失) -> 计算中位数 -> 填充
 * @rules 解析失败不报错；中位数只基于解析后的有效值计算一次；本阶段不删除任何行
 * @dependencies github.com/spf13/cast
 * @refs cleanser.go
 */

package data_quality

import (
	"math"
	"strings"
	"time"

	"employee-datahub/service/models"

	"github.com/spf13/cast"
)

// 除cast内置格式外额外支持的日期格式
var extraDateLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"2006/1/2",
	"2006.01.02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"02-Jan-2006",
	"20060102",
	"2006",
	// 日在前，仅在月在前解析失败后尝试
	"02/01/2006",
	"2/1/2006",
}

// ParseDate 解析出生日期，无法解析时返回false
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := cast.ToTimeE(s); err == nil {
		return t, true
	}
	for _, layout := range extraDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseSalary 解析薪资，非数字和非有限值视为缺失
func ParseSalary(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if isHexLiteral(s) {
		return 0, false
	}
	v, err := cast.ToFloat64E(s)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// isHexLiteral 判断是否为十六进制数字写法，这类文本不作为数字接受
func isHexLiteral(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")
}

// ParseColumns 解析编号、出生日期和薪资原始文本，已解析的字段保持不变
// 返回非空但无法解析的出生日期数量
func ParseColumns(t *models.Table) (invalidDates int) {
	parseIDs(t)
	for _, rec := range t.Records {
		if rec.DateOfBirth == nil && strings.TrimSpace(rec.Raw.DateOfBirth) != "" {
			if d, ok := ParseDate(rec.Raw.DateOfBirth); ok {
				rec.DateOfBirth = &d
			} else {
				invalidDates++
			}
		}
		if rec.Salary == nil {
			if v, ok := ParseSalary(rec.Raw.Salary); ok {
				rec.Salary = models.FloatPtr(v)
			}
		}
	}
	return invalidDates
}

// ImputationResult 缺失值处理统计
type ImputationResult struct {
	InvalidDates      int
	SalariesImputed   int
	SalaryFillValue   float64
	NamesFilled       int
	DepartmentsFilled int
}

// ImputeMissing 解析类型并填充缺失值
// 薪资缺失统一填充为有效薪资的中位数，没有有效薪资时填充0
func ImputeMissing(t *models.Table) ImputationResult {
	var result ImputationResult
	result.InvalidDates = ParseColumns(t)

	valid := make([]float64, 0, t.Len())
	for _, rec := range t.Records {
		if rec.Salary != nil {
			valid = append(valid, *rec.Salary)
		}
	}
	fill := median(valid)
	if math.IsNaN(fill) {
		fill = 0
	}
	result.SalaryFillValue = fill

	for _, rec := range t.Records {
		if rec.Salary == nil {
			rec.Salary = models.FloatPtr(fill)
			result.SalariesImputed++
		}
		if rec.Name == nil {
			rec.Name = models.StringPtr(models.NotAvailable)
			result.NamesFilled++
		}
		if rec.Department == nil {
			rec.Department = models.StringPtr(models.NotAvailable)
			result.DepartmentsFilled++
		}
	}
	return result
}
