package data_quality

import (
	"time"

	"employee-datahub/service/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// StandardizeFormats 出生日期截断为日期(UTC零点，输出为YYYY-MM-DD)，部门转小写
// 缺失的出生日期保持缺失；重复执行结果不变
func StandardizeFormats(t *models.Table) {
	lower := cases.Lower(language.Und)
	for _, rec := range t.Records {
		if rec.DateOfBirth != nil {
			d := rec.DateOfBirth
			normalized := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
			rec.DateOfBirth = &normalized
		}
		if rec.Department != nil {
			rec.Department = models.StringPtr(lower.String(*rec.Department))
		}
	}
}

// NormalizeDepartment 部门名称统一为小写，查询时与清洗结果保持一致
func NormalizeDepartment(name string) string {
	return cases.Lower(language.Und).String(name)
}
