/*
 * @module service/data_quality/outlier
 * @description 薪资异常值检测与修正，支持全表删除和按部门替换两种策略
 * @architecture 策略模式 - 数据清洗层
 * @stateFlow 分组 -> 计算均值与样本标准差 -> 标记异常 -> 删除或替换
 * @rules |z|>3 或薪资为负即为异常；标准差无定义时z为NaN，不按z判定；单人部门从不修正
 * @dependencies math
 * @refs cleanser.go, stats.go
 */

package data_quality

import (
	"fmt"
	"math"

	"employee-datahub/service/models"
)

// zScoreThreshold 异常值的z分数阈值
const zScoreThreshold = 3.0

// OutlierResult 异常值处理统计
type OutlierResult struct {
	Detected int
	Dropped  int
	Replaced int
}

// CorrectOutliers 按策略修正薪资异常值，薪资缺失的行不参与计算
func CorrectOutliers(t *models.Table, policy models.OutlierPolicy) (OutlierResult, error) {
	switch policy {
	case models.PolicyGlobalDrop:
		return dropGlobalOutliers(t), nil
	case models.PolicyPerDepartmentReplace:
		return replaceDepartmentOutliers(t), nil
	default:
		return OutlierResult{}, fmt.Errorf("未知的异常值处理策略: %q", policy)
	}
}

// dropGlobalOutliers 全表计算一次均值和标准差，删除异常行
func dropGlobalOutliers(t *models.Table) OutlierResult {
	salaries := make([]float64, 0, t.Len())
	for _, rec := range t.Records {
		if rec.Salary != nil {
			salaries = append(salaries, *rec.Salary)
		}
	}
	m := mean(salaries)
	std := sampleStdDev(salaries)

	var result OutlierResult
	kept := make([]*models.Employee, 0, t.Len())
	for _, rec := range t.Records {
		if rec.Salary != nil && isOutlier(*rec.Salary, m, std) {
			result.Detected++
			result.Dropped++
			continue
		}
		kept = append(kept, rec)
	}
	t.Records = kept
	return result
}

// replaceDepartmentOutliers 按部门计算均值和标准差，异常薪资替换为该部门非异常成员的均值
func replaceDepartmentOutliers(t *models.Table) OutlierResult {
	// 部门 -> 表内行下标
	groups := make(map[string][]int)
	order := make([]string, 0)
	for i, rec := range t.Records {
		if rec.Salary == nil {
			continue
		}
		key := rec.DepartmentOrEmpty()
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}

	var result OutlierResult
	for _, key := range order {
		rows := groups[key]
		// 单人部门标准差无定义，保持原值
		if len(rows) < 2 {
			continue
		}

		salaries := make([]float64, len(rows))
		for j, row := range rows {
			salaries[j] = *t.Records[row].Salary
		}
		m := mean(salaries)
		std := sampleStdDev(salaries)

		outliers := make([]int, 0)
		normal := make([]float64, 0, len(salaries))
		for j, row := range rows {
			if isOutlier(salaries[j], m, std) {
				outliers = append(outliers, row)
			} else {
				normal = append(normal, salaries[j])
			}
		}
		if len(outliers) == 0 {
			continue
		}

		replacement := mean(normal)
		if math.IsNaN(replacement) {
			replacement = math.Max(m, 0)
		}
		for _, row := range outliers {
			t.Records[row].Salary = models.FloatPtr(replacement)
		}
		result.Detected += len(outliers)
		result.Replaced += len(outliers)
	}
	return result
}
