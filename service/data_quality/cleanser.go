/*
 * @module service/data_quality/cleanser
 * @description 员工数据清洗器，按固定顺序执行编号修复、缺失值处理、异常值修正、编号重排、格式标准化
 * @architecture 分层架构 - 数据清洗层
 * @stateFlow 编号修复 -> 缺失值处理 -> 异常值修正 -> 编号重排 -> 格式标准化
 * @rules 阶段顺序固定，数据只向前流动；解析失败就地替换，不中断清洗
 * @dependencies employee-datahub/service/models, github.com/google/uuid
 * @refs id_repair.go, imputation.go, outlier.go, standardize.go
 */

package data_quality

import (
	"errors"
	"log/slog"
	"time"

	"employee-datahub/service/models"

	"github.com/google/uuid"
)

// ErrEmptyTable 数据表为空，无法清洗
var ErrEmptyTable = errors.New("数据表为空")

// Cleanser 数据清洗器
type Cleanser struct {
	policy    models.OutlierPolicy
	validator *Validator
}

// NewCleanser 创建数据清洗器实例，policy在构造时确定
func NewCleanser(policy models.OutlierPolicy) *Cleanser {
	return &Cleanser{
		policy:    policy,
		validator: NewValidator(),
	}
}

// Policy 返回异常值处理策略
func (c *Cleanser) Policy() models.OutlierPolicy {
	return c.policy
}

// Clean 原地清洗数据表并返回清洗报告
func (c *Cleanser) Clean(t *models.Table) (*models.CleaningReport, error) {
	if t == nil || t.Len() == 0 {
		return nil, ErrEmptyTable
	}

	report := &models.CleaningReport{
		RunID:     uuid.New().String(),
		Policy:    c.policy,
		RowsIn:    t.Len(),
		StartedAt: time.Now(),
	}

	// 1. 编号修复
	report.IDsRepaired, report.IDsUnrepaired = RepairIDs(t)
	slog.Debug("编号修复完成", "run_id", report.RunID, "repaired", report.IDsRepaired, "unrepaired", report.IDsUnrepaired)

	// 2. 缺失值处理
	imputed := ImputeMissing(t)
	report.InvalidDates = imputed.InvalidDates
	report.SalariesImputed = imputed.SalariesImputed
	report.SalaryFillValue = imputed.SalaryFillValue
	report.NamesFilled = imputed.NamesFilled
	report.DepartmentsFilled = imputed.DepartmentsFilled
	slog.Debug("缺失值处理完成", "run_id", report.RunID,
		"invalid_dates", imputed.InvalidDates,
		"salaries_imputed", imputed.SalariesImputed,
		"salary_fill_value", imputed.SalaryFillValue)

	// 3. 异常值修正
	outliers, err := CorrectOutliers(t, c.policy)
	if err != nil {
		return nil, err
	}
	report.OutliersDetected = outliers.Detected
	report.OutliersDropped = outliers.Dropped
	report.OutliersReplaced = outliers.Replaced
	slog.Debug("异常值修正完成", "run_id", report.RunID, "policy", c.policy,
		"detected", outliers.Detected, "dropped", outliers.Dropped, "replaced", outliers.Replaced)

	// 4. 编号重排
	RecalibrateIDs(t)

	// 5. 格式标准化
	StandardizeFormats(t)

	report.RowsOut = t.Len()
	report.Duration = time.Since(report.StartedAt)

	for _, v := range c.validator.Validate(t) {
		slog.Warn("清洗结果校验未通过", "run_id", report.RunID, "violation", v.String())
	}

	slog.Info("数据清洗完成", "run_id", report.RunID, "policy", c.policy,
		"rows_in", report.RowsIn, "rows_out", report.RowsOut, "duration", report.Duration)
	return report, nil
}
