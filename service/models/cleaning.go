/*
 * @module service/models/cleaning
 * @description 清洗策略、清洗报告、清洗运行记录和运行事件模型
 * @architecture 数据模型层
 * @stateFlow 清洗执行 -> 生成报告 -> 持久化运行记录 -> 发布运行事件
 * @rules 运行记录ID使用UUID，创建前自动生成
 * @dependencies gorm.io/gorm, github.com/google/uuid
 * @refs service/data_quality/cleanser.go, service/run_store, service/notification
 */

package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OutlierPolicy 薪资异常值处理策略
type OutlierPolicy string

const (
	// PolicyGlobalDrop 全表计算均值和标准差，删除异常行
	PolicyGlobalDrop OutlierPolicy = "global_drop"
	// PolicyPerDepartmentReplace 按部门计算，异常薪资替换为部门均值
	PolicyPerDepartmentReplace OutlierPolicy = "per_department_replace"
)

// ParseOutlierPolicy 解析策略名称，大小写和连字符不敏感
func ParseOutlierPolicy(s string) (OutlierPolicy, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	switch OutlierPolicy(normalized) {
	case PolicyGlobalDrop:
		return PolicyGlobalDrop, nil
	case PolicyPerDepartmentReplace:
		return PolicyPerDepartmentReplace, nil
	default:
		return "", fmt.Errorf("未知的异常值处理策略: %q", s)
	}
}

// 运行状态
const (
	RunStatusSucceeded = "succeeded"
	RunStatusFailed    = "failed"
)

// CleaningReport 单次清洗的统计报告
type CleaningReport struct {
	RunID             string        `json:"run_id"`
	Policy            OutlierPolicy `json:"policy"`
	RowsIn            int           `json:"rows_in"`
	RowsOut           int           `json:"rows_out"`
	IDsRepaired       int           `json:"ids_repaired"`
	IDsUnrepaired     int           `json:"ids_unrepaired"`
	InvalidDates      int           `json:"invalid_dates"`
	SalariesImputed   int           `json:"salaries_imputed"`
	SalaryFillValue   float64       `json:"salary_fill_value"`
	NamesFilled       int           `json:"names_filled"`
	DepartmentsFilled int           `json:"departments_filled"`
	OutliersDetected  int           `json:"outliers_detected"`
	OutliersDropped   int           `json:"outliers_dropped"`
	OutliersReplaced  int           `json:"outliers_replaced"`
	StartedAt         time.Time     `json:"started_at"`
	Duration          time.Duration `json:"duration"`
}

// CleaningRun 清洗运行记录模型
type CleaningRun struct {
	ID                string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	InputFile         string    `gorm:"type:varchar(500);not null" json:"input_file"`
	OutputFile        string    `gorm:"type:varchar(500);not null" json:"output_file"`
	Policy            string    `gorm:"type:varchar(50);not null;index" json:"policy"`
	Status            string    `gorm:"type:varchar(20);not null;index" json:"status"` // succeeded, failed
	RowsIn            int       `json:"rows_in"`
	RowsOut           int       `json:"rows_out"`
	IDsRepaired       int       `json:"ids_repaired"`
	InvalidDates      int       `json:"invalid_dates"`
	SalariesImputed   int       `json:"salaries_imputed"`
	SalaryFillValue   float64   `json:"salary_fill_value"`
	NamesFilled       int       `json:"names_filled"`
	DepartmentsFilled int       `json:"departments_filled"`
	OutliersDetected  int       `json:"outliers_detected"`
	OutliersDropped   int       `json:"outliers_dropped"`
	OutliersReplaced  int       `json:"outliers_replaced"`
	ErrorMessage      string    `gorm:"type:text" json:"error_message,omitempty"`
	StartedAt         time.Time `gorm:"index" json:"started_at"`
	Duration          int64     `json:"duration"` // 毫秒
	CreatedAt         time.Time `json:"created_at"`
}

// TableName 指定表名
func (CleaningRun) TableName() string {
	return "cleaning_runs"
}

// BeforeCreate 创建前钩子
func (c *CleaningRun) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// NewCleaningRun 根据清洗报告构建运行记录，runErr非空时记为失败
func NewCleaningRun(inputFile, outputFile string, report *CleaningReport, runErr error) *CleaningRun {
	run := &CleaningRun{
		InputFile:  inputFile,
		OutputFile: outputFile,
		Status:     RunStatusSucceeded,
	}
	if report != nil {
		run.ID = report.RunID
		run.Policy = string(report.Policy)
		run.RowsIn = report.RowsIn
		run.RowsOut = report.RowsOut
		run.IDsRepaired = report.IDsRepaired
		run.InvalidDates = report.InvalidDates
		run.SalariesImputed = report.SalariesImputed
		run.SalaryFillValue = report.SalaryFillValue
		run.NamesFilled = report.NamesFilled
		run.DepartmentsFilled = report.DepartmentsFilled
		run.OutliersDetected = report.OutliersDetected
		run.OutliersDropped = report.OutliersDropped
		run.OutliersReplaced = report.OutliersReplaced
		run.StartedAt = report.StartedAt
		run.Duration = report.Duration.Milliseconds()
	}
	if runErr != nil {
		run.Status = RunStatusFailed
		run.ErrorMessage = runErr.Error()
	}
	return run
}

// RunEventTypeCompleted 清洗运行结束事件
const RunEventTypeCompleted = "cleaning_run.completed"

// RunEvent 清洗运行结束后发布的事件
type RunEvent struct {
	EventType        string    `json:"event_type"`
	RunID            string    `json:"run_id"`
	Status           string    `json:"status"`
	Policy           string    `json:"policy"`
	InputFile        string    `json:"input_file"`
	OutputFile       string    `json:"output_file"`
	RowsIn           int       `json:"rows_in"`
	RowsOut          int       `json:"rows_out"`
	OutliersDetected int       `json:"outliers_detected"`
	ErrorMessage     string    `json:"error_message,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}

// NewRunEvent 由运行记录生成事件
func NewRunEvent(run *CleaningRun) *RunEvent {
	return &RunEvent{
		EventType:        RunEventTypeCompleted,
		RunID:            run.ID,
		Status:           run.Status,
		Policy:           run.Policy,
		InputFile:        run.InputFile,
		OutputFile:       run.OutputFile,
		RowsIn:           run.RowsIn,
		RowsOut:          run.RowsOut,
		OutliersDetected: run.OutliersDetected,
		ErrorMessage:     run.ErrorMessage,
		Timestamp:        time.Now(),
	}
}
