/*
 * @module testutil/test_helper
 * @description 测试工具和辅助函数
 * @architecture 测试基础设施 - 提供测试通用工具和数据工厂
 * @stateFlow 测试环境初始化 -> 测试数据创建 -> 测试执行 -> 清理资源
 * @rules 提供可重用的测试工具，确保测试环境的一致性
 * @dependencies gorm, sqlite, testify
 * @refs service/models
 */

package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"employee-datahub/service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// CleanedEmployeesCSV 清洗后的员工样例数据
// 薪资前三名依次为 Lily Evans, Oliver Queen, Barry Allen；hr部门4人
const CleanedEmployeesCSV = `ID,Name,Date_of_Birth,Salary,Department
1,Lily Evans,1985-03-12,98000,engineering
2,Oliver Queen,1979-05-16,91000,finance
3,Barry Allen,1990-09-30,87000,engineering
4,Diana Prince,1988-01-22,65000,hr
5,Clark Kent,1982-06-18,72000,marketing
6,Bruce Wayne,1975-02-19,80000,finance
7,Peter Parker,1995-08-10,52000,hr
8,Tony Stark,1970-05-29,86000,engineering
9,Natasha Romanoff,1984-11-22,61000,hr
10,Wanda Maximoff,1989-02-10,58000,hr
11,Hal Jordan,1987-07-07,70000,marketing
`

// RawEmployeesCSV 原始员工样例数据，包含缺失编号、无效日期、缺失薪资和大小写混杂的部门
const RawEmployeesCSV = `ID,Name,Date_of_Birth,Salary,Department
1,Lily Evans,1985-03-12,98000,Engineering
,Oliver Queen,1979/05/16,91000,Finance
3,Barry Allen,not a date,87000,ENGINEERING
4,Diana Prince,1988-01-22,,HR
5,,1982-06-18,72000,Marketing
6,Bruce Wayne,1975-02-19,80000,
`

// WriteFile 在测试临时目录写入文件并返回路径
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// Record 创建只含原始文本的员工记录，name/department为空表示缺失
func Record(id, name, dob, salary, department string) *models.Employee {
	rec := &models.Employee{
		Raw: models.RawFields{ID: id, DateOfBirth: dob, Salary: salary},
	}
	if name != "" {
		rec.Name = models.StringPtr(name)
	}
	if department != "" {
		rec.Department = models.StringPtr(department)
	}
	return rec
}

// NewTable 用给定记录创建标准列顺序的数据表
func NewTable(records ...*models.Employee) *models.Table {
	t := models.NewTable()
	t.Records = records
	return t
}

// SalaryRecord 创建薪资已解析的员工记录
func SalaryRecord(name string, salary float64, department string) *models.Employee {
	return &models.Employee{
		Name:       models.StringPtr(name),
		Salary:     models.FloatPtr(salary),
		Department: models.StringPtr(department),
	}
}

// DepartmentGroup 创建同一部门的一组薪资已解析的记录
func DepartmentGroup(department string, salaries ...float64) []*models.Employee {
	records := make([]*models.Employee, len(salaries))
	for i, s := range salaries {
		records[i] = SalaryRecord(fmt.Sprintf("%s-%d", department, i+1), s, department)
	}
	return records
}

// Repeat 返回n个相同的值
func Repeat(v float64, n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = v
	}
	return values
}

// Salaries 返回数据表中的薪资，缺失记为-1
func Salaries(t *models.Table) []float64 {
	result := make([]float64, t.Len())
	for i, rec := range t.Records {
		if rec.Salary == nil {
			result[i] = -1
			continue
		}
		result[i] = *rec.Salary
	}
	return result
}

// NewTestDB 创建内存sqlite测试数据库并迁移运行记录表
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to connect test database")
	// 内存库按连接隔离，固定为单连接
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.CleaningRun{}), "failed to migrate test database")

	t.Cleanup(func() {
		sqlDB.Close()
	})
	return db
}

// MockPublisher Mock事件发布通道
type MockPublisher struct {
	mock.Mock
	name string
}

// NewMockPublisher 创建Mock事件发布通道
func NewMockPublisher(name string) *MockPublisher {
	return &MockPublisher{name: name}
}

func (m *MockPublisher) Name() string {
	return m.name
}

func (m *MockPublisher) Publish(ctx context.Context, event *models.RunEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// DecodeJSON 断言状态码并解码JSON响应体
func DecodeJSON(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, v interface{}) {
	t.Helper()
	assert.Equal(t, expectedStatus, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}
