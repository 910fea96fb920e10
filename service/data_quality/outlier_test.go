package data_quality

import (
	"testing"

	"employee-datahub/service/models"
	"employee-datahub/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 13人组内单个极端值的|z|上限为12/sqrt(13)≈3.33，可以超过阈值

// TestCorrectOutliers_GlobalDrop 测试全表策略删除极端薪资行
func TestCorrectOutliers_GlobalDrop(t *testing.T) {
	salaries := []float64{50000, 50100, 50200, 50300, 50400, 50500, 50600, 50700, 50800, 50900, 51000, 51100, 1000000}
	table := testutil.NewTable(testutil.DepartmentGroup("eng", salaries...)...)

	result, err := CorrectOutliers(table, models.PolicyGlobalDrop)
	require.NoError(t, err)

	assert.Equal(t, len(salaries)-1, table.Len())
	assert.Equal(t, 1, result.Detected)
	assert.Equal(t, 1, result.Dropped)
	assert.Equal(t, 0, result.Replaced)
	assert.NotContains(t, testutil.Salaries(table), 1000000.0)
}

// TestCorrectOutliers_GlobalDropNegative 测试负薪资无论z分数都被删除
func TestCorrectOutliers_GlobalDropNegative(t *testing.T) {
	table := testutil.NewTable(testutil.DepartmentGroup("eng", 50000, 52000, -10, 51000)...)

	result, err := CorrectOutliers(table, models.PolicyGlobalDrop)
	require.NoError(t, err)

	assert.Equal(t, 3, table.Len())
	assert.Equal(t, 1, result.Dropped)
	assert.Equal(t, []float64{50000, 52000, 51000}, testutil.Salaries(table))
}

// TestCorrectOutliers_GlobalDropIdentical 测试标准差为0时z分数为NaN，不删除任何行
func TestCorrectOutliers_GlobalDropIdentical(t *testing.T) {
	table := testutil.NewTable(testutil.DepartmentGroup("eng", testutil.Repeat(40000, 5)...)...)

	result, err := CorrectOutliers(table, models.PolicyGlobalDrop)
	require.NoError(t, err)

	assert.Equal(t, 5, table.Len())
	assert.Equal(t, 0, result.Detected)
}

// TestCorrectOutliers_GlobalDropSmallTable 测试行数太少时即使差距很大也不会超过阈值
func TestCorrectOutliers_GlobalDropSmallTable(t *testing.T) {
	table := testutil.NewTable(testutil.DepartmentGroup("eng", 50000, 51000, 1000000)...)

	_, err := CorrectOutliers(table, models.PolicyGlobalDrop)
	require.NoError(t, err)

	assert.Equal(t, 3, table.Len())
}

// TestCorrectOutliers_PerDepartmentReplace 测试按部门策略将极端薪资替换为其他成员的均值
func TestCorrectOutliers_PerDepartmentReplace(t *testing.T) {
	records := testutil.DepartmentGroup("eng", append(testutil.Repeat(60000, 12), 900000)...)
	records = append(records, testutil.DepartmentGroup("hr", 40000, 42000, 44000)...)
	records = append(records, testutil.DepartmentGroup("ops", -5)...)
	table := testutil.NewTable(records...)

	result, err := CorrectOutliers(table, models.PolicyPerDepartmentReplace)
	require.NoError(t, err)

	require.Equal(t, 17, table.Len())
	assert.Equal(t, 1, result.Detected)
	assert.Equal(t, 1, result.Replaced)
	assert.Equal(t, 0, result.Dropped)

	got := testutil.Salaries(table)
	assert.Equal(t, 60000.0, got[12], "极端薪资替换为部门其他成员的均值")
	assert.Equal(t, []float64{40000, 42000, 44000}, got[13:16], "无异常的部门保持不变")
	assert.Equal(t, -5.0, got[16], "单人部门不修正")
}

// TestCorrectOutliers_PerDepartmentNegative 测试部门内负薪资被替换
func TestCorrectOutliers_PerDepartmentNegative(t *testing.T) {
	table := testutil.NewTable(testutil.DepartmentGroup("hr", -100, 50000)...)

	result, err := CorrectOutliers(table, models.PolicyPerDepartmentReplace)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Replaced)
	assert.Equal(t, []float64{50000, 50000}, testutil.Salaries(table))
}

// TestCorrectOutliers_PerDepartmentAllOutliers 测试部门内全是异常值时使用不小于0的部门均值
func TestCorrectOutliers_PerDepartmentAllOutliers(t *testing.T) {
	table := testutil.NewTable(testutil.DepartmentGroup("hr", -10, -20)...)

	result, err := CorrectOutliers(table, models.PolicyPerDepartmentReplace)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Replaced)
	assert.Equal(t, []float64{0, 0}, testutil.Salaries(table))
}

// TestCorrectOutliers_UnknownPolicy 测试未知策略返回错误
func TestCorrectOutliers_UnknownPolicy(t *testing.T) {
	table := testutil.NewTable(testutil.DepartmentGroup("hr", 1, 2)...)

	_, err := CorrectOutliers(table, models.OutlierPolicy("median"))
	assert.Error(t, err)
}

// TestIsOutlier 测试异常判定
func TestIsOutlier(t *testing.T) {
	assert.True(t, isOutlier(100, 0, 10))
	assert.False(t, isOutlier(30, 0, 10), "|z|=3不超过阈值")
	assert.True(t, isOutlier(-1, 0, sampleStdDev([]float64{1})), "负数在标准差无定义时仍为异常")
	assert.False(t, isOutlier(5, 5, 0), "0/0为NaN")
}
