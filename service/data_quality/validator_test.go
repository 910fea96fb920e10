package data_quality

import (
	"testing"

	"employee-datahub/service/models"
	"employee-datahub/testutil"

	"github.com/stretchr/testify/assert"
)

func TestValidator_Valid(t *testing.T) {
	table := testutil.NewTable(testutil.DepartmentGroup("hr", 1, 2, 3)...)
	RecalibrateIDs(table)

	assert.Empty(t, NewValidator().Validate(table))
}

func TestValidator_Violations(t *testing.T) {
	bad := &models.Employee{
		ID:         models.IntPtr(5),
		Salary:     models.FloatPtr(-1),
		Department: models.StringPtr("HR"),
	}
	table := testutil.NewTable(bad, &models.Employee{})

	violations := NewValidator().Validate(table)

	columns := make(map[string]int)
	for _, v := range violations {
		columns[v.Column]++
	}
	assert.Equal(t, 2, columns[models.ColumnID], "编号不连续和编号缺失")
	assert.Equal(t, 2, columns[models.ColumnName])
	assert.Equal(t, 2, columns[models.ColumnSalary], "薪资为负和薪资缺失")
	assert.Equal(t, 2, columns[models.ColumnDepartment], "部门未转小写和部门缺失")
	assert.Contains(t, violations[0].String(), "第0行")
}
