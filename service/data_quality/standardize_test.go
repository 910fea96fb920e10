package data_quality

import (
	"testing"
	"time"

	"employee-datahub/service/models"
	"employee-datahub/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardizeFormats(t *testing.T) {
	dob := time.Date(1985, time.March, 12, 23, 30, 0, 0, time.FixedZone("CST", 8*3600))
	rec := testutil.SalaryRecord("a", 1, "Human Resources")
	rec.DateOfBirth = &dob
	missing := testutil.SalaryRecord("b", 1, "ÉQUIPE")
	table := testutil.NewTable(rec, missing)

	StandardizeFormats(table)

	require.NotNil(t, table.Records[0].DateOfBirth)
	assert.Equal(t, time.Date(1985, time.March, 12, 0, 0, 0, 0, time.UTC), *table.Records[0].DateOfBirth)
	assert.Equal(t, "human resources", table.Records[0].DepartmentOrEmpty())
	assert.Nil(t, table.Records[1].DateOfBirth)
	assert.Equal(t, "équipe", table.Records[1].DepartmentOrEmpty())
}

func TestStandardizeFormats_Idempotent(t *testing.T) {
	dob := time.Date(1990, time.September, 30, 8, 0, 0, 0, time.UTC)
	first := testutil.SalaryRecord("a", 1, "HR")
	first.DateOfBirth = &dob
	table := testutil.NewTable(first, testutil.SalaryRecord("b", 2, "Finance"))

	StandardizeFormats(table)
	once := snapshot(table)
	StandardizeFormats(table)

	assert.Equal(t, once, snapshot(table))
}

func snapshot(t *models.Table) []string {
	result := make([]string, 0, t.Len()*2)
	for _, rec := range t.Records {
		dob := ""
		if rec.DateOfBirth != nil {
			dob = rec.DateOfBirth.Format(time.RFC3339)
		}
		result = append(result, dob, rec.DepartmentOrEmpty())
	}
	return result
}

func TestNormalizeDepartment(t *testing.T) {
	assert.Equal(t, "hr", NormalizeDepartment("HR"))
	assert.Equal(t, "hr", NormalizeDepartment("hr"))
	assert.Equal(t, "", NormalizeDepartment(""))
}
