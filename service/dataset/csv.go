/*
 * @module service/dataset/csv
 * @description 员工CSV文件读写，负责表头校验、缺失标记识别和原子写出
 * @architecture 数据访问层 - 文件数据源
 * @stateFlow 读取表头 -> 校验必需列 -> 逐行读取原始文本 -> Table；Table -> 临时文件 -> 重命名
 * @rules 缺少必需列或无数据行时直接失败；输出文件仅在完整写出后出现
 * @dependencies encoding/csv
 * @refs service/models/employee.go, service/data_quality
 */

package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"employee-datahub/service/models"
)

var (
	// ErrEmptyInput 输入文件没有表头或没有数据行
	ErrEmptyInput = errors.New("输入数据为空")
	// ErrMissingColumn 输入文件缺少必需列
	ErrMissingColumn = errors.New("缺少必需列")
)

// naTokens 读取时视为缺失的单元格文本，与pandas read_csv默认缺失标记一致
var naTokens = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// IsMissing 判断单元格是否为缺失标记，首尾空白忽略
func IsMissing(cell string) bool {
	_, ok := naTokens[strings.TrimSpace(cell)]
	return ok
}

// Read 从CSV读取员工数据表
func Read(ctx context.Context, r io.Reader) (*models.Table, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: 缺少表头", ErrEmptyInput)
	}
	if err != nil {
		return nil, fmt.Errorf("读取CSV表头失败: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}
	missing := make([]string, 0)
	for _, col := range models.RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	required := make(map[string]struct{}, len(models.RequiredColumns))
	for _, col := range models.RequiredColumns {
		required[col] = struct{}{}
	}

	table := &models.Table{Header: header}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("读取CSV第%d行失败: %w", table.Len()+2, err)
		}

		rec := &models.Employee{
			Raw: models.RawFields{
				ID:          cellValue(row[index[models.ColumnID]]),
				DateOfBirth: cellValue(row[index[models.ColumnDateOfBirth]]),
				Salary:      cellValue(row[index[models.ColumnSalary]]),
			},
			Name:       optionalCell(row[index[models.ColumnName]]),
			Department: optionalCell(row[index[models.ColumnDepartment]]),
		}
		for i, h := range header {
			if _, ok := required[h]; ok {
				continue
			}
			if rec.Extra == nil {
				rec.Extra = make(map[string]string)
			}
			rec.Extra[h] = row[i]
		}
		table.Records = append(table.Records, rec)
	}

	if table.Len() == 0 {
		return nil, fmt.Errorf("%w: 没有数据行", ErrEmptyInput)
	}
	return table, nil
}

// ReadFile 从文件读取员工数据表
func ReadFile(ctx context.Context, path string) (*models.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开输入文件失败: %w", err)
	}
	defer f.Close()

	table, err := Read(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("读取 %s 失败: %w", path, err)
	}
	return table, nil
}

// Write 将员工数据表写为CSV，列顺序与源文件一致
func Write(w io.Writer, t *models.Table) error {
	header := t.Header
	if len(header) == 0 {
		header = models.RequiredColumns
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("写入CSV表头失败: %w", err)
	}
	row := make([]string, len(header))
	for _, rec := range t.Records {
		for i, col := range header {
			row[i] = formatCell(rec, col)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("写入CSV数据行失败: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteFile 先写临时文件再重命名，失败时不留下部分输出
func WriteFile(ctx context.Context, path string, t *models.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("创建临时文件失败: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := Write(tmp, t); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("关闭临时文件失败: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("写出 %s 失败: %w", path, err)
	}
	return nil
}

func cellValue(cell string) string {
	if IsMissing(cell) {
		return ""
	}
	return cell
}

func optionalCell(cell string) *string {
	if IsMissing(cell) {
		return nil
	}
	return models.StringPtr(cell)
}

func formatCell(rec *models.Employee, col string) string {
	switch col {
	case models.ColumnID:
		if rec.ID == nil {
			return ""
		}
		return strconv.Itoa(*rec.ID)
	case models.ColumnName:
		return rec.NameOrEmpty()
	case models.ColumnDateOfBirth:
		if rec.DateOfBirth == nil {
			return ""
		}
		return rec.DateOfBirth.Format(models.DateLayout)
	case models.ColumnSalary:
		if rec.Salary == nil {
			return ""
		}
		return strconv.FormatFloat(*rec.Salary, 'f', -1, 64)
	case models.ColumnDepartment:
		return rec.DepartmentOrEmpty()
	default:
		return rec.Extra[col]
	}
}
