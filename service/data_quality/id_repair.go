/*
 * @module service/data_quality/id_repair
 * @description 编号修复与编号重排
 * @architecture 分层架构 - 数据清洗层
 * @stateFlow 原始编号解析 -> 顺序补齐缺失编号 -> (异常处理后) 按位置重排
 * @rules 补齐只看上一行，首行缺失不补；重排后编号严格为1..N
 * @dependencies github.com/spf13/cast
 * @refs cleanser.go
 */

package data_quality

import (
	"math"
	"strings"

	"employee-datahub/service/models"

	"github.com/spf13/cast"
)

// maxID 编号上限，超过时视为缺失，保证补齐时加一不溢出
const maxID = 1 << 53

// ParseID 解析原始编号，空值、非数字、非整数和超出范围的值均视为缺失
func ParseID(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || isHexLiteral(s) {
		return 0, false
	}
	// 按浮点解析，接受 "7.0"，避免前导零被当作八进制
	f, err := cast.ToFloat64E(s)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > maxID {
		return 0, false
	}
	return int(f), true
}

// parseIDs 将尚未解析的原始编号转换为整数
func parseIDs(t *models.Table) {
	for _, rec := range t.Records {
		if rec.ID != nil {
			continue
		}
		if id, ok := ParseID(rec.Raw.ID); ok {
			rec.ID = models.IntPtr(id)
		}
	}
}

// RepairIDs 从第二行起，缺失编号取上一行编号加一
// 返回补齐数和仍缺失数
func RepairIDs(t *models.Table) (repaired, unrepaired int) {
	parseIDs(t)

	var last *int
	for i, rec := range t.Records {
		if rec.ID != nil {
			last = rec.ID
			continue
		}
		if i == 0 || last == nil {
			unrepaired++
			continue
		}
		rec.ID = models.IntPtr(*last + 1)
		last = rec.ID
		repaired++
	}
	return repaired, unrepaired
}

// RecalibrateIDs 按当前行顺序重新编号为1..N
func RecalibrateIDs(t *models.Table) {
	for i, rec := range t.Records {
		rec.ID = models.IntPtr(i + 1)
	}
}
