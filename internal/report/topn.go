package report

import (
	"sort"
	"strings"

	"github.com/martin-lopez25/appbrechas/internal/model"
)

// SortKey 排行字段
type SortKey int

const (
	ByGap SortKey = iota
	BySurplus
)

func (k SortKey) value(r *model.Row) float64 {
	if k == BySurplus {
		return r.Surplus
	}
	return r.Gap
}

// String 返回对应的源列名
func (k SortKey) String() string {
	if k == BySurplus {
		return model.ColSurplus
	}
	return model.ColGap
}

// TopN 可选按代码前缀过滤后按 key 降序取前 n 条；并列时保持原行顺序
func TopN(rows []*model.Row, key SortKey, n int, prefix string) []model.RankedRow {
	if n <= 0 {
		return []model.RankedRow{}
	}
	candidates := make([]*model.Row, 0, len(rows))
	for _, r := range rows {
		if prefix != "" && !strings.HasPrefix(r.JobCode, prefix) {
			continue
		}
		candidates = append(candidates, r)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return key.value(candidates[i]) > key.value(candidates[j])
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}

	out := make([]model.RankedRow, len(candidates))
	for i, r := range candidates {
		out[i] = model.RankedRow{
			JobCode:    r.JobCode,
			JobTitle:   r.JobTitle,
			IdealTotal: r.IdealTotal,
			RealTotal:  r.RealTotal,
			Value:      key.value(r),
		}
	}
	return out
}
