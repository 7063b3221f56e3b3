package report

import (
	"sort"
	"strings"

	"github.com/martin-lopez25/appbrechas/internal/model"
)

// 岗位代码前缀
const (
	PrefixSpecialist = "ME"
	PrefixNursing    = "EN"
)

// Group 一个分类分组；FirstCode 为分组内按行顺序遇到的第一个岗位代码
type Group struct {
	model.SummaryRow
	FirstCode string
}

// GroupByClassification 按分类求和，分组按首次出现顺序排列
func GroupByClassification(rows []*model.Row) []Group {
	pos := make(map[string]int)
	groups := make([]Group, 0)
	for _, r := range rows {
		i, ok := pos[r.Classification]
		if !ok {
			i = len(groups)
			pos[r.Classification] = i
			groups = append(groups, Group{
				SummaryRow: model.SummaryRow{Classification: r.Classification},
				FirstCode:  r.JobCode,
			})
		}
		g := &groups[i]
		g.IdealTotal += r.IdealTotal
		g.RealTotal += r.RealTotal
		g.Gap += r.Gap
		g.Surplus += r.Surplus
	}
	return groups
}

// SummarizeByClassification 分类汇总，按分类名称升序；未分类（空名称）排在最前
func SummarizeByClassification(rows []*model.Row) []model.SummaryRow {
	groups := GroupByClassification(rows)
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Classification < groups[j].Classification
	})
	out := make([]model.SummaryRow, len(groups))
	for i, g := range groups {
		out[i] = g.SummaryRow
	}
	return out
}

// CodePriority 导出排序优先级：ME=0，EN=1，其余=2
func CodePriority(code string) int {
	switch {
	case strings.HasPrefix(code, PrefixSpecialist):
		return 0
	case strings.HasPrefix(code, PrefixNursing):
		return 1
	default:
		return 2
	}
}
