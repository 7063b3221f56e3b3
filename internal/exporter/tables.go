package exporter

import (
	"sort"

	"github.com/martin-lopez25/appbrechas/internal/model"
	"github.com/martin-lopez25/appbrechas/internal/report"
)

// SummaryHeaders 汇总 sheet 表头
var SummaryHeaders = []string{model.ColClassification, "Ideal", "Ocupado", "Brecha", "Excedente"}

// DetailColumns 明细 sheet 的固定列顺序；源表没有的列直接跳过
var DetailColumns = []string{
	model.ColClassification,
	model.ColJobCode,
	model.ColJobTitle,
	model.ColIdealTotal,
	model.ColRealTotal,
	model.ColPayRate,
	model.ColGap,
	model.ColSurplus,
	"brecha_matutino",
	"brecha_vespertino",
	"brecha_nocturno",
	"brecha_jornada_acumulada",
	"excedente_matutino",
	"excedente_vespertino",
	"excedente_nocturno",
	"excedente_jornada_acumulada",
	"matutino",
	"Matutino B",
	"vespertino",
	"Nocturno A",
	"Nocturno B",
	"Jornada acumulada",
	"otro",
}

// Sheet 一张待写入的表：表头 + 行
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]any
}

// SummarySheet 分类汇总：按分组首个岗位代码的 ME/EN/其他 优先级排序，同级按分类名称升序
func SummarySheet(rows []*model.Row) Sheet {
	groups := report.GroupByClassification(rows)
	sort.SliceStable(groups, func(i, j int) bool {
		pi, pj := report.CodePriority(groups[i].FirstCode), report.CodePriority(groups[j].FirstCode)
		if pi != pj {
			return pi < pj
		}
		return groups[i].Classification < groups[j].Classification
	})

	out := Sheet{Name: SheetSummary, Headers: SummaryHeaders, Rows: make([][]any, 0, len(groups))}
	for _, g := range groups {
		var label any
		if g.Classification != "" {
			label = g.Classification
		}
		out.Rows = append(out.Rows, []any{label, g.IdealTotal, g.RealTotal, g.Gap, g.Surplus})
	}
	return out
}

// DetailSheet 明细：逐行按 ME/EN/其他 优先级、再按岗位代码升序
func DetailSheet(t *model.Table, rows []*model.Row) Sheet {
	columns := DetailColumnsFor(t)

	sorted := make([]*model.Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		pi, pj := report.CodePriority(sorted[i].JobCode), report.CodePriority(sorted[j].JobCode)
		if pi != pj {
			return pi < pj
		}
		return sorted[i].JobCode < sorted[j].JobCode
	})

	out := Sheet{Name: SheetDetail, Headers: columns, Rows: make([][]any, 0, len(sorted))}
	for _, r := range sorted {
		values := make([]any, len(columns))
		for i, col := range columns {
			values[i], _ = r.Value(col)
		}
		out.Rows = append(out.Rows, values)
	}
	return out
}

// DetailColumnsFor 固定列顺序与规范表列的交集
func DetailColumnsFor(t *model.Table) []string {
	out := make([]string, 0, len(DetailColumns))
	for _, col := range DetailColumns {
		if t.HasColumn(col) {
			out = append(out, col)
		}
	}
	return out
}
