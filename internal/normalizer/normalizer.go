// Package normalizer 将岗位缺口数据与岗位目录合并为只读的规范表。
package normalizer

import (
	"errors"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/martin-lopez25/appbrechas/internal/loader"
	"github.com/martin-lopez25/appbrechas/internal/model"
)

// 上游偶尔把分类列写成 clasificacion_carga
const legacyClassificationColumn = "clasificacion_carga"

// Options 归一化选项
type Options struct {
	// KeepRawTitles 为 true 时不做名称清洗（仅用于对照）
	KeepRawTitles bool
}

// Stats 归一化统计，启动日志和加载记录使用
type Stats struct {
	Rows             int `json:"rows"`
	Facilities       int `json:"facilities"`
	UnmatchedTitles  int `json:"unmatchedTitles"`  // 目录中找不到的代码
	DuplicateCodes   int `json:"duplicateCodes"`   // 目录中重复的代码（先出现者生效）
	Unclassified     int `json:"unclassified"`     // 未命中分类映射
	NumericFallbacks int `json:"numericFallbacks"` // 非空但无法解析、按 0 处理的数值
}

// typed 列已映射到 model.Row 的字段，不再进入 Extra
var typed = map[string]struct{}{
	model.ColFacilityID:     {},
	model.ColFacilityName:   {},
	model.ColRegion:         {},
	model.ColJobCode:        {},
	model.ColJobTitle:       {},
	model.ColClassification: {},
	model.ColIdealTotal:     {},
	model.ColRealTotal:      {},
	model.ColPayRate:        {},
	model.ColGap:            {},
	model.ColSurplus:        {},
}

// Normalize 依次执行：关联目录名称、列名容错、数值转换、分类推导、名称清洗
func Normalize(gap, catalog *loader.Frame, opts Options) (*model.Table, Stats, error) {
	var stats Stats
	if gap == nil || catalog == nil {
		return nil, stats, errors.New("normalize: gap and catalog frames are required")
	}

	titles, dups := catalogTitles(catalog)
	stats.DuplicateCodes = dups

	gap.Rename(legacyClassificationColumn, model.ColClassification)
	columns := canonicalColumns(gap.Header)

	idx := func(name string) int { return gap.Index(name) }
	var (
		facilityIdx = idx(model.ColFacilityID)
		nameIdx     = idx(model.ColFacilityName)
		regionIdx   = idx(model.ColRegion)
		codeIdx     = idx(model.ColJobCode)
	)
	numericIdx := make(map[string]int, len(model.NumericColumns))
	for _, col := range model.NumericColumns {
		numericIdx[col] = idx(col)
	}
	var extraIdx []int
	for i, h := range gap.Header {
		if _, ok := typed[h]; ok {
			continue
		}
		extraIdx = append(extraIdx, i)
	}

	caser := cases.Title(language.Und)
	facilities := make(map[string]struct{})
	rows := make([]*model.Row, 0, gap.Len())

	for i := 0; i < gap.Len(); i++ {
		code := gap.Cell(i, codeIdx)
		row := &model.Row{
			FacilityID:   gap.Cell(i, facilityIdx),
			FacilityName: gap.Cell(i, nameIdx),
			Region:       gap.Cell(i, regionIdx),
			JobCode:      code,
		}

		// 目录未命中时名称为空
		title, ok := titles[code]
		if !ok {
			stats.UnmatchedTitles++
		}
		if opts.KeepRawTitles {
			row.JobTitle = title
		} else {
			row.JobTitle = cleanTitle(caser, title)
		}

		for _, col := range model.NumericColumns {
			raw := gap.Cell(i, numericIdx[col])
			v, ok := ParseNumber(raw)
			if !ok && raw != "" {
				stats.NumericFallbacks++
			}
			setNumeric(row, col, v)
		}

		if label, ok := Classify(code); ok {
			row.Classification = label
		} else {
			stats.Unclassified++
		}

		if len(extraIdx) > 0 {
			row.Extra = make(map[string]string, len(extraIdx))
			for _, j := range extraIdx {
				row.Extra[gap.Header[j]] = gap.Cell(i, j)
			}
		}

		facilities[row.FacilityID] = struct{}{}
		rows = append(rows, row)
	}

	stats.Rows = len(rows)
	stats.Facilities = len(facilities)
	return model.NewTable(columns, rows), stats, nil
}

// catalogTitles 代码 → 名称；重复代码以第一次出现为准
func catalogTitles(catalog *loader.Frame) (map[string]string, int) {
	codeIdx := catalog.Index(model.ColJobCode)
	titleIdx := catalog.Index(model.ColJobTitle)

	out := make(map[string]string, catalog.Len())
	dups := 0
	for i := 0; i < catalog.Len(); i++ {
		code := catalog.Cell(i, codeIdx)
		if _, ok := out[code]; ok {
			dups++
			continue
		}
		out[code] = catalog.Cell(i, titleIdx)
	}
	return out, dups
}

// canonicalColumns 去掉源表自带的名称列，名称列和分类列追加在末尾（若源表已有分类列则保留原位置）
func canonicalColumns(header []string) []string {
	out := make([]string, 0, len(header)+2)
	seen := make(map[string]struct{}, len(header)+2)
	for _, h := range header {
		if h == model.ColJobTitle {
			continue
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	out = append(out, model.ColJobTitle)
	if _, ok := seen[model.ColClassification]; !ok {
		out = append(out, model.ColClassification)
	}
	return out
}

func setNumeric(row *model.Row, column string, v float64) {
	switch column {
	case model.ColIdealTotal:
		row.IdealTotal = v
	case model.ColRealTotal:
		row.RealTotal = v
	case model.ColPayRate:
		row.PayRate = v
	case model.ColGap:
		row.Gap = v
	case model.ColSurplus:
		row.Surplus = v
	}
}
