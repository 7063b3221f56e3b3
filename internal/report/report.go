// Package report 按 CLUES 过滤规范表并计算看板所需的汇总与排行。
//
// 所有函数都是规范表的纯函数，可被多个请求并发调用。
package report

import (
	"errors"
	"strings"
	"time"

	"github.com/martin-lopez25/appbrechas/internal/model"
)

var (
	// ErrNoFacility 未选择 CLUES
	ErrNoFacility = errors.New("no facility selected")
	// ErrFacilityNotFound 规范表中没有该 CLUES
	ErrFacilityNotFound = errors.New("facility not found")
)

// 看板表头
const (
	HeaderClassification = "Clasificación"
	HeaderJobCode        = "Código CNPM"
	HeaderJobTitle       = "Denominación del Cargo"
	HeaderSpecialty      = "Especialidad"
	HeaderIdeal          = "Plantilla ideal"
	HeaderOccupied       = "Ocupación"
	HeaderGap            = "Brecha"
	HeaderSurplus        = "Excedente"
)

// SummaryHeaders 分类汇总表头
var SummaryHeaders = []string{HeaderClassification, HeaderIdeal, HeaderOccupied, HeaderGap, HeaderSurplus}

// DefaultTopN 排行榜默认条数
const DefaultTopN = 5

// DefaultDateLayout 分析日期格式 dd/mm/yyyy
const DefaultDateLayout = "02/01/2006"

// Options 看板生成选项
type Options struct {
	TopN       int
	DateLayout string
	Now        time.Time
}

func (o Options) withDefaults() Options {
	if o.TopN <= 0 {
		o.TopN = DefaultTopN
	}
	if o.DateLayout == "" {
		o.DateLayout = DefaultDateLayout
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	return o
}

// FilterByFacility 精确匹配 CLUES，保持加载顺序
func FilterByFacility(t *model.Table, facilityID string) []*model.Row {
	if t == nil {
		return nil
	}
	out := make([]*model.Row, 0)
	for _, r := range t.Rows {
		if r.FacilityID == facilityID {
			out = append(out, r)
		}
	}
	return out
}

// Build 生成单个 CLUES 的看板数据
//
// 空 CLUES 返回 ErrNoFacility，不存在的 CLUES 返回 ErrFacilityNotFound。
func Build(t *model.Table, facilityID string, opts Options) (*model.Report, error) {
	facilityID = strings.TrimSpace(facilityID)
	if facilityID == "" {
		return nil, ErrNoFacility
	}
	rows := FilterByFacility(t, facilityID)
	if len(rows) == 0 {
		return nil, ErrFacilityNotFound
	}
	opts = opts.withDefaults()

	rankedHeaders := func(title, value string) []string {
		return []string{HeaderJobCode, title, HeaderIdeal, HeaderOccupied, value}
	}

	return &model.Report{
		FacilityID:     facilityID,
		FacilityName:   rows[0].FacilityName,
		Region:         rows[0].Region,
		AnalysisDate:   opts.Now.Format(opts.DateLayout),
		RowCount:       len(rows),
		SummaryHeaders: SummaryHeaders,
		Summary:        SummarizeByClassification(rows),
		TopSpecialistGap: model.Ranking{
			Title:   "Top puestos en medicina de especialidad con mayor brecha",
			Headers: rankedHeaders(HeaderSpecialty, HeaderGap),
			Rows:    TopN(rows, ByGap, opts.TopN, PrefixSpecialist),
		},
		TopNursingGap: model.Ranking{
			Title:   "Top enfermería con mayor brecha",
			Headers: rankedHeaders(HeaderJobTitle, HeaderGap),
			Rows:    TopN(rows, ByGap, opts.TopN, PrefixNursing),
		},
		TopGap: model.Ranking{
			Title:   "Top cargos con mayor brecha",
			Headers: rankedHeaders(HeaderJobTitle, HeaderGap),
			Rows:    TopN(rows, ByGap, opts.TopN, ""),
		},
		TopSurplus: model.Ranking{
			Title:   "Top cargos con mayor excedente",
			Headers: rankedHeaders(HeaderJobTitle, HeaderSurplus),
			Rows:    TopN(rows, BySurplus, opts.TopN, ""),
		},
	}, nil
}
