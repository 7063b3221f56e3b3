package model

import (
	"math"
	"strconv"
	"strings"
)

// 源数据列名（与 brechas_unificadas.csv / catalogo_cargo.csv 保持一致）
const (
	ColFacilityID     = "clues_imb"
	ColFacilityName   = "nombre_de_la_unidad"
	ColRegion         = "entidad"
	ColJobCode        = "codigo_cnpm"
	ColJobTitle       = "denominacion_del_puesto"
	ColClassification = "clasificacion_cargo"
	ColIdealTotal     = "total_ideal"
	ColRealTotal      = "total_real"
	ColPayRate        = "pago_imb"
	ColGap            = "brecha"
	ColSurplus        = "excedente"
)

// NumericColumns 归一化后必须为数值的列
var NumericColumns = []string{ColIdealTotal, ColRealTotal, ColPayRate, ColGap, ColSurplus}

// Row 单个医疗单位的单个岗位记录
type Row struct {
	FacilityID   string `json:"facilityId"`   // CLUES
	FacilityName string `json:"facilityName"` // 单位名称
	Region       string `json:"region"`       // 所属州

	JobCode        string `json:"jobCode"`        // CNPM 岗位代码
	JobTitle       string `json:"jobTitle"`       // 岗位名称
	Classification string `json:"classification"` // 岗位分类，空串表示未分类

	IdealTotal float64 `json:"idealTotal"` // 理想编制
	RealTotal  float64 `json:"realTotal"`  // 实际在岗
	PayRate    float64 `json:"payRate"`
	Gap        float64 `json:"gap"`     // 缺口
	Surplus    float64 `json:"surplus"` // 冗余

	// 其余源列（班次拆分等），按列名保存原始文本
	Extra map[string]string `json:"extra,omitempty"`
}

// HasClassification 是否命中分类映射
func (r *Row) HasClassification() bool {
	return r.Classification != ""
}

// Numeric 按列名取数值字段
func (r *Row) Numeric(column string) (float64, bool) {
	switch column {
	case ColIdealTotal:
		return r.IdealTotal, true
	case ColRealTotal:
		return r.RealTotal, true
	case ColPayRate:
		return r.PayRate, true
	case ColGap:
		return r.Gap, true
	case ColSurplus:
		return r.Surplus, true
	}
	return 0, false
}

// Value 按列名取单元格值，用于导出时的列投影
// 返回 nil 表示空值；第二个返回值表示该行是否认识该列
func (r *Row) Value(column string) (any, bool) {
	if v, ok := r.Numeric(column); ok {
		return v, true
	}
	switch column {
	case ColFacilityID:
		return r.FacilityID, true
	case ColFacilityName:
		return r.FacilityName, true
	case ColRegion:
		return r.Region, true
	case ColJobCode:
		return r.JobCode, true
	case ColJobTitle:
		return r.JobTitle, true
	case ColClassification:
		if !r.HasClassification() {
			return nil, true
		}
		return r.Classification, true
	}

	raw, ok := r.Extra[column]
	if !ok {
		return nil, false
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f, true
	}
	return raw, true
}
