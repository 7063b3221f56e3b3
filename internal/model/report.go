package model

// SummaryRow 按岗位分类汇总
type SummaryRow struct {
	Classification string  `json:"classification"`
	IdealTotal     float64 `json:"idealTotal"`
	RealTotal      float64 `json:"realTotal"`
	Gap            float64 `json:"gap"`
	Surplus        float64 `json:"surplus"`
}

// RankedRow 排行榜中的一行（Value 为排序字段的值）
type RankedRow struct {
	JobCode    string  `json:"jobCode"`
	JobTitle   string  `json:"jobTitle"`
	IdealTotal float64 `json:"idealTotal"`
	RealTotal  float64 `json:"realTotal"`
	Value      float64 `json:"value"`
}

// Ranking 一张 Top-N 表
type Ranking struct {
	Title   string      `json:"title"`
	Headers []string    `json:"headers"`
	Rows    []RankedRow `json:"rows"`
}

// Report 单个 CLUES 的看板数据
type Report struct {
	FacilityID   string `json:"facilityId"`
	FacilityName string `json:"facilityName"`
	Region       string `json:"region"`
	AnalysisDate string `json:"analysisDate"`
	RowCount     int    `json:"rowCount"`

	SummaryHeaders []string     `json:"summaryHeaders"`
	Summary        []SummaryRow `json:"summary"`

	TopSpecialistGap Ranking `json:"topSpecialistGap"` // ME 前缀
	TopNursingGap    Ranking `json:"topNursingGap"`    // EN 前缀
	TopGap           Ranking `json:"topGap"`
	TopSurplus       Ranking `json:"topSurplus"`
}
