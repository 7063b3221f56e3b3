package model

import "sort"

// Facility 下拉框选项
type Facility struct {
	ID   string `json:"value"`
	Name string `json:"name"`
}

// Label 展示文本："<CLUES> - <单位名称>"
func (f Facility) Label() string {
	return f.ID + " - " + f.Name
}

// Table 归一化后的规范表
//
// 启动时构建一次，之后只读；所有查询都返回新的切片。
type Table struct {
	Columns []string
	Rows    []*Row

	columnSet map[string]struct{}
}

// NewTable 创建规范表
func NewTable(columns []string, rows []*Row) *Table {
	set := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		set[c] = struct{}{}
	}
	return &Table{
		Columns:   columns,
		Rows:      rows,
		columnSet: set,
	}
}

// HasColumn 列是否存在
func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	_, ok := t.columnSet[name]
	return ok
}

// Len 行数
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Facilities 按 CLUES 升序去重，名称取该 CLUES 的第一行
func (t *Table) Facilities() []Facility {
	if t == nil {
		return nil
	}
	seen := make(map[string]struct{})
	out := make([]Facility, 0)
	for _, r := range t.Rows {
		if _, ok := seen[r.FacilityID]; ok {
			continue
		}
		seen[r.FacilityID] = struct{}{}
		out = append(out, Facility{ID: r.FacilityID, Name: r.FacilityName})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}
