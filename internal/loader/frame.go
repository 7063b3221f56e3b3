package loader

import "strings"

// Frame 源文件读入内存后的表格：表头 + 文本记录
type Frame struct {
	Source  string     // 文件路径或名称
	Hash    string     // sha256(文件内容)
	Header  []string   // 规范化后的列名
	Records [][]string // 每行宽度与表头一致

	index map[string]int
}

func newFrame(source string, header []string, records [][]string) *Frame {
	f := &Frame{
		Source: source,
		Header: make([]string, len(header)),
	}
	for i, h := range header {
		f.Header[i] = normalizeHeader(h)
	}

	width := len(f.Header)
	f.Records = make([][]string, 0, len(records))
	for _, rec := range records {
		if isBlankRecord(rec) {
			continue
		}
		f.Records = append(f.Records, fitWidth(rec, width))
	}
	f.reindex()
	return f
}

func (f *Frame) reindex() {
	f.index = make(map[string]int, len(f.Header))
	for i, h := range f.Header {
		// 重名列保留第一次出现的位置
		if _, ok := f.index[h]; !ok {
			f.index[h] = i
		}
	}
}

// Index 返回列位置，不存在时返回 -1
func (f *Frame) Index(name string) int {
	if i, ok := f.index[name]; ok {
		return i
	}
	return -1
}

// Has 列是否存在
func (f *Frame) Has(name string) bool {
	return f.Index(name) >= 0
}

// Len 数据行数（不含表头）
func (f *Frame) Len() int {
	return len(f.Records)
}

// Cell 取单元格，越界时返回空串
func (f *Frame) Cell(row, col int) string {
	if row < 0 || row >= len(f.Records) || col < 0 {
		return ""
	}
	rec := f.Records[row]
	if col >= len(rec) {
		return ""
	}
	return rec[col]
}

// RenameAt 按位置重命名列
func (f *Frame) RenameAt(pos int, name string) {
	if pos < 0 || pos >= len(f.Header) {
		return
	}
	f.Header[pos] = name
	f.reindex()
}

// Rename 按名称重命名列，返回是否发生了重命名
func (f *Frame) Rename(from, to string) bool {
	pos := f.Index(from)
	if pos < 0 {
		return false
	}
	f.RenameAt(pos, to)
	return true
}

// normalizeHeader 去掉 BOM、换行符和首尾空白，保留列名内部的空格（如 "Matutino B"）
func normalizeHeader(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	name = strings.ReplaceAll(name, "\n", "")
	name = strings.ReplaceAll(name, "\r", "")
	name = strings.ReplaceAll(name, "\t", "")
	return strings.TrimSpace(name)
}

func isBlankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func fitWidth(rec []string, width int) []string {
	out := make([]string, width)
	copy(out, rec)
	return out
}
