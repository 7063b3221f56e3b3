package loader

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/martin-lopez25/appbrechas/internal/model"
)

// ErrMissingColumn 缺少必需列
var ErrMissingColumn = errors.New("missing required column")

// ErrEmptySource 文件没有表头
var ErrEmptySource = errors.New("empty source")

// 必需列（尽力而为的结构检查，不做完整 schema 校验）
var requiredGapColumns = []string{model.ColFacilityID, model.ColJobCode}

// LoadGap 读取岗位缺口数据集
func LoadGap(path string) (*Frame, error) {
	f, err := Load(path)
	if err != nil {
		return nil, err
	}
	for _, col := range requiredGapColumns {
		if !f.Has(col) {
			return nil, fmt.Errorf("%s: %w: %s", path, ErrMissingColumn, col)
		}
	}
	return f, nil
}

// LoadCatalog 读取岗位代码目录
//
// 前两列按位置重命名为 codigo_cnpm / denominacion_del_puesto，与原表头文字无关。
func LoadCatalog(path string) (*Frame, error) {
	f, err := Load(path)
	if err != nil {
		return nil, err
	}
	if len(f.Header) < 2 {
		return nil, fmt.Errorf("%s: %w: catalog needs at least 2 columns, got %d", path, ErrMissingColumn, len(f.Header))
	}
	f.RenameAt(0, model.ColJobCode)
	f.RenameAt(1, model.ColJobTitle)
	return f, nil
}

// Load 按扩展名读取 CSV / XLSX 文件
func Load(path string) (*Frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var f *Frame
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		f, err = ReadXLSX(bytes.NewReader(data), path)
	default:
		f, err = ReadCSV(bytes.NewReader(data), path)
	}
	if err != nil {
		return nil, err
	}

	sum := sha256.Sum256(data)
	f.Hash = hex.EncodeToString(sum[:])
	return f, nil
}

// ReadCSV 读取分隔符文本，自动识别 , ; \t
func ReadCSV(r io.Reader, source string) (*Frame, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = sniffDelimiter(data)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w", source, ErrEmptySource)
		}
		return nil, fmt.Errorf("failed to read header of %s: %w", source, err)
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", source, err)
	}
	return newFrame(source, header, records), nil
}

// ReadXLSX 读取工作簿的第一个 sheet，第一行为表头
func ReadXLSX(r io.Reader, source string) (*Frame, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel %s: %w", source, err)
	}
	defer func() { _ = wb.Close() }()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: %w", source, ErrEmptySource)
	}
	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s of %s: %w", sheets[0], source, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", source, ErrEmptySource)
	}
	return newFrame(source, rows[0], rows[1:]), nil
}

// sniffDelimiter 取首行中出现次数最多的分隔符，默认逗号
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	best, bestCount := ',', 0
	for _, d := range []rune{',', ';', '\t'} {
		if n := bytes.Count(line, []byte(string(d))); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}
