package normalizer

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// 千分位写法：1,234 / 12,345,678.9；"1,5" 这类小数逗号不算
var thousandsPattern = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d+)?$`)

// ParseNumber 解析数值单元格；空值或无法解析时返回 (0, false)
func ParseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if strings.Contains(s, ",") {
		if !thousandsPattern.MatchString(s) {
			return 0, false
		}
		s = strings.ReplaceAll(s, ",", "")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
