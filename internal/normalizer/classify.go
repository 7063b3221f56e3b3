package normalizer

import "strings"

// ClassificationRule 代码片段 → 分类名称
type ClassificationRule struct {
	Key   string
	Label string
}

// ClassificationRules 按声明顺序匹配，先命中者生效
var ClassificationRules = []ClassificationRule{
	{Key: "CG", Label: "Cuerpos de gobierno"},
	{Key: "EN", Label: "Enfermería"},
	{Key: "ME", Label: "Médicos especialistas"},
	{Key: "MG", Label: "Médicos generales"},
	{Key: "OP", Label: "Personal operativo"},
	{Key: "FA", Label: "Tradicional"},
	{Key: "SIN_PUESTO", Label: "Sin cargo"},
}

// Classify 按包含关系（不是前缀匹配）推导岗位分类
func Classify(code string) (string, bool) {
	for _, rule := range ClassificationRules {
		if strings.Contains(code, rule.Key) {
			return rule.Label, true
		}
	}
	return "", false
}
