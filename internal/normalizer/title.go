package normalizer

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CleanTitle 下划线换成空格后按单词首字母大写
func CleanTitle(title string) string {
	return cleanTitle(cases.Title(language.Und), title)
}

// cases.Caser 不能并发使用，每次归一化各持有一个
func cleanTitle(caser cases.Caser, title string) string {
	if title == "" {
		return ""
	}
	return caser.String(strings.ReplaceAll(title, "_", " "))
}
