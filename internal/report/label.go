package report

import (
	"strings"
	"unicode/utf8"
)

// OfficerLabel 值班员缩写："<军衔> <姓> <名首字母>.<父称首字母>."
// 父称为空时省略其首字母与句点，例如 "ст. л-т Петров И."
func OfficerLabel(rank, firstName, lastName, patronymic string) string {
	var b strings.Builder
	b.WriteString(rank)
	b.WriteByte(' ')
	b.WriteString(lastName)
	b.WriteByte(' ')
	for _, name := range []string{firstName, patronymic} {
		if in := initial(name); in != "" {
			b.WriteString(in)
			b.WriteByte('.')
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// initial 取首个字符并转为大写
func initial(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 || r == utf8.RuneError {
		return ""
	}
	return strings.ToUpper(string(r))
}
