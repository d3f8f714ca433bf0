package model

// ── 固定枚举表 ──
// 录入界面、校验与报表排序共用同一份取值

// Ranks 军衔
var Ranks = []string{"ефр.", "пр-к", "ст. л-т"}

// CorrTypes 通信类型
var CorrTypes = []string{
	"Телефонные переговоры",
	"Телеграфная корреспонденция",
	"Электронные сообщения",
}

// UrgencyLevels 紧急程度，按优先级从普通到最高排列
var UrgencyLevels = []string{
	"Обыкновенная", "ДСП", "Секретная", "Срочная",
	"Самолет", "Ракета", "Воздух", "Монолит",
	"Секретная срочная", "Секретная самолет", "Секретная монолит",
	"Совершенно секретная", "Особой важности",
}

// Periods 值班时段
var Periods = []string{
	"С 10:00 по 22:00",
	"С 22:00 по 10:00",
}

// Catalog 枚举名称 → 取值列表
var Catalog = map[string][]string{
	"rank":      Ranks,
	"corr_type": CorrTypes,
	"urgency":   UrgencyLevels,
	"period":    Periods,
}

// IndexOf 返回 v 在 values 中的位置，不存在时返回 -1
func IndexOf(values []string, v string) int {
	for i, s := range values {
		if s == v {
			return i
		}
	}
	return -1
}

// Contains 判断 v 是否属于 values
func Contains(values []string, v string) bool {
	return IndexOf(values, v) >= 0
}
