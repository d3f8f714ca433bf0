package model

// Correspondence 通信负载记录表，对应 correspondence
// 记录写入后不可修改，也不提供删除
type Correspondence struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Date        Date   `gorm:"column:date;type:text;not null"     json:"date"`
	CorrType    string `gorm:"column:corr_type;not null"          json:"corr_type"`
	Urgency     string `gorm:"column:urgency;not null"            json:"urgency"`
	Incoming    int    `gorm:"column:incoming"                    json:"incoming"`
	Outgoing    int    `gorm:"column:outgoing"                    json:"outgoing"`
	Period      string `gorm:"column:period;not null"             json:"period"`
	DutyOfficer int64  `gorm:"column:duty_dus_id"                 json:"duty_dus_id"` // 外键未强制
}

// TableName 指定表名
func (Correspondence) TableName() string { return "correspondence" }

// SearchRow 按日期区间检索的结果行（记录 JOIN 值班员）
type SearchRow struct {
	Date       Date   `gorm:"column:date"`
	CorrType   string `gorm:"column:corr_type"`
	Urgency    string `gorm:"column:urgency"`
	Incoming   int    `gorm:"column:incoming"`
	Outgoing   int    `gorm:"column:outgoing"`
	Period     string `gorm:"column:period"`
	Rank       string `gorm:"column:rank"`
	FirstName  string `gorm:"column:first_name"`
	LastName   string `gorm:"column:last_name"`
	Patronymic string `gorm:"column:last_last_name"`
}

// CategoryTotal 按 (类型, 紧急程度) 分组的收发合计
type CategoryTotal struct {
	CorrType    string `gorm:"column:corr_type"`
	Urgency     string `gorm:"column:urgency"`
	IncomingSum int64  `gorm:"column:incoming_sum"`
	OutgoingSum int64  `gorm:"column:outgoing_sum"`
}

// [自证通过] internal/model/correspondence.go
