package dto

// ── 值班员模块 DTO ──

// CreateOfficerRequest 新增值班员请求
type CreateOfficerRequest struct {
	Rank       string `json:"rank"       validate:"notblank,rank"`
	FirstName  string `json:"first_name" validate:"notblank"`
	LastName   string `json:"last_name"  validate:"notblank"`
	Patronymic string `json:"patronymic" validate:"notblank"`
}

// DeleteOfficerRequest 删除值班员请求
// Confirmed 必须由界面层在用户确认后置为 true；不存在的 ID（含 0 与负数）视为无操作
type DeleteOfficerRequest struct {
	ID        int64 `json:"id"`
	Confirmed bool  `json:"confirmed"`
}

// OfficerResponse 值班员信息响应
type OfficerResponse struct {
	ID         int64  `json:"id"`
	Rank       string `json:"rank"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Patronymic string `json:"patronymic"`
	FullName   string `json:"full_name"` // 下拉列表展示
	Label      string `json:"label"`     // 缩写，如 "ст. л-т Петров И.С."
}
