package dto

// ── 导出模块 DTO ──

// ExportRequest 导出 PDF 请求
type ExportRequest struct {
	DateRangeRequest
	ShowRows   bool   `json:"show_rows"`                     // 是否输出检索明细
	IssuedBy   string `json:"issued_by"   validate:"notblank"` // 原样写入报表页脚
	OutputPath string `json:"output_path" validate:"notblank"`
}

// ExportResponse 导出结果
type ExportResponse struct {
	Path   string `json:"path"`
	Rows   int    `json:"rows"`
	Groups int    `json:"groups"`
}
