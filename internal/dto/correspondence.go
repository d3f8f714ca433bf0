package dto

// ── 通信记录模块 DTO ──

// CreateRecordRequest 新增通信记录请求
// 收发数量按界面输入的文本接收，由服务层解析
type CreateRecordRequest struct {
	Date      string `json:"date"       validate:"notblank,datetime=2006-01-02"`
	CorrType  string `json:"corr_type"  validate:"notblank,corr_type"`
	Urgency   string `json:"urgency"    validate:"notblank,urgency"`
	Incoming  string `json:"incoming"   validate:"notblank,count"`
	Outgoing  string `json:"outgoing"   validate:"notblank,count"`
	Period    string `json:"period"     validate:"notblank,period"`
	OfficerID int64  `json:"officer_id" validate:"gt=0"`
}

// RecordResponse 通信记录响应
type RecordResponse struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	CorrType  string `json:"corr_type"`
	Urgency   string `json:"urgency"`
	Incoming  int    `json:"incoming"`
	Outgoing  int    `json:"outgoing"`
	Period    string `json:"period"`
	OfficerID int64  `json:"officer_id"`
}

// DateRangeRequest 日期区间（闭区间）
type DateRangeRequest struct {
	From string `json:"from" validate:"notblank,datetime=2006-01-02"`
	To   string `json:"to"   validate:"notblank,datetime=2006-01-02"`
}

// SearchResultResponse 检索结果行
type SearchResultResponse struct {
	Date     string `json:"date"`
	CorrType string `json:"corr_type"`
	Urgency  string `json:"urgency"`
	Incoming int    `json:"incoming"`
	Outgoing int    `json:"outgoing"`
	Period   string `json:"period"`
	Officer  string `json:"officer"` // 缩写
}

// CategoryTotalResponse 分类汇总行
type CategoryTotalResponse struct {
	CorrType    string `json:"corr_type"`
	Urgency     string `json:"urgency"`
	IncomingSum int64  `json:"incoming_sum"`
	OutgoingSum int64  `json:"outgoing_sum"`
}
