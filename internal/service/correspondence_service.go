package service

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"

	"corrlog/internal/dto"
	"corrlog/internal/model"
	"corrlog/internal/report"
	"corrlog/internal/repository"
	apperrors "corrlog/pkg/errors"
)

// ── 通信记录模块业务错误 ──

var (
	ErrInvalidDateRange = errors.New("起始日期晚于结束日期")
)

// CorrespondenceService 通信记录业务接口
type CorrespondenceService interface {
	Create(ctx context.Context, req *dto.CreateRecordRequest) (*dto.RecordResponse, error)
	Search(ctx context.Context, req *dto.DateRangeRequest) ([]dto.SearchResultResponse, error)
	Aggregate(ctx context.Context, req *dto.DateRangeRequest) ([]dto.CategoryTotalResponse, error)
}

type correspondenceService struct {
	repo     *repository.Repository
	validate *requestValidator
	logger   *zap.Logger
}

// NewCorrespondenceService 创建 CorrespondenceService 实例
func NewCorrespondenceService(repo *repository.Repository, v *requestValidator, logger *zap.Logger) CorrespondenceService {
	return &correspondenceService{repo: repo, validate: v, logger: logger}
}

// ────────────────────── Create ──────────────────────

// Create 写入一条记录；不检查值班员是否存在
func (s *correspondenceService) Create(ctx context.Context, req *dto.CreateRecordRequest) (*dto.RecordResponse, error) {
	const op = "record.create"

	if err := s.validate.check(op, req); err != nil {
		return nil, err
	}

	// 以下解析在校验通过后不会失败
	date, _ := model.ParseDate(req.Date)
	incoming, _ := parseCount(req.Incoming)
	outgoing, _ := parseCount(req.Outgoing)

	rec := &model.Correspondence{
		Date:        date,
		CorrType:    req.CorrType,
		Urgency:     req.Urgency,
		Incoming:    incoming,
		Outgoing:    outgoing,
		Period:      req.Period,
		DutyOfficer: req.OfficerID,
	}

	if err := s.repo.Correspondence.Create(ctx, rec); err != nil {
		s.logger.Error("新增通信记录失败", zap.Int64("officer_id", req.OfficerID), zap.Error(err))
		return nil, apperrors.Storage(op, err)
	}

	s.logger.Info("通信记录已添加", zap.Int64("id", rec.ID), zap.String("date", rec.Date.String()))

	return &dto.RecordResponse{
		ID:        rec.ID,
		Date:      rec.Date.String(),
		CorrType:  rec.CorrType,
		Urgency:   rec.Urgency,
		Incoming:  rec.Incoming,
		Outgoing:  rec.Outgoing,
		Period:    rec.Period,
		OfficerID: rec.DutyOfficer,
	}, nil
}

// ────────────────────── Search ──────────────────────

// Search 闭区间检索，结果顺序为存储默认顺序；无匹配时返回空切片
func (s *correspondenceService) Search(ctx context.Context, req *dto.DateRangeRequest) ([]dto.SearchResultResponse, error) {
	const op = "record.search"

	start, end, err := s.parseRange(op, req)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.Correspondence.SearchByDateRange(ctx, start, end)
	if err != nil {
		s.logger.Error("检索通信记录失败", zap.String("from", req.From), zap.String("to", req.To), zap.Error(err))
		return nil, apperrors.Storage(op, err)
	}

	result := make([]dto.SearchResultResponse, 0, len(rows))
	for _, r := range rows {
		result = append(result, dto.SearchResultResponse{
			Date:     r.Date.String(),
			CorrType: r.CorrType,
			Urgency:  r.Urgency,
			Incoming: r.Incoming,
			Outgoing: r.Outgoing,
			Period:   r.Period,
			Officer:  report.OfficerLabel(r.Rank, r.FirstName, r.LastName, r.Patronymic),
		})
	}
	return result, nil
}

// ────────────────────── Aggregate ──────────────────────

// Aggregate 按 (类型, 紧急程度) 汇总，分组按枚举顺序排列
func (s *correspondenceService) Aggregate(ctx context.Context, req *dto.DateRangeRequest) ([]dto.CategoryTotalResponse, error) {
	const op = "record.aggregate"

	start, end, err := s.parseRange(op, req)
	if err != nil {
		return nil, err
	}

	totals, err := s.repo.Correspondence.AggregateByTypeAndUrgency(ctx, start, end)
	if err != nil {
		s.logger.Error("汇总通信记录失败", zap.String("from", req.From), zap.String("to", req.To), zap.Error(err))
		return nil, apperrors.Storage(op, err)
	}
	sortTotals(totals)

	result := make([]dto.CategoryTotalResponse, 0, len(totals))
	for _, t := range totals {
		result = append(result, dto.CategoryTotalResponse{
			CorrType:    t.CorrType,
			Urgency:     t.Urgency,
			IncomingSum: t.IncomingSum,
			OutgoingSum: t.OutgoingSum,
		})
	}
	return result, nil
}

// ── 内部辅助方法 ──

func (s *correspondenceService) parseRange(op string, req *dto.DateRangeRequest) (model.Date, model.Date, error) {
	if err := s.validate.check(op, req); err != nil {
		return model.Date{}, model.Date{}, err
	}
	return parseRange(op, req)
}

// parseRange 解析已通过校验的日期区间并检查先后顺序
func parseRange(op string, req *dto.DateRangeRequest) (model.Date, model.Date, error) {
	start, err := model.ParseDate(req.From)
	if err != nil {
		return model.Date{}, model.Date{}, apperrors.Validation(op, "from", err.Error())
	}
	end, err := model.ParseDate(req.To)
	if err != nil {
		return model.Date{}, model.Date{}, apperrors.Validation(op, "to", err.Error())
	}
	if start.After(end) {
		return model.Date{}, model.Date{}, &apperrors.Error{
			Kind: apperrors.ErrValidation, Op: op, Field: "from", Err: ErrInvalidDateRange,
		}
	}
	return start, end, nil
}

// sortTotals 先按通信类型、再按紧急程度的枚举顺序排列；未知取值排在最后
func sortTotals(totals []model.CategoryTotal) {
	rank := func(values []string, v string) int {
		if i := model.IndexOf(values, v); i >= 0 {
			return i
		}
		return len(values)
	}
	sort.SliceStable(totals, func(i, j int) bool {
		a, b := totals[i], totals[j]
		if ra, rb := rank(model.CorrTypes, a.CorrType), rank(model.CorrTypes, b.CorrType); ra != rb {
			return ra < rb
		}
		if a.CorrType != b.CorrType {
			return a.CorrType < b.CorrType
		}
		if ra, rb := rank(model.UrgencyLevels, a.Urgency), rank(model.UrgencyLevels, b.Urgency); ra != rb {
			return ra < rb
		}
		return a.Urgency < b.Urgency
	})
}
