package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"corrlog/internal/dto"
	"corrlog/internal/model"
	"corrlog/internal/report"
	"corrlog/internal/repository"
	apperrors "corrlog/pkg/errors"
)

// ── 值班员模块业务错误 ──

var (
	ErrOfficerHasRecords  = errors.New("值班员仍有通信记录，无法删除")
	ErrDeleteNotConfirmed = errors.New("删除操作未经确认")
)

// OfficerService 值班员业务接口
type OfficerService interface {
	Create(ctx context.Context, req *dto.CreateOfficerRequest) (*dto.OfficerResponse, error)
	List(ctx context.Context) ([]dto.OfficerResponse, error)
	Delete(ctx context.Context, req *dto.DeleteOfficerRequest) error
}

type officerService struct {
	repo              *repository.Repository
	validate          *requestValidator
	allowOrphanDelete bool
	logger            *zap.Logger
}

// NewOfficerService 创建 OfficerService 实例
func NewOfficerService(repo *repository.Repository, v *requestValidator, allowOrphanDelete bool, logger *zap.Logger) OfficerService {
	return &officerService{repo: repo, validate: v, allowOrphanDelete: allowOrphanDelete, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *officerService) Create(ctx context.Context, req *dto.CreateOfficerRequest) (*dto.OfficerResponse, error) {
	if err := s.validate.check("officer.create", req); err != nil {
		return nil, err
	}

	officer := &model.DutyOfficer{
		Rank:       req.Rank,
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		Patronymic: strings.TrimSpace(req.Patronymic),
	}

	if err := s.repo.Officer.Create(ctx, officer); err != nil {
		s.logger.Error("新增值班员失败", zap.Error(err))
		return nil, apperrors.Storage("officer.create", err)
	}

	s.logger.Info("值班员已添加", zap.Int64("id", officer.ID))
	return toOfficerResponse(officer), nil
}

// ────────────────────── List ──────────────────────

func (s *officerService) List(ctx context.Context) ([]dto.OfficerResponse, error) {
	officers, err := s.repo.Officer.List(ctx)
	if err != nil {
		s.logger.Error("查询值班员列表失败", zap.Error(err))
		return nil, apperrors.Storage("officer.list", err)
	}

	result := make([]dto.OfficerResponse, 0, len(officers))
	for i := range officers {
		result = append(result, *toOfficerResponse(&officers[i]))
	}
	return result, nil
}

// ────────────────────── Delete ──────────────────────

// Delete 删除值班员；id 不存在时视为成功
// 默认拒绝删除仍被通信记录引用的值班员，allowOrphanDelete 开启时放行
func (s *officerService) Delete(ctx context.Context, req *dto.DeleteOfficerRequest) error {
	const op = "officer.delete"

	if !req.Confirmed {
		return &apperrors.Error{Kind: apperrors.ErrValidation, Op: op, Err: ErrDeleteNotConfirmed}
	}

	if _, err := s.repo.Officer.GetByID(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Info("值班员不存在，忽略删除", zap.Int64("id", req.ID))
			return nil
		}
		s.logger.Error("查询值班员失败", zap.Int64("id", req.ID), zap.Error(err))
		return apperrors.Storage(op, err)
	}

	count, err := s.repo.Officer.CountRecords(ctx, req.ID)
	if err != nil {
		s.logger.Error("查询值班员记录数失败", zap.Int64("id", req.ID), zap.Error(err))
		return apperrors.Storage(op, err)
	}
	if count > 0 {
		if !s.allowOrphanDelete {
			return apperrors.Conflict(op, ErrOfficerHasRecords)
		}
		s.logger.Warn("删除仍有记录的值班员，相关记录将不再出现在查询结果中",
			zap.Int64("id", req.ID), zap.Int64("records", count))
	}

	if _, err := s.repo.Officer.Delete(ctx, req.ID); err != nil {
		s.logger.Error("删除值班员失败", zap.Int64("id", req.ID), zap.Error(err))
		return apperrors.Storage(op, err)
	}

	s.logger.Info("值班员已删除", zap.Int64("id", req.ID))
	return nil
}

// ── 内部辅助方法 ──

func toOfficerResponse(o *model.DutyOfficer) *dto.OfficerResponse {
	return &dto.OfficerResponse{
		ID:         o.ID,
		Rank:       o.Rank,
		FirstName:  o.FirstName,
		LastName:   o.LastName,
		Patronymic: o.Patronymic,
		FullName:   o.FullName(),
		Label:      report.OfficerLabel(o.Rank, o.FirstName, o.LastName, o.Patronymic),
	}
}
