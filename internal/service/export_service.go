package service

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"corrlog/internal/dto"
	"corrlog/internal/model"
	"corrlog/internal/report"
	"corrlog/internal/repository"
	apperrors "corrlog/pkg/errors"
)

// DocumentRenderer 报表渲染接口，由 report.Renderer 实现
type DocumentRenderer interface {
	Render(w io.Writer, doc *report.Document) error
}

// ExportService 导出业务接口
//
// 设计说明：
//   - 仅支持 PDF 格式
//   - 检索与汇总使用同一日期区间，汇总始终输出，明细由 ShowRows 控制
//   - 先写入同目录临时文件再改名，失败时不留下残缺文件，已有的同名文件保持原样
type ExportService interface {
	Export(ctx context.Context, req *dto.ExportRequest) (*dto.ExportResponse, error)
}

type exportService struct {
	repo     *repository.Repository
	validate *requestValidator
	renderer DocumentRenderer
	now      func() time.Time
	logger   *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(
	repo *repository.Repository,
	v *requestValidator,
	renderer DocumentRenderer,
	now func() time.Time,
	logger *zap.Logger,
) ExportService {
	return &exportService{repo: repo, validate: v, renderer: renderer, now: now, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// Export 导出检索结果为 PDF
// ═══════════════════════════════════════════════════════════

func (s *exportService) Export(ctx context.Context, req *dto.ExportRequest) (*dto.ExportResponse, error) {
	const op = "export.pdf"

	if err := s.validate.check(op, req); err != nil {
		return nil, err
	}
	start, end, err := parseRange(op, &req.DateRangeRequest)
	if err != nil {
		return nil, err
	}

	// 1. 检索明细（仅在需要展示时查询）
	var rows []model.SearchRow
	if req.ShowRows {
		rows, err = s.repo.Correspondence.SearchByDateRange(ctx, start, end)
		if err != nil {
			s.logger.Error("导出时检索通信记录失败", zap.Error(err))
			return nil, apperrors.Storage(op, err)
		}
	}

	// 2. 分类汇总
	totals, err := s.repo.Correspondence.AggregateByTypeAndUrgency(ctx, start, end)
	if err != nil {
		s.logger.Error("导出时汇总通信记录失败", zap.Error(err))
		return nil, apperrors.Storage(op, err)
	}
	sortTotals(totals)

	// 3. 渲染并写入文件
	doc := &report.Document{
		From:        start,
		To:          end,
		ShowRows:    req.ShowRows,
		Rows:        rows,
		Totals:      totals,
		IssuedBy:    req.IssuedBy,
		GeneratedAt: s.now(),
	}

	path := outputPath(req.OutputPath)
	if err := s.writeFile(op, path, doc); err != nil {
		s.logger.Error("写入 PDF 失败", zap.String("path", path), zap.Error(err))
		return nil, err
	}

	s.logger.Info("PDF 已导出",
		zap.String("path", path),
		zap.Int("rows", len(rows)),
		zap.Int("groups", len(totals)),
	)

	return &dto.ExportResponse{Path: path, Rows: len(rows), Groups: len(totals)}, nil
}

// reportFileMode 导出文件的权限，与 os.Create 在常见 umask 下的结果一致
const reportFileMode os.FileMode = 0o644

// writeFile 渲染到同目录临时文件，成功后改名为目标文件
func (s *exportService) writeFile(op, path string, doc *report.Document) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".corrlog-*.pdf")
	if err != nil {
		return apperrors.IO(op, err)
	}
	tmpName := tmp.Name()

	if err := s.renderer.Render(tmp, doc); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	// CreateTemp 创建的文件为 0600
	if err := tmp.Chmod(reportFileMode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.IO(op, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperrors.IO(op, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return apperrors.IO(op, err)
	}
	return nil
}

// outputPath 缺少 .pdf 扩展名时补全
func outputPath(p string) string {
	p = strings.TrimSpace(p)
	if !strings.EqualFold(filepath.Ext(p), ".pdf") {
		p += ".pdf"
	}
	return p
}
