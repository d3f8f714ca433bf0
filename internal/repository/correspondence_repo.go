package repository

import (
	"context"

	"gorm.io/gorm"

	"corrlog/internal/model"
)

// CorrespondenceRepository 通信记录数据访问接口
type CorrespondenceRepository interface {
	Create(ctx context.Context, rec *model.Correspondence) error
	SearchByDateRange(ctx context.Context, start, end model.Date) ([]model.SearchRow, error)
	AggregateByTypeAndUrgency(ctx context.Context, start, end model.Date) ([]model.CategoryTotal, error)
}

type correspondenceRepo struct {
	db *gorm.DB
}

// NewCorrespondenceRepo 创建 CorrespondenceRepository 实例
func NewCorrespondenceRepo(db *gorm.DB) CorrespondenceRepository {
	return &correspondenceRepo{db: db}
}

func (r *correspondenceRepo) Create(ctx context.Context, rec *model.Correspondence) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

// inRange 检索与汇总共用的 FROM / JOIN / WHERE，保证两者覆盖完全相同的记录集
// 闭区间，按日历日期比较；孤儿记录（值班员已删除）被内连接排除
func (r *correspondenceRepo) inRange(ctx context.Context, start, end model.Date) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("correspondence AS c").
		Joins("JOIN duty_dus d ON c.duty_dus_id = d.id").
		Where("date(c.date) BETWEEN date(?) AND date(?)", start, end)
}

// 旧库中 incoming / outgoing 可能为 NULL 或非数字文本，统一按整数读取，无法解析时记为 0
const (
	incomingExpr = "COALESCE(CAST(c.incoming AS INTEGER), 0)"
	outgoingExpr = "COALESCE(CAST(c.outgoing AS INTEGER), 0)"
)

// SearchByDateRange 返回区间内的记录及其值班员信息
// 不指定 ORDER BY：顺序为存储默认顺序
func (r *correspondenceRepo) SearchByDateRange(ctx context.Context, start, end model.Date) ([]model.SearchRow, error) {
	rows := make([]model.SearchRow, 0)
	err := r.inRange(ctx, start, end).
		Select("c.date, c.corr_type, c.urgency, " +
			incomingExpr + " AS incoming, " + outgoingExpr + " AS outgoing, c.period, " +
			"d.rank, d.first_name, d.last_name, d.last_last_name").
		Scan(&rows).Error
	return rows, err
}

// AggregateByTypeAndUrgency 按 (类型, 紧急程度) 汇总收发数量，无记录的分组不返回
func (r *correspondenceRepo) AggregateByTypeAndUrgency(ctx context.Context, start, end model.Date) ([]model.CategoryTotal, error) {
	totals := make([]model.CategoryTotal, 0)
	err := r.inRange(ctx, start, end).
		Select("c.corr_type, c.urgency, " +
			"SUM(" + incomingExpr + ") AS incoming_sum, SUM(" + outgoingExpr + ") AS outgoing_sum").
		Group("c.corr_type, c.urgency").
		Scan(&totals).Error
	return totals, err
}
