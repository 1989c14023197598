package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/okaforcj/examforge-backend/internal/logger"
	"github.com/okaforcj/examforge-backend/internal/types"
)

type PathRunRepo interface {
	Create(ctx context.Context, tx *gorm.DB, runs []*types.PathRun) ([]*types.PathRun, error)
	ListRecentByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.PathRun, error)
}

type pathRunRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPathRunRepo(db *gorm.DB, baseLog *logger.Logger) PathRunRepo {
	repoLog := baseLog.With("repo", "PathRunRepo")
	return &pathRunRepo{db: db, log: repoLog}
}

func (r *pathRunRepo) Create(ctx context.Context, tx *gorm.DB, runs []*types.PathRun) ([]*types.PathRun, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(runs) == 0 {
		return []*types.PathRun{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

func (r *pathRunRepo) ListRecentByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.PathRun, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.PathRun
	q := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
