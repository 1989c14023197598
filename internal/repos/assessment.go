package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/okaforcj/examforge-backend/internal/logger"
	"github.com/okaforcj/examforge-backend/internal/types"
)

type AssessmentResultRepo interface {
	Create(ctx context.Context, tx *gorm.DB, results []*types.AssessmentResult) ([]*types.AssessmentResult, error)
	// ListRecentByUser returns the newest results first, at most limit rows.
	ListRecentByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.AssessmentResult, error)
}

type assessmentResultRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssessmentResultRepo(db *gorm.DB, baseLog *logger.Logger) AssessmentResultRepo {
	repoLog := baseLog.With("repo", "AssessmentResultRepo")
	return &assessmentResultRepo{db: db, log: repoLog}
}

func (r *assessmentResultRepo) Create(ctx context.Context, tx *gorm.DB, results []*types.AssessmentResult) ([]*types.AssessmentResult, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(results) == 0 {
		return []*types.AssessmentResult{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *assessmentResultRepo) ListRecentByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.AssessmentResult, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.AssessmentResult
	q := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
