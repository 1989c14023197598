package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/okaforcj/examforge-backend/internal/logger"
	pkgerrors "github.com/okaforcj/examforge-backend/internal/pkg/errors"
	"github.com/okaforcj/examforge-backend/internal/types"
)

type ScheduledSessionRepo interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, sessions []*types.ScheduledSession) ([]*types.ScheduledSession, error)
	ListForUserBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.ScheduledSession, error)
	// UpdateStatus mutates status (and optionally actual duration) of one
	// session; returns pkgerrors.ErrNotFound when no row matched.
	UpdateStatus(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, status string, actualDurationMinutes *int) error
}

type scheduledSessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewScheduledSessionRepo(db *gorm.DB, baseLog *logger.Logger) ScheduledSessionRepo {
	repoLog := baseLog.With("repo", "ScheduledSessionRepo")
	return &scheduledSessionRepo{db: db, log: repoLog}
}

func (r *scheduledSessionRepo) CreateBatch(ctx context.Context, tx *gorm.DB, sessions []*types.ScheduledSession) ([]*types.ScheduledSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(sessions) == 0 {
		return []*types.ScheduledSession{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *scheduledSessionRepo) ListForUserBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.ScheduledSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ScheduledSession
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND scheduled_at >= ? AND scheduled_at < ?", userID, from, to).
		Order("scheduled_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *scheduledSessionRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, status string, actualDurationMinutes *int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	updates := map[string]interface{}{"status": status}
	if actualDurationMinutes != nil {
		updates["actual_duration_minutes"] = *actualDurationMinutes
	}

	res := transaction.WithContext(ctx).
		Model(&types.ScheduledSession{}).
		Where("id = ?", sessionID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrNotFound
	}
	return nil
}
