package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/okaforcj/examforge-backend/internal/logger"
	"github.com/okaforcj/examforge-backend/internal/types"
)

type AvailabilityRepo interface {
	GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.AvailabilitySlot, error)
	// ReplaceForUser swaps the user's entire slot set in one transaction so a
	// concurrent reader never observes a half-replaced (or empty) set.
	ReplaceForUser(ctx context.Context, userID uuid.UUID, slots []*types.AvailabilitySlot) ([]*types.AvailabilitySlot, error)
}

type availabilityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAvailabilityRepo(db *gorm.DB, baseLog *logger.Logger) AvailabilityRepo {
	repoLog := baseLog.With("repo", "AvailabilityRepo")
	return &availabilityRepo{db: db, log: repoLog}
}

func (r *availabilityRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.AvailabilitySlot, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.AvailabilitySlot
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("day_of_week ASC, start_time ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *availabilityRepo) ReplaceForUser(ctx context.Context, userID uuid.UUID, slots []*types.AvailabilitySlot) ([]*types.AvailabilitySlot, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&types.AvailabilitySlot{}).Error; err != nil {
			return err
		}
		if len(slots) == 0 {
			return nil
		}
		return tx.Create(&slots).Error
	})
	if err != nil {
		return nil, err
	}
	return slots, nil
}
