package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/nde-labs/campusecho/internal/domain"
	"gorm.io/gorm"
)

type validationRepository struct {
	db *gorm.DB
}

func (r *validationRepository) Save(ctx context.Context, validation domain.Validation) (domain.Validation, error) {
	rec := validationModel{
		ValidationID: validation.ValidationID,
		PostID:       validation.PostID,
		ValidatorID:  validation.ValidatorID,
		Type:         string(validation.Type),
		CreatedAt:    validation.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.Validation{}, domain.ErrDoubleValidation
		}
		return domain.Validation{}, err
	}
	return toDomainValidation(rec), nil
}

func (r *validationRepository) HasVoted(ctx context.Context, validatorID, postID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&validationModel{}).
		Where("validator_id = ? AND post_id = ?", validatorID, postID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *validationRepository) CountByType(ctx context.Context, postID uuid.UUID, t domain.ValidationType) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&validationModel{}).
		Where("post_id = ? AND type = ?", postID, string(t)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}
