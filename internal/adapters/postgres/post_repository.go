package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nde-labs/campusecho/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type postRepository struct {
	db *gorm.DB
}

func (r *postRepository) FindByID(ctx context.Context, postID uuid.UUID) (domain.Post, error) {
	var rec postModel
	if err := r.db.WithContext(ctx).Where("post_id = ?", postID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Post{}, domain.ErrPostNotFound
		}
		return domain.Post{}, err
	}
	return toDomainPost(rec), nil
}

func (r *postRepository) Save(ctx context.Context, post domain.Post) (domain.Post, error) {
	rec := toPostModel(post)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}},
		UpdateAll: true,
	}).Create(&rec).Error
	if err != nil {
		return domain.Post{}, err
	}
	return toDomainPost(rec), nil
}

func (r *postRepository) Delete(ctx context.Context, postID uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&postModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *postRepository) UpdateStatus(ctx context.Context, postID uuid.UUID, status domain.PostStatus) error {
	res := r.db.WithContext(ctx).Model(&postModel{}).Where("post_id = ?", postID).Updates(map[string]any{
		"status":     string(status),
		"version":    gorm.Expr("version + 1"),
		"updated_at": time.Now().UTC(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// UpdateStatusIfVersion is the compare-and-swap behind the vote recompute. The
// version predicate makes two racing writers serialize: the loser sees zero
// rows affected and reports a conflict instead of overwriting blind.
func (r *postRepository) UpdateStatusIfVersion(ctx context.Context, postID uuid.UUID, fromVersion int, status domain.PostStatus) error {
	res := r.db.WithContext(ctx).Model(&postModel{}).
		Where("post_id = ? AND version = ?", postID, fromVersion).
		Updates(map[string]any{
			"status":     string(status),
			"version":    fromVersion + 1,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&postModel{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrPostNotFound
		}
		return domain.ErrVersionConflict
	}
	return nil
}

func (r *postRepository) ExistsByExternalID(ctx context.Context, externalID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&postModel{}).Where("external_id = ?", externalID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *postRepository) ListPublished(ctx context.Context, limit int) ([]domain.Post, error) {
	var rows []postModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(domain.PostStatusPublished)).
		Order("created_at desc").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Post, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainPost(row))
	}
	return out, nil
}
