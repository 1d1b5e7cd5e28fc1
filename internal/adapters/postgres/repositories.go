package postgres

import (
	"context"

	"github.com/nde-labs/campusecho/internal/ports"
	"gorm.io/gorm"
)

func NewStores(db *gorm.DB) ports.Stores {
	return ports.Stores{
		Users:       &userRepository{db: db},
		Posts:       &postRepository{db: db},
		Reports:     &reportRepository{db: db},
		Validations: &validationRepository{db: db},
		Outbox:      &outboxRepository{db: db},
	}
}

type unitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) ports.UnitOfWork {
	return &unitOfWork{db: db}
}

// Within runs fn inside one database transaction with transaction-scoped
// store views, so multi-entity moderation sequences commit or roll back as a
// unit.
func (u *unitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx ports.Stores) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewStores(tx))
	})
}
