package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/nde-labs/campusecho/internal/domain"
)

type UserDirectory interface {
	FindByID(ctx context.Context, userID uuid.UUID) (domain.User, error)
	FindByMatricule(ctx context.Context, matricule string) (domain.User, error)
	Save(ctx context.Context, user domain.User) (domain.User, error)
}

type PostStore interface {
	FindByID(ctx context.Context, postID uuid.UUID) (domain.Post, error)
	Save(ctx context.Context, post domain.Post) (domain.Post, error)
	Delete(ctx context.Context, postID uuid.UUID) error
	// UpdateStatus writes the status unconditionally. Reserved for moderator
	// actions, which outrank any concurrent recompute.
	UpdateStatus(ctx context.Context, postID uuid.UUID, status domain.PostStatus) error
	// UpdateStatusIfVersion writes the status only when the stored row still
	// carries fromVersion, bumping the version on success. Returns
	// domain.ErrVersionConflict when a concurrent writer got there first.
	UpdateStatusIfVersion(ctx context.Context, postID uuid.UUID, fromVersion int, status domain.PostStatus) error
	ExistsByExternalID(ctx context.Context, externalID string) (bool, error)
	ListPublished(ctx context.Context, limit int) ([]domain.Post, error)
}

type ReportStore interface {
	FindByID(ctx context.Context, reportID uuid.UUID) (domain.Report, error)
	Save(ctx context.Context, report domain.Report) (domain.Report, error)
	UpdateStatus(ctx context.Context, reportID uuid.UUID, status domain.ReportStatus) error
	CountForPost(ctx context.Context, postID uuid.UUID) (int, error)
	ExistsByReporterAndPost(ctx context.Context, reporterID, postID uuid.UUID) (bool, error)
}

type ValidationStore interface {
	Save(ctx context.Context, validation domain.Validation) (domain.Validation, error)
	HasVoted(ctx context.Context, validatorID, postID uuid.UUID) (bool, error)
	CountByType(ctx context.Context, postID uuid.UUID, t domain.ValidationType) (int, error)
}

// Stores bundles the collaborator contracts visible inside one unit of work.
type Stores struct {
	Users       UserDirectory
	Posts       PostStore
	Reports     ReportStore
	Validations ValidationStore
	Outbox      OutboxRepository
}

// UnitOfWork runs fn atomically with respect to crash failure: either every
// store write inside fn commits, or none does. The moderation workflows that
// pair a trust adjustment with a post mutation depend on it.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Stores) error) error
}
