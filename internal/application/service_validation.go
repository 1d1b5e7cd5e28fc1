package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nde-labs/campusecho/internal/domain"
	"github.com/nde-labs/campusecho/internal/ports"
)

// CastVote records one peer-validation vote, applies its reputation impact to
// the post's author and re-derives the post status from the new totals.
// The vote row and the trust adjustment commit as one unit, so an abandoned
// request never leaves a vote counted without its reputation effect.
func (s *Service) CastVote(ctx context.Context, validatorID, postID uuid.UUID, req CastVoteRequest) (ValidationResponse, error) {
	raw := strings.ToUpper(strings.TrimSpace(req.Type))
	if !domain.IsValidValidationType(raw) {
		return ValidationResponse{}, domain.ErrInvalidInput
	}
	voteType := domain.ValidationType(raw)

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return ValidationResponse{}, err
	}
	if post.AuthorID == validatorID {
		return ValidationResponse{}, domain.ErrSelfValidation
	}
	voted, err := s.validations.HasVoted(ctx, validatorID, postID)
	if err != nil {
		return ValidationResponse{}, err
	}
	if voted {
		return ValidationResponse{}, domain.ErrDoubleValidation
	}

	now := s.nowFn()
	validation := domain.Validation{
		ValidationID: uuid.New(),
		PostID:       postID,
		ValidatorID:  validatorID,
		Type:         voteType,
		CreatedAt:    now,
	}
	err = s.uow.Within(ctx, func(ctx context.Context, tx ports.Stores) error {
		if _, err := tx.Validations.Save(ctx, validation); err != nil {
			return err
		}
		// Ingested posts belong to the system author, which has no user row
		// and no reputation to move.
		if post.AuthorID == domain.SystemAuthorID {
			return nil
		}
		// Every vote moves the author's reputation, not only threshold
		// crossings.
		_, err := s.adjustUserTrust(ctx, tx.Users, tx.Outbox, post.AuthorID, domain.ImpactForVote(voteType), now)
		return err
	})
	if err != nil {
		// The unique (validator, post) index closes the check-then-insert race
		// between two concurrent votes by the same user.
		if errors.Is(err, domain.ErrDoubleValidation) {
			return ValidationResponse{}, domain.ErrDoubleValidation
		}
		return ValidationResponse{}, fmt.Errorf("record vote: %w", err)
	}

	status, err := s.recomputePostStatus(ctx, postID)
	if err != nil {
		return ValidationResponse{}, err
	}
	return ValidationResponse{
		ValidationID: validation.ValidationID.String(),
		PostID:       postID.String(),
		Type:         string(voteType),
		PostStatus:   string(status),
	}, nil
}

// recomputePostStatus runs the shared read-recompute-write step. Concurrent
// recomputes race on the post's version token; a lost race re-reads the row
// and the fresh vote totals, so no outcome is silently dropped.
func (s *Service) recomputePostStatus(ctx context.Context, postID uuid.UUID) (domain.PostStatus, error) {
	for attempt := 0; attempt < s.cfg.StatusWriteRetries; attempt++ {
		post, err := s.posts.FindByID(ctx, postID)
		if err != nil {
			if errors.Is(err, domain.ErrPostNotFound) {
				// A moderator removed the post mid-flight; nothing left to derive.
				return "", nil
			}
			return "", err
		}
		// Archival is terminal until a moderator acts.
		if post.Status == domain.PostStatusArchived {
			return post.Status, nil
		}

		confirms, err := s.validations.CountByType(ctx, postID, domain.ValidationTypeConfirm)
		if err != nil {
			return "", err
		}
		refutes, err := s.validations.CountByType(ctx, postID, domain.ValidationTypeRefute)
		if err != nil {
			return "", err
		}

		derived := domain.DeriveStatus(post.Status, confirms, refutes)
		if derived == post.Status {
			return derived, nil
		}

		err = s.posts.UpdateStatusIfVersion(ctx, postID, post.Version, derived)
		if errors.Is(err, domain.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return "", err
		}
		s.invalidateFeedCache(ctx)
		if s.outbox != nil {
			payload := map[string]any{
				"post_id":  postID.String(),
				"from":     string(post.Status),
				"to":       string(derived),
				"confirms": confirms,
				"refutes":  refutes,
			}
			if err := s.enqueueEvent(ctx, s.outbox, eventPostStatusChanged, postID.String(), payload, s.nowFn()); err != nil {
				return "", err
			}
		}
		return derived, nil
	}
	return "", fmt.Errorf("recompute status for post %s: %w", postID, domain.ErrVersionConflict)
}
