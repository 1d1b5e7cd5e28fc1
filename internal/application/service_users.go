package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nde-labs/campusecho/internal/domain"
	"github.com/nde-labs/campusecho/internal/ports"
)

func (s *Service) RegisterUser(ctx context.Context, req RegisterUserRequest) (UserResponse, error) {
	matricule := strings.TrimSpace(req.Matricule)
	fullName := strings.TrimSpace(req.FullName)
	if matricule == "" || fullName == "" {
		return UserResponse{}, domain.ErrInvalidInput
	}
	if !domain.IsValidDepartment(req.Department) {
		return UserResponse{}, domain.ErrInvalidInput
	}

	if _, err := s.users.FindByMatricule(ctx, matricule); err == nil {
		return UserResponse{}, domain.ErrUserAlreadyExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return UserResponse{}, err
	}

	now := s.nowFn()
	user := domain.User{
		UserID:     uuid.New(),
		Matricule:  matricule,
		FullName:   fullName,
		Department: domain.Department(req.Department),
		Level:      strings.TrimSpace(req.Level),
		Role:       domain.RoleStudent,
		TrustScore: domain.TrustScore(domain.TrustScoreDefault),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	saved, err := s.users.Save(ctx, user)
	if err != nil {
		return UserResponse{}, err
	}
	return toUserResponse(saved), nil
}

// PromoteToDelegate is admin-only. The promoted student becomes a trusted
// source: role DELEGATE, trust score forced to the maximum.
func (s *Service) PromoteToDelegate(ctx context.Context, adminID, targetID uuid.UUID) (UserResponse, error) {
	admin, err := s.users.FindByID(ctx, adminID)
	if err != nil {
		return UserResponse{}, err
	}
	if admin.Role != domain.RoleAdmin {
		return UserResponse{}, domain.ErrForbidden
	}

	student, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return UserResponse{}, err
	}
	student.Role = domain.RoleDelegate
	student.TrustScore = domain.TrustScore(domain.TrustScoreMax)
	student.UpdatedAt = s.nowFn()

	saved, err := s.users.Save(ctx, student)
	if err != nil {
		return UserResponse{}, err
	}
	return toUserResponse(saved), nil
}

func (s *Service) GetUserProfile(ctx context.Context, userID uuid.UUID) (UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return UserResponse{}, err
	}
	return toUserResponse(user), nil
}

// adjustUserTrust applies one reputation impact to a user through the given
// store view, so it can run both standalone and inside a unit of work. The
// clamp lives in the domain; this only orchestrates load, apply, save and the
// audit event.
func (s *Service) adjustUserTrust(ctx context.Context, users ports.UserDirectory, outbox ports.OutboxRepository, userID uuid.UUID, impact domain.TrustImpact, now time.Time) (domain.User, error) {
	user, err := users.FindByID(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}
	updated := user.WithTrustAdjusted(impact, now)
	saved, err := users.Save(ctx, updated)
	if err != nil {
		return domain.User{}, err
	}
	if outbox != nil {
		payload := map[string]any{
			"user_id":   userID.String(),
			"impact":    string(impact),
			"old_score": user.TrustScore.Value(),
			"new_score": saved.TrustScore.Value(),
		}
		if err := s.enqueueEvent(ctx, outbox, eventTrustAdjusted, userID.String(), payload, now); err != nil {
			return domain.User{}, err
		}
	}
	return saved, nil
}
