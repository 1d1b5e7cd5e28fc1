package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleStudent  Role = "STUDENT"
	RoleDelegate Role = "DELEGATE"
	RoleAdmin    Role = "ADMIN"
)

type User struct {
	UserID     uuid.UUID
	Matricule  string
	FullName   string
	Department Department
	Level      string
	Role       Role
	TrustScore TrustScore
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CanPublishDirectly reports whether the user's posts skip the PENDING queue.
// Delegates and admins are trusted sources; ordinary students earn it through
// a high reliability score.
func (u User) CanPublishDirectly() bool {
	return u.Role == RoleAdmin || u.Role == RoleDelegate || u.TrustScore.IsHighReliability()
}

// WithTrustAdjusted returns a copy of the user with the impact applied.
func (u User) WithTrustAdjusted(impact TrustImpact, now time.Time) User {
	u.TrustScore = u.TrustScore.Adjust(impact)
	u.UpdatedAt = now
	return u
}
