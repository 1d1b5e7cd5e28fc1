package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type ValidationType string

const (
	ValidationTypeConfirm ValidationType = "CONFIRM" // the information is true
	ValidationTypeRefute  ValidationType = "REFUTE"  // the information is false
)

func IsValidValidationType(v string) bool {
	switch ValidationType(strings.ToUpper(strings.TrimSpace(v))) {
	case ValidationTypeConfirm, ValidationTypeRefute:
		return true
	default:
		return false
	}
}

// Validation is one user's vote on one post. The (validator, post) pair is
// unique and the validator is never the post's author.
type Validation struct {
	ValidationID uuid.UUID
	PostID       uuid.UUID
	ValidatorID  uuid.UUID
	Type         ValidationType
	CreatedAt    time.Time
}

// ImpactForVote maps a vote type to the reputation impact on the post's
// author. Applied on every vote, not only at threshold crossings.
func ImpactForVote(t ValidationType) TrustImpact {
	if t == ValidationTypeConfirm {
		return TrustImpactPositiveValidation
	}
	return TrustImpactReportConfirmed
}
