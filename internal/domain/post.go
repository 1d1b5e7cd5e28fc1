package domain

import (
	"time"

	"github.com/google/uuid"
)

type PostStatus string

const (
	PostStatusPending   PostStatus = "PENDING"   // held for peer validation
	PostStatusPublished PostStatus = "PUBLISHED" // visible in the public feed
	PostStatusSuspect   PostStatus = "SUSPECT"   // flagged by refute consensus
	PostStatusArchived  PostStatus = "ARCHIVED"  // quarantined, out of the feed
)

type PostCategory string

const (
	PostCategoryInfo     PostCategory = "INFO"
	PostCategoryAlert    PostCategory = "ALERT"
	PostCategoryEvent    PostCategory = "EVENT"
	PostCategoryOfficial PostCategory = "OFFICIAL"
)

type PostSource string

const (
	PostSourceCommunity        PostSource = "COMMUNITY"
	PostSourceExternalOfficial PostSource = "EXTERNAL_OFFICIAL"
)

// SystemAuthorID owns posts ingested from official external sources.
var SystemAuthorID = uuid.Nil

// VisibilityScope restricts who sees a post. Both fields nil means the post is
// university-wide.
type VisibilityScope struct {
	Establishment *Establishment
	Department    *Department
}

func (s VisibilityScope) IsUniversityWide() bool {
	return s.Establishment == nil && s.Department == nil
}

type Post struct {
	PostID     uuid.UUID
	AuthorID   uuid.UUID
	Title      string
	Content    string
	Category   PostCategory
	Status     PostStatus
	Source     PostSource
	ExternalID string
	OriginName string
	Visibility VisibilityScope
	// Version is the optimistic-concurrency token for status writes.
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Consensus thresholds driving automatic status transitions.
const (
	PublicationThreshold    = 5 // confirms promoting a PENDING post
	SuspicionThreshold      = 3 // refutes demoting any live post
	AutoQuarantineThreshold = 5 // reports forcing archival
)

// DeriveStatus computes the status a post should hold given its vote totals.
// ARCHIVED is sticky: only a moderator action leaves it, never a vote. The
// refute check is evaluated first, so a post with both >=3 refutes and >=5
// confirms comes out SUSPECT.
func DeriveStatus(current PostStatus, confirms, refutes int) PostStatus {
	if current == PostStatusArchived {
		return current
	}
	switch {
	case refutes >= SuspicionThreshold:
		return PostStatusSuspect
	case confirms >= PublicationThreshold && current == PostStatusPending:
		return PostStatusPublished
	default:
		return current
	}
}
