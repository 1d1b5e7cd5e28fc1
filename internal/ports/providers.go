package ports

import (
	"context"
	"time"

	"github.com/nde-labs/campusecho/internal/domain"
)

// InboundItem is the shape external feed providers hand to the core.
type InboundItem struct {
	ExternalID string
	Title      string
	Content    string
	PostedAt   time.Time
	RawURL     string
}

// ExternalInformationProvider supplies official announcements from a
// third-party source (faculty RSS page, administration bulletin stream).
// The fetch mechanics are the provider's business; the core only maps items
// into posts and skips external ids it has already seen.
type ExternalInformationProvider interface {
	// SourceName is the display name recorded as the post's origin.
	SourceName() string
	// TargetEstablishment scopes ingested posts to one school. Nil means the
	// source speaks for the whole university.
	TargetEstablishment() *domain.Establishment
	FetchLatest(ctx context.Context) ([]InboundItem, error)
}
