package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nde-labs/campusecho/internal/domain"
	"github.com/nde-labs/campusecho/internal/ports"
)

// SyncAllSources pulls the latest items from every registered provider and
// maps the unseen ones into published official posts. Items whose external id
// already exists are skipped; a provider or store failure aborts the run with
// a SyncError carrying the cause.
func (s *Service) SyncAllSources(ctx context.Context) (SyncResult, error) {
	var result SyncResult
	for _, provider := range s.providers {
		ingested, skipped, err := s.syncProvider(ctx, provider)
		result.Ingested += ingested
		result.Skipped += skipped
		if err != nil {
			return result, &domain.SyncError{Source: provider.SourceName(), Err: err}
		}
	}
	if result.Ingested > 0 {
		s.invalidateFeedCache(ctx)
	}
	return result, nil
}

func (s *Service) syncProvider(ctx context.Context, provider ports.ExternalInformationProvider) (ingested, skipped int, err error) {
	items, err := provider.FetchLatest(ctx)
	if err != nil {
		return 0, 0, err
	}

	for _, item := range items {
		seen, err := s.posts.ExistsByExternalID(ctx, item.ExternalID)
		if err != nil {
			return ingested, skipped, err
		}
		if seen {
			skipped++
			continue
		}

		title := item.Title
		if title == "" {
			title = fmt.Sprintf("Announcement from %s", provider.SourceName())
		}
		post := domain.Post{
			PostID:     uuid.New(),
			AuthorID:   domain.SystemAuthorID,
			Title:      title,
			Content:    item.Content,
			Category:   domain.PostCategoryOfficial,
			Status:     domain.PostStatusPublished,
			Source:     domain.PostSourceExternalOfficial,
			ExternalID: item.ExternalID,
			OriginName: provider.SourceName(),
			Visibility: domain.VisibilityScope{Establishment: provider.TargetEstablishment()},
			CreatedAt:  item.PostedAt,
			UpdatedAt:  s.nowFn(),
		}
		saved, err := s.posts.Save(ctx, post)
		if err != nil {
			return ingested, skipped, &domain.InboundPersistenceError{ExternalID: item.ExternalID, Err: err}
		}
		ingested++

		if s.outbox != nil {
			payload := map[string]any{
				"post_id":     saved.PostID.String(),
				"external_id": item.ExternalID,
				"origin":      provider.SourceName(),
			}
			if err := s.enqueueEvent(ctx, s.outbox, eventPostIngested, saved.PostID.String(), payload, s.nowFn()); err != nil {
				return ingested, skipped, err
			}
		}
	}
	return ingested, skipped, nil
}
