package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nde-labs/campusecho/internal/domain"
	"github.com/nde-labs/campusecho/internal/ports"
)

func TestSyncIngestsAsSystemOfficialPosts(t *testing.T) {
	t.Parallel()
	est := domain.EstablishmentFS
	provider := &fakeProvider{
		name:          "fs-bulletin",
		establishment: &est,
		items: []ports.InboundItem{
			{ExternalID: "fs-001", Title: "Scholarship deadline", Content: "Apply before Friday.", PostedAt: time.Now()},
			{ExternalID: "fs-002", Content: "Untitled notice body.", PostedAt: time.Now()},
		},
	}
	f := newFixture(provider)

	result, err := f.service.SyncAllSources(context.Background())
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if result.Ingested != 2 || result.Skipped != 0 {
		t.Fatalf("result = %+v, want 2 ingested", result)
	}

	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	for _, p := range f.st.posts {
		if p.AuthorID != domain.SystemAuthorID {
			t.Fatalf("ingested post author = %s, want system author", p.AuthorID)
		}
		if p.Category != domain.PostCategoryOfficial || p.Status != domain.PostStatusPublished {
			t.Fatalf("ingested post category/status = %s/%s", p.Category, p.Status)
		}
		if p.Source != domain.PostSourceExternalOfficial {
			t.Fatalf("ingested post source = %s", p.Source)
		}
		if p.Visibility.Establishment == nil || *p.Visibility.Establishment != est {
			t.Fatalf("ingested post not scoped to provider establishment")
		}
		if p.ExternalID == "fs-002" && p.Title != "Announcement from fs-bulletin" {
			t.Fatalf("untitled item got title %q", p.Title)
		}
	}
}

func TestSyncSkipsSeenExternalIDs(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{
		name: "rectorat",
		items: []ports.InboundItem{
			{ExternalID: "r-100", Title: "Holiday notice", Content: "Campus closed.", PostedAt: time.Now()},
		},
	}
	f := newFixture(provider)

	first, err := f.service.SyncAllSources(context.Background())
	if err != nil {
		t.Fatalf("first sync: %v", err)
	}
	if first.Ingested != 1 {
		t.Fatalf("first sync ingested %d, want 1", first.Ingested)
	}

	second, err := f.service.SyncAllSources(context.Background())
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if second.Ingested != 0 || second.Skipped != 1 {
		t.Fatalf("second sync = %+v, want 0 ingested / 1 skipped", second)
	}
	f.st.mu.Lock()
	count := len(f.st.posts)
	f.st.mu.Unlock()
	if count != 1 {
		t.Fatalf("stored %d posts, want 1", count)
	}
}

func TestSyncFailureNamesTheSource(t *testing.T) {
	t.Parallel()
	boom := errors.New("connection refused")
	healthy := &fakeProvider{
		name:  "rectorat",
		items: []ports.InboundItem{{ExternalID: "r-1", Title: "OK", Content: "Fine.", PostedAt: time.Now()}},
	}
	broken := &fakeProvider{name: "fs-bulletin", err: boom}
	f := newFixture(healthy, broken)

	result, err := f.service.SyncAllSources(context.Background())
	var syncErr *domain.SyncError
	if !errors.As(err, &syncErr) {
		t.Fatalf("expected SyncError, got %v", err)
	}
	if syncErr.Source != "fs-bulletin" {
		t.Fatalf("failing source = %q, want fs-bulletin", syncErr.Source)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("cause must unwrap to the provider error, got %v", err)
	}
	// The healthy provider ran before the failure and its item sticks.
	if result.Ingested != 1 {
		t.Fatalf("partial result ingested = %d, want 1", result.Ingested)
	}
}

func TestSyncEmitsIngestionEvents(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{
		name:  "rectorat",
		items: []ports.InboundItem{{ExternalID: "r-1", Title: "Notice", Content: "Body.", PostedAt: time.Now()}},
	}
	f := newFixture(provider)

	if _, err := f.service.SyncAllSources(context.Background()); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if events := f.st.eventsOfType("post.ingested"); len(events) != 1 {
		t.Fatalf("expected one ingestion event, got %d", len(events))
	}
}
