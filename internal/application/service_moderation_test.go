package application

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/nde-labs/campusecho/internal/domain"
)

func TestSubmitReportRejectsDuplicate(t *testing.T) {
	t.Parallel()
	f := newFixture()
	author := f.addUser(domain.RoleStudent, 50)
	reporter := f.addUser(domain.RoleStudent, 50)
	post := f.addPost(author.UserID, domain.PostStatusPublished)

	if _, err := f.service.SubmitReport(context.Background(), reporter.UserID, post.PostID, SubmitReportRequest{Reason: "SPAM"}); err != nil {
		t.Fatalf("first report: %v", err)
	}
	_, err := f.service.SubmitReport(context.Background(), reporter.UserID, post.PostID, SubmitReportRequest{Reason: "FAKE_NEWS"})
	if !errors.Is(err, domain.ErrDuplicateReport) {
		t.Fatalf("expected ErrDuplicateReport, got %v", err)
	}
}

func TestSubmitReportInvalidReason(t *testing.T) {
	t.Parallel()
	f := newFixture()
	author := f.addUser(domain.RoleStudent, 50)
	reporter := f.addUser(domain.RoleStudent, 50)
	post := f.addPost(author.UserID, domain.PostStatusPublished)

	_, err := f.service.SubmitReport(context.Background(), reporter.UserID, post.PostID, SubmitReportRequest{Reason: "BORING"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestFifthReportAutoQuarantines(t *testing.T) {
	t.Parallel()
	f := newFixture()
	author := f.addUser(domain.RoleStudent, 50)
	post := f.addPost(author.UserID, domain.PostStatusPublished)

	for i := 0; i < 4; i++ {
		reporter := f.addUser(domain.RoleStudent, 50)
		if _, err := f.service.SubmitReport(context.Background(), reporter.UserID, post.PostID, SubmitReportRequest{Reason: "SPAM"}); err != nil {
			t.Fatalf("report %d: %v", i+1, err)
		}
		if got := f.post(post.PostID).Status; got != domain.PostStatusPublished {
			t.Fatalf("post archived after only %d reports", i+1)
		}
	}

	reporter := f.addUser(domain.RoleStudent, 50)
	if _, err := f.service.SubmitReport(context.Background(), reporter.UserID, post.PostID, SubmitReportRequest{Reason: "SPAM"}); err != nil {
		t.Fatalf("fifth report: %v", err)
	}
	if got := f.post(post.PostID).Status; got != domain.PostStatusArchived {
		t.Fatalf("post status = %s after fifth report, want ARCHIVED", got)
	}
	if events := f.st.eventsOfType("post.quarantined"); len(events) != 1 {
		t.Fatalf("expected one quarantine event, got %d", len(events))
	}
	// Quarantine carries no trust penalty; that waits for a moderator ruling.
	if got := f.user(author.UserID).TrustScore.Value(); got != 50 {
		t.Fatalf("author trust = %d before any moderator decision, want 50", got)
	}

	// A sixth report on an already archived post still succeeds quietly.
	late := f.addUser(domain.RoleStudent, 50)
	if _, err := f.service.SubmitReport(context.Background(), late.UserID, post.PostID, SubmitReportRequest{Reason: "SPAM"}); err != nil {
		t.Fatalf("sixth report: %v", err)
	}
	if got := f.post(post.PostID).Status; got != domain.PostStatusArchived {
		t.Fatalf("post status = %s after sixth report, want ARCHIVED", got)
	}
}

func TestConfirmReportAppliesPenaltyAndRemovesPost(t *testing.T) {
	t.Parallel()
	f := newFixture()
	admin := f.addUser(domain.RoleAdmin, 100)
	author := f.addUser(domain.RoleStudent, 50)
	reporter := f.addUser(domain.RoleStudent, 50)
	post := f.addPost(author.UserID, domain.PostStatusPublished)

	created, err := f.service.SubmitReport(context.Background(), reporter.UserID, post.PostID, SubmitReportRequest{Reason: "SPAM"})
	if err != nil {
		t.Fatalf("submit report: %v", err)
	}
	reportID := mustUUID(t, created.ReportID)

	resp, err := f.service.ConfirmReport(context.Background(), admin.UserID, reportID)
	if err != nil {
		t.Fatalf("confirm report: %v", err)
	}
	if resp.Status != string(domain.ReportStatusValidated) {
		t.Fatalf("report status = %s, want VALIDATED", resp.Status)
	}
	if got := f.user(author.UserID).TrustScore.Value(); got != 30 {
		t.Fatalf("author trust = %d, want 30", got)
	}
	if _, ok := f.st.posts[post.PostID]; ok {
		t.Fatalf("post must be removed after confirmed report")
	}
	if events := f.st.eventsOfType("post.removed"); len(events) != 1 {
		t.Fatalf("expected one removal event, got %d", len(events))
	}
}

func TestConfirmFakeNewsReportAppliesHeavyPenalty(t *testing.T) {
	t.Parallel()
	f := newFixture()
	admin := f.addUser(domain.RoleAdmin, 100)
	author := f.addUser(domain.RoleStudent, 90)
	reporter := f.addUser(domain.RoleStudent, 50)
	post := f.addPost(author.UserID, domain.PostStatusPublished)

	created, err := f.service.SubmitReport(context.Background(), reporter.UserID, post.PostID, SubmitReportRequest{Reason: "FAKE_NEWS"})
	if err != nil {
		t.Fatalf("submit report: %v", err)
	}
	if _, err := f.service.ConfirmReport(context.Background(), admin.UserID, mustUUID(t, created.ReportID)); err != nil {
		t.Fatalf("confirm report: %v", err)
	}
	if got := f.user(author.UserID).TrustScore.Value(); got != 40 {
		t.Fatalf("author trust = %d after fake news ruling, want 40", got)
	}
}

func TestConfirmReportRequiresAdmin(t *testing.T) {
	t.Parallel()
	f := newFixture()
	student := f.addUser(domain.RoleStudent, 50)
	author := f.addUser(domain.RoleStudent, 50)
	reporter := f.addUser(domain.RoleStudent, 50)
	post := f.addPost(author.UserID, domain.PostStatusPublished)

	created, err := f.service.SubmitReport(context.Background(), reporter.UserID, post.PostID, SubmitReportRequest{Reason: "SPAM"})
	if err != nil {
		t.Fatalf("submit report: %v", err)
	}
	_, err = f.service.ConfirmReport(context.Background(), student.UserID, mustUUID(t, created.ReportID))
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestResolvedReportIsTerminal(t *testing.T) {
	t.Parallel()
	f := newFixture()
	admin := f.addUser(domain.RoleAdmin, 100)
	author := f.addUser(domain.RoleStudent, 50)
	reporter := f.addUser(domain.RoleStudent, 50)
	post := f.addPost(author.UserID, domain.PostStatusPublished)

	created, err := f.service.SubmitReport(context.Background(), reporter.UserID, post.PostID, SubmitReportRequest{Reason: "SPAM"})
	if err != nil {
		t.Fatalf("submit report: %v", err)
	}
	reportID := mustUUID(t, created.ReportID)
	if _, err := f.service.RejectReport(context.Background(), admin.UserID, reportID); err != nil {
		t.Fatalf("reject report: %v", err)
	}

	if _, err := f.service.ConfirmReport(context.Background(), admin.UserID, reportID); !errors.Is(err, domain.ErrReportAlreadyResolved) {
		t.Fatalf("expected ErrReportAlreadyResolved on confirm, got %v", err)
	}
	if _, err := f.service.RejectReport(context.Background(), admin.UserID, reportID); !errors.Is(err, domain.ErrReportAlreadyResolved) {
		t.Fatalf("expected ErrReportAlreadyResolved on second reject, got %v", err)
	}
}

func TestRejectReportReinstatesArchivedPost(t *testing.T) {
	t.Parallel()
	f := newFixture()
	admin := f.addUser(domain.RoleAdmin, 100)
	author := f.addUser(domain.RoleStudent, 50)
	post := f.addPost(author.UserID, domain.PostStatusPublished)

	var lastReportID string
	for i := 0; i < 5; i++ {
		reporter := f.addUser(domain.RoleStudent, 50)
		created, err := f.service.SubmitReport(context.Background(), reporter.UserID, post.PostID, SubmitReportRequest{Reason: "SPAM"})
		if err != nil {
			t.Fatalf("report %d: %v", i+1, err)
		}
		lastReportID = created.ReportID
	}
	if got := f.post(post.PostID).Status; got != domain.PostStatusArchived {
		t.Fatalf("setup: post not auto-quarantined, status %s", got)
	}

	resp, err := f.service.RejectReport(context.Background(), admin.UserID, mustUUID(t, lastReportID))
	if err != nil {
		t.Fatalf("reject report: %v", err)
	}
	if resp.Status != string(domain.ReportStatusRejected) {
		t.Fatalf("report status = %s, want REJECTED", resp.Status)
	}
	if got := f.post(post.PostID).Status; got != domain.PostStatusPublished {
		t.Fatalf("post status = %s after rejection, want PUBLISHED", got)
	}
	// Dismissal never touches the author's reputation.
	if got := f.user(author.UserID).TrustScore.Value(); got != 50 {
		t.Fatalf("author trust = %d after rejection, want 50", got)
	}
	if events := f.st.eventsOfType("user.trust_adjusted"); len(events) != 0 {
		t.Fatalf("expected no trust events on rejection, got %d", len(events))
	}
}

func TestModerationFailureIsWrapped(t *testing.T) {
	t.Parallel()
	f := newFixture()
	admin := f.addUser(domain.RoleAdmin, 100)
	reporter := f.addUser(domain.RoleStudent, 50)
	// Author missing from the directory: the transactional trust adjustment
	// fails and surfaces as a ModerationActionError.
	ghostAuthor := f.addUser(domain.RoleStudent, 50)
	post := f.addPost(ghostAuthor.UserID, domain.PostStatusPublished)

	created, err := f.service.SubmitReport(context.Background(), reporter.UserID, post.PostID, SubmitReportRequest{Reason: "SPAM"})
	if err != nil {
		t.Fatalf("submit report: %v", err)
	}
	f.st.mu.Lock()
	delete(f.st.users, ghostAuthor.UserID)
	f.st.mu.Unlock()

	_, err = f.service.ConfirmReport(context.Background(), admin.UserID, mustUUID(t, created.ReportID))
	var modErr *domain.ModerationActionError
	if !errors.As(err, &modErr) {
		t.Fatalf("expected ModerationActionError, got %v", err)
	}
	if modErr.Action != "confirm_report" {
		t.Fatalf("wrapped action = %q, want confirm_report", modErr.Action)
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("cause must unwrap to ErrUserNotFound, got %v", err)
	}
}

func mustUUID(t *testing.T, raw string) uuid.UUID {
	t.Helper()
	parsed, err := uuid.Parse(raw)
	if err != nil {
		t.Fatalf("parse uuid %q: %v", raw, err)
	}
	return parsed
}
