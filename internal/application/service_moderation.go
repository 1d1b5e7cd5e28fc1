package application

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/nde-labs/campusecho/internal/domain"
	"github.com/nde-labs/campusecho/internal/ports"
)

// SubmitReport records an abuse flag and quarantines the post once the report
// count crosses the auto threshold. DuplicateReport propagates unwrapped so
// callers can special-case it; any other failure comes back as a
// ModerationActionError carrying the cause.
func (s *Service) SubmitReport(ctx context.Context, reporterID, postID uuid.UUID, req SubmitReportRequest) (ReportResponse, error) {
	raw := strings.ToUpper(strings.TrimSpace(req.Reason))
	if !domain.IsValidReportReason(raw) {
		return ReportResponse{}, domain.ErrInvalidInput
	}

	exists, err := s.reports.ExistsByReporterAndPost(ctx, reporterID, postID)
	if err != nil {
		return ReportResponse{}, &domain.ModerationActionError{Action: "submit_report", Err: err}
	}
	if exists {
		return ReportResponse{}, domain.ErrDuplicateReport
	}

	now := s.nowFn()
	report := domain.Report{
		ReportID:   uuid.New(),
		ReporterID: reporterID,
		PostID:     postID,
		Reason:     domain.ReportReason(raw),
		Details:    strings.TrimSpace(req.Details),
		Status:     domain.ReportStatusPending,
		CreatedAt:  now,
	}
	saved, err := s.reports.Save(ctx, report)
	if err != nil {
		// The unique (reporter, post) index closes the check-then-insert race.
		if errors.Is(err, domain.ErrDuplicateReport) {
			return ReportResponse{}, domain.ErrDuplicateReport
		}
		return ReportResponse{}, &domain.ModerationActionError{Action: "submit_report", Err: err}
	}

	count, err := s.reports.CountForPost(ctx, postID)
	if err != nil {
		return ReportResponse{}, &domain.ModerationActionError{Action: "submit_report", Err: err}
	}
	if count >= domain.AutoQuarantineThreshold {
		// Unconditional write: quarantine outranks any concurrent vote
		// recompute, and re-archiving an archived post is a no-op.
		if err := s.posts.UpdateStatus(ctx, postID, domain.PostStatusArchived); err != nil {
			return ReportResponse{}, &domain.ModerationActionError{Action: "submit_report", Err: err}
		}
		s.invalidateFeedCache(ctx)
		if s.outbox != nil {
			payload := map[string]any{"post_id": postID.String(), "report_count": count}
			if err := s.enqueueEvent(ctx, s.outbox, eventPostQuarantined, postID.String(), payload, now); err != nil {
				return ReportResponse{}, &domain.ModerationActionError{Action: "submit_report", Err: err}
			}
		}
	}

	return toReportResponse(saved), nil
}

// ConfirmReport is the moderator validating a flag: the author takes the trust
// penalty for the report's reason, the post is removed and the report closes
// VALIDATED. Penalty, removal and closure commit as one unit so a crash can
// never leave a penalized author with the post still up, or the reverse.
func (s *Service) ConfirmReport(ctx context.Context, adminID, reportID uuid.UUID) (ReportResponse, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return ReportResponse{}, err
	}

	report, err := s.reports.FindByID(ctx, reportID)
	if err != nil {
		return ReportResponse{}, err
	}
	if report.Status != domain.ReportStatusPending {
		return ReportResponse{}, domain.ErrReportAlreadyResolved
	}
	post, err := s.posts.FindByID(ctx, report.PostID)
	if err != nil {
		return ReportResponse{}, err
	}

	now := s.nowFn()
	impact := domain.ImpactForReportReason(report.Reason)
	err = s.uow.Within(ctx, func(ctx context.Context, tx ports.Stores) error {
		if _, err := s.adjustUserTrust(ctx, tx.Users, tx.Outbox, post.AuthorID, impact, now); err != nil {
			return err
		}
		if err := tx.Posts.Delete(ctx, post.PostID); err != nil {
			return err
		}
		if err := tx.Reports.UpdateStatus(ctx, reportID, domain.ReportStatusValidated); err != nil {
			return err
		}
		removed := map[string]any{"post_id": post.PostID.String(), "reason": string(report.Reason)}
		if err := s.enqueueEvent(ctx, tx.Outbox, eventPostRemoved, post.PostID.String(), removed, now); err != nil {
			return err
		}
		validated := map[string]any{"report_id": reportID.String(), "post_id": post.PostID.String(), "impact": string(impact)}
		return s.enqueueEvent(ctx, tx.Outbox, eventReportValidated, reportID.String(), validated, now)
	})
	if err != nil {
		return ReportResponse{}, &domain.ModerationActionError{Action: "confirm_report", Err: err}
	}
	s.invalidateFeedCache(ctx)

	report.Status = domain.ReportStatusValidated
	return toReportResponse(report), nil
}

// RejectReport dismisses a flag: the post is reinstated to PUBLISHED — the
// only path that resurrects an archived post — and the report closes REJECTED.
// No trust penalty is applied.
func (s *Service) RejectReport(ctx context.Context, adminID, reportID uuid.UUID) (ReportResponse, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return ReportResponse{}, err
	}

	report, err := s.reports.FindByID(ctx, reportID)
	if err != nil {
		return ReportResponse{}, err
	}
	if report.Status != domain.ReportStatusPending {
		return ReportResponse{}, domain.ErrReportAlreadyResolved
	}

	now := s.nowFn()
	err = s.uow.Within(ctx, func(ctx context.Context, tx ports.Stores) error {
		if err := tx.Posts.UpdateStatus(ctx, report.PostID, domain.PostStatusPublished); err != nil {
			return err
		}
		if err := tx.Reports.UpdateStatus(ctx, reportID, domain.ReportStatusRejected); err != nil {
			return err
		}
		payload := map[string]any{"report_id": reportID.String(), "post_id": report.PostID.String()}
		return s.enqueueEvent(ctx, tx.Outbox, eventReportRejected, reportID.String(), payload, now)
	})
	if err != nil {
		return ReportResponse{}, &domain.ModerationActionError{Action: "reject_report", Err: err}
	}
	s.invalidateFeedCache(ctx)

	report.Status = domain.ReportStatusRejected
	return toReportResponse(report), nil
}

func (s *Service) requireAdmin(ctx context.Context, adminID uuid.UUID) error {
	admin, err := s.users.FindByID(ctx, adminID)
	if err != nil {
		return err
	}
	if admin.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	return nil
}

func toReportResponse(r domain.Report) ReportResponse {
	return ReportResponse{
		ReportID: r.ReportID.String(),
		PostID:   r.PostID.String(),
		Reason:   string(r.Reason),
		Status:   string(r.Status),
	}
}
