package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type ReportReason string

const (
	ReportReasonSpam                 ReportReason = "SPAM"
	ReportReasonFakeNews             ReportReason = "FAKE_NEWS"
	ReportReasonHarassment           ReportReason = "HARASSMENT"
	ReportReasonInappropriateContent ReportReason = "INAPPROPRIATE_CONTENT"
	ReportReasonWrongCategory        ReportReason = "WRONG_CATEGORY"
)

func IsValidReportReason(v string) bool {
	switch ReportReason(strings.ToUpper(strings.TrimSpace(v))) {
	case ReportReasonSpam, ReportReasonFakeNews, ReportReasonHarassment,
		ReportReasonInappropriateContent, ReportReasonWrongCategory:
		return true
	default:
		return false
	}
}

type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "PENDING"
	ReportStatusValidated ReportStatus = "VALIDATED"
	ReportStatusRejected  ReportStatus = "REJECTED"
)

// Report is one user's flag against one post. The (reporter, post) pair is
// unique; PENDING transitions once to VALIDATED or REJECTED, never back.
type Report struct {
	ReportID   uuid.UUID
	ReporterID uuid.UUID
	PostID     uuid.UUID
	Reason     ReportReason
	Details    string
	Status     ReportStatus
	CreatedAt  time.Time
}
