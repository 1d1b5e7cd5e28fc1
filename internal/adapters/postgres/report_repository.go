package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nde-labs/campusecho/internal/domain"
	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

func (r *reportRepository) FindByID(ctx context.Context, reportID uuid.UUID) (domain.Report, error) {
	var rec reportModel
	if err := r.db.WithContext(ctx).Where("report_id = ?", reportID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Report{}, domain.ErrReportNotFound
		}
		return domain.Report{}, err
	}
	return toDomainReport(rec), nil
}

func (r *reportRepository) Save(ctx context.Context, report domain.Report) (domain.Report, error) {
	rec := reportModel{
		ReportID:   report.ReportID,
		ReporterID: report.ReporterID,
		PostID:     report.PostID,
		Reason:     string(report.Reason),
		Details:    report.Details,
		Status:     string(report.Status),
		CreatedAt:  report.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.Report{}, domain.ErrDuplicateReport
		}
		return domain.Report{}, err
	}
	return toDomainReport(rec), nil
}

func (r *reportRepository) UpdateStatus(ctx context.Context, reportID uuid.UUID, status domain.ReportStatus) error {
	res := r.db.WithContext(ctx).Model(&reportModel{}).Where("report_id = ?", reportID).Update("status", string(status))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrReportNotFound
	}
	return nil
}

func (r *reportRepository) CountForPost(ctx context.Context, postID uuid.UUID) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&reportModel{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *reportRepository) ExistsByReporterAndPost(ctx context.Context, reporterID, postID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&reportModel{}).
		Where("reporter_id = ? AND post_id = ?", reporterID, postID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
