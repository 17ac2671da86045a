package services

import (
	"fmt"
	"strings"

	"roomease-server/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportService handles user complaints. Status only moves forward:
// pending -> investigating -> resolved/dismissed, admin-driven.
type ReportService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewReportService(db *gorm.DB, notifier *NotificationService) *ReportService {
	return &ReportService{db: db, notifier: notifier}
}

type SubmitReportInput struct {
	Type            string `json:"type" validate:"required,lt=50"`
	Description     string `json:"description" validate:"required,lt=5000"`
	TargetListingID *uint  `json:"targetListingID"`
	TargetUserID    *uint  `json:"targetUserID"`
}

// Submit files a report from any authenticated user.
func (rs *ReportService) Submit(actor models.Identity, input SubmitReportInput) (*models.Report, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, fmt.Errorf("%w: a description is required", ErrValidation)
	}
	if input.TargetListingID != nil {
		var listing models.Listing
		if err := rs.db.First(&listing, *input.TargetListingID).Error; err != nil {
			return nil, fmt.Errorf("%w: listing %d", ErrNotFound, *input.TargetListingID)
		}
	}
	report := models.Report{
		Reference:       "RPT-" + strings.ToUpper(uuid.NewString()[:8]),
		ReporterID:      actor.ID,
		TargetListingID: input.TargetListingID,
		TargetUserID:    input.TargetUserID,
		Type:            input.Type,
		Description:     input.Description,
		Status:          models.ReportPending,
	}
	if err := rs.db.Create(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// ListMine returns the caller's own reports.
func (rs *ReportService) ListMine(actor models.Identity) ([]models.Report, error) {
	var reports []models.Report
	err := rs.db.Where("reporter_id = ?", actor.ID).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

// ListByStatus is the admin queue view.
func (rs *ReportService) ListByStatus(actor models.Identity, status models.ReportStatus) ([]models.Report, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: admin access required", ErrForbiddenRole)
	}
	q := rs.db.Preload("Reporter").Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var reports []models.Report
	err := q.Find(&reports).Error
	return reports, err
}

// Get returns one report, visible to its reporter and to admins.
func (rs *ReportService) Get(actor models.Identity, reportID uint) (*models.Report, error) {
	var report models.Report
	if err := rs.db.Preload("Reporter").First(&report, reportID).Error; err != nil {
		return nil, fmt.Errorf("%w: report %d", ErrNotFound, reportID)
	}
	if report.ReporterID != actor.ID && !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: not your report", ErrForbiddenAction)
	}
	return &report, nil
}

// UpdateStatus advances the report, admin-only and monotonic. The reporter
// gets a report_update notification on every successful advance.
func (rs *ReportService) UpdateStatus(actor models.Identity, reportID uint, next models.ReportStatus, resolution string) (*models.Report, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: admin access required", ErrForbiddenRole)
	}
	switch next {
	case models.ReportInvestigating, models.ReportResolved, models.ReportDismissed:
	default:
		return nil, fmt.Errorf("%w: unknown report status %q", ErrValidation, next)
	}

	var report models.Report
	if err := rs.db.First(&report, reportID).Error; err != nil {
		return nil, fmt.Errorf("%w: report %d", ErrNotFound, reportID)
	}
	if !report.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: this report is already %s", ErrInvalidTransition, report.Status)
	}

	res := rs.db.Model(&models.Report{}).
		Where("id = ? AND status = ?", reportID, report.Status).
		Updates(map[string]interface{}{"status": next, "resolution": resolution})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: report status changed concurrently", ErrInvalidTransition)
	}

	report.Status = next
	report.Resolution = resolution
	rs.notifier.Notify(report.ReporterID, models.NotificationReportUpdate,
		"Report update",
		fmt.Sprintf("Your report %s is now %s.", report.Reference, next))
	return &report, nil
}
