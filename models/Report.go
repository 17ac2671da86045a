package models

import (
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type ReportStatus string

const (
	ReportPending       ReportStatus = "pending"
	ReportInvestigating ReportStatus = "investigating"
	ReportResolved      ReportStatus = "resolved"
	ReportDismissed     ReportStatus = "dismissed"
)

// reportTransitions is monotonic: resolved and dismissed are terminal.
var reportTransitions = map[ReportStatus][]ReportStatus{
	ReportPending:       {ReportInvestigating, ReportResolved, ReportDismissed},
	ReportInvestigating: {ReportResolved, ReportDismissed},
	ReportResolved:      {},
	ReportDismissed:     {},
}

func (s ReportStatus) CanTransitionTo(next ReportStatus) bool {
	return slices.Contains(reportTransitions[s], next)
}

// Report is a user complaint about a listing or another user. Reference is
// a short code shown back to the reporter for follow-up.
type Report struct {
	gorm.Model
	Reference       string       `json:"reference" gorm:"size:40;uniqueIndex"`
	ReporterID      uint         `json:"reporterID" gorm:"index;not null"`
	TargetListingID *uint        `json:"targetListingID" gorm:"index"`
	TargetUserID    *uint        `json:"targetUserID" gorm:"index"`
	Type            string       `json:"type" gorm:"size:50"`
	Description     string       `json:"description" gorm:"type:text;not null"`
	Status          ReportStatus `json:"status" gorm:"type:varchar(20);default:pending;index"`
	Resolution      string       `json:"resolution" gorm:"size:1000"`

	Reporter *User `json:"reporter,omitempty" gorm:"foreignKey:ReporterID"`
}
