package models

import (
	"regexp"
	"strings"
	"time"
)

// WorkflowState carries the columns shared by every application module. The
// per-module application structs embed it, so the services layer can drive any
// of them through the same workflow code.
type WorkflowState struct {
	ApplicationID   int        `gorm:"primaryKey;column:application_id" json:"application_id"`
	ReferenceNumber string     `gorm:"column:reference_number;uniqueIndex" json:"reference_number"`
	ApplicantID     int        `gorm:"column:applicant_id" json:"applicant_id"`
	Status          string     `gorm:"column:status" json:"status"`
	CurrentStage    string     `gorm:"column:current_stage" json:"current_stage,omitempty"`
	StageResult     string     `gorm:"column:stage_result" json:"stage_result,omitempty"`
	DecisionReason  *string    `gorm:"column:decision_reason" json:"decision_reason,omitempty"`
	SubmittedAt     *time.Time `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	ReviewedAt      *time.Time `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	DecidedAt       *time.Time `gorm:"column:decided_at" json:"decided_at,omitempty"`
	CreateAt        time.Time  `gorm:"column:create_at;autoCreateTime" json:"create_at"`
	UpdateAt        time.Time  `gorm:"column:update_at;autoUpdateTime" json:"update_at"`
}

// Workflow returns the embedded workflow columns.
func (w *WorkflowState) Workflow() *WorkflowState { return w }

// ApplicationRecord is satisfied by every per-module application model via the
// embedded WorkflowState.
type ApplicationRecord interface {
	Workflow() *WorkflowState
}

var referenceNumberPattern = regexp.MustCompile(`^[A-Z]{2,4}-\d{4}-\d{4}$`)

// ApplicationRef is an opaque cross-module reference carried as a reference
// number string (e.g. "ZC-2026-0142"). Modules never share transactions or
// foreign keys; this type makes the loose coupling explicit instead of passing
// raw strings around.
type ApplicationRef string

func (r ApplicationRef) String() string { return string(r) }

// Valid reports whether the reference has the PREFIX-YYYY-NNNN shape.
func (r ApplicationRef) Valid() bool {
	return referenceNumberPattern.MatchString(string(r))
}

// Prefix returns the module prefix portion of the reference, or "" when the
// reference is malformed.
func (r ApplicationRef) Prefix() string {
	if !r.Valid() {
		return ""
	}
	return string(r)[:strings.Index(string(r), "-")]
}
