package services

import (
	"errors"
	"strings"
	"time"

	"eservices-api/config"
	"eservices-api/models"
	"eservices-api/workflow"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// applicationPtr constrains the services to the per-module application models,
// all of which embed models.WorkflowState.
type applicationPtr[T any] interface {
	*T
	models.ApplicationRecord
}

func wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// CreateApplication persists a new application. The caller fills the module
// detail fields; this assigns the reference number, initial status and stage,
// and writes the first ledger row ({null -> initial}) in the same
// transaction. Modules whose initial status counts as submitted (subdivision)
// get submitted_at stamped at creation.
func CreateApplication[T any, PT applicationPtr[T]](module workflow.Module, app PT, actorID int) error {
	return config.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		ref, err := nextReferenceNumber(tx, module, now)
		if err != nil {
			return err
		}

		w := app.Workflow()
		w.ReferenceNumber = ref
		w.Status = module.Machine.Initial
		if module.HasStages() {
			w.CurrentStage = module.Stages[0]
			w.StageResult = workflow.StageResultPending
		}
		if module.Machine.Initial == module.Machine.Submitted {
			w.SubmittedAt = &now
		}

		if err := tx.Create(app).Error; err != nil {
			return err
		}

		return appendStatusHistory(tx, module.Name, w.ApplicationID, nil, w.Status, actorID, nil)
	})
}

// GetApplication loads one application by id.
func GetApplication[T any, PT applicationPtr[T]](id int) (PT, error) {
	var app T
	pt := PT(&app)
	if err := config.DB.Where("application_id = ?", id).First(pt).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return pt, nil
}

// ListApplications returns applications, newest first, optionally filtered by
// applicant and status.
func ListApplications[T any, PT applicationPtr[T]](applicantID int, status string) ([]T, error) {
	query := config.DB.Model(new(T))
	if applicantID != 0 {
		query = query.Where("applicant_id = ?", applicantID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var apps []T
	if err := query.Order("application_id DESC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// SubmitApplication moves an application out of its initial status, stamping
// submitted_at exactly once. Allowed only from the initial status; modules
// that are submitted at creation reject this call.
func SubmitApplication[T any, PT applicationPtr[T]](module workflow.Module, id, actorID int) (PT, error) {
	var app T
	pt := PT(&app)
	m := module.Machine

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("application_id = ?", id).First(pt).Error; err != nil {
			return wrapNotFound(err)
		}

		w := pt.Workflow()
		if m.Initial == m.Submitted || w.Status != m.Initial {
			return &InvalidTransitionError{Current: w.Status, Attempted: m.Submitted}
		}

		now := time.Now()
		updates := transitionUpdates(m, w, m.Submitted, "", now)

		// Guarded compare-and-set: a concurrent submit loses the race and
		// observes zero affected rows.
		res := tx.Model(pt).Where("status = ?", w.Status).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &InvalidTransitionError{Current: w.Status, Attempted: m.Submitted}
		}

		from := w.Status
		applyTransition(w, updates)
		return appendStatusHistory(tx, module.Name, w.ApplicationID, &from, m.Submitted, actorID, nil)
	})
	if err != nil {
		return nil, err
	}
	return pt, nil
}

// TransitionStatus applies one status change according to the module's
// transition table, appends the matching ledger row and stamps timestamps.
// The change and the ledger append commit as a single transaction.
func TransitionStatus[T any, PT applicationPtr[T]](module workflow.Module, id int, newStatus string, actorID int, notes string) (PT, error) {
	var app T
	pt := PT(&app)
	m := module.Machine

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("application_id = ?", id).First(pt).Error; err != nil {
			return wrapNotFound(err)
		}

		w := pt.Workflow()
		if !m.CanTransition(w.Status, newStatus) {
			return &InvalidTransitionError{Current: w.Status, Attempted: newStatus}
		}
		if m.IsNegative(newStatus) && strings.TrimSpace(notes) == "" {
			return ErrNotesRequired
		}

		now := time.Now()
		updates := transitionUpdates(m, w, newStatus, notes, now)

		res := tx.Model(pt).Where("status = ?", w.Status).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Lost a race: another transition already moved the status.
			return &InvalidTransitionError{Current: w.Status, Attempted: newStatus}
		}

		from := w.Status
		applyTransition(w, updates)
		return appendStatusHistory(tx, module.Name, w.ApplicationID, &from, newStatus, actorID, notesPtr(notes))
	})
	if err != nil {
		return nil, err
	}

	notifyStatusChange(module, pt.Workflow(), notes)
	return pt, nil
}

// transitionUpdates computes the column updates for entering newStatus.
// submitted_at is stamped at most once, on the first entry into the module's
// submitted status; reviewed_at on the first entry into a review status;
// decided_at (plus the reason for negative outcomes) on terminal statuses.
func transitionUpdates(m workflow.Machine, w *models.WorkflowState, newStatus, notes string, now time.Time) map[string]interface{} {
	updates := map[string]interface{}{
		"status":    newStatus,
		"update_at": now,
	}
	if w.SubmittedAt == nil && newStatus == m.Submitted {
		updates["submitted_at"] = now
	}
	if w.ReviewedAt == nil && m.IsReview(newStatus) {
		updates["reviewed_at"] = now
	}
	if m.IsTerminal(newStatus) {
		updates["decided_at"] = now
		if m.IsNegative(newStatus) {
			updates["decision_reason"] = strings.TrimSpace(notes)
		}
	}
	return updates
}

// applyTransition mirrors the column updates onto the in-memory state so the
// caller gets the post-transition record without a reload.
func applyTransition(w *models.WorkflowState, updates map[string]interface{}) {
	w.Status = updates["status"].(string)
	if t, ok := updates["update_at"].(time.Time); ok {
		w.UpdateAt = t
	}
	if t, ok := updates["submitted_at"].(time.Time); ok {
		w.SubmittedAt = &t
	}
	if t, ok := updates["reviewed_at"].(time.Time); ok {
		w.ReviewedAt = &t
	}
	if t, ok := updates["decided_at"].(time.Time); ok {
		w.DecidedAt = &t
	}
	if reason, ok := updates["decision_reason"].(string); ok {
		w.DecisionReason = &reason
	}
}

// ReviewStage records the review result for the application's current stage.
// Only meaningful while the application sits in that stage's review status.
func ReviewStage[T any, PT applicationPtr[T]](module workflow.Module, id int, result string, actorID int, notes string) (PT, error) {
	var app T
	pt := PT(&app)

	if result != workflow.StageResultApproved && result != workflow.StageResultRejected {
		return nil, NewValidationError("result", "Must be one of: approved, rejected")
	}
	if result == workflow.StageResultRejected && strings.TrimSpace(notes) == "" {
		return nil, ErrNotesRequired
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("application_id = ?", id).First(pt).Error; err != nil {
			return wrapNotFound(err)
		}

		w := pt.Workflow()
		reviewStatus, ok := module.ReviewStatusFor(w.CurrentStage)
		if !ok || w.Status != reviewStatus {
			return &InvalidTransitionError{Current: w.Status, Attempted: reviewStatus}
		}

		now := time.Now()
		res := tx.Model(pt).
			Where("current_stage = ?", w.CurrentStage).
			Updates(map[string]interface{}{"stage_result": result, "update_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStageNotReady
		}

		w.StageResult = result
		w.UpdateAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pt, nil
}

// AdvanceStage moves a staged application to its next review stage. The
// current stage must have an approved review result; advancing resets the
// result for the new stage.
func AdvanceStage[T any, PT applicationPtr[T]](module workflow.Module, id, actorID int) (PT, error) {
	var app T
	pt := PT(&app)

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("application_id = ?", id).First(pt).Error; err != nil {
			return wrapNotFound(err)
		}

		w := pt.Workflow()
		if !module.HasStages() || module.Machine.IsTerminal(w.Status) {
			return ErrStageNotReady
		}
		if w.StageResult != workflow.StageResultApproved {
			return ErrStageNotReady
		}
		next, ok := module.NextStage(w.CurrentStage)
		if !ok {
			return ErrStageNotReady
		}

		now := time.Now()
		res := tx.Model(pt).
			Where("current_stage = ? AND stage_result = ?", w.CurrentStage, workflow.StageResultApproved).
			Updates(map[string]interface{}{
				"current_stage": next,
				"stage_result":  workflow.StageResultPending,
				"update_at":     now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStageNotReady
		}

		w.CurrentStage = next
		w.StageResult = workflow.StageResultPending
		w.UpdateAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pt, nil
}

func notesPtr(notes string) *string {
	trimmed := strings.TrimSpace(notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
