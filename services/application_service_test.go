package services

import (
	"testing"
	"time"

	"eservices-api/models"
	"eservices-api/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionUpdatesStampsSubmittedOnce(t *testing.T) {
	m := workflow.Housing.Machine
	now := time.Now()

	w := &models.WorkflowState{Status: workflow.HousingDraft}
	updates := transitionUpdates(m, w, workflow.HousingSubmitted, "", now)

	assert.Equal(t, workflow.HousingSubmitted, updates["status"])
	assert.Equal(t, now, updates["submitted_at"])
	assert.NotContains(t, updates, "reviewed_at")
	assert.NotContains(t, updates, "decided_at")

	// A record that already carries submitted_at never gets it restamped.
	earlier := now.Add(-time.Hour)
	w = &models.WorkflowState{Status: workflow.HousingDraft, SubmittedAt: &earlier}
	updates = transitionUpdates(m, w, workflow.HousingSubmitted, "", now)
	assert.NotContains(t, updates, "submitted_at")
}

func TestTransitionUpdatesStampsReviewedOnce(t *testing.T) {
	m := workflow.Zoning.Machine
	now := time.Now()

	w := &models.WorkflowState{Status: workflow.ZoningPending}
	updates := transitionUpdates(m, w, workflow.ZoningInReview, "", now)
	assert.Equal(t, now, updates["reviewed_at"])

	earlier := now.Add(-time.Hour)
	w = &models.WorkflowState{Status: workflow.SubdivisionRevision, ReviewedAt: &earlier}
	updates = transitionUpdates(workflow.Subdivision.Machine, w, workflow.SubdivisionConceptReview, "", now)
	assert.NotContains(t, updates, "reviewed_at", "resuming review keeps the first reviewed_at")
}

func TestTransitionUpdatesTerminal(t *testing.T) {
	m := workflow.Zoning.Machine
	now := time.Now()

	w := &models.WorkflowState{Status: workflow.ZoningInReview}
	updates := transitionUpdates(m, w, workflow.ZoningApproved, "", now)
	assert.Equal(t, now, updates["decided_at"])
	assert.NotContains(t, updates, "decision_reason", "approvals carry no reason")

	updates = transitionUpdates(m, w, workflow.ZoningRejected, "  setback violation  ", now)
	assert.Equal(t, now, updates["decided_at"])
	assert.Equal(t, "setback violation", updates["decision_reason"])
}

func TestApplyTransitionMirrorsUpdates(t *testing.T) {
	m := workflow.Housing.Machine
	now := time.Now()

	w := &models.WorkflowState{Status: workflow.HousingUnderReview}
	updates := transitionUpdates(m, w, workflow.HousingRejected, "income above ceiling", now)
	applyTransition(w, updates)

	assert.Equal(t, workflow.HousingRejected, w.Status)
	assert.Equal(t, now, w.UpdateAt)
	require.NotNil(t, w.DecidedAt)
	assert.Equal(t, now, *w.DecidedAt)
	require.NotNil(t, w.DecisionReason)
	assert.Equal(t, "income above ceiling", *w.DecisionReason)
	assert.Nil(t, w.SubmittedAt, "rejection does not touch submitted_at")
}

func TestNotesPtr(t *testing.T) {
	assert.Nil(t, notesPtr(""))
	assert.Nil(t, notesPtr("   "))

	got := notesPtr("  missing drainage plan ")
	require.NotNil(t, got)
	assert.Equal(t, "missing drainage plan", *got)
}
