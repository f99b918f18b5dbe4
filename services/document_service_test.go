package services

import (
	"testing"

	"eservices-api/models"
	"eservices-api/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanAttachUploadSlot(t *testing.T) {
	payload := DocumentPayload{Kind: models.DocumentKindUpload}

	// Pending and approved versions block replacement.
	for _, status := range []string{models.DocumentStatusPending, models.DocumentStatusApproved} {
		current := &models.ApplicationDocument{Kind: models.DocumentKindUpload, Status: status}
		_, err := planAttach(current, payload)
		assert.ErrorIs(t, err, ErrSlotOccupied, status)
	}

	// A rejected version opens the slot for the next version.
	current := &models.ApplicationDocument{Kind: models.DocumentKindUpload, Status: models.DocumentStatusRejected}
	action, err := planAttach(current, payload)
	require.NoError(t, err)
	assert.Equal(t, actionReplace, action)
}

func TestPlanAttachManualSlot(t *testing.T) {
	payload := DocumentPayload{Kind: models.DocumentKindManual, ManualID: "TCT-7781"}

	// Manual entries overwrite in place until approved.
	for _, status := range []string{models.DocumentStatusPending, models.DocumentStatusRejected} {
		current := &models.ApplicationDocument{Kind: models.DocumentKindManual, Status: status}
		action, err := planAttach(current, payload)
		require.NoError(t, err, status)
		assert.Equal(t, actionOverwrite, action)
	}

	current := &models.ApplicationDocument{Kind: models.DocumentKindManual, Status: models.DocumentStatusApproved}
	_, err := planAttach(current, payload)
	assert.ErrorIs(t, err, ErrSlotOccupied)
}

func TestPlanAttachKindMismatch(t *testing.T) {
	current := &models.ApplicationDocument{Kind: models.DocumentKindManual, Status: models.DocumentStatusRejected}
	_, err := planAttach(current, DocumentPayload{Kind: models.DocumentKindUpload})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "type")

	current = &models.ApplicationDocument{Kind: models.DocumentKindUpload, Status: models.DocumentStatusRejected}
	_, err = planAttach(current, DocumentPayload{Kind: models.DocumentKindManual})
	require.ErrorAs(t, err, &verr)
}

func TestNewDocumentRow(t *testing.T) {
	upload := newDocumentRow("zoning", 7, DocumentPayload{
		DocumentType: "site_plan",
		Kind:         models.DocumentKindUpload,
		FilePath:     "/uploads/zoning/7/abc.pdf",
		FileName:     "site-plan.pdf",
		FileSize:     2048,
		MimeType:     "application/pdf",
		UploadedBy:   41,
	})

	assert.Equal(t, "zoning", upload.Module)
	assert.Equal(t, 7, upload.ApplicationID)
	assert.Equal(t, models.DocumentStatusPending, upload.Status)
	assert.Equal(t, 1, upload.Version)
	assert.True(t, upload.IsCurrent)
	assert.Nil(t, upload.ManualID)
	require.NotNil(t, upload.FileName)
	assert.Equal(t, "site-plan.pdf", *upload.FileName)

	manual := newDocumentRow("housing", 3, DocumentPayload{
		DocumentType: "land_title",
		Kind:         models.DocumentKindManual,
		ManualID:     "TCT-7781",
		UploadedBy:   41,
	})
	require.NotNil(t, manual.ManualID)
	assert.Equal(t, "TCT-7781", *manual.ManualID)
	assert.Nil(t, manual.FilePath)
	assert.Nil(t, manual.FileSize)
}

func TestResumeTarget(t *testing.T) {
	// A revision-parked subdivision resumes at its current stage's review
	// status, whatever document kind was resubmitted.
	for stage, want := range map[string]string{
		workflow.StageConcept:     workflow.SubdivisionConceptReview,
		workflow.StagePreliminary: workflow.SubdivisionPreliminaryReview,
		workflow.StageImprovement: workflow.SubdivisionImprovementReview,
		workflow.StageFinal:       workflow.SubdivisionFinalReview,
	} {
		got, ok := resumeTarget(workflow.Subdivision, workflow.SubdivisionRevision, stage)
		require.True(t, ok, stage)
		assert.Equal(t, want, got)
	}

	// Applications not sitting in revision stay put.
	_, ok := resumeTarget(workflow.Subdivision, workflow.SubdivisionConceptReview, workflow.StageConcept)
	assert.False(t, ok)
	_, ok = resumeTarget(workflow.Subdivision, workflow.SubdivisionDenied, workflow.StageFinal)
	assert.False(t, ok)

	// Modules without a revision status never resume.
	_, ok = resumeTarget(workflow.Zoning, workflow.ZoningInReview, "")
	assert.False(t, ok)

	// An unknown stage has no review status to resume at.
	_, ok = resumeTarget(workflow.Subdivision, workflow.SubdivisionRevision, "survey")
	assert.False(t, ok)
}

func TestPlanReview(t *testing.T) {
	pending := &models.ApplicationDocument{Status: models.DocumentStatusPending}

	require.NoError(t, planReview(pending, models.DocumentStatusApproved, ""))
	require.NoError(t, planReview(pending, models.DocumentStatusRejected, "illegible scan"))

	// Rejection without notes.
	assert.ErrorIs(t, planReview(pending, models.DocumentStatusRejected, "  "), ErrNotesRequired)

	// A decision outside the vocabulary.
	var verr *ValidationError
	err := planReview(pending, "archived", "")
	require.ErrorAs(t, err, &verr)

	// Only pending documents can be reviewed; decisions are final.
	for _, status := range []string{models.DocumentStatusApproved, models.DocumentStatusRejected} {
		decided := &models.ApplicationDocument{Status: status}
		assert.ErrorIs(t, planReview(decided, models.DocumentStatusApproved, ""), ErrNotPending, status)
	}
}
