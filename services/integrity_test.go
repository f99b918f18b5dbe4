package services

import (
	"testing"
	"time"

	"eservices-api/models"
	"eservices-api/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func historyEntry(id int, from *string, to string, at time.Time) models.StatusHistoryEntry {
	return models.StatusHistoryEntry{
		HistoryID:     id,
		Module:        "zoning",
		ApplicationID: 1,
		StatusFrom:    from,
		StatusTo:      to,
		ChangedBy:     9,
		CreatedAt:     at,
	}
}

func TestValidateHistoryChain(t *testing.T) {
	base := time.Now()
	entries := []models.StatusHistoryEntry{
		historyEntry(1, nil, workflow.ZoningPending, base),
		historyEntry(2, strPtr(workflow.ZoningPending), workflow.ZoningInReview, base.Add(time.Minute)),
		historyEntry(3, strPtr(workflow.ZoningInReview), workflow.ZoningApproved, base.Add(2*time.Minute)),
	}

	require.NoError(t, ValidateHistoryChain(entries, workflow.ZoningApproved))
}

func TestValidateHistoryChainEmpty(t *testing.T) {
	assert.Error(t, ValidateHistoryChain(nil, workflow.ZoningPending))
}

func TestValidateHistoryChainFirstEntryNotNull(t *testing.T) {
	entries := []models.StatusHistoryEntry{
		historyEntry(1, strPtr(workflow.ZoningPending), workflow.ZoningInReview, time.Now()),
	}
	err := ValidateHistoryChain(entries, workflow.ZoningInReview)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status_from")
}

func TestValidateHistoryChainGap(t *testing.T) {
	base := time.Now()
	entries := []models.StatusHistoryEntry{
		historyEntry(1, nil, workflow.ZoningPending, base),
		// status_from skips in_review.
		historyEntry(2, strPtr(workflow.ZoningInReview), workflow.ZoningApproved, base.Add(time.Minute)),
	}
	err := ValidateHistoryChain(entries, workflow.ZoningApproved)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "breaks the chain")
}

func TestValidateHistoryChainWrongEnd(t *testing.T) {
	base := time.Now()
	entries := []models.StatusHistoryEntry{
		historyEntry(1, nil, workflow.ZoningPending, base),
		historyEntry(2, strPtr(workflow.ZoningPending), workflow.ZoningInReview, base.Add(time.Minute)),
	}
	err := ValidateHistoryChain(entries, workflow.ZoningApproved)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "application status")
}

func TestValidateHistoryChainTimeRegression(t *testing.T) {
	base := time.Now()
	entries := []models.StatusHistoryEntry{
		historyEntry(1, nil, workflow.ZoningPending, base),
		historyEntry(2, strPtr(workflow.ZoningPending), workflow.ZoningInReview, base.Add(-time.Minute)),
	}
	err := ValidateHistoryChain(entries, workflow.ZoningInReview)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before its predecessor")
}

func docVersion(id, version int, parent, replacedBy *int, current bool) models.ApplicationDocument {
	doc := models.ApplicationDocument{
		DocumentID:       id,
		Module:           "subdivision",
		ApplicationID:    1,
		DocumentType:     "drainage_plan",
		Kind:             models.DocumentKindUpload,
		Status:           models.DocumentStatusRejected,
		Version:          version,
		ParentDocumentID: parent,
		IsCurrent:        current,
	}
	if replacedBy != nil {
		doc.ReplacedBy = replacedBy
		at := time.Now()
		doc.ReplacedAt = &at
	}
	if current {
		doc.Status = models.DocumentStatusPending
	}
	return doc
}

func TestValidateVersionChain(t *testing.T) {
	docs := []models.ApplicationDocument{
		// Deliberately out of order; the validator sorts.
		docVersion(30, 3, intPtr(20), nil, true),
		docVersion(10, 1, nil, intPtr(20), false),
		docVersion(20, 2, intPtr(10), intPtr(30), false),
	}
	require.NoError(t, ValidateVersionChain(docs))
}

func TestValidateVersionChainSingle(t *testing.T) {
	require.NoError(t, ValidateVersionChain([]models.ApplicationDocument{
		docVersion(10, 1, nil, nil, true),
	}))
	assert.Error(t, ValidateVersionChain(nil))
}

func TestValidateVersionChainTwoCurrent(t *testing.T) {
	docs := []models.ApplicationDocument{
		docVersion(10, 1, nil, intPtr(20), true),
		docVersion(20, 2, intPtr(10), nil, true),
	}
	err := ValidateVersionChain(docs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "current versions")
}

func TestValidateVersionChainDoubleFirstAttach(t *testing.T) {
	// Two first attaches racing into the same empty slot: both rows claim
	// version 1 with is_current set.
	docs := []models.ApplicationDocument{
		docVersion(10, 1, nil, nil, true),
		docVersion(11, 1, nil, nil, true),
	}
	err := ValidateVersionChain(docs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "current versions")

	// Same race where one row lost its current flag: the versions still
	// collide.
	docs = []models.ApplicationDocument{
		docVersion(10, 1, nil, nil, true),
		docVersion(11, 1, nil, nil, false),
	}
	err = ValidateVersionChain(docs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version")
}

func TestValidateVersionChainSkippedVersion(t *testing.T) {
	docs := []models.ApplicationDocument{
		docVersion(10, 1, nil, intPtr(30), false),
		docVersion(30, 3, intPtr(10), nil, true),
	}
	err := ValidateVersionChain(docs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version")
}

func TestValidateVersionChainParentMismatch(t *testing.T) {
	docs := []models.ApplicationDocument{
		docVersion(10, 1, nil, intPtr(20), false),
		docVersion(20, 2, intPtr(99), nil, true),
	}
	err := ValidateVersionChain(docs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not point at")
}

func TestValidateVersionChainStaleCurrentFlag(t *testing.T) {
	// The superseded row kept is_current and the head lost it.
	docs := []models.ApplicationDocument{
		docVersion(10, 1, nil, intPtr(20), true),
		docVersion(20, 2, intPtr(10), nil, false),
	}
	err := ValidateVersionChain(docs)
	require.Error(t, err)
}

func TestValidateVersionChainHeadWithReplacementMarkers(t *testing.T) {
	head := docVersion(20, 2, intPtr(10), nil, true)
	head.ReplacedBy = intPtr(99)
	docs := []models.ApplicationDocument{
		docVersion(10, 1, nil, intPtr(20), false),
		head,
	}
	err := ValidateVersionChain(docs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "replacement markers")
}

func TestValidateVersionChainFirstVersionWithParent(t *testing.T) {
	docs := []models.ApplicationDocument{
		docVersion(10, 1, intPtr(5), nil, true),
	}
	err := ValidateVersionChain(docs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version 1")
}
