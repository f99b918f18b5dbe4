package services

import (
	"fmt"
	"sort"

	"eservices-api/config"
	"eservices-api/models"
)

// ValidateHistoryChain checks that a status ledger is a gapless chain: the
// first entry has a null status_from, each later entry's status_from equals
// the previous entry's status_to, timestamps never go backwards, and the
// chain ends at the application's current status.
func ValidateHistoryChain(entries []models.StatusHistoryEntry, currentStatus string) error {
	if len(entries) == 0 {
		return fmt.Errorf("status history is empty")
	}

	if entries[0].StatusFrom != nil {
		return fmt.Errorf("first history entry has status_from %q, want null", *entries[0].StatusFrom)
	}

	for i := 1; i < len(entries); i++ {
		prev, entry := entries[i-1], entries[i]
		if entry.StatusFrom == nil {
			return fmt.Errorf("history entry %d has null status_from", entry.HistoryID)
		}
		if *entry.StatusFrom != prev.StatusTo {
			return fmt.Errorf("history entry %d breaks the chain: status_from %q, previous status_to %q",
				entry.HistoryID, *entry.StatusFrom, prev.StatusTo)
		}
		if entry.CreatedAt.Before(prev.CreatedAt) {
			return fmt.Errorf("history entry %d created before its predecessor", entry.HistoryID)
		}
	}

	last := entries[len(entries)-1]
	if last.StatusTo != currentStatus {
		return fmt.Errorf("history ends at %q but application status is %q", last.StatusTo, currentStatus)
	}
	return nil
}

// ValidateVersionChain checks one document slot: versions run 1..n with no
// repeats or skips, exactly one row is current and it is the highest version,
// and the parent/replaced_by pointers agree with the version order. Walking
// parent_document_id from the current row must visit the same rows as sorting
// by version. Manual slots hold a single unversioned row and pass trivially.
func ValidateVersionChain(docs []models.ApplicationDocument) error {
	if len(docs) == 0 {
		return fmt.Errorf("document slot is empty")
	}

	sorted := make([]models.ApplicationDocument, len(docs))
	copy(sorted, docs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Version < sorted[j].Version })

	currents := 0
	for _, doc := range sorted {
		if doc.IsCurrent {
			currents++
		}
	}
	if currents != 1 {
		return fmt.Errorf("slot has %d current versions, want exactly 1", currents)
	}

	for i, doc := range sorted {
		if doc.Version != i+1 {
			return fmt.Errorf("document %d has version %d, want %d", doc.DocumentID, doc.Version, i+1)
		}
		if i == 0 {
			if doc.ParentDocumentID != nil {
				return fmt.Errorf("document %d is version 1 but has a parent", doc.DocumentID)
			}
		} else {
			parent := sorted[i-1]
			if doc.ParentDocumentID == nil || *doc.ParentDocumentID != parent.DocumentID {
				return fmt.Errorf("document %d does not point at version %d", doc.DocumentID, parent.Version)
			}
			if parent.ReplacedBy == nil || *parent.ReplacedBy != doc.DocumentID {
				return fmt.Errorf("document %d is not marked replaced by version %d", parent.DocumentID, doc.Version)
			}
			if parent.IsCurrent {
				return fmt.Errorf("document %d is superseded but still current", parent.DocumentID)
			}
		}
	}

	head := sorted[len(sorted)-1]
	if !head.IsCurrent {
		return fmt.Errorf("highest version %d is not the current one", head.Version)
	}
	if head.ReplacedBy != nil || head.ReplacedAt != nil {
		return fmt.Errorf("current document %d carries replacement markers", head.DocumentID)
	}

	// Chain traversal and filter+sort must agree.
	byID := make(map[int]models.ApplicationDocument, len(sorted))
	for _, doc := range sorted {
		byID[doc.DocumentID] = doc
	}
	walked := 0
	for doc, ok := head, true; ok; {
		walked++
		if walked > len(sorted) {
			return fmt.Errorf("parent chain has a cycle")
		}
		if doc.ParentDocumentID == nil {
			break
		}
		doc, ok = byID[*doc.ParentDocumentID]
		if !ok {
			return fmt.Errorf("parent chain leaves the slot")
		}
	}
	if walked != len(sorted) {
		return fmt.Errorf("parent chain visits %d of %d versions", walked, len(sorted))
	}

	return nil
}

// AuditApplication re-checks the ledger invariants for one application and
// returns the list of violations found (empty when the record is clean).
func AuditApplication(module string, applicationID int, currentStatus string) ([]string, error) {
	var violations []string

	entries, err := ListStatusHistory(module, applicationID)
	if err != nil {
		return nil, err
	}
	if err := ValidateHistoryChain(entries, currentStatus); err != nil {
		violations = append(violations, err.Error())
	}

	var docs []models.ApplicationDocument
	if err := config.DB.Where("module = ? AND application_id = ?", module, applicationID).
		Find(&docs).Error; err != nil {
		return nil, err
	}

	slots := make(map[string][]models.ApplicationDocument)
	for _, doc := range docs {
		slots[doc.DocumentType] = append(slots[doc.DocumentType], doc)
	}
	types := make([]string, 0, len(slots))
	for t := range slots {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		if err := ValidateVersionChain(slots[t]); err != nil {
			violations = append(violations, fmt.Sprintf("slot %s: %v", t, err))
		}
	}

	return violations, nil
}
