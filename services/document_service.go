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

// DocumentPayload carries one attach request. Kind selects between a file
// upload and a typed-in manual reference.
type DocumentPayload struct {
	DocumentType string
	Kind         string
	ManualID     string
	FilePath     string
	FileName     string
	FileSize     int64
	MimeType     string
	UploadedBy   int
}

// attachAction is the pure decision for an attach call against an occupied
// slot.
type attachAction int

const (
	actionReplace   attachAction = iota // insert the next upload version
	actionOverwrite                     // update the manual row in place
)

// planAttach decides what an attach against the current document may do.
// Upload slots are replaceable only after rejection; manual slots are never
// versioned and instead overwrite their reference in place, which is likewise
// blocked once the entry has been approved.
func planAttach(current *models.ApplicationDocument, payload DocumentPayload) (attachAction, error) {
	if current.Kind != payload.Kind {
		return 0, NewValidationError("type", "Document slot is managed as "+current.Kind)
	}
	if current.Kind == models.DocumentKindManual {
		if current.Status == models.DocumentStatusApproved {
			return 0, ErrSlotOccupied
		}
		return actionOverwrite, nil
	}
	if current.Status != models.DocumentStatusRejected {
		return 0, ErrSlotOccupied
	}
	return actionReplace, nil
}

func newDocumentRow(module string, applicationID int, payload DocumentPayload) models.ApplicationDocument {
	doc := models.ApplicationDocument{
		Module:        module,
		ApplicationID: applicationID,
		DocumentType:  payload.DocumentType,
		Kind:          payload.Kind,
		Status:        models.DocumentStatusPending,
		Version:       1,
		IsCurrent:     true,
		UploadedBy:    payload.UploadedBy,
	}
	if payload.Kind == models.DocumentKindManual {
		manualID := payload.ManualID
		doc.ManualID = &manualID
	} else {
		path, name, mime := payload.FilePath, payload.FileName, payload.MimeType
		size := payload.FileSize
		doc.FilePath = &path
		doc.FileName = &name
		doc.FileSize = &size
		doc.MimeType = &mime
	}
	return doc
}

// AttachDocument fills a document slot. An empty slot gets version 1; an
// occupied upload slot whose current version was rejected gets the next
// version, flipping the old row's current pointer in the same transaction; a
// manual slot has its reference overwritten in place and re-enters review.
// Resubmitting a document while the application sits in the module's revision
// status resumes the current stage's review.
func AttachDocument(module workflow.Module, applicationID int, payload DocumentPayload) (*models.ApplicationDocument, error) {
	var doc models.ApplicationDocument

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		// The application row is the slot's lock boundary. An empty slot has
		// no document row to lock, so concurrent first attaches must
		// serialize on the application itself; the loser then re-reads a
		// slot that is no longer empty.
		var appRow struct{ ApplicationID int }
		if err := tx.Table(module.Table).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("application_id").
			Where("application_id = ?", applicationID).
			Take(&appRow).Error; err != nil {
			return wrapNotFound(err)
		}

		var current models.ApplicationDocument
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("module = ? AND application_id = ? AND document_type = ? AND is_current = ?",
				module.Name, applicationID, payload.DocumentType, true).
			First(&current).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			doc = newDocumentRow(module.Name, applicationID, payload)
			return tx.Create(&doc).Error
		}
		if err != nil {
			return err
		}

		action, err := planAttach(&current, payload)
		if err != nil {
			return err
		}

		now := time.Now()
		if action == actionOverwrite {
			res := tx.Model(&models.ApplicationDocument{}).
				Where("document_id = ? AND is_current = ?", current.DocumentID, true).
				Updates(map[string]interface{}{
					"manual_id":   payload.ManualID,
					"status":      models.DocumentStatusPending,
					"reviewed_by": nil,
					"reviewed_at": nil,
					"notes":       nil,
					"update_at":   now,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrSlotOccupied
			}
			if err := tx.Where("document_id = ?", current.DocumentID).First(&doc).Error; err != nil {
				return err
			}
			return resumeFromRevision(tx, module, applicationID, payload.UploadedBy)
		}

		doc = newDocumentRow(module.Name, applicationID, payload)
		doc.Version = current.Version + 1
		doc.ParentDocumentID = &current.DocumentID
		if err := tx.Create(&doc).Error; err != nil {
			return err
		}

		res := tx.Model(&models.ApplicationDocument{}).
			Where("document_id = ? AND is_current = ?", current.DocumentID, true).
			Updates(map[string]interface{}{
				"is_current":  false,
				"replaced_by": doc.DocumentID,
				"replaced_at": now,
				"update_at":   now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrSlotOccupied
		}

		return resumeFromRevision(tx, module, applicationID, payload.UploadedBy)
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// resumeTarget returns the status a revision-parked application goes back to
// when a document is resubmitted: its current stage's review status. False
// for modules without a revision status or applications not sitting in it.
func resumeTarget(module workflow.Module, status, currentStage string) (string, bool) {
	if module.Revision == "" || status != module.Revision {
		return "", false
	}
	return module.ReviewStatusFor(currentStage)
}

// resumeFromRevision flips an application back to its current stage's review
// status when a document is resubmitted while revision is requested. Both
// attach outcomes count as resubmission, the next upload version and the
// corrected manual reference alike.
func resumeFromRevision(tx *gorm.DB, module workflow.Module, applicationID, actorID int) error {
	if module.Revision == "" {
		return nil
	}

	var row struct {
		Status       string
		CurrentStage string
	}
	if err := tx.Table(module.Table).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("status", "current_stage").
		Where("application_id = ?", applicationID).
		Take(&row).Error; err != nil {
		return err
	}
	resumeStatus, ok := resumeTarget(module, row.Status, row.CurrentStage)
	if !ok {
		return nil
	}

	res := tx.Table(module.Table).
		Where("application_id = ? AND status = ?", applicationID, module.Revision).
		Updates(map[string]interface{}{"status": resumeStatus, "update_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return nil
	}

	from := module.Revision
	note := "document resubmitted"
	return appendStatusHistory(tx, module.Name, applicationID, &from, resumeStatus, actorID, &note)
}

// planReview validates a review decision against the document's state.
func planReview(doc *models.ApplicationDocument, decision, notes string) error {
	if decision != models.DocumentStatusApproved && decision != models.DocumentStatusRejected {
		return NewValidationError("status", "Must be one of: approved, rejected")
	}
	if doc.Status != models.DocumentStatusPending {
		return ErrNotPending
	}
	if decision == models.DocumentStatusRejected && strings.TrimSpace(notes) == "" {
		return ErrNotesRequired
	}
	return nil
}

// ReviewDocument approves or rejects a pending document version.
func ReviewDocument(module workflow.Module, applicationID, documentID int, decision string, reviewerID int, notes string) (*models.ApplicationDocument, error) {
	var doc models.ApplicationDocument

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("document_id = ? AND module = ? AND application_id = ?",
				documentID, module.Name, applicationID).
			First(&doc).Error; err != nil {
			return wrapNotFound(err)
		}

		if err := planReview(&doc, decision, notes); err != nil {
			return err
		}

		now := time.Now()
		res := tx.Model(&models.ApplicationDocument{}).
			Where("document_id = ? AND status = ?", doc.DocumentID, models.DocumentStatusPending).
			Updates(map[string]interface{}{
				"status":      decision,
				"reviewed_by": reviewerID,
				"reviewed_at": now,
				"notes":       notesPtr(notes),
				"update_at":   now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotPending
		}

		doc.Status = decision
		doc.ReviewedBy = &reviewerID
		doc.ReviewedAt = &now
		doc.Notes = notesPtr(notes)
		doc.UpdateAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	notifyDocumentReview(module, &doc)
	return &doc, nil
}

// CurrentDocument returns the authoritative version for a slot, or ErrNotFound.
func CurrentDocument(module string, applicationID int, documentType string) (*models.ApplicationDocument, error) {
	var doc models.ApplicationDocument
	err := config.DB.
		Where("module = ? AND application_id = ? AND document_type = ? AND is_current = ?",
			module, applicationID, documentType, true).
		First(&doc).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &doc, nil
}

// DocumentHistory returns every version of a slot, oldest first. The result
// matches walking the parent_document_id chain from the current row.
func DocumentHistory(module string, applicationID int, documentType string) ([]models.ApplicationDocument, error) {
	var docs []models.ApplicationDocument
	err := config.DB.
		Where("module = ? AND application_id = ? AND document_type = ?",
			module, applicationID, documentType).
		Order("version ASC").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// ListDocuments returns the current version of every slot of an application.
func ListDocuments(module string, applicationID int) ([]models.ApplicationDocument, error) {
	var docs []models.ApplicationDocument
	err := config.DB.
		Where("module = ? AND application_id = ? AND is_current = ?", module, applicationID, true).
		Order("document_type ASC").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// GetDocument loads one document version of an application.
func GetDocument(module string, applicationID, documentID int) (*models.ApplicationDocument, error) {
	var doc models.ApplicationDocument
	err := config.DB.
		Where("document_id = ? AND module = ? AND application_id = ?", documentID, module, applicationID).
		First(&doc).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &doc, nil
}
