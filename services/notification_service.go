package services

import (
	"fmt"
	"log"
	"strings"

	"eservices-api/config"
	"eservices-api/models"
	"eservices-api/workflow"
)

// notifyStatusChange emails the applicant after a committed status change.
// Mail failures are logged and never fail the request.
func notifyStatusChange(module workflow.Module, w *models.WorkflowState, notes string) {
	var applicant models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", w.ApplicantID).
		First(&applicant).Error; err != nil {
		log.Printf("Warning: skipping status notification for %s: %v", w.ReferenceNumber, err)
		return
	}

	subject := fmt.Sprintf("[%s] Application %s is now %s",
		strings.ToUpper(module.Name), w.ReferenceNumber, strings.ReplaceAll(w.Status, "_", " "))

	body := fmt.Sprintf("<p>Dear %s,</p><p>Your %s application <b>%s</b> has moved to status <b>%s</b>.</p>",
		applicant.FullName(), module.Name, w.ReferenceNumber, strings.ReplaceAll(w.Status, "_", " "))
	if trimmed := strings.TrimSpace(notes); trimmed != "" {
		body += fmt.Sprintf("<p>Remarks: %s</p>", trimmed)
	}

	if err := config.SendMail([]string{applicant.Email}, subject, body); err != nil {
		log.Printf("Warning: failed to send status notification for %s: %v", w.ReferenceNumber, err)
	}
}

// notifyDocumentReview emails the uploader after a document decision.
func notifyDocumentReview(module workflow.Module, doc *models.ApplicationDocument) {
	var uploader models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", doc.UploadedBy).
		First(&uploader).Error; err != nil {
		log.Printf("Warning: skipping document notification for document %d: %v", doc.DocumentID, err)
		return
	}

	subject := fmt.Sprintf("[%s] Document %s %s",
		strings.ToUpper(module.Name), doc.DocumentType, doc.Status)

	body := fmt.Sprintf("<p>Dear %s,</p><p>Your document <b>%s</b> (version %d) was <b>%s</b>.</p>",
		uploader.FullName(), doc.DocumentType, doc.Version, doc.Status)
	if doc.Notes != nil && *doc.Notes != "" {
		body += fmt.Sprintf("<p>Reviewer notes: %s</p>", *doc.Notes)
	}
	if doc.Status == models.DocumentStatusRejected {
		body += "<p>Please upload a corrected version.</p>"
	}

	if err := config.SendMail([]string{uploader.Email}, subject, body); err != nil {
		log.Printf("Warning: failed to send document notification for document %d: %v", doc.DocumentID, err)
	}
}
