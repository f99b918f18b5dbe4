package controllers

import (
	"net/http"
	"os"
	"path/filepath"

	"eservices-api/models"
	"eservices-api/services"
	"eservices-api/utils"
	"eservices-api/workflow"

	"github.com/gin-gonic/gin"
)

// attachDocumentHandler accepts a multipart body with document_type and
// either a file or a manual_id. The slot decides versioning: uploads chain
// versions, manual entries overwrite in place.
func attachDocumentHandler(module workflow.Module) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		applicantID, _, err := applicationOwner(module, id)
		if err != nil {
			respondServiceError(c, services.ErrNotFound)
			return
		}
		if !canActOn(c, applicantID) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}

		documentType := c.PostForm("document_type")
		if documentType == "" {
			respondServiceError(c, services.NewValidationError("document_type", "This field is required"))
			return
		}

		payload := services.DocumentPayload{
			DocumentType: documentType,
			UploadedBy:   currentUserID(c),
		}

		var storedPath string
		if manualID := c.PostForm("manual_id"); manualID != "" {
			payload.Kind = models.DocumentKindManual
			payload.ManualID = manualID
		} else {
			file, err := c.FormFile("file")
			if err != nil {
				respondServiceError(c, services.NewValidationError("file", "Either a file or manual_id is required"))
				return
			}
			if file.Size > utils.MaxUploadBytes {
				respondServiceError(c, services.NewValidationError("file", "File exceeds the 10 MB limit"))
				return
			}
			mimeType := file.Header.Get("Content-Type")
			if !utils.AllowedUploadType(mimeType) {
				respondServiceError(c, services.NewValidationError("file", "File type is not allowed"))
				return
			}

			dir, err := utils.UploadDir(module.Name, id)
			if err != nil {
				respondServiceError(c, err)
				return
			}
			storedPath = filepath.Join(dir, utils.StoredFileName(file.Filename))
			if err := c.SaveUploadedFile(file, storedPath); err != nil {
				respondServiceError(c, err)
				return
			}

			payload.Kind = models.DocumentKindUpload
			payload.FilePath = storedPath
			payload.FileName = file.Filename
			payload.FileSize = file.Size
			payload.MimeType = mimeType
		}

		doc, err := services.AttachDocument(module, id, payload)
		if err != nil {
			// The row was never written; do not keep the orphaned file.
			if storedPath != "" {
				os.Remove(storedPath)
			}
			respondServiceError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":  "Document attached successfully",
			"document": doc,
		})
	}
}

func reviewDocumentHandler(module workflow.Module) gin.HandlerFunc {
	type reviewRequest struct {
		Status string `json:"status" binding:"required"`
		Notes  string `json:"notes"`
	}

	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		documentID, ok := parseIDParam(c, "document_id")
		if !ok {
			return
		}

		var req reviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		doc, err := services.ReviewDocument(module, id, documentID, req.Status, currentUserID(c), req.Notes)
		if err != nil {
			respondServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":  "Document review recorded",
			"document": doc,
		})
	}
}

// listDocumentsHandler returns the current version of every slot, or the full
// version history of one slot when document_type is passed.
func listDocumentsHandler(module workflow.Module) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		applicantID, _, err := applicationOwner(module, id)
		if err != nil {
			respondServiceError(c, services.ErrNotFound)
			return
		}
		if !canActOn(c, applicantID) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}

		if documentType := c.Query("document_type"); documentType != "" {
			docs, err := services.DocumentHistory(module.Name, id, documentType)
			if err != nil {
				respondServiceError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"documents": docs, "total": len(docs)})
			return
		}

		docs, err := services.ListDocuments(module.Name, id)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"documents": docs, "total": len(docs)})
	}
}

func downloadDocumentHandler(module workflow.Module) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		documentID, ok := parseIDParam(c, "document_id")
		if !ok {
			return
		}

		applicantID, _, err := applicationOwner(module, id)
		if err != nil {
			respondServiceError(c, services.ErrNotFound)
			return
		}
		if !canActOn(c, applicantID) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}

		doc, err := services.GetDocument(module.Name, id, documentID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		if doc.Kind != models.DocumentKindUpload || doc.FilePath == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Document has no stored file"})
			return
		}
		if _, err := os.Stat(*doc.FilePath); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Stored file is missing"})
			return
		}

		name := filepath.Base(*doc.FilePath)
		if doc.FileName != nil {
			name = *doc.FileName
		}
		c.FileAttachment(*doc.FilePath, name)
	}
}

// Per-module document handlers.
var (
	AttachZoningDocument   = attachDocumentHandler(workflow.Zoning)
	ReviewZoningDocument   = reviewDocumentHandler(workflow.Zoning)
	ListZoningDocuments    = listDocumentsHandler(workflow.Zoning)
	DownloadZoningDocument = downloadDocumentHandler(workflow.Zoning)

	AttachSubdivisionDocument   = attachDocumentHandler(workflow.Subdivision)
	ReviewSubdivisionDocument   = reviewDocumentHandler(workflow.Subdivision)
	ListSubdivisionDocuments    = listDocumentsHandler(workflow.Subdivision)
	DownloadSubdivisionDocument = downloadDocumentHandler(workflow.Subdivision)

	AttachHousingDocument   = attachDocumentHandler(workflow.Housing)
	ReviewHousingDocument   = reviewDocumentHandler(workflow.Housing)
	ListHousingDocuments    = listDocumentsHandler(workflow.Housing)
	DownloadHousingDocument = downloadDocumentHandler(workflow.Housing)
)
