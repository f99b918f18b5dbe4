package controllers

import (
	"net/http"

	"eservices-api/models"
	"eservices-api/services"
	"eservices-api/workflow"

	"github.com/gin-gonic/gin"
)

// The application endpoints are identical across modules except for the
// transition table and the create payload, so the handlers are produced by
// generic factories instantiated once per module below. Create handlers live
// in the per-module files (zoning.go, subdivision.go, housing.go) because
// their field sets and validation rules differ.

type applicationPtr[T any] interface {
	*T
	models.ApplicationRecord
}

func listApplicationsHandler[T any, PT applicationPtr[T]](module workflow.Module) gin.HandlerFunc {
	return func(c *gin.Context) {
		applicantID := 0
		if currentRole(c) == models.RoleApplicant {
			applicantID = currentUserID(c)
		}

		apps, err := services.ListApplications[T, PT](applicantID, c.Query("status"))
		if err != nil {
			respondServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"applications": apps, "total": len(apps)})
	}
}

func getApplicationHandler[T any, PT applicationPtr[T]](module workflow.Module) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		app, err := services.GetApplication[T, PT](id)
		if err != nil {
			respondServiceError(c, err)
			return
		}

		w := app.Workflow()
		if !canActOn(c, w.ApplicantID) {
			// Applicants cannot probe other applicants' records.
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}

		history, err := services.ListStatusHistory(module.Name, id)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		documents, err := services.ListDocuments(module.Name, id)
		if err != nil {
			respondServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"application":    app,
			"status_history": history,
			"documents":      documents,
		})
	}
}

func submitApplicationHandler[T any, PT applicationPtr[T]](module workflow.Module) gin.HandlerFunc {
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

		app, err := services.SubmitApplication[T, PT](module, id, currentUserID(c))
		if err != nil {
			respondServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":     "Application submitted successfully",
			"application": app,
		})
	}
}

func transitionStatusHandler[T any, PT applicationPtr[T]](module workflow.Module) gin.HandlerFunc {
	type transitionRequest struct {
		Status string `json:"status" binding:"required"`
		Notes  string `json:"notes"`
	}

	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var req transitionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		app, err := services.TransitionStatus[T, PT](module, id, req.Status, currentUserID(c), req.Notes)
		if err != nil {
			respondServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":     "Status updated successfully",
			"application": app,
		})
	}
}

func stageReviewHandler[T any, PT applicationPtr[T]](module workflow.Module) gin.HandlerFunc {
	type stageReviewRequest struct {
		Result string `json:"result" binding:"required"`
		Notes  string `json:"notes"`
	}

	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var req stageReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		app, err := services.ReviewStage[T, PT](module, id, req.Result, currentUserID(c), req.Notes)
		if err != nil {
			respondServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":     "Stage review recorded",
			"application": app,
		})
	}
}

func advanceStageHandler[T any, PT applicationPtr[T]](module workflow.Module) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		app, err := services.AdvanceStage[T, PT](module, id, currentUserID(c))
		if err != nil {
			respondServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":     "Stage advanced successfully",
			"application": app,
		})
	}
}

func auditApplicationHandler[T any, PT applicationPtr[T]](module workflow.Module) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		app, err := services.GetApplication[T, PT](id)
		if err != nil {
			respondServiceError(c, err)
			return
		}

		violations, err := services.AuditApplication(module.Name, id, app.Workflow().Status)
		if err != nil {
			respondServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"reference_number": app.Workflow().ReferenceNumber,
			"clean":            len(violations) == 0,
			"violations":       violations,
		})
	}
}

// Zoning clearance handlers.
var (
	ListZoningApplications  = listApplicationsHandler[models.ZoningApplication, *models.ZoningApplication](workflow.Zoning)
	GetZoningApplication    = getApplicationHandler[models.ZoningApplication, *models.ZoningApplication](workflow.Zoning)
	SubmitZoningApplication = submitApplicationHandler[models.ZoningApplication, *models.ZoningApplication](workflow.Zoning)
	TransitionZoningStatus  = transitionStatusHandler[models.ZoningApplication, *models.ZoningApplication](workflow.Zoning)
	AuditZoningApplication  = auditApplicationHandler[models.ZoningApplication, *models.ZoningApplication](workflow.Zoning)
)

// Subdivision plan review handlers.
var (
	ListSubdivisionApplications = listApplicationsHandler[models.SubdivisionApplication, *models.SubdivisionApplication](workflow.Subdivision)
	GetSubdivisionApplication   = getApplicationHandler[models.SubdivisionApplication, *models.SubdivisionApplication](workflow.Subdivision)
	TransitionSubdivisionStatus = transitionStatusHandler[models.SubdivisionApplication, *models.SubdivisionApplication](workflow.Subdivision)
	ReviewSubdivisionStage      = stageReviewHandler[models.SubdivisionApplication, *models.SubdivisionApplication](workflow.Subdivision)
	AdvanceSubdivisionStage     = advanceStageHandler[models.SubdivisionApplication, *models.SubdivisionApplication](workflow.Subdivision)
	AuditSubdivisionApplication = auditApplicationHandler[models.SubdivisionApplication, *models.SubdivisionApplication](workflow.Subdivision)
)

// Housing beneficiary handlers.
var (
	ListHousingApplications  = listApplicationsHandler[models.HousingApplication, *models.HousingApplication](workflow.Housing)
	GetHousingApplication    = getApplicationHandler[models.HousingApplication, *models.HousingApplication](workflow.Housing)
	SubmitHousingApplication = submitApplicationHandler[models.HousingApplication, *models.HousingApplication](workflow.Housing)
	TransitionHousingStatus  = transitionStatusHandler[models.HousingApplication, *models.HousingApplication](workflow.Housing)
	AuditHousingApplication  = auditApplicationHandler[models.HousingApplication, *models.HousingApplication](workflow.Housing)
)
