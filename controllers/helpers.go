package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"eservices-api/config"
	"eservices-api/models"
	"eservices-api/services"
	"eservices-api/workflow"

	"github.com/gin-gonic/gin"
)

func currentUserID(c *gin.Context) int {
	id, _ := c.Get("userID")
	userID, _ := id.(int)
	return userID
}

func currentRole(c *gin.Context) string {
	role, _ := c.Get("role")
	name, _ := role.(string)
	return name
}

func parseIDParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

// applicationOwner fetches just the owner and status columns of one
// application row.
func applicationOwner(module workflow.Module, applicationID int) (int, string, error) {
	var row struct {
		ApplicantID int
		Status      string
	}
	err := config.DB.Table(module.Table).
		Select("applicant_id", "status").
		Where("application_id = ?", applicationID).
		Take(&row).Error
	if err != nil {
		return 0, "", err
	}
	return row.ApplicantID, row.Status, nil
}

// canActOn reports whether the caller may touch an application: applicants
// only their own, reviewer roles anything.
func canActOn(c *gin.Context, applicantID int) bool {
	if currentRole(c) == models.RoleApplicant {
		return applicantID == currentUserID(c)
	}
	return true
}

// respondServiceError maps service error kinds onto HTTP responses. Business
// errors get 4xx; anything unrecognized is an infrastructure failure.
func respondServiceError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "errors": vErr.Fields})
		return
	}

	var tErr *services.InvalidTransitionError
	if errors.As(err, &tErr) {
		c.JSON(http.StatusConflict, gin.H{
			"error":     "Invalid transition",
			"current":   tErr.Current,
			"attempted": tErr.Attempted,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrSlotOccupied):
		c.JSON(http.StatusConflict, gin.H{"error": "Document slot already has an active version"})
	case errors.Is(err, services.ErrNotPending):
		c.JSON(http.StatusConflict, gin.H{"error": "Document is not awaiting review"})
	case errors.Is(err, services.ErrStageNotReady):
		c.JSON(http.StatusConflict, gin.H{"error": "Current stage has not been approved"})
	case errors.Is(err, services.ErrNotesRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Notes are required for a rejection"})
	case errors.Is(err, services.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	default:
		log.Printf("Internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
