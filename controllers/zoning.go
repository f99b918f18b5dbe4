package controllers

import (
	"net/http"

	"eservices-api/models"
	"eservices-api/services"
	"eservices-api/utils"
	"eservices-api/workflow"

	"github.com/gin-gonic/gin"
)

var landUseOptions = []string{"residential", "commercial", "industrial", "institutional", "mixed_use"}

var zoningCreateRules = utils.RuleSet{
	{Field: "parcel_number", Checks: []utils.Check{utils.Required(), utils.MaxLen(50)}},
	{Field: "barangay", Checks: []utils.Check{utils.Required(), utils.MaxLen(100)}},
	{Field: "land_use", Checks: []utils.Check{utils.Required(), utils.OneOf(landUseOptions...)}},
	{Field: "lot_area_sqm", Checks: []utils.Check{utils.Required(), utils.NumberMin(1)}},
	{Field: "project_description", Checks: []utils.Check{utils.Required(), utils.MaxLen(2000)}},
}

// CreateZoningApplication validates the payload against the zoning rule set
// and opens a clearance application in pending status.
func CreateZoningApplication(c *gin.Context) {
	var payload utils.Values
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	fieldErrs, err := zoningCreateRules.Validate(payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if fieldErrs != nil {
		respondServiceError(c, &services.ValidationError{Fields: fieldErrs})
		return
	}

	lotArea, _ := payload.Number("lot_area_sqm")
	app := models.ZoningApplication{
		ParcelNumber:       payload.String("parcel_number"),
		Barangay:           payload.String("barangay"),
		LandUse:            payload.String("land_use"),
		LotAreaSqm:         lotArea,
		ProjectDescription: payload.String("project_description"),
	}
	app.ApplicantID = currentUserID(c)

	if err := services.CreateApplication[models.ZoningApplication, *models.ZoningApplication](workflow.Zoning, &app, currentUserID(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Zoning application created successfully",
		"application": app,
	})
}
