package controllers

import (
	"net/http"

	"eservices-api/models"
	"eservices-api/services"
	"eservices-api/utils"
	"eservices-api/workflow"

	"github.com/gin-gonic/gin"
)

// Subdivisions of ten lots or more must reference a drainage plan on file.
const drainagePlanLotThreshold = 10

var subdivisionCreateRules = utils.RuleSet{
	{Field: "project_name", Checks: []utils.Check{utils.Required(), utils.MaxLen(200)}},
	{Field: "developer_name", Checks: []utils.Check{utils.Required(), utils.MaxLen(200)}},
	{Field: "parcel_number", Checks: []utils.Check{utils.Required(), utils.MaxLen(50)}},
	{Field: "total_area_sqm", Checks: []utils.Check{utils.Required(), utils.NumberMin(1)}},
	{Field: "lot_count", Checks: []utils.Check{utils.Required(), utils.IntegerMin(1)}},
	{
		Field: "drainage_plan_ref",
		When: func(v utils.Values) bool {
			n, ok := v.Number("lot_count")
			return ok && int(n) >= drainagePlanLotThreshold
		},
		Checks: []utils.Check{utils.Required(), utils.MaxLen(100)},
	},
}

// CreateSubdivisionApplication opens a subdivision plan review. Subdivision
// applications are submitted at creation: they start in submitted status at
// the concept stage with submitted_at stamped.
func CreateSubdivisionApplication(c *gin.Context) {
	var payload utils.Values
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	fieldErrs, err := subdivisionCreateRules.Validate(payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if fieldErrs != nil {
		respondServiceError(c, &services.ValidationError{Fields: fieldErrs})
		return
	}

	totalArea, _ := payload.Number("total_area_sqm")
	lotCount, _ := payload.Number("lot_count")
	app := models.SubdivisionApplication{
		ProjectName:   payload.String("project_name"),
		DeveloperName: payload.String("developer_name"),
		ParcelNumber:  payload.String("parcel_number"),
		TotalAreaSqm:  totalArea,
		LotCount:      int(lotCount),
	}
	if ref := payload.String("drainage_plan_ref"); ref != "" {
		app.DrainagePlanRef = &ref
	}
	app.ApplicantID = currentUserID(c)

	if err := services.CreateApplication[models.SubdivisionApplication, *models.SubdivisionApplication](workflow.Subdivision, &app, currentUserID(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Subdivision application created successfully",
		"application": app,
	})
}
