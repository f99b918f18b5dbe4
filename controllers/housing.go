package controllers

import (
	"log"
	"net/http"
	"time"

	"eservices-api/config"
	"eservices-api/models"
	"eservices-api/services"
	"eservices-api/utils"
	"eservices-api/workflow"

	"github.com/gin-gonic/gin"
)

var civilStatusOptions = []string{"single", "married", "widowed", "separated"}

var housingCreateRules = utils.RuleSet{
	{Field: "beneficiary_name", Checks: []utils.Check{utils.Required(), utils.MaxLen(200)}},
	{Field: "birth_date", Checks: []utils.Check{utils.Required(), utils.DateISO()}},
	{Field: "civil_status", Checks: []utils.Check{utils.Required(), utils.OneOf(civilStatusOptions...)}},
	{
		Field: "spouse_name",
		When: func(v utils.Values) bool {
			return v.String("civil_status") == "married"
		},
		Checks: []utils.Check{utils.Required(), utils.MaxLen(200)},
	},
	{Field: "household_size", Checks: []utils.Check{utils.Required(), utils.IntegerMin(1)}},
	{Field: "monthly_income", Checks: []utils.Check{utils.Required(), utils.NumberMin(0)}},
	{Field: "current_address", Checks: []utils.Check{utils.Required(), utils.MaxLen(500)}},
}

// CreateHousingApplication opens a housing beneficiary application in draft
// status. The zoning clearance reference is an opaque cross-module value:
// its format is enforced, but the lookup is advisory only and a miss is just
// logged, since the modules are independently deployable.
func CreateHousingApplication(c *gin.Context) {
	var payload utils.Values
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	fieldErrs, err := housingCreateRules.Validate(payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if fieldErrs == nil {
		fieldErrs = utils.FieldErrors{}
	}

	var clearanceRef *models.ApplicationRef
	if raw := payload.String("zoning_clearance_ref"); raw != "" {
		ref := models.ApplicationRef(raw)
		if !ref.Valid() || ref.Prefix() != workflow.Zoning.Prefix {
			fieldErrs["zoning_clearance_ref"] = append(fieldErrs["zoning_clearance_ref"],
				"Must be a zoning clearance reference (ZC-YYYY-NNNN)")
		} else {
			var n int64
			if err := config.DB.Table(workflow.Zoning.Table).
				Where("reference_number = ?", ref.String()).
				Count(&n).Error; err != nil {
				respondServiceError(c, err)
				return
			}
			if n == 0 {
				log.Printf("Warning: housing application references unknown zoning clearance %s", ref)
			}
			clearanceRef = &ref
		}
	}

	if len(fieldErrs) > 0 {
		respondServiceError(c, &services.ValidationError{Fields: fieldErrs})
		return
	}

	birthDate, _ := time.Parse("2006-01-02", payload.String("birth_date"))
	householdSize, _ := payload.Number("household_size")
	income, _ := payload.Number("monthly_income")

	app := models.HousingApplication{
		BeneficiaryName:    payload.String("beneficiary_name"),
		BirthDate:          &birthDate,
		CivilStatus:        payload.String("civil_status"),
		HouseholdSize:      int(householdSize),
		MonthlyIncome:      income,
		CurrentAddress:     payload.String("current_address"),
		ZoningClearanceRef: clearanceRef,
	}
	if spouse := payload.String("spouse_name"); spouse != "" {
		app.SpouseName = &spouse
	}
	app.ApplicantID = currentUserID(c)

	if err := services.CreateApplication[models.HousingApplication, *models.HousingApplication](workflow.Housing, &app, currentUserID(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Housing application created successfully",
		"application": app,
	})
}
