package models

import "time"

// HousingApplication represents a housing beneficiary application. The zoning
// clearance reference is an opaque cross-module reference; its existence is
// checked only advisorily at write time.
type HousingApplication struct {
	WorkflowState
	BeneficiaryName    string          `gorm:"column:beneficiary_name" json:"beneficiary_name"`
	BirthDate          *time.Time      `gorm:"column:birth_date" json:"birth_date,omitempty"`
	CivilStatus        string          `gorm:"column:civil_status" json:"civil_status"`
	SpouseName         *string         `gorm:"column:spouse_name" json:"spouse_name,omitempty"`
	HouseholdSize      int             `gorm:"column:household_size" json:"household_size"`
	MonthlyIncome      float64         `gorm:"column:monthly_income" json:"monthly_income"`
	CurrentAddress     string          `gorm:"column:current_address" json:"current_address"`
	ZoningClearanceRef *ApplicationRef `gorm:"column:zoning_clearance_ref" json:"zoning_clearance_ref,omitempty"`
}

func (HousingApplication) TableName() string {
	return "housing_applications"
}
