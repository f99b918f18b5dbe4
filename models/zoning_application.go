package models

// ZoningApplication represents a zoning clearance application.
type ZoningApplication struct {
	WorkflowState
	ParcelNumber       string  `gorm:"column:parcel_number" json:"parcel_number"`
	Barangay           string  `gorm:"column:barangay" json:"barangay"`
	LandUse            string  `gorm:"column:land_use" json:"land_use"`
	LotAreaSqm         float64 `gorm:"column:lot_area_sqm" json:"lot_area_sqm"`
	ProjectDescription string  `gorm:"column:project_description" json:"project_description"`
}

func (ZoningApplication) TableName() string {
	return "zoning_applications"
}
