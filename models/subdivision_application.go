package models

// SubdivisionApplication represents a subdivision plan review application.
// Besides the overall status it tracks the review stage (concept through
// final) with a per-stage review result.
type SubdivisionApplication struct {
	WorkflowState
	ProjectName     string  `gorm:"column:project_name" json:"project_name"`
	DeveloperName   string  `gorm:"column:developer_name" json:"developer_name"`
	ParcelNumber    string  `gorm:"column:parcel_number" json:"parcel_number"`
	TotalAreaSqm    float64 `gorm:"column:total_area_sqm" json:"total_area_sqm"`
	LotCount        int     `gorm:"column:lot_count" json:"lot_count"`
	DrainagePlanRef *string `gorm:"column:drainage_plan_ref" json:"drainage_plan_ref,omitempty"`
}

func (SubdivisionApplication) TableName() string {
	return "subdivision_applications"
}
