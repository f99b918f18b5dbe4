package services

import (
	"fmt"
	"time"

	"eservices-api/workflow"

	"gorm.io/gorm"
)

// nextReferenceNumber generates a PREFIX-YYYY-NNNN reference inside the
// create transaction. The sequence restarts each year per module; the column's
// unique index backstops the count against rare duplicate races.
func nextReferenceNumber(tx *gorm.DB, module workflow.Module, now time.Time) (string, error) {
	prefix := fmt.Sprintf("%s-%d-", module.Prefix, now.Year())

	var count int64
	if err := tx.Table(module.Table).
		Where("reference_number LIKE ?", prefix+"%").
		Count(&count).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("%s%04d", prefix, count+1), nil
}
