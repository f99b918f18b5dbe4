package services

import (
	"eservices-api/config"
	"eservices-api/models"

	"gorm.io/gorm"
)

// appendStatusHistory inserts one ledger row inside the caller's transaction.
// The ledger is append-only: nothing in this codebase updates or deletes a
// history row. The caller is responsible for passing a from value consistent
// with the application's status at the time of the change.
func appendStatusHistory(tx *gorm.DB, module string, applicationID int, from *string, to string, actorID int, notes *string) error {
	entry := models.StatusHistoryEntry{
		Module:        module,
		ApplicationID: applicationID,
		StatusFrom:    from,
		StatusTo:      to,
		ChangedBy:     actorID,
		Notes:         notes,
	}
	return tx.Create(&entry).Error
}

// ListStatusHistory returns an application's transition ledger, oldest first.
func ListStatusHistory(module string, applicationID int) ([]models.StatusHistoryEntry, error) {
	var entries []models.StatusHistoryEntry
	err := config.DB.
		Where("module = ? AND application_id = ?", module, applicationID).
		Order("created_at ASC, history_id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
