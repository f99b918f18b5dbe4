package models

import "time"

// StatusHistoryEntry is one row of the append-only status transition ledger.
// The first entry of an application has a null status_from; every later entry
// chains its status_from to the previous entry's status_to. Rows are only ever
// inserted, there is no updated_at.
type StatusHistoryEntry struct {
	HistoryID     int       `gorm:"primaryKey;column:history_id" json:"history_id"`
	Module        string    `gorm:"column:module" json:"module"`
	ApplicationID int       `gorm:"column:application_id" json:"application_id"`
	StatusFrom    *string   `gorm:"column:status_from" json:"status_from"`
	StatusTo      string    `gorm:"column:status_to" json:"status_to"`
	ChangedBy     int       `gorm:"column:changed_by" json:"changed_by"`
	Notes         *string   `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (StatusHistoryEntry) TableName() string {
	return "application_status_history"
}
