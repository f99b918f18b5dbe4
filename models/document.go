package models

import "time"

// Document slot kinds. Upload slots hold file-bearing version chains; manual
// slots hold a typed-in reference id and are never versioned.
const (
	DocumentKindUpload = "upload"
	DocumentKindManual = "manual"
)

// Per-document review sub-statuses, independent of the owning application's
// overall status.
const (
	DocumentStatusPending  = "pending"
	DocumentStatusApproved = "approved"
	DocumentStatusRejected = "rejected"
)

// ApplicationDocument is one version of an application's document slot. For a
// fixed (module, application_id, document_type) the rows form a linked version
// chain via parent_document_id, version starts at 1 and increases by one per
// re-upload, and exactly one row has is_current = true. The slot+version
// unique index backstops the attach transaction against duplicate versions.
type ApplicationDocument struct {
	DocumentID    int    `gorm:"primaryKey;column:document_id" json:"document_id"`
	Module        string `gorm:"column:module;uniqueIndex:uniq_slot_version" json:"module"`
	ApplicationID int    `gorm:"column:application_id;uniqueIndex:uniq_slot_version" json:"application_id"`
	DocumentType  string `gorm:"column:document_type;uniqueIndex:uniq_slot_version" json:"document_type"`
	Kind          string `gorm:"column:kind" json:"kind"`

	// Manual entry; set only when Kind is manual.
	ManualID *string `gorm:"column:manual_id" json:"manual_id,omitempty"`

	// File attributes; null together when Kind is manual.
	FilePath *string `gorm:"column:file_path" json:"file_path,omitempty"`
	FileName *string `gorm:"column:file_name" json:"file_name,omitempty"`
	FileSize *int64  `gorm:"column:file_size" json:"file_size,omitempty"`
	MimeType *string `gorm:"column:mime_type" json:"mime_type,omitempty"`

	Status     string     `gorm:"column:status" json:"status"`
	ReviewedBy *int       `gorm:"column:reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	Notes      *string    `gorm:"column:notes" json:"notes,omitempty"`

	Version          int        `gorm:"column:version;uniqueIndex:uniq_slot_version" json:"version"`
	ParentDocumentID *int       `gorm:"column:parent_document_id" json:"parent_document_id,omitempty"`
	IsCurrent        bool       `gorm:"column:is_current" json:"is_current"`
	ReplacedBy       *int       `gorm:"column:replaced_by" json:"replaced_by,omitempty"`
	ReplacedAt       *time.Time `gorm:"column:replaced_at" json:"replaced_at,omitempty"`

	UploadedBy int       `gorm:"column:uploaded_by" json:"uploaded_by"`
	CreateAt   time.Time `gorm:"column:create_at;autoCreateTime" json:"create_at"`
	UpdateAt   time.Time `gorm:"column:update_at;autoUpdateTime" json:"update_at"`
}

func (ApplicationDocument) TableName() string {
	return "application_documents"
}
