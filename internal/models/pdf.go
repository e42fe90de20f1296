// internal/models/pdf.go
package models

import (
	"github.com/google/uuid"
)

type PDF struct {
	BaseModel
	UploaderID  uuid.UUID    `json:"uploader_id" gorm:"type:uuid;not null;index"`
	CategoryID  uuid.UUID    `json:"category_id" gorm:"type:uuid;not null;index"`
	Title       string       `json:"title" gorm:"size:255;not null"`
	Description string       `json:"description,omitempty" gorm:"type:text"`
	FileURL     string       `json:"file_url" gorm:"size:512;not null"`
	FileKey     string       `json:"-" gorm:"size:512"`
	FileSize    int64        `json:"file_size" gorm:"default:0"`
	PageCount   int          `json:"page_count" gorm:"default:0"`
	// Best-effort counter, not a ledger. Concurrent downloads may lose an
	// increment; the column only ever grows.
	DownloadsCount int64        `json:"downloads_count" gorm:"default:0"`
	Status         UploadStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`

	// Relationships
	Uploader Profile  `json:"uploader,omitempty" gorm:"foreignKey:UploaderID"`
	Category Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}
