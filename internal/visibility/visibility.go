// internal/visibility/visibility.go

// Package visibility holds the public-listing rules. Moderation status and
// visibility are related but distinct: an approved book that has been sold
// stays approved while dropping out of the public listing.
package visibility

import (
	"gorm.io/gorm"

	"github.com/gurukulpustakalaya/backend/internal/models"
)

// BookVisible reports whether a book appears in public listing queries.
func BookVisible(status models.UploadStatus, isAvailable bool) bool {
	return status == models.UploadStatusApproved && isAvailable
}

// PDFVisible reports whether a PDF appears in the public library.
func PDFVisible(status models.UploadStatus) bool {
	return status == models.UploadStatusApproved
}

// PublicBooks scopes a query to publicly listable books.
func PublicBooks(db *gorm.DB) *gorm.DB {
	return db.Where("status = ? AND is_available = ?", models.UploadStatusApproved, true)
}

// PublicPDFs scopes a query to publicly listable PDFs.
func PublicPDFs(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", models.UploadStatusApproved)
}

// TextSearch scopes a query to a case-insensitive substring match over
// title and author.
func TextSearch(db *gorm.DB, term string) *gorm.DB {
	if term == "" {
		return db
	}
	pattern := "%" + term + "%"
	return db.Where("title ILIKE ? OR author ILIKE ?", pattern, pattern)
}
