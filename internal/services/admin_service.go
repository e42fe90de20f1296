// internal/services/admin_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/gurukulpustakalaya/backend/internal/models"
	"github.com/gurukulpustakalaya/backend/internal/moderation"
	"github.com/gurukulpustakalaya/backend/internal/realtime"
	"github.com/gurukulpustakalaya/backend/internal/utils"
)

// AdminService carries the moderation operations. Every entry point loads
// the acting profile's role from the store and runs it through the
// moderation guard; nothing here trusts a token claim.
type AdminService struct {
	db    *gorm.DB
	books *BookService
	pdfs  *PDFService
	feed  realtime.Feed
}

type DashboardStats struct {
	TotalUsers     int64 `json:"total_users"`
	TotalBooks     int64 `json:"total_books"`
	PendingBooks   int64 `json:"pending_books"`
	ApprovedBooks  int64 `json:"approved_books"`
	RejectedBooks  int64 `json:"rejected_books"`
	TotalPDFs      int64 `json:"total_pdfs"`
	PendingPDFs    int64 `json:"pending_pdfs"`
	ApprovedPDFs   int64 `json:"approved_pdfs"`
	RejectedPDFs   int64 `json:"rejected_pdfs"`
	TotalDownloads int64 `json:"total_downloads"`
}

func NewAdminService(db *gorm.DB, books *BookService, pdfs *PDFService, feed realtime.Feed) *AdminService {
	return &AdminService{db: db, books: books, pdfs: pdfs, feed: feed}
}

func (s *AdminService) GetDashboardStats(actor *models.Profile) (*DashboardStats, error) {
	if err := moderation.Authorize(actor.Role); err != nil {
		return nil, err
	}

	stats := &DashboardStats{}
	s.db.Model(&models.User{}).Count(&stats.TotalUsers)
	s.db.Model(&models.Book{}).Count(&stats.TotalBooks)
	s.db.Model(&models.Book{}).Where("status = ?", models.UploadStatusPending).Count(&stats.PendingBooks)
	s.db.Model(&models.Book{}).Where("status = ?", models.UploadStatusApproved).Count(&stats.ApprovedBooks)
	s.db.Model(&models.Book{}).Where("status = ?", models.UploadStatusRejected).Count(&stats.RejectedBooks)
	s.db.Model(&models.PDF{}).Count(&stats.TotalPDFs)
	s.db.Model(&models.PDF{}).Where("status = ?", models.UploadStatusPending).Count(&stats.PendingPDFs)
	s.db.Model(&models.PDF{}).Where("status = ?", models.UploadStatusApproved).Count(&stats.ApprovedPDFs)
	s.db.Model(&models.PDF{}).Where("status = ?", models.UploadStatusRejected).Count(&stats.RejectedPDFs)
	s.db.Model(&models.PDF{}).Select("COALESCE(SUM(downloads_count), 0)").Scan(&stats.TotalDownloads)

	return stats, nil
}

// ListBooks lists books for the moderation queue, filterable by status.
// Unlike the public catalogue this sees every state.
func (s *AdminService) ListBooks(actor *models.Profile, status string, params utils.PaginationParams) (*utils.PaginationResult, error) {
	if err := moderation.Authorize(actor.Role); err != nil {
		return nil, err
	}

	query := s.db.Model(&models.Book{}).
		Preload("Category").
		Preload("Images").
		Preload("Seller")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count books: %w", err)
	}

	var books []models.Book
	query = utils.ApplySort(query, params, []string{"created_at", "status", "price"})
	query = utils.ApplyPagination(query, params)
	if err := query.Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch books: %w", err)
	}

	result := utils.CreatePaginationResult(books, total, params)
	return &result, nil
}

func (s *AdminService) ListPDFs(actor *models.Profile, status string, params utils.PaginationParams) (*utils.PaginationResult, error) {
	if err := moderation.Authorize(actor.Role); err != nil {
		return nil, err
	}

	query := s.db.Model(&models.PDF{}).
		Preload("Category").
		Preload("Uploader")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count pdfs: %w", err)
	}

	var docs []models.PDF
	query = utils.ApplySort(query, params, []string{"created_at", "status", "downloads_count"})
	query = utils.ApplyPagination(query, params)
	if err := query.Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch pdfs: %w", err)
	}

	result := utils.CreatePaginationResult(docs, total, params)
	return &result, nil
}

// ListAuditLogs pages through the audit trail, newest first.
func (s *AdminService) ListAuditLogs(actor *models.Profile, params utils.PaginationParams) (*utils.PaginationResult, error) {
	if err := moderation.Authorize(actor.Role); err != nil {
		return nil, err
	}

	query := s.db.Model(&models.AuditLog{}).Preload("User")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count audit logs: %w", err)
	}

	var logs []models.AuditLog
	query = utils.ApplySort(query, params, []string{"created_at", "action", "resource_type"})
	query = utils.ApplyPagination(query, params)
	if err := query.Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch audit logs: %w", err)
	}

	result := utils.CreatePaginationResult(logs, total, params)
	return &result, nil
}

// ModerateBook applies approve or reject to a book and publishes the
// resulting visibility change.
func (s *AdminService) ModerateBook(ctx context.Context, actor *models.Profile, bookID uuid.UUID, action moderation.Action) (*models.Book, error) {
	var book models.Book
	if err := s.db.Preload("Category").Preload("Images").Preload("Seller").First(&book, bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	previous := book.Status
	next, err := moderation.Apply(actor.Role, previous, action)
	if err != nil {
		return nil, err
	}

	if next != previous {
		if err := s.db.Model(&book).Update("status", next).Error; err != nil {
			return nil, fmt.Errorf("failed to update book status: %w", err)
		}
		book.Status = next
	}

	go s.createAuditLog(actor, string(action), "book", book.ID, models.JSONB{"status": string(previous)}, models.JSONB{"status": string(next)})

	switch {
	case next == models.UploadStatusApproved && previous != models.UploadStatusApproved:
		// Approval is the moment a listing becomes publicly visible.
		s.books.publishBook(ctx, realtime.EventInsert, &book)
	case next == models.UploadStatusRejected && previous == models.UploadStatusApproved:
		s.publishRemoval(ctx, realtime.CollectionBooks, book.ID)
	}

	return &book, nil
}

func (s *AdminService) ModeratePDF(ctx context.Context, actor *models.Profile, pdfID uuid.UUID, action moderation.Action) (*models.PDF, error) {
	var doc models.PDF
	if err := s.db.Preload("Category").Preload("Uploader").First(&doc, pdfID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPDFNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	previous := doc.Status
	next, err := moderation.Apply(actor.Role, previous, action)
	if err != nil {
		return nil, err
	}

	if next != previous {
		if err := s.db.Model(&doc).Update("status", next).Error; err != nil {
			return nil, fmt.Errorf("failed to update pdf status: %w", err)
		}
		doc.Status = next
	}

	go s.createAuditLog(actor, string(action), "pdf", doc.ID, models.JSONB{"status": string(previous)}, models.JSONB{"status": string(next)})

	switch {
	case next == models.UploadStatusApproved && previous != models.UploadStatusApproved:
		s.pdfs.publishPDF(ctx, realtime.EventInsert, &doc)
	case next == models.UploadStatusRejected && previous == models.UploadStatusApproved:
		s.publishRemoval(ctx, realtime.CollectionPDFs, doc.ID)
	}

	return &doc, nil
}

// DeleteBook removes any book regardless of owner, for takedowns.
func (s *AdminService) DeleteBook(ctx context.Context, actor *models.Profile, bookID uuid.UUID) error {
	var book models.Book
	if err := s.db.First(&book, bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	if _, err := moderation.Apply(actor.Role, book.Status, moderation.ActionDelete); err != nil {
		return err
	}

	if err := s.books.destroyBook(ctx, &book); err != nil {
		return err
	}
	go s.createAuditLog(actor, "delete", "book", book.ID, models.JSONB{"title": book.Title, "status": string(book.Status)}, nil)
	return nil
}

func (s *AdminService) DeletePDF(ctx context.Context, actor *models.Profile, pdfID uuid.UUID) error {
	var doc models.PDF
	if err := s.db.First(&doc, pdfID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPDFNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	if _, err := moderation.Apply(actor.Role, doc.Status, moderation.ActionDelete); err != nil {
		return err
	}

	if err := s.pdfs.destroyPDF(ctx, &doc); err != nil {
		return err
	}
	go s.createAuditLog(actor, "delete", "pdf", doc.ID, models.JSONB{"title": doc.Title, "status": string(doc.Status)}, nil)
	return nil
}

func (s *AdminService) publishRemoval(ctx context.Context, collection string, id uuid.UUID) {
	err := s.feed.Publish(ctx, realtime.Event{
		Kind:       realtime.EventDelete,
		Collection: collection,
		RowID:      id.String(),
	})
	if err != nil {
		logrus.WithError(err).Warn("Failed to publish removal event")
	}
}

func (s *AdminService) createAuditLog(actor *models.Profile, action, resourceType string, resourceID uuid.UUID, oldValues, newValues models.JSONB) {
	entry := &models.AuditLog{
		UserID:       &actor.UserID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   &resourceID,
		OldValues:    oldValues,
		NewValues:    newValues,
	}
	if err := s.db.Create(entry).Error; err != nil {
		logrus.WithError(err).Error("Failed to create audit log")
	}
}
