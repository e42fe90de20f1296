// internal/services/pdf_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/gurukulpustakalaya/backend/internal/config"
	"github.com/gurukulpustakalaya/backend/internal/models"
	"github.com/gurukulpustakalaya/backend/internal/moderation"
	"github.com/gurukulpustakalaya/backend/internal/realtime"
	"github.com/gurukulpustakalaya/backend/internal/utils"
	"github.com/gurukulpustakalaya/backend/internal/visibility"
)

type PDFService struct {
	db      *gorm.DB
	cfg     *config.Config
	storage *StorageService
	feed    realtime.Feed
}

type CreatePDFRequest struct {
	CategoryID  string `json:"category_id" form:"category_id" validate:"required,uuid"`
	Title       string `json:"title" form:"title" validate:"required,min=1,max=255"`
	Description string `json:"description,omitempty" form:"description" validate:"omitempty,max=5000"`
}

var (
	ErrPDFNotFound = errors.New("pdf not found")
	ErrInvalidPDF  = errors.New("file is not a readable PDF")
)

// downloadURLExpiry bounds how long a handed-out download link stays valid.
const downloadURLExpiry = 15 * time.Minute

func NewPDFService(db *gorm.DB, cfg *config.Config, storage *StorageService, feed realtime.Feed) *PDFService {
	return &PDFService{db: db, cfg: cfg, storage: storage, feed: feed}
}

// CreatePDF validates and stores an uploaded study document in the pending
// state. The file must parse as a PDF before anything is persisted.
func (s *PDFService) CreatePDF(ctx context.Context, uploaderProfileID uuid.UUID, req *CreatePDFRequest, file multipart.File, header *multipart.FileHeader) (*models.PDF, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, errors.New("category not found")
	}
	var category models.Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("category not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	pageCount, err := s.inspectPDF(file, header.Size)
	if err != nil {
		return nil, err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind upload: %w", err)
	}

	options := s.storage.GetDefaultUploadOptions("pdfs")
	result, err := s.storage.UploadFile(file, header, options)
	if err != nil {
		return nil, fmt.Errorf("failed to upload pdf: %w", err)
	}

	doc := &models.PDF{
		UploaderID:  uploaderProfileID,
		CategoryID:  categoryID,
		Title:       req.Title,
		Description: req.Description,
		FileURL:     result.URL,
		FileKey:     result.Key,
		FileSize:    result.Size,
		PageCount:   pageCount,
		Status:      moderation.InitialStatus,
	}
	if err := s.db.Create(doc).Error; err != nil {
		if delErr := s.storage.DeleteFile(result.Key); delErr != nil {
			logrus.WithError(delErr).WithField("key", result.Key).Warn("Failed to remove orphaned pdf object")
		}
		return nil, fmt.Errorf("failed to create pdf: %w", err)
	}

	return doc, nil
}

// SearchPDFs queries the public library: approved documents ordered by
// download count, most downloaded first.
func (s *PDFService) SearchPDFs(params utils.PaginationParams, categoryID string) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.PDF{}).
		Scopes(visibility.PublicPDFs).
		Preload("Category").
		Preload("Uploader")

	if categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("title ILIKE ?", pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count pdfs: %w", err)
	}

	var docs []models.PDF
	if params.Sort == "" {
		query = query.Order("downloads_count DESC, created_at DESC")
	} else {
		query = utils.ApplySort(query, params, utils.PDFSortFields)
	}
	query = utils.ApplyPagination(query, params)
	if err := query.Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch pdfs: %w", err)
	}

	result := utils.CreatePaginationResult(docs, total, params)
	return &result, nil
}

// GetPDF fetches a single approved document.
func (s *PDFService) GetPDF(pdfID uuid.UUID) (*models.PDF, error) {
	var doc models.PDF
	err := s.db.Scopes(visibility.PublicPDFs).
		Preload("Category").
		Preload("Uploader").
		First(&doc, pdfID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPDFNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &doc, nil
}

// RecordDownload bumps the download counter and returns a download URL for
// the document. The increment is best effort: a failed bump never blocks the
// download.
func (s *PDFService) RecordDownload(pdfID uuid.UUID) (string, error) {
	doc, err := s.GetPDF(pdfID)
	if err != nil {
		return "", err
	}

	err = s.db.Model(&models.PDF{}).
		Where("id = ?", pdfID).
		UpdateColumn("downloads_count", gorm.Expr("downloads_count + 1")).Error
	if err != nil {
		logrus.WithError(err).WithField("pdf_id", pdfID).Warn("Failed to record download")
	}

	return s.downloadURL(doc), nil
}

// downloadURL returns a short-lived presigned URL for the stored object, or
// the stored public URL when running without S3 or when presigning fails.
func (s *PDFService) downloadURL(doc *models.PDF) string {
	if doc.FileKey == "" {
		return doc.FileURL
	}
	signed, err := s.storage.GeneratePresignedURL(doc.FileKey, downloadURLExpiry)
	if err != nil {
		logrus.WithError(err).WithField("key", doc.FileKey).Debug("Falling back to public file URL")
		return doc.FileURL
	}
	return signed
}

// GetUploaderPDFs lists all documents owned by an uploader in every
// moderation state.
func (s *PDFService) GetUploaderPDFs(uploaderProfileID uuid.UUID, params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.PDF{}).
		Where("uploader_id = ?", uploaderProfileID).
		Preload("Category")

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

// DeletePDF removes an owned document row. The stored file object is left
// behind: download links already handed out keep working, and the orphaned
// objects are reaped out of band.
func (s *PDFService) DeletePDF(ctx context.Context, uploaderProfileID, pdfID uuid.UUID) error {
	var doc models.PDF
	if err := s.db.First(&doc, pdfID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPDFNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}
	if doc.UploaderID != uploaderProfileID {
		return ErrNotOwner
	}
	return s.destroyPDF(ctx, &doc)
}

// destroyPDF is shared with the admin moderation path.
func (s *PDFService) destroyPDF(ctx context.Context, doc *models.PDF) error {
	if err := s.db.Delete(doc).Error; err != nil {
		return fmt.Errorf("failed to delete pdf: %w", err)
	}
	logrus.WithField("key", doc.FileKey).Info("PDF row deleted, file object retained")

	if visibility.PDFVisible(doc.Status) {
		if err := s.feed.Publish(ctx, realtime.Event{
			Kind:       realtime.EventDelete,
			Collection: realtime.CollectionPDFs,
			RowID:      doc.ID.String(),
		}); err != nil {
			logrus.WithError(err).Warn("Failed to publish pdf delete event")
		}
	}
	return nil
}

func (s *PDFService) publishPDF(ctx context.Context, kind realtime.EventKind, doc *models.PDF) {
	row, err := json.Marshal(doc)
	if err != nil {
		logrus.WithError(err).Warn("Failed to encode pdf event")
		return
	}
	err = s.feed.Publish(ctx, realtime.Event{
		Kind:       kind,
		Collection: realtime.CollectionPDFs,
		RowID:      doc.ID.String(),
		Row:        row,
	})
	if err != nil {
		logrus.WithError(err).Warn("Failed to publish pdf event")
	}
}

// inspectPDF parses the upload and returns its page count. Anything the
// parser rejects is treated as not-a-PDF.
func (s *PDFService) inspectPDF(file multipart.File, size int64) (int, error) {
	if size <= 0 {
		return 0, ErrInvalidPDF
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return 0, fmt.Errorf("failed to read upload: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), size)
	if err != nil {
		return 0, ErrInvalidPDF
	}
	pages := reader.NumPage()
	if pages < 1 {
		return 0, ErrInvalidPDF
	}
	return pages, nil
}
