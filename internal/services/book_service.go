// internal/services/book_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/gurukulpustakalaya/backend/internal/config"
	"github.com/gurukulpustakalaya/backend/internal/database"
	"github.com/gurukulpustakalaya/backend/internal/models"
	"github.com/gurukulpustakalaya/backend/internal/moderation"
	"github.com/gurukulpustakalaya/backend/internal/realtime"
	"github.com/gurukulpustakalaya/backend/internal/utils"
	"github.com/gurukulpustakalaya/backend/internal/visibility"
)

type BookService struct {
	db      *gorm.DB
	cfg     *config.Config
	storage *StorageService
	feed    realtime.Feed
}

type CreateBookRequest struct {
	CategoryID  string               `json:"category_id" form:"category_id" validate:"required,uuid"`
	Title       string               `json:"title" form:"title" validate:"required,min=1,max=255"`
	Author      string               `json:"author" form:"author" validate:"required,min=1,max=255"`
	Description string               `json:"description,omitempty" form:"description" validate:"omitempty,max=5000"`
	Price       float64              `json:"price" form:"price" validate:"min=0"`
	Condition   models.BookCondition `json:"condition" form:"condition" validate:"required,oneof=new good used"`
	SellerPhone string               `json:"seller_phone" form:"seller_phone" validate:"required,nepal_phone"`
	Location    string               `json:"location,omitempty" form:"location" validate:"omitempty,max=255"`
}

type UpdateBookRequest struct {
	CategoryID  *string               `json:"category_id,omitempty" validate:"omitempty,uuid"`
	Title       *string               `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Author      *string               `json:"author,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string               `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price       *float64              `json:"price,omitempty" validate:"omitempty,min=0"`
	Condition   *models.BookCondition `json:"condition,omitempty" validate:"omitempty,oneof=new good used"`
	SellerPhone *string               `json:"seller_phone,omitempty" validate:"omitempty,nepal_phone"`
	Location    *string               `json:"location,omitempty" validate:"omitempty,max=255"`
}

type BookSearchParams struct {
	utils.PaginationParams
	CategoryID  string
	PriceBucket string
	Condition   string
}

var (
	ErrBookNotFound   = errors.New("book not found")
	ErrNotOwner       = errors.New("not the owner of this listing")
	ErrCategoryLocked = errors.New("category cannot change after moderation")
)

func NewBookService(db *gorm.DB, cfg *config.Config, storage *StorageService, feed realtime.Feed) *BookService {
	return &BookService{db: db, cfg: cfg, storage: storage, feed: feed}
}

// CreateBook stores a new listing in the pending state. The caller never
// chooses the initial status; every listing waits for moderation.
func (s *BookService) CreateBook(ctx context.Context, sellerProfileID uuid.UUID, req *CreateBookRequest, images []*multipart.FileHeader) (*models.Book, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if len(images) > s.cfg.Upload.MaxImagesPerBook {
		return nil, fmt.Errorf("at most %d images per listing", s.cfg.Upload.MaxImagesPerBook)
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

	book := &models.Book{
		SellerID:    sellerProfileID,
		CategoryID:  categoryID,
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Price:       req.Price,
		Condition:   req.Condition,
		IsAvailable: true,
		SellerPhone: req.SellerPhone,
		Location:    req.Location,
		Status:      moderation.InitialStatus,
	}

	uploaded, err := s.uploadImages(images)
	if err != nil {
		return nil, err
	}

	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(book).Error; err != nil {
			return err
		}
		for i := range uploaded {
			uploaded[i].BookID = book.ID
			uploaded[i].IsPrimary = i == 0
		}
		if len(uploaded) > 0 {
			if err := tx.Create(&uploaded).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.cleanupImages(uploaded)
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	book.Images = uploaded
	// A pending listing is invisible to the public feed; no event until it
	// is approved.
	return book, nil
}

// SearchBooks queries the public catalogue: approved, available listings
// only, filterable by category, price bucket, condition and free text.
func (s *BookService) SearchBooks(params BookSearchParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Book{}).
		Scopes(visibility.PublicBooks).
		Preload("Category").
		Preload("Images").
		Preload("Seller")

	if params.CategoryID != "" {
		query = query.Where("category_id = ?", params.CategoryID)
	}
	if params.Condition != "" {
		query = query.Where("condition = ?", params.Condition)
	}
	if params.PriceBucket != "" {
		bucket := visibility.PriceBucket(params.PriceBucket)
		if !visibility.ValidBucket(bucket) {
			return nil, fmt.Errorf("unknown price bucket: %s", params.PriceBucket)
		}
		query = visibility.ApplyPriceBucket(query, bucket)
	}
	if params.Search != "" {
		query = visibility.TextSearch(query, params.Search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count books: %w", err)
	}

	var books []models.Book
	query = utils.ApplySort(query, params.PaginationParams, utils.BookSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)
	if err := query.Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch books: %w", err)
	}

	result := utils.CreatePaginationResult(books, total, params.PaginationParams)
	return &result, nil
}

// GetBook fetches a single listing and bumps its view counter. Pending and
// rejected listings are only visible to their owner, which the handler
// enforces via GetSellerBook.
func (s *BookService) GetBook(bookID uuid.UUID) (*models.Book, error) {
	var book models.Book
	err := s.db.Scopes(visibility.PublicBooks).
		Preload("Category").
		Preload("Images").
		Preload("Seller").
		First(&book, bookID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	// Atomic increment; fine to lose the response-local value.
	s.db.Model(&book).UpdateColumn("views_count", gorm.Expr("views_count + 1"))
	book.ViewsCount++

	return &book, nil
}

// GetSellerBooks lists every book owned by a seller in all moderation
// states, for the seller dashboard.
func (s *BookService) GetSellerBooks(sellerProfileID uuid.UUID, params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Book{}).
		Where("seller_id = ?", sellerProfileID).
		Preload("Category").
		Preload("Images")

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

// UpdateBook edits an owned listing. Category is immutable once the book
// has left the pending state. Edits do not reset moderation status.
func (s *BookService) UpdateBook(ctx context.Context, sellerProfileID, bookID uuid.UUID, req *UpdateBookRequest) (*models.Book, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	book, err := s.ownedBook(sellerProfileID, bookID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.CategoryID != nil {
		// The category is only changeable while the listing still awaits
		// moderation; approved and rejected listings keep theirs.
		if book.Status != moderation.InitialStatus {
			return nil, ErrCategoryLocked
		}
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, errors.New("category not found")
		}
		var count int64
		s.db.Model(&models.Category{}).Where("id = ?", categoryID).Count(&count)
		if count == 0 {
			return nil, errors.New("category not found")
		}
		updates["category_id"] = categoryID
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Author != nil {
		updates["author"] = *req.Author
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Condition != nil {
		updates["condition"] = *req.Condition
	}
	if req.SellerPhone != nil {
		updates["seller_phone"] = *req.SellerPhone
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if len(updates) == 0 {
		return book, nil
	}

	if err := s.db.Model(book).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	if visibility.BookVisible(book.Status, book.IsAvailable) {
		s.publishBook(ctx, realtime.EventUpdate, book)
	}
	return book, nil
}

// ToggleAvailability flips the sold/available flag on an owned listing.
// The moderation status is untouched; a sold book stays approved.
func (s *BookService) ToggleAvailability(ctx context.Context, sellerProfileID, bookID uuid.UUID) (*models.Book, error) {
	book, err := s.ownedBook(sellerProfileID, bookID)
	if err != nil {
		return nil, err
	}

	book.IsAvailable = !book.IsAvailable
	if err := s.db.Model(book).Update("is_available", book.IsAvailable).Error; err != nil {
		return nil, fmt.Errorf("failed to update availability: %w", err)
	}

	// Leaving or re-entering the public listing is an update event either
	// way; subscribers re-fetch and the filter sorts it out.
	if book.Status == models.UploadStatusApproved {
		s.publishBook(ctx, realtime.EventUpdate, book)
	}
	return book, nil
}

// DeleteBook removes an owned listing in any moderation state. Deletion is
// the only way out of the rejected state.
func (s *BookService) DeleteBook(ctx context.Context, sellerProfileID, bookID uuid.UUID) error {
	book, err := s.ownedBook(sellerProfileID, bookID)
	if err != nil {
		return err
	}
	return s.destroyBook(ctx, book)
}

// destroyBook is shared with the admin moderation path.
func (s *BookService) destroyBook(ctx context.Context, book *models.Book) error {
	var images []models.BookImage
	s.db.Where("book_id = ?", book.ID).Find(&images)

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", book.ID).Delete(&models.BookImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(book).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}

	s.cleanupImages(images)

	wasVisible := visibility.BookVisible(book.Status, book.IsAvailable)
	if wasVisible {
		if err := s.feed.Publish(ctx, realtime.Event{
			Kind:       realtime.EventDelete,
			Collection: realtime.CollectionBooks,
			RowID:      book.ID.String(),
		}); err != nil {
			logrus.WithError(err).Warn("Failed to publish book delete event")
		}
	}
	return nil
}

func (s *BookService) ownedBook(sellerProfileID, bookID uuid.UUID) (*models.Book, error) {
	var book models.Book
	if err := s.db.First(&book, bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if book.SellerID != sellerProfileID {
		return nil, ErrNotOwner
	}
	return &book, nil
}

func (s *BookService) uploadImages(images []*multipart.FileHeader) ([]models.BookImage, error) {
	var uploaded []models.BookImage
	options := s.storage.GetDefaultUploadOptions("book-images")

	for _, header := range images {
		file, err := header.Open()
		if err != nil {
			s.cleanupImages(uploaded)
			return nil, fmt.Errorf("failed to open image: %w", err)
		}
		if err := s.storage.ValidateImage(file); err != nil {
			file.Close()
			s.cleanupImages(uploaded)
			return nil, err
		}
		result, err := s.storage.UploadFile(file, header, options)
		file.Close()
		if err != nil {
			s.cleanupImages(uploaded)
			return nil, fmt.Errorf("failed to upload image: %w", err)
		}
		uploaded = append(uploaded, models.BookImage{
			ImageURL: result.URL,
			ImageKey: result.Key,
		})
	}
	return uploaded, nil
}

func (s *BookService) cleanupImages(images []models.BookImage) {
	for _, img := range images {
		if img.ImageKey == "" {
			continue
		}
		if err := s.storage.DeleteFile(img.ImageKey); err != nil {
			logrus.WithError(err).WithField("key", img.ImageKey).Warn("Failed to remove image object")
		}
	}
}

func (s *BookService) publishBook(ctx context.Context, kind realtime.EventKind, book *models.Book) {
	row, err := json.Marshal(book)
	if err != nil {
		logrus.WithError(err).Warn("Failed to encode book event")
		return
	}
	err = s.feed.Publish(ctx, realtime.Event{
		Kind:       kind,
		Collection: realtime.CollectionBooks,
		RowID:      book.ID.String(),
		Row:        row,
	})
	if err != nil {
		logrus.WithError(err).Warn("Failed to publish book event")
	}
}
