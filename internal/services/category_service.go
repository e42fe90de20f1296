// internal/services/category_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/gurukulpustakalaya/backend/internal/models"
	"github.com/gurukulpustakalaya/backend/internal/utils"
	"github.com/gurukulpustakalaya/backend/internal/visibility"
)

type CategoryService struct {
	db *gorm.DB
}

type CreateCategoryRequest struct {
	Name        string              `json:"name" validate:"required,min=1,max=100"`
	Description string              `json:"description,omitempty" validate:"omitempty,max=1000"`
	Icon        models.CategoryIcon `json:"icon,omitempty" validate:"omitempty,category_icon"`
}

type UpdateCategoryRequest struct {
	Name        *string              `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string              `json:"description,omitempty" validate:"omitempty,max=1000"`
	Icon        *models.CategoryIcon `json:"icon,omitempty" validate:"omitempty,category_icon"`
}

// CategoryListing is a category plus its visible content counts. Counts
// cover only what the public can see.
type CategoryListing struct {
	models.Category
	BookCount int64 `json:"book_count"`
	PDFCount  int64 `json:"pdf_count"`
}

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInUse    = errors.New("category still has content")
	ErrCategoryExists   = errors.New("category name already taken")
)

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// ListCategories returns every category with visible book and PDF counts.
// A failed count is logged and reported as zero rather than failing the
// whole listing.
func (s *CategoryService) ListCategories() ([]CategoryListing, error) {
	var categories []models.Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	listings := make([]CategoryListing, 0, len(categories))
	for _, cat := range categories {
		listing := CategoryListing{Category: cat}

		err := s.db.Model(&models.Book{}).
			Scopes(visibility.PublicBooks).
			Where("category_id = ?", cat.ID).
			Count(&listing.BookCount).Error
		if err != nil {
			logrus.WithError(err).WithField("category", cat.Name).Warn("Failed to count books")
		}

		err = s.db.Model(&models.PDF{}).
			Scopes(visibility.PublicPDFs).
			Where("category_id = ?", cat.ID).
			Count(&listing.PDFCount).Error
		if err != nil {
			logrus.WithError(err).WithField("category", cat.Name).Warn("Failed to count pdfs")
		}

		listings = append(listings, listing)
	}
	return listings, nil
}

func (s *CategoryService) GetCategory(categoryID uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &category, nil
}

func (s *CategoryService) CreateCategory(req *CreateCategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var count int64
	s.db.Model(&models.Category{}).Where("LOWER(name) = LOWER(?)", req.Name).Count(&count)
	if count > 0 {
		return nil, ErrCategoryExists
	}

	category := &models.Category{
		Name:        req.Name,
		Description: req.Description,
		Icon:        models.ResolveIcon(req.Icon),
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) UpdateCategory(categoryID uuid.UUID, req *UpdateCategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	category, err := s.GetCategory(categoryID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		var count int64
		s.db.Model(&models.Category{}).
			Where("LOWER(name) = LOWER(?) AND id != ?", *req.Name, categoryID).
			Count(&count)
		if count > 0 {
			return nil, ErrCategoryExists
		}
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Icon != nil {
		updates["icon"] = models.ResolveIcon(*req.Icon)
	}
	if len(updates) == 0 {
		return category, nil
	}

	if err := s.db.Model(category).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

// DeleteCategory removes an empty category. Deletion is refused while any
// book or PDF, in any moderation state, still references it.
func (s *CategoryService) DeleteCategory(categoryID uuid.UUID) error {
	category, err := s.GetCategory(categoryID)
	if err != nil {
		return err
	}

	var bookCount, pdfCount int64
	if err := s.db.Model(&models.Book{}).Where("category_id = ?", categoryID).Count(&bookCount).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if err := s.db.Model(&models.PDF{}).Where("category_id = ?", categoryID).Count(&pdfCount).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if bookCount > 0 || pdfCount > 0 {
		return ErrCategoryInUse
	}

	if err := s.db.Delete(category).Error; err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}
