// internal/handlers/categories.go
package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gurukulpustakalaya/backend/internal/i18n"
	"github.com/gurukulpustakalaya/backend/internal/services"
	"github.com/gurukulpustakalaya/backend/internal/utils"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) List(c *gin.Context) {
	listings, err := h.categoryService.ListCategories()
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	utils.SuccessResponse(c, listings)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid category id", nil)
		return
	}

	category, err := h.categoryService.GetCategory(categoryID)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			utils.NotFoundResponse(c, "category")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}
	utils.SuccessResponse(c, category)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req services.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	category, err := h.categoryService.CreateCategory(&req)
	if err != nil {
		h.respondCategoryError(c, err)
		return
	}
	utils.CreatedResponse(c, category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid category id", nil)
		return
	}

	var req services.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	category, err := h.categoryService.UpdateCategory(categoryID, &req)
	if err != nil {
		h.respondCategoryError(c, err)
		return
	}
	utils.SuccessResponse(c, category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid category id", nil)
		return
	}

	if err := h.categoryService.DeleteCategory(categoryID); err != nil {
		h.respondCategoryError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyCategoryDeleted)})
}

func (h *CategoryHandler) respondCategoryError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)
	switch {
	case errors.Is(err, services.ErrCategoryNotFound):
		utils.NotFoundResponse(c, "category")
	case errors.Is(err, services.ErrCategoryInUse):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyCategoryInUse))
	case errors.Is(err, services.ErrCategoryExists):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyCategoryNameExists))
	case strings.Contains(err.Error(), "validation failed"):
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	default:
		utils.InternalErrorResponse(c, "")
	}
}
