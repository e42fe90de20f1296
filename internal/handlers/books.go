// internal/handlers/books.go
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gurukulpustakalaya/backend/internal/i18n"
	"github.com/gurukulpustakalaya/backend/internal/middleware"
	"github.com/gurukulpustakalaya/backend/internal/services"
	"github.com/gurukulpustakalaya/backend/internal/utils"
)

type BookHandler struct {
	bookService    *services.BookService
	contactService *services.ContactService
}

func NewBookHandler(bookService *services.BookService, contactService *services.ContactService) *BookHandler {
	return &BookHandler{bookService: bookService, contactService: contactService}
}

// List serves the public catalogue. Only approved, available listings
// appear here regardless of who asks.
func (h *BookHandler) List(c *gin.Context) {
	params := services.BookSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
		CategoryID:       c.Query("category_id"),
		PriceBucket:      c.Query("price_bucket"),
		Condition:        c.Query("condition"),
	}

	result, err := h.bookService.SearchBooks(params)
	if err != nil {
		if strings.Contains(err.Error(), "unknown price bucket") {
			utils.BadRequestResponse(c, err.Error(), nil)
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.PaginatedResponse(c, *result)
}

func (h *BookHandler) Get(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid book id", nil)
		return
	}

	book, err := h.bookService.GetBook(bookID)
	if err != nil {
		if errors.Is(err, services.ErrBookNotFound) {
			utils.NotFoundResponse(c, "book")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, book)
}

// Create accepts a multipart form: listing fields plus up to the configured
// number of images under the "images" field.
func (h *BookHandler) Create(c *gin.Context) {
	profile, ok := middleware.ContextProfile(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateBookRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "multipart form required", nil)
		return
	}
	images := form.File["images"]

	book, err := h.bookService.CreateBook(c.Request.Context(), profile.ID, &req, images)
	if err != nil {
		h.respondBookError(c, err)
		return
	}

	utils.CreatedResponse(c, book)
}

func (h *BookHandler) Update(c *gin.Context) {
	profile, ok := middleware.ContextProfile(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid book id", nil)
		return
	}

	var req services.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	book, err := h.bookService.UpdateBook(c.Request.Context(), profile.ID, bookID, &req)
	if err != nil {
		h.respondBookError(c, err)
		return
	}

	utils.SuccessResponse(c, book)
}

func (h *BookHandler) ToggleAvailability(c *gin.Context) {
	profile, ok := middleware.ContextProfile(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid book id", nil)
		return
	}

	book, err := h.bookService.ToggleAvailability(c.Request.Context(), profile.ID, bookID)
	if err != nil {
		h.respondBookError(c, err)
		return
	}

	utils.SuccessResponse(c, book)
}

func (h *BookHandler) Delete(c *gin.Context) {
	profile, ok := middleware.ContextProfile(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid book id", nil)
		return
	}

	if err := h.bookService.DeleteBook(c.Request.Context(), profile.ID, bookID); err != nil {
		h.respondBookError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyBookDeleted)})
}

// MyBooks is the seller dashboard: every owned listing in any state.
func (h *BookHandler) MyBooks(c *gin.Context) {
	profile, ok := middleware.ContextProfile(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	result, err := h.bookService.GetSellerBooks(profile.ID, utils.GetPaginationParams(c))
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.PaginatedResponse(c, *result)
}

// Contact returns the WhatsApp deep link for a listing.
func (h *BookHandler) Contact(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid book id", nil)
		return
	}

	link, err := h.contactService.BuildBookContactLink(bookID)
	if err != nil {
		lang := utils.GetLangFromContext(c)
		switch {
		case errors.Is(err, services.ErrNoSellerPhone):
			utils.ErrorResponse(c, http.StatusUnprocessableEntity, "NO_CONTACT", i18n.T(lang, i18n.KeyContactNoPhone), nil)
		case strings.Contains(err.Error(), "not found"):
			utils.NotFoundResponse(c, "book")
		default:
			utils.InternalErrorResponse(c, "")
		}
		return
	}

	utils.SuccessResponse(c, link)
}

func (h *BookHandler) respondBookError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)
	switch {
	case errors.Is(err, services.ErrBookNotFound):
		utils.NotFoundResponse(c, "book")
	case errors.Is(err, services.ErrNotOwner):
		utils.ForbiddenResponse(c, "")
	case errors.Is(err, services.ErrCategoryLocked):
		utils.ConflictResponse(c, err.Error())
	case strings.Contains(err.Error(), "validation failed"):
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	case strings.Contains(err.Error(), "category not found"):
		utils.NotFoundResponse(c, "category")
	case strings.Contains(err.Error(), "images per listing"):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyUploadTooLarge), nil)
	default:
		utils.InternalErrorResponse(c, "")
	}
}
