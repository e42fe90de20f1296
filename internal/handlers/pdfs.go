// internal/handlers/pdfs.go
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

type PDFHandler struct {
	pdfService *services.PDFService
}

func NewPDFHandler(pdfService *services.PDFService) *PDFHandler {
	return &PDFHandler{pdfService: pdfService}
}

// List serves the public library, most downloaded first.
func (h *PDFHandler) List(c *gin.Context) {
	result, err := h.pdfService.SearchPDFs(utils.GetPaginationParams(c), c.Query("category_id"))
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.PaginatedResponse(c, *result)
}

func (h *PDFHandler) Get(c *gin.Context) {
	pdfID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid pdf id", nil)
		return
	}

	doc, err := h.pdfService.GetPDF(pdfID)
	if err != nil {
		if errors.Is(err, services.ErrPDFNotFound) {
			utils.NotFoundResponse(c, "pdf")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, doc)
}

// Create accepts a multipart form with metadata fields and the document
// under the "file" field.
func (h *PDFHandler) Create(c *gin.Context) {
	profile, ok := middleware.ContextProfile(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreatePDFRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "pdf file required", nil)
		return
	}
	defer file.Close()

	doc, err := h.pdfService.CreatePDF(c.Request.Context(), profile.ID, &req, file, header)
	if err != nil {
		lang := utils.GetLangFromContext(c)
		switch {
		case errors.Is(err, services.ErrInvalidPDF):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyPDFInvalid), nil)
		case strings.Contains(err.Error(), "validation failed"):
			utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		case strings.Contains(err.Error(), "category not found"):
			utils.NotFoundResponse(c, "category")
		case strings.Contains(err.Error(), "exceeds maximum"):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyUploadTooLarge), nil)
		default:
			utils.InternalErrorResponse(c, "")
		}
		return
	}

	utils.CreatedResponse(c, doc)
}

// Download records the download and redirects to the stored file.
func (h *PDFHandler) Download(c *gin.Context) {
	pdfID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid pdf id", nil)
		return
	}

	fileURL, err := h.pdfService.RecordDownload(pdfID)
	if err != nil {
		if errors.Is(err, services.ErrPDFNotFound) {
			utils.NotFoundResponse(c, "pdf")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	c.Redirect(http.StatusFound, fileURL)
}

func (h *PDFHandler) Delete(c *gin.Context) {
	profile, ok := middleware.ContextProfile(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	pdfID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid pdf id", nil)
		return
	}

	if err := h.pdfService.DeletePDF(c.Request.Context(), profile.ID, pdfID); err != nil {
		switch {
		case errors.Is(err, services.ErrPDFNotFound):
			utils.NotFoundResponse(c, "pdf")
		case errors.Is(err, services.ErrNotOwner):
			utils.ForbiddenResponse(c, "")
		default:
			utils.InternalErrorResponse(c, "")
		}
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyPDFDeleted)})
}

// MyPDFs lists the caller's uploads in every moderation state.
func (h *PDFHandler) MyPDFs(c *gin.Context) {
	profile, ok := middleware.ContextProfile(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	result, err := h.pdfService.GetUploaderPDFs(profile.ID, utils.GetPaginationParams(c))
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.PaginatedResponse(c, *result)
}
