// internal/handlers/admin.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gurukulpustakalaya/backend/internal/i18n"
	"github.com/gurukulpustakalaya/backend/internal/middleware"
	"github.com/gurukulpustakalaya/backend/internal/moderation"
	"github.com/gurukulpustakalaya/backend/internal/services"
	"github.com/gurukulpustakalaya/backend/internal/utils"
)

type AdminHandler struct {
	adminService   *services.AdminService
	profileService *services.ProfileService
}

func NewAdminHandler(adminService *services.AdminService, profileService *services.ProfileService) *AdminHandler {
	return &AdminHandler{adminService: adminService, profileService: profileService}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	profile, ok := middleware.ContextProfile(c)
	if !ok {
		utils.ForbiddenResponse(c, "")
		return
	}

	stats, err := h.adminService.GetDashboardStats(profile)
	if err != nil {
		h.respondModerationError(c, err)
		return
	}
	utils.SuccessResponse(c, stats)
}

// ListBooks serves the moderation queue. ?status=pending is the common
// call; omitting it returns everything.
func (h *AdminHandler) ListBooks(c *gin.Context) {
	profile, ok := middleware.ContextProfile(c)
	if !ok {
		utils.ForbiddenResponse(c, "")
		return
	}

	result, err := h.adminService.ListBooks(profile, c.Query("status"), utils.GetPaginationParams(c))
	if err != nil {
		h.respondModerationError(c, err)
		return
	}
	utils.PaginatedResponse(c, *result)
}

func (h *AdminHandler) ListPDFs(c *gin.Context) {
	profile, ok := middleware.ContextProfile(c)
	if !ok {
		utils.ForbiddenResponse(c, "")
		return
	}

	result, err := h.adminService.ListPDFs(profile, c.Query("status"), utils.GetPaginationParams(c))
	if err != nil {
		h.respondModerationError(c, err)
		return
	}
	utils.PaginatedResponse(c, *result)
}

func (h *AdminHandler) ListAuditLogs(c *gin.Context) {
	profile, ok := middleware.ContextProfile(c)
	if !ok {
		utils.ForbiddenResponse(c, "")
		return
	}

	result, err := h.adminService.ListAuditLogs(profile, utils.GetPaginationParams(c))
	if err != nil {
		h.respondModerationError(c, err)
		return
	}
	utils.PaginatedResponse(c, *result)
}

func (h *AdminHandler) ApproveBook(c *gin.Context) {
	h.moderateBook(c, moderation.ActionApprove, i18n.KeyBookApproved)
}

func (h *AdminHandler) RejectBook(c *gin.Context) {
	h.moderateBook(c, moderation.ActionReject, i18n.KeyBookRejected)
}

func (h *AdminHandler) ApprovePDF(c *gin.Context) {
	h.moderatePDF(c, moderation.ActionApprove, i18n.KeyPDFApproved)
}

func (h *AdminHandler) RejectPDF(c *gin.Context) {
	h.moderatePDF(c, moderation.ActionReject, i18n.KeyPDFRejected)
}

func (h *AdminHandler) DeleteBook(c *gin.Context) {
	profile, ok := middleware.ContextProfile(c)
	if !ok {
		utils.ForbiddenResponse(c, "")
		return
	}

	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid book id", nil)
		return
	}

	if err := h.adminService.DeleteBook(c.Request.Context(), profile, bookID); err != nil {
		h.respondModerationError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyBookDeleted)})
}

func (h *AdminHandler) DeletePDF(c *gin.Context) {
	profile, ok := middleware.ContextProfile(c)
	if !ok {
		utils.ForbiddenResponse(c, "")
		return
	}

	pdfID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid pdf id", nil)
		return
	}

	if err := h.adminService.DeletePDF(c.Request.Context(), profile, pdfID); err != nil {
		h.respondModerationError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyPDFDeleted)})
}

// PromoteProfile grants administrator capability to another account.
func (h *AdminHandler) PromoteProfile(c *gin.Context) {
	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid profile id", nil)
		return
	}

	profile, err := h.profileService.PromoteToAdmin(profileID)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			utils.NotFoundResponse(c, "profile")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponseWithMeta(c, profile, gin.H{"message": i18n.T(lang, i18n.KeyProfilePromoted)})
}

func (h *AdminHandler) moderateBook(c *gin.Context, action moderation.Action, successKey string) {
	profile, ok := middleware.ContextProfile(c)
	if !ok {
		utils.ForbiddenResponse(c, "")
		return
	}

	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid book id", nil)
		return
	}

	book, err := h.adminService.ModerateBook(c.Request.Context(), profile, bookID, action)
	if err != nil {
		h.respondModerationError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponseWithMeta(c, book, gin.H{"message": i18n.T(lang, successKey)})
}

func (h *AdminHandler) moderatePDF(c *gin.Context, action moderation.Action, successKey string) {
	profile, ok := middleware.ContextProfile(c)
	if !ok {
		utils.ForbiddenResponse(c, "")
		return
	}

	pdfID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid pdf id", nil)
		return
	}

	doc, err := h.adminService.ModeratePDF(c.Request.Context(), profile, pdfID, action)
	if err != nil {
		h.respondModerationError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponseWithMeta(c, doc, gin.H{"message": i18n.T(lang, successKey)})
}

func (h *AdminHandler) respondModerationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, moderation.ErrNotAuthorized):
		utils.ForbiddenResponse(c, "")
	case errors.Is(err, moderation.ErrInvalidTransition):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrBookNotFound):
		utils.NotFoundResponse(c, "book")
	case errors.Is(err, services.ErrPDFNotFound):
		utils.NotFoundResponse(c, "pdf")
	default:
		utils.InternalErrorResponse(c, "")
	}
}
