// internal/handlers/profiles.go
package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gurukulpustakalaya/backend/internal/i18n"
	"github.com/gurukulpustakalaya/backend/internal/middleware"
	"github.com/gurukulpustakalaya/backend/internal/services"
	"github.com/gurukulpustakalaya/backend/internal/utils"
)

type ProfileHandler struct {
	profileService *services.ProfileService
}

func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Get serves a public profile page.
func (h *ProfileHandler) Get(c *gin.Context) {
	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid profile id", nil)
		return
	}

	profile, err := h.profileService.GetProfile(profileID)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			utils.NotFoundResponse(c, "profile")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}
	utils.SuccessResponse(c, profile)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	userID, err := middleware.ContextUserID(c)
	if err != nil {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	profile, err := h.profileService.UpdateProfile(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProfileNotFound):
			utils.NotFoundResponse(c, "profile")
		case strings.Contains(err.Error(), "validation failed"):
			utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		default:
			utils.InternalErrorResponse(c, "")
		}
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponseWithMeta(c, profile, gin.H{"message": i18n.T(lang, i18n.KeyProfileUpdated)})
}

func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	userID, err := middleware.ContextUserID(c)
	if err != nil {
		utils.UnauthorizedResponse(c, "")
		return
	}

	file, header, err := c.Request.FormFile("avatar")
	if err != nil {
		utils.BadRequestResponse(c, "avatar file required", nil)
		return
	}
	defer file.Close()

	profile, err := h.profileService.UpdateAvatar(userID, file, header)
	if err != nil {
		lang := utils.GetLangFromContext(c)
		switch {
		case errors.Is(err, services.ErrProfileNotFound):
			utils.NotFoundResponse(c, "profile")
		case strings.Contains(err.Error(), "invalid image"):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyUploadBadType), nil)
		case strings.Contains(err.Error(), "exceeds maximum"):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyUploadTooLarge), nil)
		default:
			utils.InternalErrorResponse(c, "")
		}
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponseWithMeta(c, profile, gin.H{"message": i18n.T(lang, i18n.KeyAvatarUploaded)})
}
