// internal/services/profile_service.go
package services

import (
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/gurukulpustakalaya/backend/internal/models"
	"github.com/gurukulpustakalaya/backend/internal/utils"
)

type ProfileService struct {
	db      *gorm.DB
	storage *StorageService
}

type UpdateProfileRequest struct {
	FullName *string `json:"full_name,omitempty" validate:"omitempty,min=2,max=255"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,nepal_phone"`
	Location *string `json:"location,omitempty" validate:"omitempty,max=255"`
}

var ErrProfileNotFound = errors.New("profile not found")

func NewProfileService(db *gorm.DB, storage *StorageService) *ProfileService {
	return &ProfileService{db: db, storage: storage}
}

// GetProfileByUserID resolves the profile row for an authenticated user.
// The role on this row, not anything in the token, is what authorization
// decisions read.
func (s *ProfileService) GetProfileByUserID(userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &profile, nil
}

func (s *ProfileService) GetProfile(profileID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.First(&profile, profileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &profile, nil
}

func (s *ProfileService) UpdateProfile(userID uuid.UUID, req *UpdateProfileRequest) (*models.Profile, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	profile, err := s.GetProfileByUserID(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if len(updates) == 0 {
		return profile, nil
	}

	if err := s.db.Model(profile).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return profile, nil
}

// UpdateAvatar replaces the profile picture, removing the previous object.
func (s *ProfileService) UpdateAvatar(userID uuid.UUID, file multipart.File, header *multipart.FileHeader) (*models.Profile, error) {
	profile, err := s.GetProfileByUserID(userID)
	if err != nil {
		return nil, err
	}

	if err := s.storage.ValidateImage(file); err != nil {
		return nil, err
	}

	options := s.storage.GetDefaultUploadOptions("avatars")
	result, err := s.storage.UploadFile(file, header, options)
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}

	oldKey := profile.AvatarKey
	updates := map[string]interface{}{
		"avatar_url": result.URL,
		"avatar_key": result.Key,
	}
	if err := s.db.Model(profile).Updates(updates).Error; err != nil {
		if delErr := s.storage.DeleteFile(result.Key); delErr != nil {
			logrus.WithError(delErr).Warn("Failed to remove orphaned avatar object")
		}
		return nil, fmt.Errorf("failed to update avatar: %w", err)
	}

	if oldKey != "" {
		if err := s.storage.DeleteFile(oldKey); err != nil {
			logrus.WithError(err).WithField("key", oldKey).Warn("Failed to remove previous avatar object")
		}
	}
	return profile, nil
}

// PromoteToAdmin elevates an account. Only callable from an already
// privileged context; the handler gates it behind the admin middleware.
func (s *ProfileService) PromoteToAdmin(profileID uuid.UUID) (*models.Profile, error) {
	profile, err := s.GetProfile(profileID)
	if err != nil {
		return nil, err
	}

	if profile.Role == models.UserRoleAdmin {
		return profile, nil
	}

	if err := s.db.Model(profile).Update("role", models.UserRoleAdmin).Error; err != nil {
		return nil, fmt.Errorf("failed to promote profile: %w", err)
	}
	profile.Role = models.UserRoleAdmin
	return profile, nil
}
