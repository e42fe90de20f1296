// internal/models/user.go
package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User is the identity record. Capability is never derived from it directly:
// role lives on the Profile row and is re-read from the store on every
// privileged action.
type User struct {
	BaseModel
	Username     string     `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"`
	LastLoginAt  *time.Time `json:"last_login_at"`

	// Relationships
	Profile *Profile `json:"profile,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

type Profile struct {
	BaseModel
	UserID     uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	FullName   string    `json:"full_name" gorm:"size:255;not null"`
	Role       UserRole  `json:"role" gorm:"type:varchar(20);default:'buyer';index"`
	Phone      string    `json:"phone,omitempty" gorm:"size:20"`
	Location   string    `json:"location,omitempty" gorm:"size:255"`
	AvatarURL  string    `json:"avatar_url,omitempty" gorm:"size:512"`
	AvatarKey  string    `json:"-" gorm:"size:512"`
	IsVerified bool      `json:"is_verified" gorm:"default:false"`

	// Relationships
	Books []Book `json:"books,omitempty" gorm:"foreignKey:SellerID"`
	PDFs  []PDF  `json:"pdfs,omitempty" gorm:"foreignKey:UploaderID"`
}

// IsAdmin reports whether this profile carries administrator capability.
func (p *Profile) IsAdmin() bool {
	return p.Role == UserRoleAdmin
}
