// internal/models/book.go
package models

import (
	"github.com/google/uuid"
)

type Book struct {
	BaseModel
	SellerID    uuid.UUID     `json:"seller_id" gorm:"type:uuid;not null;index"`
	CategoryID  uuid.UUID     `json:"category_id" gorm:"type:uuid;not null;index"`
	Title       string        `json:"title" gorm:"size:255;not null"`
	Author      string        `json:"author" gorm:"size:255;not null"`
	Description string        `json:"description,omitempty" gorm:"type:text"`
	Price       float64       `json:"price" gorm:"type:decimal(10,2);not null;default:0"`
	Condition   BookCondition `json:"condition" gorm:"type:varchar(10);not null"`
	IsAvailable bool          `json:"is_available" gorm:"default:true"`
	SellerPhone string        `json:"seller_phone" gorm:"size:20;not null"`
	Location    string        `json:"location,omitempty" gorm:"size:255"`
	ViewsCount  int64         `json:"views_count" gorm:"default:0"`
	Status      UploadStatus  `json:"status" gorm:"type:varchar(20);default:'pending';index"`

	// Relationships
	Seller   Profile     `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
	Category Category    `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Images   []BookImage `json:"images,omitempty" gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
}

type BookImage struct {
	BaseModel
	BookID    uuid.UUID `json:"book_id" gorm:"type:uuid;not null;index"`
	ImageURL  string    `json:"image_url" gorm:"size:512;not null"`
	ImageKey  string    `json:"-" gorm:"size:512"`
	IsPrimary bool      `json:"is_primary" gorm:"default:false"`
}
