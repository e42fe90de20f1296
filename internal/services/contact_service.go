// internal/services/contact_service.go
package services

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gurukulpustakalaya/backend/internal/config"
	"github.com/gurukulpustakalaya/backend/internal/models"
	"github.com/gurukulpustakalaya/backend/internal/utils"
	"github.com/gurukulpustakalaya/backend/internal/visibility"
)

type ContactService struct {
	db  *gorm.DB
	cfg *config.Config
}

type ContactLink struct {
	URL         string `json:"url"`
	SellerName  string `json:"seller_name"`
	PhoneNumber string `json:"phone_number"`
}

var ErrNoSellerPhone = errors.New("seller has no contactable phone number")

func NewContactService(db *gorm.DB, cfg *config.Config) *ContactService {
	return &ContactService{db: db, cfg: cfg}
}

// BuildBookContactLink builds a WhatsApp deep link for enquiring about a
// listed book. Only approved, available listings are contactable.
func (s *ContactService) BuildBookContactLink(bookID uuid.UUID) (*ContactLink, error) {
	var book models.Book
	err := s.db.Preload("Seller").
		Scopes(visibility.PublicBooks).
		First(&book, bookID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("book not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	phone, ok := utils.NormalizeNepalMobile(book.SellerPhone)
	if !ok {
		return nil, ErrNoSellerPhone
	}

	sellerName := book.Seller.FullName

	message := contactMessage(sellerName, book.Title, book.Price, s.cfg.Contact.PlatformName)

	return &ContactLink{
		URL:         contactURL(s.cfg.Contact.WhatsAppBaseURL, phone, message),
		SellerName:  sellerName,
		PhoneNumber: phone,
	}, nil
}

func contactMessage(sellerName, title string, price float64, platform string) string {
	return fmt.Sprintf(
		"Hi %s! I'm interested in your book \"%s\" listed for %s on %s. Is it still available?",
		sellerName, title, formatPrice(price), platform,
	)
}

func contactURL(baseURL, phone, message string) string {
	return fmt.Sprintf("%s/%s?text=%s", baseURL, phone, url.QueryEscape(message))
}

func formatPrice(price float64) string {
	if price == 0 {
		return "FREE"
	}
	if price == float64(int64(price)) {
		return fmt.Sprintf("Rs.%d", int64(price))
	}
	return fmt.Sprintf("Rs.%.2f", price)
}
