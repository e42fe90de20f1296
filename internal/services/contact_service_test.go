// internal/services/contact_service_test.go
package services

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "FREE", formatPrice(0))
	assert.Equal(t, "Rs.450", formatPrice(450))
	assert.Equal(t, "Rs.1200", formatPrice(1200))
	assert.Equal(t, "Rs.99.50", formatPrice(99.5))
}

func TestContactMessage(t *testing.T) {
	msg := contactMessage("Sita Sharma", "Engineering Mathematics I", 450, "Gurukul Pustakalaya")
	assert.Equal(t,
		`Hi Sita Sharma! I'm interested in your book "Engineering Mathematics I" listed for Rs.450 on Gurukul Pustakalaya. Is it still available?`,
		msg)
}

func TestContactMessageFreeBook(t *testing.T) {
	msg := contactMessage("Ram", "Old Notes", 0, "Gurukul Pustakalaya")
	assert.Contains(t, msg, "listed for FREE on")
}

func TestContactURL(t *testing.T) {
	link := contactURL("https://wa.me", "9779812345678", `Hi! Is "C Programming" available?`)

	assert.True(t, strings.HasPrefix(link, "https://wa.me/9779812345678?text="))

	// The message must round-trip through query unescaping.
	parsed, err := url.Parse(link)
	assert.NoError(t, err)
	assert.Equal(t, `Hi! Is "C Programming" available?`, parsed.Query().Get("text"))
}
