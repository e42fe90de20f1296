// internal/utils/phone_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidNepalMobile(t *testing.T) {
	valid := []string{
		"9812345678",    // 98 prefix, 10 digits
		"9712345678",    // 97 prefix, 10 digits
		"9779812345678", // country code + 98
		"9779712345678", // country code + 97
		"98-1234-5678",  // formatting stripped
		"+977 981 234 5678",
	}
	for _, phone := range valid {
		assert.True(t, IsValidNepalMobile(phone), "expected valid: %q", phone)
	}

	invalid := []string{
		"",
		"12345",
		"9912345678",     // bad operator prefix
		"981234567",      // too short
		"98123456789",    // too long
		"977123456789",   // digits after 977 must start 97/98
		"97712345678901", // too long with country code
		"abcdefghij",
	}
	for _, phone := range invalid {
		assert.False(t, IsValidNepalMobile(phone), "expected invalid: %q", phone)
	}
}

func TestNormalizeNepalMobile(t *testing.T) {
	got, ok := NormalizeNepalMobile("9812345678")
	assert.True(t, ok)
	assert.Equal(t, "9779812345678", got)

	got, ok = NormalizeNepalMobile("977-98-1234-5678")
	assert.True(t, ok)
	assert.Equal(t, "9779812345678", got)

	_, ok = NormalizeNepalMobile("12345")
	assert.False(t, ok)
}

func TestCleanPhone(t *testing.T) {
	assert.Equal(t, "9779812345678", CleanPhone("+977 (981) 234-5678"))
	assert.Equal(t, "", CleanPhone("abc"))
}
