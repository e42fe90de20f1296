// internal/models/category_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveIconKnown(t *testing.T) {
	assert.Equal(t, IconCalculator, ResolveIcon(IconCalculator))
	assert.Equal(t, IconMicroscope, ResolveIcon("microscope"))
}

func TestResolveIconUnknownFallsBack(t *testing.T) {
	assert.Equal(t, IconBookOpen, ResolveIcon("sparkles"))
	assert.Equal(t, IconBookOpen, ResolveIcon(""))
}

func TestValidIcon(t *testing.T) {
	assert.True(t, ValidIcon(IconPalette))
	assert.True(t, ValidIcon(""), "empty means use the default")
	assert.False(t, ValidIcon("rocket"))
}
