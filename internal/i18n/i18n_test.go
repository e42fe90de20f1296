// internal/i18n/i18n_test.go
package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslations(t *testing.T) {
	require.NoError(t, Initialize("./locales"))

	assert.NotEqual(t, KeyBookApproved, T("en", KeyBookApproved), "english must be translated")
	assert.NotEqual(t, KeyBookApproved, T("ne", KeyBookApproved), "nepali must be translated")

	// Unknown language falls back to english.
	assert.Equal(t, T("en", KeyAuthRequired), T("fr", KeyAuthRequired))

	// Unknown key falls back to the key itself.
	assert.Equal(t, "no.such.key", T("en", "no.such.key"))
}
