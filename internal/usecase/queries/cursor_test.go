//go:build unit

package queries_test

import (
	"encoding/base64"
	"testing"

	"pos-checkout/internal/usecase/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeforeCursor(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		id, err := queries.DecodeBeforeCursor(queries.EncodeBeforeCursor(1234))
		require.NoError(t, err)
		assert.Equal(t, int64(1234), id)
	})

	invalid := map[string]string{
		"empty":           "",
		"not base64":      "%%%",
		"wrong version":   base64.URLEncoding.EncodeToString([]byte("v0:12")),
		"not a number":    base64.URLEncoding.EncodeToString([]byte("v1:abc")),
		"non positive id": base64.URLEncoding.EncodeToString([]byte("v1:0")),
	}
	for name, cursor := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := queries.DecodeBeforeCursor(cursor)
			assert.Error(t, err)
		})
	}
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(0))
	assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(-5))
	assert.Equal(t, 10, queries.ValidateLimit(10))
	assert.Equal(t, queries.MaxListLimit, queries.ValidateLimit(queries.MaxListLimit+1))
}
