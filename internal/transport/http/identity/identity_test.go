package identity_test

import (
	"net/http/httptest"
	"testing"

	"github.com/ecomlabs/checkout/internal/transport/http/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserID(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/orders", nil)
	r.Header.Set(identity.UserIDHeader, "42")

	id, err := identity.UserID(r)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestUserID_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"missing", ""},
		{"non numeric", "abc"},
		{"zero", "0"},
		{"negative", "-5"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/orders", nil)
			if test.value != "" {
				r.Header.Set(identity.UserIDHeader, test.value)
			}

			_, err := identity.UserID(r)
			assert.ErrorIs(t, err, identity.ErrMissingUserID)
		})
	}
}
