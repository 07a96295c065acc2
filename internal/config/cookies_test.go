package config

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCookies() *Cookies {
	return &Cookies{
		Domain:   "example.com",
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		jwt:      &JWT{tokenLifetime: time.Hour},
	}
}

func TestRefreshSetsSplitCookies(t *testing.T) {
	w := httptest.NewRecorder()
	require.NoError(t, testCookies().Refresh(w, "aaa.bbb.ccc"))

	byName := map[string]*http.Cookie{}
	for _, c := range w.Result().Cookies() {
		byName[c.Name] = c
	}
	require.Len(t, byName, 2)

	auth := byName["auth"]
	require.NotNil(t, auth)
	assert.Equal(t, "aaa.bbb", auth.Value)
	assert.False(t, auth.HttpOnly)

	sign := byName["sign"]
	require.NotNil(t, sign)
	assert.Equal(t, "ccc", sign.Value)
	assert.True(t, sign.HttpOnly)
}

func TestRefreshRejectsMalformedToken(t *testing.T) {
	w := httptest.NewRecorder()
	assert.Error(t, testCookies().Refresh(w, "not-a-jwt"))
	assert.Empty(t, w.Result().Cookies())
}
