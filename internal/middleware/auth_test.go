package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lbrrrrrr/enjoyyoga/internal/models"
	"github.com/lbrrrrrr/enjoyyoga/internal/services"
)

func adminRouter(tokens *services.TokenService, adminOnly bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/")
	group.Use(AdminAuth(tokens))
	if adminOnly {
		group.Use(RequireAdmin())
	}
	group.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"sub": TokenSubject(c)})
	})
	return router
}

func TestAdminAuthMissingHeader(t *testing.T) {
	router := adminRouter(services.NewTokenService("master", "secret", time.Hour), false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuthMasterToken(t *testing.T) {
	router := adminRouter(services.NewTokenService("master", "secret", time.Hour), false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer master")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "master")
}

func TestAdminAuthJWT(t *testing.T) {
	tokens := services.NewTokenService("master", "secret", time.Hour)
	router := adminRouter(tokens, false)

	tokenString, _, err := tokens.CreateJWTToken(&models.AdminUser{Username: "front-desk", Access: models.AccessLevelStaff})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "front-desk")
}

func TestAdminAuthRejectsBadToken(t *testing.T) {
	router := adminRouter(services.NewTokenService("master", "secret", time.Hour), false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdminBlocksStaff(t *testing.T) {
	tokens := services.NewTokenService("master", "secret", time.Hour)
	router := adminRouter(tokens, true)

	staffToken, _, err := tokens.CreateJWTToken(&models.AdminUser{Username: "front-desk", Access: models.AccessLevelStaff})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+staffToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)

	// Master token carries admin access.
	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer master")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
