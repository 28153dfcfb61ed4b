package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harentsoaR/wedding-api/internal/apperror"
	"github.com/harentsoaR/wedding-api/internal/authz"
	"github.com/harentsoaR/wedding-api/internal/models"
	"github.com/harentsoaR/wedding-api/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("middleware-test-secret")
}

func newRouter() *gin.Engine {
	r := gin.New()
	r.Use(ErrorHandler(zerolog.Nop()))
	return r
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	r := newRouter()
	r.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error": "Access denied. No token provided."}`, w.Body.String())
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	r := newRouter()
	r.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error": "Invalid token."}`, w.Body.String())
}

func TestAuthMiddlewareSetsCallerContext(t *testing.T) {
	token, err := utils.GenerateJWT("64b0c5f2a1d2e3f4a5b6c7d8", models.RoleEventMgmtVendor)
	require.NoError(t, err)

	r := newRouter()
	r.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"id":   c.GetString(ContextUserID),
			"role": c.GetString(ContextUserRole),
		})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id": "64b0c5f2a1d2e3f4a5b6c7d8", "role": "eventMgmtVendor"}`, w.Body.String())
}

func TestAuthorizeRejectsDisallowedRole(t *testing.T) {
	token, err := utils.GenerateJWT("64b0c5f2a1d2e3f4a5b6c7d8", models.RoleUser)
	require.NoError(t, err)

	r := newRouter()
	r.POST("/venues", AuthMiddleware(), Authorize(authz.ResourceVenue, authz.ActionCreate), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/venues", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthorizeAllowsListedRole(t *testing.T) {
	token, err := utils.GenerateJWT("64b0c5f2a1d2e3f4a5b6c7d8", models.RoleEventMgmtVendor)
	require.NoError(t, err)

	r := newRouter()
	r.POST("/venues", AuthMiddleware(), Authorize(authz.ResourceVenue, authz.ActionCreate), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/venues", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRequireObjectID(t *testing.T) {
	r := newRouter()
	r.GET("/things/:id", RequireObjectID("id"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/things/not-hex", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "Invalid id format."}`, w.Body.String())

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/things/64b0c5f2a1d2e3f4a5b6c7d8", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSanitizeBodyStripsOperatorKeys(t *testing.T) {
	r := newRouter()
	r.Use(SanitizeBody())

	var received map[string]interface{}
	r.POST("/echo", func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		require.NoError(t, json.Unmarshal(body, &received))
		c.Status(http.StatusOK)
	})

	payload := `{"name":"Garden Hall","$where":"sleep(1000)","nested":{"$gt":"","ok":true},"a.b":1}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Garden Hall", received["name"])
	assert.NotContains(t, received, "$where")
	assert.NotContains(t, received, "a.b")
	nested := received["nested"].(map[string]interface{})
	assert.NotContains(t, nested, "$gt")
	assert.Equal(t, true, nested["ok"])
}

func TestSanitizeBodyPassesNonJSONThrough(t *testing.T) {
	r := newRouter()
	r.Use(SanitizeBody())
	r.POST("/echo", func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.String(http.StatusOK, string(body))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString("not json"))
	r.ServeHTTP(w, req)

	assert.Equal(t, "not json", w.Body.String())
}

func TestErrorHandlerFormatsTaxonomy(t *testing.T) {
	r := newRouter()
	r.GET("/missing", func(c *gin.Context) {
		Abort(c, apperror.NotFound("Booking not found!"))
	})
	r.GET("/boom", func(c *gin.Context) {
		Abort(c, assert.AnError)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error": "Booking not found!"}`, w.Body.String())

	// Errors outside the taxonomy default to 500.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/boom", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
