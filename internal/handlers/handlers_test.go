package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/harentsoaR/wedding-api/internal/middleware"
	"github.com/harentsoaR/wedding-api/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestDashboardURL(t *testing.T) {
	assert.Equal(t, "/admin-dashboard", DashboardURL(models.RoleAdmin))
	assert.Equal(t, "/vendor-dashboard", DashboardURL(models.RoleEventMgmtVendor))
	assert.Equal(t, "/user-dashboard", DashboardURL(models.RoleUser))
	assert.Equal(t, "/user-dashboard", DashboardURL("something-else"))
}

// Validation failures are rejected at the binding layer, before any
// store access, so these run against a handler with no database.
func TestRequestValidation(t *testing.T) {
	h := &Handler{Log: zerolog.Nop()}

	r := gin.New()
	r.Use(middleware.ErrorHandler(zerolog.Nop()))
	r.POST("/users/register", h.RegisterUser)
	r.POST("/users/login", h.Login)
	r.POST("/bookings", h.CreateBooking)
	r.POST("/venues", h.CreateVenue)
	r.POST("/eventMgmtVendors", h.CreateEventMgmtVendor)

	tests := []struct {
		name string
		path string
		body string
	}{
		{"register missing fields", "/users/register", `{"username":"amy"}`},
		{"register bad email", "/users/register", `{"username":"amy","email":"nope","password":"longenough","contact_details":"123"}`},
		{"register short password", "/users/register", `{"username":"amy","email":"amy@example.com","password":"abc","contact_details":"123"}`},
		{"login unknown role", "/users/login", `{"email":"amy@example.com","password":"x","role":"superadmin"}`},
		{"booking malformed package id", "/bookings", `{"package_id":"zzz"}`},
		{"booking bad status", "/bookings", `{"package_id":"64b0c5f2a1d2e3f4a5b6c7d8","status":"Maybe"}`},
		{"venue zero capacity", "/venues", `{"name":"Hall","location":"City","capacity":0,"price":100}`},
		{"event vendor short id", "/eventMgmtVendors", `{"user_id":"abc","vendor_id":"64b0c5f2a1d2e3f4a5b6c7d8"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, tt.path, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "error")
		})
	}
}

// Partial-update requests with an empty body are rejected before any
// document is touched.
func TestUpdateRejectsEmptyBody(t *testing.T) {
	h := &Handler{Log: zerolog.Nop()}

	r := gin.New()
	r.Use(middleware.ErrorHandler(zerolog.Nop()))
	// Caller is the target user, so the ownership check passes and the
	// handler reaches field collection.
	r.PUT("/users/:id", func(c *gin.Context) {
		c.Set(middleware.ContextUserID, c.Param("id"))
		c.Set(middleware.ContextUserRole, models.RoleUser)
	}, h.UpdateUser)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/users/64b0c5f2a1d2e3f4a5b6c7d8", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "No update fields provided"}`, w.Body.String())
}

// A caller who is neither the target user nor an admin is turned away
// before any store access.
func TestUpdateUserForbiddenForNonOwner(t *testing.T) {
	h := &Handler{Log: zerolog.Nop()}

	r := gin.New()
	r.Use(middleware.ErrorHandler(zerolog.Nop()))
	r.PUT("/users/:id", func(c *gin.Context) {
		c.Set(middleware.ContextUserID, "64b0c5f2a1d2e3f4a5b6c7d9")
		c.Set(middleware.ContextUserRole, models.RoleUser)
	}, h.UpdateUser)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/users/64b0c5f2a1d2e3f4a5b6c7d8", bytes.NewBufferString(`{"username":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error": "Access denied."}`, w.Body.String())
}
