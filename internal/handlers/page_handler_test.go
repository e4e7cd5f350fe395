package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/farellandr/coupongen/internal/handlers"
	"github.com/farellandr/coupongen/internal/middleware"
	"github.com/farellandr/coupongen/internal/models"
)

func setupPageRouter(db *gorm.DB, userID uuid.UUID) *gin.Engine {
	r := gin.New()
	r.LoadHTMLGlob("../../templates/*.html")
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", models.RoleAdmin)
		c.Next()
	})
	r.GET("/v1/admin/coupons/generate", handlers.ShowGeneratePage)
	return r
}

func TestShowGeneratePage_RendersFormWithDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := openTestDB(t)
	require.NoError(t, db.Create(&models.Category{Name: "Apparel", Slug: "apparel"}).Error)
	require.NoError(t, db.Create(&models.Category{Name: "Books", Slug: "books"}).Error)

	r := setupPageRouter(db, uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/coupons/generate", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	assert.Contains(t, body, `name="action" value="generate_coupons"`)
	assert.Contains(t, body, `name="nonce"`)
	assert.Contains(t, body, `value="percent"`)
	assert.Contains(t, body, `value="fixed_cart"`)
	assert.Contains(t, body, `value="fixed_product"`)
	assert.Contains(t, body, `name="price" value="5"`)
	assert.Contains(t, body, `name="amount" value="10"`)
	assert.Contains(t, body, `name="usage_limit" value="1"`)
	assert.Contains(t, body, "Apparel")
	assert.Contains(t, body, "Books")
}
