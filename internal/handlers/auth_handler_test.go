package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/farellandr/coupongen/internal/handlers"
	"github.com/farellandr/coupongen/internal/middleware"
	"github.com/farellandr/coupongen/internal/models"
)

func setupAuthRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	require.NoError(t, db.AutoMigrate(&models.Role{}, &models.User{}))
	require.NoError(t, db.Create(&models.Role{Name: models.RoleShopManager}).Error)

	r := gin.New()
	r.Use(middleware.DatabaseMiddleware(db))
	r.POST("/v1/register", handlers.Register)
	r.POST("/v1/login", handlers.Login)
	return r
}

func postJSON(r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterAndLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := openTestDB(t)
	r := setupAuthRouter(t, db)

	w := postJSON(r, "/v1/register", map[string]string{
		"email":     "manager@example.com",
		"password":  "s3cret-pw",
		"name":      "Shop Manager",
		"role_name": models.RoleShopManager,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(r, "/v1/login", map[string]string{
		"email":    "manager@example.com",
		"password": "s3cret-pw",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.RoleShopManager, resp.User.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := openTestDB(t)
	r := setupAuthRouter(t, db)

	w := postJSON(r, "/v1/register", map[string]string{
		"email":     "manager@example.com",
		"password":  "s3cret-pw",
		"name":      "Shop Manager",
		"role_name": models.RoleShopManager,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(r, "/v1/login", map[string]string{
		"email":    "manager@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegister_UnknownRole(t *testing.T) {
	db := openTestDB(t)
	r := setupAuthRouter(t, db)

	w := postJSON(r, "/v1/register", map[string]string{
		"email":     "someone@example.com",
		"password":  "s3cret-pw",
		"name":      "Someone",
		"role_name": "supervillain",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
