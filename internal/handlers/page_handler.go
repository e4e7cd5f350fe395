package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farellandr/coupongen/internal/helpers"
	"github.com/farellandr/coupongen/internal/models"
)

// Form defaults shown on the generator page.
const (
	defaultPrice      = 5
	defaultAmount     = 10
	defaultUsageLimit = 1
)

// ShowGeneratePage renders the bulk generation form: the coupon type
// enumeration, every product category ordered by name (including empty
// ones), defaults, and the hidden action and nonce fields.
func ShowGeneratePage(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
		return
	}
	userUUID, ok := userID.(uuid.UUID)
	if !ok {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var categories []models.Category
	if err := gormDB.Order("name ASC").Find(&categories).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving categories.")
		return
	}

	c.HTML(http.StatusOK, "generate.html", gin.H{
		"Types":             models.CouponTypes,
		"Categories":        categories,
		"DefaultPrice":      defaultPrice,
		"DefaultAmount":     defaultAmount,
		"DefaultUsageLimit": defaultUsageLimit,
		"DefaultExpiry":     time.Now().AddDate(1, 0, 0).Format("2006-01-02"),
		"Action":            ActionGenerateCoupons,
		"Nonce":             helpers.NewNonce(ActionGenerateCoupons, userUUID),
	})
}
