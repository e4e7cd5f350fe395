package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/farellandr/coupongen/internal/helpers"
	"github.com/farellandr/coupongen/internal/middleware"
	"github.com/farellandr/coupongen/internal/models"
)

// ActionGenerateCoupons is the sentinel the form posts as the hidden
// action field. It also scopes the per-user nonce.
const ActionGenerateCoupons = "generate_coupons"

const maxCodeAttempts = 3

// GenerateCoupons handles the bulk generation form submission: it creates
// `amount` coupons, each with a fresh random code and the full metadata
// bag, then redirects to the coupon listing.
func GenerateCoupons(c *gin.Context) {
	action := c.PostForm("action")
	expiry := c.PostForm("expiry")
	discountType := c.PostForm("type")
	amount := helpers.FormInt(c, "amount")
	usageLimit := helpers.FormInt(c, "usage_limit")
	price := helpers.FormFloat(c, "price")
	productCategories := c.PostFormArray("product_categories[]")

	// A zero amount or price fails this gate just like an absent one.
	// A negative amount passes, generates nothing and still redirects.
	if action != ActionGenerateCoupons || amount == nil || *amount == 0 ||
		expiry == "" || discountType == "" || price == nil || *price == 0 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

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

	if !helpers.VerifyNonce(c.PostForm("nonce"), ActionGenerateCoupons, userUUID) {
		helpers.RespondWithError(c, http.StatusForbidden, "Invalid or expired form token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)
	logger := middleware.GetLogger(c)

	categoriesMeta, err := encodeProductCategories(productCategories)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to encode product categories.")
		return
	}

	limit := 0
	if usageLimit != nil {
		limit = *usageLimit
	}

	created := 0
	for i := 0; i < *amount; i++ {
		if err := insertCoupon(gormDB, userUUID, discountType, *price, limit, expiry, categoriesMeta); err != nil {
			logger.Error("coupon generation aborted",
				zap.Int("requested", *amount),
				zap.Int("created", created),
				zap.Error(err),
			)
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate coupons.")
			return
		}
		created++
	}

	logger.Info("coupons generated",
		zap.Int("count", created),
		zap.String("discount_type", discountType),
		zap.String("author_id", userUUID.String()),
	)
	c.Redirect(http.StatusSeeOther, "/v1/admin/coupons")
}

// insertCoupon writes one coupon together with its metadata bag. A
// duplicate code is retried with a fresh one up to maxCodeAttempts times.
func insertCoupon(db *gorm.DB, author uuid.UUID, discountType string, price float64, usageLimit int, expiry, categoriesMeta string) error {
	var lastErr error
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		coupon := models.Coupon{
			ID:       uuid.New(),
			Code:     helpers.GenerateCouponCode(),
			Status:   models.CouponStatusPublished,
			AuthorID: author,
			Meta:     buildCouponMeta(discountType, price, usageLimit, expiry, categoriesMeta),
		}
		lastErr = db.Create(&coupon).Error
		if lastErr == nil {
			return nil
		}
		if !isDuplicateKeyError(lastErr) {
			return lastErr
		}
	}
	return fmt.Errorf("could not find an unused coupon code after %d attempts: %w", maxCodeAttempts, lastErr)
}

func buildCouponMeta(discountType string, price float64, usageLimit int, expiry, categoriesMeta string) []models.CouponMeta {
	meta := []models.CouponMeta{
		{MetaKey: models.MetaDiscountType, MetaValue: discountType},
		{MetaKey: models.MetaCouponAmount, MetaValue: strconv.FormatFloat(price, 'f', -1, 64)},
		{MetaKey: models.MetaIndividualUse, MetaValue: "no"},
		{MetaKey: models.MetaProductIDs, MetaValue: ""},
		{MetaKey: models.MetaExcludeProductIDs, MetaValue: ""},
		{MetaKey: models.MetaUsageLimit, MetaValue: strconv.Itoa(usageLimit)},
		{MetaKey: models.MetaExpiryDate, MetaValue: expiry},
		{MetaKey: models.MetaApplyBeforeTax, MetaValue: "yes"},
		{MetaKey: models.MetaFreeShipping, MetaValue: "no"},
	}
	if categoriesMeta != "" {
		meta = append(meta, models.CouponMeta{MetaKey: models.MetaProductCategories, MetaValue: categoriesMeta})
	}
	return meta
}

// encodeProductCategories sanitizes every key and value of the submitted
// category selection and JSON-encodes the result. An empty selection
// yields an empty string and no metadata entry.
func encodeProductCategories(values []string) (string, error) {
	if len(values) == 0 {
		return "", nil
	}
	sanitized := make(map[string]string, len(values))
	for i, v := range values {
		sanitized[helpers.SanitizeKey(strconv.Itoa(i))] = helpers.SanitizeKey(v)
	}
	encoded, err := json.Marshal(sanitized)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func isDuplicateKeyError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
