package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CouponStatusPublished is the status every generated coupon is created with.
// Coupons are never mutated or deleted by this service after creation.
const CouponStatusPublished = "publish"

// Meta keys attached to every generated coupon.
const (
	MetaDiscountType      = "discount_type"
	MetaCouponAmount      = "coupon_amount"
	MetaIndividualUse     = "individual_use"
	MetaProductIDs        = "product_ids"
	MetaExcludeProductIDs = "exclude_product_ids"
	MetaUsageLimit        = "usage_limit"
	MetaExpiryDate        = "expiry_date"
	MetaApplyBeforeTax    = "apply_before_tax"
	MetaFreeShipping      = "free_shipping"
	MetaProductCategories = "product_categories"
)

// CouponType is one entry of the shop's coupon type enumeration.
type CouponType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CouponTypes lists the discount types offered in the generator form,
// in display order.
var CouponTypes = []CouponType{
	{ID: "percent", Name: "Percentage discount"},
	{ID: "fixed_cart", Name: "Fixed cart discount"},
	{ID: "fixed_product", Name: "Fixed product discount"},
}

type Coupon struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Code      string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"code"`
	Status    string         `gorm:"type:varchar(20);not null" json:"status"`
	AuthorID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"author_id"`
	Meta      []CouponMeta   `gorm:"constraint:OnDelete:CASCADE" json:"meta,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (coupon *Coupon) BeforeCreate(tx *gorm.DB) (err error) {
	if coupon.ID == uuid.Nil {
		coupon.ID = uuid.New()
	}
	return
}

// CouponMeta is one entry of a coupon's string-keyed metadata bag.
type CouponMeta struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	CouponID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_coupon_meta_key" json:"-"`
	MetaKey   string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_coupon_meta_key" json:"key"`
	MetaValue string    `gorm:"type:text;not null" json:"value"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (CouponMeta) TableName() string {
	return "coupon_meta"
}
