package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Product categories. Anything outside this set is rejected on write.
const (
	CategoryNotebook   = "Notebook"
	CategoryGadget     = "Gadget"
	CategoryStationery = "Stationery"
	CategoryOther      = "Other"
)

// Product conditions.
const (
	ConditionBrandNew = "Brand New"
	ConditionLikeNew  = "Like New"
	ConditionGood     = "Good"
	ConditionFair     = "Fair"
)

// ValidCategory reports whether c is one of the fixed category choices.
func ValidCategory(c string) bool {
	switch c {
	case CategoryNotebook, CategoryGadget, CategoryStationery, CategoryOther:
		return true
	}
	return false
}

// ValidCondition reports whether c is one of the fixed condition choices.
func ValidCondition(c string) bool {
	switch c {
	case ConditionBrandNew, ConditionLikeNew, ConditionGood, ConditionFair:
		return true
	}
	return false
}

// Product is a listing offered for sale and/or rent. The seller and creation
// timestamp are server-assigned; is_active is a soft-delete marker that only
// hides the listing from the browse list. SellerName is a query-time
// projection of the seller's first name, never a stored column.
type Product struct {
	ID          uint                `gorm:"primaryKey" json:"id"`
	SellerID    uint                `gorm:"not null;index" json:"seller"`
	Seller      User                `gorm:"foreignKey:SellerID;constraint:OnDelete:CASCADE" json:"-"`
	SellerName  string              `gorm:"->;-:migration" json:"seller_name"`
	Title       string              `gorm:"size:255;not null" json:"title"`
	Description string              `gorm:"type:text" json:"description"`
	Price       decimal.Decimal     `gorm:"type:decimal(10,2)" json:"price"`
	RentPrice   decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"rent_price"`
	CanRent     bool                `json:"can_rent"`
	Image       string              `gorm:"type:text" json:"image"` // base64 or URL, opaque
	Category    string              `gorm:"size:20" json:"category"`
	Condition   string              `gorm:"size:20" json:"condition"`
	// Specs absorbs free-form gadget attributes a fixed schema cannot anticipate.
	Specs     datatypes.JSONMap `json:"specs"`
	Comments  []Comment         `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"comments"`
	CreatedAt time.Time         `json:"created_at"`
	IsActive  bool              `gorm:"default:true" json:"is_active"`
}
