package model

import (
	"time"

	"github.com/google/uuid"
)

// CartModel mirrors the 'carts' table. One row per user.
type CartModel struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID    uuid.UUID        `gorm:"type:uuid;unique;not null"`
	Items     []*CartItemModel `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CartModel) TableName() string {
	return "carts"
}

// CartItemModel mirrors the 'cart_items' table. The price columns are the
// snapshot captured at add time; they are never refreshed from the catalog.
// The (cart_id, product_id, variant) index keeps one line per variant.
type CartItemModel struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	CartID            uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product_variant"`
	ProductID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product_variant"`
	ProductName       string     `gorm:"type:varchar(255);not null"`
	Quantity          int        `gorm:"not null"`
	UnitPrice         float64    `gorm:"type:numeric(12,2);not null"`
	UnitDiscountPrice *float64   `gorm:"type:numeric(12,2)"`
	Variant           string     `gorm:"type:varchar(100);not null;default:'';uniqueIndex:idx_cart_items_cart_product_variant"`
	AddedAt           time.Time  `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (CartItemModel) TableName() string {
	return "cart_items"
}
