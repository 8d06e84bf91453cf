// Package domain contains persistence models and contracts for the catalog,
// the read-side menu store the order composer validates carts against.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Category groups menu items within one tenant's menu.
type Category struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	TenantID     snowflake.ID `gorm:"not null;index" json:"tenant_id"`
	Name         string       `gorm:"type:text;not null" json:"name"`
	DisplayOrder int          `gorm:"not null;default:0" json:"display_order"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Category) TableName() string { return "categories" }

// MenuItem is a single orderable item. CategoryID must reference a category
// owned by the same tenant.
type MenuItem struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	TenantID   snowflake.ID `gorm:"not null;index" json:"tenant_id"`
	CategoryID snowflake.ID `gorm:"not null;index" json:"category_id"`
	Name       string       `gorm:"type:text;not null" json:"name"`
	PriceCents int64        `gorm:"not null" json:"price_cents"`
	Available  bool         `gorm:"not null;default:true" json:"available"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (MenuItem) TableName() string { return "menu_items" }

// ComboType is a priced bundle: the customer picks BaseItemCount items from
// the combo's availability set, overflow picks are billed at
// AdditionalItemUnitPriceCents each (nil means overflow is free).
type ComboType struct {
	ID                           snowflake.ID  `gorm:"primaryKey" json:"id"`
	TenantID                     *snowflake.ID `gorm:"index" json:"tenant_id,omitempty"`
	Name                         string        `gorm:"type:text;not null" json:"name"`
	BasePriceCents               int64         `gorm:"not null" json:"base_price_cents"`
	BaseItemCount                int           `gorm:"not null;default:1" json:"base_item_count"`
	AdditionalItemUnitPriceCents *int64        `json:"additional_item_unit_price_cents,omitempty"`
	IncludedSideCount            int           `gorm:"not null;default:0" json:"included_side_count"`
	CreatedAt                    time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (ComboType) TableName() string { return "combo_types" }

// Roles a menu item can play inside a combo.
const (
	RoleBaseChoice = "BASE_CHOICE"
	RoleEntree     = "ENTREE"
)

// ComboAvailability declares that a combo type may draw a given menu item,
// either as a mutually-exclusive base choice or a freely selectable entree.
type ComboAvailability struct {
	ComboTypeID  snowflake.ID `gorm:"primaryKey;autoIncrement:false" json:"combo_type_id"`
	MenuItemID   snowflake.ID `gorm:"primaryKey;autoIncrement:false" json:"menu_item_id"`
	Role         string       `gorm:"type:text;not null" json:"role"`
	DisplayOrder int          `gorm:"not null;default:0" json:"display_order"`
}

// TableName sets the database table name.
func (ComboAvailability) TableName() string { return "combo_availabilities" }
