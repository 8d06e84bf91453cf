package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// GetMenu assembles the storefront read model: categories with their
	// available items plus the combo types the tenant may sell.
	GetMenu(ctx context.Context, tenantID snowflake.ID) (*MenuResponse, error)
}

type MenuResponse struct {
	Categories []MenuCategory  `json:"categories"`
	Combos     []MenuComboType `json:"combos"`
}

type MenuCategory struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Items []MenuItemView `json:"items"`
}

type MenuItemView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
}

type MenuComboType struct {
	ID                           string          `json:"id"`
	Name                         string          `json:"name"`
	BasePriceCents               int64           `json:"base_price_cents"`
	BaseItemCount                int             `json:"base_item_count"`
	AdditionalItemUnitPriceCents *int64          `json:"additional_item_unit_price_cents,omitempty"`
	IncludedSideCount            int             `json:"included_side_count"`
	BaseChoices                  []MenuComboSlot `json:"base_choices"`
	Entrees                      []MenuComboSlot `json:"entrees"`
}

type MenuComboSlot struct {
	MenuItemID   string `json:"menu_item_id"`
	DisplayOrder int    `json:"display_order"`
}
