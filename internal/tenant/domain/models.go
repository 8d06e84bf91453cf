// Package domain contains persistence models and contracts for the tenant service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Tenant represents one restaurant's isolated partition of the platform.
type Tenant struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	Name         string       `gorm:"type:text;not null" json:"name"`
	ShortName    string       `gorm:"type:text;not null;uniqueIndex:ux_tenants_short_name" json:"short_name"`
	CustomDomain *string      `gorm:"type:text;uniqueIndex:ux_tenants_custom_domain" json:"custom_domain,omitempty"`
	Active       bool         `gorm:"not null;default:true" json:"active"`
	SupportEmail string       `gorm:"type:text;column:support_email" json:"support_email"`
	Phone        string       `gorm:"type:text" json:"phone"`
	BrandColor   string       `gorm:"type:text;column:brand_color" json:"brand_color"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Tenant) TableName() string { return "tenants" }
