package models

// MenuLinkType describes how the app resolves a menu item.
type MenuLinkType string

const (
	MenuLinkScreen   MenuLinkType = "screen"
	MenuLinkExternal MenuLinkType = "external"
	MenuLinkWebview  MenuLinkType = "webview"
)

// MenuSection groups items in the app's "More" tab.
type MenuSection string

const (
	MenuSectionAccount MenuSection = "account"
	MenuSectionOrg     MenuSection = "ssdp"
	MenuSectionSupport MenuSection = "support"
)

// MenuItem is an admin-editable entry in the app menu, filtered by role.
type MenuItem struct {
	ID           string       `gorm:"primaryKey;type:uuid" json:"id"`
	Label        string       `gorm:"not null" json:"label"`
	Icon         *string      `json:"icon,omitempty"`
	LinkType     MenuLinkType `gorm:"type:varchar(16);not null;default:'screen'" json:"link_type"`
	LinkValue    *string      `json:"link_value,omitempty"`
	RequiredRole UserRole     `gorm:"type:varchar(32);not null;default:'registered'" json:"required_role"`
	Section      MenuSection  `gorm:"type:varchar(16);not null;default:'ssdp'" json:"section"`
	SortOrder    int          `gorm:"not null;default:0" json:"sort_order"`
	IsVisible    bool         `gorm:"not null;default:true" json:"is_visible"`

	Timestamps
}
