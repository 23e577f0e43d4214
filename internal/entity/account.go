package entity

import "time"

const (
	AccountRoleUser   = "user"
	AccountRoleVendor = "vendor"
	AccountRoleAdmin  = "admin"
)

// DbAccount represents a persisted marketplace account.
//
// Role determines which profile columns are populated: display_name for
// user/admin accounts, organization_name/location/categories for vendors.
// The password hash is never serialised.
type DbAccount struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Email        string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	Role         string    `gorm:"column:role;type:varchar(50);index;not null" json:"role"`
	DisplayName  string    `gorm:"column:display_name;type:varchar(255)" json:"display_name,omitempty"`

	// Vendor profile columns.
	OrganizationName string      `gorm:"column:organization_name;type:varchar(255)" json:"organization_name,omitempty"`
	Location         string      `gorm:"column:location;type:varchar(255)" json:"location,omitempty"`
	Categories       StringArray `gorm:"column:categories;type:text" json:"categories,omitempty"`

	IsActive bool `gorm:"column:is_active;not null;default:true" json:"is_active"`
}

// TableName overrides default pluralised name.
func (DbAccount) TableName() string {
	return "accounts"
}

// IsVendor reports whether the account carries a vendor profile.
func (a *DbAccount) IsVendor() bool {
	return a != nil && a.Role == AccountRoleVendor
}
