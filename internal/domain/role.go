package domain

// RoleName is one of the fixed role names
type RoleName string

const (
	RoleAdmin   RoleName = "admin"   // Full access, including admin routes
	RoleManager RoleName = "manager" // Read access to user listings
	RoleUser    RoleName = "user"    // Default role on signup
)

// AllRoles lists every role seeded at startup
var AllRoles = []RoleName{RoleAdmin, RoleManager, RoleUser}

// Valid reports whether r is one of the known role names
func (r RoleName) Valid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// Role Model
type Role struct {
	ID   uint     `gorm:"primaryKey" json:"id"`                     // Primary key
	Name RoleName `gorm:"size:32;uniqueIndex;not null" json:"name"` // Unique role name
}
