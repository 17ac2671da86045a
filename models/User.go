package models

import (
	"gorm.io/gorm"
)

// Role is fixed at registration; there is no in-app role change.
type Role string

const (
	RoleTenant   Role = "tenant"
	RoleLandlord Role = "landlord"
	RoleAdmin    Role = "admin"
)

type User struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"uniqueIndex;size:255"`
	Password string `json:"-"`
	Role     Role   `json:"role" gorm:"type:varchar(20);default:tenant;index"`
}

// Identity is the caller's authenticated id and role. It is built once per
// request from the verified access token and passed explicitly into every
// service operation; services never read ambient auth state.
type Identity struct {
	ID   uint
	Role Role
}

func (i Identity) IsAdmin() bool    { return i.Role == RoleAdmin }
func (i Identity) IsLandlord() bool { return i.Role == RoleLandlord }
func (i Identity) IsTenant() bool   { return i.Role == RoleTenant }
