package models

type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleOwner  UserRole = "owner"
	UserRoleTenant UserRole = "tenant"
)

type User struct {
	BaseUUIDModel
	Email     string   `gorm:"type:text;not null;uniqueIndex" json:"email"`
	FirstName string   `gorm:"type:text"                      json:"firstName"`
	LastName  string   `gorm:"type:text"                      json:"lastName"`
	Role      UserRole `gorm:"type:text;not null;default:'tenant';index" json:"role"`
	IsActive  bool     `gorm:"default:true"                   json:"isActive"`
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
