package models

import (
	"fmt"
	"time"
)

// Platform roles. Role sets per endpoint are enforced by the RequireRole
// middleware.
const (
	RoleAdmin     = "admin"
	RoleStaff     = "staff"
	RoleInspector = "inspector"
	RoleApplicant = "applicant"
)

// User represents the users table
type User struct {
	UserID    int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	Email     string     `gorm:"column:email" json:"email"`
	Password  string     `gorm:"column:password" json:"-"`
	FirstName string     `gorm:"column:first_name" json:"first_name"`
	LastName  string     `gorm:"column:last_name" json:"last_name"`
	Role      string     `gorm:"column:role" json:"role"`
	CreateAt  time.Time  `gorm:"column:create_at;autoCreateTime" json:"create_at"`
	UpdateAt  time.Time  `gorm:"column:update_at;autoUpdateTime" json:"update_at"`
	DeleteAt  *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) FullName() string {
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}
