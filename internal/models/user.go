package models

import "gorm.io/gorm"

// User represents a registered account. Admin accounts drive the shipping
// pipeline; regular accounts own orders.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	FirstName  string `json:"first_name" gorm:"type:varchar(80)" validate:"required,max=80"`
	LastName   string `json:"last_name" gorm:"type:varchar(80)" validate:"required,max=80"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string `json:"-" gorm:"type:varchar(255)"` // bcrypt digest, never serialized
	IsAdmin    bool   `json:"is_admin" gorm:"default:false"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
