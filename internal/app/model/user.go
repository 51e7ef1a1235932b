package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Username     string         `gorm:"type:varchar(150);uniqueIndex:idx_users_username;not null" json:"username"`
	Email        string         `gorm:"type:varchar(254);uniqueIndex:idx_users_email;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	FirstName    string         `gorm:"type:varchar(150);not null" json:"first_name"`
	LastName     string         `gorm:"type:varchar(150);not null" json:"last_name"`
	Role         UserRole       `gorm:"type:varchar(20);default:'user'" json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Recipes []Recipe `gorm:"foreignKey:AuthorID" json:"-"`
}

func (User) TableName() string {
	return "users"
}
