package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	EmployeeID *uuid.UUID     `gorm:"type:uuid;uniqueIndex:uq_user_employee"`
	Name       string         `gorm:"size:255;not null"`
	Email      string         `gorm:"size:255;not null;uniqueIndex:uq_user_email"`
	Password   string         `gorm:"size:255;not null"`
	Role       string         `gorm:"size:50;not null;default:'EMPLOYEE'"`
	IsActive   bool           `gorm:"default:true"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
