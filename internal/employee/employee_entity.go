package employee

import (
	"time"

	"go-hrms/internal/department"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeNumber string    `gorm:"size:20;not null;uniqueIndex:uq_employee_number"`
	FirstName      string    `gorm:"size:100;not null"`
	LastName       string    `gorm:"size:100;not null"`
	Email          string    `gorm:"size:255;not null;uniqueIndex:uq_employee_email"`
	Phone          string    `gorm:"size:30"`
	Position       string    `gorm:"size:100"`
	HireDate       time.Time `gorm:"type:date;not null"`

	DepartmentID *uuid.UUID             `gorm:"type:uuid;index"`
	Department   *department.Department `gorm:"foreignKey:DepartmentID"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
