package employee

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, e *Employee) error
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindAll(ctx context.Context) ([]Employee, error)
	DepartmentExists(ctx context.Context, id uuid.UUID) (bool, error)
	CountAll(ctx context.Context) (int64, error)
	CountByDepartment(ctx context.Context) ([]DepartmentHeadcount, error)
	FindRecentHires(ctx context.Context, limit int) ([]Employee, error)
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Preload("Department").
		First(&e, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var rows []Employee
	err := r.db.WithContext(ctx).
		Preload("Department").
		Order("employee_number ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) DepartmentExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("departments").
		Where("id = ? AND deleted_at IS NULL", id).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Employee{}).Count(&count).Error
	return count, err
}

func (r *repository) CountByDepartment(ctx context.Context) ([]DepartmentHeadcount, error) {
	var rows []DepartmentHeadcount
	err := r.db.WithContext(ctx).Raw(`
SELECT
	d.id::text AS department_id,
	d.name AS department_name,
	COUNT(e.id) AS count
FROM departments d
LEFT JOIN employees e ON e.department_id = d.id AND e.deleted_at IS NULL
WHERE d.deleted_at IS NULL
GROUP BY d.id, d.name
ORDER BY d.name ASC
`).Scan(&rows).Error
	return rows, err
}

func (r *repository) FindRecentHires(ctx context.Context, limit int) ([]Employee, error) {
	var rows []Employee
	err := r.db.WithContext(ctx).
		Preload("Department").
		Order("hire_date DESC, employee_number DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id).Error
}
