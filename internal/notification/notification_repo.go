package notification

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_repo.go -destination=mock/notification_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	FindAll(ctx context.Context) ([]Notification, error)
	// FindPending returns pending rows oldest first so the dispatch loop
	// drains the queue in arrival order.
	FindPending(ctx context.Context) ([]Notification, error)
	FindRecent(ctx context.Context, limit int) ([]Notification, error)
	Update(ctx context.Context, n *Notification) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Notification, error) {
	var n Notification
	err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Notification, error) {
	var rows []Notification
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindPending(ctx context.Context) ([]Notification, error) {
	var rows []Notification
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusPending).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindRecent(ctx context.Context, limit int) ([]Notification, error) {
	var rows []Notification
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Save(n).Error
}
