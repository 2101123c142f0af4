package department

import (
	"context"
	"errors"
	"net/http"

	"go-hrms/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid department id",
		http.StatusBadRequest,
	)
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"department not found",
		http.StatusNotFound,
	)
	ErrDepartmentNameTaken = apperror.New(
		apperror.CodeConflict,
		"a department with this name already exists",
		http.StatusConflict,
	)
	ErrDepartmentHasEmployees = apperror.New(
		apperror.CodeConflict,
		"department still has employees assigned",
		http.StatusConflict,
	)
)

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (DepartmentResponse, error)
	GetAll(ctx context.Context) ([]DepartmentResponse, error)
	Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error) {
	d := &Department{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("department created",
		zap.String("department_id", d.ID.String()),
		zap.String("name", d.Name),
	)
	return mapToResponse(*d), nil
}

func (s *service) GetByID(ctx context.Context, id string) (DepartmentResponse, error) {
	departmentID, err := uuid.Parse(id)
	if err != nil {
		return DepartmentResponse{}, ErrInvalidDepartmentID
	}
	d, err := s.repo.FindByID(ctx, departmentID)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	resp := mapToResponse(*d)
	if count, err := s.repo.CountEmployees(ctx, departmentID); err == nil {
		resp.EmployeeCount = count
	}
	return resp, nil
}

func (s *service) GetAll(ctx context.Context) ([]DepartmentResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error) {
	departmentID, err := uuid.Parse(id)
	if err != nil {
		return DepartmentResponse{}, ErrInvalidDepartmentID
	}
	d, err := s.repo.FindByID(ctx, departmentID)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	d.Name = req.Name
	d.Description = req.Description
	if err := s.repo.Update(ctx, d); err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*d), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	departmentID, err := uuid.Parse(id)
	if err != nil {
		return ErrInvalidDepartmentID
	}
	if _, err := s.repo.FindByID(ctx, departmentID); err != nil {
		return mapRepositoryError(err)
	}

	count, err := s.repo.CountEmployees(ctx, departmentID)
	if err != nil {
		return err
	}
	if count > 0 {
		s.logger.Warn("department delete blocked",
			zap.String("department_id", id),
			zap.Int64("employee_count", count),
		)
		return ErrDepartmentHasEmployees
	}

	return s.repo.Delete(ctx, departmentID)
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrDepartmentNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDepartmentNameTaken
	}
	return err
}
