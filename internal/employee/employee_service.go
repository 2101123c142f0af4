package employee

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	employeeerrors "go-hrms/internal/employee/errors"
	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/shared/clock"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const StatisticsCacheKey = "employees:statistics"

const statisticsCacheTTL = 5 * time.Minute

const recentHiresLimit = 5

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	GetStatistics(ctx context.Context) (StatisticsResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db      *gorm.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	clock   clock.Clock
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		outbox:  outboxRepo,
		rdb:     rdb,
		clock:   clk,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
		zap.String("department_id", req.DepartmentID),
	)

	departmentID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidDepartmentID
	}

	hireDate, err := s.parseHireDate(req.HireDate)
	if err != nil {
		return EmployeeResponse{}, err
	}

	empl := &Employee{
		ID:             uuid.New(),
		EmployeeNumber: req.EmployeeNumber,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Position:       req.Position,
		HireDate:       hireDate,
		DepartmentID:   &departmentID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		exists, err := qtx.DepartmentExists(ctx, departmentID)
		if err != nil {
			s.logger.Error("create employee department lookup failed", zap.Error(err))
			return err
		}
		if !exists {
			s.logger.Warn("create employee department not found",
				zap.String("department_id", req.DepartmentID),
			)
			return employeeerrors.ErrDepartmentNotFound
		}

		if empl.EmployeeNumber == "" {
			nextVal, err := s.counter.GetNextValue(ctx, "employee_number")
			if err != nil {
				s.logger.Error("create employee generate number failed", zap.Error(err))
				return err
			}
			empl.EmployeeNumber = fmt.Sprintf("EMP-%06d", nextVal)
		}

		if err := qtx.Create(ctx, empl); err != nil {
			s.logger.Error("create employee persist failed", zap.Error(err))
			return mapRepositoryError(err)
		}

		return s.enqueueLifecycleEvent(ctx, tx, events.EmployeeCreatedType, empl)
	})
	if err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateStatisticsCache(ctx)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_number", empl.EmployeeNumber),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested")
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	employeeID, err := uuid.Parse(id)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		s.logger.Error("get employee by id failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

// GetStatistics serves headcount aggregates from redis when warm, and
// collapses concurrent cache misses into a single query via singleflight.
func (s *service) GetStatistics(ctx context.Context) (StatisticsResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, StatisticsCacheKey).Result(); err == nil {
			var resp StatisticsResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(StatisticsCacheKey, func() (interface{}, error) {
		total, err := s.repo.CountAll(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		byDepartment, err := s.repo.CountByDepartment(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		recent, err := s.repo.FindRecentHires(ctx, recentHiresLimit)
		if err != nil {
			return nil, mapRepositoryError(err)
		}
		recentHires := make([]EmployeeResponse, 0, len(recent))
		for _, empl := range recent {
			recentHires = append(recentHires, mapToResponse(empl))
		}

		resp := StatisticsResponse{
			TotalEmployees: total,
			ByDepartment:   byDepartment,
			RecentHires:    recentHires,
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, StatisticsCacheKey, jsonData, statisticsCacheTTL)
			}
		}

		return resp, nil
	})
	if err != nil {
		return StatisticsResponse{}, err
	}

	return v.(StatisticsResponse), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	employeeID, err := uuid.Parse(id)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	departmentID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidDepartmentID
	}

	hireDate, err := s.parseHireDate(req.HireDate)
	if err != nil {
		return EmployeeResponse{}, err
	}

	var empl *Employee
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		exists, err := qtx.DepartmentExists(ctx, departmentID)
		if err != nil {
			s.logger.Error("update employee department lookup failed", zap.Error(err))
			return err
		}
		if !exists {
			return employeeerrors.ErrDepartmentNotFound
		}

		empl, err = qtx.FindByID(ctx, employeeID)
		if err != nil {
			s.logger.Error("update employee fetch existing failed", zap.Error(err))
			return mapRepositoryError(err)
		}

		empl.FirstName = req.FirstName
		empl.LastName = req.LastName
		empl.Email = req.Email
		empl.Phone = req.Phone
		empl.Position = req.Position
		empl.HireDate = hireDate
		empl.DepartmentID = &departmentID
		empl.Department = nil

		if err := qtx.Update(ctx, empl); err != nil {
			s.logger.Error("update employee persist failed", zap.Error(err))
			return mapRepositoryError(err)
		}

		return s.enqueueLifecycleEvent(ctx, tx, events.EmployeeUpdatedType, empl)
	})
	if err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateStatisticsCache(ctx)

	s.logger.Info("update employee success", zap.String("employee_id", id))

	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	employeeID, err := uuid.Parse(id)
	if err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		empl, err := qtx.FindByID(ctx, employeeID)
		if err != nil {
			s.logger.Error("delete employee fetch existing failed", zap.Error(err))
			return mapRepositoryError(err)
		}

		if err := qtx.Delete(ctx, employeeID); err != nil {
			s.logger.Error("delete employee failed", zap.Error(err))
			return mapRepositoryError(err)
		}

		return s.enqueueLifecycleEvent(ctx, tx, events.EmployeeDeletedType, empl)
	})
	if err != nil {
		return err
	}

	s.invalidateStatisticsCache(ctx)

	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) parseHireDate(raw string) (time.Time, error) {
	hireDate, err := time.Parse("2006-01-02", raw)
	if err != nil {
		s.logger.Warn("invalid hire_date", zap.String("hire_date", raw), zap.Error(err))
		return time.Time{}, employeeerrors.ErrInvalidHireDate
	}

	today := s.clock.Now().UTC().Truncate(24 * time.Hour)
	if hireDate.After(today) {
		return time.Time{}, employeeerrors.ErrHireDateInFuture
	}

	return hireDate, nil
}

func (s *service) enqueueLifecycleEvent(ctx context.Context, tx *gorm.DB, eventType string, empl *Employee) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.EmployeeLifecycleEvent{
		EventType:     eventType,
		RequestID:     rid,
		EmployeeID:    empl.ID.String(),
		EmployeeName:  empl.FullName(),
		EmployeeEmail: empl.Email,
		OccurredAt:    s.clock.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal lifecycle event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	if err := s.outbox.WithTx(tx).Enqueue(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "employee",
		AggregateID:   empl.ID.String(),
		EventType:     eventType,
		Topic:         events.EmployeeLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("lifecycle event outbox persist failed",
			zap.String("employee_id", empl.ID.String()),
			zap.Error(err),
		)
		return err
	}

	return nil
}

func (s *service) invalidateStatisticsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, StatisticsCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate statistics cache",
			zap.Error(err),
			zap.String("key", StatisticsCacheKey),
		)
	}
}
