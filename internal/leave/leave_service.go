package leave

import (
	"context"
	"errors"
	"time"

	"go-hrms/internal/events"
	leaveerrors "go-hrms/internal/leave/errors"
	"go-hrms/internal/shared/clock"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	GetAll(ctx context.Context) ([]LeaveResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]LeaveResponse, error)
	GetByStatus(ctx context.Context, status string) ([]LeaveResponse, error)
	Approve(ctx context.Context, id string, req ApproveLeaveRequest) (LeaveResponse, error)
	Reject(ctx context.Context, id string, req RejectLeaveRequest) (LeaveResponse, error)
	Cancel(ctx context.Context, id string) (LeaveResponse, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	publisher events.Publisher
	clock     clock.Clock
	logger    *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, publisher events.Publisher, clk clock.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, publisher: publisher, clock: clk, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	if !IsValidType(req.Type) {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveType
	}

	startDate, err := time.ParseInLocation("2006-01-02", req.StartDate, time.UTC)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateFormat
	}
	endDate, err := time.ParseInLocation("2006-01-02", req.EndDate, time.UTC)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateFormat
	}
	if endDate.Before(startDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	var row *LeaveRequest
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		overlap, err := qtx.HasOverlapping(ctx, employeeID, startDate, endDate)
		if err != nil {
			return err
		}
		if overlap {
			s.logger.Warn("leave request overlap detected",
				zap.String("employee_id", req.EmployeeID),
				zap.String("start_date", req.StartDate),
				zap.String("end_date", req.EndDate),
			)
			return leaveerrors.ErrLeaveOverlap
		}

		row = &LeaveRequest{
			ID:         uuid.New(),
			EmployeeID: employeeID,
			Type:       req.Type,
			StartDate:  startDate,
			EndDate:    endDate,
			Reason:     req.Reason,
			Status:     StatusPending,
		}
		return qtx.Create(ctx, row)
	})
	if err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("leave request created",
		zap.String("leave_request_id", row.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)

	s.publish(ctx, events.LeaveRequestCreatedChannel, events.LeaveRequestCreatedEvent{
		LeaveRequestID: row.ID.String(),
		EmployeeID:     row.EmployeeID.String(),
		LeaveType:      row.Type,
		StartDate:      row.StartDate.Format("2006-01-02"),
		EndDate:        row.EndDate.Format("2006-01-02"),
		Reason:         row.Reason,
		CreatedAt:      s.clock.Now().UTC(),
	})

	return mapToResponse(*row), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	leaveID, err := uuid.Parse(id)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveRequestID
	}
	row, err := s.repo.FindByID(ctx, leaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveRequestNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapAllToResponse(rows), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]LeaveResponse, error) {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}
	rows, err := s.repo.FindByEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapAllToResponse(rows), nil
}

func (s *service) GetByStatus(ctx context.Context, status string) ([]LeaveResponse, error) {
	switch status {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
	default:
		return nil, leaveerrors.ErrInvalidStatus
	}
	rows, err := s.repo.FindByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return mapAllToResponse(rows), nil
}

func (s *service) Approve(ctx context.Context, id string, req ApproveLeaveRequest) (LeaveResponse, error) {
	approverID, err := uuid.Parse(req.ApproverID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidApproverID
	}

	row, err := s.transition(ctx, id, StatusApproved, func(l *LeaveRequest) {
		now := s.clock.Now().UTC()
		l.ApprovedBy = &approverID
		l.ApprovedAt = &now
	})
	if err != nil {
		return LeaveResponse{}, err
	}

	s.publish(ctx, events.LeaveRequestApprovedChannel, events.LeaveRequestApprovedEvent{
		LeaveRequestID:  row.ID.String(),
		EmployeeID:      row.EmployeeID.String(),
		ApproverID:      req.ApproverID,
		LeaveType:       row.Type,
		StartDate:       row.StartDate.Format("2006-01-02"),
		EndDate:         row.EndDate.Format("2006-01-02"),
		ApproverComment: req.Comment,
		ApprovedAt:      *row.ApprovedAt,
	})

	return mapToResponse(*row), nil
}

func (s *service) Reject(ctx context.Context, id string, req RejectLeaveRequest) (LeaveResponse, error) {
	approverID, err := uuid.Parse(req.ApproverID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidApproverID
	}

	row, err := s.transition(ctx, id, StatusRejected, func(l *LeaveRequest) {
		l.ApprovedBy = &approverID
		l.RejectionReason = &req.Reason
	})
	if err != nil {
		return LeaveResponse{}, err
	}

	s.publish(ctx, events.LeaveRequestRejectedChannel, events.LeaveRequestRejectedEvent{
		LeaveRequestID:  row.ID.String(),
		EmployeeID:      row.EmployeeID.String(),
		ApproverID:      req.ApproverID,
		LeaveType:       row.Type,
		StartDate:       row.StartDate.Format("2006-01-02"),
		EndDate:         row.EndDate.Format("2006-01-02"),
		ApproverComment: req.Reason,
		RejectedAt:      s.clock.Now().UTC(),
	})

	return mapToResponse(*row), nil
}

func (s *service) Cancel(ctx context.Context, id string) (LeaveResponse, error) {
	row, err := s.transition(ctx, id, StatusCancelled, nil)
	if err != nil {
		return LeaveResponse{}, err
	}

	s.publish(ctx, events.LeaveRequestCancelledChannel, events.LeaveRequestCancelledEvent{
		LeaveRequestID: row.ID.String(),
		EmployeeID:     row.EmployeeID.String(),
		LeaveType:      row.Type,
		StartDate:      row.StartDate.Format("2006-01-02"),
		EndDate:        row.EndDate.Format("2006-01-02"),
		CancelledAt:    s.clock.Now().UTC(),
	})

	return mapToResponse(*row), nil
}

// transition loads the request, checks the status change is legal, applies
// the mutation and persists, all inside one transaction.
func (s *service) transition(ctx context.Context, id, target string, mutate func(*LeaveRequest)) (*LeaveRequest, error) {
	leaveID, err := uuid.Parse(id)
	if err != nil {
		return nil, leaveerrors.ErrInvalidLeaveRequestID
	}

	var row *LeaveRequest
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		existing, err := qtx.FindByID(ctx, leaveID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaveerrors.ErrLeaveRequestNotFound
			}
			return err
		}
		if !CanTransition(existing.Status, target) {
			s.logger.Warn("leave status transition rejected",
				zap.String("leave_request_id", id),
				zap.String("from", existing.Status),
				zap.String("to", target),
			)
			return leaveerrors.ErrInvalidStatusTransition
		}

		existing.Status = target
		if mutate != nil {
			mutate(existing)
		}
		row = existing
		return qtx.Update(ctx, existing)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("leave request status changed",
		zap.String("leave_request_id", id),
		zap.String("status", target),
	)
	return row, nil
}

func (s *service) publish(ctx context.Context, channel string, event any) {
	if err := s.publisher.Publish(ctx, channel, event); err != nil {
		s.logger.Warn("event publish failed",
			zap.String("channel", channel),
			zap.Error(err),
		)
	}
}
