package attendance

import (
	"context"
	"errors"
	"time"

	attendanceerrors "go-hrms/internal/attendance/errors"
	"go-hrms/internal/events"
	"go-hrms/internal/leave"
	"go-hrms/internal/shared/clock"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LeaveFinder is the slice of the leave repository the monthly summary needs.
type LeaveFinder interface {
	FindByEmployeeAndDateRange(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]leave.LeaveRequest, error)
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)
	Create(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)
	Update(ctx context.Context, id string, req UpdateAttendanceRequest) (AttendanceResponse, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (AttendanceResponse, error)
	GetAll(ctx context.Context) ([]AttendanceResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]AttendanceResponse, error)
	GetMonthlySummary(ctx context.Context, employeeID string, year, month int) (MonthlySummaryResponse, error)
}

type service struct {
	db         *gorm.DB
	repo       Repository
	leaves     LeaveFinder
	detector   *Detector
	aggregator *Aggregator
	publisher  events.Publisher
	clock      clock.Clock
	logger     *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	leaves LeaveFinder,
	detector *Detector,
	aggregator *Aggregator,
	publisher events.Publisher,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		leaves:     leaves,
		detector:   detector,
		aggregator: aggregator,
		publisher:  publisher,
		clock:      clk,
		logger:     l,
	}
}

func (s *service) CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	attendanceType := req.Type
	if attendanceType == "" {
		attendanceType = TypeNormal
	}
	if !IsValidType(attendanceType) {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidAttendanceType
	}

	now := s.clock.Now().UTC()
	today := dateOnly(now)

	var row *Attendance
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		existing, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
		if err != nil {
			return err
		}
		if existing != nil && existing.CheckInTime != nil {
			return attendanceerrors.ErrAlreadyCheckedIn
		}

		if existing != nil {
			existing.CheckInTime = &now
			if req.Notes != nil {
				existing.Notes = req.Notes
			}
			row = existing
			return qtx.Update(ctx, existing)
		}

		row = &Attendance{
			ID:          uuid.New(),
			EmployeeID:  employeeID,
			WorkDate:    today,
			CheckInTime: &now,
			Type:        attendanceType,
			Notes:       req.Notes,
		}
		return qtx.Create(ctx, row)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
		}
		return AttendanceResponse{}, err
	}

	s.publish(ctx, events.AttendanceCheckInChannel, events.CheckInRecordedEvent{
		AttendanceID: row.ID.String(),
		EmployeeID:   row.EmployeeID.String(),
		WorkDate:     row.WorkDate.Format("2006-01-02"),
		CheckInTime:  now,
	})

	if s.detector.IsLateArrival(now) {
		s.publish(ctx, events.AttendanceLateArrivalChannel, events.LateArrivalDetectedEvent{
			AttendanceID: row.ID.String(),
			EmployeeID:   row.EmployeeID.String(),
			WorkDate:     row.WorkDate.Format("2006-01-02"),
			CheckInTime:  now,
			LateMinutes:  s.detector.CalculateLateMinutes(now),
		})
	}

	return mapToResponse(*row), nil
}

func (s *service) CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	now := s.clock.Now().UTC()
	today := dateOnly(now)

	var row *Attendance
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		existing, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
		if err != nil {
			return err
		}
		if existing == nil || existing.CheckInTime == nil {
			return attendanceerrors.ErrNotCheckedIn
		}
		if existing.CheckOutTime != nil {
			return attendanceerrors.ErrAlreadyCheckedOut
		}

		existing.CheckOutTime = &now
		row = existing
		return qtx.Update(ctx, existing)
	})
	if err != nil {
		return AttendanceResponse{}, err
	}

	workHours := row.CheckOutTime.Sub(*row.CheckInTime).Hours()

	s.publish(ctx, events.AttendanceCheckOutChannel, events.CheckOutRecordedEvent{
		AttendanceID: row.ID.String(),
		EmployeeID:   row.EmployeeID.String(),
		WorkDate:     row.WorkDate.Format("2006-01-02"),
		CheckOutTime: now,
		WorkHours:    workHours,
	})

	if s.detector.IsEarlyLeaving(*row.CheckInTime, now) {
		s.publish(ctx, events.AttendanceEarlyLeavingChannel, events.EarlyLeavingDetectedEvent{
			AttendanceID: row.ID.String(),
			EmployeeID:   row.EmployeeID.String(),
			WorkDate:     row.WorkDate.Format("2006-01-02"),
			CheckInTime:  *row.CheckInTime,
			CheckOutTime: now,
			WorkHours:    workHours,
		})
	}

	if s.detector.IsOvertime(workHours) {
		s.publish(ctx, events.AttendanceOvertimeChannel, events.OvertimeDetectedEvent{
			AttendanceID:  row.ID.String(),
			EmployeeID:    row.EmployeeID.String(),
			WorkDate:      row.WorkDate.Format("2006-01-02"),
			CheckInTime:   *row.CheckInTime,
			CheckOutTime:  now,
			WorkHours:     workHours,
			OvertimeHours: s.detector.CalculateOvertimeHours(workHours),
		})
	}

	return mapToResponse(*row), nil
}

func (s *service) Create(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	workDate, err := time.ParseInLocation("2006-01-02", req.WorkDate, time.UTC)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDateFormat
	}

	attendanceType := req.Type
	if attendanceType == "" {
		attendanceType = TypeNormal
	}
	if !IsValidType(attendanceType) {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidAttendanceType
	}
	if req.CheckInTime != nil && req.CheckOutTime != nil && req.CheckOutTime.Before(*req.CheckInTime) {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidTimeRange
	}

	row := &Attendance{
		ID:           uuid.New(),
		EmployeeID:   employeeID,
		WorkDate:     workDate,
		CheckInTime:  req.CheckInTime,
		CheckOutTime: req.CheckOutTime,
		Type:         attendanceType,
		Notes:        req.Notes,
	}

	if err := s.repo.Create(ctx, row); err != nil {
		if isUniqueViolation(err) {
			return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
		}
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateAttendanceRequest) (AttendanceResponse, error) {
	attendanceID, err := uuid.Parse(id)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidAttendanceID
	}

	var row *Attendance
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		existing, err := qtx.FindByID(ctx, attendanceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return attendanceerrors.ErrAttendanceNotFound
			}
			return err
		}

		if req.CheckInTime != nil {
			existing.CheckInTime = req.CheckInTime
		}
		if req.CheckOutTime != nil {
			existing.CheckOutTime = req.CheckOutTime
		}
		if req.Type != nil {
			if !IsValidType(*req.Type) {
				return attendanceerrors.ErrInvalidAttendanceType
			}
			existing.Type = *req.Type
		}
		if req.Notes != nil {
			existing.Notes = req.Notes
		}
		if existing.CheckInTime != nil && existing.CheckOutTime != nil &&
			existing.CheckOutTime.Before(*existing.CheckInTime) {
			return attendanceerrors.ErrInvalidTimeRange
		}

		row = existing
		return qtx.Update(ctx, existing)
	})
	if err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	attendanceID, err := uuid.Parse(id)
	if err != nil {
		return attendanceerrors.ErrInvalidAttendanceID
	}
	if _, err := s.repo.FindByID(ctx, attendanceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return attendanceerrors.ErrAttendanceNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, attendanceID)
}

func (s *service) GetByID(ctx context.Context, id string) (AttendanceResponse, error) {
	attendanceID, err := uuid.Parse(id)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidAttendanceID
	}
	row, err := s.repo.FindByID(ctx, attendanceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrAttendanceNotFound
		}
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context) ([]AttendanceResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapAllToResponse(rows), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]AttendanceResponse, error) {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidEmployeeID
	}
	rows, err := s.repo.FindByEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapAllToResponse(rows), nil
}

func (s *service) GetMonthlySummary(ctx context.Context, employeeID string, year, month int) (MonthlySummaryResponse, error) {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return MonthlySummaryResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	if year < 2000 || year > 2100 || month < 1 || month > 12 {
		return MonthlySummaryResponse{}, attendanceerrors.ErrInvalidSummaryPeriod
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	records, err := s.repo.FindByEmployeeAndDateRange(ctx, id, monthStart, monthEnd)
	if err != nil {
		return MonthlySummaryResponse{}, err
	}
	leaves, err := s.leaves.FindByEmployeeAndDateRange(ctx, id, monthStart, monthEnd)
	if err != nil {
		return MonthlySummaryResponse{}, err
	}

	summary := s.aggregator.Summarize(id, year, month, records, leaves)
	return mapToSummaryResponse(summary), nil
}

// publish logs and swallows delivery failures so event fan-out never fails
// the underlying attendance operation.
func (s *service) publish(ctx context.Context, channel string, event any) {
	if err := s.publisher.Publish(ctx, channel, event); err != nil {
		s.logger.Warn("event publish failed",
			zap.String("channel", channel),
			zap.Error(err),
		)
	}
}

func mapAllToResponse(rows []Attendance) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapToResponse(row))
	}
	return out
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
