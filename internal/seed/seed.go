package seed

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go-hrms/internal/attendance"
	"go-hrms/internal/auth"
	"go-hrms/internal/department"
	"go-hrms/internal/employee"
	"go-hrms/internal/leave"
	"go-hrms/internal/rbac"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const demoPassword = "Password123!"

const (
	readinessAttempts = 5
	readinessDelay    = 2 * time.Second
)

// Run loads demo data for local development. It is idempotent at the level
// of a whole run: when any department already exists nothing is written.
func Run(ctx context.Context, db *gorm.DB, logger *zap.Logger) error {
	log := logger.Named("seed")

	count, err := countDepartments(ctx, db, log)
	if err != nil {
		return fmt.Errorf("seed: count departments: %w", err)
	}
	if count > 0 {
		log.Info("demo data already present, skipping seed")
		return nil
	}

	// Fixed source so seeded timings are reproducible between resets.
	rng := rand.New(rand.NewSource(42))

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		departments, err := seedDepartments(tx)
		if err != nil {
			return err
		}
		employees, err := seedEmployees(tx, departments)
		if err != nil {
			return err
		}
		if err := seedUsers(tx, employees); err != nil {
			return err
		}
		if err := seedAttendances(tx, employees, rng); err != nil {
			return err
		}
		return seedLeaveRequests(tx, employees)
	})
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	log.Info("demo data seeded", zap.String("password", demoPassword))
	return nil
}

// countDepartments retries the first query with a fixed delay so a database
// that is still warming up does not abort seeding.
func countDepartments(ctx context.Context, db *gorm.DB, log *zap.Logger) (int64, error) {
	var count int64
	var err error
	for attempt := 1; attempt <= readinessAttempts; attempt++ {
		err = db.WithContext(ctx).Model(&department.Department{}).Count(&count).Error
		if err == nil {
			return count, nil
		}
		log.Warn("seed readiness check failed",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(readinessDelay):
		}
	}
	return 0, err
}

func seedDepartments(tx *gorm.DB) ([]department.Department, error) {
	departments := []department.Department{
		{ID: uuid.New(), Name: "Engineering", Description: "Product development and platform"},
		{ID: uuid.New(), Name: "Human Resources", Description: "People operations"},
		{ID: uuid.New(), Name: "Sales", Description: "Revenue and accounts"},
	}
	if err := tx.Create(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

func seedEmployees(tx *gorm.DB, departments []department.Department) ([]employee.Employee, error) {
	type row struct {
		first, last, position string
		dept                  int
	}
	rows := []row{
		{"Alice", "Nguyen", "Engineering Manager", 0},
		{"Bob", "Tanaka", "Backend Engineer", 0},
		{"Carol", "Smith", "Frontend Engineer", 0},
		{"David", "Okafor", "SRE", 0},
		{"Erin", "Kowalski", "HR Manager", 1},
		{"Frank", "Ivanov", "Recruiter", 1},
		{"Grace", "Martin", "Account Executive", 2},
		{"Henry", "Larsson", "Sales Representative", 2},
	}

	employees := make([]employee.Employee, 0, len(rows))
	hireBase := time.Date(2023, time.April, 1, 0, 0, 0, 0, time.UTC)
	for i, r := range rows {
		deptID := departments[r.dept].ID
		employees = append(employees, employee.Employee{
			ID:             uuid.New(),
			EmployeeNumber: fmt.Sprintf("EMP-%06d", i+1),
			FirstName:      r.first,
			LastName:       r.last,
			Email:          strings.ToLower(fmt.Sprintf("%s.%s@example.com", r.first, r.last)),
			Phone:          fmt.Sprintf("+1-555-01%02d", i+1),
			Position:       r.position,
			HireDate:       hireBase.AddDate(0, i, 0),
			DepartmentID:   &deptID,
		})
	}
	if err := tx.Create(&employees).Error; err != nil {
		return nil, err
	}

	// Keep the counter ahead of the pre-assigned numbers.
	return employees, tx.Exec(
		`INSERT INTO sequence_counters (counter_type, last_value, updated_at)
		 VALUES ('employee_number', ?, now())
		 ON CONFLICT (counter_type) DO UPDATE SET last_value = EXCLUDED.last_value, updated_at = now()`,
		len(employees),
	).Error
}

func seedUsers(tx *gorm.DB, employees []employee.Employee) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []auth.User{
		{
			ID:       uuid.New(),
			Name:     "Demo Admin",
			Email:    "admin@example.com",
			Password: string(hash),
			Role:     rbac.RoleAdmin,
			IsActive: true,
		},
		{
			ID:         uuid.New(),
			EmployeeID: &employees[4].ID,
			Name:       employees[4].FullName(),
			Email:      "manager@example.com",
			Password:   string(hash),
			Role:       rbac.RoleManager,
			IsActive:   true,
		},
		{
			ID:         uuid.New(),
			EmployeeID: &employees[1].ID,
			Name:       employees[1].FullName(),
			Email:      "employee@example.com",
			Password:   string(hash),
			Role:       rbac.RoleEmployee,
			IsActive:   true,
		},
	}
	return tx.Create(&users).Error
}

// seedAttendances writes closed records for the weekdays of the last three
// full months. Check-in jitters around nine, check-out around six, so the
// anomaly endpoints have late arrivals and overtime to report.
func seedAttendances(tx *gorm.DB, employees []employee.Employee, rng *rand.Rand) error {
	today := time.Now().UTC()
	start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -3, 0)
	end := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	var records []attendance.Attendance
	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		for _, empl := range employees {
			// Roughly one absence a month per employee.
			if rng.Intn(22) == 0 {
				continue
			}
			checkIn := day.Add(8*time.Hour + 50*time.Minute + time.Duration(rng.Intn(50))*time.Minute)
			checkOut := day.Add(17 * time.Hour).Add(time.Duration(rng.Intn(180)) * time.Minute)
			records = append(records, attendance.Attendance{
				ID:           uuid.New(),
				EmployeeID:   empl.ID,
				WorkDate:     day,
				CheckInTime:  &checkIn,
				CheckOutTime: &checkOut,
				Type:         attendance.TypeNormal,
			})
		}
	}
	if len(records) == 0 {
		return nil
	}
	return tx.CreateInBatches(records, 200).Error
}

func seedLeaveRequests(tx *gorm.DB, employees []employee.Employee) error {
	today := time.Now().UTC()
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	approvedAt := monthStart.Add(-36 * time.Hour)
	approver := employees[4].ID

	requests := []leave.LeaveRequest{
		{
			ID:         uuid.New(),
			EmployeeID: employees[1].ID,
			Type:       leave.TypePaid,
			StartDate:  monthStart.AddDate(0, 0, 7),
			EndDate:    monthStart.AddDate(0, 0, 9),
			Reason:     "summer vacation",
			Status:     leave.StatusApproved,
			ApprovedBy: &approver,
			ApprovedAt: &approvedAt,
		},
		{
			ID:         uuid.New(),
			EmployeeID: employees[2].ID,
			Type:       leave.TypeSick,
			StartDate:  monthStart.AddDate(0, 0, 3),
			EndDate:    monthStart.AddDate(0, 0, 3),
			Reason:     "flu",
			Status:     leave.StatusPending,
		},
		{
			ID:         uuid.New(),
			EmployeeID: employees[6].ID,
			Type:       leave.TypeUnpaid,
			StartDate:  monthStart.AddDate(0, 1, 2),
			EndDate:    monthStart.AddDate(0, 1, 6),
			Reason:     "family matters",
			Status:     leave.StatusPending,
		},
	}
	return tx.Create(&requests).Error
}
