package attendance

import (
	"time"

	"go-hrms/internal/leave"
	"go-hrms/internal/shared/clock"

	"github.com/google/uuid"
)

// MonthlySummary aggregates one employee's attendance for a calendar month.
// Derived on demand, never persisted.
type MonthlySummary struct {
	EmployeeID       uuid.UUID
	Year             int
	Month            int
	TotalWorkDays    int
	TotalWorkHours   float64
	AverageWorkHours float64
	LateDays         int
	AbsentDays       int
	PaidLeaveDays    int
	Records          []Attendance
}

// Aggregator folds attendance records and leave requests into a
// MonthlySummary. The clock only bounds absent-day counting for the
// in-progress month; everything else depends purely on the inputs.
type Aggregator struct {
	detector *Detector
	clock    clock.Clock
}

func NewAggregator(detector *Detector, clk clock.Clock) *Aggregator {
	return &Aggregator{detector: detector, clock: clk}
}

// Summarize expects records whose work date falls inside (year, month) and
// leave requests overlapping that month. Records without both timestamps are
// excluded from work-day counting rather than rejected.
func (a *Aggregator) Summarize(
	employeeID uuid.UUID,
	year, month int,
	records []Attendance,
	leaves []leave.LeaveRequest,
) MonthlySummary {
	summary := MonthlySummary{
		EmployeeID: employeeID,
		Year:       year,
		Month:      month,
		Records:    records,
	}

	for _, rec := range records {
		if hours := rec.WorkHours(); hours != nil {
			summary.TotalWorkDays++
			summary.TotalWorkHours += *hours
		}
		if rec.CheckInTime != nil && a.detector.IsLateArrival(*rec.CheckInTime) {
			summary.LateDays++
		}
	}
	if summary.TotalWorkDays > 0 {
		summary.AverageWorkHours = summary.TotalWorkHours / float64(summary.TotalWorkDays)
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	summary.AbsentDays = a.countAbsentDays(monthStart, monthEnd, records, leaves)
	summary.PaidLeaveDays = countPaidLeaveDays(monthStart, monthEnd, leaves)

	return summary
}

// countAbsentDays walks the month day by day: a day is absent when it has no
// attendance record and no covering approved leave. Days after "today" never
// count.
func (a *Aggregator) countAbsentDays(
	monthStart, monthEnd time.Time,
	records []Attendance,
	leaves []leave.LeaveRequest,
) int {
	today := truncateToDay(a.clock.Now())
	recorded := make(map[string]struct{}, len(records))
	for _, rec := range records {
		recorded[rec.WorkDate.Format("2006-01-02")] = struct{}{}
	}

	absent := 0
	for day := monthStart; !day.After(monthEnd); day = day.AddDate(0, 0, 1) {
		if day.After(today) {
			break
		}
		if _, ok := recorded[day.Format("2006-01-02")]; ok {
			continue
		}
		if coveredByApprovedLeave(day, leaves) {
			continue
		}
		absent++
	}
	return absent
}

func coveredByApprovedLeave(day time.Time, leaves []leave.LeaveRequest) bool {
	for _, lr := range leaves {
		if lr.Status != leave.StatusApproved {
			continue
		}
		if !day.Before(truncateToDay(lr.StartDate)) && !day.After(truncateToDay(lr.EndDate)) {
			return true
		}
	}
	return false
}

// countPaidLeaveDays sums the inclusive day spans of approved paid leave,
// clipped to the month boundaries.
func countPaidLeaveDays(monthStart, monthEnd time.Time, leaves []leave.LeaveRequest) int {
	days := 0
	for _, lr := range leaves {
		if lr.Status != leave.StatusApproved || lr.Type != leave.TypePaid {
			continue
		}
		start := truncateToDay(lr.StartDate)
		end := truncateToDay(lr.EndDate)
		if start.Before(monthStart) {
			start = monthStart
		}
		if end.After(monthEnd) {
			end = monthEnd
		}
		if end.Before(start) {
			continue
		}
		days += int(end.Sub(start).Hours()/24) + 1
	}
	return days
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
