package leave

import "time"

type CreateLeaveRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Type       string `json:"type" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	Reason     string `json:"reason"`
}

type ApproveLeaveRequest struct {
	ApproverID string `json:"approver_id" binding:"required,uuid"`
	Comment    string `json:"comment"`
}

type RejectLeaveRequest struct {
	ApproverID string `json:"approver_id" binding:"required,uuid"`
	Reason     string `json:"reason" binding:"required"`
}

type LeaveResponse struct {
	ID              string     `json:"id"`
	EmployeeID      string     `json:"employee_id"`
	Type            string     `json:"type"`
	StartDate       string     `json:"start_date"`
	EndDate         string     `json:"end_date"`
	TotalDays       int        `json:"total_days"`
	Reason          string     `json:"reason,omitempty"`
	Status          string     `json:"status"`
	ApprovedBy      *string    `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:              l.ID.String(),
		EmployeeID:      l.EmployeeID.String(),
		Type:            l.Type,
		StartDate:       l.StartDate.Format("2006-01-02"),
		EndDate:         l.EndDate.Format("2006-01-02"),
		TotalDays:       l.TotalDays(),
		Reason:          l.Reason,
		Status:          l.Status,
		ApprovedAt:      l.ApprovedAt,
		RejectionReason: l.RejectionReason,
		CreatedAt:       l.CreatedAt,
	}
	if l.ApprovedBy != nil {
		id := l.ApprovedBy.String()
		resp.ApprovedBy = &id
	}
	return resp
}

func mapAllToResponse(rows []LeaveRequest) []LeaveResponse {
	out := make([]LeaveResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapToResponse(row))
	}
	return out
}
