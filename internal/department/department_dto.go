package department

type CreateDepartmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateDepartmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type DepartmentResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	EmployeeCount int64  `json:"employee_count,omitempty"`
}

func mapToResponse(d Department) DepartmentResponse {
	return DepartmentResponse{
		ID:          d.ID.String(),
		Name:        d.Name,
		Description: d.Description,
	}
}

func mapToListResponse(rows []Department) []DepartmentResponse {
	out := make([]DepartmentResponse, len(rows))
	for i, d := range rows {
		out[i] = mapToResponse(d)
	}
	return out
}
