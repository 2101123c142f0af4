package employee

type CreateEmployeeRequest struct {
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone"`
	Position       string `json:"position"`
	HireDate       string `json:"hire_date" binding:"required"`
	DepartmentID   string `json:"department_id" binding:"required,uuid"`
	EmployeeNumber string `json:"employee_number"`
}

type UpdateEmployeeRequest struct {
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone"`
	Position     string `json:"position"`
	HireDate     string `json:"hire_date" binding:"required"`
	DepartmentID string `json:"department_id" binding:"required,uuid"`
}

type EmployeeDepartmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type EmployeeResponse struct {
	ID             string                      `json:"id"`
	EmployeeNumber string                      `json:"employee_number"`
	FirstName      string                      `json:"first_name"`
	LastName       string                      `json:"last_name"`
	Email          string                      `json:"email"`
	Phone          string                      `json:"phone,omitempty"`
	Position       string                      `json:"position,omitempty"`
	HireDate       string                      `json:"hire_date"`
	DepartmentID   string                      `json:"department_id,omitempty"`
	Department     *EmployeeDepartmentResponse `json:"department,omitempty"`
}

// StatisticsResponse is the dashboard aggregate: headcount totals, a
// per-department breakdown and the newest hires.
type StatisticsResponse struct {
	TotalEmployees int64                 `json:"total_employees"`
	ByDepartment   []DepartmentHeadcount `json:"by_department"`
	RecentHires    []EmployeeResponse    `json:"recent_hires"`
}

type DepartmentHeadcount struct {
	DepartmentID   string `json:"department_id"`
	DepartmentName string `json:"department_name"`
	Count          int64  `json:"count"`
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:             empl.ID.String(),
		EmployeeNumber: empl.EmployeeNumber,
		FirstName:      empl.FirstName,
		LastName:       empl.LastName,
		Email:          empl.Email,
		Phone:          empl.Phone,
		Position:       empl.Position,
		HireDate:       empl.HireDate.Format("2006-01-02"),
	}
	if empl.DepartmentID != nil {
		resp.DepartmentID = empl.DepartmentID.String()
	}
	if empl.Department != nil {
		resp.Department = &EmployeeDepartmentResponse{
			ID:   empl.Department.ID.String(),
			Name: empl.Department.Name,
		}
	}
	return resp
}

func mapToListResponse(rows []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(rows))
	for i, e := range rows {
		res[i] = mapToResponse(e)
	}
	return res
}
