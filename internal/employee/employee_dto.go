package employee

type CreateEmployeeRequest struct {
	FullName         string  `json:"full_name" binding:"required"`
	Email            string  `json:"email" binding:"required,email"`
	DepartmentID     *string `json:"department_id" binding:"omitempty,uuid"`
	ManagerID        *string `json:"manager_id" binding:"omitempty,uuid"`
	EmployeeNumber   string  `json:"employee_number"`
	Location         string  `json:"location"`
	EmploymentType   string  `json:"employment_type" binding:"required"`
	HoursPerWeek     float64 `json:"hours_per_week" binding:"required,gt=0"`
	StartDate        string  `json:"start_date" binding:"required,datetime=2006-01-02"`
	ServiceStartDate *string `json:"service_start_date" binding:"omitempty,datetime=2006-01-02"`
}

type UpdateEmployeeRequest struct {
	FullName         string  `json:"full_name" binding:"required"`
	Email            string  `json:"email" binding:"required,email"`
	DepartmentID     *string `json:"department_id" binding:"omitempty,uuid"`
	ManagerID        *string `json:"manager_id" binding:"omitempty,uuid"`
	Location         string  `json:"location"`
	EmploymentType   string  `json:"employment_type" binding:"required"`
	HoursPerWeek     float64 `json:"hours_per_week" binding:"required,gt=0"`
	StartDate        string  `json:"start_date" binding:"required,datetime=2006-01-02"`
	ServiceStartDate *string `json:"service_start_date" binding:"omitempty,datetime=2006-01-02"`
	Status           string  `json:"status" binding:"omitempty,oneof=active on_leave terminated"`
	TerminationDate  *string `json:"termination_date" binding:"omitempty,datetime=2006-01-02"`
}

type EmployeeResponse struct {
	ID               string  `json:"id"`
	EntityID         string  `json:"entity_id"`
	DepartmentID     string  `json:"department_id,omitempty"`
	ManagerID        string  `json:"manager_id,omitempty"`
	EmployeeNumber   string  `json:"employee_number"`
	FullName         string  `json:"full_name"`
	Email            string  `json:"email"`
	Location         string  `json:"location,omitempty"`
	EmploymentType   string  `json:"employment_type"`
	HoursPerWeek     float64 `json:"hours_per_week"`
	StartDate        string  `json:"start_date"`
	ServiceStartDate string  `json:"service_start_date,omitempty"`
	Status           string  `json:"status"`
	TerminationDate  string  `json:"termination_date,omitempty"`
}
