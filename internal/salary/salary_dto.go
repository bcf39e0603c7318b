package salary

import "time"

type CreateSalaryRequest struct {
	EmployeeID    string  `json:"employee_id" binding:"required,uuid"`
	HourlyRate    float64 `json:"hourly_rate" binding:"gte=0"`
	EffectiveDate string  `json:"effective_date" binding:"required,datetime=2006-01-02"`
}

type SalaryResponse struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	EmployeeName  string `json:"employee_name,omitempty"`
	HourlyRate    string `json:"hourly_rate"`
	EffectiveDate string `json:"effective_date"`
}

func mapToResponse(s EmployeeSalary) SalaryResponse {
	return SalaryResponse{
		ID:            s.ID.String(),
		EmployeeID:    s.EmployeeID.String(),
		EmployeeName:  s.EmployeeName,
		HourlyRate:    s.HourlyRate.String(),
		EffectiveDate: s.EffectiveDate.Format(time.DateOnly),
	}
}

func mapToListResponse(salaries []EmployeeSalary) []SalaryResponse {
	res := make([]SalaryResponse, len(salaries))
	for i, s := range salaries {
		res[i] = mapToResponse(s)
	}
	return res
}
