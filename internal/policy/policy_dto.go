package policy

type CreateLeaveTypeRequest struct {
	Name   string `json:"name" binding:"required"`
	Code   string `json:"code" binding:"required"`
	Bucket string `json:"bucket" binding:"required"`
}

type LeaveTypeResponse struct {
	ID       string `json:"id"`
	EntityID string `json:"entity_id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Bucket   string `json:"bucket"`
	IsActive bool   `json:"is_active"`
}

type CreatePolicyRequest struct {
	Bucket              string  `json:"bucket" binding:"required"`
	StandardHoursPerDay float64 `json:"standard_hours_per_day" binding:"omitempty,gte=0"`
	AccrualRate         float64 `json:"accrual_rate" binding:"required,gt=0"`
	MinServiceYears     int     `json:"min_service_years" binding:"omitempty,gte=0"`
	// Defaults to true: the eligibility gate defers availability, not the
	// start of the accrual window.
	AccrueBeforeEligibility *bool `json:"accrue_before_eligibility"`
	// Defaults to true for the annual bucket, false otherwise.
	PayableOnTermination *bool `json:"is_payable_on_termination"`
}

type UpdatePolicyRequest struct {
	StandardHoursPerDay     float64 `json:"standard_hours_per_day" binding:"omitempty,gte=0"`
	AccrualRate             float64 `json:"accrual_rate" binding:"required,gt=0"`
	MinServiceYears         int     `json:"min_service_years" binding:"omitempty,gte=0"`
	AccrueBeforeEligibility *bool   `json:"accrue_before_eligibility"`
	PayableOnTermination    *bool   `json:"is_payable_on_termination"`
	IsActive                *bool   `json:"is_active"`
}

type PolicyResponse struct {
	ID                      string  `json:"id"`
	EntityID                string  `json:"entity_id"`
	Bucket                  string  `json:"bucket"`
	StandardHoursPerDay     float64 `json:"standard_hours_per_day"`
	AccrualRate             float64 `json:"accrual_rate"`
	MinServiceYears         int     `json:"min_service_years"`
	AccrueBeforeEligibility bool    `json:"accrue_before_eligibility"`
	PayableOnTermination    bool    `json:"is_payable_on_termination"`
	IsActive                bool    `json:"is_active"`
}

func mapTypeToResponse(t LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:       t.ID.String(),
		EntityID: t.EntityID.String(),
		Name:     t.Name,
		Code:     t.Code,
		Bucket:   t.Bucket,
		IsActive: t.IsActive,
	}
}

func mapPolicyToResponse(p LeavePolicy) PolicyResponse {
	return PolicyResponse{
		ID:                      p.ID.String(),
		EntityID:                p.EntityID.String(),
		Bucket:                  p.Bucket,
		StandardHoursPerDay:     p.StandardHoursPerDay,
		AccrualRate:             p.AccrualRate,
		MinServiceYears:         p.MinServiceYears,
		AccrueBeforeEligibility: p.AccrueBeforeEligibility,
		PayableOnTermination:    p.PayableOnTermination,
		IsActive:                p.IsActive,
	}
}
