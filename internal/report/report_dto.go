package report

import "leavehr/internal/engine"

type PeriodSummaryRequest struct {
	EmployeeID  string `form:"employee_id" binding:"required,uuid"`
	PeriodStart string `form:"period_start" binding:"required,datetime=2006-01-02"`
	PeriodEnd   string `form:"period_end" binding:"required,datetime=2006-01-02"`
}

// BucketSummary is one leave bucket's window breakdown. Liability is the
// closing balance valued at the employee's hourly rate, omitted for
// buckets that are not payable on termination.
type BucketSummary struct {
	Bucket string `json:"bucket"`
	engine.PeriodSummary
	HoursPerDay float64 `json:"hours_per_day"`
	Liability   *string `json:"liability,omitempty"`
}

type PeriodSummaryResponse struct {
	EmployeeID  string          `json:"employee_id"`
	PeriodStart string          `json:"period_start"`
	PeriodEnd   string          `json:"period_end"`
	Buckets     []BucketSummary `json:"buckets"`
}
