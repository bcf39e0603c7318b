package leave

import (
	"time"

	"leavehr/internal/engine"
)

type CreateLeaveRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	StartDate   string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" binding:"required,datetime=2006-01-02"`
	PartialDay  string `json:"partial_day" binding:"omitempty,oneof=full half_am half_pm"`
	Reason      string `json:"reason"`
}

// ValidateLeaveRequest is the same shape without the narrative fields; it
// backs the pre-submit check endpoint.
type ValidateLeaveRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	StartDate   string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" binding:"required,datetime=2006-01-02"`
	PartialDay  string `json:"partial_day" binding:"omitempty,oneof=full half_am half_pm"`
}

type DecideLeaveRequest struct {
	Note string `json:"note"`
}

type LeaveResponse struct {
	ID           string  `json:"id"`
	EntityID     string  `json:"entity_id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	LeaveTypeID  string  `json:"leave_type_id"`
	Bucket       string  `json:"bucket"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	PartialDay   string  `json:"partial_day"`
	HoursCharged float64 `json:"hours_charged"`
	Status       string  `json:"status"`
	Reason       string  `json:"reason,omitempty"`
	DecidedBy    string  `json:"decided_by,omitempty"`
	DecidedAt    string  `json:"decided_at,omitempty"`
	DecideNote   string  `json:"decide_note,omitempty"`
}

// ApproveLeaveResponse pairs the updated request with the advisory
// staffing check so the approver sees what their decision did to coverage.
type ApproveLeaveResponse struct {
	Request  LeaveResponse          `json:"request"`
	Staffing *engine.ConflictResult `json:"staffing,omitempty"`
}

type ValidationResponse struct {
	Validation engine.Validation      `json:"validation"`
	Staffing   *engine.ConflictResult `json:"staffing,omitempty"`
}

func mapToResponse(r LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:           r.ID.String(),
		EntityID:     r.EntityID.String(),
		EmployeeID:   r.EmployeeID.String(),
		EmployeeName: r.EmployeeName,
		LeaveTypeID:  r.LeaveTypeID.String(),
		Bucket:       r.Bucket,
		StartDate:    r.StartDate.Format(time.DateOnly),
		EndDate:      r.EndDate.Format(time.DateOnly),
		PartialDay:   r.PartialDayType,
		HoursCharged: r.HoursCharged,
		Status:       r.Status,
		Reason:       r.Reason,
		DecideNote:   r.DecideNote,
	}
	if r.DecidedBy != nil {
		resp.DecidedBy = r.DecidedBy.String()
	}
	if r.DecidedAt != nil {
		resp.DecidedAt = r.DecidedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(requests []LeaveRequest) []LeaveResponse {
	res := make([]LeaveResponse, len(requests))
	for i, r := range requests {
		res[i] = mapToResponse(r)
	}
	return res
}
