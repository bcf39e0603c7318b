package events

import "time"

const LeaveApprovedTopic = "hr.leave.request.approved.v1"

type LeaveApprovedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	LeaveID    string    `json:"leave_id"`
	EmployeeID string    `json:"employee_id"`
	EntityID   string    `json:"entity_id"`
	Bucket     string    `json:"bucket"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	Hours      float64   `json:"hours"`
	ApprovedBy string    `json:"approved_by,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
