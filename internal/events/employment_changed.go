package events

import "time"

const EmploymentChangedTopic = "hr.employee.employment.changed.v1"

// EmploymentChangedEvent is emitted when a field affecting accrual
// arithmetic changes: employment type, weekly hours, start date or the
// recognized service start date. Consumers rebuild the employee's leave
// balances from scratch.
type EmploymentChangedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID string    `json:"employee_id"`
	EntityID   string    `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
