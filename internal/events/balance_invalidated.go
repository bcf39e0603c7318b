package events

import "time"

const BalanceInvalidatedTopic = "hr.leave.balance.invalidated.v1"

// BalanceInvalidatedEvent tells read-side caches that an employee's
// balance snapshot is stale.
type BalanceInvalidatedEvent struct {
	EventType  string    `json:"event_type"`
	EmployeeID string    `json:"employee_id"`
	EntityID   string    `json:"entity_id"`
	Bucket     string    `json:"bucket,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
