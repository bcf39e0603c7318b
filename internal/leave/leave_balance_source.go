package leave

import (
	"context"

	"leavehr/internal/balance"
	"leavehr/internal/engine"
)

// approvedSource exposes an employee's approved requests to the balance
// rebuild without the balance package depending on leave types.
type approvedSource struct {
	repo Repository
}

func NewApprovedSource(repo Repository) balance.ApprovedSource {
	return approvedSource{repo: repo}
}

func (a approvedSource) ListApproved(ctx context.Context, entityID, employeeID string) ([]balance.ApprovedLeave, error) {
	requests, err := a.repo.FindApprovedByEmployee(ctx, entityID, employeeID)
	if err != nil {
		return nil, err
	}
	out := make([]balance.ApprovedLeave, len(requests))
	for i, r := range requests {
		out[i] = balance.ApprovedLeave{
			Bucket:  engine.Bucket(r.Bucket),
			Start:   r.StartDate,
			End:     r.EndDate,
			Partial: engine.PartialDay(r.PartialDayType),
		}
	}
	return out, nil
}
