package balance

import "time"

type BalanceResponse struct {
	Bucket         string  `json:"bucket"`
	AccruedHours   float64 `json:"accrued_hours"`
	ConsumedHours  float64 `json:"consumed_hours"`
	AvailableHours float64 `json:"available_hours"`
	AccruedThrough string  `json:"accrued_through"`
}

func mapToResponse(b LeaveBalance) BalanceResponse {
	return BalanceResponse{
		Bucket:         b.Bucket,
		AccruedHours:   b.AccruedHours,
		ConsumedHours:  b.ConsumedHours,
		AvailableHours: b.AvailableHours(),
		AccruedThrough: b.AccruedThrough.Format(time.DateOnly),
	}
}

func mapToListResponse(balances []LeaveBalance) []BalanceResponse {
	res := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		res[i] = mapToResponse(b)
	}
	return res
}
