package holiday

import "time"

type CreateHolidayRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
	Date     string `json:"date" binding:"required,datetime=2006-01-02"`
}

type HolidayResponse struct {
	ID       string `json:"id"`
	EntityID string `json:"entity_id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	Date     string `json:"date"`
}

func mapToResponse(h PublicHoliday) HolidayResponse {
	return HolidayResponse{
		ID:       h.ID.String(),
		EntityID: h.EntityID.String(),
		Name:     h.Name,
		Location: h.Location,
		Date:     h.Date.Format(time.DateOnly),
	}
}

func mapToListResponse(holidays []PublicHoliday) []HolidayResponse {
	res := make([]HolidayResponse, len(holidays))
	for i, h := range holidays {
		res[i] = mapToResponse(h)
	}
	return res
}
