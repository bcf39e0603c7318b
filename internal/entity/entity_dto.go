package entity

type CreateEntityRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Location string `json:"location"`
}

type UpdateEntityRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Location string `json:"location"`
	IsActive *bool  `json:"is_active"`
}

type EntityResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Location string `json:"location"`
	IsActive bool   `json:"is_active"`
}

func mapToResponse(e LegalEntity) EntityResponse {
	return EntityResponse{
		ID:       e.ID.String(),
		Name:     e.Name,
		Email:    e.Email,
		Location: e.Location,
		IsActive: e.IsActive,
	}
}

func mapToListResponse(entities []LegalEntity) []EntityResponse {
	resp := make([]EntityResponse, len(entities))
	for i, e := range entities {
		resp[i] = mapToResponse(e)
	}
	return resp
}
