package department

type CreateDepartmentRequest struct {
	Name      string  `json:"name" binding:"required"`
	ManagerID *string `json:"manager_id" binding:"omitempty,uuid"`
}

type UpdateDepartmentRequest struct {
	Name      string  `json:"name" binding:"required"`
	ManagerID *string `json:"manager_id" binding:"omitempty,uuid"`
}

type DepartmentResponse struct {
	ID        string  `json:"id"`
	EntityID  string  `json:"entity_id"`
	Name      string  `json:"name"`
	ManagerID *string `json:"manager_id,omitempty"`
}

func mapToResponse(d Department) DepartmentResponse {
	resp := DepartmentResponse{
		ID:       d.ID.String(),
		EntityID: d.EntityID.String(),
		Name:     d.Name,
	}
	if d.ManagerID != nil {
		v := d.ManagerID.String()
		resp.ManagerID = &v
	}
	return resp
}

func mapToListResponse(departments []Department) []DepartmentResponse {
	resp := make([]DepartmentResponse, len(departments))
	for i, d := range departments {
		resp[i] = mapToResponse(d)
	}
	return resp
}
