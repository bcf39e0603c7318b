package staffing

type CreateRuleRequest struct {
	DepartmentID *string `json:"department_id"`
	// Global stores the rule with no entity scope, making it the fallback
	// for every entity without a rule of its own.
	Global             bool `json:"global"`
	MinActiveHeadcount int  `json:"min_active_headcount" binding:"omitempty,gte=0"`
	MaxConcurrentLeave int  `json:"max_concurrent_leave" binding:"omitempty,gte=0"`
}

type UpdateRuleRequest struct {
	MinActiveHeadcount int   `json:"min_active_headcount" binding:"omitempty,gte=0"`
	MaxConcurrentLeave int   `json:"max_concurrent_leave" binding:"omitempty,gte=0"`
	IsActive           *bool `json:"is_active"`
}

type RuleResponse struct {
	ID                 string  `json:"id"`
	EntityID           *string `json:"entity_id,omitempty"`
	DepartmentID       *string `json:"department_id,omitempty"`
	MinActiveHeadcount int     `json:"min_active_headcount"`
	MaxConcurrentLeave int     `json:"max_concurrent_leave"`
	IsActive           bool    `json:"is_active"`
}

func mapToResponse(r StaffingRule) RuleResponse {
	resp := RuleResponse{
		ID:                 r.ID.String(),
		MinActiveHeadcount: r.MinActiveHeadcount,
		MaxConcurrentLeave: r.MaxConcurrentLeave,
		IsActive:           r.IsActive,
	}
	if r.EntityID != nil {
		id := r.EntityID.String()
		resp.EntityID = &id
	}
	if r.DepartmentID != nil {
		id := r.DepartmentID.String()
		resp.DepartmentID = &id
	}
	return resp
}

func mapToListResponse(rules []StaffingRule) []RuleResponse {
	res := make([]RuleResponse, len(rules))
	for i, r := range rules {
		res[i] = mapToResponse(r)
	}
	return res
}
