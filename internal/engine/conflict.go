package engine

import (
	"fmt"
	"time"
)

// StaffingRule is a configured coverage constraint. Empty EntityID or
// DepartmentID means the rule is not scoped on that axis.
type StaffingRule struct {
	EntityID           string
	DepartmentID       string
	MinActiveHeadcount int
	MaxConcurrentLeave int
	Active             bool
}

// ResolveRule picks the applicable rule for a scope. Resolution narrows
// from department+entity to entity-only to global; the first active match
// wins.
func ResolveRule(rules []StaffingRule, entityID, departmentID string) *StaffingRule {
	match := func(want func(StaffingRule) bool) *StaffingRule {
		for i := range rules {
			r := rules[i]
			if r.Active && want(r) {
				return &r
			}
		}
		return nil
	}

	if departmentID != "" {
		if r := match(func(r StaffingRule) bool {
			return r.EntityID == entityID && r.DepartmentID == departmentID
		}); r != nil {
			return r
		}
	}
	if r := match(func(r StaffingRule) bool {
		return r.EntityID == entityID && r.DepartmentID == ""
	}); r != nil {
		return r
	}
	return match(func(r StaffingRule) bool {
		return r.EntityID == "" && r.DepartmentID == ""
	})
}

// OverlappingLeave describes one colleague already approved for leave that
// intersects the proposed window, for display in the approval dialog.
type OverlappingLeave struct {
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Start        time.Time `json:"start_date"`
	End          time.Time `json:"end_date"`
}

// ConflictResult is the advisory outcome of a staffing check. It never
// blocks approval; the UI tells the approver they can still approve.
type ConflictResult struct {
	HasConflict         bool               `json:"has_conflict"`
	Warnings            []string           `json:"warnings,omitempty"`
	ScopeHeadcount      int                `json:"scope_headcount"`
	OnLeave             int                `json:"on_leave"`
	ActiveAfterApproval int                `json:"active_after_approval"`
	Overlapping         []OverlappingLeave `json:"overlapping,omitempty"`
}

// CheckConflict evaluates a hypothetical approval against the resolved
// staffing rule. scopeHeadcount is the number of active employees in scope
// and overlapping lists colleagues already approved for intersecting
// leave. Returns nil when no rule applies.
func CheckConflict(scopeHeadcount int, rule *StaffingRule, overlapping []OverlappingLeave) *ConflictResult {
	if rule == nil {
		return nil
	}

	concurrentAfter := len(overlapping) + 1
	activeAfter := scopeHeadcount - concurrentAfter
	if activeAfter < 0 {
		activeAfter = 0
	}

	res := &ConflictResult{
		ScopeHeadcount:      scopeHeadcount,
		OnLeave:             len(overlapping),
		ActiveAfterApproval: activeAfter,
		Overlapping:         overlapping,
	}

	if rule.MinActiveHeadcount > 0 && activeAfter < rule.MinActiveHeadcount {
		res.HasConflict = true
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"approving would leave %d active staff, below the minimum of %d",
			activeAfter, rule.MinActiveHeadcount,
		))
	}
	if rule.MaxConcurrentLeave > 0 && concurrentAfter > rule.MaxConcurrentLeave {
		res.HasConflict = true
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"%d employees would be on leave at once, above the maximum of %d",
			concurrentAfter, rule.MaxConcurrentLeave,
		))
	}
	return res
}
