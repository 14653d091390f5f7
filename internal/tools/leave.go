package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"leavedesk/internal/config"
	"leavedesk/internal/hr"
	"leavedesk/internal/retrieval"
)

// Catalog builds the five leave-management tools over the HR directory and
// the policy retrieval backend.
type Catalog struct {
	dir      *hr.Directory
	searcher retrieval.Searcher

	// now is swappable so advance-notice checks are testable.
	now func() time.Time
}

// NewCatalog creates the catalog with its collaborators.
func NewCatalog(dir *hr.Directory, searcher retrieval.Searcher) *Catalog {
	return &Catalog{dir: dir, searcher: searcher, now: time.Now}
}

// Registry returns a registry populated with the full catalog.
func (c *Catalog) Registry() *Registry {
	r := NewRegistry()
	r.MustRegister(c.balanceTool())
	r.MustRegister(c.applyTool())
	r.MustRegister(c.cancelTool())
	r.MustRegister(c.historyTool())
	r.MustRegister(c.policyTool())
	return r
}

const availableTypes = "Available types: casual_leave, sick_leave, earned_leave."

// normalizeLeaveType maps user phrasings like "Casual Leave" onto the
// balance keys.
func normalizeLeaveType(leaveType string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(leaveType), " ", "_"))
}

func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// intArg tolerates the numeric shapes tool arguments arrive in: JSON
// numbers decode as float64, but models sometimes send strings.
func intArg(args map[string]any, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	}
	return 0, false
}

func (c *Catalog) balanceTool() *Tool {
	return &Tool{
		Name:        "calculate_leave_balance",
		Description: "Calculate the remaining leave balance for an employee and leave type.",
		Schema: ToolSchema{
			Required: []string{"employee_id", "leave_type"},
			Properties: map[string]Property{
				"employee_id": {Type: "string", Description: "Employee ID, e.g. EMP001"},
				"leave_type":  {Type: "string", Description: "Leave type", Enum: []any{"casual_leave", "sick_leave", "earned_leave"}},
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			employeeID := stringArg(args, "employee_id")
			leaveType := stringArg(args, "leave_type")

			if _, ok := c.dir.Employee(employeeID); !ok {
				return fmt.Sprintf("Employee %s not found.", employeeID), nil
			}
			bal, ok := c.dir.Balance(employeeID, normalizeLeaveType(leaveType))
			if !ok {
				return fmt.Sprintf("Leave type '%s' not found for Employee %s. %s", leaveType, employeeID, availableTypes), nil
			}
			return fmt.Sprintf("Employee %s has %d days of %s leave remaining (used: %d, total: %d).",
				employeeID, bal.Remaining, leaveType, bal.Used, bal.Allocated), nil
		},
	}
}

func (c *Catalog) applyTool() *Tool {
	return &Tool{
		Name:        "apply_leave",
		Description: "Apply for leave for an employee. Validates balance, maximum consecutive days, and advance notice before filing.",
		Schema: ToolSchema{
			Required: []string{"employee_id", "leave_type", "start_date", "end_date", "reason"},
			Properties: map[string]Property{
				"employee_id": {Type: "string", Description: "Employee ID, e.g. EMP001"},
				"leave_type":  {Type: "string", Description: "Leave type", Enum: []any{"casual_leave", "sick_leave", "earned_leave"}},
				"start_date":  {Type: "string", Description: "First day of leave, YYYY-MM-DD"},
				"end_date":    {Type: "string", Description: "Last day of leave, YYYY-MM-DD"},
				"reason":      {Type: "string", Description: "Reason for the leave"},
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			employeeID := stringArg(args, "employee_id")
			leaveType := stringArg(args, "leave_type")
			startDate := stringArg(args, "start_date")
			endDate := stringArg(args, "end_date")
			reason := stringArg(args, "reason")

			if _, ok := c.dir.Employee(employeeID); !ok {
				return fmt.Sprintf("Employee %s not found.", employeeID), nil
			}

			key := normalizeLeaveType(leaveType)
			bal, ok := c.dir.Balance(employeeID, key)
			if !ok {
				return fmt.Sprintf("Invalid leave type '%s'. %s", leaveType, availableTypes), nil
			}

			start, err1 := time.Parse(config.DateFormat, startDate)
			end, err2 := time.Parse(config.DateFormat, endDate)
			if err1 != nil || err2 != nil || end.Before(start) {
				return "Invalid date format. Please use YYYY-MM-DD format.", nil
			}
			days := int(end.Sub(start).Hours()/24) + 1

			if days > bal.Remaining {
				return fmt.Sprintf("Insufficient %s balance. Requested: %d days, Available: %d days.",
					leaveType, days, bal.Remaining), nil
			}

			policy, ok := c.dir.Policy(key)
			if !ok {
				return fmt.Sprintf("Invalid leave type '%s'. %s", leaveType, availableTypes), nil
			}
			if days > policy.MaxConsecutiveDays {
				return fmt.Sprintf("Leave request exceeds maximum consecutive days allowed (%d days) for %s.",
					policy.MaxConsecutiveDays, leaveType), nil
			}
			// Notice is measured against the wall clock at validation time,
			// not a "today" snapshot taken earlier in the turn.
			if int(start.Sub(c.now()).Hours()/24) < policy.AdvanceNoticeDays {
				return fmt.Sprintf("Leave request must be submitted at least %d days in advance.",
					policy.AdvanceNoticeDays), nil
			}

			app, err := c.dir.FileApplication(employeeID, hr.LeaveApplication{
				LeaveType:   key,
				StartDate:   startDate,
				EndDate:     endDate,
				Days:        days,
				Status:      hr.StatusPending,
				Reason:      reason,
				AppliedDate: c.now().Format(config.DateFormat),
			})
			if err != nil {
				return fmt.Sprintf("Could not file leave application: %v.", err), nil
			}

			return fmt.Sprintf("Leave application %s submitted successfully for Employee %s. %d days of %s requested from %s to %s. Status: Pending approval.",
				app.ID, employeeID, days, leaveType, startDate, endDate), nil
		},
	}
}

func (c *Catalog) cancelTool() *Tool {
	return &Tool{
		Name:        "cancel_leave",
		Description: "Cancel a leave application for an employee by application ID.",
		Schema: ToolSchema{
			Required: []string{"employee_id", "application_id"},
			Properties: map[string]Property{
				"employee_id":    {Type: "string", Description: "Employee ID, e.g. EMP001"},
				"application_id": {Type: "string", Description: "Application ID, e.g. LA001"},
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			employeeID := stringArg(args, "employee_id")
			applicationID := stringArg(args, "application_id")

			if _, ok := c.dir.Employee(employeeID); !ok {
				return fmt.Sprintf("Employee %s not found.", employeeID), nil
			}

			app, changed, err := c.dir.CancelApplication(employeeID, applicationID)
			if err != nil {
				return fmt.Sprintf("Leave application %s not found for Employee %s.", applicationID, employeeID), nil
			}
			if !changed {
				return fmt.Sprintf("Leave application %s is already cancelled.", applicationID), nil
			}
			return fmt.Sprintf("Leave application %s for Employee %s has been successfully cancelled. %d days of %s restored to balance.",
				applicationID, employeeID, app.Days, app.LeaveType), nil
		},
	}
}

func (c *Catalog) historyTool() *Tool {
	return &Tool{
		Name:        "get_leave_history",
		Description: "Get the leave history for an employee for a given year, with totals per leave type.",
		Schema: ToolSchema{
			Required: []string{"employee_id", "year"},
			Properties: map[string]Property{
				"employee_id": {Type: "string", Description: "Employee ID, e.g. EMP001"},
				"year":        {Type: "integer", Description: "Calendar year, e.g. 2024"},
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			employeeID := stringArg(args, "employee_id")
			year, ok := intArg(args, "year")
			if !ok {
				year = c.now().Year()
			}

			emp, found := c.dir.Employee(employeeID)
			if !found {
				return fmt.Sprintf("Employee %s not found.", employeeID), nil
			}

			apps, err := c.dir.ApplicationsForYear(employeeID, year)
			if err != nil || len(apps) == 0 {
				return fmt.Sprintf("No leave history found for Employee %s in %d.", employeeID, year), nil
			}

			var b strings.Builder
			fmt.Fprintf(&b, "Leave history for Employee %s (%s) in %d:\n\n", employeeID, emp.Name, year)

			totals := map[string]int{"casual_leave": 0, "sick_leave": 0, "earned_leave": 0}
			for i, app := range apps {
				fmt.Fprintf(&b, "%d. Application %s:\n", i+1, app.ID)
				fmt.Fprintf(&b, "   Type: %s\n", titleLeaveType(app.LeaveType))
				fmt.Fprintf(&b, "   Period: %s to %s (%d days)\n", app.StartDate, app.EndDate, app.Days)
				fmt.Fprintf(&b, "   Reason: %s\n", app.Reason)
				fmt.Fprintf(&b, "   Status: %s\n", titleWord(app.Status))
				fmt.Fprintf(&b, "   Applied: %s\n\n", app.AppliedDate)

				if app.Status == hr.StatusApproved {
					totals[app.LeaveType] += app.Days
				}
			}

			b.WriteString("Summary:\n")
			totalDays := 0
			for _, leaveType := range config.LeaveTypes {
				if days := totals[leaveType]; days > 0 {
					fmt.Fprintf(&b, "- %s: %d days\n", titleLeaveType(leaveType), days)
				}
				totalDays += totals[leaveType]
			}
			fmt.Fprintf(&b, "- Total approved leave: %d days", totalDays)

			return b.String(), nil
		},
	}
}

func (c *Catalog) policyTool() *Tool {
	return &Tool{
		Name:        "query_leave_policy",
		Description: "Query the TechCorp leave policy for information about leave rules, procedures, and entitlements.",
		Schema: ToolSchema{
			Required: []string{"question"},
			Properties: map[string]Property{
				"question": {Type: "string", Description: "Free-text question about the leave policy"},
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			question := stringArg(args, "question")

			results, err := c.searcher.Search(ctx, question, 3)
			if err != nil {
				return fmt.Sprintf("Policy information system is not available: %v. Please contact HR for policy details.", err), nil
			}
			if len(results) == 0 {
				return "I couldn't find specific information about your question in the policy. Please contact HR for detailed clarification.", nil
			}

			excerpt := retrieval.PolicyContext(results, 2000)
			return fmt.Sprintf("Based on the TechCorp Leave Policy:\n\n%s\n\nFor more detailed information, please refer to the complete policy document or contact HR.", excerpt), nil
		},
	}
}

// titleLeaveType renders "casual_leave" as "Casual Leave".
func titleLeaveType(leaveType string) string {
	words := strings.Split(leaveType, "_")
	for i, w := range words {
		words[i] = titleWord(w)
	}
	return strings.Join(words, " ")
}

func titleWord(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + w[1:]
}
