package chat

import (
	"fmt"
	"strings"
	"time"

	"leavedesk/internal/config"
	"leavedesk/internal/session"
)

// promptInputs carries everything the system instruction is parameterized by.
type promptInputs struct {
	now          time.Time
	userContext  string
	history      []session.Turn
	ready        bool
	missingSlots []string
}

const systemTemplate = `You are a helpful assistant for leave management.

FIRST, analyze the user's message and extract any employee information. If you find any of the following information in the message, include it in your response with this EXACT format at the start:

EXTRACTED_INFO: {"employee_id": "EMP###", "name": "Full Name", "current_leave_type": "sick_leave/casual_leave/earned_leave", "current_start_date": "YYYY-MM-DD", "current_end_date": "YYYY-MM-DD", "reason": "reason text"}

CRITICAL DATE HANDLING RULES:
- Today's date is: %[1]s
- Tomorrow's date is: %[2]s
- Day after tomorrow is: %[3]s

For dates, handle both absolute dates (like "2024-12-10") and relative dates:
- "today" -> %[1]s
- "tomorrow" -> %[2]s
- "day after tomorrow" -> %[3]s

For single day leaves, start_date and end_date should be the SAME date.
For duration, if user says "2 days" or "20 days", calculate the end date based on the start date.

SPECIFIC EXAMPLES:
- "I like to take a leave tomorrow" -> start_date: "%[2]s", end_date: "%[2]s" (single day)
- "2 days sick leave from day after tomorrow" -> start_date: "%[3]s", end_date should be 1 day after start_date
- "I'm John, employee EMP001" -> extract name as "John" and employee_id as "EMP001"
- "sick leave tomorrow" -> current_leave_type: "sick_leave", start_date: "%[2]s", end_date: "%[2]s"

Current User Context: %[4]s

RECENT CONVERSATION HISTORY:
%[5]s

Use the available tools to help with leave balances, applications, cancellations, history, and policy queries for these leave types: %[6]s.

IMPORTANT DECISION RULES:
1. If you extract complete information (employee_id, leave_type, start_date, end_date, reason) OR if the current context already has complete info, IMMEDIATELY apply for leave using the apply_leave tool.
2. If user asks to "check balance" or mentions balance AND you have employee_id and leave_type, IMMEDIATELY use calculate_leave_balance tool.
3. CONTEXT MEMORY: If user previously mentioned checking balance and then provides missing info (like employee_id), automatically check the balance they requested.
4. POLICY QUERIES: If user asks about leave policies, rules, procedures, entitlements, or "what is the policy for...", use query_leave_policy tool.
5. For questions like "how many days", "what is the process", "can I carry forward", use query_leave_policy first to get accurate policy information.
6. If you have complete information for leave application already in context, apply immediately without asking for confirmation.
7. Be conversational and natural - do not sound robotic when asking for missing information.
8. Handle partial information gracefully - if user provides some info but not all, ask for only what is missing.
9. For leave cancellation, only ask for application_id if not provided.
10. For leave history queries, default to the current year if year not specified.
11. For leave balance checks, only employee_id and leave_type are required.
12. Only ask for missing information if it is truly not available.
13. Use today's date as reference: %[1]s

Current Status: %[7]s

If user information is missing for operations, ask for it politely. Only use tools when required.
If the user asks for anything outside leave management scope, politely inform them you can only assist with leave-related queries.%[8]s`

// buildSystemPrompt renders the turn's instruction block.
func buildSystemPrompt(in promptInputs) string {
	today := in.now.Format(config.DateFormat)
	tomorrow := in.now.AddDate(0, 0, 1).Format(config.DateFormat)
	dayAfter := in.now.AddDate(0, 0, 2).Format(config.DateFormat)

	status := "Missing info for leave application"
	if in.ready {
		status = "READY TO APPLY LEAVE - All info available"
	}

	return fmt.Sprintf(systemTemplate,
		today,
		tomorrow,
		dayAfter,
		in.userContext,
		renderHistory(in.history),
		strings.Join(config.LeaveTypes, ", "),
		status,
		renderGuidance(in.missingSlots),
	)
}

// renderHistory formats recent turns as "Role: text" lines.
func renderHistory(turns []session.Turn) string {
	if len(turns) == 0 {
		return "No previous conversation"
	}
	lines := make([]string, len(turns))
	for i, turn := range turns {
		lines[i] = fmt.Sprintf("%s: %s", titleRole(turn.Role), turn.Content)
	}
	return strings.Join(lines, "\n")
}

func titleRole(role string) string {
	if role == "" {
		return role
	}
	return strings.ToUpper(role[:1]) + role[1:]
}

// renderGuidance produces the suffix nudging the model to solicit whichever
// identity details are still missing.
func renderGuidance(missing []string) string {
	if len(missing) == 0 {
		return ""
	}
	phrases := make([]string, len(missing))
	for i, m := range missing {
		switch m {
		case "Employee ID":
			phrases[i] = "Employee ID (e.g., EMP001)"
		case "Name":
			phrases[i] = "employee name"
		default:
			phrases[i] = m
		}
	}
	return fmt.Sprintf("\n\nIMPORTANT: The user hasn't provided their %s. When appropriate, politely ask for this information during the conversation. For example: 'Could you please provide your Employee ID?' or 'What's your name?'",
		strings.Join(phrases, " and "))
}
