package session

import "strings"

// Fields is the fixed set of leave-request slots tracked per session. Every
// producer of field updates (model extraction, tool arguments, explicit API
// input) is normalized into this struct, so unknown keys can never leak into
// session state.
type Fields struct {
	EmployeeID string `json:"employee_id,omitempty"`
	Name       string `json:"name,omitempty"`
	LeaveType  string `json:"leave_type,omitempty"`
	StartDate  string `json:"start_date,omitempty"`
	EndDate    string `json:"end_date,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// FieldsFromMap converts a loosely-typed key/value payload into Fields.
// Only the known slot keys are honored and only string values are accepted;
// everything else is dropped.
func FieldsFromMap(raw map[string]interface{}) Fields {
	var f Fields
	for key, value := range raw {
		s, ok := value.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		// Extraction payloads use the current_* spelling, tool arguments
		// the bare one.
		switch key {
		case "employee_id":
			f.EmployeeID = s
		case "name":
			f.Name = s
		case "leave_type", "current_leave_type":
			f.LeaveType = s
		case "start_date", "current_start_date":
			f.StartDate = s
		case "end_date", "current_end_date":
			f.EndDate = s
		case "reason":
			f.Reason = s
		}
	}
	return f
}

// IsZero reports whether no slot carries a value.
func (f Fields) IsZero() bool {
	return f == Fields{}
}
