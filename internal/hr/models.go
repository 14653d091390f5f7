// Package hr owns the employee leave records: balances, application history
// and the leave policies that govern them. It stands in for a real HRIS
// backend and is mutated only through Directory operations.
package hr

// LeaveBalance tracks one leave type for one employee. Remaining is kept
// equal to Allocated-Used on every mutation.
type LeaveBalance struct {
	Allocated int `json:"total_allocated"`
	Used      int `json:"used"`
	Remaining int `json:"remaining"`
}

// LeaveApplication is one filed leave request.
type LeaveApplication struct {
	ID          string `json:"application_id"`
	LeaveType   string `json:"leave_type"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Days        int    `json:"days"`
	Status      string `json:"status"` // pending, approved, cancelled
	Reason      string `json:"reason"`
	AppliedDate string `json:"applied_date"`
}

// Application statuses.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusCancelled = "cancelled"
)

// Employee is one staff record with balances and application history.
type Employee struct {
	ID         string                  `json:"employee_id"`
	Name       string                  `json:"name"`
	Department string                  `json:"department"`
	JoinDate   string                  `json:"join_date"`
	Balances   map[string]LeaveBalance `json:"leave_balances"`
	History    []LeaveApplication      `json:"leave_history"`
}

// LeavePolicy configures the rules for one leave type.
type LeavePolicy struct {
	AnnualAllocation    int  `json:"annual_allocation"`
	MaxConsecutiveDays  int  `json:"max_consecutive_days"`
	AdvanceNoticeDays   int  `json:"advance_notice_days"`
	CarryForward        bool `json:"carry_forward"`
	MaxCarryForward     int  `json:"max_carry_forward,omitempty"`
	MedicalCertAfterDay int  `json:"medical_certificate_required,omitempty"`
}
