package hr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDataInvariant(t *testing.T) {
	d := NewDirectory()
	for _, id := range d.EmployeeIDs() {
		emp, ok := d.Employee(id)
		require.True(t, ok)
		for leaveType, bal := range emp.Balances {
			assert.Equal(t, bal.Allocated-bal.Used, bal.Remaining,
				"%s %s remaining != allocated-used", id, leaveType)
		}
	}
}

func TestEmployeeLookup(t *testing.T) {
	d := NewDirectory()

	emp, ok := d.Employee("EMP001")
	require.True(t, ok)
	assert.Equal(t, "John Doe", emp.Name)
	assert.Equal(t, "Engineering", emp.Department)

	_, ok = d.Employee("EMP999")
	assert.False(t, ok)

	assert.Len(t, d.EmployeeIDs(), 8)
}

func TestEmployeeCopyIsDetached(t *testing.T) {
	d := NewDirectory()
	emp, _ := d.Employee("EMP001")
	emp.Balances["casual_leave"] = LeaveBalance{Allocated: 99, Used: 0, Remaining: 99}
	emp.History[0].Status = StatusCancelled

	fresh, _ := d.Employee("EMP001")
	assert.Equal(t, 9, fresh.Balances["casual_leave"].Remaining)
	assert.Equal(t, StatusApproved, fresh.History[0].Status)
}

func TestFileApplication(t *testing.T) {
	d := NewDirectory()

	app, err := d.FileApplication("EMP001", LeaveApplication{
		LeaveType:   "casual_leave",
		StartDate:   "2025-07-01",
		EndDate:     "2025-07-03",
		Days:        3,
		Status:      StatusPending,
		Reason:      "Family function",
		AppliedDate: "2025-06-20",
	})
	require.NoError(t, err)
	assert.Equal(t, "LA016", app.ID, "first new application follows the seeded IDs")

	bal, ok := d.Balance("EMP001", "casual_leave")
	require.True(t, ok)
	assert.Equal(t, 6, bal.Used)
	assert.Equal(t, 6, bal.Remaining)

	// Next filing gets the next ID.
	app2, err := d.FileApplication("EMP002", LeaveApplication{
		LeaveType: "sick_leave", StartDate: "2025-07-01", EndDate: "2025-07-01",
		Days: 1, Status: StatusPending, Reason: "Cold", AppliedDate: "2025-07-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "LA017", app2.ID)
}

func TestFileApplicationInsufficientBalance(t *testing.T) {
	d := NewDirectory()

	// EMP004 has 2 casual days remaining.
	_, err := d.FileApplication("EMP004", LeaveApplication{
		LeaveType: "casual_leave", Days: 3, Status: StatusPending,
	})
	require.Error(t, err)

	bal, _ := d.Balance("EMP004", "casual_leave")
	assert.Equal(t, 2, bal.Remaining, "failed filing must not mutate balance")
}

func TestCancelApplication(t *testing.T) {
	d := NewDirectory()

	// LA001 is approved for 3 casual days of EMP001.
	app, changed, err := d.CancelApplication("EMP001", "LA001")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, StatusCancelled, app.Status)

	bal, _ := d.Balance("EMP001", "casual_leave")
	assert.Equal(t, 12, bal.Remaining, "approved days restored")

	// Cancelling again is a no-op.
	_, changed, err = d.CancelApplication("EMP001", "LA001")
	require.NoError(t, err)
	assert.False(t, changed)
	bal, _ = d.Balance("EMP001", "casual_leave")
	assert.Equal(t, 12, bal.Remaining)

	// Cancelling a pending application does not restore.
	_, changed, err = d.CancelApplication("EMP003", "LA005")
	require.NoError(t, err)
	assert.True(t, changed)
	bal, _ = d.Balance("EMP003", "casual_leave")
	assert.Equal(t, 8, bal.Remaining)

	_, _, err = d.CancelApplication("EMP001", "LA999")
	assert.Error(t, err)
	_, _, err = d.CancelApplication("EMP999", "LA001")
	assert.Error(t, err)
}

func TestApplicationsForYear(t *testing.T) {
	d := NewDirectory()

	apps, err := d.ApplicationsForYear("EMP008", 2024)
	require.NoError(t, err)
	assert.Len(t, apps, 3)

	apps, err = d.ApplicationsForYear("EMP008", 2023)
	require.NoError(t, err)
	assert.Empty(t, apps)

	_, err = d.ApplicationsForYear("EMP999", 2024)
	assert.Error(t, err)
}

func TestPolicies(t *testing.T) {
	d := NewDirectory()

	p, ok := d.Policy("casual_leave")
	require.True(t, ok)
	assert.Equal(t, 3, p.MaxConsecutiveDays)
	assert.Equal(t, 1, p.AdvanceNoticeDays)

	p, ok = d.Policy("earned_leave")
	require.True(t, ok)
	assert.True(t, p.CarryForward)
	assert.Equal(t, 6, p.MaxCarryForward)

	_, ok = d.Policy("parental_leave")
	assert.False(t, ok)

	assert.Len(t, d.Policies(), 3)
}
