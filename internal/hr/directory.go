package hr

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Directory is the in-memory employee record store. All access goes through
// its methods under one mutex; callers never hold references into internal
// state.
type Directory struct {
	mu        sync.Mutex
	employees map[string]*Employee
	policies  map[string]LeavePolicy
	nextAppID int
}

// NewDirectory builds a directory seeded with the demo dataset.
func NewDirectory() *Directory {
	d := &Directory{
		employees: make(map[string]*Employee),
		policies:  seedPolicies(),
	}
	maxID := 0
	for _, e := range seedEmployees() {
		emp := e
		d.employees[emp.ID] = &emp
		for _, app := range emp.History {
			if n, ok := appIDNumber(app.ID); ok && n > maxID {
				maxID = n
			}
		}
	}
	d.nextAppID = maxID + 1
	return d
}

func appIDNumber(id string) (int, bool) {
	if !strings.HasPrefix(id, "LA") {
		return 0, false
	}
	n, err := strconv.Atoi(id[2:])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Employee returns a deep copy of the record for id.
func (d *Directory) Employee(id string) (Employee, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	emp, ok := d.employees[id]
	if !ok {
		return Employee{}, false
	}
	return copyEmployee(emp), true
}

// EmployeeIDs returns all known IDs, sorted.
func (d *Directory) EmployeeIDs() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	ids := make([]string, 0, len(d.employees))
	for id := range d.employees {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Balance returns the balance for one employee and leave type.
func (d *Directory) Balance(employeeID, leaveType string) (LeaveBalance, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	emp, ok := d.employees[employeeID]
	if !ok {
		return LeaveBalance{}, false
	}
	bal, ok := emp.Balances[leaveType]
	return bal, ok
}

// Policy returns the policy for a leave type.
func (d *Directory) Policy(leaveType string) (LeavePolicy, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.policies[leaveType]
	return p, ok
}

// Policies returns a copy of all policies keyed by leave type.
func (d *Directory) Policies() map[string]LeavePolicy {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make(map[string]LeavePolicy, len(d.policies))
	for k, v := range d.policies {
		out[k] = v
	}
	return out
}

// FileApplication records a new application for the employee, consumes the
// given number of days from the matching balance, and returns the filled-in
// application with its allocated ID.
func (d *Directory) FileApplication(employeeID string, app LeaveApplication) (LeaveApplication, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	emp, ok := d.employees[employeeID]
	if !ok {
		return LeaveApplication{}, fmt.Errorf("employee %s not found", employeeID)
	}
	bal, ok := emp.Balances[app.LeaveType]
	if !ok {
		return LeaveApplication{}, fmt.Errorf("no %s balance for employee %s", app.LeaveType, employeeID)
	}
	if app.Days > bal.Remaining {
		return LeaveApplication{}, fmt.Errorf("insufficient balance: requested %d, remaining %d", app.Days, bal.Remaining)
	}

	app.ID = fmt.Sprintf("LA%03d", d.nextAppID)
	d.nextAppID++

	bal.Used += app.Days
	bal.Remaining = bal.Allocated - bal.Used
	emp.Balances[app.LeaveType] = bal
	emp.History = append(emp.History, app)

	return app, nil
}

// CancelApplication flips an application to cancelled. Days are restored to
// the balance only when the prior status was approved; cancelling an
// already-cancelled application is a reported no-op.
func (d *Directory) CancelApplication(employeeID, applicationID string) (LeaveApplication, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	emp, ok := d.employees[employeeID]
	if !ok {
		return LeaveApplication{}, false, fmt.Errorf("employee %s not found", employeeID)
	}

	for i := range emp.History {
		app := &emp.History[i]
		if app.ID != applicationID {
			continue
		}
		if app.Status == StatusCancelled {
			return *app, false, nil
		}

		restored := app.Status == StatusApproved
		app.Status = StatusCancelled
		if restored {
			if bal, ok := emp.Balances[app.LeaveType]; ok {
				bal.Used -= app.Days
				bal.Remaining = bal.Allocated - bal.Used
				emp.Balances[app.LeaveType] = bal
			}
		}
		return *app, true, nil
	}

	return LeaveApplication{}, false, fmt.Errorf("application %s not found for employee %s", applicationID, employeeID)
}

// ApplicationsForYear returns the employee's applications whose start date
// falls in the given year, in filing order. Year zero means all years.
func (d *Directory) ApplicationsForYear(employeeID string, year int) ([]LeaveApplication, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	emp, ok := d.employees[employeeID]
	if !ok {
		return nil, fmt.Errorf("employee %s not found", employeeID)
	}

	var out []LeaveApplication
	prefix := ""
	if year > 0 {
		prefix = fmt.Sprintf("%04d-", year)
	}
	for _, app := range emp.History {
		if prefix == "" || strings.HasPrefix(app.StartDate, prefix) {
			out = append(out, app)
		}
	}
	return out, nil
}

func copyEmployee(emp *Employee) Employee {
	out := *emp
	out.Balances = make(map[string]LeaveBalance, len(emp.Balances))
	for k, v := range emp.Balances {
		out.Balances[k] = v
	}
	out.History = make([]LeaveApplication, len(emp.History))
	copy(out.History, emp.History)
	return out
}
