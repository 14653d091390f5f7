package hr

// Demo dataset. A real deployment would load this from the HRIS; the shape
// matches what the Directory operations expect.

func seedPolicies() map[string]LeavePolicy {
	return map[string]LeavePolicy{
		"casual_leave": {
			AnnualAllocation:   12,
			MaxConsecutiveDays: 3,
			AdvanceNoticeDays:  1,
			CarryForward:       false,
		},
		"sick_leave": {
			AnnualAllocation:    10,
			MaxConsecutiveDays:  7,
			AdvanceNoticeDays:   0,
			CarryForward:        false,
			MedicalCertAfterDay: 3,
		},
		"earned_leave": {
			AnnualAllocation:   18,
			MaxConsecutiveDays: 15,
			AdvanceNoticeDays:  7,
			CarryForward:       true,
			MaxCarryForward:    6,
		},
	}
}

func seedEmployees() []Employee {
	return []Employee{
		{
			ID:         "EMP001",
			Name:       "John Doe",
			Department: "Engineering",
			JoinDate:   "2022-01-15",
			Balances: map[string]LeaveBalance{
				"casual_leave": {Allocated: 12, Used: 3, Remaining: 9},
				"sick_leave":   {Allocated: 10, Used: 2, Remaining: 8},
				"earned_leave": {Allocated: 18, Used: 5, Remaining: 13},
			},
			History: []LeaveApplication{
				{ID: "LA001", LeaveType: "casual_leave", StartDate: "2024-02-10", EndDate: "2024-02-12", Days: 3, Status: StatusApproved, Reason: "Personal work", AppliedDate: "2024-02-08"},
				{ID: "LA002", LeaveType: "sick_leave", StartDate: "2024-03-05", EndDate: "2024-03-06", Days: 2, Status: StatusApproved, Reason: "Fever", AppliedDate: "2024-03-05"},
			},
		},
		{
			ID:         "EMP002",
			Name:       "Jane Smith",
			Department: "Marketing",
			JoinDate:   "2021-06-10",
			Balances: map[string]LeaveBalance{
				"casual_leave": {Allocated: 12, Used: 7, Remaining: 5},
				"sick_leave":   {Allocated: 10, Used: 1, Remaining: 9},
				"earned_leave": {Allocated: 20, Used: 12, Remaining: 8},
			},
			History: []LeaveApplication{
				{ID: "LA003", LeaveType: "earned_leave", StartDate: "2024-01-20", EndDate: "2024-01-25", Days: 6, Status: StatusApproved, Reason: "Vacation", AppliedDate: "2024-01-10"},
				{ID: "LA004", LeaveType: "casual_leave", StartDate: "2024-04-15", EndDate: "2024-04-15", Days: 1, Status: StatusApproved, Reason: "Personal appointment", AppliedDate: "2024-04-14"},
			},
		},
		{
			ID:         "EMP003",
			Name:       "Raj Kumar",
			Department: "Finance",
			JoinDate:   "2023-03-20",
			Balances: map[string]LeaveBalance{
				"casual_leave": {Allocated: 12, Used: 4, Remaining: 8},
				"sick_leave":   {Allocated: 10, Used: 0, Remaining: 10},
				"earned_leave": {Allocated: 18, Used: 3, Remaining: 15},
			},
			History: []LeaveApplication{
				{ID: "LA005", LeaveType: "casual_leave", StartDate: "2024-05-10", EndDate: "2024-05-11", Days: 2, Status: StatusPending, Reason: "Family function", AppliedDate: "2024-05-08"},
			},
		},
		{
			ID:         "EMP004",
			Name:       "Priya Sharma",
			Department: "HR",
			JoinDate:   "2020-08-15",
			Balances: map[string]LeaveBalance{
				"casual_leave": {Allocated: 12, Used: 10, Remaining: 2},
				"sick_leave":   {Allocated: 10, Used: 5, Remaining: 5},
				"earned_leave": {Allocated: 20, Used: 15, Remaining: 5},
			},
			History: []LeaveApplication{
				{ID: "LA006", LeaveType: "earned_leave", StartDate: "2024-02-01", EndDate: "2024-02-10", Days: 10, Status: StatusApproved, Reason: "Annual vacation", AppliedDate: "2024-01-15"},
				{ID: "LA007", LeaveType: "sick_leave", StartDate: "2024-03-20", EndDate: "2024-03-22", Days: 3, Status: StatusApproved, Reason: "Medical treatment", AppliedDate: "2024-03-20"},
			},
		},
		{
			ID:         "EMP005",
			Name:       "Michael Chen",
			Department: "Engineering",
			JoinDate:   "2023-11-01",
			Balances: map[string]LeaveBalance{
				"casual_leave": {Allocated: 12, Used: 2, Remaining: 10},
				"sick_leave":   {Allocated: 10, Used: 1, Remaining: 9},
				"earned_leave": {Allocated: 18, Used: 0, Remaining: 18},
			},
			History: []LeaveApplication{
				{ID: "LA008", LeaveType: "casual_leave", StartDate: "2024-04-22", EndDate: "2024-04-23", Days: 2, Status: StatusApproved, Reason: "House relocation", AppliedDate: "2024-04-20"},
			},
		},
		{
			ID:         "EMP006",
			Name:       "Sarah Williams",
			Department: "Sales",
			JoinDate:   "2019-04-10",
			Balances: map[string]LeaveBalance{
				"casual_leave": {Allocated: 12, Used: 6, Remaining: 6},
				"sick_leave":   {Allocated: 10, Used: 8, Remaining: 2},
				"earned_leave": {Allocated: 20, Used: 8, Remaining: 12},
			},
			History: []LeaveApplication{
				{ID: "LA009", LeaveType: "sick_leave", StartDate: "2024-01-15", EndDate: "2024-01-19", Days: 5, Status: StatusApproved, Reason: "Flu", AppliedDate: "2024-01-15"},
				{ID: "LA010", LeaveType: "casual_leave", StartDate: "2024-03-25", EndDate: "2024-03-27", Days: 3, Status: StatusApproved, Reason: "Personal work", AppliedDate: "2024-03-23"},
			},
		},
		{
			ID:         "EMP007",
			Name:       "Ahmed Hassan",
			Department: "Operations",
			JoinDate:   "2022-07-01",
			Balances: map[string]LeaveBalance{
				"casual_leave": {Allocated: 12, Used: 5, Remaining: 7},
				"sick_leave":   {Allocated: 10, Used: 3, Remaining: 7},
				"earned_leave": {Allocated: 18, Used: 10, Remaining: 8},
			},
			History: []LeaveApplication{
				{ID: "LA011", LeaveType: "earned_leave", StartDate: "2024-06-01", EndDate: "2024-06-07", Days: 7, Status: StatusPending, Reason: "Travel plans", AppliedDate: "2024-05-20"},
				{ID: "LA012", LeaveType: "sick_leave", StartDate: "2024-02-14", EndDate: "2024-02-16", Days: 3, Status: StatusApproved, Reason: "Back pain", AppliedDate: "2024-02-14"},
			},
		},
		{
			ID:         "EMP008",
			Name:       "Lisa Anderson",
			Department: "Marketing",
			JoinDate:   "2021-09-15",
			Balances: map[string]LeaveBalance{
				"casual_leave": {Allocated: 12, Used: 8, Remaining: 4},
				"sick_leave":   {Allocated: 10, Used: 4, Remaining: 6},
				"earned_leave": {Allocated: 20, Used: 6, Remaining: 14},
			},
			History: []LeaveApplication{
				{ID: "LA013", LeaveType: "casual_leave", StartDate: "2024-01-08", EndDate: "2024-01-10", Days: 3, Status: StatusApproved, Reason: "Wedding to attend", AppliedDate: "2024-01-05"},
				{ID: "LA014", LeaveType: "earned_leave", StartDate: "2024-04-01", EndDate: "2024-04-03", Days: 3, Status: StatusApproved, Reason: "Short trip", AppliedDate: "2024-03-25"},
				{ID: "LA015", LeaveType: "sick_leave", StartDate: "2024-05-12", EndDate: "2024-05-13", Days: 2, Status: StatusCancelled, Reason: "Headache", AppliedDate: "2024-05-12"},
			},
		},
	}
}
