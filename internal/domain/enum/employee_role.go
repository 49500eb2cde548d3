package enum

// EmployeeRole decides which staff terminal screens an employee may use
type EmployeeRole string

const (
	EmployeeRoleCashier EmployeeRole = "CASHIER"
	EmployeeRoleGuard   EmployeeRole = "GUARD"
)

func (r EmployeeRole) IsValid() bool {
	return r == EmployeeRoleCashier || r == EmployeeRoleGuard
}

func (r EmployeeRole) String() string {
	return string(r)
}

// ScanMode is the staff terminal's current scanning purpose
type ScanMode string

const (
	ScanModeCashier ScanMode = "CASHIER"
	ScanModeGuard   ScanMode = "GUARD"
)
