package auth

// Employee is the domain entity behind a POS login.
type Employee struct {
	ID       int
	Name     string
	Email    string
	Password string
	Role     string
}

const (
	RoleCashier = "CASHIER"
	RoleManager = "MANAGER"
)
