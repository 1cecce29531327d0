package enum

// UserRole is the role a user logs in with.
type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleCashier  UserRole = "cashier"
	UserRoleCustomer UserRole = "customer"
)

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleCashier, UserRoleCustomer:
		return true
	}
	return false
}

// IsStaff reports whether the role may use the admin dashboard.
func (r UserRole) IsStaff() bool {
	return r == UserRoleAdmin || r == UserRoleCashier
}

// LoginRoute is where a client should send a user of this role once their session ends.
func (r UserRole) LoginRoute() string {
	switch r {
	case UserRoleAdmin, UserRoleCashier:
		return "/admin/login"
	case UserRoleCustomer:
		return "/customer/login"
	}
	return "/"
}
