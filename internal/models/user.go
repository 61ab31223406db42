package models

// User is a registered account. Password holds the stored credential, which
// depends on the configured password scheme.
type User struct {
	ID       int64
	Username string
	Password string
}

// RegistrationForm is what the register screen collects.
type RegistrationForm struct {
	FirstName string
	LastName  string
	Email     string
	Username  string
	Password  string
	Phone     string
}
