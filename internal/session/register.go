package session

import "regexp"

// RegisterForm carries the raw registration inputs plus the confirmation
// field that never leaves the client.
type RegisterForm struct {
	FullName        string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
	Location        string
}

var (
	emailPattern  = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	nonDigit      = regexp.MustCompile(`\D`)
	passwordLower = regexp.MustCompile(`[a-z]`)
	passwordUpper = regexp.MustCompile(`[A-Z]`)
	passwordDigit = regexp.MustCompile(`\d`)
)

// Validate runs the client-side checks and returns field-keyed messages.
// An empty map means the form may be submitted.
func (f RegisterForm) Validate() map[string]string {
	errs := make(map[string]string)

	if f.FullName == "" {
		errs["fullName"] = "Full name is required"
	}

	switch {
	case f.Email == "":
		errs["email"] = "Email is required"
	case !emailPattern.MatchString(f.Email):
		errs["email"] = "Email is invalid"
	}

	switch {
	case f.Phone == "":
		errs["phone"] = "Phone number is required"
	case len(nonDigit.ReplaceAllString(f.Phone, "")) < 10:
		errs["phone"] = "Phone number must be at least 10 digits"
	}

	switch {
	case f.Password == "":
		errs["password"] = "Password is required"
	case len(f.Password) < 8:
		errs["password"] = "Password must be at least 8 characters"
	case !passwordLower.MatchString(f.Password) ||
		!passwordUpper.MatchString(f.Password) ||
		!passwordDigit.MatchString(f.Password):
		errs["password"] = "Password must contain uppercase, lowercase, and number"
	}

	switch {
	case f.ConfirmPassword == "":
		errs["confirmPassword"] = "Please confirm your password"
	case f.Password != f.ConfirmPassword:
		errs["confirmPassword"] = "Passwords do not match"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
