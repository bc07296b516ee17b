package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validForm() RegisterForm {
	return RegisterForm{
		FullName:        "Asha Verma",
		Email:           "asha@example.com",
		Phone:           "+91 98765-43210",
		Password:        "Str0ngPass",
		ConfirmPassword: "Str0ngPass",
	}
}

func TestRegisterForm_ValidPasses(t *testing.T) {
	assert.Empty(t, validForm().Validate())
}

func TestRegisterForm_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegisterForm)
		field  string
		want   string
	}{
		{"missing name", func(f *RegisterForm) { f.FullName = "" }, "fullName", "Full name is required"},
		{"missing email", func(f *RegisterForm) { f.Email = "" }, "email", "Email is required"},
		{"bad email", func(f *RegisterForm) { f.Email = "not-an-email" }, "email", "Email is invalid"},
		{"short phone", func(f *RegisterForm) { f.Phone = "12345" }, "phone", "Phone number must be at least 10 digits"},
		{"short password", func(f *RegisterForm) { f.Password, f.ConfirmPassword = "Ab1", "Ab1" }, "password", "Password must be at least 8 characters"},
		{"weak password", func(f *RegisterForm) { f.Password, f.ConfirmPassword = "alllowercase1", "alllowercase1" }, "password", "Password must contain uppercase, lowercase, and number"},
		{"no confirmation", func(f *RegisterForm) { f.ConfirmPassword = "" }, "confirmPassword", "Please confirm your password"},
		{"mismatch", func(f *RegisterForm) { f.ConfirmPassword = "Other1Pass" }, "confirmPassword", "Passwords do not match"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)
			errs := form.Validate()
			assert.Equal(t, tt.want, errs[tt.field])
		})
	}
}

func TestRegisterForm_PhoneDigitsCountedAfterStripping(t *testing.T) {
	form := validForm()
	form.Phone = "(987) 654-3210"
	assert.Empty(t, form.Validate())
}
