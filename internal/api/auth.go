package api

import (
	"context"
	"regexp"

	"github.com/greenroots/storefront/internal/model"
)

type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Location string `json:"location,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is shared by login, google login and registration. Token is
// empty for plain registration, which does not log the user in.
type AuthResponse struct {
	Token   string     `json:"token"`
	User    model.User `json:"user"`
	Message string     `json:"message"`
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := required(req.Email, "Email"); err != nil {
		return nil, err
	}
	if err := required(req.Password, "Password"); err != nil {
		return nil, err
	}
	var out AuthResponse
	if err := c.do(ctx, call{op: "User Registration", method: "POST", path: "/auth/register", body: req}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := required(req.Email, "Email"); err != nil {
		return nil, err
	}
	if err := required(req.Password, "Password"); err != nil {
		return nil, err
	}
	var out AuthResponse
	if err := c.do(ctx, call{op: "User Login", method: "POST", path: "/auth/login", body: req}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GoogleLogin exchanges an identity-provider credential for a session.
func (c *Client) GoogleLogin(ctx context.Context, credential string) (*AuthResponse, error) {
	if err := required(credential, "Google credential"); err != nil {
		return nil, err
	}
	var out AuthResponse
	body := map[string]string{"credential": credential}
	if err := c.do(ctx, call{op: "Google Login", method: "POST", path: "/auth/google-login", body: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	if err := required(email, "Email"); err != nil {
		return err
	}
	body := map[string]string{"email": email}
	return c.do(ctx, call{op: "Forgot Password", method: "POST", path: "/password/forgot-password", body: body}, nil)
}

var otpPattern = regexp.MustCompile(`^\d{6}$`)

func (c *Client) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	if err := required(email, "Email"); err != nil {
		return err
	}
	if err := required(otp, "OTP"); err != nil {
		return err
	}
	if !otpPattern.MatchString(otp) {
		return validationErr("OTP must be a 6-digit code")
	}
	if err := required(newPassword, "New password"); err != nil {
		return err
	}
	body := map[string]string{"email": email, "otp": otp, "newPassword": newPassword}
	return c.do(ctx, call{op: "Reset Password", method: "POST", path: "/password/reset-password", body: body}, nil)
}

// GetProfile fetches the authenticated user's profile, used to pre-fill the
// checkout address.
func (c *Client) GetProfile(ctx context.Context) (*model.User, error) {
	var out model.User
	if err := c.do(ctx, call{op: "Get Profile", method: "GET", path: "/users/profile", auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
