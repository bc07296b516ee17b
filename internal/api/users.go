package api

import (
	"context"

	"github.com/google/uuid"

	"github.com/greenroots/storefront/internal/model"
)

// User administration. Admin-only by backend convention; the client only
// gates the UI.

func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var out []model.User
	if err := c.do(ctx, call{op: "Get All Users", method: "GET", path: "/users", auth: true}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

var validRoles = map[string]bool{"user": true, "admin": true}

func (c *Client) UpdateUserRole(ctx context.Context, id uuid.UUID, role string) (*model.User, error) {
	if err := requiredID(id, "User ID"); err != nil {
		return nil, err
	}
	if err := required(role, "Role"); err != nil {
		return nil, err
	}
	if !validRoles[role] {
		return nil, validationErr(`Role must be either "user" or "admin"`)
	}
	body := map[string]string{"role": role}
	var out model.User
	if err := c.do(ctx, call{op: "Update User Role", method: "PUT", path: "/users/" + id.String() + "/role", body: body, auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := requiredID(id, "User ID"); err != nil {
		return err
	}
	return c.do(ctx, call{op: "Delete User", method: "DELETE", path: "/users/" + id.String(), auth: true}, nil)
}
