package api

import (
	"context"

	"github.com/jhoicas/bakery-erp/internal/application/dto"
	"github.com/jhoicas/bakery-erp/internal/application/ports"
)

var _ ports.AuthAPI = (*AuthAPI)(nil)

const loginPath = "/account/login/"

// AuthAPI adaptador del endpoint de login.
type AuthAPI struct {
	c *Client
}

// NewAuthAPI construye el adaptador.
func NewAuthAPI(c *Client) *AuthAPI {
	return &AuthAPI{c: c}
}

// Login envía emp_code y password; devuelve tokens y perfil.
func (a *AuthAPI) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	if err := a.c.Post(ctx, loginPath, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
