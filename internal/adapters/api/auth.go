package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/domain"
)

type loginRequest struct {
	IDNumber string `json:"idNumber"`
	Password string `json:"password"`
}

// Login exchanges admin credentials for a remote API bearer token
func (c *Client) Login(ctx context.Context, idNumber, password string) (*domain.LoginResult, error) {
	raw, err := c.do(ctx, http.MethodPost, "/auth/login", "", nil, loginRequest{
		IDNumber: idNumber,
		Password: password,
	})
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidCredentials, apiErr.Message)
		}
		return nil, err
	}

	var result domain.LoginResult
	if err := decodeObject(raw, &result, "token"); err != nil {
		return nil, err
	}
	if result.Token == "" {
		return nil, fmt.Errorf("%w: login response carried no token", domain.ErrUpstreamFailure)
	}

	return &result, nil
}
