package gateway

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/velocity-drive/fleetdesk/internal/domain/fleet"
	"github.com/velocity-drive/fleetdesk/internal/domain/session"
)

const (
	carsPath      = "/api/cars"
	createCarPath = "/api/cars/path"
	loginPath     = "/api/auth/login"
	registerPath  = "/api/auth/register"
)

// ListCars fetches the full fleet. A missing or non-array payload is
// treated as an empty fleet rather than an error.
func (c *Client) ListCars(ctx context.Context) ([]fleet.Car, error) {
	payload, err := c.do(ctx, http.MethodGet, carsPath, nil)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return []fleet.Car{}, nil
	}
	var cars []fleet.Car
	if err := json.Unmarshal(payload, &cars); err != nil {
		return []fleet.Car{}, nil
	}
	return cars, nil
}

// CreateCar posts a new fleet vehicle. The created record is returned
// when the backend echoes one; a shapeless response yields nil.
func (c *Client) CreateCar(ctx context.Context, draft fleet.Draft) (*fleet.Car, error) {
	body := map[string]any{
		"make":        draft.Make,
		"model":       draft.Model,
		"pricePerDay": draft.PricePerDay,
		"available":   draft.Available,
	}
	payload, err := c.do(ctx, http.MethodPost, createCarPath, body)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, nil
	}
	var car fleet.Car
	if err := json.Unmarshal(payload, &car); err != nil {
		return nil, nil
	}
	return &car, nil
}

// Login exchanges credentials for a raw session payload. Validation of
// the payload shape belongs to the session package.
func (c *Client) Login(ctx context.Context, email, password string) (json.RawMessage, error) {
	body := map[string]string{"email": email, "password": password}
	return c.do(ctx, http.MethodPost, loginPath, body)
}

// Register creates an account and returns the raw session payload.
func (c *Client) Register(ctx context.Context, name, email, password string, role session.Role) (json.RawMessage, error) {
	body := map[string]any{
		"name":     name,
		"email":    email,
		"password": password,
		"role":     role,
	}
	return c.do(ctx, http.MethodPost, registerPath, body)
}
