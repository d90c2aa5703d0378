package backend

import (
	"context"
	"net/http"

	"github.com/tableside/restaurant-console/internal/core/domain"
	"github.com/tableside/restaurant-console/internal/core/ports"
)

type tokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// CustomerLogin exchanges username/password for a JWT pair via POST /token/.
func (c *Client) CustomerLogin(ctx context.Context, username, password string) (ports.TokenPair, error) {
	var out tokenResponse
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "token", c.base+"/token/", body, &out); err != nil {
		return ports.TokenPair{}, err
	}
	return ports.TokenPair{Access: out.Access, Refresh: out.Refresh}, nil
}

type meResponse struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	CustomerID    int    `json:"customerId"`
	LoyaltyPoints int    `json:"loyaltyPoints"`
}

// Me fetches the authenticated customer's profile via GET /me/. The token is
// passed explicitly because login calls this before any session exists.
func (c *Client) Me(ctx context.Context, accessToken string) (domain.Profile, error) {
	ctx = WithToken(ctx, accessToken)
	var out meResponse
	if err := c.do(ctx, http.MethodGet, "me", c.base+"/me/", nil, &out); err != nil {
		return domain.Profile{}, err
	}
	return domain.Profile{
		Username:      out.Username,
		Email:         out.Email,
		FirstName:     out.FirstName,
		LastName:      out.LastName,
		CustomerID:    out.CustomerID,
		LoyaltyPoints: out.LoyaltyPoints,
	}, nil
}

type staffLoginResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Staff        struct {
		StaffID int    `json:"staffId"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Role    string `json:"role"`
	} `json:"staff"`
}

// StaffLogin authenticates a staff member via POST /staff/login/ (email and
// password; the backend issues its own token pair alongside the profile).
func (c *Client) StaffLogin(ctx context.Context, email, password string) (ports.StaffLoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out staffLoginResponse
	if err := c.do(ctx, http.MethodPost, "staff-login", c.base+"/staff/login/", body, &out); err != nil {
		return ports.StaffLoginResult{}, err
	}
	if !out.Success {
		return ports.StaffLoginResult{}, &domain.RequestError{StatusCode: http.StatusUnauthorized, Message: out.Message}
	}
	return ports.StaffLoginResult{
		Access:  out.AccessToken,
		Refresh: out.RefreshToken,
		Profile: domain.Profile{
			StaffID: out.Staff.StaffID,
			Name:    out.Staff.Name,
			Email:   out.Staff.Email,
			Role:    out.Staff.Role,
		},
	}, nil
}

// Register creates a new customer account via POST /register/.
func (c *Client) Register(ctx context.Context, in ports.RegisterInput) error {
	return c.do(ctx, http.MethodPost, "register", c.base+"/register/", in, nil)
}
