package domain

import "time"

// UserType tags which login flow produced a session.
type UserType string

const (
	UserCustomer UserType = "customer"
	UserStaff    UserType = "staff"
)

// Profile is the cached identity returned by the backend on login. Customer
// and staff logins populate different subsets; the zero values are benign.
type Profile struct {
	CustomerID    int    `json:"customerId,omitempty"`
	StaffID       int    `json:"staffId,omitempty"`
	Username      string `json:"username,omitempty"`
	FirstName     string `json:"firstName,omitempty"`
	LastName      string `json:"lastName,omitempty"`
	Name          string `json:"name,omitempty"`
	Email         string `json:"email,omitempty"`
	Role          string `json:"role,omitempty"`
	LoyaltyPoints int    `json:"loyaltyPoints,omitempty"`
}

// DisplayName returns the friendliest non-empty identity for page headers.
func (p Profile) DisplayName() string {
	if p.FirstName != "" {
		return p.FirstName + " " + p.LastName
	}
	if p.Name != "" {
		return p.Name
	}
	if p.Username != "" {
		return p.Username
	}
	return p.Email
}

// Session is the authenticated browser session persisted server-side. The
// cookie carries only the session id; tokens never leave the server. Created
// on login, destroyed on logout or on the first 401 from the backend.
type Session struct {
	ID           string    `json:"id"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	UserType     UserType  `json:"userType"`
	Profile      Profile   `json:"profile"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

func (s *Session) IsStaff() bool    { return s != nil && s.UserType == UserStaff }
func (s *Session) IsCustomer() bool { return s != nil && s.UserType == UserCustomer }

// Expired reports whether the backend access token has outlived its exp claim.
func (s *Session) Expired(now time.Time) bool {
	return s == nil || (!s.ExpiresAt.IsZero() && now.After(s.ExpiresAt))
}
