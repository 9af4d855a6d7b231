package session

import "encoding/json"

// Role is the account type carried by an authenticated session.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// Session is the signed-in identity, persisted locally and destroyed on
// logout. Absence of a session gates off the entire dashboard.
type Session struct {
	UserID string `json:"userId,omitempty"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}

// IsAdmin reports whether the session may use admin-only operations.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// DisplayName returns the name shown in greetings, falling back to email.
func (s *Session) DisplayName() string {
	if s == nil {
		return ""
	}
	if s.Name != "" {
		return s.Name
	}
	return s.Email
}

// Valid reports whether a restored session record carries the mandatory
// fields. Foreign-shaped persisted data fails this and is discarded.
func (s *Session) Valid() bool {
	return s != nil && s.Email != "" && s.Role != ""
}

// AuthPayload is the response body of the login and register endpoints.
// Email and role are mandatory; message is an optional greeting.
type AuthPayload struct {
	UserID  json.RawMessage `json:"userId"`
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Role    Role            `json:"role"`
	Message string          `json:"message"`
}

// userID renders the payload's userId, which the backend serves as a
// number, as an opaque string.
func (p AuthPayload) userID() string {
	if len(p.UserID) == 0 || string(p.UserID) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(p.UserID, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(p.UserID, &n); err == nil {
		return n.String()
	}
	return ""
}

// ParsePayload validates a raw authentication response and converts it to
// a session. Any payload missing email or role fails with ErrBadPayload.
func ParsePayload(raw []byte) (*Session, string, error) {
	if len(raw) == 0 {
		return nil, "", ErrBadPayload
	}
	var payload AuthPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, "", ErrBadPayload
	}
	if payload.Email == "" || payload.Role == "" {
		return nil, "", ErrBadPayload
	}
	return &Session{
		UserID: payload.userID(),
		Name:   payload.Name,
		Email:  payload.Email,
		Role:   payload.Role,
	}, payload.Message, nil
}
