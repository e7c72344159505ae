package models

// Persisted session flag keys
const (
	FlagToken = "token"
	FlagRole  = "role"
)

// RoleAdmin is the role flag value that grants the admin capability
const RoleAdmin = "admin"

// Session is derived from the persisted flags on each request
type Session struct {
	ID            string `json:"-"`
	Authenticated bool   `json:"authenticated"`
	IsAdmin       bool   `json:"is_admin"`
	Token         string `json:"-"`
	Role          string `json:"role,omitempty"`
}

// SessionFromFlags builds a Session from the stored flag values
func SessionFromFlags(id string, flags map[string]string) Session {
	token := flags[FlagToken]
	role := flags[FlagRole]
	return Session{
		ID:            id,
		Authenticated: token != "",
		IsAdmin:       role == RoleAdmin,
		Token:         token,
		Role:          role,
	}
}

// Capability is the permission level a route requires
type Capability int

const (
	CapabilityNone Capability = iota
	CapabilityAuthenticated
	CapabilityAdmin
)

func (c Capability) String() string {
	switch c {
	case CapabilityAuthenticated:
		return "authenticated"
	case CapabilityAdmin:
		return "admin"
	default:
		return "none"
	}
}

// Credentials is the login form
type Credentials struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Registration is the sign-up form
type Registration struct {
	Name     string `json:"name" form:"name" validate:"required"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
}

// PasswordResetRequest is the forgot-password form
type PasswordResetRequest struct {
	Email string `json:"email" form:"email" validate:"required,email"`
}

// PasswordReset is the reset-password form; only the new password is sent
type PasswordReset struct {
	Password        string `json:"password" form:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"-" form:"confirm_password" validate:"required,eqfield=Password"`
}

// LoginResult is the blog API's response to a successful login
type LoginResult struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	Role    string `json:"role"`
	User    struct {
		Role string `json:"role"`
	} `json:"user"`
}

// EffectiveRole prefers the top-level role and falls back to the embedded user's role
func (r *LoginResult) EffectiveRole() string {
	if r.Role != "" {
		return r.Role
	}
	return r.User.Role
}
