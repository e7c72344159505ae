// Package guard decides whether a session may see a capability-gated page.
package guard

import "github.com/bloggify-frontend/internal/models"

// Decision is the outcome of evaluating a route guard
type Decision int

const (
	Allow Decision = iota
	RedirectToLogin
	NotFound
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect_to_login"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Evaluate applies the guard rules in order: no token redirects to login for any
// capability, a non-admin asking for admin gets the not-found page, anything else passes.
// Admin mismatches answer NotFound so the page is indistinguishable from a bad URL.
func Evaluate(s models.Session, required models.Capability) Decision {
	if !s.Authenticated {
		return RedirectToLogin
	}
	if required == models.CapabilityAdmin && !s.IsAdmin {
		return NotFound
	}
	return Allow
}
