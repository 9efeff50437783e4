package auth

// RequirementMode selects how a role set must be satisfied.
type RequirementMode int

const (
	// RequireAll demands every listed role.
	RequireAll RequirementMode = iota
	// RequireAny demands at least one listed role.
	RequireAny
)

// Requirement is the static access rule attached to a protected route.
type Requirement struct {
	Mode  RequirementMode
	Roles []string
}

// AllOf builds a requirement satisfied only by holding every role.
func AllOf(roles ...string) Requirement {
	return Requirement{Mode: RequireAll, Roles: roles}
}

// AnyOf builds a requirement satisfied by holding at least one role.
func AnyOf(roles ...string) Requirement {
	return Requirement{Mode: RequireAny, Roles: roles}
}

// Check decides whether the principal satisfies the requirement. It is a
// pure function: ErrUnauthenticated when no valid token backed the
// principal, ErrInsufficientRole when authenticated but lacking the
// roles, nil otherwise. The two failures are distinct on purpose so
// callers can answer "log in" and "you lack permission" differently.
func Check(p Principal, req Requirement) error {
	if !p.Authenticated {
		return ErrUnauthenticated
	}

	switch req.Mode {
	case RequireAny:
		for _, role := range req.Roles {
			if p.HasRole(role) {
				return nil
			}
		}
		if len(req.Roles) == 0 {
			return nil
		}
		return ErrInsufficientRole
	default: // RequireAll
		for _, role := range req.Roles {
			if !p.HasRole(role) {
				return ErrInsufficientRole
			}
		}
		return nil
	}
}
