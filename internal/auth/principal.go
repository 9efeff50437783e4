package auth

// Principal is the identity attached to one request. It is derived from a
// validated token, lives only for the request, and is never persisted or
// cached by token value.
type Principal struct {
	Username      string
	Roles         []string
	Authenticated bool
}

// Anonymous is the principal attached when no valid token accompanies the
// request.
func Anonymous() Principal {
	return Principal{}
}

// FromClaims builds an authenticated principal out of validated claims.
func FromClaims(claims *Claims) Principal {
	roles := make([]string, 0, 1)
	if claims.Role != "" {
		roles = append(roles, claims.Role)
	}
	return Principal{
		Username:      claims.Username,
		Roles:         roles,
		Authenticated: true,
	}
}

// HasRole reports whether the principal holds the given role.
func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}
