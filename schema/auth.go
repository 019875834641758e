package schema

import "github.com/golang-jwt/jwt/v5"

type (
	// Identity represents decoded identity claims of an access token.
	Identity struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Role     Role   `json:"role,omitempty"`
	}

	// AccessClaims represents access token payload
	AccessClaims struct {
		UserInfo *Identity `json:"userInfo,omitempty"`
		jwt.RegisteredClaims
	}

	// Credentials represents login and register payload
	Credentials struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	// AccessTokenResult represents login and refresh response
	AccessTokenResult struct {
		AccessToken string `json:"accessToken"`
	}

	// MessageResult represents a plain message response
	MessageResult struct {
		Message string `json:"message"`
	}
)

// IsZero returns true for anonymous identity
func (i Identity) IsZero() bool {
	return i.ID == "" && i.Username == "" && i.Role == RoleUndefined
}
