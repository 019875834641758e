package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/viant/postboard/schema"
)

// ErrInvalidToken is wrapped by every decode failure
var ErrInvalidToken = errors.New("invalid token")

// Decoded represents decode outcome
type Decoded struct {
	Token  string
	Claims *schema.AccessClaims
	Err    error
}

// OK returns true when claims were decoded
func (d Decoded) OK() bool {
	return d.Err == nil && d.Claims != nil
}

// Identity returns decoded identity or zero value
func (d Decoded) Identity() schema.Identity {
	if !d.OK() || d.Claims.UserInfo == nil {
		return schema.Identity{}
	}
	return *d.Claims.UserInfo
}

// Decode reads token claims without signature verification; the client holds no key.
func Decode(raw string) Decoded {
	ret := Decoded{Token: raw}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		ret.Err = fmt.Errorf("%w: token is empty", ErrInvalidToken)
		return ret
	}
	claims := &schema.AccessClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		ret.Err = fmt.Errorf("%w: %v", ErrInvalidToken, err)
		return ret
	}
	if claims.UserInfo == nil {
		ret.Err = fmt.Errorf("%w: missing userInfo claim", ErrInvalidToken)
		return ret
	}
	ret.Claims = claims
	return ret
}
