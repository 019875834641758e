package mock

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/viant/postboard/schema"
)

var errStaleToken = errors.New("token was expired by the mock")

// IssueToken signs an access token for identity
func (s *Service) IssueToken(identity schema.Identity) (string, error) {
	return s.issueToken(identity, s.AccessTTL)
}

func (s *Service) issueToken(identity schema.Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := schema.AccessClaims{
		UserInfo: &identity,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        strconv.FormatInt(s.generation.Load(), 10),
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

func (s *Service) verifyToken(raw string) (*schema.AccessClaims, error) {
	claims := &schema.AccessClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if claims.ID != strconv.FormatInt(s.generation.Load(), 10) {
		return nil, errStaleToken
	}
	if claims.UserInfo == nil {
		return nil, errors.New("missing userInfo claim")
	}
	return claims, nil
}
