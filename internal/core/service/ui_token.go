package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kzkiosk/kiosk-control/internal/core/domain"
)

// UITokenIssuer signs the bearer token handed to the kiosk UI on master
// login. The token names the master session it was issued for, so a UI
// still holding a token from an earlier session is refused.
type UITokenIssuer struct {
	secret []byte
}

func NewUITokenIssuer(secret string) *UITokenIssuer {
	return &UITokenIssuer{secret: []byte(secret)}
}

// Issue returns a token for masterID valid for ttl.
func (i *UITokenIssuer) Issue(masterID string, issuedAt time.Time, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"master_id": masterID,
		"iat":       issuedAt.Unix(),
		"exp":       issuedAt.Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Verify checks the signature and expiry and returns the master id claim.
func (i *UITokenIssuer) Verify(token string) (string, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", domain.ErrStaleToken
	}
	masterID, _ := claims["master_id"].(string)
	if masterID == "" {
		return "", fmt.Errorf("%w: token missing master identity", domain.ErrStaleToken)
	}
	return masterID, nil
}
